package admin

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/propscout/hmo-app/internal/app"
)

type Service struct {
	Secret []byte
	DB     *sql.DB
}

func New(secret []byte, db *sql.DB) *Service {
	return &Service{
		Secret: secret,
		DB:     db,
	}
}

// Signup will create an admin and store it into the database. An
// admin will only signup successfully if the username is not in
// use. New admins start unapproved and cannot trigger refreshes
// or imports until approved.
func (s *Service) Signup(ctx context.Context, username string, password string) error {
	admin := AdminEntity{Username: username}

	// Check if username is in use.
	err := admin.SelectWhereUsername(ctx, s.DB)
	if err == nil {
		return &app.ServerResponseError{
			Err:        fmt.Errorf("username %q in use", admin.Username),
			Msg:        "Username is taken",
			StatusCode: http.StatusConflict,
		}
	} else if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("selecting admin (username=%s): %w", admin.Username, err)
	}

	// Hash and set PasswordHash. SetPasswordHash will also validate the password.
	if err := admin.SetPasswordHash(password); err != nil {
		return fmt.Errorf("setting password hash: %w", err)
	}

	if err := admin.ValidateUsername(); err != nil {
		return fmt.Errorf("validating username: %w", err)
	}

	admin.Approved = false
	admin.CreatedAt = time.Now().UTC()

	if err := admin.Insert(ctx, s.DB); err != nil {
		return fmt.Errorf("inserting admin (username=%s): %w", admin.Username, err)
	}

	return nil
}

// Login will get an Admin associated with the username, compare
// the provided password against the stored hash, and return an
// access token when the credentials are valid and the admin has
// been approved. This is the only way to get an admin access
// token.
func (s *Service) Login(ctx context.Context, username string, password string) (string, error) {
	admin := AdminEntity{Username: username}
	if err := admin.SelectWhereUsername(ctx, s.DB); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", &app.ServerResponseError{
				Err:        fmt.Errorf("admin not found"),
				Msg:        "Invalid credentials",
				StatusCode: http.StatusUnauthorized,
			}
		}
		return "", fmt.Errorf("selecting admin (username=%s): %w", admin.Username, err)
	}

	if !admin.CheckPasswordHash(password) {
		return "", &app.ServerResponseError{
			Err:        fmt.Errorf("invalid password (username=%s)", admin.Username),
			Msg:        "Invalid credentials",
			StatusCode: http.StatusUnauthorized,
		}
	}

	if !admin.IsApproved() {
		return "", &app.ServerResponseError{
			Err:        fmt.Errorf("admin not approved (id=%d)", admin.ID),
			Msg:        "Your admin rights are under review",
			StatusCode: http.StatusUnauthorized,
		}
	}

	return s.token(admin)
}

func (s *Service) token(admin AdminEntity) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   strconv.Itoa(admin.ID),
		IssuedAt:  jwt.NewNumericDate(time.Now().UTC()),
		ExpiresAt: jwt.NewNumericDate(time.Now().UTC().Add(24 * time.Hour)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.Secret)
	if err != nil {
		return "", fmt.Errorf("signing token (id=%d): %w", admin.ID, err)
	}

	return signed, nil
}

// Validate parses and verifies an access token and returns the
// Account it belongs to.
func (s *Service) Validate(ctx context.Context, tokenString string) (Account, error) {
	claims := jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.Secret, nil
	})
	if err != nil {
		return Account{}, &app.ServerResponseError{
			Err:        fmt.Errorf("parsing token: %w", err),
			Msg:        "Please login",
			StatusCode: http.StatusUnauthorized,
		}
	}

	id, err := strconv.Atoi(claims.Subject)
	if err != nil {
		return Account{}, &app.ServerResponseError{
			Err:        fmt.Errorf("parsing token subject %q: %w", claims.Subject, err),
			Msg:        "Please login",
			StatusCode: http.StatusUnauthorized,
		}
	}

	admin := AdminEntity{ID: id}
	if err := admin.Select(ctx, s.DB); err != nil {
		return Account{}, &app.ServerResponseError{
			Err:        fmt.Errorf("selecting admin (id=%d): %w", id, err),
			Msg:        "Please login",
			StatusCode: http.StatusUnauthorized,
		}
	}

	return admin.Account(), nil
}
