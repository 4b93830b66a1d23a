package admin

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/propscout/hmo-app/internal/app"
	"golang.org/x/crypto/bcrypt"
)

// Account is the safe view of an admin used by middleware.
type Account struct {
	ID       int
	Approved bool
}

func (a *Account) IsApproved() bool {
	return a.Approved
}

type AdminEntity struct {
	ID           int
	Username     string
	PasswordHash string
	Approved     bool
	CreatedAt    time.Time
}

func (a *AdminEntity) ValidateUsername() error {
	if a.Username == "" {
		return &app.ServerResponseError{
			Err:        errors.New("empty username"),
			Msg:        "Must provide a username",
			StatusCode: http.StatusUnprocessableEntity,
		}
	}

	return nil
}

func (a *AdminEntity) SetPasswordHash(password string) error {
	if password == "" {
		return &app.ServerResponseError{
			Err:        errors.New("empty password"),
			Msg:        "Must provide a password",
			StatusCode: http.StatusUnprocessableEntity,
		}
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	if err != nil {
		return err
	}

	a.PasswordHash = string(passwordHash)

	return nil
}

func (a *AdminEntity) CheckPasswordHash(p string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(p))
	return err == nil
}

func (a *AdminEntity) IsApproved() bool {
	return a.Approved
}

func (a *AdminEntity) Account() Account {
	return Account{
		ID:       a.ID,
		Approved: a.Approved,
	}
}

func (a *AdminEntity) Scan(scanner func(...any) error) error {
	return scanner(
		&a.ID,
		&a.Username,
		&a.PasswordHash,
		&a.Approved,
		&a.CreatedAt,
	)
}

func (a *AdminEntity) Select(ctx context.Context, db *sql.DB) error {
	query := `SELECT id, username, password_hash, approved, created_at
			  FROM admins WHERE id = $1`

	return a.Scan(db.QueryRowContext(ctx, query, a.ID).Scan)
}

func (a *AdminEntity) SelectWhereUsername(ctx context.Context, db *sql.DB) error {
	query := `SELECT id, username, password_hash, approved, created_at
			  FROM admins WHERE username = $1`

	return a.Scan(db.QueryRowContext(ctx, query, a.Username).Scan)
}

func (a *AdminEntity) Insert(ctx context.Context, db *sql.DB) error {
	query := `INSERT INTO admins(username, password_hash, approved, created_at)
			  VALUES($1, $2, $3, $4)`

	_, err := db.ExecContext(ctx, query,
		a.Username,
		a.PasswordHash,
		a.Approved,
		a.CreatedAt)

	return err
}

const schema = `
	CREATE TABLE IF NOT EXISTS admins(
		id SERIAL PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		approved BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL
	)`

func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed creating admins table: %w", err)
	}

	return nil
}
