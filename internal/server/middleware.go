package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/propscout/hmo-app/internal/admin"
	"github.com/propscout/hmo-app/internal/app"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const adminTokenCookieKey = "admin_token"

// AdminValidater is a middleware that is wrapped around admin
// paths. Any HTTP request that requires a valid admin should be
// wrapped in the Validate func.
type AdminValidater struct {
	admins *admin.Service
	logger zerolog.Logger
}

// Validate verifies that the caller is an approved admin. The
// request context passed to next carries the admin's id under
// "admin_id".
func (v *AdminValidater) Validate(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lw := NewLogWriter(v.logger, w, r)

		cookie, err := r.Cookie(adminTokenCookieKey)
		if err != nil {
			appErr := &app.ServerResponseError{
				Err:        fmt.Errorf("getting %s cookie: %w", adminTokenCookieKey, err),
				Msg:        "Please login",
				StatusCode: http.StatusUnauthorized,
			}
			v.logAbort(r, appErr)
			lw.WriteError(appErr)
			return
		}

		account, err := v.admins.Validate(r.Context(), cookie.Value)
		if err != nil {
			err = fmt.Errorf("validating token: %w", err)
			v.logAbort(r, err)
			lw.WriteError(err)
			return
		}

		if !account.IsApproved() {
			appErr := &app.ServerResponseError{
				Err:        fmt.Errorf("admin not approved (id=%d)", account.ID),
				Msg:        "Your admin rights are under review",
				StatusCode: http.StatusUnauthorized,
			}
			v.logAbort(r, appErr)
			lw.WriteError(appErr)
			return
		}

		next(w, r.WithContext(context.WithValue(r.Context(), "admin_id", account.ID)))
	}
}

func (v *AdminValidater) logAbort(r *http.Request, err error) {
	v.logger.Warn().
		Err(err).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Msg("aborting admin request")
}

// RequestID tags every request with a uuid for log correlation.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), "request_id", id)))
	})
}

// RateLimiter throttles the public API per client IP. This
// protects the HTTP surface only; the batch path toward the
// geocoding dependency carries no backpressure.
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rate     rate.Limit
	burst    int
}

func NewRateLimiter(perSecond float64, burst int) *RateLimiter {
	return &RateLimiter{
		limiters: map[string]*rate.Limiter{},
		rate:     rate.Limit(perSecond),
		burst:    burst,
	}
}

func (rl *RateLimiter) limiter(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	l, ok := rl.limiters[ip]
	if !ok {
		l = rate.NewLimiter(rl.rate, rl.burst)
		rl.limiters[ip] = l
	}

	return l
}

func (rl *RateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}

		if !rl.limiter(ip).Allow() {
			http.Error(w, "Too many requests", http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}
