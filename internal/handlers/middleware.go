package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"kidic/internal/security"
	"kidic/internal/token"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const AuthContextKey ContextKey = "auth"

// AuthContext carries the verified bearer token through the request
// context. Raw is kept so services can re-verify and re-derive
// membership themselves.
type AuthContext struct {
	Raw    string
	Claims *token.Claims
}

// Middleware holds dependencies for middleware functions
type Middleware struct {
	codec   *token.Codec
	limiter *security.RateLimiter
}

// NewMiddleware creates a new middleware instance
func NewMiddleware(codec *token.Codec) *Middleware {
	return &Middleware{
		codec:   codec,
		limiter: security.NewRateLimiter(10, time.Minute),
	}
}

// RateLimit throttles a handler per client IP. Used on the auth
// endpoints to slow down credential guessing.
func (m *Middleware) RateLimit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !m.limiter.Allow(security.ClientIP(r)) {
			respondWithError(w, http.StatusTooManyRequests, "too many requests", "", nil)
			return
		}
		next(w, r)
	}
}

// RequireAuth requires a valid bearer token. The response never
// distinguishes an expired token from a tampered one; the log does.
func (m *Middleware) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := bearerToken(r)
		if raw == "" {
			respondWithError(w, http.StatusUnauthorized, "authentication required", "", nil)
			return
		}

		claims, err := m.codec.Verify(raw)
		if err != nil {
			switch {
			case errors.Is(err, token.ErrExpired):
				log.Printf("rejected expired token for parent %d", claims.ParentID)
			default:
				log.Printf("rejected token: %v", err)
			}
			respondWithError(w, http.StatusUnauthorized, "authentication required", "", nil)
			return
		}

		ctx := context.WithValue(r.Context(), AuthContextKey, &AuthContext{Raw: raw, Claims: claims})
		next(w, r.WithContext(ctx))
	}
}

// Logging middleware logs HTTP requests
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		next.ServeHTTP(w, r)

		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}

// bearerToken extracts the token from the Authorization header
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}

// GetAuth retrieves the verified auth context from the request context
func GetAuth(ctx context.Context) *AuthContext {
	auth, ok := ctx.Value(AuthContextKey).(*AuthContext)
	if !ok {
		return nil
	}
	return auth
}
