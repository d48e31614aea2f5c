// Package middleware provides HTTP middleware for API client authentication.
package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// ContextKey is a typed key for context values to avoid collisions.
type ContextKey string

// clientKey is the context key for the authenticated API client.
const clientKey ContextKey = "client"

// ErrNoClient is returned when a request carries no authenticated client.
var ErrNoClient = errors.New("no authenticated client in request context")

// Client identifies the API client a bearer token was issued to.
type Client struct {
	ID   uuid.UUID
	Name string
}

// Principal is implemented by validated token claims.
type Principal interface {
	GetClientID() uuid.UUID
	GetClientName() string
}

// TokenValidator validates bearer tokens.
type TokenValidator interface {
	ValidateToken(tokenString string) (Principal, error)
}

// AuthMiddleware creates middleware that requires a valid bearer token on
// every request except those whose path is listed in public.
func AuthMiddleware(validator TokenValidator, public ...string) func(http.Handler) http.Handler {
	open := make(map[string]bool, len(public))
	for _, p := range public {
		open[p] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if open[r.URL.Path] || r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			tokenString, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				unauthorized(w)
				return
			}

			principal, err := validator.ValidateToken(tokenString)
			if err != nil {
				unauthorized(w)
				return
			}

			ctx := WithClient(r.Context(), Client{
				ID:   principal.GetClientID(),
				Name: principal.GetClientName(),
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken parses "Bearer <token>", with a case-insensitive scheme.
func bearerToken(header string) (string, bool) {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], parts[1] != ""
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="adverts"`)
	http.Error(w, "Unauthorized", http.StatusUnauthorized)
}

// WithClient returns a context carrying the authenticated client.
func WithClient(ctx context.Context, c Client) context.Context {
	return context.WithValue(ctx, clientKey, c)
}

// GetClient extracts the authenticated client from the request context.
func GetClient(r *http.Request) (Client, error) {
	c, ok := r.Context().Value(clientKey).(Client)
	if !ok {
		return Client{}, ErrNoClient
	}
	return c, nil
}
