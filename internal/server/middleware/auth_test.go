package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testClaims struct {
	id   uuid.UUID
	name string
}

func (c *testClaims) GetClientID() uuid.UUID { return c.id }
func (c *testClaims) GetClientName() string  { return c.name }

type testTokenValidator map[string]*testClaims

func (v testTokenValidator) ValidateToken(tokenString string) (Principal, error) {
	claims, ok := v[tokenString]
	if !ok {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	clientID := uuid.New()
	validator := testTokenValidator{"good": {id: clientID, name: "careers-site"}}

	var got Client
	handler := AuthMiddleware(validator)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := GetClient(r)
		require.NoError(t, err)
		got = c
		w.WriteHeader(http.StatusOK)
	}))

	for _, header := range []string{"Bearer good", "bearer good", "BEARER   good"} {
		got = Client{}
		req := httptest.NewRequest(http.MethodPost, "/adverts", nil)
		req.Header.Set("Authorization", header)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code, header)
		assert.Equal(t, Client{ID: clientID, Name: "careers-site"}, got)
	}
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	validator := testTokenValidator{"good": {id: uuid.New()}}
	called := false
	handler := AuthMiddleware(validator)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	tests := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "wrong scheme", header: "Basic good"},
		{name: "no token", header: "Bearer"},
		{name: "extra parts", header: "Bearer good extra"},
		{name: "unknown token", header: "Bearer bad"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called = false
			req := httptest.NewRequest(http.MethodGet, "/adverts", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Header().Get("WWW-Authenticate"), "Bearer")
			assert.False(t, called)
		})
	}
}

func TestAuthMiddleware_PublicPaths(t *testing.T) {
	called := false
	handler := AuthMiddleware(testTokenValidator{}, "/health")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		_, err := GetClient(r)
		assert.ErrorIs(t, err, ErrNoClient)
	}))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)
	assert.True(t, called)

	called = false
	req = httptest.NewRequest(http.MethodOptions, "/adverts", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)
	assert.True(t, called, "CORS preflight passes through")
}
