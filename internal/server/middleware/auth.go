// Package middleware provides HTTP middleware for authenticating API clients.
package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// ContextKey is a typed key for context values to avoid collisions.
type ContextKey string

// clientIDKey is the context key for storing the authenticated client ID.
const clientIDKey ContextKey = "clientID"

// TokenValidator validates bearer tokens.
type TokenValidator interface {
	ValidateToken(tokenString string) (ClientIDGetter, error)
}

// ClientIDGetter extracts the client identity from token claims.
type ClientIDGetter interface {
	ClientID() string
}

// AuthMiddleware creates middleware that validates bearer tokens and adds the
// client ID to the request context.
func AuthMiddleware(validator TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				unauthorized(w)
				return
			}

			claims, err := validator.ValidateToken(tokenString)
			if err != nil {
				unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), clientIDKey, claims.ClientID())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken parses "Bearer <token>"; the scheme is case-insensitive.
func bearerToken(header string) (string, bool) {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="company-research"`)
	http.Error(w, "Unauthorized", http.StatusUnauthorized)
}

// GetClientID extracts the authenticated client ID from the request context.
func GetClientID(r *http.Request) (string, error) {
	clientID, ok := r.Context().Value(clientIDKey).(string)
	if !ok {
		return "", fmt.Errorf("client ID not found in request context")
	}
	return clientID, nil
}
