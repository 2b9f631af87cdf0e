// Package middleware provides the HTTP middleware shared by the server.
package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// ContextKey is a typed key for context values to avoid collisions.
type ContextKey string

// emailKey is the context key for storing the authenticated user's email.
const emailKey ContextKey = "email"

// TokenCookie is the cookie the login page stores the identity token in.
const TokenCookie = "fastlabor_token"

// TokenValidator is an interface for validating JWT tokens.
// This allows the middleware to work with any JWT service implementation.
type TokenValidator interface {
	ValidateToken(tokenString string) (EmailGetter, error)
}

// EmailGetter is an interface for extracting the user's email from token claims.
type EmailGetter interface {
	GetEmail() string
}

// UnauthorizedFunc writes the response for a request without a valid identity.
type UnauthorizedFunc func(w http.ResponseWriter, r *http.Request)

// PlainUnauthorized answers 401 with a plain-text body.
func PlainUnauthorized(w http.ResponseWriter, _ *http.Request) {
	http.Error(w, "Unauthorized", http.StatusUnauthorized)
}

// RedirectUnauthorized sends the browser to loginURL. Used as the login
// guard of HTML pages.
func RedirectUnauthorized(loginURL string) UnauthorizedFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, loginURL, http.StatusSeeOther)
	}
}

// AuthMiddleware validates the identity token and adds the user's email to
// the request context. The token is read from "Authorization: Bearer ..."
// or, failing that, from the TokenCookie cookie.
func AuthMiddleware(validator TokenValidator, onUnauthorized UnauthorizedFunc) func(http.Handler) http.Handler {
	if onUnauthorized == nil {
		onUnauthorized = PlainUnauthorized
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, ok := extractToken(r)
			if !ok {
				onUnauthorized(w, r)
				return
			}

			claims, err := validator.ValidateToken(tokenString)
			if err != nil {
				onUnauthorized(w, r)
				return
			}

			email := claims.GetEmail()
			if email == "" {
				onUnauthorized(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), emailKey, email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractToken reads the bearer token from the Authorization header, then
// from the token cookie. A malformed Authorization header is rejected
// rather than falling through to the cookie.
func extractToken(r *http.Request) (string, bool) {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return "", false
		}
		return parts[1], true
	}

	cookie, err := r.Cookie(TokenCookie)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}

// GetEmail extracts the authenticated user's email from the request context.
func GetEmail(r *http.Request) (string, error) {
	email, ok := r.Context().Value(emailKey).(string)
	if !ok || email == "" {
		return "", fmt.Errorf("email not found in request context")
	}
	return email, nil
}

// WithEmail returns a copy of r carrying email as the authenticated
// identity (for testing purposes).
func WithEmail(r *http.Request, email string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), emailKey, email))
}
