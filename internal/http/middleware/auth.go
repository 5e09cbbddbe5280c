// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements RequireAuth, the session gate for protected routes.
// The access credential is read from the "accessToken" cookie first and from
// a Bearer Authorization header as a fallback, verified, and resolved to a
// live user record before the handler runs.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/streamhub/go-video-backend/internal/auth"
	"github.com/streamhub/go-video-backend/internal/domain"
)

// AccessCookieName is the cookie that carries the short-lived access token.
const AccessCookieName = "accessToken"

// TokenParser verifies an access token and returns its decoded claims.
// *auth.TokenManager satisfies it; tests substitute a fake.
type TokenParser interface {
	ParseAccess(raw string) (*auth.Claims, error)
}

// UserLoader resolves a verified user id to the current user record. A token
// that verifies but no longer maps to a user (deleted account) is rejected.
type UserLoader func(ctx context.Context, id string) (*domain.User, error)

// RequireAuth returns a Gin middleware that authenticates the request.
//
// Credential lookup order:
//  1. the "accessToken" cookie (browser clients)
//  2. the Authorization header, "Bearer <token>" (API clients)
//
// On success it stores the user under the "user" context key and the id under
// "userID", then calls the next handler. On failure it aborts with a 401
// response envelope and never invokes the handler.
func RequireAuth(tokens TokenParser, loadUser UserLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, _ := c.Cookie(AccessCookieName)
		if raw == "" {
			raw = bearerToken(c.GetHeader("Authorization"))
		}
		if raw == "" {
			abortUnauthorized(c, "Unauthorized request")
			return
		}

		claims, err := tokens.ParseAccess(raw)
		if err != nil {
			abortUnauthorized(c, "Invalid access token")
			return
		}

		user, err := loadUser(c.Request.Context(), claims.UserID)
		if err != nil || user == nil {
			abortUnauthorized(c, "Invalid access token")
			return
		}

		c.Set("user", user)
		c.Set("userID", user.ID)
		c.Next()
	}
}

// CurrentUser returns the authenticated user stored by RequireAuth, or nil
// when the request is unauthenticated.
func CurrentUser(c *gin.Context) *domain.User {
	if v, ok := c.Get("user"); ok {
		if u, ok := v.(*domain.User); ok {
			return u
		}
	}
	return nil
}

// bearerToken extracts the token from a "Bearer <token>" Authorization value.
// Returns "" for any other scheme or a malformed header.
func bearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"statusCode": http.StatusUnauthorized,
		"data":       nil,
		"message":    msg,
		"success":    false,
		"errors":     []string{},
	})
}
