package middleware

import (
	"context"
	"errors"
	"strings"

	"resourceshub/metrics"
	"resourceshub/model"
	"resourceshub/usecase"
	"resourceshub/utils"

	"github.com/gin-gonic/gin"
)

const (
	ContextUserKey   = "user"
	ContextUserIDKey = "user_id"
	ContextTokenKey  = "access_token"
)

// Authenticator resolves a bearer token to a user. usecase.AuthService
// implements it.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (model.AuthUser, error)
}

// BearerToken returns the token from the Authorization header, or "".
func BearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}

func AuthMiddleware(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := BearerToken(c)
		if token == "" {
			metrics.TrackAuthAttempt("failure", "missing_token")
			utils.AbortUnauthorized(c, "Authentication required")
			return
		}

		user, err := auth.Authenticate(c.Request.Context(), token)
		switch {
		case errors.Is(err, usecase.ErrUserNotFound):
			utils.AbortNotFound(c, "User not found")
			return
		case errors.Is(err, usecase.ErrInvalidToken):
			metrics.TrackAuthAttempt("failure", "invalid_token")
			utils.AbortUnauthorized(c, "Invalid or expired token")
			return
		case errors.Is(err, usecase.ErrDatabaseUnavailable):
			metrics.TrackError("auth", "database_unavailable")
			utils.AbortServiceUnavailable(c, "Database unavailable")
			return
		case err != nil:
			metrics.TrackError("auth", "authenticate")
			utils.AbortInternalError(c, "Authentication failed")
			return
		}

		c.Set(ContextUserKey, user)
		c.Set(ContextUserIDKey, user.ID)
		c.Set(ContextTokenKey, token)
		c.Next()
	}
}

// RequireAdmin must run after AuthMiddleware.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			utils.AbortUnauthorized(c, "Authentication required")
			return
		}
		if !user.IsAdmin() {
			utils.AbortForbidden(c, "Admin access required")
			return
		}
		c.Next()
	}
}

// CurrentUser returns the user attached by AuthMiddleware.
func CurrentUser(c *gin.Context) (model.AuthUser, bool) {
	v, ok := c.Get(ContextUserKey)
	if !ok {
		return model.AuthUser{}, false
	}
	user, ok := v.(model.AuthUser)
	return user, ok
}
