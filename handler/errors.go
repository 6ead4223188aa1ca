// Package handler holds the gin handlers for the HTTP API.
package handler

import (
	"errors"

	"resourceshub/middleware"
	"resourceshub/model"
	"resourceshub/usecase"
	"resourceshub/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// respondError maps usecase errors onto the response helpers. Anything it
// does not recognise is logged and reported as a 500 with fallback.
func respondError(c *gin.Context, log zerolog.Logger, err error, fallback string) {
	if msg, ok := usecase.IsValidation(err); ok {
		utils.BadRequest(c, msg)
		return
	}

	switch {
	case errors.Is(err, usecase.ErrNotFound):
		utils.NotFound(c, "Not found")
	case errors.Is(err, usecase.ErrUserNotFound):
		utils.NotFound(c, "User not found")
	case errors.Is(err, usecase.ErrForbidden):
		utils.Forbidden(c, "You do not have permission to perform this action")
	case errors.Is(err, usecase.ErrEmailTaken), errors.Is(err, usecase.ErrUsernameTaken):
		utils.Conflict(c, err.Error())
	case errors.Is(err, usecase.ErrDatabaseUnavailable):
		log.Warn().Err(err).Str("path", c.Request.URL.Path).Msg("database unavailable")
		utils.ServiceUnavailable(c, "Database unavailable")
	case errors.Is(err, usecase.ErrConflict):
		utils.Conflict(c, "Resource already exists")
	case errors.Is(err, usecase.ErrInvalidCredentials):
		utils.Unauthorized(c, "Invalid credentials")
	case errors.Is(err, usecase.ErrInvalidToken):
		utils.Unauthorized(c, "Invalid or expired token")
	case errors.Is(err, usecase.ErrInvalid2FACode):
		utils.Unauthorized(c, "Invalid 2FA code")
	case errors.Is(err, usecase.Err2FAAlreadyEnabled), errors.Is(err, usecase.Err2FANotEnabled):
		utils.BadRequest(c, err.Error())
	default:
		log.Error().Err(err).
			Str("path", c.Request.URL.Path).
			Str("request_id", c.GetString(middleware.ContextRequestIDKey)).
			Msg(fallback)
		utils.InternalError(c, fallback)
	}
}

// currentUser returns the authenticated user or writes a 401.
func currentUser(c *gin.Context) (model.AuthUser, bool) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.Unauthorized(c, "Authentication required")
	}
	return user, ok
}
