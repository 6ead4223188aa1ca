package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"resourceshub/usecase"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const (
	SessionCookie     = "session_id"
	SessionHeader     = "X-Session-ID"
	ContextSessionKey = "session_id"
)

type SessionToucher interface {
	TouchSession(ctx context.Context, userID, sessionID string) error
}

// SessionID reads the session from the cookie, falling back to the header.
func SessionID(c *gin.Context) string {
	if id, err := c.Cookie(SessionCookie); err == nil && id != "" {
		return id
	}
	return c.GetHeader(SessionHeader)
}

// SessionMiddleware records activity on the caller's login session. It runs
// after AuthMiddleware; requests without a session pass through.
func SessionMiddleware(sessions SessionToucher, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := SessionID(c)
		user, ok := CurrentUser(c)
		if sessionID == "" || !ok {
			c.Next()
			return
		}

		err := sessions.TouchSession(c.Request.Context(), user.ID, sessionID)
		switch {
		case errors.Is(err, usecase.ErrNotFound):
			ClearSessionCookie(c)
		case err != nil:
			log.Warn().Err(err).Str("session_id", sessionID).Msg("failed to touch session")
		default:
			c.Set(ContextSessionKey, sessionID)
		}
		c.Next()
	}
}

func SetSessionCookie(c *gin.Context, sessionID string, ttl time.Duration) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, sessionID, int(ttl.Seconds()), "/", "", true, true)
}

func ClearSessionCookie(c *gin.Context) {
	c.SetCookie(SessionCookie, "", -1, "/", "", true, true)
}
