package handler

import (
	"resourceshub/middleware"
	"resourceshub/utils"

	"github.com/gin-gonic/gin"
)

// ActiveSessions handles GET /api/sessions/active. The caller's own session
// is flagged as current.
func (h *AuthHandler) ActiveSessions(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	sessions, err := h.service.ActiveSessions(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, h.log, err, "Failed to fetch sessions")
		return
	}

	utils.Success(c, gin.H{
		"sessions": sessions,
		"current":  middleware.SessionID(c),
	})
}

func (h *AuthHandler) LogoutAllSessions(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	ended, err := h.service.LogoutAll(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, h.log, err, "Failed to end all sessions")
		return
	}

	// Clear current session cookie
	middleware.ClearSessionCookie(c)

	utils.Success(c, gin.H{
		"message": "Successfully logged out of all sessions",
		"ended":   ended,
	})
}
