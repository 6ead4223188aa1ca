package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"resourceshub/dto"
	"resourceshub/metrics"
	"resourceshub/middleware"
	"resourceshub/usecase"
	"resourceshub/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RefreshTokenHeader carries the refresh token on logout so it can be revoked
// together with the access token.
const RefreshTokenHeader = "Refresh-Token"

type AuthHandler struct {
	service    *usecase.AuthService
	sessionTTL time.Duration
	log        zerolog.Logger
}

func NewAuthHandler(service *usecase.AuthService, sessionTTL time.Duration, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{service: service, sessionTTL: sessionTTL, log: log.With().Str("handler", "auth").Logger()}
}

func clientInfo(c *gin.Context) usecase.ClientInfo {
	return usecase.ClientInfo{UserAgent: c.Request.UserAgent(), IP: c.ClientIP()}
}

func (h *AuthHandler) authResponse(c *gin.Context, res *usecase.AuthResult) dto.AuthResponse {
	out := dto.AuthResponse{
		User:         dto.ToUserProfileResponse(res.User, nil),
		AccessToken:  res.Tokens.AccessToken,
		RefreshToken: res.Tokens.RefreshToken,
		ExpiresAt:    res.Tokens.ExpiresAt,
	}
	if res.Session != nil {
		out.SessionID = res.Session.SessionID
		middleware.SetSessionCookie(c, res.Session.SessionID, h.sessionTTL)
	}
	return out
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		metrics.TrackError("auth", "invalid_request")
		utils.BadRequest(c, "Invalid request: username must be 3-30 characters, email must be valid and password must be at least 6 characters with a number and a special character")
		return
	}

	res, err := h.service.Register(c.Request.Context(), req.Username, req.Email, req.Password, clientInfo(c))
	if err != nil {
		if errors.Is(err, usecase.ErrConflict) {
			utils.Conflict(c, "User already exists")
			return
		}
		respondError(c, h.log, err, "Failed to register user")
		return
	}
	utils.Created(c, "User registered successfully", h.authResponse(c, res))
}

// Login handles POST /api/auth/login. Either email or username identifies
// the account.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		metrics.TrackAuthAttempt("failure", "validation")
		utils.BadRequest(c, "Invalid Request")
		return
	}
	identifier := req.Email
	if strings.TrimSpace(identifier) == "" {
		identifier = req.Username
	}

	res, err := h.service.Login(c.Request.Context(), identifier, req.Password, req.TwoFactorCode, clientInfo(c))
	if err != nil {
		respondError(c, h.log, err, "Login failed")
		return
	}

	if res.Requires2FA {
		utils.Success(c, gin.H{
			"requires_2fa": true,
			"message":      "2FA code required",
			"user_id":      res.User.UserID,
		})
		return
	}

	response := gin.H{
		"message": "Login successful",
		"auth":    h.authResponse(c, &res.AuthResult),
	}
	if res.Notice != "" {
		response["notice"] = res.Notice
	}
	utils.Success(c, response)
}

// Refresh handles POST /api/auth/refresh with the refresh token as bearer.
func (h *AuthHandler) Refresh(c *gin.Context) {
	token := middleware.BearerToken(c)
	if token == "" {
		utils.Unauthorized(c, "Refresh token required")
		return
	}
	res, err := h.service.Refresh(c.Request.Context(), token)
	if err != nil {
		respondError(c, h.log, err, "Failed to refresh token")
		return
	}
	utils.SuccessMessage(c, "Token refreshed", h.authResponse(c, res))
}

// Logout handles POST /api/user/logout.
func (h *AuthHandler) Logout(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	access := c.GetString(middleware.ContextTokenKey)
	refresh := c.GetHeader(RefreshTokenHeader)

	if err := h.service.Logout(c.Request.Context(), user.ID, access, refresh, middleware.SessionID(c)); err != nil {
		respondError(c, h.log, err, "Failed to logout")
		return
	}
	middleware.ClearSessionCookie(c)
	utils.SuccessMessage(c, "Successfully logged out", nil)
}

// ChangePassword handles PUT /api/user/password.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	err := h.service.ChangePassword(c.Request.Context(), user.ID, req.OldPassword, req.NewPassword)
	var tooSoon *usecase.PasswordChangeTooSoonError
	switch {
	case errors.As(err, &tooSoon):
		utils.TooManyRequests(c, tooSoon.Error(), gin.H{"next_allowed_change": tooSoon.NextAllowed})
		return
	case errors.Is(err, usecase.ErrInvalidCredentials):
		utils.Unauthorized(c, "Current password is incorrect")
		return
	case err != nil:
		respondError(c, h.log, err, "Failed to update password")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password updated successfully"})
}
