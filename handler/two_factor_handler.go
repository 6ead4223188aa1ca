package handler

import (
	"resourceshub/dto"
	"resourceshub/utils"

	"github.com/gin-gonic/gin"
)

// Setup2FA handles POST /api/user/2fa/setup.
func (h *AuthHandler) Setup2FA(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	setup, err := h.service.Setup2FA(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, h.log, err, "Failed to set up 2FA")
		return
	}
	utils.Success(c, setup)
}

func (h *AuthHandler) Enable2FA(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.TwoFactorEnableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request")
		return
	}

	codes, err := h.service.Enable2FA(c.Request.Context(), user.ID, req.Secret, req.Code)
	if err != nil {
		respondError(c, h.log, err, "Failed to enable 2FA")
		return
	}
	utils.Success(c, gin.H{
		"message":        "2FA enabled successfully",
		"recovery_codes": codes,
		"warning":        "Save these recovery codes securely. They will not be shown again.",
	})
}

func (h *AuthHandler) Disable2FA(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.TwoFactorCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request")
		return
	}
	if err := h.service.Disable2FA(c.Request.Context(), user.ID, req.Code); err != nil {
		respondError(c, h.log, err, "Failed to disable 2FA")
		return
	}
	utils.SuccessMessage(c, "2FA disabled successfully", nil)
}

// UseRecoveryCode handles POST /api/user/2fa/recovery.
func (h *AuthHandler) UseRecoveryCode(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.RecoveryCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request")
		return
	}

	remaining, err := h.service.UseRecoveryCode(c.Request.Context(), user.ID, req.RecoveryCode)
	if err != nil {
		respondError(c, h.log, err, "Failed to use recovery code")
		return
	}
	utils.Success(c, gin.H{
		"message":         "Recovery code accepted",
		"remaining_codes": remaining,
	})
}
