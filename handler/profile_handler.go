package handler

import (
	"resourceshub/dto"
	"resourceshub/middleware"
	"resourceshub/usecase"
	"resourceshub/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type ProfileHandler struct {
	service *usecase.ProfileService
	log     zerolog.Logger
}

func NewProfileHandler(service *usecase.ProfileService, log zerolog.Logger) *ProfileHandler {
	return &ProfileHandler{service: service, log: log.With().Str("handler", "profile").Logger()}
}

// GetProfile handles GET /api/user/profile.
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	profile, err := h.service.Profile(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, h.log, err, "Failed to fetch profile")
		return
	}
	utils.Success(c, dto.ToUserProfileResponse(profile, dto.ProfileLinks(utils.GetBaseURL(c))))
}

func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	if req.Username == "" && req.Email == "" {
		utils.BadRequest(c, "Nothing to update")
		return
	}

	profile, err := h.service.UpdateProfile(c.Request.Context(), user.ID, req.Username, req.Email)
	if err != nil {
		respondError(c, h.log, err, "Failed to update profile")
		return
	}
	utils.SuccessMessage(c, "Profile updated successfully",
		dto.ToUserProfileResponse(profile, dto.ProfileLinks(utils.GetBaseURL(c))))
}

func (h *ProfileHandler) UpdatePreferences(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.PreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	profile, err := h.service.UpdatePreferences(c.Request.Context(), user.ID, req.Topics, req.Difficulty, req.ResourceTypes)
	if err != nil {
		respondError(c, h.log, err, "Failed to update preferences")
		return
	}
	utils.SuccessMessage(c, "Preferences updated successfully", profile.Preferences)
}

func (h *ProfileHandler) History(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	history, err := h.service.History(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, h.log, err, "Failed to fetch learning history")
		return
	}
	utils.Success(c, history)
}

func (h *ProfileHandler) AddHistory(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.HistoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "resourceId is required")
		return
	}
	history, err := h.service.AddHistory(c.Request.Context(), user.ID, req.ResourceID, req.Title)
	if err != nil {
		respondError(c, h.log, err, "Failed to record history")
		return
	}
	utils.Created(c, "History entry added", history)
}

func (h *ProfileHandler) Bookmarks(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	bookmarks, err := h.service.Bookmarks(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, h.log, err, "Failed to fetch bookmarks")
		return
	}
	utils.Success(c, bookmarks)
}

func (h *ProfileHandler) AddBookmark(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.BookmarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "resourceId is required")
		return
	}
	bookmarks, err := h.service.AddBookmark(c.Request.Context(), user.ID, req.ResourceID)
	if err != nil {
		respondError(c, h.log, err, "Failed to add bookmark")
		return
	}
	utils.SuccessMessage(c, "Bookmark added", bookmarks)
}

func (h *ProfileHandler) RemoveBookmark(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	bookmarks, err := h.service.RemoveBookmark(c.Request.Context(), user.ID, c.Param("resourceId"))
	if err != nil {
		respondError(c, h.log, err, "Failed to remove bookmark")
		return
	}
	utils.SuccessMessage(c, "Bookmark removed", bookmarks)
}

// Stats handles GET /api/user/stats.
func (h *ProfileHandler) Stats(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	stats, err := h.service.Stats(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, h.log, err, "Failed to fetch stats")
		return
	}
	utils.Success(c, stats)
}

// DeleteAccount handles DELETE /api/user. Forum posts are kept.
func (h *ProfileHandler) DeleteAccount(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	if err := h.service.DeleteAccount(c.Request.Context(), user.ID); err != nil {
		respondError(c, h.log, err, "Failed to delete account")
		return
	}
	middleware.ClearSessionCookie(c)
	utils.SuccessMessage(c, "Account deleted successfully", nil)
}
