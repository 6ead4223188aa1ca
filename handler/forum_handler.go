package handler

import (
	"net/http"
	"strconv"

	"resourceshub/dto"
	"resourceshub/usecase"
	"resourceshub/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type ForumHandler struct {
	service *usecase.ForumService
	log     zerolog.Logger
}

func NewForumHandler(service *usecase.ForumService, log zerolog.Logger) *ForumHandler {
	return &ForumHandler{service: service, log: log.With().Str("handler", "forum").Logger()}
}

// ListPosts handles GET /api/forum/posts, newest first.
func (h *ForumHandler) ListPosts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	posts, err := h.service.ListPosts(c.Request.Context(), page, limit)
	if err != nil {
		respondError(c, h.log, err, "Failed to fetch posts")
		return
	}
	c.JSON(http.StatusOK, posts)
}

func (h *ForumHandler) GetPost(c *gin.Context) {
	post, err := h.service.GetPost(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err, "Failed to fetch post")
		return
	}
	utils.Success(c, post)
}

func (h *ForumHandler) CreatePost(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Title and content are required")
		return
	}
	post, err := h.service.CreatePost(c.Request.Context(), user, req.Title, req.Content)
	if err != nil {
		respondError(c, h.log, err, "Failed to create post")
		return
	}
	utils.Created(c, "Post created successfully", post)
}

func (h *ForumHandler) UpdatePost(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.PostPatch
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}
	post, err := h.service.UpdatePost(c.Request.Context(), user, c.Param("id"), req.Title, req.Content)
	if err != nil {
		respondError(c, h.log, err, "Failed to update post")
		return
	}
	utils.SuccessMessage(c, "Post updated successfully", post)
}

func (h *ForumHandler) DeletePost(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	if err := h.service.DeletePost(c.Request.Context(), user, c.Param("id")); err != nil {
		respondError(c, h.log, err, "Failed to delete post")
		return
	}
	utils.SuccessMessage(c, "Post deleted successfully", nil)
}
