package handler

import (
	"net/http"

	"resourceshub/dto"
	"resourceshub/usecase"
	"resourceshub/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type ResourcesHandler struct {
	service *usecase.ResourceService
	log     zerolog.Logger
}

func NewResourcesHandler(service *usecase.ResourceService, log zerolog.Logger) *ResourcesHandler {
	return &ResourcesHandler{service: service, log: log.With().Str("handler", "resources").Logger()}
}

// Categories handles GET /api/resources/categories.
func (h *ResourcesHandler) Categories(c *gin.Context) {
	categories, err := h.service.Categories(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err, "Error fetching categories")
		return
	}
	c.JSON(http.StatusOK, categories)
}

// Courses handles GET /api/resources/courses. The page is returned bare,
// without the response envelope.
func (h *ResourcesHandler) Courses(c *gin.Context) {
	var q dto.CourseQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		utils.BadRequest(c, "Invalid query parameters")
		return
	}
	page, err := h.service.Courses(c.Request.Context(), q)
	if err != nil {
		respondError(c, h.log, err, "Error fetching courses")
		return
	}
	c.JSON(http.StatusOK, page)
}

// Search handles GET /api/resources/search.
func (h *ResourcesHandler) Search(c *gin.Context) {
	var q dto.SearchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		utils.BadRequest(c, "Invalid query parameters")
		return
	}
	page, err := h.service.Search(c.Request.Context(), q.Query, q.Page, q.Limit)
	if err != nil {
		respondError(c, h.log, err, "Error searching courses")
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *ResourcesHandler) CatalogCourse(c *gin.Context) {
	course, err := h.service.CatalogCourse(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err, "Error fetching course")
		return
	}
	c.JSON(http.StatusOK, course)
}

// List handles GET /api/resources over the stored resources.
func (h *ResourcesHandler) List(c *gin.Context) {
	var q dto.ResourceQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		utils.BadRequest(c, "Invalid query parameters")
		return
	}
	page, err := h.service.ListStored(c.Request.Context(), q.Filter(), q.Page, q.Limit)
	if err != nil {
		respondError(c, h.log, err, "Error fetching resources")
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *ResourcesHandler) ByCategory(c *gin.Context) {
	var q dto.ResourceQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		utils.BadRequest(c, "Invalid query parameters")
		return
	}
	q.Category = c.Param("category")
	page, err := h.service.ListStored(c.Request.Context(), q.Filter(), q.Page, q.Limit)
	if err != nil {
		respondError(c, h.log, err, "Error fetching resources")
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *ResourcesHandler) Get(c *gin.Context) {
	res, err := h.service.GetStored(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err, "Error fetching resource")
		return
	}
	utils.Success(c, res)
}

func (h *ResourcesHandler) Create(c *gin.Context) {
	var req dto.ResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	res, err := h.service.CreateStored(c.Request.Context(), req.ToModel())
	if err != nil {
		respondError(c, h.log, err, "Error creating resource")
		return
	}
	utils.Created(c, "Resource created successfully", res)
}

func (h *ResourcesHandler) Update(c *gin.Context) {
	var req dto.ResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	res, err := h.service.UpdateStored(c.Request.Context(), c.Param("id"), req.ToModel())
	if err != nil {
		respondError(c, h.log, err, "Error updating resource")
		return
	}
	utils.SuccessMessage(c, "Resource updated successfully", res)
}

func (h *ResourcesHandler) Delete(c *gin.Context) {
	if err := h.service.DeleteStored(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.log, err, "Error deleting resource")
		return
	}
	utils.SuccessMessage(c, "Resource deleted successfully", nil)
}
