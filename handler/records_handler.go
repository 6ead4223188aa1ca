package handler

import (
	"resourceshub/dto"
	"resourceshub/usecase"
	"resourceshub/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type RecordsHandler struct {
	service *usecase.RecordService
	log     zerolog.Logger
}

func NewRecordsHandler(service *usecase.RecordService, log zerolog.Logger) *RecordsHandler {
	return &RecordsHandler{service: service, log: log.With().Str("handler", "records").Logger()}
}

func (h *RecordsHandler) List(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	records, err := h.service.List(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, h.log, err, "Failed to fetch learning records")
		return
	}
	utils.Success(c, records)
}

func (h *RecordsHandler) Get(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	record, err := h.service.Get(c.Request.Context(), user.ID, c.Param("id"))
	if err != nil {
		respondError(c, h.log, err, "Failed to fetch learning record")
		return
	}
	utils.Success(c, record)
}

// Start handles POST /api/records and opens an in-progress record.
func (h *RecordsHandler) Start(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.RecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "resourceId and title are required")
		return
	}
	record, err := h.service.Start(c.Request.Context(), user.ID, req.ResourceID, req.Title, req.Notes)
	if err != nil {
		respondError(c, h.log, err, "Failed to create learning record")
		return
	}
	utils.Created(c, "Learning record created", record)
}

func (h *RecordsHandler) Update(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.RecordPatch
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "completionStatus must be in_progress or completed")
		return
	}
	record, err := h.service.Update(c.Request.Context(), user.ID, c.Param("id"), usecase.RecordUpdate{
		CompletionStatus: req.CompletionStatus,
		Notes:            req.Notes,
		Title:            req.Title,
	})
	if err != nil {
		respondError(c, h.log, err, "Failed to update learning record")
		return
	}
	utils.SuccessMessage(c, "Learning record updated", record)
}

func (h *RecordsHandler) Delete(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), user.ID, c.Param("id")); err != nil {
		respondError(c, h.log, err, "Failed to delete learning record")
		return
	}
	utils.SuccessMessage(c, "Learning record deleted", nil)
}
