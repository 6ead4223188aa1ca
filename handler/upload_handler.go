package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"resourceshub/dto"
	"resourceshub/repository"
	"resourceshub/usecase"
	"resourceshub/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Ingester runs the CSV ingest pipeline. usecase.IngestService implements it.
type Ingester interface {
	ProcessFile(ctx context.Context, path string, format usecase.Format) (*usecase.IngestResult, error)
}

type UploadOptions struct {
	Dir            string
	ServerFileRoot string
	CatalogCSVPath string
}

type UploadHandler struct {
	ingest Ingester
	status func(ctx context.Context) (repository.DBStatus, error)
	opts   UploadOptions
	log    zerolog.Logger
	now    func() time.Time
}

func NewUploadHandler(ingest Ingester, status func(ctx context.Context) (repository.DBStatus, error), opts UploadOptions, log zerolog.Logger) *UploadHandler {
	return &UploadHandler{
		ingest: ingest,
		status: status,
		opts:   opts,
		log:    log.With().Str("handler", "upload").Logger(),
		now:    time.Now,
	}
}

// DBStatus handles GET /api/upload/db-status.
func (h *UploadHandler) DBStatus(c *gin.Context) {
	status, err := h.status(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("database status check failed")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":  "Database status check failed: " + err.Error(),
			"status": status,
		})
		return
	}
	c.JSON(http.StatusOK, status)
}

// BulkUpload handles POST /api/upload/bulk-upload. The uploaded file is
// stored under the upload dir for the duration of the ingest.
func (h *UploadHandler) BulkUpload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		utils.BadRequest(c, "No file uploaded")
		return
	}

	if err := os.MkdirAll(h.opts.Dir, 0o755); err != nil {
		respondError(c, h.log, fmt.Errorf("creating upload dir: %w", err), "Error processing file")
		return
	}
	name := filepath.Base(file.Filename)
	dst := filepath.Join(h.opts.Dir, fmt.Sprintf("%d-%s", h.now().UnixMilli(), name))
	if err := c.SaveUploadedFile(file, dst); err != nil {
		respondError(c, h.log, fmt.Errorf("saving upload: %w", err), "Error processing file")
		return
	}
	defer func() {
		if err := os.Remove(dst); err != nil && !errors.Is(err, os.ErrNotExist) {
			h.log.Warn().Err(err).Str("path", dst).Msg("failed to remove uploaded file")
		}
	}()

	h.log.Info().Str("file", name).Int64("size", file.Size).Msg("processing uploaded file")
	h.process(c, dst, usecase.DetectFormat(name))
}

// ProcessServerFile handles POST /api/upload/process-server-file.
func (h *UploadHandler) ProcessServerFile(c *gin.Context) {
	var req dto.ServerFileRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.FilePath == "" {
		utils.BadRequest(c, "File path is required")
		return
	}

	path, err := usecase.ResolveServerFile(h.opts.ServerFileRoot, req.FilePath)
	if errors.Is(err, usecase.ErrServerFileOutsideDir) {
		utils.Forbidden(c, "File path is outside the allowed directory")
		return
	}
	if err != nil {
		respondError(c, h.log, err, "Error processing file")
		return
	}
	h.process(c, path, usecase.FormatAuto)
}

// ProcessOnlineCourses handles POST /api/upload/process-online-courses. It
// always uses the positional Online_Courses layout.
func (h *UploadHandler) ProcessOnlineCourses(c *gin.Context) {
	var req dto.ServerFileRequest
	// Body is optional
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	path := h.opts.CatalogCSVPath
	if req.FilePath != "" {
		resolved, err := usecase.ResolveServerFile(h.opts.ServerFileRoot, req.FilePath)
		if errors.Is(err, usecase.ErrServerFileOutsideDir) {
			utils.Forbidden(c, "File path is outside the allowed directory")
			return
		}
		if err != nil {
			respondError(c, h.log, err, "Error processing file")
			return
		}
		path = resolved
	}
	h.process(c, path, usecase.FormatPositional)
}

func (h *UploadHandler) process(c *gin.Context, path string, format usecase.Format) {
	result, err := h.ingest.ProcessFile(c.Request.Context(), path, format)
	if errors.Is(err, usecase.ErrNotFound) {
		utils.NotFound(c, "File not found: "+filepath.Base(path))
		return
	}
	if err != nil {
		respondError(c, h.log, err, "Error processing file")
		return
	}
	c.JSON(http.StatusOK, result)
}
