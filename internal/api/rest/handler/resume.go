package handler

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/prepmate/interview-server/internal/logger"
	"github.com/prepmate/interview-server/internal/model"
	"github.com/prepmate/interview-server/internal/service"
)

// maxResumeSize bounds uploaded résumé files.
const maxResumeSize = 10 << 20 // 10 MiB

// ResumeService is the résumé surface the handler depends on.
type ResumeService interface {
	Upload(ctx context.Context, params service.UploadParams) (model.Resume, error)
	Download(ctx context.Context, userID uuid.UUID) (model.Resume, io.ReadCloser, error)
	Delete(ctx context.Context, userID uuid.UUID) error
}

// Resume handles résumé HTTP endpoints.
type Resume struct {
	service        ResumeService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewResume creates a new Resume handler instance.
func NewResume(service ResumeService, contextManager model.ContextManager, logger *logger.Logger) *Resume {
	return &Resume{service: service, contextManager: contextManager, logger: logger}
}

type resumeResponse struct {
	FileName    string    `json:"file_name"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

// Upload handles POST /api/resume. The file arrives as multipart form
// field "file".
func (h *Resume) Upload(c *gin.Context) {
	userID, ok := h.contextManager.GetUserIDFromContext(c.Request.Context())
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "missing file"})
		return
	}
	if fileHeader.Size > maxResumeSize {
		c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, h.logger, fmt.Errorf("failed to open uploaded file: %w", err))
		return
	}
	defer file.Close()

	resume, err := h.service.Upload(c.Request.Context(), service.UploadParams{
		UserID:      userID,
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Size:        fileHeader.Size,
		Reader:      file,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, resumeResponse{
		FileName:    resume.FileName,
		ContentType: resume.ContentType,
		Size:        resume.Size,
		UploadedAt:  resume.UploadedAt,
	})
}

// Download handles GET /api/resume, streaming the stored file back.
func (h *Resume) Download(c *gin.Context) {
	userID, ok := h.contextManager.GetUserIDFromContext(c.Request.Context())
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	resume, rc, err := h.service.Download(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	defer rc.Close()

	contentType := resume.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	c.DataFromReader(http.StatusOK, resume.Size, contentType, rc, map[string]string{
		"Content-Disposition": fmt.Sprintf("attachment; filename=%q", resume.FileName),
	})
}

// Delete handles DELETE /api/resume.
func (h *Resume) Delete(c *gin.Context) {
	userID, ok := h.contextManager.GetUserIDFromContext(c.Request.Context())
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), userID); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}
