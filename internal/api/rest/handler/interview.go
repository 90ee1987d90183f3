package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/prepmate/interview-server/internal/logger"
	"github.com/prepmate/interview-server/internal/model"
)

// InterviewService is the orchestrator surface the handler depends on.
type InterviewService interface {
	Start(ctx context.Context, params model.StartInterviewParams) (model.Interview, error)
	Continue(ctx context.Context, sessionID uuid.UUID, ownerID uuid.UUID, answer string) (string, error)
	End(ctx context.Context, sessionID uuid.UUID, ownerID uuid.UUID) (model.Interview, error)
	Get(ctx context.Context, sessionID uuid.UUID, ownerID uuid.UUID) (model.Interview, error)
	List(ctx context.Context, ownerID uuid.UUID, page int, pageSize int) ([]model.Interview, int, error)
	Delete(ctx context.Context, sessionID uuid.UUID, ownerID uuid.UUID) error
}

// Interview handles interview session HTTP endpoints.
type Interview struct {
	service        InterviewService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewInterview creates a new Interview handler instance.
func NewInterview(service InterviewService, contextManager model.ContextManager, logger *logger.Logger) *Interview {
	return &Interview{service: service, contextManager: contextManager, logger: logger}
}

type startInterviewRequest struct {
	Domain     string `json:"domain" binding:"required"`
	Difficulty string `json:"difficulty" binding:"required"`
	Answer     string `json:"answer" binding:"required"`
}

type continueInterviewRequest struct {
	Answer string `json:"answer" binding:"required"`
}

type turnResponse struct {
	Question   string     `json:"question"`
	Answer     string     `json:"answer,omitempty"`
	AnsweredAt *time.Time `json:"answered_at,omitempty"`
}

type interviewResponse struct {
	ID         uuid.UUID      `json:"id"`
	Domain     string         `json:"domain"`
	Difficulty string         `json:"difficulty"`
	Status     string         `json:"status"`
	Score      int            `json:"score,omitempty"`
	Transcript []turnResponse `json:"transcript"`
	CreatedAt  time.Time      `json:"created_at"`
	EndedAt    *time.Time     `json:"ended_at,omitempty"`
}

func toInterviewResponse(i model.Interview) interviewResponse {
	turns := make([]turnResponse, 0, len(i.Transcript))
	for _, t := range i.Transcript {
		turns = append(turns, turnResponse{Question: t.Question, Answer: t.Answer, AnsweredAt: t.AnsweredAt})
	}
	return interviewResponse{
		ID:         i.ID,
		Domain:     string(i.Domain),
		Difficulty: string(i.Difficulty),
		Status:     string(i.Status),
		Score:      i.Score,
		Transcript: turns,
		CreatedAt:  i.CreatedAt,
		EndedAt:    i.EndedAt,
	}
}

// Start handles POST /api/interviews.
func (h *Interview) Start(c *gin.Context) {
	ownerID, ok := h.contextManager.GetUserIDFromContext(c.Request.Context())
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req startInterviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	interview, err := h.service.Start(c.Request.Context(), model.StartInterviewParams{
		OwnerID:       ownerID,
		Domain:        model.Domain(req.Domain),
		Difficulty:    model.Difficulty(req.Difficulty),
		OpeningAnswer: req.Answer,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"session_id": interview.ID,
		"question":   interview.Transcript[len(interview.Transcript)-1].Question,
	})
}

// Continue handles PATCH /api/interviews/:id.
func (h *Interview) Continue(c *gin.Context) {
	ownerID, ok := h.contextManager.GetUserIDFromContext(c.Request.Context())
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid session id"})
		return
	}

	var req continueInterviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	question, err := h.service.Continue(c.Request.Context(), id, ownerID, req.Answer)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"question": question})
}

// End handles PATCH /api/interviews/:id/end.
func (h *Interview) End(c *gin.Context) {
	ownerID, ok := h.contextManager.GetUserIDFromContext(c.Request.Context())
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid session id"})
		return
	}

	interview, err := h.service.End(c.Request.Context(), id, ownerID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"score":    interview.Score,
		"ended_at": interview.EndedAt,
	})
}

// Get handles GET /api/interviews/:id.
func (h *Interview) Get(c *gin.Context) {
	ownerID, ok := h.contextManager.GetUserIDFromContext(c.Request.Context())
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid session id"})
		return
	}

	interview, err := h.service.Get(c.Request.Context(), id, ownerID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, toInterviewResponse(interview))
}

// List handles GET /api/interviews.
func (h *Interview) List(c *gin.Context) {
	ownerID, ok := h.contextManager.GetUserIDFromContext(c.Request.Context())
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	interviews, total, err := h.service.List(c.Request.Context(), ownerID, page, pageSize)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	items := make([]interviewResponse, 0, len(interviews))
	for _, i := range interviews {
		items = append(items, toInterviewResponse(i))
	}

	c.JSON(http.StatusOK, gin.H{
		"interviews": items,
		"total":      total,
		"page":       page,
		"page_size":  pageSize,
	})
}

// Delete handles DELETE /api/interviews/:id.
func (h *Interview) Delete(c *gin.Context) {
	ownerID, ok := h.contextManager.GetUserIDFromContext(c.Request.Context())
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid session id"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id, ownerID); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}
