package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/prepmate/interview-server/internal/logger"
	"github.com/prepmate/interview-server/internal/model"
)

// StreakService is the streak surface the handler depends on.
type StreakService interface {
	GetStreak(ctx context.Context, userID uuid.UUID) (model.Streak, error)
	RecordActivity(ctx context.Context, userID uuid.UUID, occurredAt time.Time) (model.Streak, error)
}

// Streak handles streak HTTP endpoints.
type Streak struct {
	service        StreakService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewStreak creates a new Streak handler instance.
func NewStreak(service StreakService, contextManager model.ContextManager, logger *logger.Logger) *Streak {
	return &Streak{service: service, contextManager: contextManager, logger: logger}
}

type streakResponse struct {
	CurrentStreak  int        `json:"current_streak"`
	MaxStreak      int        `json:"max_streak"`
	LastActivityAt *time.Time `json:"last_activity_at,omitempty"`
}

// Get handles GET /api/streak.
func (h *Streak) Get(c *gin.Context) {
	userID, ok := h.contextManager.GetUserIDFromContext(c.Request.Context())
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	streak, err := h.service.GetStreak(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, streakResponse{
		CurrentStreak:  streak.CurrentStreak,
		MaxStreak:      streak.MaxStreak,
		LastActivityAt: streak.LastActivityAt,
	})
}

// Record handles POST /api/streak.
func (h *Streak) Record(c *gin.Context) {
	userID, ok := h.contextManager.GetUserIDFromContext(c.Request.Context())
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	streak, err := h.service.RecordActivity(c.Request.Context(), userID, time.Now())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, streakResponse{
		CurrentStreak:  streak.CurrentStreak,
		MaxStreak:      streak.MaxStreak,
		LastActivityAt: streak.LastActivityAt,
	})
}
