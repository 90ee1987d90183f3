package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// StreakStore persists per-user daily activity streaks.
type StreakStore interface {
	Get(ctx context.Context, userID uuid.UUID) (Streak, error)
	Upsert(ctx context.Context, streak Streak) (Streak, error)
}

// Streak tracks consecutive calendar days with qualifying activity.
// Invariant: MaxStreak >= CurrentStreak.
type Streak struct {
	UserID         uuid.UUID
	CurrentStreak  int
	MaxStreak      int
	LastActivityAt *time.Time
	Version        int
}
