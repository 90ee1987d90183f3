package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/prepmate/interview-server/internal/logger"
	"github.com/prepmate/interview-server/internal/model"
)

const streakRetries = 3

// Streak maintains per-user consecutive-day activity counters.
//
// Day arithmetic happens in UTC at calendar-day granularity. A second
// activity on the same day keeps the counters and only advances the
// activity timestamp, a next-day activity extends the run, anything
// longer resets it to one. Clock regressions (activity timestamped
// before the recorded one) are ignored rather than treated as resets.
type Streak struct {
	store  model.StreakStore
	logger *logger.Logger
	locks  keyedMutex
}

func NewStreak(store model.StreakStore, logger *logger.Logger) *Streak {
	return &Streak{
		store:  store,
		logger: logger,
	}
}

var _ ActivityRecorder = (*Streak)(nil)

// RecordActivity registers qualifying activity at occurredAt and
// returns the resulting streak. The read-modify-write is serialized
// per user and retried on version conflicts from concurrent replicas.
func (s *Streak) RecordActivity(ctx context.Context, userID uuid.UUID, occurredAt time.Time) (model.Streak, error) {
	unlock := s.locks.lock(userID)
	defer unlock()

	var lastErr error
	for attempt := 0; attempt < streakRetries; attempt++ {
		streak, err := s.store.Get(ctx, userID)
		if err != nil && !errors.Is(err, model.ErrNotFound) {
			return model.Streak{}, err
		}
		streak.UserID = userID

		updated, changed := advance(streak, occurredAt)
		if !changed {
			return streak, nil
		}

		saved, err := s.store.Upsert(ctx, updated)
		if err == nil {
			return saved, nil
		}
		if !errors.Is(err, model.ErrConflict) {
			return model.Streak{}, err
		}
		lastErr = err
		s.logger.Debug("streak version conflict, retrying", "user_id", userID)
	}

	return model.Streak{}, fmt.Errorf("failed to record activity: %w", lastErr)
}

// GetStreak returns the user's streak, zero-valued if none exists yet.
func (s *Streak) GetStreak(ctx context.Context, userID uuid.UUID) (model.Streak, error) {
	streak, err := s.store.Get(ctx, userID)
	if errors.Is(err, model.ErrNotFound) {
		return model.Streak{UserID: userID}, nil
	}
	if err != nil {
		return model.Streak{}, err
	}
	return streak, nil
}

// advance applies one activity event to a streak snapshot. It reports
// whether the snapshot changed and needs to be written back.
func advance(streak model.Streak, occurredAt time.Time) (model.Streak, bool) {
	occurredAt = occurredAt.UTC()

	if streak.LastActivityAt == nil {
		streak.CurrentStreak = 1
		streak.LastActivityAt = &occurredAt
		if streak.MaxStreak < 1 {
			streak.MaxStreak = 1
		}
		return streak, true
	}

	diff := daysBetween(*streak.LastActivityAt, occurredAt)
	switch {
	case diff < 0:
		return streak, false
	case diff == 0:
		// Same day: counters stay put, only the timestamp moves forward.
		if !occurredAt.After(*streak.LastActivityAt) {
			return streak, false
		}
		streak.LastActivityAt = &occurredAt
		return streak, true
	case diff == 1:
		streak.CurrentStreak++
	default:
		streak.CurrentStreak = 1
	}

	streak.LastActivityAt = &occurredAt
	if streak.CurrentStreak > streak.MaxStreak {
		streak.MaxStreak = streak.CurrentStreak
	}
	return streak, true
}

// daysBetween counts whole calendar days from a to b in UTC.
func daysBetween(a, b time.Time) int {
	a, b = a.UTC(), b.UTC()
	ad := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	bd := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(bd.Sub(ad).Hours() / 24)
}
