package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/prepmate/interview-server/internal/model"
)

var _ model.StreakStore = (*StreakRepository)(nil)

type StreakRepository struct {
	db *Connection
}

func NewStreakRepository(db *Connection) *StreakRepository {
	return &StreakRepository{
		db: db,
	}
}

func (r *StreakRepository) Get(ctx context.Context, userID uuid.UUID) (model.Streak, error) {
	query := `
		SELECT user_id, current_streak, max_streak, last_activity_at, version
		FROM streaks
		WHERE user_id = $1`

	var streak model.Streak
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&streak.UserID, &streak.CurrentStreak, &streak.MaxStreak, &streak.LastActivityAt, &streak.Version,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Streak{}, model.ErrNotFound
		}
		return model.Streak{}, err
	}

	return streak, nil
}

// Upsert inserts a fresh streak row or replaces an existing one guarded
// by its version. A lost race surfaces as ErrConflict.
func (r *StreakRepository) Upsert(ctx context.Context, streak model.Streak) (model.Streak, error) {
	query := `
		INSERT INTO streaks (user_id, current_streak, max_streak, last_activity_at, version)
		VALUES ($1, $2, $3, $4, 1)
		ON CONFLICT (user_id) DO UPDATE
		SET current_streak = EXCLUDED.current_streak,
		    max_streak = EXCLUDED.max_streak,
		    last_activity_at = EXCLUDED.last_activity_at,
		    version = streaks.version + 1
		WHERE streaks.version = $5
		RETURNING version`

	saved := streak
	err := r.db.QueryRow(ctx, query,
		streak.UserID, streak.CurrentStreak, streak.MaxStreak, streak.LastActivityAt, streak.Version,
	).Scan(&saved.Version)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Streak{}, model.ErrConflict
		}
		return model.Streak{}, err
	}

	return saved, nil
}
