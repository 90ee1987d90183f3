package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/prepmate/interview-server/internal/model"
)

var _ model.InterviewStore = (*InterviewRepository)(nil)

type InterviewRepository struct {
	db *Connection
}

func NewInterviewRepository(db *Connection) *InterviewRepository {
	return &InterviewRepository{
		db: db,
	}
}

func (r *InterviewRepository) Create(ctx context.Context, interview model.Interview) (model.Interview, error) {
	transcript, err := json.Marshal(interview.Transcript)
	if err != nil {
		return model.Interview{}, fmt.Errorf("failed to marshal transcript: %w", err)
	}

	query := `
		INSERT INTO interviews (id, owner_id, domain, difficulty, remote_session_id, transcript, status, score)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING version, created_at`

	saved := interview
	err = r.db.QueryRow(ctx, query,
		interview.ID, interview.OwnerID, string(interview.Domain), string(interview.Difficulty),
		interview.RemoteSessionID, transcript, string(interview.Status), interview.Score,
	).Scan(&saved.Version, &saved.CreatedAt)
	if err != nil {
		return model.Interview{}, err
	}

	return saved, nil
}

func (r *InterviewRepository) GetByID(ctx context.Context, id uuid.UUID, ownerID uuid.UUID) (model.Interview, error) {
	query := `
		SELECT id, owner_id, domain, difficulty, remote_session_id, transcript, status, score, version, created_at, ended_at
		FROM interviews
		WHERE id = $1 AND owner_id = $2`

	return r.scanInterview(r.db.QueryRow(ctx, query, id, ownerID))
}

// UpdateTranscript persists the transcript of an active session with a
// compare-and-swap on the version column. A concurrent writer racing
// from the same snapshot gets ErrConflict.
func (r *InterviewRepository) UpdateTranscript(ctx context.Context, interview model.Interview) (model.Interview, error) {
	transcript, err := json.Marshal(interview.Transcript)
	if err != nil {
		return model.Interview{}, fmt.Errorf("failed to marshal transcript: %w", err)
	}

	query := `
		UPDATE interviews
		SET transcript = $3, version = version + 1
		WHERE id = $1 AND owner_id = $2 AND status = 'active' AND version = $4
		RETURNING version`

	updated := interview
	err = r.db.QueryRow(ctx, query, interview.ID, interview.OwnerID, transcript, interview.Version).Scan(&updated.Version)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Interview{}, r.diagnoseWriteMiss(ctx, interview.ID, interview.OwnerID)
		}
		return model.Interview{}, err
	}

	return updated, nil
}

func (r *InterviewRepository) SetEnded(ctx context.Context, id uuid.UUID, ownerID uuid.UUID, score int, endedAt time.Time, version int) error {
	query := `
		UPDATE interviews
		SET status = 'ended', score = $3, ended_at = $4, version = version + 1
		WHERE id = $1 AND owner_id = $2 AND status = 'active' AND version = $5`

	cmd, err := r.db.Exec(ctx, query, id, ownerID, score, endedAt, version)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return r.diagnoseWriteMiss(ctx, id, ownerID)
	}
	return nil
}

func (r *InterviewRepository) Delete(ctx context.Context, id uuid.UUID, ownerID uuid.UUID) error {
	const query = `DELETE FROM interviews WHERE id = $1 AND owner_id = $2`
	cmd, err := r.db.Exec(ctx, query, id, ownerID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *InterviewRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, page int, pageSize int) ([]model.Interview, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM interviews WHERE owner_id = $1`, ownerID).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT id, owner_id, domain, difficulty, remote_session_id, transcript, status, score, version, created_at, ended_at
		FROM interviews
		WHERE owner_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.db.Query(ctx, query, ownerID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var interviews []model.Interview
	for rows.Next() {
		interview, err := r.scanInterview(rows)
		if err != nil {
			return nil, 0, err
		}
		interviews = append(interviews, interview)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return interviews, total, nil
}

// diagnoseWriteMiss distinguishes why a guarded UPDATE touched no rows:
// the session is gone (or unowned), already ended, or the version moved.
func (r *InterviewRepository) diagnoseWriteMiss(ctx context.Context, id uuid.UUID, ownerID uuid.UUID) error {
	var status string
	err := r.db.QueryRow(ctx, `SELECT status FROM interviews WHERE id = $1 AND owner_id = $2`, id, ownerID).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.ErrNotFound
		}
		return err
	}
	if model.InterviewStatus(status) != model.StatusActive {
		return model.ErrInvalidState
	}
	return model.ErrConflict
}

func (r *InterviewRepository) scanInterview(row pgx.Row) (model.Interview, error) {
	var (
		interview  model.Interview
		domain     string
		difficulty string
		status     string
		transcript []byte
	)
	err := row.Scan(
		&interview.ID, &interview.OwnerID, &domain, &difficulty,
		&interview.RemoteSessionID, &transcript, &status, &interview.Score,
		&interview.Version, &interview.CreatedAt, &interview.EndedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Interview{}, model.ErrNotFound
		}
		return model.Interview{}, err
	}

	if err := json.Unmarshal(transcript, &interview.Transcript); err != nil {
		return model.Interview{}, fmt.Errorf("failed to unmarshal transcript: %w", err)
	}
	interview.Domain = model.Domain(domain)
	interview.Difficulty = model.Difficulty(difficulty)
	interview.Status = model.InterviewStatus(status)

	return interview, nil
}
