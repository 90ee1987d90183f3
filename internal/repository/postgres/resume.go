package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/prepmate/interview-server/internal/model"
)

var _ model.ResumeStore = (*ResumeRepository)(nil)

type ResumeRepository struct {
	db *Connection
}

func NewResumeRepository(db *Connection) *ResumeRepository {
	return &ResumeRepository{
		db: db,
	}
}

func (r *ResumeRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (model.Resume, error) {
	query := `
		SELECT user_id, file_name, content_type, size, s3_key, uploaded_at
		FROM resumes
		WHERE user_id = $1`

	var resume model.Resume
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&resume.UserID, &resume.FileName, &resume.ContentType, &resume.Size, &resume.S3Key, &resume.UploadedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Resume{}, model.ErrNotFound
		}
		return model.Resume{}, err
	}

	return resume, nil
}

func (r *ResumeRepository) Upsert(ctx context.Context, resume model.Resume) (model.Resume, error) {
	query := `
		INSERT INTO resumes (user_id, file_name, content_type, size, s3_key, uploaded_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id) DO UPDATE
		SET file_name = EXCLUDED.file_name,
		    content_type = EXCLUDED.content_type,
		    size = EXCLUDED.size,
		    s3_key = EXCLUDED.s3_key,
		    uploaded_at = EXCLUDED.uploaded_at
		RETURNING uploaded_at`

	saved := resume
	err := r.db.QueryRow(ctx, query,
		resume.UserID, resume.FileName, resume.ContentType, resume.Size, resume.S3Key, resume.UploadedAt,
	).Scan(&saved.UploadedAt)
	if err != nil {
		return model.Resume{}, err
	}

	return saved, nil
}

func (r *ResumeRepository) Delete(ctx context.Context, userID uuid.UUID) error {
	const query = `DELETE FROM resumes WHERE user_id = $1`
	cmd, err := r.db.Exec(ctx, query, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}
