package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ResumeStore persists résumé metadata, one row per user. The file
// itself lives in object storage under S3Key.
type ResumeStore interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (Resume, error)
	Upsert(ctx context.Context, resume Resume) (Resume, error)
	Delete(ctx context.Context, userID uuid.UUID) error
}

// Resume describes an uploaded résumé file.
type Resume struct {
	UserID      uuid.UUID
	FileName    string
	ContentType string
	Size        int64
	S3Key       string
	UploadedAt  time.Time
}
