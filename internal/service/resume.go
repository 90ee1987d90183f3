package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/prepmate/interview-server/internal/logger"
	"github.com/prepmate/interview-server/internal/model"
)

// Resume handles résumé upload, download and removal. Files live in
// object storage, metadata in the database, one résumé per user.
// Uploading again replaces the previous file.
type Resume struct {
	store   model.ResumeStore
	storage model.Storage
	logger  *logger.Logger
	now     func() time.Time
}

func NewResume(store model.ResumeStore, storage model.Storage, logger *logger.Logger) *Resume {
	return &Resume{
		store:   store,
		storage: storage,
		logger:  logger,
		now:     time.Now,
	}
}

// UploadParams describes an incoming résumé file.
type UploadParams struct {
	UserID      uuid.UUID
	FileName    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// Upload stores the file then the metadata. If the metadata write
// fails the uploaded object is removed again; if an older file is
// being replaced it is deleted only after the metadata points at the
// new one.
func (s *Resume) Upload(ctx context.Context, params UploadParams) (model.Resume, error) {
	if params.FileName == "" {
		return model.Resume{}, fmt.Errorf("%w: file name is required", model.ErrInvalidArgument)
	}
	if params.Size <= 0 {
		return model.Resume{}, fmt.Errorf("%w: empty file", model.ErrInvalidArgument)
	}

	previous, err := s.store.GetByUserID(ctx, params.UserID)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		return model.Resume{}, err
	}
	previousKey := previous.S3Key

	key := fmt.Sprintf("user-%s/resume-%s", params.UserID, uuid.New())
	if err := s.storage.Upload(ctx, key, params.Reader); err != nil {
		return model.Resume{}, fmt.Errorf("failed to upload resume: %w", err)
	}

	resume := model.Resume{
		UserID:      params.UserID,
		FileName:    params.FileName,
		ContentType: params.ContentType,
		Size:        params.Size,
		S3Key:       key,
		UploadedAt:  s.now(),
	}

	saved, err := s.store.Upsert(ctx, resume)
	if err != nil {
		if delErr := s.storage.Delete(ctx, key); delErr != nil {
			s.logger.Error("failed to delete orphaned resume object", "key", key, "error", delErr)
		}
		return model.Resume{}, fmt.Errorf("failed to save resume: %w", err)
	}

	if previousKey != "" && previousKey != key {
		if err := s.storage.Delete(ctx, previousKey); err != nil {
			s.logger.Error("failed to delete replaced resume object", "key", previousKey, "error", err)
		}
	}

	return saved, nil
}

// Download returns the résumé metadata and a reader over its content.
// The caller owns closing the reader.
func (s *Resume) Download(ctx context.Context, userID uuid.UUID) (model.Resume, io.ReadCloser, error) {
	resume, err := s.store.GetByUserID(ctx, userID)
	if err != nil {
		return model.Resume{}, nil, err
	}

	rc, err := s.storage.Download(ctx, resume.S3Key)
	if err != nil {
		return model.Resume{}, nil, fmt.Errorf("failed to download resume: %w", err)
	}

	return resume, rc, nil
}

// Delete removes the metadata row first, then the object. A dangling
// object after a crash is harmless; dangling metadata is not.
func (s *Resume) Delete(ctx context.Context, userID uuid.UUID) error {
	resume, err := s.store.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.store.Delete(ctx, userID); err != nil {
		return fmt.Errorf("failed to delete resume: %w", err)
	}

	if err := s.storage.Delete(ctx, resume.S3Key); err != nil {
		s.logger.Error("failed to delete resume object", "key", resume.S3Key, "error", err)
	}

	return nil
}
