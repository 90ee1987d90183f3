package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/prepmate/interview-server/internal/logger"
	"github.com/prepmate/interview-server/internal/model"
)

// ActivityRecorder marks qualifying user activity for streak tracking.
type ActivityRecorder interface {
	RecordActivity(ctx context.Context, userID uuid.UUID, occurredAt time.Time) (model.Streak, error)
}

// Interview drives the interview session state machine: start, turn
// exchange with the remote question service, termination and deletion.
//
// Every mutation follows read-remote-then-write-local ordering, so a
// remote failure never leaves partial local state. A per-session mutex
// is held across that span; the store additionally CASes on a version
// column, so two writers racing from the same snapshot cannot both
// append a turn.
type Interview struct {
	store     model.InterviewStore
	questions model.QuestionService
	activity  ActivityRecorder
	logger    *logger.Logger
	locks     keyedMutex
	now       func() time.Time
}

func NewInterview(
	store model.InterviewStore,
	questions model.QuestionService,
	activity ActivityRecorder,
	logger *logger.Logger,
) *Interview {
	return &Interview{
		store:     store,
		questions: questions,
		activity:  activity,
		logger:    logger,
		now:       time.Now,
	}
}

// Start validates the classification, opens a remote session and
// persists the new interview with the opening exchange already
// answered. On remote failure nothing is persisted.
func (s *Interview) Start(ctx context.Context, params model.StartInterviewParams) (model.Interview, error) {
	if !params.Domain.Valid() {
		return model.Interview{}, fmt.Errorf("%w: unknown domain %q", model.ErrInvalidArgument, params.Domain)
	}
	if !params.Difficulty.Valid() {
		return model.Interview{}, fmt.Errorf("%w: unknown difficulty %q", model.ErrInvalidArgument, params.Difficulty)
	}
	if params.OpeningAnswer == "" {
		return model.Interview{}, fmt.Errorf("%w: opening answer is required", model.ErrInvalidArgument)
	}

	started, err := s.questions.StartInterview(ctx, params.Domain, params.Difficulty, params.OpeningAnswer)
	if err != nil {
		return model.Interview{}, err
	}

	now := s.now()
	interview := model.Interview{
		ID:              uuid.New(),
		OwnerID:         params.OwnerID,
		Domain:          params.Domain,
		Difficulty:      params.Difficulty,
		RemoteSessionID: started.RemoteSessionID,
		Transcript: []model.Turn{
			{Question: started.Question, Answer: params.OpeningAnswer, AnsweredAt: &now},
		},
		Status: model.StatusActive,
	}

	// The remote session already exists; the local write must complete
	// even if the caller went away.
	saved, err := s.store.Create(context.WithoutCancel(ctx), interview)
	if err != nil {
		return model.Interview{}, fmt.Errorf("failed to create interview: %w", err)
	}

	return saved, nil
}

// Continue submits an answer and appends the next question to the
// transcript in a single store write. The local transcript is left
// untouched on any remote failure, so the caller may safely retry.
func (s *Interview) Continue(ctx context.Context, sessionID uuid.UUID, ownerID uuid.UUID, answer string) (string, error) {
	if answer == "" {
		return "", fmt.Errorf("%w: answer is required", model.ErrInvalidArgument)
	}

	unlock := s.locks.lock(sessionID)
	defer unlock()

	interview, err := s.store.GetByID(ctx, sessionID, ownerID)
	if err != nil {
		return "", err
	}
	if interview.Status != model.StatusActive {
		return "", fmt.Errorf("%w: interview already ended", model.ErrInvalidState)
	}

	question, err := s.questions.ContinueInterview(ctx, interview.RemoteSessionID, interview.Domain, interview.Difficulty, answer)
	if err != nil {
		return "", err
	}

	now := s.now()
	turn := model.Turn{Question: question}
	if n := len(interview.Transcript); n > 0 && !interview.Transcript[n-1].Closed() {
		interview.Transcript[n-1].Answer = answer
		interview.Transcript[n-1].AnsweredAt = &now
	} else {
		turn.Answer = answer
		turn.AnsweredAt = &now
	}
	interview.Transcript = append(interview.Transcript, turn)

	// The remote side effect already happened; do not drop the local
	// write because the request was cancelled.
	if _, err := s.store.UpdateTranscript(context.WithoutCancel(ctx), interview); err != nil {
		return "", err
	}

	s.recordQualifyingActivity(ctx, ownerID, now)

	return question, nil
}

// End closes the session and computes the final score from the
// transcript shape. Ending twice is rejected, never silently accepted.
func (s *Interview) End(ctx context.Context, sessionID uuid.UUID, ownerID uuid.UUID) (model.Interview, error) {
	unlock := s.locks.lock(sessionID)
	defer unlock()

	interview, err := s.store.GetByID(ctx, sessionID, ownerID)
	if err != nil {
		return model.Interview{}, err
	}
	if interview.Status != model.StatusActive {
		return model.Interview{}, fmt.Errorf("%w: interview already ended", model.ErrInvalidState)
	}

	score := Score(interview.ClosedTurns(), interview.Difficulty)
	endedAt := s.now()

	if err := s.store.SetEnded(ctx, sessionID, ownerID, score, endedAt, interview.Version); err != nil {
		return model.Interview{}, err
	}

	interview.Status = model.StatusEnded
	interview.Score = score
	interview.EndedAt = &endedAt
	interview.Version++

	return interview, nil
}

// Get returns the session with its full transcript.
func (s *Interview) Get(ctx context.Context, sessionID uuid.UUID, ownerID uuid.UUID) (model.Interview, error) {
	return s.store.GetByID(ctx, sessionID, ownerID)
}

// List returns a page of the owner's sessions, newest first.
func (s *Interview) List(ctx context.Context, ownerID uuid.UUID, page int, pageSize int) ([]model.Interview, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}
	return s.store.ListByOwner(ctx, ownerID, page, pageSize)
}

// Delete removes the session regardless of status.
func (s *Interview) Delete(ctx context.Context, sessionID uuid.UUID, ownerID uuid.UUID) error {
	return s.store.Delete(ctx, sessionID, ownerID)
}

// Score computes the final score for a finished interview.
func Score(closedTurns int, difficulty model.Difficulty) int {
	score := 50 + 10*closedTurns
	if score > 100 {
		score = 100
	}
	return score + difficulty.ScoreBonus()
}

// recordQualifyingActivity updates the owner's streak after a completed
// turn. Streak bookkeeping must never fail the turn itself.
func (s *Interview) recordQualifyingActivity(ctx context.Context, ownerID uuid.UUID, occurredAt time.Time) {
	if s.activity == nil {
		return
	}
	if _, err := s.activity.RecordActivity(context.WithoutCancel(ctx), ownerID, occurredAt); err != nil {
		s.logger.Error("failed to record streak activity", "user_id", ownerID, "error", err)
	}
}
