package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/prepmate/interview-server/internal/logger"
	"github.com/prepmate/interview-server/internal/mocks"
	"github.com/prepmate/interview-server/internal/model"
)

type stubActivity struct {
	calls []time.Time
	err   error
}

func (s *stubActivity) RecordActivity(_ context.Context, _ uuid.UUID, occurredAt time.Time) (model.Streak, error) {
	s.calls = append(s.calls, occurredAt)
	return model.Streak{}, s.err
}

func newTestInterview(store *mocks.InterviewStore, questions *mocks.QuestionService, activity ActivityRecorder) *Interview {
	return NewInterview(store, questions, activity, logger.New(0))
}

func TestInterview_Start_Success(t *testing.T) {
	ctx := context.Background()
	store := &mocks.InterviewStore{}
	questions := &mocks.QuestionService{}
	ownerID := uuid.New()

	questions.On("StartInterview", mock.Anything, model.DomainWebDev, model.DifficultyMedium, "ready when you are").
		Return(model.StartedInterview{RemoteSessionID: "remote-1", Question: "Tell me about yourself."}, nil)
	store.On("Create", mock.Anything, mock.MatchedBy(func(i model.Interview) bool {
		return i.OwnerID == ownerID &&
			i.RemoteSessionID == "remote-1" &&
			i.Status == model.StatusActive &&
			len(i.Transcript) == 1 &&
			i.Transcript[0].Question == "Tell me about yourself." &&
			i.Transcript[0].Closed()
	})).Return(model.Interview{ID: uuid.New(), OwnerID: ownerID, Version: 1}, nil)

	svc := newTestInterview(store, questions, nil)
	interview, err := svc.Start(ctx, model.StartInterviewParams{
		OwnerID:       ownerID,
		Domain:        model.DomainWebDev,
		Difficulty:    model.DifficultyMedium,
		OpeningAnswer: "ready when you are",
	})
	require.NoError(t, err)
	assert.Equal(t, ownerID, interview.OwnerID)
	store.AssertExpectations(t)
}

func TestInterview_Start_Validation(t *testing.T) {
	tests := []struct {
		name   string
		params model.StartInterviewParams
	}{
		{name: "unknown domain", params: model.StartInterviewParams{Domain: "astrology", Difficulty: model.DifficultyEasy, OpeningAnswer: "hi"}},
		{name: "unknown difficulty", params: model.StartInterviewParams{Domain: model.DomainHR, Difficulty: "brutal", OpeningAnswer: "hi"}},
		{name: "empty opening answer", params: model.StartInterviewParams{Domain: model.DomainHR, Difficulty: model.DifficultyEasy}},
	}

	svc := newTestInterview(&mocks.InterviewStore{}, &mocks.QuestionService{}, nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Start(context.Background(), tt.params)
			assert.ErrorIs(t, err, model.ErrInvalidArgument)
		})
	}
}

func TestInterview_Start_RemoteFailure_NothingPersisted(t *testing.T) {
	store := &mocks.InterviewStore{}
	questions := &mocks.QuestionService{}
	questions.On("StartInterview", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(model.StartedInterview{}, model.ErrRemoteUnavailable)

	svc := newTestInterview(store, questions, nil)
	_, err := svc.Start(context.Background(), model.StartInterviewParams{
		OwnerID:       uuid.New(),
		Domain:        model.DomainHR,
		Difficulty:    model.DifficultyEasy,
		OpeningAnswer: "hello",
	})
	assert.ErrorIs(t, err, model.ErrRemoteUnavailable)
	store.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestInterview_Continue_ClosesOpenTurn(t *testing.T) {
	ctx := context.Background()
	store := &mocks.InterviewStore{}
	questions := &mocks.QuestionService{}
	activity := &stubActivity{}
	id, ownerID := uuid.New(), uuid.New()

	existing := model.Interview{
		ID:              id,
		OwnerID:         ownerID,
		Domain:          model.DomainWebDev,
		Difficulty:      model.DifficultyMedium,
		RemoteSessionID: "remote-1",
		Status:          model.StatusActive,
		Version:         2,
		Transcript: []model.Turn{
			{Question: "q1", Answer: "a1", AnsweredAt: timePtr(time.Now())},
			{Question: "q2"},
		},
	}

	store.On("GetByID", mock.Anything, id, ownerID).Return(existing, nil)
	questions.On("ContinueInterview", mock.Anything, "remote-1", model.DomainWebDev, model.DifficultyMedium, "a2").
		Return("q3", nil)
	store.On("UpdateTranscript", mock.Anything, mock.MatchedBy(func(i model.Interview) bool {
		return len(i.Transcript) == 3 &&
			i.Transcript[1].Answer == "a2" &&
			i.Transcript[1].Closed() &&
			i.Transcript[2].Question == "q3" &&
			!i.Transcript[2].Closed()
	})).Return(model.Interview{}, nil)

	svc := newTestInterview(store, questions, activity)
	q, err := svc.Continue(ctx, id, ownerID, "a2")
	require.NoError(t, err)
	assert.Equal(t, "q3", q)
	assert.Len(t, activity.calls, 1)
	store.AssertExpectations(t)
}

func TestInterview_Continue_AppendsClosedTurn(t *testing.T) {
	ctx := context.Background()
	store := &mocks.InterviewStore{}
	questions := &mocks.QuestionService{}
	id, ownerID := uuid.New(), uuid.New()

	existing := model.Interview{
		ID:              id,
		OwnerID:         ownerID,
		Domain:          model.DomainHR,
		Difficulty:      model.DifficultyEasy,
		RemoteSessionID: "remote-1",
		Status:          model.StatusActive,
		Transcript: []model.Turn{
			{Question: "q1", Answer: "a1", AnsweredAt: timePtr(time.Now())},
		},
	}

	store.On("GetByID", mock.Anything, id, ownerID).Return(existing, nil)
	questions.On("ContinueInterview", mock.Anything, "remote-1", model.DomainHR, model.DifficultyEasy, "a2").
		Return("q2", nil)
	store.On("UpdateTranscript", mock.Anything, mock.MatchedBy(func(i model.Interview) bool {
		return len(i.Transcript) == 2 &&
			i.Transcript[1].Question == "q2" &&
			i.Transcript[1].Answer == "a2" &&
			i.Transcript[1].Closed()
	})).Return(model.Interview{}, nil)

	svc := newTestInterview(store, questions, nil)
	q, err := svc.Continue(ctx, id, ownerID, "a2")
	require.NoError(t, err)
	assert.Equal(t, "q2", q)
	store.AssertExpectations(t)
}

func TestInterview_Continue_Errors(t *testing.T) {
	ctx := context.Background()
	id, ownerID := uuid.New(), uuid.New()

	t.Run("empty answer", func(t *testing.T) {
		svc := newTestInterview(&mocks.InterviewStore{}, &mocks.QuestionService{}, nil)
		_, err := svc.Continue(ctx, id, ownerID, "")
		assert.ErrorIs(t, err, model.ErrInvalidArgument)
	})

	t.Run("not found", func(t *testing.T) {
		store := &mocks.InterviewStore{}
		store.On("GetByID", mock.Anything, id, ownerID).Return(model.Interview{}, model.ErrNotFound)
		svc := newTestInterview(store, &mocks.QuestionService{}, nil)
		_, err := svc.Continue(ctx, id, ownerID, "a")
		assert.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("already ended", func(t *testing.T) {
		store := &mocks.InterviewStore{}
		store.On("GetByID", mock.Anything, id, ownerID).
			Return(model.Interview{ID: id, Status: model.StatusEnded}, nil)
		svc := newTestInterview(store, &mocks.QuestionService{}, nil)
		_, err := svc.Continue(ctx, id, ownerID, "a")
		assert.ErrorIs(t, err, model.ErrInvalidState)
	})

	t.Run("remote failure leaves transcript alone", func(t *testing.T) {
		store := &mocks.InterviewStore{}
		questions := &mocks.QuestionService{}
		store.On("GetByID", mock.Anything, id, ownerID).
			Return(model.Interview{ID: id, Status: model.StatusActive, RemoteSessionID: "r"}, nil)
		questions.On("ContinueInterview", mock.Anything, "r", mock.Anything, mock.Anything, "a").
			Return("", model.ErrRemoteSessionExpired)
		svc := newTestInterview(store, questions, nil)
		_, err := svc.Continue(ctx, id, ownerID, "a")
		assert.ErrorIs(t, err, model.ErrRemoteSessionExpired)
		store.AssertNotCalled(t, "UpdateTranscript", mock.Anything, mock.Anything)
	})
}

func TestInterview_Continue_StreakFailureDoesNotFailTurn(t *testing.T) {
	ctx := context.Background()
	store := &mocks.InterviewStore{}
	questions := &mocks.QuestionService{}
	activity := &stubActivity{err: errors.New("streak down")}
	id, ownerID := uuid.New(), uuid.New()

	store.On("GetByID", mock.Anything, id, ownerID).
		Return(model.Interview{ID: id, OwnerID: ownerID, Status: model.StatusActive, RemoteSessionID: "r"}, nil)
	questions.On("ContinueInterview", mock.Anything, "r", mock.Anything, mock.Anything, "a").Return("q", nil)
	store.On("UpdateTranscript", mock.Anything, mock.Anything).Return(model.Interview{}, nil)

	svc := newTestInterview(store, questions, activity)
	q, err := svc.Continue(ctx, id, ownerID, "a")
	require.NoError(t, err)
	assert.Equal(t, "q", q)
	assert.Len(t, activity.calls, 1)
}

func TestInterview_End(t *testing.T) {
	ctx := context.Background()
	id, ownerID := uuid.New(), uuid.New()

	t.Run("success", func(t *testing.T) {
		store := &mocks.InterviewStore{}
		existing := model.Interview{
			ID:         id,
			OwnerID:    ownerID,
			Difficulty: model.DifficultyHard,
			Status:     model.StatusActive,
			Version:    4,
			Transcript: []model.Turn{
				{Question: "q1", Answer: "a1"},
				{Question: "q2", Answer: "a2"},
				{Question: "q3"},
			},
		}
		store.On("GetByID", mock.Anything, id, ownerID).Return(existing, nil)
		// 50 + 10*2 closed turns + 10 hard bonus
		store.On("SetEnded", mock.Anything, id, ownerID, 80, mock.Anything, 4).Return(nil)

		svc := newTestInterview(store, &mocks.QuestionService{}, nil)
		ended, err := svc.End(ctx, id, ownerID)
		require.NoError(t, err)
		assert.Equal(t, model.StatusEnded, ended.Status)
		assert.Equal(t, 80, ended.Score)
		require.NotNil(t, ended.EndedAt)
		assert.Equal(t, 5, ended.Version)
		store.AssertExpectations(t)
	})

	t.Run("already ended", func(t *testing.T) {
		store := &mocks.InterviewStore{}
		store.On("GetByID", mock.Anything, id, ownerID).
			Return(model.Interview{ID: id, Status: model.StatusEnded}, nil)
		svc := newTestInterview(store, &mocks.QuestionService{}, nil)
		_, err := svc.End(ctx, id, ownerID)
		assert.ErrorIs(t, err, model.ErrInvalidState)
		store.AssertNotCalled(t, "SetEnded", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestScore(t *testing.T) {
	tests := []struct {
		name        string
		closedTurns int
		difficulty  model.Difficulty
		want        int
	}{
		{name: "single turn easy", closedTurns: 1, difficulty: model.DifficultyEasy, want: 60},
		{name: "two turns medium", closedTurns: 2, difficulty: model.DifficultyMedium, want: 75},
		{name: "base caps at 100", closedTurns: 9, difficulty: model.DifficultyEasy, want: 100},
		{name: "hard bonus on top of cap", closedTurns: 9, difficulty: model.DifficultyHard, want: 110},
		{name: "no closed turns", closedTurns: 0, difficulty: model.DifficultyEasy, want: 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Score(tt.closedTurns, tt.difficulty))
		})
	}
}

func TestInterview_List_NormalizesPaging(t *testing.T) {
	ctx := context.Background()
	store := &mocks.InterviewStore{}
	ownerID := uuid.New()

	store.On("ListByOwner", mock.Anything, ownerID, 1, 10).Return([]model.Interview{}, 0, nil)

	svc := newTestInterview(store, &mocks.QuestionService{}, nil)
	_, _, err := svc.List(ctx, ownerID, 0, -5)
	require.NoError(t, err)
	store.AssertExpectations(t)
}

func TestInterview_Delete(t *testing.T) {
	ctx := context.Background()
	store := &mocks.InterviewStore{}
	id, ownerID := uuid.New(), uuid.New()

	store.On("Delete", mock.Anything, id, ownerID).Return(nil)

	svc := newTestInterview(store, &mocks.QuestionService{}, nil)
	require.NoError(t, svc.Delete(ctx, id, ownerID))
	store.AssertExpectations(t)
}

func timePtr(t time.Time) *time.Time { return &t }
