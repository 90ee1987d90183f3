package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// InterviewStore defines persistence operations for interview sessions.
// Every operation is scoped by owner id; a session owned by another user
// behaves exactly like a missing one.
type InterviewStore interface {
	Create(ctx context.Context, interview Interview) (Interview, error)
	GetByID(ctx context.Context, id uuid.UUID, ownerID uuid.UUID) (Interview, error)
	UpdateTranscript(ctx context.Context, interview Interview) (Interview, error)
	SetEnded(ctx context.Context, id uuid.UUID, ownerID uuid.UUID, score int, endedAt time.Time, version int) error
	Delete(ctx context.Context, id uuid.UUID, ownerID uuid.UUID) error
	ListByOwner(ctx context.Context, ownerID uuid.UUID, page int, pageSize int) ([]Interview, int, error)
}

// Interview represents one interview session with its full transcript.
type Interview struct {
	ID              uuid.UUID
	OwnerID         uuid.UUID
	Domain          Domain
	Difficulty      Difficulty
	RemoteSessionID string
	Transcript      []Turn
	Status          InterviewStatus
	Score           int
	Version         int
	CreatedAt       time.Time
	EndedAt         *time.Time
}

// Turn is one question/answer exchange. Answer is empty while the turn
// is still awaiting the user.
type Turn struct {
	Question   string     `json:"question"`
	Answer     string     `json:"answer,omitempty"`
	AnsweredAt *time.Time `json:"answered_at,omitempty"`
}

// Closed reports whether the turn has been answered.
func (t Turn) Closed() bool {
	return t.Answer != ""
}

// ClosedTurns counts answered turns; the score formula depends on it.
func (i Interview) ClosedTurns() int {
	n := 0
	for _, t := range i.Transcript {
		if t.Closed() {
			n++
		}
	}
	return n
}

// InterviewStatus enumerates session lifecycle states.
type InterviewStatus string

const (
	// StatusActive accepts further turns.
	StatusActive InterviewStatus = "active"
	// StatusEnded is terminal; no further turns are accepted.
	StatusEnded InterviewStatus = "ended"
)

// Domain enumerates interview domains.
type Domain string

const (
	DomainHR            Domain = "hr"
	DomainDataScience   Domain = "dataScience"
	DomainWebDev        Domain = "webdev"
	DomainFullTechnical Domain = "fullTechnical"
)

// Valid reports whether d is a known domain.
func (d Domain) Valid() bool {
	switch d {
	case DomainHR, DomainDataScience, DomainWebDev, DomainFullTechnical:
		return true
	}
	return false
}

// Difficulty enumerates interview difficulty levels.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Valid reports whether d is a known difficulty.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// ScoreBonus returns the additive score bonus for the difficulty.
func (d Difficulty) ScoreBonus() int {
	switch d {
	case DifficultyMedium:
		return 5
	case DifficultyHard:
		return 10
	default:
		return 0
	}
}

// StartInterviewParams contains parameters to start an interview session.
type StartInterviewParams struct {
	OwnerID       uuid.UUID
	Domain        Domain
	Difficulty    Difficulty
	OpeningAnswer string
}
