package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewInterviewRepository(t *testing.T) {
	db := &Connection{}
	repo := NewInterviewRepository(db)

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}

func TestNewStreakRepository(t *testing.T) {
	db := &Connection{}
	repo := NewStreakRepository(db)

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}

func TestNewResumeRepository(t *testing.T) {
	db := &Connection{}
	repo := NewResumeRepository(db)

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}
