package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/prepmate/interview-server/internal/model"
)

// Auth resolves access tokens to user identities.
type Auth struct {
	tokenManager model.TokenManager
}

func NewAuth(tokenManager model.TokenManager) *Auth {
	return &Auth{tokenManager: tokenManager}
}

// GetUserID parses and validates an access token and returns the user
// id embedded in it.
func (s *Auth) GetUserID(_ context.Context, token string) (uuid.UUID, error) {
	userID, err := s.tokenManager.ParseAccessToken(token)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to parse token: %w", err)
	}
	return userID, nil
}
