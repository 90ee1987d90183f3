package model

import "github.com/google/uuid"

// TokenManager validates access tokens issued by the external auth
// service and, for tooling and tests, can mint them itself.
type TokenManager interface {
	GenerateAccessToken(userID uuid.UUID) (string, error)
	ParseAccessToken(token string) (uuid.UUID, error)
}
