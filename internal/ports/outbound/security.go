package outbound

import (
	"time"

	"github.com/google/uuid"
)

// TokenService issues and validates access tokens for authenticated
// sessions.
type TokenService interface {
	Issue(userID uuid.UUID, email string) (token string, expiresAt time.Time, err error)
	Validate(token string) (userID uuid.UUID, err error)
}
