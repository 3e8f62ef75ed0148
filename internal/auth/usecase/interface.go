// Package usecase implements staff login and bearer token authentication.
package usecase

import (
	"context"

	"github.com/google/uuid"

	authDomain "github.com/allisson/docgate/internal/auth/domain"
	userDomain "github.com/allisson/docgate/internal/user/domain"
)

// UserRepository defines the user lookups authentication needs.
type UserRepository interface {
	Get(ctx context.Context, id uuid.UUID) (*userDomain.User, error)
	GetByUsername(ctx context.Context, username string) (*userDomain.User, error)
}

// SessionRepository defines persistence operations for sessions.
type SessionRepository interface {
	Create(ctx context.Context, session *authDomain.Session) error

	// GetByTokenHash returns ErrSessionNotFound when no session matches.
	GetByTokenHash(ctx context.Context, tokenHash string) (*authDomain.Session, error)
}

// SessionUseCase defines staff authentication operations.
type SessionUseCase interface {
	// Login verifies credentials and opens a session. Unknown users and wrong
	// passwords both return ErrInvalidCredentials; users without access get
	// ErrUserAccessDenied.
	Login(ctx context.Context, input *authDomain.LoginInput) (*authDomain.LoginOutput, error)

	// Authenticate resolves the hash of a bearer token to its user.
	Authenticate(ctx context.Context, tokenHash string) (*userDomain.User, error)
}
