// Package usecase implements staff user management.
package usecase

import (
	"context"

	"github.com/google/uuid"

	userDomain "github.com/allisson/docgate/internal/user/domain"
)

// UserRepository defines the interface for user persistence.
type UserRepository interface {
	Create(ctx context.Context, user *userDomain.User) error
	Update(ctx context.Context, user *userDomain.User) error
	Get(ctx context.Context, id uuid.UUID) (*userDomain.User, error)
	GetByUsername(ctx context.Context, username string) (*userDomain.User, error)
	List(ctx context.Context, offset, limit int) ([]*userDomain.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// UserUseCase defines the interface for staff user management.
type UserUseCase interface {
	// Create validates the input, hashes the password and persists a new user.
	// Returns ErrUserAlreadyExists when the username is taken.
	Create(ctx context.Context, input *userDomain.CreateUserInput) (*userDomain.User, error)

	Get(ctx context.Context, id uuid.UUID) (*userDomain.User, error)

	// List returns users newest first.
	List(ctx context.Context, offset, limit int) ([]*userDomain.User, error)

	// SetAccess grants or revokes login and document creation rights.
	SetAccess(ctx context.Context, id uuid.UUID, hasAccess bool) (*userDomain.User, error)

	Delete(ctx context.Context, id uuid.UUID) error
}
