package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/allisson/docgate/internal/auth/domain"
	authService "github.com/allisson/docgate/internal/auth/service"
	apperrors "github.com/allisson/docgate/internal/errors"
	userDomain "github.com/allisson/docgate/internal/user/domain"
)

type sessionUseCase struct {
	userRepo        UserRepository
	sessionRepo     SessionRepository
	passwordService authService.PasswordService
	tokenService    authService.TokenService
	expiration      time.Duration
}

func (s *sessionUseCase) Login(
	ctx context.Context,
	input *authDomain.LoginInput,
) (*authDomain.LoginOutput, error) {
	user, err := s.userRepo.GetByUsername(ctx, input.Username)
	if err != nil {
		if apperrors.Is(err, userDomain.ErrUserNotFound) {
			return nil, authDomain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.passwordService.ComparePassword(input.Password, user.PasswordHash) {
		return nil, authDomain.ErrInvalidCredentials
	}

	if !user.HasAccess {
		return nil, authDomain.ErrUserAccessDenied
	}

	plainToken, tokenHash, err := s.tokenService.GenerateToken()
	if err != nil {
		return nil, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to generate UUID for session")
	}
	now := time.Now().UTC()
	session := &authDomain.Session{
		ID:        id,
		UserID:    user.ID,
		TokenHash: tokenHash,
		ExpiresAt: now.Add(s.expiration),
		CreatedAt: now,
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}

	return &authDomain.LoginOutput{
		PlainToken: plainToken,
		ExpiresAt:  session.ExpiresAt,
	}, nil
}

// Authenticate checks the session is live and its user still exists and has access.
// Revoking a user's access takes effect on their next request.
func (s *sessionUseCase) Authenticate(ctx context.Context, tokenHash string) (*userDomain.User, error) {
	session, err := s.sessionRepo.GetByTokenHash(ctx, tokenHash)
	if err != nil {
		if apperrors.Is(err, authDomain.ErrSessionNotFound) {
			return nil, authDomain.ErrInvalidCredentials
		}
		return nil, err
	}

	if session.IsExpired(time.Now().UTC()) {
		return nil, authDomain.ErrInvalidCredentials
	}

	user, err := s.userRepo.Get(ctx, session.UserID)
	if err != nil {
		if apperrors.Is(err, userDomain.ErrUserNotFound) {
			return nil, authDomain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.HasAccess {
		return nil, authDomain.ErrUserAccessDenied
	}

	return user, nil
}

// NewSessionUseCase creates a new SessionUseCase. Sessions live for expiration.
func NewSessionUseCase(
	userRepo UserRepository,
	sessionRepo SessionRepository,
	passwordService authService.PasswordService,
	tokenService authService.TokenService,
	expiration time.Duration,
) SessionUseCase {
	return &sessionUseCase{
		userRepo:        userRepo,
		sessionRepo:     sessionRepo,
		passwordService: passwordService,
		tokenService:    tokenService,
		expiration:      expiration,
	}
}
