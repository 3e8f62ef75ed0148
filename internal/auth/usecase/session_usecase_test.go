package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/docgate/internal/auth/domain"
	authService "github.com/allisson/docgate/internal/auth/service"
	authMocks "github.com/allisson/docgate/internal/auth/usecase/mocks"
	userDomain "github.com/allisson/docgate/internal/user/domain"
)

const testPassword = "Str0ng-Passw0rd!"

func newStoredUser(t *testing.T, hasAccess bool) *userDomain.User {
	t.Helper()
	hash, err := authService.NewPasswordService().HashPassword(testPassword)
	require.NoError(t, err)
	return &userDomain.User{
		ID:           uuid.Must(uuid.NewV7()),
		Username:     "jdoe",
		PasswordHash: hash,
		HasAccess:    hasAccess,
	}
}

func newTestSessionUseCase(
	t *testing.T,
) (SessionUseCase, *authMocks.MockUserRepository, *authMocks.MockSessionRepository) {
	t.Helper()
	userRepo := authMocks.NewMockUserRepository(t)
	sessionRepo := authMocks.NewMockSessionRepository(t)
	uc := NewSessionUseCase(
		userRepo,
		sessionRepo,
		authService.NewPasswordService(),
		authService.NewTokenService(),
		time.Hour,
	)
	return uc, userRepo, sessionRepo
}

func TestSessionUseCase_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_StoresOnlyTheHash", func(t *testing.T) {
		uc, userRepo, sessionRepo := newTestSessionUseCase(t)
		user := newStoredUser(t, true)

		var stored *authDomain.Session
		userRepo.On("GetByUsername", ctx, "jdoe").Return(user, nil).Once()
		sessionRepo.On("Create", ctx, mock.AnythingOfType("*domain.Session")).
			Run(func(args mock.Arguments) { stored = args.Get(1).(*authDomain.Session) }).
			Return(nil).Once()

		output, err := uc.Login(ctx, &authDomain.LoginInput{Username: "jdoe", Password: testPassword})
		require.NoError(t, err)
		require.NotNil(t, stored)

		assert.NotEmpty(t, output.PlainToken)
		assert.Equal(t, user.ID, stored.UserID)
		assert.Equal(t, authService.NewTokenService().HashToken(output.PlainToken), stored.TokenHash)
		assert.NotEqual(t, output.PlainToken, stored.TokenHash)
		assert.WithinDuration(t, time.Now().Add(time.Hour), output.ExpiresAt, 5*time.Second)
	})

	t.Run("Error_UnknownUser", func(t *testing.T) {
		uc, userRepo, _ := newTestSessionUseCase(t)
		userRepo.On("GetByUsername", ctx, "ghost").Return(nil, userDomain.ErrUserNotFound).Once()

		_, err := uc.Login(ctx, &authDomain.LoginInput{Username: "ghost", Password: testPassword})
		assert.ErrorIs(t, err, authDomain.ErrInvalidCredentials)
	})

	t.Run("Error_WrongPassword", func(t *testing.T) {
		uc, userRepo, _ := newTestSessionUseCase(t)
		userRepo.On("GetByUsername", ctx, "jdoe").Return(newStoredUser(t, true), nil).Once()

		_, err := uc.Login(ctx, &authDomain.LoginInput{Username: "jdoe", Password: "wrong"})
		assert.ErrorIs(t, err, authDomain.ErrInvalidCredentials)
	})

	t.Run("Error_AccessRevoked", func(t *testing.T) {
		uc, userRepo, _ := newTestSessionUseCase(t)
		userRepo.On("GetByUsername", ctx, "jdoe").Return(newStoredUser(t, false), nil).Once()

		_, err := uc.Login(ctx, &authDomain.LoginInput{Username: "jdoe", Password: testPassword})
		assert.ErrorIs(t, err, authDomain.ErrUserAccessDenied)
	})

	t.Run("Error_RepositoryFailure", func(t *testing.T) {
		uc, userRepo, _ := newTestSessionUseCase(t)
		dbErr := errors.New("connection refused")
		userRepo.On("GetByUsername", ctx, "jdoe").Return(nil, dbErr).Once()

		_, err := uc.Login(ctx, &authDomain.LoginInput{Username: "jdoe", Password: testPassword})
		assert.ErrorIs(t, err, dbErr)
	})
}

func TestSessionUseCase_Authenticate(t *testing.T) {
	ctx := context.Background()
	userID := uuid.Must(uuid.NewV7())
	live := &authDomain.Session{UserID: userID, TokenHash: "hash", ExpiresAt: time.Now().Add(time.Hour)}

	t.Run("Success", func(t *testing.T) {
		uc, userRepo, sessionRepo := newTestSessionUseCase(t)
		user := &userDomain.User{ID: userID, Username: "jdoe", HasAccess: true}
		sessionRepo.On("GetByTokenHash", ctx, "hash").Return(live, nil).Once()
		userRepo.On("Get", ctx, userID).Return(user, nil).Once()

		got, err := uc.Authenticate(ctx, "hash")
		require.NoError(t, err)
		assert.Equal(t, user, got)
	})

	t.Run("Error_UnknownToken", func(t *testing.T) {
		uc, _, sessionRepo := newTestSessionUseCase(t)
		sessionRepo.On("GetByTokenHash", ctx, "nope").Return(nil, authDomain.ErrSessionNotFound).Once()

		_, err := uc.Authenticate(ctx, "nope")
		assert.ErrorIs(t, err, authDomain.ErrInvalidCredentials)
	})

	t.Run("Error_Expired", func(t *testing.T) {
		uc, _, sessionRepo := newTestSessionUseCase(t)
		expired := &authDomain.Session{UserID: userID, ExpiresAt: time.Now().Add(-time.Minute)}
		sessionRepo.On("GetByTokenHash", ctx, "old").Return(expired, nil).Once()

		_, err := uc.Authenticate(ctx, "old")
		assert.ErrorIs(t, err, authDomain.ErrInvalidCredentials)
	})

	t.Run("Error_UserDeleted", func(t *testing.T) {
		uc, userRepo, sessionRepo := newTestSessionUseCase(t)
		sessionRepo.On("GetByTokenHash", ctx, "hash").Return(live, nil).Once()
		userRepo.On("Get", ctx, userID).Return(nil, userDomain.ErrUserNotFound).Once()

		_, err := uc.Authenticate(ctx, "hash")
		assert.ErrorIs(t, err, authDomain.ErrInvalidCredentials)
	})

	t.Run("Error_AccessRevokedAfterLogin", func(t *testing.T) {
		uc, userRepo, sessionRepo := newTestSessionUseCase(t)
		sessionRepo.On("GetByTokenHash", ctx, "hash").Return(live, nil).Once()
		userRepo.On("Get", ctx, userID).Return(&userDomain.User{ID: userID, HasAccess: false}, nil).Once()

		_, err := uc.Authenticate(ctx, "hash")
		assert.ErrorIs(t, err, authDomain.ErrUserAccessDenied)
	})
}
