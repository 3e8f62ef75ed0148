package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	authService "github.com/allisson/docgate/internal/auth/service"
	"github.com/allisson/docgate/internal/database"
	apperrors "github.com/allisson/docgate/internal/errors"
	userDomain "github.com/allisson/docgate/internal/user/domain"
	customValidation "github.com/allisson/docgate/internal/validation"
)

// passwordPolicy is the strength rule applied to new staff passwords.
var passwordPolicy = customValidation.PasswordStrength{
	MinLength:     10,
	RequireUpper:  true,
	RequireLower:  true,
	RequireNumber: true,
}

type userUseCase struct {
	txManager       database.TxManager
	userRepo        UserRepository
	passwordService authService.PasswordService
}

func validateCreateUserInput(input *userDomain.CreateUserInput) error {
	return validation.ValidateStruct(input,
		validation.Field(&input.Username,
			validation.Required,
			validation.Length(3, 64),
			customValidation.NoWhitespace,
		),
		validation.Field(&input.Password, validation.Required, passwordPolicy),
		validation.Field(&input.Email, customValidation.Email),
	)
}

func (u *userUseCase) Create(ctx context.Context, input *userDomain.CreateUserInput) (*userDomain.User, error) {
	if err := validateCreateUserInput(input); err != nil {
		return nil, customValidation.WrapValidationError(err)
	}

	hash, err := u.passwordService.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to generate UUID for user")
	}
	now := time.Now().UTC()
	user := &userDomain.User{
		ID:           id,
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		HasAccess:    input.HasAccess,
		IsAdmin:      input.IsAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (u *userUseCase) Get(ctx context.Context, id uuid.UUID) (*userDomain.User, error) {
	return u.userRepo.Get(ctx, id)
}

func (u *userUseCase) List(ctx context.Context, offset, limit int) ([]*userDomain.User, error) {
	return u.userRepo.List(ctx, offset, limit)
}

func (u *userUseCase) SetAccess(ctx context.Context, id uuid.UUID, hasAccess bool) (*userDomain.User, error) {
	var user *userDomain.User
	err := u.txManager.WithTx(ctx, func(txCtx context.Context) error {
		var err error
		user, err = u.userRepo.Get(txCtx, id)
		if err != nil {
			return err
		}
		user.HasAccess = hasAccess
		user.UpdatedAt = time.Now().UTC()
		return u.userRepo.Update(txCtx, user)
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (u *userUseCase) Delete(ctx context.Context, id uuid.UUID) error {
	return u.userRepo.Delete(ctx, id)
}

// NewUserUseCase creates a new UserUseCase with the provided dependencies.
func NewUserUseCase(
	txManager database.TxManager,
	userRepo UserRepository,
	passwordService authService.PasswordService,
) UserUseCase {
	return &userUseCase{
		txManager:       txManager,
		userRepo:        userRepo,
		passwordService: passwordService,
	}
}
