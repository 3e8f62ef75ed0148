package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	userDomain "github.com/allisson/docgate/internal/user/domain"
	userUseCase "github.com/allisson/docgate/internal/user/usecase"
)

// RunCreateUser creates a staff user. It is the only way to bootstrap the first
// administrator, since the user management routes require one.
//
// Requirements: Database must be migrated and accessible.
func RunCreateUser(
	ctx context.Context,
	userUseCase userUseCase.UserUseCase,
	logger *slog.Logger,
	writer io.Writer,
	input *userDomain.CreateUserInput,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	logger.Info("creating user",
		slog.String("username", input.Username),
		slog.Bool("is_admin", input.IsAdmin),
	)

	user, err := userUseCase.Create(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	if format == "json" {
		err = writeJSON(writer, map[string]any{
			"id":         user.ID.String(),
			"username":   user.Username,
			"has_access": user.HasAccess,
			"is_admin":   user.IsAdmin,
		})
	} else {
		_, _ = fmt.Fprintln(writer, "User created successfully!")
		_, _ = fmt.Fprintf(writer, "ID: %s\n", user.ID.String())
		_, _ = fmt.Fprintf(writer, "Username: %s\n", user.Username)
		_, _ = fmt.Fprintf(writer, "Has access: %t\n", user.HasAccess)
		_, _ = fmt.Fprintf(writer, "Admin: %t\n", user.IsAdmin)
	}
	if err != nil {
		return err
	}

	logger.Info("user created successfully", slog.String("user_id", user.ID.String()))
	return nil
}
