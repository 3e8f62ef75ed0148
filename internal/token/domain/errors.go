package domain

import (
	"github.com/allisson/docgate/internal/errors"
)

var (
	// ErrGenerationTokenNotFound indicates no generation token matches the given string.
	ErrGenerationTokenNotFound = errors.Wrap(errors.ErrNotFound, "generation token not found")

	// ErrGenerationTokenAlreadyUsed indicates the token was consumed by an earlier or concurrent request.
	ErrGenerationTokenAlreadyUsed = errors.WithCode(
		errors.Wrap(errors.ErrConflict, "generation token already used"),
		"token_already_used",
	)

	// ErrGenerationTokenAlreadyExists indicates a token string collision on insert.
	ErrGenerationTokenAlreadyExists = errors.Wrap(errors.ErrConflict, "generation token already exists")
)
