package domain

import (
	"github.com/allisson/docgate/internal/errors"
)

var (
	// ErrSessionNotFound indicates no session matches the token hash.
	ErrSessionNotFound = errors.Wrap(errors.ErrNotFound, "session not found")

	// ErrInvalidCredentials covers unknown users, wrong passwords and bad or expired
	// bearer tokens alike.
	ErrInvalidCredentials = errors.Wrap(errors.ErrUnauthorized, "invalid credentials")

	// ErrUserAccessDenied indicates valid credentials for a user whose access is revoked.
	ErrUserAccessDenied = errors.Wrap(errors.ErrForbidden, "access denied, contact an administrator")

	// ErrAdminRequired indicates the route needs an administrator.
	ErrAdminRequired = errors.Wrap(errors.ErrForbidden, "administrator role required")
)
