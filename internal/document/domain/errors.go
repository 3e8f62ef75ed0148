package domain

import (
	"github.com/allisson/docgate/internal/errors"
)

var (
	// ErrDocumentNotFound indicates the requested document does not exist.
	ErrDocumentNotFound = errors.Wrap(errors.ErrNotFound, "document not found")

	// ErrAccessLinkNotFound indicates no access link matches the given token.
	ErrAccessLinkNotFound = errors.Wrap(errors.ErrNotFound, "access link not found")

	// ErrAccessLinkExpired indicates the link's expiry has passed.
	ErrAccessLinkExpired = errors.WithCode(
		errors.Wrap(errors.ErrGone, "access link expired"),
		"link_expired",
	)

	// ErrAccessLinkQuotaExceeded indicates the link has no views left.
	ErrAccessLinkQuotaExceeded = errors.WithCode(
		errors.Wrap(errors.ErrGone, "access link view limit reached"),
		"quota_exceeded",
	)

	// ErrAccessLinkAlreadyExists indicates an access token collision on insert.
	ErrAccessLinkAlreadyExists = errors.Wrap(errors.ErrConflict, "access link already exists")
)
