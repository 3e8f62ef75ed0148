package repository

import (
	"context"

	"github.com/dgraph-io/badger/v3"

	authDomain "github.com/allisson/docgate/internal/auth/domain"
	"github.com/allisson/docgate/internal/database"
	apperrors "github.com/allisson/docgate/internal/errors"
)

// sessions/hash/<sha256 hex> -> JSON record. Records expire through the Badger TTL.
const badgerSessionPrefix = "sessions/hash/"

// BadgerSessionRepository implements session persistence on the embedded store.
type BadgerSessionRepository struct {
	store *database.KVStore
}

// NewBadgerSessionRepository creates a new Badger session repository.
func NewBadgerSessionRepository(store *database.KVStore) *BadgerSessionRepository {
	return &BadgerSessionRepository{store: store}
}

// Create stores a session keyed by its token hash.
func (b *BadgerSessionRepository) Create(ctx context.Context, session *authDomain.Session) error {
	err := b.store.Update(ctx, func(txn *badger.Txn) error {
		return database.SetJSONWithExpiry(txn, badgerSessionPrefix+session.TokenHash, session, session.ExpiresAt)
	})
	if err != nil {
		return apperrors.Wrap(err, "failed to create session")
	}
	return nil
}

// GetByTokenHash retrieves a session by the hash of its bearer token.
func (b *BadgerSessionRepository) GetByTokenHash(ctx context.Context, tokenHash string) (*authDomain.Session, error) {
	var s authDomain.Session
	err := b.store.View(ctx, func(txn *badger.Txn) error {
		found, err := database.GetJSON(txn, badgerSessionPrefix+tokenHash, &s)
		if err != nil {
			return err
		}
		if !found {
			return authDomain.ErrSessionNotFound
		}
		return nil
	})
	if err != nil {
		if apperrors.Is(err, authDomain.ErrSessionNotFound) {
			return nil, err
		}
		return nil, apperrors.Wrap(err, "failed to get session")
	}
	return &s, nil
}
