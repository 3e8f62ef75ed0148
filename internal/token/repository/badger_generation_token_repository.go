package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/dgraph-io/badger/v3"

	"github.com/allisson/docgate/internal/database"
	apperrors "github.com/allisson/docgate/internal/errors"
	tokenDomain "github.com/allisson/docgate/internal/token/domain"
)

// Key layout:
//
//	generation_tokens/id/<uuid v7>    -> JSON record (v7 ids sort by creation time)
//	generation_tokens/token/<token>   -> id
const (
	badgerTokenByIDPrefix    = "generation_tokens/id/"
	badgerTokenByTokenPrefix = "generation_tokens/token/"
)

// BadgerGenerationTokenRepository implements generation token persistence on the
// embedded store.
type BadgerGenerationTokenRepository struct {
	store *database.KVStore
}

// NewBadgerGenerationTokenRepository creates a new Badger generation token repository.
func NewBadgerGenerationTokenRepository(store *database.KVStore) *BadgerGenerationTokenRepository {
	return &BadgerGenerationTokenRepository{store: store}
}

// Create inserts a new generation token, rejecting duplicate token strings.
func (b *BadgerGenerationTokenRepository) Create(ctx context.Context, token *tokenDomain.GenerationToken) error {
	err := b.store.Update(ctx, func(txn *badger.Txn) error {
		indexKey := badgerTokenByTokenPrefix + token.Token
		exists, err := database.Exists(txn, indexKey)
		if err != nil {
			return err
		}
		if exists {
			return tokenDomain.ErrGenerationTokenAlreadyExists
		}

		if err := txn.Set([]byte(indexKey), []byte(token.ID.String())); err != nil {
			return err
		}
		return database.SetJSON(txn, badgerTokenByIDPrefix+token.ID.String(), token)
	})
	if err != nil {
		if apperrors.Is(err, tokenDomain.ErrGenerationTokenAlreadyExists) {
			return err
		}
		return apperrors.Wrap(err, "failed to create generation token")
	}
	return nil
}

func getBadgerToken(txn *badger.Txn, token string) (*tokenDomain.GenerationToken, error) {
	item, err := txn.Get([]byte(badgerTokenByTokenPrefix + token))
	if err != nil {
		if apperrors.Is(err, badger.ErrKeyNotFound) {
			return nil, tokenDomain.ErrGenerationTokenNotFound
		}
		return nil, err
	}
	id, err := item.ValueCopy(nil)
	if err != nil {
		return nil, err
	}

	var t tokenDomain.GenerationToken
	found, err := database.GetJSON(txn, badgerTokenByIDPrefix+string(id), &t)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, tokenDomain.ErrGenerationTokenNotFound
	}
	return &t, nil
}

// GetByToken retrieves a generation token by its token string.
func (b *BadgerGenerationTokenRepository) GetByToken(
	ctx context.Context,
	token string,
) (*tokenDomain.GenerationToken, error) {
	var t *tokenDomain.GenerationToken
	err := b.store.View(ctx, func(txn *badger.Txn) error {
		var err error
		t, err = getBadgerToken(txn, token)
		return err
	})
	if err != nil {
		if apperrors.Is(err, tokenDomain.ErrGenerationTokenNotFound) {
			return nil, err
		}
		return nil, apperrors.Wrap(err, "failed to get generation token")
	}
	return t, nil
}

// MarkUsed reads and rewrites the token record in one serializable transaction. Two
// concurrent consumers both read the record, so the later commit conflicts and, when
// retried, observes the token as used.
func (b *BadgerGenerationTokenRepository) MarkUsed(
	ctx context.Context,
	token string,
	usedAt time.Time,
) (*tokenDomain.GenerationToken, error) {
	var t *tokenDomain.GenerationToken
	err := b.store.Update(ctx, func(txn *badger.Txn) error {
		var err error
		t, err = getBadgerToken(txn, token)
		if err != nil {
			return err
		}
		if !t.MarkUsed(usedAt) {
			return tokenDomain.ErrGenerationTokenAlreadyUsed
		}
		return database.SetJSON(txn, badgerTokenByIDPrefix+t.ID.String(), t)
	})
	if err != nil {
		if apperrors.Is(err, tokenDomain.ErrGenerationTokenNotFound) ||
			apperrors.Is(err, tokenDomain.ErrGenerationTokenAlreadyUsed) {
			return nil, err
		}
		return nil, apperrors.Wrap(err, "failed to mark generation token as used")
	}
	return t, nil
}

// List retrieves generation tokens newest first with pagination.
func (b *BadgerGenerationTokenRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*tokenDomain.GenerationToken, error) {
	tokens := make([]*tokenDomain.GenerationToken, 0)
	err := b.store.View(ctx, func(txn *badger.Txn) error {
		return database.ScanPrefix(txn, badgerTokenByIDPrefix, true, offset, limit, func(_, value []byte) error {
			var t tokenDomain.GenerationToken
			if err := json.Unmarshal(value, &t); err != nil {
				return err
			}
			tokens = append(tokens, &t)
			return nil
		})
	})
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list generation tokens")
	}
	return tokens, nil
}
