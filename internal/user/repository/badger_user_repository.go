package repository

import (
	"context"
	"encoding/json"

	"github.com/dgraph-io/badger/v3"
	"github.com/google/uuid"

	"github.com/allisson/docgate/internal/database"
	apperrors "github.com/allisson/docgate/internal/errors"
	userDomain "github.com/allisson/docgate/internal/user/domain"
)

// Key layout:
//
//	users/id/<uuid v7>          -> JSON record
//	users/username/<username>   -> id
const (
	badgerUserByIDPrefix       = "users/id/"
	badgerUserByUsernamePrefix = "users/username/"
)

// BadgerUserRepository implements user persistence on the embedded store. Sessions of
// a deleted user are left behind and fail authentication because the user is gone.
type BadgerUserRepository struct {
	store *database.KVStore
}

// NewBadgerUserRepository creates a new Badger user repository.
func NewBadgerUserRepository(store *database.KVStore) *BadgerUserRepository {
	return &BadgerUserRepository{store: store}
}

func isUserDomainError(err error) bool {
	return apperrors.Is(err, userDomain.ErrUserNotFound) || apperrors.Is(err, userDomain.ErrUserAlreadyExists)
}

func getBadgerUser(txn *badger.Txn, id string) (*userDomain.User, error) {
	var u userDomain.User
	found, err := database.GetJSON(txn, badgerUserByIDPrefix+id, &u)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, userDomain.ErrUserNotFound
	}
	return &u, nil
}

// Create inserts a new user, rejecting a taken username.
func (b *BadgerUserRepository) Create(ctx context.Context, user *userDomain.User) error {
	err := b.store.Update(ctx, func(txn *badger.Txn) error {
		indexKey := badgerUserByUsernamePrefix + user.Username
		exists, err := database.Exists(txn, indexKey)
		if err != nil {
			return err
		}
		if exists {
			return userDomain.ErrUserAlreadyExists
		}
		if err := txn.Set([]byte(indexKey), []byte(user.ID.String())); err != nil {
			return err
		}
		return database.SetJSON(txn, badgerUserByIDPrefix+user.ID.String(), user)
	})
	if err != nil {
		if isUserDomainError(err) {
			return err
		}
		return apperrors.Wrap(err, "failed to create user")
	}
	return nil
}

// Update persists the mutable fields of an existing user.
func (b *BadgerUserRepository) Update(ctx context.Context, user *userDomain.User) error {
	err := b.store.Update(ctx, func(txn *badger.Txn) error {
		current, err := getBadgerUser(txn, user.ID.String())
		if err != nil {
			return err
		}
		current.Email = user.Email
		current.PasswordHash = user.PasswordHash
		current.HasAccess = user.HasAccess
		current.IsAdmin = user.IsAdmin
		current.UpdatedAt = user.UpdatedAt
		return database.SetJSON(txn, badgerUserByIDPrefix+current.ID.String(), current)
	})
	if err != nil {
		if isUserDomainError(err) {
			return err
		}
		return apperrors.Wrap(err, "failed to update user")
	}
	return nil
}

// Get retrieves a user by ID.
func (b *BadgerUserRepository) Get(ctx context.Context, id uuid.UUID) (*userDomain.User, error) {
	var user *userDomain.User
	err := b.store.View(ctx, func(txn *badger.Txn) error {
		var err error
		user, err = getBadgerUser(txn, id.String())
		return err
	})
	if err != nil {
		if isUserDomainError(err) {
			return nil, err
		}
		return nil, apperrors.Wrap(err, "failed to get user")
	}
	return user, nil
}

// GetByUsername retrieves a user by username.
func (b *BadgerUserRepository) GetByUsername(ctx context.Context, username string) (*userDomain.User, error) {
	var user *userDomain.User
	err := b.store.View(ctx, func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(badgerUserByUsernamePrefix + username))
		if err != nil {
			if apperrors.Is(err, badger.ErrKeyNotFound) {
				return userDomain.ErrUserNotFound
			}
			return err
		}
		id, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		user, err = getBadgerUser(txn, string(id))
		return err
	})
	if err != nil {
		if isUserDomainError(err) {
			return nil, err
		}
		return nil, apperrors.Wrap(err, "failed to get user by username")
	}
	return user, nil
}

// List retrieves users newest first with pagination.
func (b *BadgerUserRepository) List(ctx context.Context, offset, limit int) ([]*userDomain.User, error) {
	users := make([]*userDomain.User, 0)
	err := b.store.View(ctx, func(txn *badger.Txn) error {
		return database.ScanPrefix(txn, badgerUserByIDPrefix, true, offset, limit, func(_, value []byte) error {
			var u userDomain.User
			if err := json.Unmarshal(value, &u); err != nil {
				return err
			}
			users = append(users, &u)
			return nil
		})
	})
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list users")
	}
	return users, nil
}

// Delete removes a user and its username index entry.
func (b *BadgerUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	err := b.store.Update(ctx, func(txn *badger.Txn) error {
		user, err := getBadgerUser(txn, id.String())
		if err != nil {
			return err
		}
		if err := txn.Delete([]byte(badgerUserByUsernamePrefix + user.Username)); err != nil {
			return err
		}
		return txn.Delete([]byte(badgerUserByIDPrefix + id.String()))
	})
	if err != nil {
		if isUserDomainError(err) {
			return err
		}
		return apperrors.Wrap(err, "failed to delete user")
	}
	return nil
}
