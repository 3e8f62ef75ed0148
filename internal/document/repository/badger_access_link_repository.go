package repository

import (
	"context"

	"github.com/dgraph-io/badger/v3"
	"github.com/google/uuid"

	"github.com/allisson/docgate/internal/database"
	documentDomain "github.com/allisson/docgate/internal/document/domain"
	apperrors "github.com/allisson/docgate/internal/errors"
)

// BadgerAccessLinkRepository implements access link persistence on the embedded store.
type BadgerAccessLinkRepository struct {
	store *database.KVStore
}

// NewBadgerAccessLinkRepository creates a new Badger access link repository.
func NewBadgerAccessLinkRepository(store *database.KVStore) *BadgerAccessLinkRepository {
	return &BadgerAccessLinkRepository{store: store}
}

func isAccessLinkDomainError(err error) bool {
	return apperrors.Is(err, documentDomain.ErrAccessLinkNotFound) ||
		apperrors.Is(err, documentDomain.ErrAccessLinkQuotaExceeded) ||
		apperrors.Is(err, documentDomain.ErrAccessLinkAlreadyExists) ||
		apperrors.Is(err, documentDomain.ErrDocumentNotFound)
}

func getBadgerLink(txn *badger.Txn, id string) (*documentDomain.AccessLink, error) {
	var link documentDomain.AccessLink
	found, err := database.GetJSON(txn, badgerLinkByIDPrefix+id, &link)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, documentDomain.ErrAccessLinkNotFound
	}
	return &link, nil
}

// Create inserts a new access link with its token and document index entries.
func (b *BadgerAccessLinkRepository) Create(ctx context.Context, link *documentDomain.AccessLink) error {
	err := b.store.Update(ctx, func(txn *badger.Txn) error {
		docExists, err := database.Exists(txn, badgerDocumentPrefix+link.DocumentID.String())
		if err != nil {
			return err
		}
		if !docExists {
			return documentDomain.ErrDocumentNotFound
		}

		tokenKey := badgerLinkByTokenPrefix + link.AccessToken
		taken, err := database.Exists(txn, tokenKey)
		if err != nil {
			return err
		}
		if taken {
			return documentDomain.ErrAccessLinkAlreadyExists
		}

		id := link.ID.String()
		if err := txn.Set([]byte(tokenKey), []byte(id)); err != nil {
			return err
		}
		if err := txn.Set([]byte(linkByDocumentPrefix(link.DocumentID)+id), []byte(link.AccessToken)); err != nil {
			return err
		}
		return database.SetJSON(txn, badgerLinkByIDPrefix+id, link)
	})
	if err != nil {
		if isAccessLinkDomainError(err) {
			return err
		}
		return apperrors.Wrap(err, "failed to create access link")
	}
	return nil
}

// GetByAccessToken retrieves an access link by its token.
func (b *BadgerAccessLinkRepository) GetByAccessToken(
	ctx context.Context,
	accessToken string,
) (*documentDomain.AccessLink, error) {
	var link *documentDomain.AccessLink
	err := b.store.View(ctx, func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(badgerLinkByTokenPrefix + accessToken))
		if err != nil {
			if apperrors.Is(err, badger.ErrKeyNotFound) {
				return documentDomain.ErrAccessLinkNotFound
			}
			return err
		}
		id, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		link, err = getBadgerLink(txn, string(id))
		return err
	})
	if err != nil {
		if isAccessLinkDomainError(err) {
			return nil, err
		}
		return nil, apperrors.Wrap(err, "failed to get access link")
	}
	return link, nil
}

// IncrementViewCount re-reads the link and adds one view inside a serializable
// transaction. A concurrent increment of the same link makes one commit conflict; the
// retry then observes the new count and applies the quota again.
func (b *BadgerAccessLinkRepository) IncrementViewCount(ctx context.Context, id uuid.UUID) error {
	err := b.store.Update(ctx, func(txn *badger.Txn) error {
		link, err := getBadgerLink(txn, id.String())
		if err != nil {
			return err
		}
		if link.IsExhausted() {
			return documentDomain.ErrAccessLinkQuotaExceeded
		}
		link.ViewCount++
		return database.SetJSON(txn, badgerLinkByIDPrefix+id.String(), link)
	})
	if err != nil {
		if isAccessLinkDomainError(err) {
			return err
		}
		return apperrors.Wrap(err, "failed to increment access link view count")
	}
	return nil
}

// ListByDocument retrieves the links of a document, oldest first.
func (b *BadgerAccessLinkRepository) ListByDocument(
	ctx context.Context,
	documentID uuid.UUID,
) ([]*documentDomain.AccessLink, error) {
	links := make([]*documentDomain.AccessLink, 0)
	err := b.store.View(ctx, func(txn *badger.Txn) error {
		prefix := linkByDocumentPrefix(documentID)
		var ids []string
		err := database.ScanPrefix(txn, prefix, false, 0, 0, func(key, _ []byte) error {
			ids = append(ids, string(key[len(prefix):]))
			return nil
		})
		if err != nil {
			return err
		}
		for _, id := range ids {
			link, err := getBadgerLink(txn, id)
			if err != nil {
				return err
			}
			links = append(links, link)
		}
		return nil
	})
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list access links")
	}
	return links, nil
}
