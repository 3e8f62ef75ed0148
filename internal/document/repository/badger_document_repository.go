package repository

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v3"
	"github.com/google/uuid"

	"github.com/allisson/docgate/internal/database"
	documentDomain "github.com/allisson/docgate/internal/document/domain"
	apperrors "github.com/allisson/docgate/internal/errors"
)

// Key layout:
//
//	documents/id/<uuid v7>                       -> JSON record
//	access_links/id/<uuid v7>                    -> JSON record
//	access_links/token/<access token>            -> link id
//	access_links/document/<doc id>/<link id>     -> access token
const (
	badgerDocumentPrefix       = "documents/id/"
	badgerLinkByIDPrefix       = "access_links/id/"
	badgerLinkByTokenPrefix    = "access_links/token/"
	badgerLinkByDocumentPrefix = "access_links/document/"
)

func linkByDocumentPrefix(documentID uuid.UUID) string {
	return badgerLinkByDocumentPrefix + documentID.String() + "/"
}

// badgerDocument is the stored form of a document. The payload is held as []byte so
// that encoding/json does not re-compact it.
type badgerDocument struct {
	ID        uuid.UUID  `json:"id"`
	OwnerID   *uuid.UUID `json:"owner_id,omitempty"`
	Name      string     `json:"name"`
	Surname   string     `json:"surname"`
	Pesel     string     `json:"pesel"`
	Payload   []byte     `json:"payload"`
	CreatedAt time.Time  `json:"created_at"`
}

func toBadgerDocument(doc *documentDomain.Document) *badgerDocument {
	return &badgerDocument{
		ID:        doc.ID,
		OwnerID:   doc.OwnerID,
		Name:      doc.Name,
		Surname:   doc.Surname,
		Pesel:     doc.Pesel,
		Payload:   doc.Payload,
		CreatedAt: doc.CreatedAt,
	}
}

func (d *badgerDocument) toDomain(withPayload bool) *documentDomain.Document {
	doc := &documentDomain.Document{
		ID:        d.ID,
		OwnerID:   d.OwnerID,
		Name:      d.Name,
		Surname:   d.Surname,
		Pesel:     d.Pesel,
		CreatedAt: d.CreatedAt,
	}
	if withPayload {
		doc.Payload = d.Payload
	}
	return doc
}

// BadgerDocumentRepository implements document persistence on the embedded store.
type BadgerDocumentRepository struct {
	store *database.KVStore
}

// NewBadgerDocumentRepository creates a new Badger document repository.
func NewBadgerDocumentRepository(store *database.KVStore) *BadgerDocumentRepository {
	return &BadgerDocumentRepository{store: store}
}

// Create inserts a new document.
func (b *BadgerDocumentRepository) Create(ctx context.Context, doc *documentDomain.Document) error {
	err := b.store.Update(ctx, func(txn *badger.Txn) error {
		return database.SetJSON(txn, badgerDocumentPrefix+doc.ID.String(), toBadgerDocument(doc))
	})
	if err != nil {
		return apperrors.Wrap(err, "failed to create document")
	}
	return nil
}

// Get retrieves a document with its payload.
func (b *BadgerDocumentRepository) Get(ctx context.Context, id uuid.UUID) (*documentDomain.Document, error) {
	var record badgerDocument
	err := b.store.View(ctx, func(txn *badger.Txn) error {
		found, err := database.GetJSON(txn, badgerDocumentPrefix+id.String(), &record)
		if err != nil {
			return err
		}
		if !found {
			return documentDomain.ErrDocumentNotFound
		}
		return nil
	})
	if err != nil {
		if apperrors.Is(err, documentDomain.ErrDocumentNotFound) {
			return nil, err
		}
		return nil, apperrors.Wrap(err, "failed to get document")
	}
	return record.toDomain(true), nil
}

// List retrieves document summaries (no payload) newest first with pagination.
func (b *BadgerDocumentRepository) List(ctx context.Context, offset, limit int) ([]*documentDomain.Document, error) {
	docs := make([]*documentDomain.Document, 0)
	err := b.store.View(ctx, func(txn *badger.Txn) error {
		return database.ScanPrefix(txn, badgerDocumentPrefix, true, offset, limit, func(_, value []byte) error {
			var record badgerDocument
			if err := json.Unmarshal(value, &record); err != nil {
				return err
			}
			docs = append(docs, record.toDomain(false))
			return nil
		})
	})
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list documents")
	}
	return docs, nil
}

// Delete removes a document together with every access link pointing at it.
func (b *BadgerDocumentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	err := b.store.Update(ctx, func(txn *badger.Txn) error {
		docKey := badgerDocumentPrefix + id.String()
		exists, err := database.Exists(txn, docKey)
		if err != nil {
			return err
		}
		if !exists {
			return documentDomain.ErrDocumentNotFound
		}

		prefix := linkByDocumentPrefix(id)
		var keys []string
		err = database.ScanPrefix(txn, prefix, false, 0, 0, func(key, value []byte) error {
			linkID := strings.TrimPrefix(string(key), prefix)
			keys = append(keys, string(key), badgerLinkByIDPrefix+linkID, badgerLinkByTokenPrefix+string(value))
			return nil
		})
		if err != nil {
			return err
		}

		for _, key := range append(keys, docKey) {
			if err := txn.Delete([]byte(key)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if apperrors.Is(err, documentDomain.ErrDocumentNotFound) {
			return err
		}
		return apperrors.Wrap(err, "failed to delete document")
	}
	return nil
}
