package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/allisson/docgate/internal/database"
	documentDomain "github.com/allisson/docgate/internal/document/domain"
	apperrors "github.com/allisson/docgate/internal/errors"
)

// MySQLDocumentRepository implements document persistence for MySQL. UUIDs are stored
// as BINARY(16) and the payload as LONGTEXT.
type MySQLDocumentRepository struct {
	db *sql.DB
}

// NewMySQLDocumentRepository creates a new MySQL document repository.
func NewMySQLDocumentRepository(db *sql.DB) *MySQLDocumentRepository {
	return &MySQLDocumentRepository{db: db}
}

func scanMySQLDocument(row interface{ Scan(...any) error }, withPayload bool) (*documentDomain.Document, error) {
	var doc documentDomain.Document
	var id, ownerID, payload []byte

	dest := []any{&id, &ownerID, &doc.Name, &doc.Surname, &doc.Pesel}
	if withPayload {
		dest = append(dest, &payload)
	}
	dest = append(dest, &doc.CreatedAt)

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	if err := doc.ID.UnmarshalBinary(id); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal document id")
	}
	owner, err := database.ParseNullUUIDBinary(ownerID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal owner id")
	}
	doc.OwnerID = owner
	if withPayload {
		doc.Payload = payload
	}
	return &doc, nil
}

// Create inserts a new document.
func (m *MySQLDocumentRepository) Create(ctx context.Context, doc *documentDomain.Document) error {
	querier := database.GetTx(ctx, m.db)

	id, err := doc.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal document id")
	}
	ownerID, err := database.NullUUIDBinary(doc.OwnerID)
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal owner id")
	}

	query := `INSERT INTO documents (id, owner_id, name, surname, pesel, payload, created_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		ownerID,
		doc.Name,
		doc.Surname,
		doc.Pesel,
		string(doc.Payload),
		doc.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create document")
	}
	return nil
}

// Get retrieves a document with its payload.
func (m *MySQLDocumentRepository) Get(ctx context.Context, id uuid.UUID) (*documentDomain.Document, error) {
	querier := database.GetTx(ctx, m.db)

	idBytes, err := id.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal document id")
	}

	query := `SELECT id, owner_id, name, surname, pesel, payload, created_at FROM documents WHERE id = ?`

	doc, err := scanMySQLDocument(querier.QueryRowContext(ctx, query, idBytes), true)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, documentDomain.ErrDocumentNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get document")
	}
	return doc, nil
}

// List retrieves document summaries (no payload) newest first with pagination.
func (m *MySQLDocumentRepository) List(ctx context.Context, offset, limit int) ([]*documentDomain.Document, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, owner_id, name, surname, pesel, created_at FROM documents
			  ORDER BY created_at DESC, id DESC
			  LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list documents")
	}
	defer func() {
		_ = rows.Close()
	}()

	docs := make([]*documentDomain.Document, 0)
	for rows.Next() {
		doc, err := scanMySQLDocument(rows, false)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan document")
		}
		docs = append(docs, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate documents")
	}

	return docs, nil
}

// Delete removes a document. Its access links are removed by the foreign key cascade.
func (m *MySQLDocumentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, m.db)

	idBytes, err := id.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal document id")
	}

	result, err := querier.ExecContext(ctx, `DELETE FROM documents WHERE id = ?`, idBytes)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete document")
	}
	return requireAffected(result, documentDomain.ErrDocumentNotFound, "failed to delete document")
}
