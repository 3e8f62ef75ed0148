// Package repository provides document and access link persistence for PostgreSQL,
// MySQL and the embedded Badger store.
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

// PostgreSQLDocumentRepository implements document persistence for PostgreSQL.
type PostgreSQLDocumentRepository struct {
	db *sql.DB
}

// NewPostgreSQLDocumentRepository creates a new PostgreSQL document repository.
func NewPostgreSQLDocumentRepository(db *sql.DB) *PostgreSQLDocumentRepository {
	return &PostgreSQLDocumentRepository{db: db}
}

// Create inserts a new document. The payload column is JSON, which keeps the text as sent.
func (p *PostgreSQLDocumentRepository) Create(ctx context.Context, doc *documentDomain.Document) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO documents (id, owner_id, name, surname, pesel, payload, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := querier.ExecContext(
		ctx,
		query,
		doc.ID,
		database.NullUUID(doc.OwnerID),
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
func (p *PostgreSQLDocumentRepository) Get(ctx context.Context, id uuid.UUID) (*documentDomain.Document, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, owner_id, name, surname, pesel, payload, created_at FROM documents WHERE id = $1`

	var doc documentDomain.Document
	var ownerID uuid.NullUUID
	var payload []byte
	err := querier.QueryRowContext(ctx, query, id).
		Scan(&doc.ID, &ownerID, &doc.Name, &doc.Surname, &doc.Pesel, &payload, &doc.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, documentDomain.ErrDocumentNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get document")
	}
	doc.OwnerID = database.UUIDPtr(ownerID)
	doc.Payload = payload
	return &doc, nil
}

// List retrieves document summaries (no payload) newest first with pagination.
func (p *PostgreSQLDocumentRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*documentDomain.Document, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, owner_id, name, surname, pesel, created_at FROM documents
			  ORDER BY created_at DESC, id DESC
			  LIMIT $1 OFFSET $2`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list documents")
	}
	defer func() {
		_ = rows.Close()
	}()

	docs := make([]*documentDomain.Document, 0)
	for rows.Next() {
		var doc documentDomain.Document
		var ownerID uuid.NullUUID
		if err := rows.Scan(&doc.ID, &ownerID, &doc.Name, &doc.Surname, &doc.Pesel, &doc.CreatedAt); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan document")
		}
		doc.OwnerID = database.UUIDPtr(ownerID)
		docs = append(docs, &doc)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate documents")
	}

	return docs, nil
}

// Delete removes a document. Its access links are removed by the foreign key cascade.
func (p *PostgreSQLDocumentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, p.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete document")
	}
	return requireAffected(result, documentDomain.ErrDocumentNotFound, "failed to delete document")
}

// requireAffected returns notFound when result touched no rows.
func requireAffected(result sql.Result, notFound error, message string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, message)
	}
	if affected == 0 {
		return notFound
	}
	return nil
}
