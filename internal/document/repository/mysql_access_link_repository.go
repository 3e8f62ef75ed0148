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

// MySQLAccessLinkRepository implements access link persistence for MySQL.
type MySQLAccessLinkRepository struct {
	db *sql.DB
}

// NewMySQLAccessLinkRepository creates a new MySQL access link repository.
func NewMySQLAccessLinkRepository(db *sql.DB) *MySQLAccessLinkRepository {
	return &MySQLAccessLinkRepository{db: db}
}

func scanMySQLAccessLink(row interface{ Scan(...any) error }) (*documentDomain.AccessLink, error) {
	var link documentDomain.AccessLink
	var id, documentID []byte
	var expiresAt sql.NullTime
	var maxViews sql.NullInt64

	err := row.Scan(&id, &documentID, &link.AccessToken, &link.CreatedAt, &expiresAt, &maxViews, &link.ViewCount)
	if err != nil {
		return nil, err
	}
	if err := link.ID.UnmarshalBinary(id); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal access link id")
	}
	if err := link.DocumentID.UnmarshalBinary(documentID); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal document id")
	}
	applyNullLimits(&link, expiresAt, maxViews)
	return &link, nil
}

// Create inserts a new access link. A missing document yields ErrDocumentNotFound.
func (m *MySQLAccessLinkRepository) Create(ctx context.Context, link *documentDomain.AccessLink) error {
	querier := database.GetTx(ctx, m.db)

	id, err := link.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal access link id")
	}
	documentID, err := link.DocumentID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal document id")
	}

	query := `INSERT INTO access_links (` + accessLinkColumns + `)
			  VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		documentID,
		link.AccessToken,
		link.CreatedAt,
		link.ExpiresAt,
		link.MaxViews,
		link.ViewCount,
	)
	if err != nil {
		switch {
		case database.IsUniqueViolation(err):
			return documentDomain.ErrAccessLinkAlreadyExists
		case database.IsForeignKeyViolation(err):
			return documentDomain.ErrDocumentNotFound
		}
		return apperrors.Wrap(err, "failed to create access link")
	}
	return nil
}

// GetByAccessToken retrieves an access link by its token.
func (m *MySQLAccessLinkRepository) GetByAccessToken(
	ctx context.Context,
	accessToken string,
) (*documentDomain.AccessLink, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT ` + accessLinkColumns + ` FROM access_links WHERE access_token = ?`

	link, err := scanMySQLAccessLink(querier.QueryRowContext(ctx, query, accessToken))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, documentDomain.ErrAccessLinkNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get access link")
	}
	return link, nil
}

// IncrementViewCount adds one view unless the quota is already used up.
func (m *MySQLAccessLinkRepository) IncrementViewCount(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, m.db)

	idBytes, err := id.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal access link id")
	}

	query := `UPDATE access_links SET view_count = view_count + 1
			  WHERE id = ? AND (max_views IS NULL OR view_count < max_views)`

	result, err := querier.ExecContext(ctx, query, idBytes)
	if err != nil {
		return apperrors.Wrap(err, "failed to increment access link view count")
	}
	return requireAffected(result, documentDomain.ErrAccessLinkQuotaExceeded, "failed to increment access link view count")
}

// ListByDocument retrieves the links of a document, oldest first.
func (m *MySQLAccessLinkRepository) ListByDocument(
	ctx context.Context,
	documentID uuid.UUID,
) ([]*documentDomain.AccessLink, error) {
	querier := database.GetTx(ctx, m.db)

	idBytes, err := documentID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal document id")
	}

	query := `SELECT ` + accessLinkColumns + ` FROM access_links
			  WHERE document_id = ?
			  ORDER BY created_at ASC, id ASC`

	rows, err := querier.QueryContext(ctx, query, idBytes)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list access links")
	}
	defer func() {
		_ = rows.Close()
	}()

	links := make([]*documentDomain.AccessLink, 0)
	for rows.Next() {
		link, err := scanMySQLAccessLink(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan access link")
		}
		links = append(links, link)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate access links")
	}

	return links, nil
}
