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

// PostgreSQLAccessLinkRepository implements access link persistence for PostgreSQL.
type PostgreSQLAccessLinkRepository struct {
	db *sql.DB
}

// NewPostgreSQLAccessLinkRepository creates a new PostgreSQL access link repository.
func NewPostgreSQLAccessLinkRepository(db *sql.DB) *PostgreSQLAccessLinkRepository {
	return &PostgreSQLAccessLinkRepository{db: db}
}

const accessLinkColumns = `id, document_id, access_token, created_at, expires_at, max_views, view_count`

func scanPostgresAccessLink(row interface{ Scan(...any) error }) (*documentDomain.AccessLink, error) {
	var link documentDomain.AccessLink
	var expiresAt sql.NullTime
	var maxViews sql.NullInt64

	err := row.Scan(
		&link.ID,
		&link.DocumentID,
		&link.AccessToken,
		&link.CreatedAt,
		&expiresAt,
		&maxViews,
		&link.ViewCount,
	)
	if err != nil {
		return nil, err
	}
	applyNullLimits(&link, expiresAt, maxViews)
	return &link, nil
}

func applyNullLimits(link *documentDomain.AccessLink, expiresAt sql.NullTime, maxViews sql.NullInt64) {
	if expiresAt.Valid {
		t := expiresAt.Time
		link.ExpiresAt = &t
	}
	if maxViews.Valid {
		n := int(maxViews.Int64)
		link.MaxViews = &n
	}
}

// Create inserts a new access link. A missing document yields ErrDocumentNotFound.
func (p *PostgreSQLAccessLinkRepository) Create(ctx context.Context, link *documentDomain.AccessLink) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO access_links (` + accessLinkColumns + `)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := querier.ExecContext(
		ctx,
		query,
		link.ID,
		link.DocumentID,
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
func (p *PostgreSQLAccessLinkRepository) GetByAccessToken(
	ctx context.Context,
	accessToken string,
) (*documentDomain.AccessLink, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + accessLinkColumns + ` FROM access_links WHERE access_token = $1`

	link, err := scanPostgresAccessLink(querier.QueryRowContext(ctx, query, accessToken))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, documentDomain.ErrAccessLinkNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get access link")
	}
	return link, nil
}

// IncrementViewCount adds one view unless the quota is already used up. The guard
// lives in the UPDATE itself, so concurrent resolvers serialize on the row lock and
// the loser sees zero affected rows.
func (p *PostgreSQLAccessLinkRepository) IncrementViewCount(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE access_links SET view_count = view_count + 1
			  WHERE id = $1 AND (max_views IS NULL OR view_count < max_views)`

	result, err := querier.ExecContext(ctx, query, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to increment access link view count")
	}
	return requireAffected(result, documentDomain.ErrAccessLinkQuotaExceeded, "failed to increment access link view count")
}

// ListByDocument retrieves the links of a document, oldest first.
func (p *PostgreSQLAccessLinkRepository) ListByDocument(
	ctx context.Context,
	documentID uuid.UUID,
) ([]*documentDomain.AccessLink, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + accessLinkColumns + ` FROM access_links
			  WHERE document_id = $1
			  ORDER BY created_at ASC, id ASC`

	rows, err := querier.QueryContext(ctx, query, documentID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list access links")
	}
	defer func() {
		_ = rows.Close()
	}()

	links := make([]*documentDomain.AccessLink, 0)
	for rows.Next() {
		link, err := scanPostgresAccessLink(rows)
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
