// Package repository provides generation token persistence for PostgreSQL, MySQL
// and the embedded Badger store.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/docgate/internal/database"
	apperrors "github.com/allisson/docgate/internal/errors"
	tokenDomain "github.com/allisson/docgate/internal/token/domain"
)

// PostgreSQLGenerationTokenRepository implements generation token persistence for PostgreSQL.
type PostgreSQLGenerationTokenRepository struct {
	db *sql.DB
}

// NewPostgreSQLGenerationTokenRepository creates a new PostgreSQL generation token repository.
func NewPostgreSQLGenerationTokenRepository(db *sql.DB) *PostgreSQLGenerationTokenRepository {
	return &PostgreSQLGenerationTokenRepository{db: db}
}

const postgresTokenColumns = `id, token, is_used, created_at, used_at, created_by`

func scanPostgresToken(row interface{ Scan(...any) error }) (*tokenDomain.GenerationToken, error) {
	var t tokenDomain.GenerationToken
	var usedAt sql.NullTime
	var createdBy uuid.NullUUID

	if err := row.Scan(&t.ID, &t.Token, &t.IsUsed, &t.CreatedAt, &usedAt, &createdBy); err != nil {
		return nil, err
	}
	if usedAt.Valid {
		t.UsedAt = &usedAt.Time
	}
	t.CreatedBy = database.UUIDPtr(createdBy)
	return &t, nil
}

// Create inserts a new generation token.
func (p *PostgreSQLGenerationTokenRepository) Create(ctx context.Context, token *tokenDomain.GenerationToken) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO generation_tokens (id, token, is_used, created_at, used_at, created_by)
			  VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := querier.ExecContext(
		ctx,
		query,
		token.ID,
		token.Token,
		token.IsUsed,
		token.CreatedAt,
		token.UsedAt,
		database.NullUUID(token.CreatedBy),
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return tokenDomain.ErrGenerationTokenAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create generation token")
	}
	return nil
}

// GetByToken retrieves a generation token by its token string.
func (p *PostgreSQLGenerationTokenRepository) GetByToken(
	ctx context.Context,
	token string,
) (*tokenDomain.GenerationToken, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + postgresTokenColumns + ` FROM generation_tokens WHERE token = $1`

	t, err := scanPostgresToken(querier.QueryRowContext(ctx, query, token))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, tokenDomain.ErrGenerationTokenNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get generation token")
	}
	return t, nil
}

// MarkUsed flips an unused token to used in a single conditional UPDATE. When no row
// changes, the token either does not exist or lost the race to another consumer.
func (p *PostgreSQLGenerationTokenRepository) MarkUsed(
	ctx context.Context,
	token string,
	usedAt time.Time,
) (*tokenDomain.GenerationToken, error) {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE generation_tokens SET is_used = TRUE, used_at = $2
			  WHERE token = $1 AND is_used = FALSE
			  RETURNING ` + postgresTokenColumns

	t, err := scanPostgresToken(querier.QueryRowContext(ctx, query, token, usedAt))
	if err == nil {
		return t, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.Wrap(err, "failed to mark generation token as used")
	}

	var exists bool
	err = querier.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM generation_tokens WHERE token = $1)`, token).
		Scan(&exists)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to check generation token")
	}
	if !exists {
		return nil, tokenDomain.ErrGenerationTokenNotFound
	}
	return nil, tokenDomain.ErrGenerationTokenAlreadyUsed
}

// List retrieves generation tokens newest first with pagination.
func (p *PostgreSQLGenerationTokenRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*tokenDomain.GenerationToken, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + postgresTokenColumns + ` FROM generation_tokens
			  ORDER BY created_at DESC, id DESC
			  LIMIT $1 OFFSET $2`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list generation tokens")
	}
	defer func() {
		_ = rows.Close()
	}()

	tokens := make([]*tokenDomain.GenerationToken, 0)
	for rows.Next() {
		t, err := scanPostgresToken(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan generation token")
		}
		tokens = append(tokens, t)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate generation tokens")
	}

	return tokens, nil
}
