package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/allisson/docgate/internal/database"
	apperrors "github.com/allisson/docgate/internal/errors"
	tokenDomain "github.com/allisson/docgate/internal/token/domain"
)

// MySQLGenerationTokenRepository implements generation token persistence for MySQL.
// UUIDs are stored as BINARY(16).
type MySQLGenerationTokenRepository struct {
	db *sql.DB
}

// NewMySQLGenerationTokenRepository creates a new MySQL generation token repository.
func NewMySQLGenerationTokenRepository(db *sql.DB) *MySQLGenerationTokenRepository {
	return &MySQLGenerationTokenRepository{db: db}
}

const mysqlTokenColumns = `id, token, is_used, created_at, used_at, created_by`

func scanMySQLToken(row interface{ Scan(...any) error }) (*tokenDomain.GenerationToken, error) {
	var t tokenDomain.GenerationToken
	var id, createdBy []byte
	var usedAt sql.NullTime

	if err := row.Scan(&id, &t.Token, &t.IsUsed, &t.CreatedAt, &usedAt, &createdBy); err != nil {
		return nil, err
	}
	if err := t.ID.UnmarshalBinary(id); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal generation token id")
	}
	if usedAt.Valid {
		t.UsedAt = &usedAt.Time
	}
	issuer, err := database.ParseNullUUIDBinary(createdBy)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal generation token issuer")
	}
	t.CreatedBy = issuer
	return &t, nil
}

// Create inserts a new generation token.
func (m *MySQLGenerationTokenRepository) Create(ctx context.Context, token *tokenDomain.GenerationToken) error {
	querier := database.GetTx(ctx, m.db)

	id, err := token.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal generation token id")
	}
	createdBy, err := database.NullUUIDBinary(token.CreatedBy)
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal generation token issuer")
	}

	query := `INSERT INTO generation_tokens (id, token, is_used, created_at, used_at, created_by)
			  VALUES (?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(ctx, query, id, token.Token, token.IsUsed, token.CreatedAt, token.UsedAt, createdBy)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return tokenDomain.ErrGenerationTokenAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create generation token")
	}
	return nil
}

// GetByToken retrieves a generation token by its token string.
func (m *MySQLGenerationTokenRepository) GetByToken(
	ctx context.Context,
	token string,
) (*tokenDomain.GenerationToken, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT ` + mysqlTokenColumns + ` FROM generation_tokens WHERE token = ?`

	t, err := scanMySQLToken(querier.QueryRowContext(ctx, query, token))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, tokenDomain.ErrGenerationTokenNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get generation token")
	}
	return t, nil
}

// MarkUsed flips an unused token to used with a conditional UPDATE and inspects the
// affected row count. InnoDB evaluates the WHERE clause against the latest committed
// row under its lock, so only one concurrent caller can change the row.
func (m *MySQLGenerationTokenRepository) MarkUsed(
	ctx context.Context,
	token string,
	usedAt time.Time,
) (*tokenDomain.GenerationToken, error) {
	querier := database.GetTx(ctx, m.db)

	result, err := querier.ExecContext(
		ctx,
		`UPDATE generation_tokens SET is_used = TRUE, used_at = ? WHERE token = ? AND is_used = FALSE`,
		usedAt,
		token,
	)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to mark generation token as used")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to get rows affected")
	}

	t, err := m.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, tokenDomain.ErrGenerationTokenAlreadyUsed
	}
	return t, nil
}

// List retrieves generation tokens newest first with pagination.
func (m *MySQLGenerationTokenRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*tokenDomain.GenerationToken, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT ` + mysqlTokenColumns + ` FROM generation_tokens
			  ORDER BY created_at DESC, id DESC
			  LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list generation tokens")
	}
	defer func() {
		_ = rows.Close()
	}()

	tokens := make([]*tokenDomain.GenerationToken, 0)
	for rows.Next() {
		t, err := scanMySQLToken(rows)
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
