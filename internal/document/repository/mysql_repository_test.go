package repository

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	documentDomain "github.com/allisson/docgate/internal/document/domain"
)

func mustBinary(t *testing.T, id uuid.UUID) []byte {
	t.Helper()
	b, err := id.MarshalBinary()
	require.NoError(t, err)
	return b
}

func TestMySQLDocumentRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("CreateAndGet", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewMySQLDocumentRepository(db)
		owner := uuid.Must(uuid.NewV7())
		doc := newTestDocument()
		doc.OwnerID = &owner

		mock.ExpectExec("INSERT INTO documents").
			WithArgs(mustBinary(t, doc.ID), mustBinary(t, owner), "Jan", "Kowalski", "12345678901", testPayload, doc.CreatedAt).
			WillReturnResult(sqlmock.NewResult(0, 1))
		require.NoError(t, repo.Create(ctx, doc))

		mock.ExpectQuery("SELECT (.+) FROM documents WHERE id = \\?").
			WithArgs(mustBinary(t, doc.ID)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "owner_id", "name", "surname", "pesel", "payload", "created_at"}).
				AddRow(mustBinary(t, doc.ID), mustBinary(t, owner), doc.Name, doc.Surname, doc.Pesel, []byte(testPayload), doc.CreatedAt))

		got, err := repo.Get(ctx, doc.ID)
		require.NoError(t, err)
		assert.Equal(t, doc.ID, got.ID)
		assert.Equal(t, &owner, got.OwnerID)
		assert.Equal(t, testPayload, string(got.Payload))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Create_OversizedListingFieldsFitColumns", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewMySQLDocumentRepository(db)
		pesel := strings.Repeat("7", 400)
		payload := `{"name":"Jan","surname":"Kowalski","pesel":"` + pesel + `"}`
		doc := documentDomain.NewDocument(uuid.Must(uuid.NewV7()), nil, json.RawMessage(payload), time.Now().UTC())

		mock.ExpectExec("INSERT INTO documents").
			WithArgs(mustBinary(t, doc.ID), nil, "Jan", "Kowalski",
				pesel[:documentDomain.ListingFieldMaxRunes], payload, doc.CreatedAt).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Create(ctx, doc))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("List", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewMySQLDocumentRepository(db)
		doc := newTestDocument()

		mock.ExpectQuery("SELECT id, owner_id, name, surname, pesel, created_at FROM documents").
			WithArgs(5, 10).
			WillReturnRows(sqlmock.NewRows([]string{"id", "owner_id", "name", "surname", "pesel", "created_at"}).
				AddRow(mustBinary(t, doc.ID), nil, doc.Name, doc.Surname, doc.Pesel, doc.CreatedAt))

		docs, err := repo.List(ctx, 10, 5)
		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.Nil(t, docs[0].OwnerID)
		assert.Nil(t, docs[0].Payload)
	})

	t.Run("Delete_NotFound", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewMySQLDocumentRepository(db)
		id := uuid.Must(uuid.NewV7())

		mock.ExpectExec("DELETE FROM documents WHERE id = \\?").
			WithArgs(mustBinary(t, id)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Delete(ctx, id), documentDomain.ErrDocumentNotFound)
	})
}

func TestMySQLAccessLinkRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Create_MissingDocument", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewMySQLAccessLinkRepository(db)

		mock.ExpectExec("INSERT INTO access_links").WillReturnError(&mysql.MySQLError{Number: 1452})

		err := repo.Create(ctx, newTestLink(uuid.Must(uuid.NewV7()), nil))
		assert.ErrorIs(t, err, documentDomain.ErrDocumentNotFound)
	})

	t.Run("GetByAccessToken", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewMySQLAccessLinkRepository(db)
		link := newTestLink(uuid.Must(uuid.NewV7()), nil)

		mock.ExpectQuery("SELECT (.+) FROM access_links WHERE access_token = \\?").
			WithArgs(link.AccessToken).
			WillReturnRows(sqlmock.NewRows(linkColumnNames).AddRow(
				mustBinary(t, link.ID), mustBinary(t, link.DocumentID), link.AccessToken, link.CreatedAt, nil, 1, 0,
			))

		got, err := repo.GetByAccessToken(ctx, link.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, link.ID, got.ID)
		assert.Equal(t, link.DocumentID, got.DocumentID)
		require.NotNil(t, got.MaxViews)
		assert.Equal(t, 1, *got.MaxViews)
	})

	t.Run("IncrementViewCount", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewMySQLAccessLinkRepository(db)
		id := uuid.Must(uuid.NewV7())

		mock.ExpectExec("UPDATE access_links SET view_count = view_count \\+ 1").
			WithArgs(mustBinary(t, id)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		require.NoError(t, repo.IncrementViewCount(ctx, id))

		mock.ExpectExec("UPDATE access_links").
			WithArgs(mustBinary(t, id)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		assert.ErrorIs(t, repo.IncrementViewCount(ctx, id), documentDomain.ErrAccessLinkQuotaExceeded)
	})
}
