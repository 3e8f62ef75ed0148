package repository

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/docgate/internal/testutil"
	userDomain "github.com/allisson/docgate/internal/user/domain"
)

var userColumnNames = []string{
	"id", "username", "email", "password_hash", "has_access", "is_admin", "created_at", "updated_at",
}

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func newTestUser(username string) *userDomain.User {
	now := time.Now().UTC()
	return &userDomain.User{
		ID:           uuid.Must(uuid.NewV7()),
		Username:     username,
		PasswordHash: "$argon2id$placeholder",
		HasAccess:    true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestPostgreSQLUserRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Create_Duplicate", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec("INSERT INTO users").WillReturnError(&pq.Error{Code: "23505"})

		err := NewPostgreSQLUserRepository(db).Create(ctx, newTestUser("jdoe"))
		assert.ErrorIs(t, err, userDomain.ErrUserAlreadyExists)
	})

	t.Run("GetByUsername_Success", func(t *testing.T) {
		db, mock := newMockDB(t)
		user := newTestUser("jdoe")
		email := "jdoe@example.com"

		mock.ExpectQuery("SELECT (.+) FROM users WHERE username = \\$1").
			WithArgs("jdoe").
			WillReturnRows(sqlmock.NewRows(userColumnNames).AddRow(
				user.ID.String(), "jdoe", email, user.PasswordHash, true, true, user.CreatedAt, user.UpdatedAt,
			))

		got, err := NewPostgreSQLUserRepository(db).GetByUsername(ctx, "jdoe")
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
		require.NotNil(t, got.Email)
		assert.Equal(t, email, *got.Email)
		assert.True(t, got.IsAdmin)
	})

	t.Run("Get_NotFound", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery("SELECT (.+) FROM users WHERE id = \\$1").WillReturnRows(sqlmock.NewRows(userColumnNames))

		_, err := NewPostgreSQLUserRepository(db).Get(ctx, uuid.Must(uuid.NewV7()))
		assert.ErrorIs(t, err, userDomain.ErrUserNotFound)
	})

	t.Run("Update_NotFound", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec("UPDATE users SET").WillReturnResult(sqlmock.NewResult(0, 0))

		err := NewPostgreSQLUserRepository(db).Update(ctx, newTestUser("ghost"))
		assert.ErrorIs(t, err, userDomain.ErrUserNotFound)
	})

	t.Run("Delete_Success", func(t *testing.T) {
		db, mock := newMockDB(t)
		id := uuid.Must(uuid.NewV7())
		mock.ExpectExec("DELETE FROM users WHERE id = \\$1").WithArgs(id).WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, NewPostgreSQLUserRepository(db).Delete(ctx, id))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestMySQLUserRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Create_Duplicate", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec("INSERT INTO users").WillReturnError(&mysql.MySQLError{Number: 1062})

		err := NewMySQLUserRepository(db).Create(ctx, newTestUser("jdoe"))
		assert.ErrorIs(t, err, userDomain.ErrUserAlreadyExists)
	})

	t.Run("List_Success", func(t *testing.T) {
		db, mock := newMockDB(t)
		user := newTestUser("jdoe")
		id, err := user.ID.MarshalBinary()
		require.NoError(t, err)

		mock.ExpectQuery("SELECT (.+) FROM users ORDER BY created_at DESC").
			WithArgs(50, 0).
			WillReturnRows(sqlmock.NewRows(userColumnNames).AddRow(
				id, "jdoe", nil, user.PasswordHash, true, false, user.CreatedAt, user.UpdatedAt,
			))

		users, err := NewMySQLUserRepository(db).List(ctx, 0, 50)
		require.NoError(t, err)
		require.Len(t, users, 1)
		assert.Equal(t, user.ID, users[0].ID)
		assert.Nil(t, users[0].Email)
	})

	t.Run("Delete_NotFound", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec("DELETE FROM users WHERE id = \\?").WillReturnResult(sqlmock.NewResult(0, 0))

		err := NewMySQLUserRepository(db).Delete(ctx, uuid.Must(uuid.NewV7()))
		assert.ErrorIs(t, err, userDomain.ErrUserNotFound)
	})
}

func TestBadgerUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewBadgerUserRepository(testutil.SetupKV(t))

	user := newTestUser("jdoe")
	require.NoError(t, repo.Create(ctx, user))
	assert.ErrorIs(t, repo.Create(ctx, newTestUser("jdoe")), userDomain.ErrUserAlreadyExists)

	got, err := repo.GetByUsername(ctx, "jdoe")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, user.PasswordHash, got.PasswordHash)

	got.HasAccess = false
	got.UpdatedAt = time.Now().UTC()
	require.NoError(t, repo.Update(ctx, got))

	reloaded, err := repo.Get(ctx, user.ID)
	require.NoError(t, err)
	assert.False(t, reloaded.HasAccess)
	assert.Equal(t, "jdoe", reloaded.Username)

	for i := range 3 {
		require.NoError(t, repo.Create(ctx, newTestUser(fmt.Sprintf("user-%d", i))))
	}
	users, err := repo.List(ctx, 0, 2)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "user-2", users[0].Username)

	require.NoError(t, repo.Delete(ctx, user.ID))
	_, err = repo.GetByUsername(ctx, "jdoe")
	assert.ErrorIs(t, err, userDomain.ErrUserNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, user.ID), userDomain.ErrUserNotFound)

	require.NoError(t, repo.Create(ctx, newTestUser("jdoe")), "username is free again after delete")
}
