package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agroapi/internal/model"
	"agroapi/internal/repository"
)

var userRowColumns = []string{"id", "name", "last_name", "email", "password_hash", "role", "created_at"}

func TestUserPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewUserPostgres(db)
	ctx := context.Background()
	now := time.Now().UTC()
	u := &model.User{Name: "Ana", LastName: "Ruiz", Email: "ana@example.com", PasswordHash: "hash", Role: model.RoleUser, CreatedAt: now}

	t.Run("success", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO users").
			WithArgs(u.Name, u.LastName, u.Email, u.PasswordHash, u.Role, now).
			WillReturnRows(sqlmock.NewRows(userRowColumns).
				AddRow(int64(1), u.Name, u.LastName, u.Email, u.PasswordHash, u.Role, now))

		got, err := repo.Create(ctx, u)

		require.NoError(t, err)
		assert.Equal(t, int64(1), got.ID)
		assert.Equal(t, "ana@example.com", got.Email)
	})

	t.Run("duplicate email", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO users").
			WillReturnError(&pgconn.PgError{Code: "23505", Message: "duplicate key value"})

		got, err := repo.Create(ctx, u)

		assert.ErrorIs(t, err, repository.ErrDuplicate)
		assert.Nil(t, got)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserPostgres_FindByEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewUserPostgres(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		mock.ExpectQuery(`FROM users WHERE email = \$1`).
			WithArgs("ana@example.com").
			WillReturnRows(sqlmock.NewRows(userRowColumns).
				AddRow(int64(2), "Ana", "Ruiz", "ana@example.com", "hash", model.RoleAdmin, time.Now()))

		got, err := repo.FindByEmail(ctx, "ana@example.com")

		require.NoError(t, err)
		assert.Equal(t, model.RoleAdmin, got.Role)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery(`FROM users WHERE email = \$1`).
			WithArgs("ghost@example.com").
			WillReturnError(sql.ErrNoRows)

		got, err := repo.FindByEmail(ctx, "ghost@example.com")

		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, got)
	})
}

func TestVotePostgres_HasVoted(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewVotePostgres(db)

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(int64(1), int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	voted, err := repo.HasVoted(context.Background(), 1, 2)

	require.NoError(t, err)
	assert.True(t, voted)
	assert.NoError(t, mock.ExpectationsWereMet())
}
