package user_repo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"testing"
	"time"

	"issue_tracker/internal/model"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertUserQuery(t *testing.T) {
	t.Parallel()

	sqlStr, args, err := insertUserQuery(&model.User{ID: "u1", Email: "a@x.com", PasswordHash: "hash"}).ToSql()
	require.NoError(t, err)

	assert.Equal(t, "INSERT INTO users (id,email,password_hash) VALUES ($1,$2,$3) RETURNING created_at", sqlStr)
	assert.Equal(t, []any{"u1", "a@x.com", "hash"}, args)
}

func TestSelectUserQueryUsesDollarPlaceholders(t *testing.T) {
	t.Parallel()

	sqlStr, args, err := selectUserQuery().Where(sq.Eq{colEmail: "A@x.com"}).ToSql()
	require.NoError(t, err)

	assert.Contains(t, sqlStr, "FROM users")
	assert.Contains(t, sqlStr, "email = $1")
	assert.Equal(t, []any{"A@x.com"}, args)
}

func TestIsUniqueViolation(t *testing.T) {
	t.Parallel()

	dup := &pgconn.PgError{Code: uniqueViolation, ConstraintName: "users_email_key"}
	assert.True(t, isUniqueViolation(dup))
	assert.True(t, isUniqueViolation(fmt.Errorf("wrapped: %w", dup)))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("connection reset")))
}

func newMockRepo(t *testing.T) (*repo, pgxmock.PgxPoolIface) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	return NewUserRepository(mock).(*repo), mock
}

func TestCreateUser(t *testing.T) {
	t.Parallel()

	r, mock := newMockRepo(t)
	createdAt := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users (id,email,password_hash) VALUES ($1,$2,$3) RETURNING created_at")).
		WithArgs("u1", "a@x.com", "hash").
		WillReturnRows(pgxmock.NewRows([]string{colCreatedAt}).AddRow(createdAt))

	user := &model.User{ID: "u1", Email: "a@x.com", PasswordHash: "hash"}
	require.NoError(t, r.CreateUser(context.Background(), user))
	assert.Equal(t, createdAt, user.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	t.Parallel()

	r, mock := newMockRepo(t)

	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(&pgconn.PgError{Code: uniqueViolation, ConstraintName: "users_email_key"})

	err := r.CreateUser(context.Background(), &model.User{ID: "u2", Email: "a@x.com", PasswordHash: "hash"})
	assert.ErrorIs(t, err, model.ErrUserAlreadyExists)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUserStoreFailure(t *testing.T) {
	t.Parallel()

	r, mock := newMockRepo(t)

	mock.ExpectQuery("INSERT INTO users").WillReturnError(errors.New("connection reset"))

	err := r.CreateUser(context.Background(), &model.User{ID: "u1", Email: "a@x.com", PasswordHash: "hash"})
	require.Error(t, err)
	assert.False(t, errors.Is(err, model.ErrUserAlreadyExists))
}

func TestGetUserByEmail(t *testing.T) {
	t.Parallel()

	r, mock := newMockRepo(t)
	createdAt := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE email = $1")).
		WithArgs("a@x.com").
		WillReturnRows(pgxmock.NewRows([]string{colID, colEmail, colPasswordHash, colCreatedAt}).
			AddRow("u1", "a@x.com", "hash", createdAt))

	user, err := r.GetUserByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, &model.User{ID: "u1", Email: "a@x.com", PasswordHash: "hash", CreatedAt: createdAt}, user)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUserByIDNotFound(t *testing.T) {
	t.Parallel()

	r, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE id = $1")).
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	_, err := r.GetUserByID(context.Background(), "missing")
	assert.ErrorIs(t, err, model.ErrUserNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteAllUsers(t *testing.T) {
	t.Parallel()

	r, mock := newMockRepo(t)

	mock.ExpectExec("DELETE FROM users").WillReturnResult(pgxmock.NewResult("DELETE", 2))

	require.NoError(t, r.DeleteAllUsers(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}
