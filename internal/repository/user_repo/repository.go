package user_repo

import (
	"context"
	"errors"
	"fmt"

	"issue_tracker/internal/model"
	"issue_tracker/internal/repository"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	table           = "users"
	colID           = "id"
	colEmail        = "email"
	colPasswordHash = "password_hash"
	colCreatedAt    = "created_at"

	// uniqueViolation - SQLSTATE нарушения уникального индекса
	uniqueViolation = "23505"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type repo struct {
	dbc    trmpgx.Tr
	getter *trmpgx.CtxGetter
}

func NewUserRepository(dbc trmpgx.Tr) repository.UserRepository {
	return &repo{
		dbc:    dbc,
		getter: trmpgx.DefaultCtxGetter,
	}
}

// CreateUser - создает нового пользователя в БД.
// Уникальный индекс по email - окончательная проверка на дубликат,
// его нарушение возвращается как model.ErrUserAlreadyExists
func (r *repo) CreateUser(ctx context.Context, user *model.User) error {
	sqlStr, args, err := insertUserQuery(user).ToSql()
	if err != nil {
		return err
	}

	conn := r.getter.DefaultTrOrDB(ctx, r.dbc)
	err = conn.QueryRow(ctx, sqlStr, args...).Scan(&user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return model.ErrUserAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}

	return nil
}

// GetUserByEmail - возвращает пользователя по email (точное совпадение, с учетом регистра)
func (r *repo) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.getUser(ctx, selectUserQuery().Where(sq.Eq{colEmail: email}))
}

// GetUserByID - возвращает пользователя по ID
func (r *repo) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	return r.getUser(ctx, selectUserQuery().Where(sq.Eq{colID: id}))
}

// DeleteAllUsers - удаляет всех пользователей (используется при заполнении демо-данными)
func (r *repo) DeleteAllUsers(ctx context.Context) error {
	sqlStr, args, err := psql.Delete(table).ToSql()
	if err != nil {
		return err
	}

	_, err = r.getter.DefaultTrOrDB(ctx, r.dbc).Exec(ctx, sqlStr, args...)
	if err != nil {
		return fmt.Errorf("delete users: %w", err)
	}

	return nil
}

func (r *repo) getUser(ctx context.Context, query sq.SelectBuilder) (*model.User, error) {
	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var user model.User
	conn := r.getter.DefaultTrOrDB(ctx, r.dbc)
	err = conn.QueryRow(ctx, sqlStr, args...).Scan(&user.ID, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("select user: %w", err)
	}

	return &user, nil
}

func insertUserQuery(user *model.User) sq.InsertBuilder {
	return psql.Insert(table).
		Columns(colID, colEmail, colPasswordHash).
		Values(user.ID, user.Email, user.PasswordHash).
		Suffix("RETURNING " + colCreatedAt)
}

func selectUserQuery() sq.SelectBuilder {
	return psql.Select(colID, colEmail, colPasswordHash, colCreatedAt).From(table)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
