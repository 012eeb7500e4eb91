package issue_repo

import (
	"context"
	"errors"
	"fmt"

	"issue_tracker/internal/model"
	"issue_tracker/internal/repository"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
)

const (
	table          = "issues"
	colID          = "id"
	colTitle       = "title"
	colDescription = "description"
	colStatus      = "status"
	colPriority    = "priority"
	colUserID      = "user_id"
	colCreatedAt   = "created_at"
	colUpdatedAt   = "updated_at"
)

var (
	psql       = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	allColumns = []string{colID, colTitle, colDescription, colStatus, colPriority, colUserID, colCreatedAt, colUpdatedAt}
	returning  = "RETURNING " + colID + ", " + colTitle + ", " + colDescription + ", " + colStatus + ", " +
		colPriority + ", " + colUserID + ", " + colCreatedAt + ", " + colUpdatedAt
)

type repo struct {
	dbc    trmpgx.Tr
	getter *trmpgx.CtxGetter
}

func NewIssueRepository(dbc trmpgx.Tr) repository.IssueRepository {
	return &repo{
		dbc:    dbc,
		getter: trmpgx.DefaultCtxGetter,
	}
}

// CreateIssue - создает задачу и возвращает ее вместе с ID и временными метками
func (r *repo) CreateIssue(ctx context.Context, issue *model.Issue) (*model.Issue, error) {
	query := psql.Insert(table).
		Columns(colTitle, colDescription, colStatus, colPriority, colUserID).
		Values(issue.Title, issue.Description, string(issue.Status), string(issue.Priority), issue.UserID).
		Suffix(returning)

	return r.queryIssue(ctx, query)
}

// GetIssue - возвращает задачу по ID
func (r *repo) GetIssue(ctx context.Context, id int64) (*model.Issue, error) {
	query := psql.Select(allColumns...).
		From(table).
		Where(sq.Eq{colID: id})

	return r.queryIssue(ctx, query)
}

// ListIssuesByUser - задачи пользователя, новые первыми
func (r *repo) ListIssuesByUser(ctx context.Context, userID string) ([]model.Issue, error) {
	sqlStr, args, err := listIssuesQuery(userID).ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.getter.DefaultTrOrDB(ctx, r.dbc).Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("select issues: %w", err)
	}
	defer rows.Close()

	issues := make([]model.Issue, 0)
	for rows.Next() {
		issue, err := scanIssue(rows)
		if err != nil {
			return nil, fmt.Errorf("scan issue: %w", err)
		}
		issues = append(issues, *issue)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("select issues: %w", err)
	}

	return issues, nil
}

// UpdateIssue - сохраняет редактируемые поля задачи и обновляет updated_at
func (r *repo) UpdateIssue(ctx context.Context, issue *model.Issue) (*model.Issue, error) {
	query := psql.Update(table).
		Set(colTitle, issue.Title).
		Set(colDescription, issue.Description).
		Set(colStatus, string(issue.Status)).
		Set(colPriority, string(issue.Priority)).
		Set(colUpdatedAt, sq.Expr("now()")).
		Where(sq.Eq{colID: issue.ID}).
		Suffix(returning)

	return r.queryIssue(ctx, query)
}

// DeleteIssue - удаляет задачу по ID
func (r *repo) DeleteIssue(ctx context.Context, id int64) error {
	sqlStr, args, err := psql.Delete(table).Where(sq.Eq{colID: id}).ToSql()
	if err != nil {
		return err
	}

	tag, err := r.getter.DefaultTrOrDB(ctx, r.dbc).Exec(ctx, sqlStr, args...)
	if err != nil {
		return fmt.Errorf("delete issue: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrIssueNotFound
	}

	return nil
}

// DeleteAllIssues - удаляет все задачи
func (r *repo) DeleteAllIssues(ctx context.Context) error {
	sqlStr, args, err := psql.Delete(table).ToSql()
	if err != nil {
		return err
	}

	_, err = r.getter.DefaultTrOrDB(ctx, r.dbc).Exec(ctx, sqlStr, args...)
	if err != nil {
		return fmt.Errorf("delete issues: %w", err)
	}

	return nil
}

func (r *repo) queryIssue(ctx context.Context, query sq.Sqlizer) (*model.Issue, error) {
	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	issue, err := scanIssue(r.getter.DefaultTrOrDB(ctx, r.dbc).QueryRow(ctx, sqlStr, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrIssueNotFound
		}
		return nil, fmt.Errorf("query issue: %w", err)
	}

	return issue, nil
}

func listIssuesQuery(userID string) sq.SelectBuilder {
	return psql.Select(allColumns...).
		From(table).
		Where(sq.Eq{colUserID: userID}).
		OrderBy(colCreatedAt+" DESC", colID+" DESC")
}

func scanIssue(row pgx.Row) (*model.Issue, error) {
	var (
		issue    model.Issue
		status   string
		priority string
	)

	err := row.Scan(
		&issue.ID,
		&issue.Title,
		&issue.Description,
		&status,
		&priority,
		&issue.UserID,
		&issue.CreatedAt,
		&issue.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	issue.Status = model.IssueStatus(status)
	issue.Priority = model.IssuePriority(priority)

	return &issue, nil
}
