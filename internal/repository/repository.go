package repository

import (
	"context"

	"issue_tracker/internal/model"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	DeleteAllUsers(ctx context.Context) error
}

type IssueRepository interface {
	CreateIssue(ctx context.Context, issue *model.Issue) (*model.Issue, error)
	GetIssue(ctx context.Context, id int64) (*model.Issue, error)
	ListIssuesByUser(ctx context.Context, userID string) ([]model.Issue, error)
	UpdateIssue(ctx context.Context, issue *model.Issue) (*model.Issue, error)
	DeleteIssue(ctx context.Context, id int64) error
	DeleteAllIssues(ctx context.Context) error
}
