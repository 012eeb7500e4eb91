package service

import (
	"context"

	"issue_tracker/internal/model"
)

type AuthService interface {
	SignUp(ctx context.Context, input model.SignUp) (*model.Identity, error)
	SignIn(ctx context.Context, input model.SignIn) (*model.Identity, error)
	SignOut(ctx context.Context) error
}

type IssueService interface {
	List(ctx context.Context) ([]model.Issue, error)
	Get(ctx context.Context, id int64) (*model.Issue, error)
	Create(ctx context.Context, input model.NewIssue) (*model.Issue, error)
	Update(ctx context.Context, id int64, patch model.IssuePatch) (*model.Issue, error)
	Delete(ctx context.Context, id int64) error
}
