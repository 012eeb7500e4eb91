package issue

import (
	"context"

	"issue_tracker/internal/model"
	"issue_tracker/internal/repository"
	"issue_tracker/internal/service"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/sirupsen/logrus"
)

// CurrentUserProvider - пользователь текущего запроса или nil
type CurrentUserProvider interface {
	CurrentUser(ctx context.Context) (*model.User, error)
}

type serv struct {
	txManager trm.Manager
	issueRepo repository.IssueRepository
	users     CurrentUserProvider
	log       logrus.FieldLogger
}

func NewService(
	txManager trm.Manager,
	issueRepo repository.IssueRepository,
	users CurrentUserProvider,
	log logrus.FieldLogger,
) service.IssueService {
	return &serv{
		txManager: txManager,
		issueRepo: issueRepo,
		users:     users,
		log:       log,
	}
}

func (s *serv) currentUser(ctx context.Context) (*model.User, error) {
	user, err := s.users.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, model.ErrUnauthorized
	}
	return user, nil
}

// owned - задача, принадлежащая пользователю
func (s *serv) owned(ctx context.Context, user *model.User, id int64) (*model.Issue, error) {
	issue, err := s.issueRepo.GetIssue(ctx, id)
	if err != nil {
		return nil, err
	}
	if issue.UserID != user.ID {
		return nil, model.ErrForbidden
	}
	return issue, nil
}

func normalizeDescription(d *string) *string {
	if d == nil || *d == "" {
		return nil
	}
	return d
}
