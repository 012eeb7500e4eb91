package issue

import (
	"context"

	"issue_tracker/internal/model"
)

// List - задачи текущего пользователя
func (s *serv) List(ctx context.Context) ([]model.Issue, error) {
	user, err := s.currentUser(ctx)
	if err != nil {
		return nil, err
	}

	return s.issueRepo.ListIssuesByUser(ctx, user.ID)
}

// Get - задача по ID, если она принадлежит текущему пользователю
func (s *serv) Get(ctx context.Context, id int64) (*model.Issue, error) {
	user, err := s.currentUser(ctx)
	if err != nil {
		return nil, err
	}

	return s.owned(ctx, user, id)
}
