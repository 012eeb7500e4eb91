package issue

import (
	"context"

	"issue_tracker/internal/model"
	"issue_tracker/internal/validation"

	"github.com/sirupsen/logrus"
)

// Create - создает задачу от имени текущего пользователя
func (s *serv) Create(ctx context.Context, input model.NewIssue) (*model.Issue, error) {
	user, err := s.currentUser(ctx)
	if err != nil {
		return nil, err
	}

	if err = validation.Struct(input); err != nil {
		return nil, err
	}

	issue := &model.Issue{
		Title:       input.Title,
		Description: normalizeDescription(input.Description),
		Status:      input.Status,
		Priority:    input.Priority,
		UserID:      user.ID,
	}
	if issue.Status == "" {
		issue.Status = model.StatusBacklog
	}
	if issue.Priority == "" {
		issue.Priority = model.PriorityMedium
	}

	created, err := s.issueRepo.CreateIssue(ctx, issue)
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"issue_id": created.ID, "user_id": user.ID}).Info("issue created")

	return created, nil
}
