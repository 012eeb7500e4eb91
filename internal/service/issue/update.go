package issue

import (
	"context"

	"issue_tracker/internal/model"
	"issue_tracker/internal/validation"
)

// Update - частично обновляет задачу текущего пользователя
func (s *serv) Update(ctx context.Context, id int64, patch model.IssuePatch) (*model.Issue, error) {
	user, err := s.currentUser(ctx)
	if err != nil {
		return nil, err
	}

	if err = validation.Struct(patch); err != nil {
		return nil, err
	}

	var updated *model.Issue
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		issue, err := s.owned(ctx, user, id)
		if err != nil {
			return err
		}

		if patch.Title != nil {
			issue.Title = *patch.Title
		}
		if patch.Description != nil {
			issue.Description = normalizeDescription(patch.Description)
		}
		if patch.Status != nil {
			issue.Status = *patch.Status
		}
		if patch.Priority != nil {
			issue.Priority = *patch.Priority
		}

		updated, err = s.issueRepo.UpdateIssue(ctx, issue)
		return err
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}
