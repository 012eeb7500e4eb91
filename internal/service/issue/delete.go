package issue

import (
	"context"
)

// Delete - удаляет задачу текущего пользователя
func (s *serv) Delete(ctx context.Context, id int64) error {
	user, err := s.currentUser(ctx)
	if err != nil {
		return err
	}

	return s.txManager.Do(ctx, func(ctx context.Context) error {
		if _, err := s.owned(ctx, user, id); err != nil {
			return err
		}
		return s.issueRepo.DeleteIssue(ctx, id)
	})
}
