package auth

import (
	"context"
	"fmt"
)

// SignOut - отзывает сессию. Редирект на страницу входа делает вызывающий
// независимо от результата.
func (s *serv) SignOut(ctx context.Context) error {
	if err := s.sessions.Revoke(ctx); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}
