package auth

import (
	"context"
	"errors"
	"fmt"

	"issue_tracker/internal/model"
	"issue_tracker/internal/validation"
	"issue_tracker/pkg/pass"
)

// SignIn - проверяет пару email/пароль и открывает сессию.
// Неизвестный email и неверный пароль неразличимы снаружи.
func (s *serv) SignIn(ctx context.Context, input model.SignIn) (*model.Identity, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetUserByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			pass.VerifyDummy(input.Password)
			return nil, model.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if !pass.VerifyPassword(user.PasswordHash, input.Password) {
		return nil, model.ErrInvalidCredentials
	}

	if _, err = s.sessions.Issue(ctx, user.ID); err != nil {
		return nil, fmt.Errorf("issue session: %w", err)
	}

	return &model.Identity{ID: user.ID, Email: user.Email}, nil
}
