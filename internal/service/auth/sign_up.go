package auth

import (
	"context"
	"errors"
	"fmt"

	"issue_tracker/internal/model"
	"issue_tracker/internal/validation"
	"issue_tracker/pkg/pass"
)

// SignUp - регистрирует пользователя и сразу открывает сессию.
// Поиск по email до вставки - только быстрый путь: при гонке двух регистраций
// победителя определяет уникальный индекс хранилища.
func (s *serv) SignUp(ctx context.Context, input model.SignUp) (*model.Identity, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	_, err := s.userRepo.GetUserByEmail(ctx, input.Email)
	switch {
	case err == nil:
		return nil, model.ErrUserAlreadyExists
	case !errors.Is(err, model.ErrUserNotFound):
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	// Хэширование пароля пользователя
	passwordHash, err := pass.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	id, err := s.newID()
	if err != nil {
		return nil, fmt.Errorf("generate user id: %w", err)
	}

	user := &model.User{
		ID:           id,
		Email:        input.Email,
		PasswordHash: passwordHash,
	}

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		return s.userRepo.CreateUser(ctx, user)
	})
	if err != nil {
		if errors.Is(err, model.ErrUserAlreadyExists) {
			return nil, model.ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	// Cookie ставится только после коммита
	if _, err = s.sessions.Issue(ctx, user.ID); err != nil {
		return nil, fmt.Errorf("issue session: %w", err)
	}

	s.log.WithField("user_id", user.ID).Info("user signed up")

	return &model.Identity{ID: user.ID, Email: user.Email}, nil
}
