package auth

import (
	"context"

	"issue_tracker/internal/repository"
	"issue_tracker/internal/service"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/sirupsen/logrus"
)

// SessionIssuer - выпуск и отзыв сессии в cookie текущего запроса
type SessionIssuer interface {
	Issue(ctx context.Context, userID string) (string, error)
	Revoke(ctx context.Context) error
}

type serv struct {
	txManager trm.Manager
	userRepo  repository.UserRepository
	sessions  SessionIssuer
	newID     func() (string, error)
	log       logrus.FieldLogger
}

func NewService(
	txManager trm.Manager,
	userRepo repository.UserRepository,
	sessions SessionIssuer,
	log logrus.FieldLogger,
) service.AuthService {
	return &serv{
		txManager: txManager,
		userRepo:  userRepo,
		sessions:  sessions,
		newID:     func() (string, error) { return gonanoid.New() },
		log:       log,
	}
}
