package access

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"issue_tracker/internal/model"
	"issue_tracker/pkg/resp"

	"github.com/sirupsen/logrus"
)

// SessionResolver - источник ID пользователя текущей сессии
type SessionResolver interface {
	Resolve(ctx context.Context) (userID string, ok bool)
}

// UserLoader - загрузка пользователя по ID из хранилища учетных данных
type UserLoader interface {
	GetUserByID(ctx context.Context, id string) (*model.User, error)
}

type cacheKey struct{}

// requestCache - результат CurrentUser в пределах одного запроса
type requestCache struct {
	once sync.Once
	user *model.User
	err  error
}

// Gate отвечает на вопрос "кто текущий пользователь" для проверок доступа
type Gate struct {
	sessions SessionResolver
	users    UserLoader
	log      logrus.FieldLogger
}

func NewGate(sessions SessionResolver, users UserLoader, log logrus.FieldLogger) *Gate {
	return &Gate{
		sessions: sessions,
		users:    users,
		log:      log,
	}
}

// Middleware - заводит кэш текущего пользователя на время запроса
func (g *Gate) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), cacheKey{}, &requestCache{})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireUser - отвечает 401, если в запросе нет действующей сессии
func (g *Gate) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := g.CurrentUser(r.Context())
		if err != nil {
			resp.WriteMessage(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		if user == nil {
			resp.WriteMessage(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// CurrentUser - пользователь текущей сессии или nil, если сессии нет
// или пользователь удален после выпуска токена. Внутри запроса под
// Middleware хранилище опрашивается не больше одного раза.
func (g *Gate) CurrentUser(ctx context.Context) (*model.User, error) {
	cache, ok := ctx.Value(cacheKey{}).(*requestCache)
	if !ok {
		return g.load(ctx)
	}

	cache.once.Do(func() {
		cache.user, cache.err = g.load(ctx)
	})

	return cache.user, cache.err
}

func (g *Gate) load(ctx context.Context) (*model.User, error) {
	userID, ok := g.sessions.Resolve(ctx)
	if !ok {
		return nil, nil
	}

	user, err := g.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, nil
		}
		g.log.WithError(err).WithField("user_id", userID).Error("load current user")
		return nil, fmt.Errorf("load current user: %w", err)
	}

	return user, nil
}
