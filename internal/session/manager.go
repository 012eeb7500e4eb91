package session

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"issue_tracker/internal/config"
	"issue_tracker/pkg/token"

	"github.com/sirupsen/logrus"
)

// CookieName - имя cookie с токеном сессии
const CookieName = "auth_token"

const refreshTaskKey = "session.refresh"

type Option func(*Manager)

// WithClock - подменяет источник текущего времени
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

// WithErrorHandler - получает ошибки фонового обновления сессии
func WithErrorHandler(fn func(ctx context.Context, err error)) Option {
	return func(m *Manager) {
		m.onError = fn
	}
}

// Manager выпускает, проверяет, обновляет и отзывает сессию, которая живет
// только в cookie клиента. Состояние на сервере не хранится.
type Manager struct {
	secret    []byte
	ttl       time.Duration
	threshold time.Duration
	secure    bool

	now     func() time.Time
	onError func(ctx context.Context, err error)
	log     logrus.FieldLogger
}

func NewManager(cfg config.SessionConfig, log logrus.FieldLogger, opts ...Option) *Manager {
	m := &Manager{
		secret:    cfg.SecretKey(),
		ttl:       cfg.TTL(),
		threshold: cfg.RefreshThreshold(),
		secure:    cfg.SecureCookie(),
		now:       time.Now,
		log:       log,
	}
	m.onError = func(ctx context.Context, err error) {
		m.log.WithError(err).Warn("session refresh failed")
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Middleware - кладет cookie jar запроса в контекст и выполняет
// отложенное обновление сессии до отправки заголовков ответа
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		j := newJar(w, r)
		rw := &responseWriter{ResponseWriter: w, jar: j}

		next.ServeHTTP(rw, r.WithContext(withJar(r.Context(), j)))

		j.flush()
	})
}

// Issue - создает новую сессию для пользователя и пишет токен в cookie
func (m *Manager) Issue(ctx context.Context, userID string) (string, error) {
	j, err := jarFromContext(ctx)
	if err != nil {
		return "", err
	}

	tok, err := token.GenerateSessionToken(userID, m.secret, m.ttl, m.now())
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}

	if err = j.set(m.cookie(tok)); err != nil {
		return "", err
	}

	return tok, nil
}

// Resolve - возвращает ID пользователя из валидного токена.
// Отсутствующий, поддельный или истекший токен означает отсутствие сессии.
// Проверка на обновление ставится в очередь и не задерживает вызывающего.
func (m *Manager) Resolve(ctx context.Context) (string, bool) {
	j, err := jarFromContext(ctx)
	if err != nil {
		return "", false
	}

	raw, ok := j.get(CookieName)
	if !ok {
		return "", false
	}

	claims, err := token.VerifySessionToken(raw, m.secret, m.now())
	if err != nil {
		m.log.WithError(err).Debug("session token rejected")
		return "", false
	}

	j.deferOnce(refreshTaskKey, func() error {
		_, err := m.RefreshIfNeeded(ctx)
		return err
	}, func(err error) {
		m.onError(ctx, err)
	})

	return claims.UserID, true
}

// RefreshIfNeeded - перевыпускает токен для того же пользователя, если до истечения
// осталось меньше порога. При ошибке старый токен остается на месте.
func (m *Manager) RefreshIfNeeded(ctx context.Context) (bool, error) {
	j, err := jarFromContext(ctx)
	if err != nil {
		return false, err
	}

	raw, ok := j.get(CookieName)
	if !ok {
		return false, nil
	}

	now := m.now()
	claims, err := token.VerifySessionToken(raw, m.secret, now)
	if err != nil {
		return false, nil
	}

	if claims.ExpiresAt.Time.Sub(now) >= m.threshold {
		return false, nil
	}

	tok, err := token.GenerateSessionToken(claims.UserID, m.secret, m.ttl, now)
	if err != nil {
		return false, fmt.Errorf("sign refreshed token: %w", err)
	}

	if err = j.set(m.cookie(tok)); err != nil {
		return false, err
	}

	return true, nil
}

// Revoke - удаляет cookie сессии без условий
func (m *Manager) Revoke(ctx context.Context) error {
	j, err := jarFromContext(ctx)
	if err != nil {
		return err
	}

	return j.set(&http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (m *Manager) cookie(value string) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(m.ttl / time.Second),
	}
}
