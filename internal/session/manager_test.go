package session

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"issue_tracker/pkg/token"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	week = 7 * 24 * time.Hour
	day  = 24 * time.Hour
)

type testConfig struct {
	secure bool
}

func (c testConfig) SecretKey() []byte               { return []byte("0123456789abcdef0123456789abcdef") }
func (c testConfig) TTL() time.Duration              { return week }
func (c testConfig) RefreshThreshold() time.Duration { return day }
func (c testConfig) SecureCookie() bool              { return c.secure }

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestManager(t *testing.T, cfg testConfig, opts ...Option) (*Manager, *clock) {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)

	clk := &clock{now: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
	opts = append([]Option{WithClock(clk.Now)}, opts...)

	return NewManager(cfg, log, opts...), clk
}

// serve - прогоняет один запрос через Middleware
func serve(m *Manager, cookie *http.Cookie, h http.HandlerFunc) *http.Response {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if cookie != nil {
		r.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	m.Middleware(h).ServeHTTP(w, r)
	return w.Result()
}

func sessionCookie(res *http.Response) *http.Cookie {
	for _, c := range res.Cookies() {
		if c.Name == CookieName {
			return c
		}
	}
	return nil
}

func issueCookie(t *testing.T, m *Manager) *http.Cookie {
	t.Helper()

	res := serve(m, nil, func(w http.ResponseWriter, r *http.Request) {
		_, err := m.Issue(r.Context(), "user-1")
		require.NoError(t, err)
	})

	c := sessionCookie(res)
	require.NotNil(t, c)
	return c
}

func TestIssueSetsCookieAttributes(t *testing.T) {
	t.Parallel()

	for _, secure := range []bool{false, true} {
		m, _ := newTestManager(t, testConfig{secure: secure})

		c := issueCookie(t, m)
		assert.NotEmpty(t, c.Value)
		assert.Equal(t, "/", c.Path)
		assert.True(t, c.HttpOnly)
		assert.Equal(t, secure, c.Secure)
		assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
		assert.Equal(t, 604800, c.MaxAge)
	}
}

func TestResolve(t *testing.T) {
	t.Parallel()

	m, clk := newTestManager(t, testConfig{})
	c := issueCookie(t, m)

	cases := []struct {
		name    string
		cookie  *http.Cookie
		advance time.Duration
		wantID  string
		wantOK  bool
	}{
		{name: "no cookie", cookie: nil},
		{name: "valid", cookie: c, wantID: "user-1", wantOK: true},
		{name: "tampered", cookie: &http.Cookie{Name: CookieName, Value: c.Value + "x"}},
		{name: "garbage", cookie: &http.Cookie{Name: CookieName, Value: "garbage"}},
		{name: "expired", cookie: c, advance: week + token.ClockSkew},
	}

	for _, tc := range cases {
		clk.Advance(tc.advance)

		var (
			gotID string
			gotOK bool
		)
		serve(m, tc.cookie, func(w http.ResponseWriter, r *http.Request) {
			gotID, gotOK = m.Resolve(r.Context())
		})

		assert.Equal(t, tc.wantOK, gotOK, tc.name)
		assert.Equal(t, tc.wantID, gotID, tc.name)
	}
}

func TestResolveWithoutMiddleware(t *testing.T) {
	t.Parallel()

	m, _ := newTestManager(t, testConfig{})

	id, ok := m.Resolve(context.Background())
	assert.False(t, ok)
	assert.Empty(t, id)

	_, err := m.Issue(context.Background(), "user-1")
	assert.ErrorIs(t, err, ErrNoCookieJar)
	assert.ErrorIs(t, m.Revoke(context.Background()), ErrNoCookieJar)
}

func TestResolveRefreshesNearExpiryAfterHandler(t *testing.T) {
	t.Parallel()

	m, clk := newTestManager(t, testConfig{})
	c := issueCookie(t, m)

	clk.Advance(week - day + time.Hour)

	res := serve(m, c, func(w http.ResponseWriter, r *http.Request) {
		id, ok := m.Resolve(r.Context())
		require.True(t, ok)
		assert.Equal(t, "user-1", id)

		// обновление отложено до записи ответа
		assert.Empty(t, w.Header().Values("Set-Cookie"))

		w.WriteHeader(http.StatusOK)
	})

	refreshed := sessionCookie(res)
	require.NotNil(t, refreshed)
	assert.NotEqual(t, c.Value, refreshed.Value)

	claims, err := token.VerifySessionToken(refreshed.Value, testConfig{}.SecretKey(), clk.Now())
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.True(t, claims.ExpiresAt.Time.Equal(clk.Now().Add(week)))
}

func TestMiddlewareForwardsFlush(t *testing.T) {
	t.Parallel()

	m, clk := newTestManager(t, testConfig{})
	c := issueCookie(t, m)

	clk.Advance(week - day + time.Hour)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(c)
	rec := httptest.NewRecorder()

	m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, ok := m.Resolve(r.Context())
		require.True(t, ok)

		f, ok := w.(http.Flusher)
		require.True(t, ok)
		f.Flush()
	})).ServeHTTP(rec, r)

	assert.True(t, rec.Flushed)
	refreshed := sessionCookie(rec.Result())
	require.NotNil(t, refreshed)
	assert.NotEqual(t, c.Value, refreshed.Value)
}

func TestResolveDoesNotRefreshFreshToken(t *testing.T) {
	t.Parallel()

	m, clk := newTestManager(t, testConfig{})
	c := issueCookie(t, m)

	clk.Advance(time.Hour)

	res := serve(m, c, func(w http.ResponseWriter, r *http.Request) {
		_, ok := m.Resolve(r.Context())
		require.True(t, ok)
	})

	assert.Nil(t, sessionCookie(res))
}

func TestRefreshIfNeededIsIdempotent(t *testing.T) {
	t.Parallel()

	m, clk := newTestManager(t, testConfig{})
	c := issueCookie(t, m)

	res := serve(m, c, func(w http.ResponseWriter, r *http.Request) {
		first, err := m.RefreshIfNeeded(r.Context())
		require.NoError(t, err)
		second, err := m.RefreshIfNeeded(r.Context())
		require.NoError(t, err)

		assert.False(t, first)
		assert.False(t, second)
	})
	assert.Nil(t, sessionCookie(res))

	clk.Advance(week - time.Hour)

	res = serve(m, c, func(w http.ResponseWriter, r *http.Request) {
		first, err := m.RefreshIfNeeded(r.Context())
		require.NoError(t, err)
		second, err := m.RefreshIfNeeded(r.Context())
		require.NoError(t, err)

		assert.True(t, first)
		assert.False(t, second)
	})
	assert.Len(t, res.Header.Values("Set-Cookie"), 1)
}

func TestRefreshErrorDoesNotAffectResolve(t *testing.T) {
	t.Parallel()

	errs := make(chan error, 1)
	m, clk := newTestManager(t, testConfig{}, WithErrorHandler(func(ctx context.Context, err error) {
		errs <- err
	}))
	c := issueCookie(t, m)

	clk.Advance(week - time.Hour)

	serve(m, c, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)

		id, ok := m.Resolve(r.Context())
		assert.True(t, ok)
		assert.Equal(t, "user-1", id)
	})

	select {
	case err := <-errs:
		assert.True(t, errors.Is(err, ErrHeadersWritten))
	case <-time.After(5 * time.Second):
		t.Fatal("refresh error was not reported")
	}
}

func TestRevokeClearsCookie(t *testing.T) {
	t.Parallel()

	m, _ := newTestManager(t, testConfig{})
	c := issueCookie(t, m)

	res := serve(m, c, func(w http.ResponseWriter, r *http.Request) {
		_, ok := m.Resolve(r.Context())
		require.True(t, ok)

		require.NoError(t, m.Revoke(r.Context()))

		_, ok = m.Resolve(r.Context())
		assert.False(t, ok)
	})

	cleared := sessionCookie(res)
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)
	assert.Equal(t, -1, cleared.MaxAge)
}
