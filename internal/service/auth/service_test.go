package auth

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"issue_tracker/internal/model"
	"issue_tracker/internal/repository/memory"
	"issue_tracker/internal/session"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSessions struct {
	mu      sync.Mutex
	issued  []string
	revoked int
	err     error
}

func (f *fakeSessions) Issue(_ context.Context, userID string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	f.issued = append(f.issued, userID)
	return "token-" + userID, nil
}

func (f *fakeSessions) Revoke(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.revoked++
	return f.err
}

type brokenUsers struct {
	*memory.UserRepository
}

func (brokenUsers) GetUserByEmail(context.Context, string) (*model.User, error) {
	return nil, errors.New("connection refused")
}

func newTestService(t *testing.T) (*serv, *memory.UserRepository, *fakeSessions) {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)

	users := memory.NewUserRepository()
	sessions := &fakeSessions{}
	s := NewService(memory.TxManager{}, users, sessions, log).(*serv)

	return s, users, sessions
}

func TestSignUpThenSignIn(t *testing.T) {
	t.Parallel()

	s, users, sessions := newTestService(t)
	ctx := context.Background()

	identity, err := s.SignUp(ctx, model.SignUp{Email: "a@x.com", Password: "secret1", ConfirmPassword: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", identity.Email)
	assert.NotEmpty(t, identity.ID)

	stored, err := users.GetUserByID(ctx, identity.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", stored.PasswordHash)

	signedIn, err := s.SignIn(ctx, model.SignIn{Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, identity, signedIn)

	assert.Equal(t, []string{identity.ID, identity.ID}, sessions.issued)
}

func TestSignUpDuplicateEmail(t *testing.T) {
	t.Parallel()

	s, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := s.SignUp(ctx, model.SignUp{Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)

	_, err = s.SignUp(ctx, model.SignUp{Email: "a@x.com", Password: "another1"})
	assert.ErrorIs(t, err, model.ErrUserAlreadyExists)

	// регистр учитывается
	_, err = s.SignUp(ctx, model.SignUp{Email: "A@x.com", Password: "another1"})
	assert.NoError(t, err)
}

func TestSignUpConcurrentSameEmail(t *testing.T) {
	t.Parallel()

	s, _, sessions := newTestService(t)

	const n = 4
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = s.SignUp(context.Background(), model.SignUp{Email: "race@x.com", Password: "secret1"})
		}()
	}
	wg.Wait()

	var ok int
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.ErrorIs(t, err, model.ErrUserAlreadyExists)
	}
	assert.Equal(t, 1, ok)
	assert.Len(t, sessions.issued, 1)
}

func TestSignUpValidation(t *testing.T) {
	t.Parallel()

	s, _, sessions := newTestService(t)

	_, err := s.SignUp(context.Background(), model.SignUp{Email: "bad", Password: "123"})

	var verr *model.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "email")
	assert.Contains(t, verr.Fields, "password")
	assert.Empty(t, sessions.issued)
}

func TestSignInFailuresAreIndistinguishable(t *testing.T) {
	t.Parallel()

	s, _, sessions := newTestService(t)
	ctx := context.Background()

	_, err := s.SignUp(ctx, model.SignUp{Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)

	_, wrongPassword := s.SignIn(ctx, model.SignIn{Email: "a@x.com", Password: "wrong"})
	_, unknownEmail := s.SignIn(ctx, model.SignIn{Email: "nobody@x.com", Password: "secret1"})

	assert.ErrorIs(t, wrongPassword, model.ErrInvalidCredentials)
	assert.ErrorIs(t, unknownEmail, model.ErrInvalidCredentials)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
	assert.Len(t, sessions.issued, 1)
}

func TestSignInStoreFailureIsNotAuthFailure(t *testing.T) {
	t.Parallel()

	s, users, _ := newTestService(t)
	s.userRepo = brokenUsers{users}

	_, err := s.SignIn(context.Background(), model.SignIn{Email: "a@x.com", Password: "secret1"})
	require.Error(t, err)
	assert.False(t, errors.Is(err, model.ErrInvalidCredentials))
}

func TestSignUpSessionFailure(t *testing.T) {
	t.Parallel()

	s, _, sessions := newTestService(t)
	sessions.err = errors.New("jar missing")

	_, err := s.SignUp(context.Background(), model.SignUp{Email: "a@x.com", Password: "secret1"})
	require.Error(t, err)
	assert.False(t, errors.Is(err, model.ErrUserAlreadyExists))
}

func TestSignOut(t *testing.T) {
	t.Parallel()

	s, _, sessions := newTestService(t)

	require.NoError(t, s.SignOut(context.Background()))
	assert.Equal(t, 1, sessions.revoked)

	sessions.err = errors.New("boom")
	assert.Error(t, s.SignOut(context.Background()))
}

// failingCommitTx - выполняет функцию, но коммит завершается ошибкой
type failingCommitTx struct{}

func (failingCommitTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		return err
	}
	return errors.New("commit failed")
}

func (tx failingCommitTx) DoWithSettings(ctx context.Context, _ trm.Settings, fn func(ctx context.Context) error) error {
	return tx.Do(ctx, fn)
}

type sessionConfig struct{}

func (sessionConfig) SecretKey() []byte               { return []byte("0123456789abcdef0123456789abcdef") }
func (sessionConfig) TTL() time.Duration              { return 7 * 24 * time.Hour }
func (sessionConfig) RefreshThreshold() time.Duration { return 24 * time.Hour }
func (sessionConfig) SecureCookie() bool              { return false }

func TestSignUpCommitFailureSetsNoCookie(t *testing.T) {
	t.Parallel()

	log := logrus.New()
	log.SetOutput(io.Discard)

	sessions := session.NewManager(sessionConfig{}, log)
	s := NewService(failingCommitTx{}, memory.NewUserRepository(), sessions, log)

	var signUpErr error
	h := sessions.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, signUpErr = s.SignUp(r.Context(), model.SignUp{Email: "a@x.com", Password: "secret1"})
		w.WriteHeader(http.StatusInternalServerError)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/auth/signup", nil))

	require.Error(t, signUpErr)
	assert.Empty(t, rec.Header().Values("Set-Cookie"))
}

func TestSignUpMultibytePasswordOverLimit(t *testing.T) {
	t.Parallel()

	s, _, sessions := newTestService(t)

	_, err := s.SignUp(context.Background(), model.SignUp{Email: "a@x.com", Password: strings.Repeat("é", 40)})

	var verr *model.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "password")
	assert.Empty(t, sessions.issued)
}
