// Package memory - хранилища в памяти с теми же гарантиями, что и postgres
// (уникальный email, владелец задачи). Используются в тестах.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"issue_tracker/internal/model"
	"issue_tracker/internal/repository"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
)

type UserRepository struct {
	mu      sync.RWMutex
	byID    map[string]model.User
	byEmail map[string]string
	now     func() time.Time
}

var _ repository.UserRepository = (*UserRepository)(nil)

func NewUserRepository() *UserRepository {
	return &UserRepository{
		byID:    make(map[string]model.User),
		byEmail: make(map[string]string),
		now:     time.Now,
	}
}

func (r *UserRepository) CreateUser(_ context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[user.Email]; ok {
		return model.ErrUserAlreadyExists
	}

	user.CreatedAt = r.now()
	r.byID[user.ID] = *user
	r.byEmail[user.Email] = user.ID

	return nil
}

func (r *UserRepository) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	user := r.byID[id]
	return &user, nil
}

func (r *UserRepository) GetUserByID(_ context.Context, id string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byID[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return &user, nil
}

func (r *UserRepository) DeleteAllUsers(context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byID = make(map[string]model.User)
	r.byEmail = make(map[string]string)
	return nil
}

// DeleteUser - удаляет пользователя, как если бы запись пропала после выпуска токена
func (r *UserRepository) DeleteUser(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user, ok := r.byID[id]; ok {
		delete(r.byEmail, user.Email)
		delete(r.byID, id)
	}
}

type IssueRepository struct {
	mu     sync.RWMutex
	nextID int64
	issues map[int64]model.Issue
	now    func() time.Time
}

var _ repository.IssueRepository = (*IssueRepository)(nil)

func NewIssueRepository() *IssueRepository {
	return &IssueRepository{
		issues: make(map[int64]model.Issue),
		now:    time.Now,
	}
}

func (r *IssueRepository) CreateIssue(_ context.Context, issue *model.Issue) (*model.Issue, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	created := *issue
	created.ID = r.nextID
	created.CreatedAt = r.now()
	created.UpdatedAt = created.CreatedAt
	r.issues[created.ID] = created

	return &created, nil
}

func (r *IssueRepository) GetIssue(_ context.Context, id int64) (*model.Issue, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	issue, ok := r.issues[id]
	if !ok {
		return nil, model.ErrIssueNotFound
	}
	return &issue, nil
}

func (r *IssueRepository) ListIssuesByUser(_ context.Context, userID string) ([]model.Issue, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	issues := make([]model.Issue, 0)
	for _, issue := range r.issues {
		if issue.UserID == userID {
			issues = append(issues, issue)
		}
	}
	sort.Slice(issues, func(i, j int) bool {
		if !issues[i].CreatedAt.Equal(issues[j].CreatedAt) {
			return issues[i].CreatedAt.After(issues[j].CreatedAt)
		}
		return issues[i].ID > issues[j].ID
	})

	return issues, nil
}

func (r *IssueRepository) UpdateIssue(_ context.Context, issue *model.Issue) (*model.Issue, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.issues[issue.ID]
	if !ok {
		return nil, model.ErrIssueNotFound
	}

	stored.Title = issue.Title
	stored.Description = issue.Description
	stored.Status = issue.Status
	stored.Priority = issue.Priority
	stored.UpdatedAt = r.now()
	r.issues[issue.ID] = stored

	return &stored, nil
}

func (r *IssueRepository) DeleteIssue(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.issues[id]; !ok {
		return model.ErrIssueNotFound
	}
	delete(r.issues, id)
	return nil
}

func (r *IssueRepository) DeleteAllIssues(context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.issues = make(map[int64]model.Issue)
	return nil
}

// TxManager - trm.Manager без транзакций: функция выполняется как есть
type TxManager struct{}

var _ trm.Manager = TxManager{}

func (TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (TxManager) DoWithSettings(ctx context.Context, _ trm.Settings, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
