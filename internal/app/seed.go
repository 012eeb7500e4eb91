package app

import (
	"context"
	"fmt"

	"issue_tracker/internal/config"
	"issue_tracker/internal/model"
	"issue_tracker/internal/repository"
	"issue_tracker/internal/validation"
	"issue_tracker/pkg/pass"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type seeder struct {
	txManager trm.Manager
	userRepo  repository.UserRepository
	issueRepo repository.IssueRepository
	log       logrus.FieldLogger
}

// run - заменяет все данные демо набором в одной транзакции
func (s *seeder) run(ctx context.Context, cfg config.SeedConfig) error {
	return s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.issueRepo.DeleteAllIssues(ctx); err != nil {
			return fmt.Errorf("clear issues: %w", err)
		}
		if err := s.userRepo.DeleteAllUsers(ctx); err != nil {
			return fmt.Errorf("clear users: %w", err)
		}

		owners := make(map[string]string, len(cfg.Users()))
		for _, u := range cfg.Users() {
			hash, err := pass.HashPassword(u.Password)
			if err != nil {
				return fmt.Errorf("hash password for %s: %w", u.Email, err)
			}

			user := &model.User{
				ID:           uuid.NewString(),
				Email:        u.Email,
				PasswordHash: hash,
			}
			if err := s.userRepo.CreateUser(ctx, user); err != nil {
				return fmt.Errorf("create user %s: %w", u.Email, err)
			}
			owners[u.Email] = user.ID
		}

		for _, i := range cfg.Issues() {
			ownerID, ok := owners[i.Owner]
			if !ok {
				return fmt.Errorf("issue %q: unknown owner %s", i.Title, i.Owner)
			}

			issue, err := seedIssue(i, ownerID)
			if err != nil {
				return err
			}
			if _, err := s.issueRepo.CreateIssue(ctx, issue); err != nil {
				return fmt.Errorf("create issue %q: %w", i.Title, err)
			}
		}

		s.log.WithFields(logrus.Fields{
			"users":  len(cfg.Users()),
			"issues": len(cfg.Issues()),
		}).Info("database seeded")

		return nil
	})
}

func seedIssue(i config.SeedIssue, ownerID string) (*model.Issue, error) {
	in := model.NewIssue{
		Title:    i.Title,
		Status:   model.IssueStatus(i.Status),
		Priority: model.IssuePriority(i.Priority),
	}
	if i.Description != "" {
		in.Description = &i.Description
	}
	if err := validation.Struct(in); err != nil {
		return nil, fmt.Errorf("issue %q: %w", i.Title, err)
	}

	issue := &model.Issue{
		Title:       in.Title,
		Description: in.Description,
		Status:      in.Status,
		Priority:    in.Priority,
		UserID:      ownerID,
	}
	if issue.Status == "" {
		issue.Status = model.StatusBacklog
	}
	if issue.Priority == "" {
		issue.Priority = model.PriorityMedium
	}
	return issue, nil
}
