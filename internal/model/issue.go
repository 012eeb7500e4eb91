package model

import "time"

type IssueStatus string

const (
	StatusBacklog    IssueStatus = "backlog"
	StatusTodo       IssueStatus = "todo"
	StatusInProgress IssueStatus = "in_progress"
	StatusDone       IssueStatus = "done"
)

type IssuePriority string

const (
	PriorityLow    IssuePriority = "low"
	PriorityMedium IssuePriority = "medium"
	PriorityHigh   IssuePriority = "high"
)

type Issue struct {
	ID          int64
	Title       string
	Description *string
	Status      IssueStatus
	Priority    IssuePriority
	UserID      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewIssue - данные для создания задачи. Владелец берется из сессии, а не из запроса.
type NewIssue struct {
	Title       string        `json:"title" validate:"required,min=3,max=100"`
	Description *string       `json:"description"`
	Status      IssueStatus   `json:"status" validate:"omitempty,oneof=backlog todo in_progress done"`
	Priority    IssuePriority `json:"priority" validate:"omitempty,oneof=low medium high"`
}

// IssuePatch - частичное обновление задачи, nil поля не меняются
type IssuePatch struct {
	Title       *string        `json:"title" validate:"omitempty,min=3,max=100"`
	Description *string        `json:"description"`
	Status      *IssueStatus   `json:"status" validate:"omitempty,oneof=backlog todo in_progress done"`
	Priority    *IssuePriority `json:"priority" validate:"omitempty,oneof=low medium high"`
}
