package converter

import (
	dto "issue_tracker/internal/api/dto/issue"
	"issue_tracker/internal/model"
)

func ToNewIssue(req dto.CreateRequest) model.NewIssue {
	return model.NewIssue{
		Title:       req.Title,
		Description: req.Description,
		Status:      model.IssueStatus(req.Status),
		Priority:    model.IssuePriority(req.Priority),
	}
}

func ToIssuePatch(req dto.UpdateRequest) model.IssuePatch {
	patch := model.IssuePatch{
		Title:       req.Title,
		Description: req.Description,
	}
	if req.Status != nil {
		status := model.IssueStatus(*req.Status)
		patch.Status = &status
	}
	if req.Priority != nil {
		priority := model.IssuePriority(*req.Priority)
		patch.Priority = &priority
	}
	return patch
}

func ToIssueResponse(issue *model.Issue) dto.IssueResponse {
	return dto.IssueResponse{
		ID:          issue.ID,
		Title:       issue.Title,
		Description: issue.Description,
		Status:      string(issue.Status),
		Priority:    string(issue.Priority),
		UserID:      issue.UserID,
		CreatedAt:   issue.CreatedAt,
		UpdatedAt:   issue.UpdatedAt,
	}
}

func ToIssuesResponse(issues []model.Issue) []dto.IssueResponse {
	res := make([]dto.IssueResponse, 0, len(issues))
	for i := range issues {
		res = append(res, ToIssueResponse(&issues[i]))
	}
	return res
}
