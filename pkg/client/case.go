package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/m-mizutani/goerr/v2"
	"github.com/netmon-lab/tacdesk/pkg/domain/model"
	"github.com/netmon-lab/tacdesk/pkg/domain/types"
)

// CreateCase registers a new case with its affected problem areas
func (c *Client) CreateCase(ctx context.Context, id types.CaseID, problemAreas []types.PlatformID) error {
	if err := id.Validate(); err != nil {
		return goerr.Wrap(err, "invalid case ID")
	}
	body := map[string]any{
		"case_id":       id,
		"problem_areas": problemAreas,
	}
	return c.sendJSON(ctx, http.MethodPost, "/cases", body, nil)
}

// ListCases returns the known case IDs, most recent first
func (c *Client) ListCases(ctx context.Context) ([]types.CaseID, error) {
	var ids []types.CaseID
	if err := c.getJSON(ctx, "/cases", &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// GetCase fetches the full case summary
func (c *Client) GetCase(ctx context.Context, id types.CaseID) (*model.Case, error) {
	var result model.Case
	if err := c.getJSON(ctx, fmt.Sprintf("/case/%s", id), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SubmitAction sends a free-text action against a case. The backend
// responds with the initial plan, which the caller then polls.
func (c *Client) SubmitAction(ctx context.Context, id types.CaseID, userInput string) (*model.Plan, error) {
	body := map[string]string{"user_input": userInput}
	var plan model.Plan
	if err := c.sendJSON(ctx, http.MethodPost, fmt.Sprintf("/cases/%s/action", id), body, &plan); err != nil {
		return nil, err
	}
	return &plan, nil
}

// UpdateCase sends a free-text case update that the backend applies
// synchronously, without a plan.
func (c *Client) UpdateCase(ctx context.Context, id types.CaseID, userInput string) error {
	body := map[string]string{"user_input": userInput}
	return c.sendJSON(ctx, http.MethodPost, fmt.Sprintf("/cases/%s/update", id), body, nil)
}

// GetPlanStatus fetches the current state of a plan
func (c *Client) GetPlanStatus(ctx context.Context, id types.PlanID) (*model.Plan, error) {
	var plan model.Plan
	if err := c.getJSON(ctx, fmt.Sprintf("/plan/status/%s", id), &plan); err != nil {
		return nil, err
	}
	return &plan, nil
}

// GetTaskStatus fetches the current state of an analysis task
func (c *Client) GetTaskStatus(ctx context.Context, id types.TaskID) (*model.Task, error) {
	var task model.Task
	if err := c.getJSON(ctx, fmt.Sprintf("/case/status/%s", id), &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// UpdatePlatforms replaces the affected problem areas of a case
func (c *Client) UpdatePlatforms(ctx context.Context, id types.CaseID, problemAreas []types.PlatformID) error {
	body := map[string]any{"affected_platforms": problemAreas}
	return c.sendJSON(ctx, http.MethodPut, fmt.Sprintf("/api/v1/cases/%s/platforms", id), body, nil)
}

// UpdateReportedIssue replaces the reported-issue summary of a case
func (c *Client) UpdateReportedIssue(ctx context.Context, id types.CaseID, content string) error {
	body := map[string]string{"content": content}
	return c.sendJSON(ctx, http.MethodPut, fmt.Sprintf("/api/v1/cases/%s/reported-issue", id), body, nil)
}

// CreateNote adds a note to a case
func (c *Client) CreateNote(ctx context.Context, id types.CaseID, content string) error {
	body := map[string]string{"content": content}
	return c.sendJSON(ctx, http.MethodPost, fmt.Sprintf("/api/v1/cases/%s/notes", id), body, nil)
}

// UpdateNote replaces the content of an existing note
func (c *Client) UpdateNote(ctx context.Context, id types.CaseID, noteID types.NoteID, content string) error {
	body := map[string]string{"content": content}
	return c.sendJSON(ctx, http.MethodPut, fmt.Sprintf("/api/v1/cases/%s/notes/%s", id, noteID), body, nil)
}

// DeleteNote removes a note from a case
func (c *Client) DeleteNote(ctx context.Context, id types.CaseID, noteID types.NoteID) error {
	return c.sendJSON(ctx, http.MethodDelete, fmt.Sprintf("/api/v1/cases/%s/notes/%s", id, noteID), nil, nil)
}

// UpdateNetworkInfo replaces the network-info fields of a case
func (c *Client) UpdateNetworkInfo(ctx context.Context, id types.CaseID, info map[string]string) error {
	body := map[string]any{"network_info": info}
	return c.sendJSON(ctx, http.MethodPost, fmt.Sprintf("/api/v1/cases/%s/network-info", id), body, nil)
}

// GetContextOptions fetches the selectable values for the network-info form
func (c *Client) GetContextOptions(ctx context.Context) (*model.ContextOptions, error) {
	var options model.ContextOptions
	if err := c.getJSON(ctx, "/api/v1/context-options", &options); err != nil {
		return nil, err
	}
	return &options, nil
}

// GetEvidence fetches an evidence file of a case as plain text
func (c *Client) GetEvidence(ctx context.Context, id types.CaseID, evidenceType types.EvidenceType) (string, error) {
	return c.getText(ctx, fmt.Sprintf("/case/%s/evidence/%s", id, evidenceType))
}
