package model

import (
	"encoding/json"

	"github.com/netmon-lab/tacdesk/pkg/domain/types"
)

// Task is an asynchronous job on the backend task queue, such as a log
// analysis run. It uses the queue's own status convention, which differs
// from the planner's.
type Task struct {
	ID     types.TaskID     `json:"task_id"`
	Status types.TaskStatus `json:"status"`
	Result json.RawMessage  `json:"result,omitempty"`
}

// IsTerminal reports whether the task has finished, successfully or not
func (x *Task) IsTerminal() bool {
	return x.Status.IsTerminal()
}

// taskResult is the result payload of a finished analysis task
type taskResult struct {
	CaseID types.CaseID `json:"case_id"`
}

// ResultCaseID extracts the case ID from the task result, if present
func (x *Task) ResultCaseID() (types.CaseID, bool) {
	if len(x.Result) == 0 {
		return "", false
	}
	var r taskResult
	if err := json.Unmarshal(x.Result, &r); err != nil || r.CaseID == "" {
		return "", false
	}
	return r.CaseID, true
}
