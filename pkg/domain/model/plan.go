package model

import (
	"strings"

	"github.com/netmon-lab/tacdesk/pkg/domain/types"
)

// Plan is an asynchronous unit of agent work created by submitting a
// free-text action against a case. The backend drives all transitions;
// the client only polls.
type Plan struct {
	ID            types.PlanID     `json:"plan_id"`
	OverallStatus types.PlanStatus `json:"overall_status"`
	Steps         []PlanStep       `json:"steps,omitempty"`
	FinalAnswer   *FinalAnswer     `json:"final_answer,omitempty"`
}

// PlanStep is a single step within a plan
type PlanStep struct {
	ID           string           `json:"step_id"`
	Description  string           `json:"description"`
	Status       types.StepStatus `json:"status"`
	ErrorMessage string           `json:"error_message,omitempty"`
}

// IsTerminal reports whether the plan has reached a terminal status
func (x *Plan) IsTerminal() bool {
	return x.OverallStatus.IsTerminal()
}

// MutatedCase reports whether executing this plan changed the case itself,
// in which case the caller should re-fetch the case summary. The backend
// marks such plans by running its case-updater tool as one of the steps.
func (x *Plan) MutatedCase() bool {
	for _, step := range x.Steps {
		if step.UsesCaseUpdater() {
			return true
		}
	}
	return false
}

const caseUpdaterMarker = "case_updater_v1"

// UsesCaseUpdater reports whether the step invokes the backend's
// case-updater tool.
func (s PlanStep) UsesCaseUpdater() bool {
	return strings.Contains(s.ID, caseUpdaterMarker) || strings.Contains(s.Description, caseUpdaterMarker)
}
