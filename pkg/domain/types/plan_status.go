package types

import "fmt"

// PlanStatus represents the overall status of an agent plan
type PlanStatus string

const (
	PlanStatusPending   PlanStatus = "pending"
	PlanStatusExecuting PlanStatus = "executing"
	PlanStatusCompleted PlanStatus = "completed"
	PlanStatusFailed    PlanStatus = "failed"
)

// AllPlanStatuses returns all valid plan statuses
func AllPlanStatuses() []PlanStatus {
	return []PlanStatus{
		PlanStatusPending,
		PlanStatusExecuting,
		PlanStatusCompleted,
		PlanStatusFailed,
	}
}

// IsValid checks if the plan status is valid
func (s PlanStatus) IsValid() bool {
	switch s {
	case PlanStatusPending,
		PlanStatusExecuting,
		PlanStatusCompleted,
		PlanStatusFailed:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether the plan has stopped making progress.
// Polling must end at the first terminal status.
func (s PlanStatus) IsTerminal() bool {
	return s == PlanStatusCompleted || s == PlanStatusFailed
}

// String returns the string representation of the plan status
func (s PlanStatus) String() string {
	return string(s)
}

// ParsePlanStatus parses a string into a PlanStatus
func ParsePlanStatus(s string) (PlanStatus, error) {
	status := PlanStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid plan status: %s", s)
	}
	return status, nil
}

// StepStatus represents the status of a single plan step. It shares the
// plan status value set: a step is pending, executing, completed or failed.
type StepStatus = PlanStatus
