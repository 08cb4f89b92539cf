package types

import (
	"github.com/m-mizutani/goerr/v2"
)

// CaseID is the externally assigned identifier of a support case.
// Case IDs are numeric-looking strings of at most 10 characters.
type CaseID string

const maxCaseIDLength = 10

// Validate checks if the CaseID conforms to the backend's naming rules
func (x CaseID) Validate() error {
	if x == "" {
		return goerr.New("case ID is required")
	}
	if len(x) > maxCaseIDLength {
		return goerr.New("case ID must be at most 10 characters", goerr.V("id", string(x)))
	}
	for _, r := range x {
		if r < '0' || r > '9' {
			return goerr.New("case ID must be numeric", goerr.V("id", string(x)))
		}
	}
	return nil
}

// String returns the string representation of the case ID
func (x CaseID) String() string {
	return string(x)
}

// PlanID identifies an asynchronous agent plan
type PlanID string

// String returns the string representation of the plan ID
func (x PlanID) String() string {
	return string(x)
}

// TaskID identifies a background analysis task
type TaskID string

// String returns the string representation of the task ID
func (x TaskID) String() string {
	return string(x)
}

// NoteID identifies a TAC note within a case
type NoteID string

// String returns the string representation of the note ID
func (x NoteID) String() string {
	return string(x)
}

// PlatformID is a problem-area / affected-platform category tag
type PlatformID string

// String returns the string representation of the platform ID
func (x PlatformID) String() string {
	return string(x)
}

// EvidenceType is a tag naming a kind of raw evidence held by the backend
type EvidenceType string

// String returns the string representation of the evidence type
func (x EvidenceType) String() string {
	return string(x)
}
