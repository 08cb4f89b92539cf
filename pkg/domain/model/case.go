package model

import (
	"encoding/json"

	"github.com/netmon-lab/tacdesk/pkg/domain/types"
)

// Case is the client-side view of a support case. The backend owns the
// entity; every field except the ID is optional and may be absent until
// the agent has populated it.
type Case struct {
	ID                types.CaseID         `json:"case_id"`
	ProblemAreas      []types.PlatformID   `json:"problem_areas,omitempty"`
	NetworkInfo       map[string]string    `json:"network_info,omitempty"`
	ReportedIssue     string               `json:"reported_issue,omitempty"`
	TacNotes          []TacNote            `json:"tac_notes,omitempty"`
	TacAnalysis       map[string]string    `json:"-"`
	Recommendations   []string             `json:"recommendations,omitempty"`
	NextSteps         string               `json:"next_steps,omitempty"`
	AvailableEvidence []types.EvidenceType `json:"available_evidence,omitempty"`
}

// caseWire is the raw JSON shape. Older backend versions serialize
// tac_notes as a free-form analysis object instead of a note list, so the
// field is captured raw and normalized in UnmarshalJSON.
type caseWire struct {
	ID                types.CaseID         `json:"case_id"`
	ProblemAreas      []types.PlatformID   `json:"problem_areas"`
	NetworkInfo       map[string]string    `json:"network_info"`
	ReportedIssue     string               `json:"reported_issue"`
	TacNotes          json.RawMessage      `json:"tac_notes"`
	Recommendations   []string             `json:"recommendations"`
	NextSteps         string               `json:"next_steps"`
	AvailableEvidence []types.EvidenceType `json:"available_evidence"`
}

// UnmarshalJSON decodes a case, accepting both the note-list and the
// legacy analysis-object shape of tac_notes.
func (x *Case) UnmarshalJSON(data []byte) error {
	var wire caseWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	x.ID = wire.ID
	x.ProblemAreas = wire.ProblemAreas
	x.NetworkInfo = wire.NetworkInfo
	x.ReportedIssue = wire.ReportedIssue
	x.Recommendations = wire.Recommendations
	x.NextSteps = wire.NextSteps
	x.AvailableEvidence = wire.AvailableEvidence
	x.TacNotes = nil
	x.TacAnalysis = nil

	if len(wire.TacNotes) == 0 || string(wire.TacNotes) == "null" {
		return nil
	}

	var notes []TacNote
	if err := json.Unmarshal(wire.TacNotes, &notes); err == nil {
		x.TacNotes = notes
		return nil
	}

	var analysis map[string]string
	if err := json.Unmarshal(wire.TacNotes, &analysis); err == nil {
		x.TacAnalysis = analysis
		return nil
	}

	// Unrecognized shape: keep the rest of the case usable.
	return nil
}

// HasPlatform reports whether the case is tagged with the given problem area
func (x *Case) HasPlatform(id types.PlatformID) bool {
	for _, p := range x.ProblemAreas {
		if p == id {
			return true
		}
	}
	return false
}
