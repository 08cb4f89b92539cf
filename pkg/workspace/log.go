package workspace

import (
	"sync"

	"github.com/netmon-lab/tacdesk/pkg/domain/model"
)

// EntryKind classifies an interaction log entry
type EntryKind string

const (
	EntryUser  EntryKind = "user"
	EntryAgent EntryKind = "agent"
	EntryPlan  EntryKind = "plan"
	EntryError EntryKind = "error"
)

// Entry is one item of the interaction log. Plan entries carry the plan
// snapshot; the others carry text.
type Entry struct {
	Kind EntryKind
	Text string
	Plan *model.Plan
}

// InteractionLog is the ordered conversation history of a case session
type InteractionLog struct {
	mu      sync.Mutex
	entries []Entry
}

// NewInteractionLog creates an empty log
func NewInteractionLog() *InteractionLog {
	return &InteractionLog{}
}

// AppendUser records what the user asked
func (l *InteractionLog) AppendUser(text string) {
	l.append(Entry{Kind: EntryUser, Text: text})
}

// AppendAgent records an agent response
func (l *InteractionLog) AppendAgent(text string) {
	l.append(Entry{Kind: EntryAgent, Text: text})
}

// AppendError records a visible failure
func (l *InteractionLog) AppendError(text string) {
	l.append(Entry{Kind: EntryError, Text: text})
}

// AppendPlan records a plan snapshot
func (l *InteractionLog) AppendPlan(plan *model.Plan) {
	l.append(Entry{Kind: EntryPlan, Plan: plan})
}

func (l *InteractionLog) append(e Entry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, e)
}

// UpdatePlan replaces the plan entry with the same plan ID in place.
// Matching is by ID, never by position, so user and agent entries appended
// meanwhile cannot misdirect the update. Returns false when no entry
// matches.
func (l *InteractionLog) UpdatePlan(plan *model.Plan) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.entries {
		if l.entries[i].Kind == EntryPlan && l.entries[i].Plan != nil && l.entries[i].Plan.ID == plan.ID {
			l.entries[i].Plan = plan
			return true
		}
	}
	return false
}

// Entries returns a snapshot copy of the log
func (l *InteractionLog) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Entry(nil), l.entries...)
}

// Len returns the number of entries
func (l *InteractionLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Clear empties the log, used when the active case changes
func (l *InteractionLog) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = nil
}
