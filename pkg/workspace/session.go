package workspace

import (
	"sync"

	"github.com/netmon-lab/tacdesk/pkg/domain/model"
	"github.com/netmon-lab/tacdesk/pkg/domain/types"
	"github.com/netmon-lab/tacdesk/pkg/service/poller"
)

// Session holds the single active case of the workspace. All case-scoped
// state (summary cache, in-flight poll) lives here so switching cases
// discards it atomically: the outstanding poll is cancelled and the cached
// summary dropped before any subscriber sees the new case ID.
type Session struct {
	mu          sync.Mutex
	active      types.CaseID
	summary     *model.Case
	poll        *poller.Handle
	subscribers []func(types.CaseID)
}

// NewSession creates a session with no active case
func NewSession() *Session {
	return &Session{}
}

// Active returns the current case ID; the zero value means none
func (s *Session) Active() types.CaseID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// HasActive reports whether a case is selected
func (s *Session) HasActive() bool {
	return s.Active() != ""
}

// Set switches the active case. Any in-flight poll is cancelled and the
// summary cache cleared first; subscribers are then notified with the new
// ID. Setting the already-active case is a no-op.
func (s *Session) Set(id types.CaseID) {
	s.mu.Lock()
	if s.active == id {
		s.mu.Unlock()
		return
	}
	s.active = id
	s.summary = nil
	poll := s.poll
	s.poll = nil
	subscribers := append([]func(types.CaseID){}, s.subscribers...)
	s.mu.Unlock()

	if poll != nil {
		poll.Cancel()
	}
	for _, fn := range subscribers {
		fn(id)
	}
}

// Clear deselects the active case
func (s *Session) Clear() {
	s.Set("")
}

// Subscribe registers a callback invoked after each case switch
func (s *Session) Subscribe(fn func(types.CaseID)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// SetSummary caches the case summary. The summary is dropped if it does
// not belong to the active case, which happens when a fetch races a switch.
func (s *Session) SetSummary(c *model.Case) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c != nil && c.ID != s.active {
		return
	}
	s.summary = c
}

// Summary returns the cached case summary, or nil when not yet fetched
func (s *Session) Summary() *model.Case {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.summary
}

// AttachPoll registers the poll handle of the in-flight plan, cancelling
// any previous one. Only one plan is polled per session at a time.
func (s *Session) AttachPoll(h *poller.Handle) {
	s.mu.Lock()
	prev := s.poll
	s.poll = h
	s.mu.Unlock()

	if prev != nil {
		prev.Cancel()
	}
}

// CancelPoll stops the in-flight poll, if any
func (s *Session) CancelPoll() {
	s.mu.Lock()
	poll := s.poll
	s.poll = nil
	s.mu.Unlock()

	if poll != nil {
		poll.Cancel()
	}
}
