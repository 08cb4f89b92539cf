package http

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/netmon-lab/tacdesk/pkg/domain/model"
	"github.com/netmon-lab/tacdesk/pkg/domain/types"
)

// Not-found sentinels, matched with errors.Is by the handlers
var (
	ErrCaseNotFound = goerr.New("case not found")
	ErrPlanNotFound = goerr.New("plan not found")
	ErrTaskNotFound = goerr.New("task not found")
	ErrNoteNotFound = goerr.New("note not found")
	ErrCaseExists   = goerr.New("case already exists")
)

// Store is the in-memory backend state. Plans and tasks advance one status
// step per status poll, so clients observe the full asynchronous lifecycle
// without the store needing timers.
type Store struct {
	mu        sync.RWMutex
	cases     map[types.CaseID]*model.Case
	evidence  map[types.CaseID]map[types.EvidenceType]string
	plans     map[types.PlanID]*model.Plan
	planCases map[types.PlanID]planIntent
	tasks     map[types.TaskID]*taskRecord
	recent    []types.CaseID
	kbDocs    []string
}

// planIntent remembers which case a plan belongs to and what was asked
type planIntent struct {
	caseID    types.CaseID
	userInput string
}

// taskRecord tracks an analysis task and the case it creates on success
type taskRecord struct {
	task          model.Task
	caseID        types.CaseID
	reportedIssue string
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		cases:     make(map[types.CaseID]*model.Case),
		evidence:  make(map[types.CaseID]map[types.EvidenceType]string),
		plans:     make(map[types.PlanID]*model.Plan),
		planCases: make(map[types.PlanID]planIntent),
		tasks:     make(map[types.TaskID]*taskRecord),
	}
}

func copyCase(c *model.Case) *model.Case {
	copied := &model.Case{
		ID:            c.ID,
		ReportedIssue: c.ReportedIssue,
		NextSteps:     c.NextSteps,
	}
	copied.ProblemAreas = append([]types.PlatformID(nil), c.ProblemAreas...)
	copied.Recommendations = append([]string(nil), c.Recommendations...)
	copied.AvailableEvidence = append([]types.EvidenceType(nil), c.AvailableEvidence...)
	copied.TacNotes = append([]model.TacNote(nil), c.TacNotes...)
	if c.NetworkInfo != nil {
		copied.NetworkInfo = make(map[string]string, len(c.NetworkInfo))
		for k, v := range c.NetworkInfo {
			copied.NetworkInfo[k] = v
		}
	}
	if c.TacAnalysis != nil {
		copied.TacAnalysis = make(map[string]string, len(c.TacAnalysis))
		for k, v := range c.TacAnalysis {
			copied.TacAnalysis[k] = v
		}
	}
	return copied
}

func copyPlan(p *model.Plan) *model.Plan {
	copied := &model.Plan{
		ID:            p.ID,
		OverallStatus: p.OverallStatus,
	}
	copied.Steps = append([]model.PlanStep(nil), p.Steps...)
	if p.FinalAnswer != nil {
		answer := *p.FinalAnswer
		answer.Commands = append([]string(nil), p.FinalAnswer.Commands...)
		copied.FinalAnswer = &answer
	}
	return copied
}

// CreateCase registers a new case and puts it at the head of the recent list
func (s *Store) CreateCase(id types.CaseID, problemAreas []types.PlatformID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	if len(problemAreas) == 0 {
		return goerr.New("at least one problem area is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.cases[id]; exists {
		return goerr.Wrap(ErrCaseExists, "case ID is taken", goerr.V("case_id", id))
	}

	s.cases[id] = &model.Case{
		ID:           id,
		ProblemAreas: append([]types.PlatformID(nil), problemAreas...),
	}
	s.touchRecent(id)
	return nil
}

func (s *Store) touchRecent(id types.CaseID) {
	filtered := make([]types.CaseID, 0, len(s.recent)+1)
	filtered = append(filtered, id)
	for _, existing := range s.recent {
		if existing != id {
			filtered = append(filtered, existing)
		}
	}
	s.recent = filtered
}

// ListCases returns case IDs, most recently touched first
func (s *Store) ListCases() []types.CaseID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]types.CaseID(nil), s.recent...)
}

// GetCase returns a copy of the case
func (s *Store) GetCase(id types.CaseID) (*model.Case, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, exists := s.cases[id]
	if !exists {
		return nil, goerr.Wrap(ErrCaseNotFound, "unknown case", goerr.V("case_id", id))
	}
	return copyCase(c), nil
}

func (s *Store) mutateCase(id types.CaseID, fn func(c *model.Case) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, exists := s.cases[id]
	if !exists {
		return goerr.Wrap(ErrCaseNotFound, "unknown case", goerr.V("case_id", id))
	}
	return fn(c)
}

// UpdatePlatforms replaces the problem areas of a case
func (s *Store) UpdatePlatforms(id types.CaseID, problemAreas []types.PlatformID) error {
	if len(problemAreas) == 0 {
		return goerr.New("at least one problem area is required")
	}
	return s.mutateCase(id, func(c *model.Case) error {
		c.ProblemAreas = append([]types.PlatformID(nil), problemAreas...)
		return nil
	})
}

// UpdateReportedIssue replaces the reported issue of a case
func (s *Store) UpdateReportedIssue(id types.CaseID, content string) error {
	if strings.TrimSpace(content) == "" {
		return goerr.New("reported issue content is required")
	}
	return s.mutateCase(id, func(c *model.Case) error {
		c.ReportedIssue = content
		return nil
	})
}

// UpdateNetworkInfo replaces the network-info fields of a case
func (s *Store) UpdateNetworkInfo(id types.CaseID, info map[string]string) error {
	return s.mutateCase(id, func(c *model.Case) error {
		c.NetworkInfo = make(map[string]string, len(info))
		for k, v := range info {
			c.NetworkInfo[k] = v
		}
		return nil
	})
}

// CreateNote appends a human note to a case
func (s *Store) CreateNote(id types.CaseID, content string) (*model.TacNote, error) {
	if strings.TrimSpace(content) == "" {
		return nil, goerr.New("note content is required")
	}

	note := model.TacNote{
		ID:        types.NoteID(uuid.NewString()),
		Author:    types.NoteAuthorHuman,
		Content:   content,
		Timestamp: time.Now().UTC(),
	}
	err := s.mutateCase(id, func(c *model.Case) error {
		c.TacNotes = append(c.TacNotes, note)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &note, nil
}

// UpdateNote replaces the content of an existing note
func (s *Store) UpdateNote(id types.CaseID, noteID types.NoteID, content string) error {
	if strings.TrimSpace(content) == "" {
		return goerr.New("note content is required")
	}
	return s.mutateCase(id, func(c *model.Case) error {
		for i := range c.TacNotes {
			if c.TacNotes[i].ID == noteID {
				c.TacNotes[i].Content = content
				return nil
			}
		}
		return goerr.Wrap(ErrNoteNotFound, "unknown note", goerr.V("note_id", noteID))
	})
}

// DeleteNote removes a note from a case
func (s *Store) DeleteNote(id types.CaseID, noteID types.NoteID) error {
	return s.mutateCase(id, func(c *model.Case) error {
		for i := range c.TacNotes {
			if c.TacNotes[i].ID == noteID {
				c.TacNotes = append(c.TacNotes[:i], c.TacNotes[i+1:]...)
				return nil
			}
		}
		return goerr.Wrap(ErrNoteNotFound, "unknown note", goerr.V("note_id", noteID))
	})
}

// PutEvidence attaches an evidence file to a case
func (s *Store) PutEvidence(id types.CaseID, evidenceType types.EvidenceType, content string) error {
	return s.mutateCase(id, func(c *model.Case) error {
		if s.evidence[id] == nil {
			s.evidence[id] = make(map[types.EvidenceType]string)
		}
		s.evidence[id][evidenceType] = content
		for _, existing := range c.AvailableEvidence {
			if existing == evidenceType {
				return nil
			}
		}
		c.AvailableEvidence = append(c.AvailableEvidence, evidenceType)
		return nil
	})
}

// GetEvidence returns the evidence text of a case
func (s *Store) GetEvidence(id types.CaseID, evidenceType types.EvidenceType) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, exists := s.cases[id]; !exists {
		return "", goerr.Wrap(ErrCaseNotFound, "unknown case", goerr.V("case_id", id))
	}
	content, exists := s.evidence[id][evidenceType]
	if !exists {
		return "", goerr.Wrap(ErrCaseNotFound, "no such evidence", goerr.V("evidence_type", evidenceType))
	}
	return content, nil
}

// SubmitAction creates a plan for a free-text action. The plan starts
// pending; each status poll advances it until it completes with a final
// answer. Inputs containing "update" produce a case-mutating plan, inputs
// containing "reject" produce a validation failure.
func (s *Store) SubmitAction(id types.CaseID, userInput string) (*model.Plan, error) {
	if strings.TrimSpace(userInput) == "" {
		return nil, goerr.New("user_input is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.cases[id]; !exists {
		return nil, goerr.Wrap(ErrCaseNotFound, "unknown case", goerr.V("case_id", id))
	}

	steps := []model.PlanStep{
		{ID: "step-1", Description: fmt.Sprintf("Interpret request: %s", userInput), Status: types.PlanStatusPending},
		{ID: "step-2", Description: "Gather case context", Status: types.PlanStatusPending},
	}
	if strings.Contains(strings.ToLower(userInput), "update") {
		steps = append(steps, model.PlanStep{
			ID:          "step-3-case_updater_v1",
			Description: "Apply updates to the case record",
			Status:      types.PlanStatusPending,
		})
	}

	plan := &model.Plan{
		ID:            types.PlanID(uuid.NewString()),
		OverallStatus: types.PlanStatusPending,
		Steps:         steps,
	}
	s.plans[plan.ID] = plan
	s.planCases[plan.ID] = planIntent{caseID: id, userInput: userInput}
	return copyPlan(plan), nil
}

// GetPlan returns the plan after advancing it one lifecycle step
func (s *Store) GetPlan(id types.PlanID) (*model.Plan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	plan, exists := s.plans[id]
	if !exists {
		return nil, goerr.Wrap(ErrPlanNotFound, "unknown plan", goerr.V("plan_id", id))
	}

	s.advancePlan(plan)
	return copyPlan(plan), nil
}

func (s *Store) advancePlan(plan *model.Plan) {
	switch plan.OverallStatus {
	case types.PlanStatusPending:
		plan.OverallStatus = types.PlanStatusExecuting
		for i := range plan.Steps {
			plan.Steps[i].Status = types.PlanStatusExecuting
		}

	case types.PlanStatusExecuting:
		plan.OverallStatus = types.PlanStatusCompleted
		for i := range plan.Steps {
			plan.Steps[i].Status = types.PlanStatusCompleted
		}
		s.completePlan(plan)
	}
}

func (s *Store) completePlan(plan *model.Plan) {
	intent := s.planCases[plan.ID]
	input := strings.ToLower(intent.userInput)

	switch {
	case strings.Contains(input, "reject"):
		plan.OverallStatus = types.PlanStatusFailed
		for i := range plan.Steps {
			plan.Steps[i].Status = types.PlanStatusFailed
			plan.Steps[i].ErrorMessage = "request rejected by validation"
		}
		plan.FinalAnswer = &model.FinalAnswer{
			Kind:    model.AnswerKindRejected,
			Message: "The request could not be validated against the case context.",
		}

	case plan.MutatedCase():
		if c, exists := s.cases[intent.caseID]; exists {
			c.NextSteps = fmt.Sprintf("Follow up on: %s", intent.userInput)
			c.TacNotes = append(c.TacNotes, model.TacNote{
				ID:        types.NoteID(uuid.NewString()),
				Author:    types.NoteAuthorAgent,
				Content:   fmt.Sprintf("Case updated per request: %s", intent.userInput),
				Timestamp: time.Now().UTC(),
			})
		}
		plan.FinalAnswer = &model.FinalAnswer{
			Kind: model.AnswerKindText,
			Text: "The case record has been updated.",
		}

	default:
		plan.FinalAnswer = &model.FinalAnswer{
			Kind:     model.AnswerKindCommands,
			Commands: []string{"show ont status", "show alarm active"},
		}
	}
}

// StartAnalysis creates an analysis task. The task starts PENDING; each
// status poll advances it, and on SUCCESS the analyzed case appears in the
// store with the reported issue filled in.
func (s *Store) StartAnalysis(id types.CaseID, reportedIssue string, logContent []byte) (types.TaskID, error) {
	if err := id.Validate(); err != nil {
		return "", err
	}
	if strings.TrimSpace(reportedIssue) == "" {
		return "", goerr.New("reported_issue is required")
	}
	if len(logContent) == 0 {
		return "", goerr.New("log_file is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	taskID := types.TaskID(uuid.NewString())
	s.tasks[taskID] = &taskRecord{
		task:          model.Task{ID: taskID, Status: types.TaskStatusPending},
		caseID:        id,
		reportedIssue: reportedIssue,
	}
	return taskID, nil
}

// GetTask returns the task after advancing it one lifecycle step
func (s *Store) GetTask(id types.TaskID) (*model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, exists := s.tasks[id]
	if !exists {
		return nil, goerr.Wrap(ErrTaskNotFound, "unknown task", goerr.V("task_id", id))
	}

	switch rec.task.Status {
	case types.TaskStatusPending:
		rec.task.Status = types.TaskStatusStarted

	case types.TaskStatusStarted:
		rec.task.Status = types.TaskStatusSuccess
		if _, exists := s.cases[rec.caseID]; !exists {
			s.cases[rec.caseID] = &model.Case{
				ID:            rec.caseID,
				ReportedIssue: rec.reportedIssue,
			}
			s.touchRecent(rec.caseID)
		}
		result, _ := json.Marshal(map[string]string{"case_id": rec.caseID.String()})
		rec.task.Result = result
	}

	task := rec.task
	task.Result = append(json.RawMessage(nil), rec.task.Result...)
	return &task, nil
}

// AddKnowledgeDoc records an ingested knowledge-base document
func (s *Store) AddKnowledgeDoc(filename string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.kbDocs = append(s.kbDocs, filename)
}

// KnowledgeDocs lists ingested document names
func (s *Store) KnowledgeDocs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.kbDocs...)
}
