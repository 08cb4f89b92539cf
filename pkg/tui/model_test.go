package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/m-mizutani/gt"
	"github.com/netmon-lab/tacdesk/pkg/domain/model"
	"github.com/netmon-lab/tacdesk/pkg/domain/model/config"
	"github.com/netmon-lab/tacdesk/pkg/domain/types"
)

func newTestModel() Model {
	return New(nil, config.DefaultPlatformConfig())
}

func TestViewWithoutActiveCase(t *testing.T) {
	m := newTestModel()

	updated, _ := m.Update(casesLoadedMsg{ids: []types.CaseID{"200", "100"}})
	m = updated.(Model)

	view := m.View()
	gt.String(t, view).Contains("Please select a case")
	gt.String(t, view).Contains("200")
	gt.String(t, view).Contains("100")
}

func TestOpenCaseByID(t *testing.T) {
	m := newTestModel()
	m.input.SetValue("0345761099")

	updated, cmd := m.handleEnter()
	m = updated.(Model)

	gt.Value(t, m.session.Active()).Equal(types.CaseID("0345761099"))
	gt.Value(t, cmd).NotNil()
}

func TestOpenCaseRejectsInvalidID(t *testing.T) {
	m := newTestModel()
	m.input.SetValue("not-a-case")

	updated, _ := m.handleEnter()
	m = updated.(Model)

	gt.Bool(t, m.session.HasActive()).False()
	gt.String(t, m.status).NotEqual("")
}

func TestPlanLifecycleThroughMessages(t *testing.T) {
	m := newTestModel()
	m.session.Set("100")
	m.processing = true

	plan := &model.Plan{ID: "p1", OverallStatus: types.PlanStatusPending}
	updated, cmd := m.Update(planStartedMsg{plan})
	m = updated.(Model)
	gt.Value(t, m.activePlan).Equal(types.PlanID("p1"))
	gt.Value(t, cmd).NotNil()

	executing := &model.Plan{ID: "p1", OverallStatus: types.PlanStatusExecuting}
	updated, cmd = m.Update(planPolledMsg{executing})
	m = updated.(Model)
	gt.Bool(t, m.processing).True()
	gt.Value(t, cmd).NotNil()

	completed := &model.Plan{
		ID:            "p1",
		OverallStatus: types.PlanStatusCompleted,
		FinalAnswer:   &model.FinalAnswer{Kind: model.AnswerKindCommands, Commands: []string{"show ont status"}},
	}
	updated, _ = m.Update(planPolledMsg{completed})
	m = updated.(Model)

	gt.Bool(t, m.processing).False()
	gt.Value(t, m.activePlan).Equal(types.PlanID(""))

	entries := m.log.Entries()
	last := entries[len(entries)-1]
	gt.String(t, last.Text).Contains("Here are the recommended commands:")
}

func TestErrorDuringPlanReenablesInput(t *testing.T) {
	m := newTestModel()
	m.session.Set("100")
	m.processing = true
	m.activePlan = "p1"

	updated, _ := m.Update(errMsg{err: errTest})
	m = updated.(Model)

	gt.Bool(t, m.processing).False()
	gt.Value(t, m.activePlan).Equal(types.PlanID(""))

	entries := m.log.Entries()
	gt.Array(t, entries).Length(1)
	gt.String(t, entries[0].Text).Contains("backend unreachable")
}

var errTest = &testError{}

type testError struct{}

func (e *testError) Error() string { return "backend unreachable" }

func TestQuitKeys(t *testing.T) {
	m := newTestModel()
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	gt.Value(t, cmd).NotNil()

	msg := cmd()
	_, ok := msg.(tea.QuitMsg)
	gt.Bool(t, ok).True()
}

func TestViewShowsProcessingPlaceholder(t *testing.T) {
	m := newTestModel()
	m.session.Set("100")
	m.session.SetSummary(&model.Case{ID: "100"})
	m.processing = true
	m.input.Placeholder = inputPlaceholder(true)

	view := m.View()
	gt.Bool(t, strings.Contains(view, "Agent is executing a plan...")).True()
}
