package render_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/netmon-lab/tacdesk/pkg/domain/model"
	"github.com/netmon-lab/tacdesk/pkg/domain/model/config"
	"github.com/netmon-lab/tacdesk/pkg/domain/types"
	"github.com/netmon-lab/tacdesk/pkg/render"
)

func TestAnswerText(t *testing.T) {
	answer := &model.FinalAnswer{Kind: model.AnswerKindText, Text: "All clear."}
	gt.Value(t, render.Answer(answer)).Equal("All clear.")
}

func TestAnswerCommands(t *testing.T) {
	answer := &model.FinalAnswer{
		Kind:     model.AnswerKindCommands,
		Commands: []string{"show ont status"},
	}
	gt.Value(t, render.Answer(answer)).Equal("Here are the recommended commands:\n- show ont status")
}

func TestAnswerRejected(t *testing.T) {
	answer := &model.FinalAnswer{
		Kind:    model.AnswerKindRejected,
		Message: "Please set the affected platform first.",
	}
	gt.Value(t, render.Answer(answer)).Equal("Please set the affected platform first.")
}

func TestAnswerNil(t *testing.T) {
	gt.Value(t, render.Answer(nil)).Equal("")
}

func TestSummaryShowsPlaceholders(t *testing.T) {
	c := &model.Case{
		ID:           "0345761099",
		ProblemAreas: []types.PlatformID{"ont_issue"},
	}

	var buf bytes.Buffer
	render.Summary(&buf, c, config.DefaultPlatformConfig())
	out := buf.String()

	gt.String(t, out).Contains("TAC Summary for Case: 0345761099")
	gt.String(t, out).Contains("ONT/GPON Issue")
	gt.String(t, out).Contains("N/A")
}

func TestSummarySortsNotes(t *testing.T) {
	base := time.Date(2026, 8, 20, 3, 0, 0, 0, time.UTC)
	c := &model.Case{
		ID: "42",
		TacNotes: []model.TacNote{
			{ID: "n2", Author: types.NoteAuthorAgent, Content: "second", Timestamp: base.Add(time.Hour)},
			{ID: "n1", Author: types.NoteAuthorHuman, Content: "first", Timestamp: base},
		},
	}

	var buf bytes.Buffer
	render.Summary(&buf, c, nil)
	out := buf.String()

	gt.Bool(t, bytes.Index(buf.Bytes(), []byte("first")) < bytes.Index(buf.Bytes(), []byte("second"))).True()
	gt.String(t, out).Contains("Human: first")
}

func TestPlanView(t *testing.T) {
	plan := &model.Plan{
		ID:            "p1",
		OverallStatus: types.PlanStatusExecuting,
		Steps: []model.PlanStep{
			{ID: "s1", Description: "Inspect alarms", Status: types.PlanStatusCompleted},
			{ID: "s2", Description: "Check ONT state", Status: types.PlanStatusFailed, ErrorMessage: "timeout reaching OLT"},
		},
	}

	var buf bytes.Buffer
	render.PlanView(&buf, plan)
	out := buf.String()

	gt.String(t, out).Contains("Agent Plan (status: executing)")
	gt.String(t, out).Contains("Inspect alarms")
	gt.String(t, out).Contains("timeout reaching OLT")
}

func TestSources(t *testing.T) {
	docs := []model.SourceDocument{
		{PageContent: "Reset the ONT.", Metadata: model.SourceMetadata{Source: "ont_guide.pdf", Page: 12}},
		{PageContent: "bare fallback"},
	}

	var buf bytes.Buffer
	render.Sources(&buf, docs)
	out := buf.String()

	gt.String(t, out).Contains("Source: ont_guide.pdf  Page: 12")
	gt.String(t, out).Contains("bare fallback")
}
