package client_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/netmon-lab/tacdesk/pkg/client"
	server "github.com/netmon-lab/tacdesk/pkg/controller/http"
	"github.com/netmon-lab/tacdesk/pkg/domain/types"
)

func newTestClient(t *testing.T) (*client.Client, *server.Store) {
	t.Helper()
	srv := server.New()
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)

	c, err := client.New(ts.URL)
	gt.NoError(t, err)
	return c, srv.Store()
}

func TestCreateListGetCase(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestClient(t)

	gt.NoError(t, c.CreateCase(ctx, "0345761099", []types.PlatformID{"ont_issue"}))
	gt.NoError(t, c.CreateCase(ctx, "42", []types.PlatformID{"olt_issue"}))

	ids, err := c.ListCases(ctx)
	gt.NoError(t, err)
	gt.Array(t, ids).Equal([]types.CaseID{"42", "0345761099"})

	fetched, err := c.GetCase(ctx, "0345761099")
	gt.NoError(t, err)
	gt.Value(t, fetched.ID).Equal(types.CaseID("0345761099"))
	gt.Array(t, fetched.ProblemAreas).Equal([]types.PlatformID{"ont_issue"})
	gt.Value(t, fetched.ReportedIssue).Equal("")
}

func TestInvalidCaseIDRejectedLocally(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestClient(t)

	err := c.CreateCase(ctx, "not-a-number", []types.PlatformID{"ont_issue"})
	gt.Error(t, err)

	// The request never reached the backend
	_, ok := client.AsAPIError(err)
	gt.Bool(t, ok).False()
}

func TestAPIErrorSurfacesDetail(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestClient(t)

	_, err := c.GetCase(ctx, "999")
	gt.Error(t, err)

	apiErr, ok := client.AsAPIError(err)
	gt.Bool(t, ok).True()
	gt.Number(t, apiErr.StatusCode).Equal(404)
	gt.String(t, apiErr.Error()).NotEqual("")
	gt.Value(t, apiErr.Error()).Equal(apiErr.Detail)
}

func TestSubmitActionAndPollToCompletion(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestClient(t)
	gt.NoError(t, c.CreateCase(ctx, "100", []types.PlatformID{"ont_issue"}))

	plan, err := c.SubmitAction(ctx, "100", "ONT is offline, what should I check?")
	gt.NoError(t, err)
	gt.Value(t, plan.OverallStatus).Equal(types.PlanStatusPending)

	for range 3 {
		plan, err = c.GetPlanStatus(ctx, plan.ID)
		gt.NoError(t, err)
		if plan.IsTerminal() {
			break
		}
	}

	gt.Value(t, plan.OverallStatus).Equal(types.PlanStatusCompleted)
	gt.Value(t, plan.FinalAnswer).NotNil()
	gt.Array(t, plan.FinalAnswer.Commands).Length(2)
}

func TestUpdateEndpoints(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestClient(t)
	gt.NoError(t, c.CreateCase(ctx, "100", []types.PlatformID{"ont_issue"}))

	gt.NoError(t, c.UpdatePlatforms(ctx, "100", []types.PlatformID{"ont_issue", "olt_issue"}))
	gt.NoError(t, c.UpdateReportedIssue(ctx, "100", "ONT is offline"))
	gt.NoError(t, c.UpdateNetworkInfo(ctx, "100", map[string]string{"platform": "E7-2"}))
	gt.NoError(t, c.CreateNote(ctx, "100", "dispatched field tech"))

	fetched, err := c.GetCase(ctx, "100")
	gt.NoError(t, err)
	gt.Array(t, fetched.ProblemAreas).Length(2)
	gt.Value(t, fetched.ReportedIssue).Equal("ONT is offline")
	gt.Value(t, fetched.NetworkInfo["platform"]).Equal("E7-2")
	gt.Array(t, fetched.TacNotes).Length(1)

	noteID := fetched.TacNotes[0].ID
	gt.NoError(t, c.UpdateNote(ctx, "100", noteID, "field tech on site"))
	gt.NoError(t, c.DeleteNote(ctx, "100", noteID))
}

func TestGetContextOptions(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestClient(t)

	options, err := c.GetContextOptions(ctx)
	gt.NoError(t, err)
	gt.Array(t, options.Platforms).Length(2)
	gt.Value(t, options.Platforms[0].Name).Equal("E7-2")
}

func TestGetEvidence(t *testing.T) {
	ctx := context.Background()
	c, store := newTestClient(t)
	gt.NoError(t, c.CreateCase(ctx, "100", []types.PlatformID{"ont_issue"}))
	gt.NoError(t, store.PutEvidence("100", "alarm_log", "MAJOR alarm on PON 1/1"))

	content, err := c.GetEvidence(ctx, "100", "alarm_log")
	gt.NoError(t, err)
	gt.Value(t, content).Equal("MAJOR alarm on PON 1/1")
}

func TestUploadKnowledgeBaseWithProgress(t *testing.T) {
	ctx := context.Background()
	c, store := newTestClient(t)

	var lastSent, lastTotal int64
	doc := strings.NewReader(strings.Repeat("troubleshooting guide\n", 100))
	msg, err := c.UploadKnowledgeBase(ctx, "ont_guide.pdf", doc,
		client.WithProgress(func(sent, total int64) {
			lastSent = sent
			lastTotal = total
		}))
	gt.NoError(t, err)
	gt.String(t, msg).Contains("ont_guide.pdf")
	gt.Value(t, lastSent).Equal(lastTotal)
	gt.Bool(t, lastTotal > 0).True()
	gt.Array(t, store.KnowledgeDocs()).Equal([]string{"ont_guide.pdf"})
}

func TestUploadRejectionIsRetryable(t *testing.T) {
	ctx := context.Background()

	var rejectNext bool
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rejectNext {
			rejectNext = false
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusRequestEntityTooLarge)
			_, _ = w.Write([]byte(`{"detail":"File too large"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message":"ingested"}`))
	}))
	t.Cleanup(ts.Close)

	c, err := client.New(ts.URL)
	gt.NoError(t, err)

	rejectNext = true
	_, err = c.UploadKnowledgeBase(ctx, "big.pdf", strings.NewReader("x"))
	gt.Error(t, err)

	apiErr, ok := client.AsAPIError(err)
	gt.Bool(t, ok).True()
	gt.Value(t, apiErr.Error()).Equal("File too large")

	// The client stays usable for the next attempt
	msg, err := c.UploadKnowledgeBase(ctx, "small.pdf", strings.NewReader("x"))
	gt.NoError(t, err)
	gt.Value(t, msg).Equal("ingested")
}

func TestAnalyzeCaseFlow(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestClient(t)

	taskID, err := c.AnalyzeCase(ctx, client.AnalyzeRequest{
		CaseID:        "555",
		ReportedIssue: "intermittent packet loss",
		LogFilename:   "case_555_extracted.txt",
		LogFile:       strings.NewReader("log line 1\nlog line 2\n"),
	})
	gt.NoError(t, err)

	task, err := c.GetTaskStatus(ctx, taskID)
	gt.NoError(t, err)
	gt.Value(t, task.Status).Equal(types.TaskStatusStarted)

	task, err = c.GetTaskStatus(ctx, taskID)
	gt.NoError(t, err)
	gt.Value(t, task.Status).Equal(types.TaskStatusSuccess)

	caseID, ok := task.ResultCaseID()
	gt.Bool(t, ok).True()
	gt.Value(t, caseID).Equal(types.CaseID("555"))
}

func TestAskDecodesSourceDocuments(t *testing.T) {
	ctx := context.Background()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"answer": "Check the PON port.",
			"source_documents": [{"page_content": "excerpt", "metadata": {"source": "guide.pdf", "page": 3}}]
		}`))
	}))
	t.Cleanup(ts.Close)

	c, err := client.New(ts.URL)
	gt.NoError(t, err)

	resp, err := c.Ask(ctx, "Why is the ONT down?")
	gt.NoError(t, err)
	gt.Array(t, resp.Sources).Length(1)
	gt.Value(t, resp.Sources[0].Metadata.Source).Equal("guide.pdf")
	gt.Number(t, resp.Sources[0].Metadata.Page).Equal(3)
}

func TestAskAcceptsLegacySourcesKey(t *testing.T) {
	ctx := context.Background()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"answer": "Check the PON port.",
			"sources": [{"page_content": "excerpt", "metadata": {"source": "legacy.pdf", "page": 1}}]
		}`))
	}))
	t.Cleanup(ts.Close)

	c, err := client.New(ts.URL)
	gt.NoError(t, err)

	resp, err := c.Ask(ctx, "Why is the ONT down?")
	gt.NoError(t, err)
	gt.Array(t, resp.Sources).Length(1)
	gt.Value(t, resp.Sources[0].Metadata.Source).Equal("legacy.pdf")
}

func TestAsk(t *testing.T) {
	ctx := context.Background()
	c, store := newTestClient(t)
	store.AddKnowledgeDoc("ont_guide.pdf")

	resp, err := c.Ask(ctx, "How do I reset an ONT?")
	gt.NoError(t, err)
	gt.String(t, resp.Answer).NotEqual("")
	gt.Array(t, resp.Sources).Length(1)
	gt.Value(t, resp.Sources[0].Metadata.Source).Equal("ont_guide.pdf")
}
