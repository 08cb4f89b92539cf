package workspace

import (
	"context"
	"fmt"
	"time"

	"github.com/netmon-lab/tacdesk/pkg/client"
	"github.com/netmon-lab/tacdesk/pkg/domain/types"
	"github.com/netmon-lab/tacdesk/pkg/service/poller"
)

// AnalyzeRunner submits a log file for analysis and polls the resulting
// task until it settles. On success the analyzed case becomes the
// session's active case.
type AnalyzeRunner struct {
	client   *client.Client
	session  *Session
	interval time.Duration
}

// AnalyzeOption configures an AnalyzeRunner
type AnalyzeOption func(*AnalyzeRunner)

// WithAnalyzeInterval overrides the default 3-second poll cadence
func WithAnalyzeInterval(d time.Duration) AnalyzeOption {
	return func(r *AnalyzeRunner) {
		r.interval = d
	}
}

// NewAnalyzeRunner creates an analyze runner
func NewAnalyzeRunner(c *client.Client, session *Session, opts ...AnalyzeOption) *AnalyzeRunner {
	r := &AnalyzeRunner{
		client:   c,
		session:  session,
		interval: poller.DefaultInterval,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run starts the analysis and blocks until the task reaches SUCCESS or
// FAILURE. Status text is pushed through onStatus as the task progresses.
func (r *AnalyzeRunner) Run(ctx context.Context, req client.AnalyzeRequest, onStatus func(string)) error {
	if onStatus == nil {
		onStatus = func(string) {}
	}

	onStatus("Uploading file and starting analysis...")
	taskID, err := r.client.AnalyzeCase(ctx, req)
	if err != nil {
		onStatus(fmt.Sprintf("Error: %s", errorText(err)))
		return err
	}
	onStatus("Analysis in progress... Polling for status.")

	var failure error
	handle := poller.Start(ctx, r.interval, func(ctx context.Context) (bool, error) {
		task, err := r.client.GetTaskStatus(ctx, taskID)
		if err != nil {
			onStatus("Error polling for status.")
			return false, err
		}

		switch task.Status {
		case types.TaskStatusPending:
			onStatus("Task is queued and waiting to be processed...")
			return false, nil

		case types.TaskStatusStarted:
			onStatus("Processing... The AI is currently generating the summary.")
			return false, nil

		case types.TaskStatusSuccess:
			caseID := req.CaseID
			if resultID, ok := task.ResultCaseID(); ok {
				caseID = resultID
			}
			r.session.Set(caseID)
			onStatus(fmt.Sprintf("Analysis for Case ID %s is complete! You can now ask the agent about it.", caseID))
			return true, nil

		case types.TaskStatusFailure:
			failure = fmt.Errorf("analysis failed: %s", string(task.Result))
			onStatus(fmt.Sprintf("Analysis failed. Error: %s", string(task.Result)))
			return true, nil

		default:
			onStatus(fmt.Sprintf("Polling... Status: %s", task.Status))
			return false, nil
		}
	})

	<-handle.Done()
	if err := handle.Err(); err != nil {
		return err
	}
	return failure
}
