package workspace

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/netmon-lab/tacdesk/pkg/client"
	"github.com/netmon-lab/tacdesk/pkg/domain/model"
	"github.com/netmon-lab/tacdesk/pkg/domain/types"
	"github.com/netmon-lab/tacdesk/pkg/render"
	"github.com/netmon-lab/tacdesk/pkg/service/poller"
	"github.com/netmon-lab/tacdesk/pkg/utils/errutil"
)

// RunnerState is the lifecycle of a submitted action
type RunnerState string

const (
	StateIdle       RunnerState = "idle"
	StateSubmitting RunnerState = "submitting"
	StatePolling    RunnerState = "polling"
	StateCompleted  RunnerState = "completed"
	StateFailed     RunnerState = "failed"
)

// ActionRunner drives one free-text action at a time: submit, poll the
// resulting plan to a terminal status, and record everything in the
// interaction log. Input is considered busy from submission until the
// terminal transition.
type ActionRunner struct {
	client   *client.Client
	session  *Session
	log      *InteractionLog
	interval time.Duration

	mu     sync.Mutex
	state  RunnerState
	handle *poller.Handle
}

// RunnerOption configures an ActionRunner
type RunnerOption func(*ActionRunner)

// WithPollInterval overrides the default 3-second poll cadence
func WithPollInterval(d time.Duration) RunnerOption {
	return func(r *ActionRunner) {
		r.interval = d
	}
}

// NewActionRunner creates a runner bound to a session and its log
func NewActionRunner(c *client.Client, session *Session, log *InteractionLog, opts ...RunnerOption) *ActionRunner {
	r := &ActionRunner{
		client:   c,
		session:  session,
		log:      log,
		interval: poller.DefaultInterval,
		state:    StateIdle,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// State returns the current runner state
func (r *ActionRunner) State() RunnerState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Busy reports whether a plan is in flight and input should stay disabled
func (r *ActionRunner) Busy() bool {
	switch r.State() {
	case StateSubmitting, StatePolling:
		return true
	default:
		return false
	}
}

// Submit sends a free-text action against the active case and starts
// polling the resulting plan. Empty input or a missing active case fail
// locally without a request. Submit returns once polling has started;
// Wait joins the poll loop.
func (r *ActionRunner) Submit(ctx context.Context, input string) error {
	if strings.TrimSpace(input) == "" {
		return goerr.New("input is empty")
	}
	caseID := r.session.Active()
	if caseID == "" {
		return goerr.New("no active case")
	}

	r.mu.Lock()
	if r.state == StateSubmitting || r.state == StatePolling {
		r.mu.Unlock()
		return goerr.New("a plan is already executing")
	}
	r.state = StateSubmitting
	r.mu.Unlock()

	r.log.AppendUser(input)

	plan, err := r.client.SubmitAction(ctx, caseID, input)
	if err != nil {
		r.fail(errorText(err))
		return err
	}
	r.log.AppendPlan(plan)

	r.mu.Lock()
	r.state = StatePolling
	r.mu.Unlock()

	handle := poller.Start(ctx, r.interval, func(ctx context.Context) (bool, error) {
		return r.tick(ctx, plan.ID)
	})

	r.mu.Lock()
	r.handle = handle
	r.mu.Unlock()
	r.session.AttachPoll(handle)
	return nil
}

// tick performs one poll of the plan status
func (r *ActionRunner) tick(ctx context.Context, planID types.PlanID) (bool, error) {
	plan, err := r.client.GetPlanStatus(ctx, planID)
	if err != nil {
		r.fail(fmt.Sprintf("Error checking plan status: %s", errorText(err)))
		return false, errutil.Handle(ctx, err, "plan status poll failed")
	}

	r.log.UpdatePlan(plan)
	if !plan.IsTerminal() {
		return false, nil
	}

	r.finish(ctx, plan)
	return true, nil
}

// finish runs exactly once per plan, at the terminal transition
func (r *ActionRunner) finish(ctx context.Context, plan *model.Plan) {
	if plan.MutatedCase() {
		if c, err := r.client.GetCase(ctx, r.session.Active()); err == nil {
			r.session.SetSummary(c)
		}
	}

	if plan.FinalAnswer != nil {
		r.log.AppendAgent(render.Answer(plan.FinalAnswer))
	}

	r.mu.Lock()
	if plan.OverallStatus == types.PlanStatusFailed {
		r.state = StateFailed
	} else {
		r.state = StateCompleted
	}
	r.mu.Unlock()
}

func (r *ActionRunner) fail(msg string) {
	r.log.AppendError(msg)
	r.mu.Lock()
	r.state = StateFailed
	r.mu.Unlock()
}

// Wait blocks until the in-flight poll loop has stopped
func (r *ActionRunner) Wait() {
	r.mu.Lock()
	handle := r.handle
	r.mu.Unlock()

	if handle != nil {
		<-handle.Done()
	}
}

// errorText prefers the backend's detail message over the transport error
func errorText(err error) string {
	if apiErr, ok := client.AsAPIError(err); ok {
		return apiErr.Error()
	}
	return err.Error()
}
