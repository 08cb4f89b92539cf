package workspace_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/netmon-lab/tacdesk/pkg/domain/model"
	"github.com/netmon-lab/tacdesk/pkg/domain/types"
	"github.com/netmon-lab/tacdesk/pkg/workspace"
)

func TestUpdatePlanMatchesByID(t *testing.T) {
	log := workspace.NewInteractionLog()
	log.AppendUser("check the ONT")
	log.AppendPlan(&model.Plan{ID: "p1", OverallStatus: types.PlanStatusPending})
	log.AppendUser("anything else")

	updated := log.UpdatePlan(&model.Plan{ID: "p1", OverallStatus: types.PlanStatusExecuting})
	gt.Bool(t, updated).True()

	entries := log.Entries()
	gt.Array(t, entries).Length(3)
	gt.Value(t, entries[1].Kind).Equal(workspace.EntryPlan)
	gt.Value(t, entries[1].Plan.OverallStatus).Equal(types.PlanStatusExecuting)

	// Unknown plan IDs update nothing
	gt.Bool(t, log.UpdatePlan(&model.Plan{ID: "p2"})).False()
}

func TestLogSnapshotIsACopy(t *testing.T) {
	log := workspace.NewInteractionLog()
	log.AppendUser("first")

	entries := log.Entries()
	entries[0].Text = "mutated"

	gt.Value(t, log.Entries()[0].Text).Equal("first")
}

func TestLogClear(t *testing.T) {
	log := workspace.NewInteractionLog()
	log.AppendUser("first")
	log.AppendAgent("second")
	gt.Number(t, log.Len()).Equal(2)

	log.Clear()
	gt.Number(t, log.Len()).Equal(0)
}
