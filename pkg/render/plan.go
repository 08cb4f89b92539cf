package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/netmon-lab/tacdesk/pkg/domain/model"
	"github.com/netmon-lab/tacdesk/pkg/domain/types"
)

// stepIcon maps a step status to its marker
func stepIcon(status types.StepStatus) string {
	switch status {
	case types.PlanStatusPending:
		return "🕒"
	case types.PlanStatusExecuting:
		return "⚙️"
	case types.PlanStatusCompleted:
		return "✅"
	case types.PlanStatusFailed:
		return "❌"
	default:
		return "❔"
	}
}

// PlanView writes the agent plan with per-step status markers
func PlanView(w io.Writer, plan *model.Plan) {
	if plan == nil {
		return
	}

	header := color.New(color.Bold)
	_, _ = header.Fprintf(w, "Agent Plan (status: %s)\n", plan.OverallStatus)

	for _, step := range plan.Steps {
		fmt.Fprintf(w, "  %s %s\n", stepIcon(step.Status), step.Description)
		if step.Status == types.PlanStatusFailed && step.ErrorMessage != "" {
			_, _ = color.New(color.FgRed).Fprintf(w, "     %s\n", step.ErrorMessage)
		}
	}
}
