package types_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/netmon-lab/tacdesk/pkg/domain/types"
)

func TestCaseIDValidate(t *testing.T) {
	tests := []struct {
		name    string
		id      types.CaseID
		wantErr bool
	}{
		{name: "valid numeric ID", id: "0345761099", wantErr: false},
		{name: "single digit", id: "7", wantErr: false},
		{name: "empty", id: "", wantErr: true},
		{name: "too long", id: "03457610991", wantErr: true},
		{name: "non numeric", id: "case-123", wantErr: true},
		{name: "embedded space", id: "123 456", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.id.Validate()
			if tt.wantErr {
				gt.Error(t, err)
			} else {
				gt.NoError(t, err)
			}
		})
	}
}

func TestPlanStatusTerminal(t *testing.T) {
	gt.Bool(t, types.PlanStatusPending.IsTerminal()).False()
	gt.Bool(t, types.PlanStatusExecuting.IsTerminal()).False()
	gt.Bool(t, types.PlanStatusCompleted.IsTerminal()).True()
	gt.Bool(t, types.PlanStatusFailed.IsTerminal()).True()
}

func TestParsePlanStatus(t *testing.T) {
	for _, s := range types.AllPlanStatuses() {
		parsed, err := types.ParsePlanStatus(s.String())
		gt.NoError(t, err)
		gt.Value(t, parsed).Equal(s)
	}

	_, err := types.ParsePlanStatus("COMPLETED")
	gt.Error(t, err)
}

func TestTaskStatusTerminal(t *testing.T) {
	gt.Bool(t, types.TaskStatusPending.IsTerminal()).False()
	gt.Bool(t, types.TaskStatusStarted.IsTerminal()).False()
	gt.Bool(t, types.TaskStatusSuccess.IsTerminal()).True()
	gt.Bool(t, types.TaskStatusFailure.IsTerminal()).True()
}

func TestParseTaskStatus(t *testing.T) {
	for _, s := range types.AllTaskStatuses() {
		parsed, err := types.ParseTaskStatus(s.String())
		gt.NoError(t, err)
		gt.Value(t, parsed).Equal(s)
	}

	_, err := types.ParseTaskStatus("success")
	gt.Error(t, err)
}

func TestParseNoteAuthor(t *testing.T) {
	author, err := types.ParseNoteAuthor("Human")
	gt.NoError(t, err)
	gt.Value(t, author).Equal(types.NoteAuthorHuman)

	_, err = types.ParseNoteAuthor("robot")
	gt.Error(t, err)
}
