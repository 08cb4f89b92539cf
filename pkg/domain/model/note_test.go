package model_test

import (
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/netmon-lab/tacdesk/pkg/domain/model"
	"github.com/netmon-lab/tacdesk/pkg/domain/types"
)

func TestSortNotes(t *testing.T) {
	base := time.Date(2026, 8, 20, 3, 0, 0, 0, time.UTC)
	notes := []model.TacNote{
		{ID: "n3", Author: types.NoteAuthorAgent, Timestamp: base.Add(2 * time.Hour)},
		{ID: "n1", Author: types.NoteAuthorHuman, Timestamp: base},
		{ID: "n2", Author: types.NoteAuthorHuman, Timestamp: base.Add(time.Hour)},
	}

	model.SortNotes(notes)
	gt.Value(t, notes[0].ID).Equal(types.NoteID("n1"))
	gt.Value(t, notes[1].ID).Equal(types.NoteID("n2"))
	gt.Value(t, notes[2].ID).Equal(types.NoteID("n3"))
}
