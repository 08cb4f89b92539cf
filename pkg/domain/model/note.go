package model

import (
	"sort"
	"time"

	"github.com/netmon-lab/tacdesk/pkg/domain/types"
)

// TacNote is a single note on a case, written by either a human engineer
// or the agent.
type TacNote struct {
	ID        types.NoteID     `json:"id"`
	Author    types.NoteAuthor `json:"author"`
	Content   string           `json:"content"`
	Timestamp time.Time        `json:"timestamp"`
}

// SortNotes orders notes chronologically, oldest first. Notes with equal
// timestamps keep a stable order by ID.
func SortNotes(notes []TacNote) {
	sort.SliceStable(notes, func(i, j int) bool {
		if notes[i].Timestamp.Equal(notes[j].Timestamp) {
			return notes[i].ID < notes[j].ID
		}
		return notes[i].Timestamp.Before(notes[j].Timestamp)
	})
}
