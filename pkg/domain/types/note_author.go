package types

import "fmt"

// NoteAuthor identifies who wrote a TAC note
type NoteAuthor string

const (
	NoteAuthorHuman NoteAuthor = "Human"
	NoteAuthorAgent NoteAuthor = "Agent"
)

// AllNoteAuthors returns all valid note authors
func AllNoteAuthors() []NoteAuthor {
	return []NoteAuthor{
		NoteAuthorHuman,
		NoteAuthorAgent,
	}
}

// IsValid checks if the note author is valid
func (a NoteAuthor) IsValid() bool {
	switch a {
	case NoteAuthorHuman, NoteAuthorAgent:
		return true
	default:
		return false
	}
}

// String returns the string representation of the note author
func (a NoteAuthor) String() string {
	return string(a)
}

// ParseNoteAuthor parses a string into a NoteAuthor
func ParseNoteAuthor(s string) (NoteAuthor, error) {
	author := NoteAuthor(s)
	if !author.IsValid() {
		return "", fmt.Errorf("invalid note author: %s", s)
	}
	return author, nil
}
