package model

import (
	"encoding/json"

	"github.com/m-mizutani/goerr/v2"
)

// AnswerKind discriminates the polymorphic final_answer payload
type AnswerKind string

const (
	// AnswerKindText is a plain prose answer
	AnswerKindText AnswerKind = "text"
	// AnswerKindCommands is a structured command recommendation
	AnswerKindCommands AnswerKind = "commands"
	// AnswerKindRejected is a validation failure with a user-facing message
	AnswerKindRejected AnswerKind = "rejected"
)

// FinalAnswer is the result a completed plan carries. The wire shape is
// polymorphic (a bare string, a success object with commands, or a
// failed-validation object with a message); it is normalized into a tagged
// variant at the decode boundary so renderers never probe object shapes.
type FinalAnswer struct {
	Kind     AnswerKind
	Text     string
	Commands []string
	Message  string
}

type answerWire struct {
	Status         string   `json:"status"`
	Commands       []string `json:"commands"`
	MessageForUser string   `json:"message_for_user"`
}

// UnmarshalJSON normalizes the three observed final_answer shapes
func (x *FinalAnswer) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		*x = FinalAnswer{Kind: AnswerKindText, Text: text}
		return nil
	}

	var wire answerWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return goerr.Wrap(err, "unrecognized final_answer shape")
	}

	switch wire.Status {
	case "failed_validation":
		*x = FinalAnswer{Kind: AnswerKindRejected, Message: wire.MessageForUser}
	default:
		*x = FinalAnswer{Kind: AnswerKindCommands, Commands: wire.Commands}
	}
	return nil
}

// MarshalJSON writes the answer back in its canonical wire shape
func (x FinalAnswer) MarshalJSON() ([]byte, error) {
	switch x.Kind {
	case AnswerKindText:
		return json.Marshal(x.Text)
	case AnswerKindRejected:
		return json.Marshal(answerWire{Status: "failed_validation", MessageForUser: x.Message})
	default:
		return json.Marshal(answerWire{Status: "success", Commands: x.Commands})
	}
}
