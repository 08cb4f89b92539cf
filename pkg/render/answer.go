package render

import (
	"strings"

	"github.com/netmon-lab/tacdesk/pkg/domain/model"
)

// Answer formats a plan's final answer for the interaction log
func Answer(answer *model.FinalAnswer) string {
	if answer == nil {
		return ""
	}

	switch answer.Kind {
	case model.AnswerKindCommands:
		var b strings.Builder
		b.WriteString("Here are the recommended commands:")
		for _, cmd := range answer.Commands {
			b.WriteString("\n- ")
			b.WriteString(cmd)
		}
		return b.String()

	case model.AnswerKindRejected:
		return answer.Message

	default:
		return answer.Text
	}
}
