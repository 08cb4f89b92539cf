package model_test

import (
	"encoding/json"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/netmon-lab/tacdesk/pkg/domain/model"
)

func TestFinalAnswerDecodeText(t *testing.T) {
	var answer model.FinalAnswer
	gt.NoError(t, json.Unmarshal([]byte(`"All checks passed."`), &answer))
	gt.Value(t, answer.Kind).Equal(model.AnswerKindText)
	gt.Value(t, answer.Text).Equal("All checks passed.")
}

func TestFinalAnswerDecodeCommands(t *testing.T) {
	raw := `{"status":"success","commands":["show ont status","show alarm"]}`

	var answer model.FinalAnswer
	gt.NoError(t, json.Unmarshal([]byte(raw), &answer))
	gt.Value(t, answer.Kind).Equal(model.AnswerKindCommands)
	gt.Array(t, answer.Commands).Equal([]string{"show ont status", "show alarm"})
}

func TestFinalAnswerDecodeRejected(t *testing.T) {
	raw := `{"status":"failed_validation","message_for_user":"Please set the affected platform first."}`

	var answer model.FinalAnswer
	gt.NoError(t, json.Unmarshal([]byte(raw), &answer))
	gt.Value(t, answer.Kind).Equal(model.AnswerKindRejected)
	gt.Value(t, answer.Message).Equal("Please set the affected platform first.")
}

func TestFinalAnswerRoundTrip(t *testing.T) {
	answer := model.FinalAnswer{Kind: model.AnswerKindCommands, Commands: []string{"show ont status"}}

	data, err := json.Marshal(answer)
	gt.NoError(t, err)

	var decoded model.FinalAnswer
	gt.NoError(t, json.Unmarshal(data, &decoded))
	gt.Value(t, decoded.Kind).Equal(model.AnswerKindCommands)
	gt.Array(t, decoded.Commands).Equal(answer.Commands)
}
