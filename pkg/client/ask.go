package client

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/netmon-lab/tacdesk/pkg/domain/model"
)

// AskResponse is the answer to a knowledge-base question with its cited
// source documents.
type AskResponse struct {
	Answer  string                 `json:"answer"`
	Sources []model.SourceDocument `json:"source_documents,omitempty"`
}

// UnmarshalJSON decodes the ask response. The backend names the citation
// list source_documents; older versions used sources, so that key is
// accepted as a fallback.
func (x *AskResponse) UnmarshalJSON(data []byte) error {
	var wire struct {
		Answer          string                 `json:"answer"`
		SourceDocuments []model.SourceDocument `json:"source_documents"`
		Sources         []model.SourceDocument `json:"sources"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	x.Answer = wire.Answer
	x.Sources = wire.SourceDocuments
	if x.Sources == nil {
		x.Sources = wire.Sources
	}
	return nil
}

// Ask sends a free-text question answered from the knowledge base
func (c *Client) Ask(ctx context.Context, question string) (*AskResponse, error) {
	body := map[string]string{"question": question}
	var result AskResponse
	if err := c.sendJSON(ctx, http.MethodPost, "/ask", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
