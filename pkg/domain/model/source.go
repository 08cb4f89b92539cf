package model

import "encoding/json"

// SourceDocument is a knowledge-base excerpt cited by an answer
type SourceDocument struct {
	PageContent string         `json:"page_content"`
	Metadata    SourceMetadata `json:"metadata"`
}

// SourceMetadata locates the excerpt within its source document
type SourceMetadata struct {
	Source string `json:"source,omitempty"`
	Page   int    `json:"page,omitempty"`
}

// UnmarshalJSON accepts both the structured document shape and the bare
// string fallback some backend versions emit, normalizing at the decode
// boundary.
func (x *SourceDocument) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		*x = SourceDocument{PageContent: text}
		return nil
	}

	type alias SourceDocument
	var doc alias
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	*x = SourceDocument(doc)
	return nil
}
