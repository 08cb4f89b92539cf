package model_test

import (
	"encoding/json"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/netmon-lab/tacdesk/pkg/domain/model"
)

func TestSourceDocumentDecodeStructured(t *testing.T) {
	raw := `{"page_content": "Reset the ONT via the OLT CLI.", "metadata": {"source": "ont_guide.pdf", "page": 12}}`

	var doc model.SourceDocument
	gt.NoError(t, json.Unmarshal([]byte(raw), &doc))
	gt.Value(t, doc.PageContent).Equal("Reset the ONT via the OLT CLI.")
	gt.Value(t, doc.Metadata.Source).Equal("ont_guide.pdf")
	gt.Number(t, doc.Metadata.Page).Equal(12)
}

func TestSourceDocumentDecodeBareString(t *testing.T) {
	var doc model.SourceDocument
	gt.NoError(t, json.Unmarshal([]byte(`"Reset the ONT via the OLT CLI."`), &doc))
	gt.Value(t, doc.PageContent).Equal("Reset the ONT via the OLT CLI.")
	gt.Value(t, doc.Metadata.Source).Equal("")
}
