package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/netmon-lab/tacdesk/pkg/domain/model"
)

// Sources writes the documents cited by an answer
func Sources(w io.Writer, docs []model.SourceDocument) {
	if len(docs) == 0 {
		return
	}

	_, _ = color.New(color.Bold).Fprintln(w, "Sources")
	for i, doc := range docs {
		fmt.Fprintf(w, "  [%d] %s\n", i+1, doc.PageContent)
		if doc.Metadata.Source != "" {
			fmt.Fprintf(w, "      Source: %s  Page: %d\n", doc.Metadata.Source, doc.Metadata.Page)
		}
	}
}
