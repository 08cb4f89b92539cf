package render

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/netmon-lab/tacdesk/pkg/domain/model"
	"github.com/netmon-lab/tacdesk/pkg/domain/model/config"
)

// placeholder stands in for any field the agent has not populated yet
const placeholder = "N/A"

func orPlaceholder(s string) string {
	if strings.TrimSpace(s) == "" {
		return placeholder
	}
	return s
}

// Summary writes the TAC summary of a case. Every field is optional;
// absent values render as N/A rather than being hidden, so engineers see
// what the agent has not filled in yet.
func Summary(w io.Writer, c *model.Case, cfg *config.PlatformConfig) {
	if c == nil {
		return
	}
	if cfg == nil {
		cfg = config.DefaultPlatformConfig()
	}

	title := color.New(color.Bold, color.FgCyan)
	section := color.New(color.Bold)

	_, _ = title.Fprintf(w, "TAC Summary for Case: %s\n", c.ID)

	_, _ = section.Fprintln(w, "\nAffected Platforms")
	if len(c.ProblemAreas) == 0 {
		fmt.Fprintf(w, "  %s\n", placeholder)
	} else {
		names := make([]string, 0, len(c.ProblemAreas))
		for _, id := range c.ProblemAreas {
			names = append(names, cfg.DisplayName(id))
		}
		fmt.Fprintf(w, "  %s\n", strings.Join(names, ", "))
	}

	_, _ = section.Fprintln(w, "\nNetwork Info")
	if len(c.NetworkInfo) == 0 {
		fmt.Fprintf(w, "  %s\n", placeholder)
	} else {
		fields := make([]string, 0, len(c.NetworkInfo))
		for field := range c.NetworkInfo {
			fields = append(fields, field)
		}
		sort.Strings(fields)
		for _, field := range fields {
			fmt.Fprintf(w, "  %s: %s\n", model.FieldLabel(field), orPlaceholder(c.NetworkInfo[field]))
		}
	}

	_, _ = section.Fprintln(w, "\nReported Issue")
	fmt.Fprintf(w, "  %s\n", orPlaceholder(c.ReportedIssue))

	_, _ = section.Fprintln(w, "\nTAC Notes")
	switch {
	case len(c.TacNotes) > 0:
		notes := append([]model.TacNote(nil), c.TacNotes...)
		model.SortNotes(notes)
		for _, note := range notes {
			fmt.Fprintf(w, "  [%s] %s: %s\n", note.Timestamp.Format("2006-01-02 15:04"), note.Author, note.Content)
		}
	case len(c.TacAnalysis) > 0:
		keys := make([]string, 0, len(c.TacAnalysis))
		for key := range c.TacAnalysis {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			fmt.Fprintf(w, "  %s: %s\n", model.FieldLabel(key), orPlaceholder(c.TacAnalysis[key]))
		}
	default:
		fmt.Fprintf(w, "  %s\n", placeholder)
	}

	_, _ = section.Fprintln(w, "\nRecommendations")
	if len(c.Recommendations) == 0 {
		fmt.Fprintf(w, "  %s\n", placeholder)
	} else {
		for _, rec := range c.Recommendations {
			fmt.Fprintf(w, "  - %s\n", rec)
		}
	}

	_, _ = section.Fprintln(w, "\nNext Steps")
	fmt.Fprintf(w, "  %s\n", orPlaceholder(c.NextSteps))

	if len(c.AvailableEvidence) > 0 {
		_, _ = section.Fprintln(w, "\nAvailable Evidence")
		for _, evidence := range c.AvailableEvidence {
			fmt.Fprintf(w, "  - %s\n", evidence)
		}
	}
}
