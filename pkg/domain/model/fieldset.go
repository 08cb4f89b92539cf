package model

import (
	"sort"
	"strings"

	"github.com/netmon-lab/tacdesk/pkg/domain/model/config"
	"github.com/netmon-lab/tacdesk/pkg/domain/types"
)

// RequiredFields computes the network-info fields a case must provide,
// as the union of the required sets of its problem areas. The result is
// deduplicated and sorted so it does not depend on platform order.
func RequiredFields(problemAreas []types.PlatformID, cfg *config.PlatformConfig) []string {
	seen := map[string]struct{}{}
	for _, area := range problemAreas {
		for _, field := range cfg.RequiredFields(area) {
			seen[field] = struct{}{}
		}
	}

	fields := make([]string, 0, len(seen))
	for field := range seen {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}

// ControlKind is how a network-info field is edited
type ControlKind string

const (
	ControlSelect ControlKind = "select"
	ControlText   ControlKind = "text"
)

// Control describes the input widget for one network-info field
type Control struct {
	Field   string
	Kind    ControlKind
	Options []string
}

// FieldPlatform is the network-info key whose value scopes the
// platform-dependent option lists.
const FieldPlatform = "platform"

// FieldControl decides how a network-info field is edited. Fields with a
// non-empty option source become selects; software versions and OLT card
// types are filtered by the platform currently chosen in the draft. Fields
// without options, including free-form ones like smx_linux_version, are
// plain text.
func FieldControl(field string, options *ContextOptions, draft map[string]string) Control {
	opts := optionsForField(field, options, draft)
	if len(opts) > 0 {
		return Control{Field: field, Kind: ControlSelect, Options: opts}
	}
	return Control{Field: field, Kind: ControlText}
}

// FieldLabel turns a snake_case field name into a display label,
// e.g. "olt_card_type" becomes "Olt Card Type".
func FieldLabel(field string) string {
	words := strings.Split(field, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func optionsForField(field string, options *ContextOptions, draft map[string]string) []string {
	if options == nil {
		return nil
	}
	switch field {
	case FieldPlatform:
		return options.PlatformNames()
	case "software_version":
		if p, ok := options.Platform(draft[FieldPlatform]); ok {
			return p.SoftwareVersions
		}
		return nil
	case "olt_card_type":
		if p, ok := options.Platform(draft[FieldPlatform]); ok {
			return p.OLTCardTypes
		}
		return nil
	case "ont_model":
		return options.ONTModels
	case "type_of_card":
		return options.TypeOfCard
	case "axos_version":
		return options.AxosVersions
	case "smx_version":
		return options.SMXVersions
	default:
		return nil
	}
}
