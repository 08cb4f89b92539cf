package model

// PlatformOption is one selectable platform with its platform-scoped
// option lists.
type PlatformOption struct {
	Name             string   `json:"name"`
	SoftwareVersions []string `json:"software_versions,omitempty"`
	OLTCardTypes     []string `json:"olt_card_types,omitempty"`
}

// ContextOptions carries the selectable values for the network-info form,
// fetched from the backend once per form session.
type ContextOptions struct {
	Platforms    []PlatformOption `json:"platforms,omitempty"`
	ONTModels    []string         `json:"ont_models,omitempty"`
	TypeOfCard   []string         `json:"type_of_card,omitempty"`
	AxosVersions []string         `json:"axos_versions,omitempty"`
	SMXVersions  []string         `json:"smx_versions,omitempty"`
}

// Platform returns the platform option with the given name
func (x *ContextOptions) Platform(name string) (PlatformOption, bool) {
	for _, p := range x.Platforms {
		if p.Name == name {
			return p, true
		}
	}
	return PlatformOption{}, false
}

// PlatformNames lists the selectable platform names in order
func (x *ContextOptions) PlatformNames() []string {
	names := make([]string, 0, len(x.Platforms))
	for _, p := range x.Platforms {
		names = append(names, p.Name)
	}
	return names
}
