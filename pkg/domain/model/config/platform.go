package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/netmon-lab/tacdesk/pkg/domain/types"
	"github.com/pelletier/go-toml/v2"
)

// Platform is one selectable problem area and the network-info fields a
// case tagged with it must provide.
type Platform struct {
	ID             string   `toml:"id"`
	DisplayName    string   `toml:"display_name"`
	RequiredFields []string `toml:"required_fields"`
}

// Validate checks if the Platform is valid
func (p *Platform) Validate() error {
	if p.ID == "" {
		return goerr.New("platform id is required")
	}
	if p.DisplayName == "" {
		return goerr.New("platform display name is required", goerr.V("id", p.ID))
	}
	return nil
}

// PlatformConfig holds the platform catalog
type PlatformConfig struct {
	Platforms []Platform `toml:"platform"`
}

// Validate checks if the PlatformConfig is valid
func (c *PlatformConfig) Validate() error {
	if len(c.Platforms) == 0 {
		return goerr.New("at least one platform is required")
	}

	ids := make(map[string]bool)
	for _, p := range c.Platforms {
		if err := p.Validate(); err != nil {
			return goerr.Wrap(err, "invalid platform")
		}
		if ids[p.ID] {
			return goerr.New("duplicate platform ID", goerr.V("id", p.ID))
		}
		ids[p.ID] = true
	}
	return nil
}

// Platform returns the platform with the given ID
func (c *PlatformConfig) Platform(id types.PlatformID) (Platform, bool) {
	for _, p := range c.Platforms {
		if p.ID == id.String() {
			return p, true
		}
	}
	return Platform{}, false
}

// DisplayName returns the display name of a platform, falling back to the
// raw ID when the platform is not in the catalog.
func (c *PlatformConfig) DisplayName(id types.PlatformID) string {
	if p, ok := c.Platform(id); ok {
		return p.DisplayName
	}
	return id.String()
}

// RequiredFields returns the required network-info fields of a platform
func (c *PlatformConfig) RequiredFields(id types.PlatformID) []string {
	if p, ok := c.Platform(id); ok {
		return p.RequiredFields
	}
	return nil
}

// LoadPlatformConfig loads the platform catalog from a TOML file
func LoadPlatformConfig(path string) (*PlatformConfig, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read platform config file", goerr.V("path", path))
	}

	var config PlatformConfig
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, goerr.Wrap(err, "failed to parse TOML platform config", goerr.V("path", path))
	}

	if err := config.Validate(); err != nil {
		return nil, goerr.Wrap(err, "platform config validation failed", goerr.V("path", path))
	}

	return &config, nil
}

// DefaultPlatformConfig returns the built-in platform catalog, used when no
// config file is given.
func DefaultPlatformConfig() *PlatformConfig {
	return &PlatformConfig{
		Platforms: []Platform{
			{
				ID:             "ont_issue",
				DisplayName:    "ONT/GPON Issue",
				RequiredFields: []string{"platform", "software_version", "olt_card_type", "ont_model"},
			},
			{
				ID:             "olt_issue",
				DisplayName:    "OLT Issue",
				RequiredFields: []string{"platform", "software_version", "type_of_card"},
			},
			{
				ID:             "axos_issue",
				DisplayName:    "AXOS Platform Issue",
				RequiredFields: []string{"platform", "axos_version", "type_of_card"},
			},
			{
				ID:             "smx_issue",
				DisplayName:    "SMx Management Issue",
				RequiredFields: []string{"smx_version", "smx_linux_version"},
			},
		},
	}
}
