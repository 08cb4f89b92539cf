package config

import (
	domainConfig "github.com/netmon-lab/tacdesk/pkg/domain/model/config"
	"github.com/urfave/cli/v3"
)

// Platform holds CLI flags for the platform catalog configuration
type Platform struct {
	path string
}

// Flags returns CLI flags for platform configuration
func (p *Platform) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "platform-config",
			Usage:       "Path to a TOML platform catalog (uses the built-in catalog when omitted)",
			Sources:     cli.EnvVars("TACDESK_PLATFORM_CONFIG"),
			Destination: &p.path,
		},
	}
}

// Path returns the configured catalog path, empty for the built-in catalog
func (p *Platform) Path() string {
	return p.path
}

// Configure loads the platform catalog, falling back to the built-in
// catalog when no path is configured.
func (p *Platform) Configure() (*domainConfig.PlatformConfig, error) {
	if p.path == "" {
		return domainConfig.DefaultPlatformConfig(), nil
	}
	return domainConfig.LoadPlatformConfig(p.path)
}
