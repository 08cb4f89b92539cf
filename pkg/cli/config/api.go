package config

import (
	"log/slog"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/netmon-lab/tacdesk/pkg/client"
	"github.com/urfave/cli/v3"
)

// API holds CLI flags for the agent backend endpoint
type API struct {
	url     string
	timeout time.Duration
}

// Flags returns CLI flags for API configuration
func (a *API) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "api-url",
			Usage:       "Base URL of the agent backend",
			Category:    "API",
			Value:       "http://localhost:8080",
			Sources:     cli.EnvVars("TACDESK_API_URL"),
			Destination: &a.url,
		},
		&cli.DurationFlag{
			Name:        "api-timeout",
			Usage:       "Timeout for API requests",
			Category:    "API",
			Value:       30 * time.Second,
			Sources:     cli.EnvVars("TACDESK_API_TIMEOUT"),
			Destination: &a.timeout,
		},
	}
}

// LogAttrs returns log attributes for the API configuration
func (a *API) LogAttrs() []slog.Attr {
	return []slog.Attr{
		slog.String("url", a.url),
		slog.Duration("timeout", a.timeout),
	}
}

// Configure creates an API client from the configured flags
func (a *API) Configure() (*client.Client, error) {
	c, err := client.New(a.url, client.WithTimeout(a.timeout))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create API client", goerr.V("url", a.url))
	}
	return c, nil
}
