package cli

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/netmon-lab/tacdesk/pkg/cli/config"
	"github.com/netmon-lab/tacdesk/pkg/tui"
)

func cmdWorkspace(apiCfg *config.API, platformCfg *config.Platform) *cli.Command {
	return &cli.Command{
		Name:    "workspace",
		Aliases: []string{"w"},
		Usage:   "Open the interactive case workspace",
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg, err := platformCfg.Configure()
			if err != nil {
				return err
			}
			client, err := apiCfg.Configure()
			if err != nil {
				return err
			}
			return tui.Run(client, cfg)
		},
	}
}
