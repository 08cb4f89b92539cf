package cli

import (
	"context"

	"github.com/netmon-lab/tacdesk/pkg/cli/config"
	"github.com/netmon-lab/tacdesk/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func Run(ctx context.Context, args []string, version string) error {
	var loggerCfg config.Logger
	var apiCfg config.API
	var platformCfg config.Platform
	var closer func()

	flags := loggerCfg.Flags()
	flags = append(flags, apiCfg.Flags()...)
	flags = append(flags, platformCfg.Flags()...)

	app := &cli.Command{
		Name:    "tacdesk",
		Usage:   "Terminal workspace for the network support agent",
		Version: version,
		Flags:   flags,
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			f, err := loggerCfg.Configure()
			if err != nil {
				return ctx, err
			}
			closer = f

			logging.Default().Debug("Starting tacdesk", "logger", &loggerCfg)
			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if closer != nil {
				closer()
			}
			return nil
		},
		Commands: []*cli.Command{
			cmdCase(&apiCfg, &platformCfg),
			cmdNote(&apiCfg),
			cmdAct(&apiCfg),
			cmdAsk(&apiCfg),
			cmdEvidence(&apiCfg),
			cmdUploadKB(&apiCfg),
			cmdAnalyze(&apiCfg),
			cmdWorkspace(&apiCfg, &platformCfg),
			cmdStub(),
		},
	}

	if err := app.Run(ctx, args); err != nil {
		logging.Default().Error("failed to run app", "error", err)
		return err
	}

	return nil
}
