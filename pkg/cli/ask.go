package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/netmon-lab/tacdesk/pkg/cli/config"
	"github.com/netmon-lab/tacdesk/pkg/render"
)

func cmdAsk(apiCfg *config.API) *cli.Command {
	return &cli.Command{
		Name:      "ask",
		Usage:     "Ask the knowledge base a question",
		ArgsUsage: "<question>",
		Action: func(ctx context.Context, c *cli.Command) error {
			question := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
			if question == "" {
				return goerr.New("question is required")
			}

			client, err := apiCfg.Configure()
			if err != nil {
				return err
			}
			resp, err := client.Ask(ctx, question)
			if err != nil {
				return err
			}

			fmt.Println(resp.Answer)
			if len(resp.Sources) > 0 {
				fmt.Println()
				render.Sources(os.Stdout, resp.Sources)
			}
			return nil
		},
	}
}
