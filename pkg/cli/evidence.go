package cli

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/netmon-lab/tacdesk/pkg/cli/config"
	"github.com/netmon-lab/tacdesk/pkg/domain/types"
)

func cmdEvidence(apiCfg *config.API) *cli.Command {
	return &cli.Command{
		Name:      "evidence",
		Usage:     "Fetch collected evidence from a case",
		ArgsUsage: "<case-id> <evidence-type>",
		Action: func(ctx context.Context, c *cli.Command) error {
			id, err := caseIDArg(c)
			if err != nil {
				return err
			}
			evidenceType := types.EvidenceType(c.Args().Get(1))
			if evidenceType == "" {
				return goerr.New("evidence type is required")
			}

			client, err := apiCfg.Configure()
			if err != nil {
				return err
			}
			content, err := client.GetEvidence(ctx, id, evidenceType)
			if err != nil {
				return err
			}

			fmt.Println(content)
			return nil
		},
	}
}
