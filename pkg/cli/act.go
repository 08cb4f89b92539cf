package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/netmon-lab/tacdesk/pkg/cli/config"
	"github.com/netmon-lab/tacdesk/pkg/render"
	"github.com/netmon-lab/tacdesk/pkg/workspace"
)

func cmdAct(apiCfg *config.API) *cli.Command {
	return &cli.Command{
		Name:      "act",
		Usage:     "Ask the agent to act on a case and wait for the plan to finish",
		ArgsUsage: "<case-id> <instruction>",
		Action: func(ctx context.Context, c *cli.Command) error {
			id, err := caseIDArg(c)
			if err != nil {
				return err
			}
			input := strings.TrimSpace(strings.Join(c.Args().Slice()[1:], " "))
			if input == "" {
				return goerr.New("instruction is required")
			}

			client, err := apiCfg.Configure()
			if err != nil {
				return err
			}

			session := workspace.NewSession()
			session.Set(id)
			log := workspace.NewInteractionLog()
			runner := workspace.NewActionRunner(client, session, log)

			if err := runner.Submit(ctx, input); err != nil {
				return err
			}
			fmt.Println("Plan submitted, waiting for the agent...")
			runner.Wait()

			for _, entry := range log.Entries() {
				switch entry.Kind {
				case workspace.EntryPlan:
					render.PlanView(os.Stdout, entry.Plan)
				case workspace.EntryAgent:
					fmt.Println(entry.Text)
				case workspace.EntryError:
					color.New(color.FgRed).Println(entry.Text)
				}
			}

			if runner.State() == workspace.StateFailed {
				return goerr.New("action did not complete", goerr.V("case_id", id))
			}
			return nil
		},
	}
}
