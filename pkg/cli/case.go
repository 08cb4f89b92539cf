package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/netmon-lab/tacdesk/pkg/cli/config"
	"github.com/netmon-lab/tacdesk/pkg/domain/model"
	"github.com/netmon-lab/tacdesk/pkg/domain/types"
	"github.com/netmon-lab/tacdesk/pkg/render"
)

func cmdCase(apiCfg *config.API, platformCfg *config.Platform) *cli.Command {
	return &cli.Command{
		Name:  "case",
		Usage: "Manage support cases",
		Commands: []*cli.Command{
			cmdCaseNew(apiCfg, platformCfg),
			cmdCaseList(apiCfg),
			cmdCaseShow(apiCfg, platformCfg),
			cmdCaseSetPlatforms(apiCfg, platformCfg),
			cmdCaseSetIssue(apiCfg),
			cmdCaseNetworkInfo(apiCfg, platformCfg),
		},
	}
}

// caseIDArg validates the first positional argument as a case ID
func caseIDArg(c *cli.Command) (types.CaseID, error) {
	id := types.CaseID(c.Args().First())
	if err := id.Validate(); err != nil {
		return "", err
	}
	return id, nil
}

// resolvePlatforms checks each platform ID against the catalog
func resolvePlatforms(platformCfg *config.Platform, names []string) ([]types.PlatformID, error) {
	cfg, err := platformCfg.Configure()
	if err != nil {
		return nil, err
	}

	ids := make([]types.PlatformID, 0, len(names))
	for _, name := range names {
		id := types.PlatformID(name)
		if _, ok := cfg.Platform(id); !ok {
			return nil, goerr.New("unknown platform", goerr.V("platform", name))
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil, goerr.New("at least one platform is required")
	}
	return ids, nil
}

func cmdCaseNew(apiCfg *config.API, platformCfg *config.Platform) *cli.Command {
	var caseID string
	var platforms []string

	return &cli.Command{
		Name:  "new",
		Usage: "Create a new support case",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "case-id",
				Usage:       "Case ID (digits only, up to 10)",
				Required:    true,
				Destination: &caseID,
			},
			&cli.StringSliceFlag{
				Name:        "platform",
				Usage:       "Affected platform ID (repeatable)",
				Required:    true,
				Destination: &platforms,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			id := types.CaseID(caseID)
			if err := id.Validate(); err != nil {
				return err
			}
			areas, err := resolvePlatforms(platformCfg, platforms)
			if err != nil {
				return err
			}

			client, err := apiCfg.Configure()
			if err != nil {
				return err
			}
			if err := client.CreateCase(ctx, id, areas); err != nil {
				return err
			}

			fmt.Printf("Created case %s\n", id)
			return nil
		},
	}
}

func cmdCaseList(apiCfg *config.API) *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List recent cases",
		Action: func(ctx context.Context, c *cli.Command) error {
			client, err := apiCfg.Configure()
			if err != nil {
				return err
			}
			ids, err := client.ListCases(ctx)
			if err != nil {
				return err
			}

			if len(ids) == 0 {
				fmt.Println("No cases found")
				return nil
			}
			for _, id := range ids {
				fmt.Println(id)
			}
			return nil
		},
	}
}

func cmdCaseShow(apiCfg *config.API, platformCfg *config.Platform) *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Show the summary of a case",
		ArgsUsage: "<case-id>",
		Action: func(ctx context.Context, c *cli.Command) error {
			id, err := caseIDArg(c)
			if err != nil {
				return err
			}
			cfg, err := platformCfg.Configure()
			if err != nil {
				return err
			}
			client, err := apiCfg.Configure()
			if err != nil {
				return err
			}

			summary, err := client.GetCase(ctx, id)
			if err != nil {
				return err
			}

			render.Summary(os.Stdout, summary, cfg)
			return nil
		},
	}
}

func cmdCaseSetPlatforms(apiCfg *config.API, platformCfg *config.Platform) *cli.Command {
	var platforms []string

	return &cli.Command{
		Name:      "set-platforms",
		Usage:     "Replace the affected platforms of a case",
		ArgsUsage: "<case-id>",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:        "platform",
				Usage:       "Affected platform ID (repeatable)",
				Required:    true,
				Destination: &platforms,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			id, err := caseIDArg(c)
			if err != nil {
				return err
			}
			areas, err := resolvePlatforms(platformCfg, platforms)
			if err != nil {
				return err
			}

			client, err := apiCfg.Configure()
			if err != nil {
				return err
			}
			if err := client.UpdatePlatforms(ctx, id, areas); err != nil {
				return err
			}

			fmt.Printf("Updated platforms for case %s\n", id)
			return nil
		},
	}
}

func cmdCaseSetIssue(apiCfg *config.API) *cli.Command {
	return &cli.Command{
		Name:      "set-issue",
		Usage:     "Replace the reported issue of a case",
		ArgsUsage: "<case-id> <content>",
		Action: func(ctx context.Context, c *cli.Command) error {
			id, err := caseIDArg(c)
			if err != nil {
				return err
			}
			content := strings.TrimSpace(c.Args().Get(1))
			if content == "" {
				return goerr.New("issue content is required")
			}

			client, err := apiCfg.Configure()
			if err != nil {
				return err
			}
			if err := client.UpdateReportedIssue(ctx, id, content); err != nil {
				return err
			}

			fmt.Printf("Updated reported issue for case %s\n", id)
			return nil
		},
	}
}

func cmdCaseNetworkInfo(apiCfg *config.API, platformCfg *config.Platform) *cli.Command {
	var sets []string

	return &cli.Command{
		Name:      "network-info",
		Usage:     "Set network info fields on a case",
		ArgsUsage: "<case-id>",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:        "set",
				Usage:       "Field assignment as field=value (repeatable)",
				Required:    true,
				Destination: &sets,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			id, err := caseIDArg(c)
			if err != nil {
				return err
			}
			cfg, err := platformCfg.Configure()
			if err != nil {
				return err
			}
			client, err := apiCfg.Configure()
			if err != nil {
				return err
			}

			var summary *model.Case
			var options *model.ContextOptions
			eg, egCtx := errgroup.WithContext(ctx)
			eg.Go(func() error {
				var err error
				summary, err = client.GetCase(egCtx, id)
				return err
			})
			eg.Go(func() error {
				var err error
				options, err = client.GetContextOptions(egCtx)
				return err
			})
			if err := eg.Wait(); err != nil {
				return err
			}

			draft := make(map[string]string, len(summary.NetworkInfo)+len(sets))
			for k, v := range summary.NetworkInfo {
				draft[k] = v
			}

			required := model.RequiredFields(summary.ProblemAreas, cfg)
			allowed := make(map[string]bool, len(required))
			for _, f := range required {
				allowed[f] = true
			}

			for _, set := range sets {
				field, value, ok := strings.Cut(set, "=")
				if !ok {
					return goerr.New("assignment must be field=value", goerr.V("arg", set))
				}
				if !allowed[field] {
					return goerr.New("field is not required for this case",
						goerr.V("field", field), goerr.V("required", required))
				}
				if err := validateFieldValue(field, value, options, draft); err != nil {
					return err
				}
				draft[field] = value
			}

			if err := client.UpdateNetworkInfo(ctx, id, draft); err != nil {
				return err
			}

			fmt.Printf("Updated network info for case %s\n", id)
			for _, f := range required {
				if _, ok := draft[f]; !ok {
					fmt.Printf("Missing required field: %s\n", model.FieldLabel(f))
				}
			}
			return nil
		},
	}
}

// validateFieldValue rejects a value outside the field's option list.
// Free-text fields accept anything.
func validateFieldValue(field, value string, options *model.ContextOptions, draft map[string]string) error {
	control := model.FieldControl(field, options, draft)
	if control.Kind != model.ControlSelect {
		return nil
	}
	for _, opt := range control.Options {
		if opt == value {
			return nil
		}
	}
	return goerr.New("value is not a valid option",
		goerr.V("field", field), goerr.V("value", value), goerr.V("options", control.Options))
}
