package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/netmon-lab/tacdesk/pkg/cli/config"
	"github.com/netmon-lab/tacdesk/pkg/domain/types"
)

func cmdNote(apiCfg *config.API) *cli.Command {
	return &cli.Command{
		Name:  "note",
		Usage: "Manage TAC notes on a case",
		Commands: []*cli.Command{
			{
				Name:      "add",
				Usage:     "Add a note to a case",
				ArgsUsage: "<case-id> <content>",
				Action: func(ctx context.Context, c *cli.Command) error {
					id, err := caseIDArg(c)
					if err != nil {
						return err
					}
					content := strings.TrimSpace(c.Args().Get(1))
					if content == "" {
						return goerr.New("note content is required")
					}

					client, err := apiCfg.Configure()
					if err != nil {
						return err
					}
					if err := client.CreateNote(ctx, id, content); err != nil {
						return err
					}

					fmt.Printf("Added note to case %s\n", id)
					return nil
				},
			},
			{
				Name:      "edit",
				Usage:     "Replace the content of a note",
				ArgsUsage: "<case-id> <note-id> <content>",
				Action: func(ctx context.Context, c *cli.Command) error {
					id, err := caseIDArg(c)
					if err != nil {
						return err
					}
					noteID := types.NoteID(c.Args().Get(1))
					if noteID == "" {
						return goerr.New("note ID is required")
					}
					content := strings.TrimSpace(c.Args().Get(2))
					if content == "" {
						return goerr.New("note content is required")
					}

					client, err := apiCfg.Configure()
					if err != nil {
						return err
					}
					if err := client.UpdateNote(ctx, id, noteID, content); err != nil {
						return err
					}

					fmt.Printf("Updated note %s\n", noteID)
					return nil
				},
			},
			{
				Name:      "delete",
				Usage:     "Delete a note from a case",
				ArgsUsage: "<case-id> <note-id>",
				Action: func(ctx context.Context, c *cli.Command) error {
					id, err := caseIDArg(c)
					if err != nil {
						return err
					}
					noteID := types.NoteID(c.Args().Get(1))
					if noteID == "" {
						return goerr.New("note ID is required")
					}

					client, err := apiCfg.Configure()
					if err != nil {
						return err
					}
					if err := client.DeleteNote(ctx, id, noteID); err != nil {
						return err
					}

					fmt.Printf("Deleted note %s\n", noteID)
					return nil
				},
			},
		},
	}
}
