package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/netmon-lab/tacdesk/pkg/cli/config"
	"github.com/netmon-lab/tacdesk/pkg/client"
	"github.com/netmon-lab/tacdesk/pkg/domain/types"
	"github.com/netmon-lab/tacdesk/pkg/utils/safe"
	"github.com/netmon-lab/tacdesk/pkg/workspace"
)

func openFile(path string) (*os.File, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	f, err := os.Open(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open file", goerr.V("path", path))
	}
	return f, nil
}

// printProgress renders byte-level upload progress on a single line
func printProgress(sent, total int64) {
	if total <= 0 {
		return
	}
	fmt.Printf("\rUploading... %d%% (%d/%d bytes)", sent*100/total, sent, total)
	if sent >= total {
		fmt.Println()
	}
}

func cmdUploadKB(apiCfg *config.API) *cli.Command {
	return &cli.Command{
		Name:      "upload-kb",
		Usage:     "Upload a PDF document to the knowledge base",
		ArgsUsage: "<file.pdf>",
		Action: func(ctx context.Context, c *cli.Command) error {
			path := c.Args().First()
			if path == "" {
				return goerr.New("file path is required")
			}
			if strings.ToLower(filepath.Ext(path)) != ".pdf" {
				return goerr.New("only PDF files can be uploaded", goerr.V("file", path))
			}

			f, err := openFile(path)
			if err != nil {
				return err
			}
			defer safe.Close(ctx, f)

			apiClient, err := apiCfg.Configure()
			if err != nil {
				return err
			}

			message, err := apiClient.UploadKnowledgeBase(ctx, filepath.Base(path), f,
				client.WithProgress(printProgress))
			if err != nil {
				return err
			}

			fmt.Println(message)
			return nil
		},
	}
}

func cmdAnalyze(apiCfg *config.API) *cli.Command {
	var caseID string
	var issue string
	var logFile string

	return &cli.Command{
		Name:  "analyze",
		Usage: "Start a log analysis that opens a new case when it completes",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "case-id",
				Usage:       "Case ID to create from the analysis",
				Required:    true,
				Destination: &caseID,
			},
			&cli.StringFlag{
				Name:        "issue",
				Usage:       "Reported issue description",
				Required:    true,
				Destination: &issue,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "Extracted log file (.txt)",
				Required:    true,
				Destination: &logFile,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			id := types.CaseID(caseID)
			if err := id.Validate(); err != nil {
				return err
			}
			if strings.ToLower(filepath.Ext(logFile)) != ".txt" {
				return goerr.New("only .txt log files are accepted", goerr.V("file", logFile))
			}

			f, err := openFile(logFile)
			if err != nil {
				return err
			}
			defer safe.Close(ctx, f)

			apiClient, err := apiCfg.Configure()
			if err != nil {
				return err
			}

			session := workspace.NewSession()
			runner := workspace.NewAnalyzeRunner(apiClient, session)
			err = runner.Run(ctx, client.AnalyzeRequest{
				CaseID:        id,
				ReportedIssue: issue,
				LogFilename:   filepath.Base(logFile),
				LogFile:       f,
			}, func(msg string) {
				fmt.Println(msg)
			})
			if err != nil {
				return err
			}

			fmt.Printf("Run 'tacdesk case show %s' to see the generated summary\n", session.Active())
			return nil
		},
	}
}
