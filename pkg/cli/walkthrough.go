package cli

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskregister/pkg/cli/config"
	"github.com/secmon-lab/riskregister/pkg/domain/model"
	"github.com/secmon-lab/riskregister/pkg/repository/memory"
	"github.com/secmon-lab/riskregister/pkg/usecase"
	"github.com/secmon-lab/riskregister/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdWalkthrough() *cli.Command {
	var appCfg config.App
	var workspace string
	var topN int

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "workspace",
			Aliases:     []string{"w"},
			Usage:       "Workspace whose taxonomy is used (defaults to the first configured workspace)",
			Destination: &workspace,
		},
		&cli.IntFlag{
			Name:        "top",
			Usage:       "Number of rows in the top risks report",
			Value:       model.DefaultTopN,
			Destination: &topN,
		},
	}
	flags = append(flags, appCfg.Flags()...)

	return &cli.Command{
		Name:    "walkthrough",
		Aliases: []string{"demo"},
		Usage:   "Replay a sample risk review on an in-memory register and print the reports",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			_, registry, err := appCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load configuration")
			}

			wsID, err := resolveWorkspace(registry, workspace)
			if err != nil {
				return err
			}

			repo := memory.New()
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()
			uc := usecase.New(repo, registry)

			steps, err := uc.Walkthrough(ctx, wsID)
			if err != nil {
				return goerr.Wrap(err, "walkthrough failed")
			}

			w := outputWriter(c)
			printSteps(w, steps)
			return printReports(ctx, w, uc, wsID, topN)
		},
	}
}

// printReports prints the full register, the top risks and the category
// counts of a workspace. An empty register is reported, not returned.
func printReports(ctx context.Context, w io.Writer, uc *usecase.UseCases, workspaceID string, topN int) error {
	rows, err := uc.Register.BuildFullRegister(ctx, workspaceID)
	if err != nil && !errors.Is(err, usecase.ErrEmptyRegister) {
		return goerr.Wrap(err, "failed to build register")
	}
	printRegister(w, "Risk register", rows)

	top, err := uc.Register.TopRisks(ctx, workspaceID, topN)
	if err != nil && !errors.Is(err, usecase.ErrEmptyRegister) {
		return goerr.Wrap(err, "failed to rank risks")
	}
	printRegister(w, "Top risks", top)

	counts, err := uc.Register.CategoryCounts(ctx, workspaceID)
	if err != nil && !errors.Is(err, usecase.ErrEmptyRegister) {
		return goerr.Wrap(err, "failed to count risks per category")
	}
	printCategories(w, counts)
	return nil
}

// resolveWorkspace returns id when set, otherwise the first registered workspace
func resolveWorkspace(registry *model.WorkspaceRegistry, id string) (string, error) {
	if id != "" {
		if _, err := registry.Get(id); err != nil {
			return "", goerr.Wrap(err, "unknown workspace", goerr.V(usecase.WorkspaceIDKey, id))
		}
		return id, nil
	}

	entries := registry.List()
	if len(entries) == 0 {
		return "", goerr.New("no workspace is configured")
	}
	return entries[0].Workspace.ID, nil
}

func outputWriter(c *cli.Command) io.Writer {
	if root := c.Root(); root != nil && root.Writer != nil {
		return root.Writer
	}
	return os.Stdout
}
