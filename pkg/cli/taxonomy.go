package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskregister/pkg/cli/config"
	"github.com/secmon-lab/riskregister/pkg/domain/model"
	"github.com/secmon-lab/riskregister/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdTaxonomy() *cli.Command {
	var appCfg config.App
	var workspace string

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "workspace",
			Aliases:     []string{"w"},
			Usage:       "Only print this workspace",
			Destination: &workspace,
		},
	}
	flags = append(flags, appCfg.Flags()...)

	return &cli.Command{
		Name:    "taxonomy",
		Aliases: []string{"t"},
		Usage:   "Print the risk categories and labels of each workspace",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			_, registry, err := appCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load configuration")
			}

			entries := registry.List()
			if workspace != "" {
				entry, err := registry.Get(workspace)
				if err != nil {
					return goerr.Wrap(err, "unknown workspace", goerr.V(usecase.WorkspaceIDKey, workspace))
				}
				entries = []*model.WorkspaceEntry{entry}
			}

			w := outputWriter(c)
			for _, entry := range entries {
				printTaxonomy(w, entry)
			}
			return nil
		},
	}
}
