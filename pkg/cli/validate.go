package cli

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskregister/pkg/cli/config"
	"github.com/secmon-lab/riskregister/pkg/usecase"
	"github.com/secmon-lab/riskregister/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdValidate() *cli.Command {
	var appCfg config.App
	var repoCfg config.Repository
	var checkDB bool

	var flags []cli.Flag
	flags = append(flags, appCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, &cli.BoolFlag{
		Name:        "check-db",
		Usage:       "Check stored models, risks and controls for broken references and stale composites",
		Sources:     cli.EnvVars("RISKREGISTER_CHECK_DB"),
		Destination: &checkDB,
	})

	return &cli.Command{
		Name:    "validate",
		Aliases: []string{"v"},
		Usage:   "Validate the configuration file and optionally check DB consistency",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()

			// Step 1: Load and validate the configuration file
			cfg, registry, err := appCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "configuration validation failed")
			}

			logger.Info("Configuration validation passed",
				"workspace_count", len(registry.List()),
				"alert_threshold", cfg.AlertThreshold(),
			)
			for _, entry := range registry.List() {
				logger.Info("Workspace validated",
					"id", entry.Workspace.ID,
					"name", entry.Workspace.Name,
					"category_count", len(entry.Taxonomy.Categories()),
				)
			}

			// Step 2: Run the DB consistency check when requested
			if !checkDB {
				logger.Info("--check-db not set, skipping DB consistency check")
				return nil
			}

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logger.Error("failed to close repository", "error", err.Error())
				}
			}()

			uc := usecase.New(repo, registry)
			result, err := uc.ValidateDB(ctx)
			if err != nil {
				return goerr.Wrap(err, "DB consistency check failed")
			}

			if result.HasIssues() {
				for _, issue := range result.Issues {
					logger.Warn("DB consistency issue found",
						"workspace_id", issue.WorkspaceID,
						"entity", issue.Entity,
						"entity_id", issue.EntityID,
						"message", issue.Message,
					)
				}

				return fmt.Errorf("DB consistency check found %d issue(s)", len(result.Issues))
			}

			logger.Info("DB consistency check passed")
			return nil
		},
	}
}
