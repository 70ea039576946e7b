package cli

import (
	"context"
	"errors"
	"io"
	"os"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskregister/pkg/cli/config"
	"github.com/secmon-lab/riskregister/pkg/domain/model"
	"github.com/secmon-lab/riskregister/pkg/service/archive"
	"github.com/secmon-lab/riskregister/pkg/usecase"
	"github.com/secmon-lab/riskregister/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdExport() *cli.Command {
	var appCfg config.App
	var repoCfg config.Repository
	var workspace string
	var format string
	var output string
	var seed bool

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "workspace",
			Aliases:     []string{"w"},
			Usage:       "Workspace to export (defaults to the first configured workspace)",
			Sources:     cli.EnvVars("RISKREGISTER_EXPORT_WORKSPACE"),
			Destination: &workspace,
		},
		&cli.StringFlag{
			Name:        "format",
			Aliases:     []string{"f"},
			Usage:       "Export format (json or csv)",
			Value:       string(archive.FormatJSON),
			Destination: &format,
		},
		&cli.StringFlag{
			Name:        "output",
			Aliases:     []string{"o"},
			Usage:       "Output file path, - for stdout",
			Value:       "-",
			Destination: &output,
		},
		&cli.BoolFlag{
			Name:        "seed-walkthrough",
			Usage:       "Replay the sample risk review into the workspace before exporting",
			Destination: &seed,
		},
	}
	flags = append(flags, appCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)

	return &cli.Command{
		Name:    "export",
		Aliases: []string{"e"},
		Usage:   "Export the full risk register of a workspace",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			f, err := archive.ParseFormat(format)
			if err != nil {
				return goerr.Wrap(err, "invalid export format")
			}

			_, registry, err := appCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load configuration")
			}
			wsID, err := resolveWorkspace(registry, workspace)
			if err != nil {
				return err
			}

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			uc := usecase.New(repo, registry)
			if seed {
				if _, err := uc.Walkthrough(ctx, wsID); err != nil {
					return goerr.Wrap(err, "failed to seed workspace")
				}
			}

			rows, err := uc.Register.BuildFullRegister(ctx, wsID)
			if err != nil {
				if !errors.Is(err, usecase.ErrEmptyRegister) {
					return goerr.Wrap(err, "failed to build register")
				}
				logging.Default().Warn("exporting an empty register", usecase.WorkspaceIDKey, wsID)
				rows = []*model.RegisterRow{}
			}

			snapshot := &archive.Snapshot{
				WorkspaceID: wsID,
				GeneratedAt: time.Now().UTC(),
				Rows:        rows,
			}
			return writeExport(c, output, f, snapshot)
		},
	}
}

func writeExport(c *cli.Command, output string, format archive.Format, snapshot *archive.Snapshot) error {
	var w io.Writer
	if output == "-" {
		w = outputWriter(c)
	} else {
		// #nosec G304 - path is expected to be provided by CLI argument
		file, err := os.Create(output)
		if err != nil {
			return goerr.Wrap(err, "failed to create output file", goerr.V("path", output))
		}
		defer func() {
			if err := file.Close(); err != nil {
				logging.Default().Error("failed to close output file", "error", err.Error())
			}
		}()
		w = file
	}

	if err := archive.Encode(w, format, snapshot); err != nil {
		return err
	}

	logging.Default().Info("Register exported",
		usecase.WorkspaceIDKey, snapshot.WorkspaceID,
		"rows", len(snapshot.Rows),
		"format", string(format),
		"output", output)
	return nil
}
