package cli_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/riskregister/pkg/cli"
)

func TestRun_WalkthroughCommand(t *testing.T) {
	err := cli.Run(context.Background(), []string{"riskregister", "walkthrough", "--top", "3"}, "test")
	gt.NoError(t, err)
}

func TestRun_WalkthroughCommand_UnknownWorkspace(t *testing.T) {
	err := cli.Run(context.Background(), []string{"riskregister", "walkthrough", "--workspace", "missing"}, "test")
	gt.Value(t, err).NotNil()
}

func TestRun_TaxonomyCommand(t *testing.T) {
	configPath := writeConfig(t, `
[[workspace]]
id = "credit"
name = "Credit Models"

[[workspace]]
id = "fraud"
name = "Fraud Models"
`)

	t.Run("all workspaces", func(t *testing.T) {
		err := cli.Run(context.Background(), []string{"riskregister", "taxonomy", "--config", configPath}, "test")
		gt.NoError(t, err)
	})

	t.Run("one workspace", func(t *testing.T) {
		err := cli.Run(context.Background(), []string{"riskregister", "taxonomy", "--config", configPath, "--workspace", "fraud"}, "test")
		gt.NoError(t, err)
	})

	t.Run("unknown workspace", func(t *testing.T) {
		err := cli.Run(context.Background(), []string{"riskregister", "taxonomy", "--config", configPath, "--workspace", "missing"}, "test")
		gt.Value(t, err).NotNil()
	})
}
