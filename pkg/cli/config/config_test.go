package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/riskregister/pkg/cli/config"
	"github.com/secmon-lab/riskregister/pkg/domain/model"
	"github.com/secmon-lab/riskregister/pkg/usecase"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	gt.NoError(t, os.WriteFile(path, []byte(content), 0644)).Required()
	return path
}

func TestLoadAppConfiguration(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{
			name: "valid configuration",
			content: `
[[workspace]]
id = "credit"
name = "Credit Models"

[[workspace]]
id = "fraud"
name = "Fraud Models"

[[taxonomy]]
category = "Data Risk"
labels = ["Data Quality", "Data Drift"]

[[taxonomy]]
category = "Model Risk"
labels = ["Algorithmic Bias"]

[alert]
threshold = 16
channel = "C0123456"
`,
		},
		{
			name:    "empty file uses defaults",
			content: "",
		},
		{
			name: "duplicate workspace ID",
			content: `
[[workspace]]
id = "credit"
name = "Credit"

[[workspace]]
id = "credit"
name = "Credit again"
`,
			wantErr: config.ErrDuplicateID,
		},
		{
			name: "missing workspace name",
			content: `
[[workspace]]
id = "credit"
`,
			wantErr: config.ErrMissingName,
		},
		{
			name: "duplicate taxonomy category",
			content: `
[[taxonomy]]
category = "Data Risk"
labels = ["Data Quality"]

[[taxonomy]]
category = "Data Risk"
labels = ["Data Drift"]
`,
			wantErr: config.ErrDuplicateCategory,
		},
		{
			name: "category without labels",
			content: `
[[taxonomy]]
category = "Data Risk"
labels = []
`,
			wantErr: config.ErrMissingLabels,
		},
		{
			name: "label shared by two categories",
			content: `
[[taxonomy]]
category = "Data Risk"
labels = ["Drift"]

[[taxonomy]]
category = "Model Risk"
labels = ["Drift"]
`,
			wantErr: model.ErrInvalidTaxonomy,
		},
		{
			name: "alert threshold above the composite range",
			content: `
[alert]
threshold = 30
`,
			wantErr: config.ErrInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := config.LoadAppConfiguration(writeConfig(t, tt.content))
			if tt.wantErr != nil {
				gt.Error(t, err).Is(tt.wantErr)
				return
			}
			gt.NoError(t, err).Required()
			gt.Value(t, cfg).NotNil()
		})
	}

	t.Run("invalid workspace ID format", func(t *testing.T) {
		_, err := config.LoadAppConfiguration(writeConfig(t, `
[[workspace]]
id = "Credit_Models"
name = "Credit"
`))
		gt.Value(t, err).NotNil()
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := config.LoadAppConfiguration(filepath.Join(t.TempDir(), "missing.toml"))
		gt.Value(t, err).NotNil()
	})
}

func TestAppConfigure(t *testing.T) {
	t.Run("defaults without a config file", func(t *testing.T) {
		cfg, registry, err := config.NewAppForTest("").Configure()
		gt.NoError(t, err).Required()
		gt.Value(t, cfg.AlertThreshold()).Equal(usecase.DefaultAlertThreshold)

		workspaces := registry.Workspaces()
		gt.Array(t, workspaces).Length(1).Required()
		gt.Value(t, workspaces[0].ID).Equal("default")

		entry, err := registry.Get("default")
		gt.NoError(t, err).Required()
		gt.Array(t, entry.Taxonomy.CategoryNames()).Length(5)
	})

	t.Run("configured workspaces share the configured taxonomy", func(t *testing.T) {
		path := writeConfig(t, `
[[workspace]]
id = "credit"
name = "Credit Models"

[[workspace]]
id = "fraud"
name = "Fraud Models"

[[taxonomy]]
category = "Data Risk"
labels = ["Data Quality", "Data Drift"]

[alert]
threshold = 12
`)
		cfg, registry, err := config.NewAppForTest(path).Configure()
		gt.NoError(t, err).Required()
		gt.Value(t, cfg.AlertThreshold()).Equal(12)

		workspaces := registry.Workspaces()
		gt.Array(t, workspaces).Length(2).Required()
		gt.Value(t, workspaces[0].ID).Equal("credit")
		gt.Value(t, workspaces[1].ID).Equal("fraud")

		entry, err := registry.Get("fraud")
		gt.NoError(t, err).Required()
		category, ok := entry.Taxonomy.CategoryOf("Data Drift")
		gt.Bool(t, ok).True()
		gt.Value(t, category).Equal("Data Risk")
		gt.Bool(t, entry.Taxonomy.IsLabel("Algorithmic Bias")).False()
	})
}
