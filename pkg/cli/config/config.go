package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/secmon-lab/riskregister/pkg/domain/model"
	"github.com/secmon-lab/riskregister/pkg/domain/types"
	"github.com/secmon-lab/riskregister/pkg/usecase"
	"github.com/urfave/cli/v3"
)

// AppConfig represents the application configuration
type AppConfig struct {
	Workspaces []Workspace        `toml:"workspace"`
	Taxonomy   []TaxonomyCategory `toml:"taxonomy"`
	Alert      Alert              `toml:"alert"`
}

// Workspace is an isolated register store
type Workspace struct {
	ID   string `toml:"id"`
	Name string `toml:"name"`
}

// Validate checks if the Workspace is valid
func (w *Workspace) Validate() error {
	if err := types.WorkspaceID(w.ID).Validate(); err != nil {
		return goerr.Wrap(err, "invalid workspace ID")
	}
	if w.Name == "" {
		return goerr.Wrap(ErrMissingName, "workspace name is required", goerr.V(WorkspaceKey, w.ID))
	}
	return nil
}

// TaxonomyCategory is a broad risk category with its fine-grained labels
type TaxonomyCategory struct {
	Category string   `toml:"category"`
	Labels   []string `toml:"labels"`
}

// Validate checks if the TaxonomyCategory is valid
func (c *TaxonomyCategory) Validate() error {
	if c.Category == "" {
		return goerr.Wrap(ErrMissingName, "taxonomy category name is required")
	}
	if len(c.Labels) == 0 {
		return goerr.Wrap(ErrMissingLabels, "taxonomy category has no labels", goerr.V(CategoryKey, c.Category))
	}
	return nil
}

// Alert configures composite score alerts
type Alert struct {
	Threshold int    `toml:"threshold"`
	Channel   string `toml:"channel"`
}

// Validate checks if the Alert is valid. A zero threshold means the default.
func (a *Alert) Validate() error {
	if a.Threshold != 0 && (a.Threshold < 1 || a.Threshold > types.MaxComposite) {
		return goerr.Wrap(ErrInvalidConfig, "alert threshold must be between 1 and 25", goerr.V("threshold", a.Threshold))
	}
	return nil
}

// Validate checks if the AppConfig is valid
func (a *AppConfig) Validate() error {
	// Check workspace duplicates
	workspaceIDs := make(map[string]bool)
	for i, ws := range a.Workspaces {
		if err := ws.Validate(); err != nil {
			return goerr.Wrap(err, "invalid workspace", goerr.V(EntryIndexKey, i))
		}
		if workspaceIDs[ws.ID] {
			return goerr.Wrap(ErrDuplicateID, "duplicate workspace ID", goerr.V(WorkspaceKey, ws.ID))
		}
		workspaceIDs[ws.ID] = true
	}

	// Check taxonomy duplicates
	categories := make(map[string]bool)
	for i, cat := range a.Taxonomy {
		if err := cat.Validate(); err != nil {
			return goerr.Wrap(err, "invalid taxonomy category", goerr.V(EntryIndexKey, i))
		}
		if categories[cat.Category] {
			return goerr.Wrap(ErrDuplicateCategory, "duplicate taxonomy category", goerr.V(CategoryKey, cat.Category))
		}
		categories[cat.Category] = true
	}
	if _, err := a.BuildTaxonomy(); err != nil {
		return err
	}

	if err := a.Alert.Validate(); err != nil {
		return goerr.Wrap(err, "invalid alert config")
	}

	return nil
}

// BuildTaxonomy returns the configured taxonomy, or the built-in one when none is configured
func (a *AppConfig) BuildTaxonomy() (*model.Taxonomy, error) {
	if len(a.Taxonomy) == 0 {
		return model.DefaultTaxonomy(), nil
	}

	categories := make([]model.TaxonomyCategory, len(a.Taxonomy))
	for i, cat := range a.Taxonomy {
		categories[i] = model.TaxonomyCategory{Name: cat.Category, Labels: cat.Labels}
	}
	taxonomy, err := model.NewTaxonomy(categories)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid taxonomy")
	}
	return taxonomy, nil
}

// BuildRegistry registers every configured workspace with the shared
// taxonomy. A single default workspace is used when none is configured.
func (a *AppConfig) BuildRegistry() (*model.WorkspaceRegistry, error) {
	taxonomy, err := a.BuildTaxonomy()
	if err != nil {
		return nil, err
	}

	workspaces := a.Workspaces
	if len(workspaces) == 0 {
		workspaces = []Workspace{{ID: types.DefaultWorkspaceID.String(), Name: "Default"}}
	}

	registry := model.NewWorkspaceRegistry()
	for _, ws := range workspaces {
		registry.Register(&model.WorkspaceEntry{
			Workspace: model.Workspace{ID: ws.ID, Name: ws.Name},
			Taxonomy:  taxonomy,
		})
	}
	return registry, nil
}

// AlertThreshold returns the configured threshold or the default
func (a *AppConfig) AlertThreshold() int {
	if a.Alert.Threshold == 0 {
		return usecase.DefaultAlertThreshold
	}
	return a.Alert.Threshold
}

// LoadAppConfiguration loads the application configuration from a TOML file
func LoadAppConfiguration(path string) (*AppConfig, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read config file", goerr.V(ConfigPathKey, path))
	}

	var config AppConfig
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, goerr.Wrap(err, "failed to parse TOML config", goerr.V(ConfigPathKey, path))
	}

	if err := config.Validate(); err != nil {
		return nil, goerr.Wrap(err, "config validation failed", goerr.V(ConfigPathKey, path))
	}

	return &config, nil
}

// App holds the CLI flag pointing at the application configuration file
type App struct {
	path string
}

func (x *App) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "Path to the TOML configuration file (workspaces, taxonomy, alert)",
			Sources:     cli.EnvVars("RISKREGISTER_CONFIG"),
			Destination: &x.path,
		},
	}
}

// Configure loads the configuration file, or the defaults when no file is
// given, and builds the workspace registry.
func (x *App) Configure() (*AppConfig, *model.WorkspaceRegistry, error) {
	cfg := &AppConfig{}
	if x.path != "" {
		loaded, err := LoadAppConfiguration(x.path)
		if err != nil {
			return nil, nil, err
		}
		cfg = loaded
	}

	registry, err := cfg.BuildRegistry()
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to build workspace registry")
	}
	return cfg, registry, nil
}
