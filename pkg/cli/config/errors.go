package config

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for configuration validation
var (
	ErrInvalidConfig     = goerr.New("invalid configuration")
	ErrDuplicateID       = goerr.New("duplicate workspace ID")
	ErrDuplicateCategory = goerr.New("duplicate taxonomy category")
	ErrMissingName       = goerr.New("name is required")
	ErrMissingLabels     = goerr.New("taxonomy category requires at least one label")
)

// Context keys for error values
const (
	ConfigPathKey = "config_path"
	WorkspaceKey  = "workspace_id"
	CategoryKey   = "category"
	EntryIndexKey = "index"
)
