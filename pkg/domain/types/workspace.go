package types

import (
	"regexp"

	"github.com/m-mizutani/goerr/v2"
)

// WorkspaceID identifies an isolated risk register store
type WorkspaceID string

// DefaultWorkspaceID is used when no workspace is configured
const DefaultWorkspaceID WorkspaceID = "default"

var idPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// Validate checks if the WorkspaceID is valid
func (w WorkspaceID) Validate() error {
	if w == "" {
		return goerr.New("workspace ID cannot be empty")
	}
	if !idPattern.MatchString(string(w)) {
		return goerr.New("workspace ID must be lowercase alphanumeric with hyphens", goerr.V("id", w))
	}
	return nil
}

// String returns the string representation of WorkspaceID
func (w WorkspaceID) String() string {
	return string(w)
}
