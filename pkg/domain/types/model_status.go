package types

import "github.com/m-mizutani/goerr/v2"

// ModelStatus represents the lifecycle stage of a registered AI model
type ModelStatus string

const (
	ModelStatusInDevelopment ModelStatus = "In Development"
	ModelStatusInProduction  ModelStatus = "In Production"
	ModelStatusRetired       ModelStatus = "Retired"
)

// AllModelStatuses returns all valid model statuses
func AllModelStatuses() []ModelStatus {
	return []ModelStatus{
		ModelStatusInDevelopment,
		ModelStatusInProduction,
		ModelStatusRetired,
	}
}

// IsValid checks if the model status is valid
func (s ModelStatus) IsValid() bool {
	switch s {
	case ModelStatusInDevelopment,
		ModelStatusInProduction,
		ModelStatusRetired:
		return true
	default:
		return false
	}
}

// Normalize returns the status, treating empty as ModelStatusInDevelopment.
func (s ModelStatus) Normalize() ModelStatus {
	if s == "" {
		return ModelStatusInDevelopment
	}
	return s
}

// String returns the string representation of the model status
func (s ModelStatus) String() string {
	return string(s)
}

// ParseModelStatus parses a string into a ModelStatus. Empty input yields the default status.
func ParseModelStatus(s string) (ModelStatus, error) {
	status := ModelStatus(s).Normalize()
	if !status.IsValid() {
		return "", goerr.New("invalid model status", goerr.V("status", s))
	}
	return status, nil
}
