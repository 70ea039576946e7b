package model

import "github.com/secmon-lab/riskregister/pkg/domain/types"

// RiskAlert describes a scored risk that reached the alert threshold
type RiskAlert struct {
	WorkspaceID string
	Model       *AIModel
	Risk        *Risk
	Severity    types.Severity
	// Source is the operation that produced the score, e.g. "assign_scores"
	Source string
}
