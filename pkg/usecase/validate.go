package usecase

import (
	"context"
	"fmt"

	"github.com/secmon-lab/riskregister/pkg/domain/model"
	"github.com/secmon-lab/riskregister/pkg/utils/logging"
)

// IntegrityIssue is a stored entity that breaks a register invariant
type IntegrityIssue struct {
	WorkspaceID string
	Entity      string
	EntityID    int64
	Message     string
}

// IntegrityResult collects the issues found across all workspaces
type IntegrityResult struct {
	Issues []IntegrityIssue
}

func (r *IntegrityResult) HasIssues() bool {
	return len(r.Issues) > 0
}

func (r *IntegrityResult) add(workspaceID, entity string, id int64, format string, args ...any) {
	r.Issues = append(r.Issues, IntegrityIssue{
		WorkspaceID: workspaceID,
		Entity:      entity,
		EntityID:    id,
		Message:     fmt.Sprintf(format, args...),
	})
}

// ValidateDB checks every workspace for risks without a model, controls
// without a risk, and composites that disagree with their scores. Risk types
// outside the taxonomy are only logged because they are accepted on write.
func (uc *UseCases) ValidateDB(ctx context.Context) (*IntegrityResult, error) {
	result := &IntegrityResult{}

	for _, entry := range uc.registry.List() {
		wsID := entry.Workspace.ID
		data, err := uc.Register.load(ctx, wsID)
		if err != nil {
			return nil, err
		}

		models := make(map[int64]bool, len(data.models))
		for _, m := range data.models {
			models[m.ID] = true
		}
		risks := make(map[int64]bool, len(data.risks))
		for _, r := range data.risks {
			risks[r.ID] = true
			if !models[r.ModelID] {
				result.add(wsID, "risk", r.ID, "references missing model %d", r.ModelID)
			}
			checkComposite(result, wsID, r)
			if !entry.Taxonomy.IsLabel(r.RiskType) {
				logging.From(ctx).Warn("risk type is not a taxonomy label",
					WorkspaceIDKey, wsID,
					RiskIDKey, r.ID,
					"risk_type", r.RiskType)
			}
		}
		for _, c := range data.controls {
			if !risks[c.RiskID] {
				result.add(wsID, "control", c.ID, "references missing risk %d", c.RiskID)
			}
		}
	}

	return result, nil
}

func checkComposite(result *IntegrityResult, workspaceID string, r *model.Risk) {
	expected, ok := model.CompositeScore(r.Likelihood, r.Magnitude)
	switch {
	case !ok && r.Composite != nil:
		result.add(workspaceID, "risk", r.ID, "composite %d is set without both scores", *r.Composite)
	case ok && r.Composite == nil:
		result.add(workspaceID, "risk", r.ID, "composite is missing, expected %d", expected)
	case ok && *r.Composite != expected:
		result.add(workspaceID, "risk", r.ID, "composite %d does not match scores, expected %d", *r.Composite, expected)
	}
}
