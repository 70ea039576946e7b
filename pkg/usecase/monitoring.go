package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskregister/pkg/domain/model"
	"github.com/secmon-lab/riskregister/pkg/domain/types"
	"github.com/secmon-lab/riskregister/pkg/utils/logging"
)

// MonitoringAlertInput is a production monitoring finding, such as a data
// drift alert, expressed as a scored risk.
type MonitoringAlertInput struct {
	ModelID           int64
	RiskType          string
	HazardDescription string
	Likelihood        types.Score
	Magnitude         types.Score
}

// RecordMonitoringAlert rescores the first risk of the model with the same
// risk type, or adds a new scored risk when none exists. The second value
// reports whether a risk was created.
func (uc *RiskUseCase) RecordMonitoringAlert(ctx context.Context, workspaceID string, input MonitoringAlertInput) (*model.Risk, bool, error) {
	existing, err := uc.findByType(ctx, workspaceID, input.ModelID, input.RiskType)
	if err != nil {
		logAdvisory(ctx, err, "monitoring alert not recorded")
		return nil, false, err
	}

	if existing != nil {
		updated, err := uc.AssignScores(ctx, workspaceID, existing.ID, input.Likelihood, input.Magnitude)
		if err != nil {
			return nil, false, err
		}
		logging.From(ctx).Info("monitoring alert updated existing risk",
			WorkspaceIDKey, workspaceID,
			RiskIDKey, updated.ID)
		return updated, false, nil
	}

	created, err := uc.AddScoredRisk(ctx, workspaceID, input.ModelID, input.RiskType, input.HazardDescription, input.Likelihood, input.Magnitude)
	if err != nil {
		return nil, false, err
	}
	return created, true, nil
}

// UpdateAssessment rescores the first risk of the model with the given risk
// type. It returns ErrRiskNotFound when no such risk exists.
func (uc *RiskUseCase) UpdateAssessment(ctx context.Context, workspaceID string, modelID int64, riskType string, likelihood, magnitude types.Score) (*model.Risk, error) {
	existing, err := uc.findByType(ctx, workspaceID, modelID, riskType)
	if err != nil {
		logAdvisory(ctx, err, "assessment not updated")
		return nil, err
	}
	if existing == nil {
		err := goerr.Wrap(ErrRiskNotFound, "no risk of this type for the model",
			goerr.V(ModelIDKey, modelID),
			goerr.V("risk_type", riskType))
		logAdvisory(ctx, err, "assessment not updated")
		return nil, err
	}

	return uc.AssignScores(ctx, workspaceID, existing.ID, likelihood, magnitude)
}

func (uc *RiskUseCase) findByType(ctx context.Context, workspaceID string, modelID int64, riskType string) (*model.Risk, error) {
	risks, err := uc.ListRisksByModel(ctx, workspaceID, modelID)
	if err != nil {
		return nil, err
	}
	for _, r := range risks {
		if r.RiskType == riskType {
			return r, nil
		}
	}
	return nil, nil
}
