package usecase

import (
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskregister/pkg/domain/interfaces"
	"github.com/secmon-lab/riskregister/pkg/domain/model"
	"github.com/secmon-lab/riskregister/pkg/domain/types"
	"github.com/secmon-lab/riskregister/pkg/utils/logging"
)

type ControlUseCase struct {
	repo interfaces.Repository
}

func NewControlUseCase(repo interfaces.Repository) *ControlUseCase {
	return &ControlUseCase{repo: repo}
}

// AddControl attaches a pending control to an existing risk
func (uc *ControlUseCase) AddControl(ctx context.Context, workspaceID string, riskID int64, description string) (*model.Control, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, goerr.Wrap(ErrEmptyName, "control description is required")
	}

	if _, err := getRisk(ctx, uc.repo, workspaceID, riskID); err != nil {
		logAdvisory(ctx, err, "control not added")
		return nil, err
	}

	created, err := uc.repo.Control().Create(ctx, workspaceID, &model.Control{
		RiskID:      riskID,
		Description: description,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create control", goerr.V(RiskIDKey, riskID))
	}

	logging.From(ctx).Info("control added",
		WorkspaceIDKey, workspaceID,
		RiskIDKey, riskID,
		ControlIDKey, created.ID)
	return created, nil
}

// DefineControl adds a control unless the risk already has one with the same
// description. The second value reports whether a control was created.
func (uc *ControlUseCase) DefineControl(ctx context.Context, workspaceID string, riskID int64, description string) (*model.Control, bool, error) {
	if _, err := getRisk(ctx, uc.repo, workspaceID, riskID); err != nil {
		logAdvisory(ctx, err, "control not defined")
		return nil, false, err
	}

	existing, err := uc.repo.Control().ListByRisk(ctx, workspaceID, riskID)
	if err != nil {
		return nil, false, goerr.Wrap(err, "failed to list controls", goerr.V(RiskIDKey, riskID))
	}
	trimmed := strings.TrimSpace(description)
	for _, c := range existing {
		if c.Description == trimmed {
			logging.From(ctx).Info("control already defined",
				WorkspaceIDKey, workspaceID,
				ControlIDKey, c.ID)
			return c, false, nil
		}
	}

	created, err := uc.AddControl(ctx, workspaceID, riskID, description)
	if err != nil {
		return nil, false, err
	}
	return created, true, nil
}

// AssignResponse sets effectiveness and response together
func (uc *ControlUseCase) AssignResponse(ctx context.Context, workspaceID string, controlID int64, effectiveness types.Score, response types.RiskResponse) (*model.Control, error) {
	if err := validateScore("effectiveness", effectiveness); err != nil {
		return nil, err
	}
	if !response.IsValid() {
		return nil, goerr.Wrap(ErrInvalidResponse, "unknown risk response", goerr.V("response", response.String()))
	}

	control, err := getControl(ctx, uc.repo, workspaceID, controlID)
	if err != nil {
		logAdvisory(ctx, err, "response not assigned")
		return nil, err
	}

	control.SetResponse(effectiveness, response)
	updated, err := uc.repo.Control().Update(ctx, workspaceID, control)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update control", goerr.V(ControlIDKey, controlID))
	}

	logging.From(ctx).Info("control response assigned",
		WorkspaceIDKey, workspaceID,
		ControlIDKey, controlID,
		"effectiveness", effectiveness,
		"response", response)
	return updated, nil
}

// PendingControls lists controls still missing effectiveness or response
func (uc *ControlUseCase) PendingControls(ctx context.Context, workspaceID string) ([]*model.Control, error) {
	controls, err := uc.ListControls(ctx, workspaceID)
	if err != nil {
		return nil, err
	}

	pending := make([]*model.Control, 0, len(controls))
	for _, c := range controls {
		if c.IsPending() {
			pending = append(pending, c)
		}
	}
	return pending, nil
}

func (uc *ControlUseCase) GetControl(ctx context.Context, workspaceID string, id int64) (*model.Control, error) {
	return getControl(ctx, uc.repo, workspaceID, id)
}

func (uc *ControlUseCase) ListControls(ctx context.Context, workspaceID string) ([]*model.Control, error) {
	controls, err := uc.repo.Control().List(ctx, workspaceID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list controls", goerr.V(WorkspaceIDKey, workspaceID))
	}
	return controls, nil
}

func getControl(ctx context.Context, repo interfaces.Repository, workspaceID string, id int64) (*model.Control, error) {
	control, err := repo.Control().Get(ctx, workspaceID, id)
	if err != nil {
		if isNotFound(err) {
			return nil, goerr.Wrap(ErrControlNotFound, "unknown control", goerr.V(ControlIDKey, id))
		}
		return nil, goerr.Wrap(err, "failed to get control", goerr.V(ControlIDKey, id))
	}
	return control, nil
}
