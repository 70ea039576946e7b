package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskregister/pkg/domain/interfaces"
	"github.com/secmon-lab/riskregister/pkg/domain/model"
	"github.com/secmon-lab/riskregister/pkg/utils/logging"
	"golang.org/x/sync/errgroup"
)

type RegisterUseCase struct {
	repo     interfaces.Repository
	registry *model.WorkspaceRegistry
}

func NewRegisterUseCase(repo interfaces.Repository, registry *model.WorkspaceRegistry) *RegisterUseCase {
	return &RegisterUseCase{
		repo:     repo,
		registry: registry,
	}
}

type registerData struct {
	models   []*model.AIModel
	risks    []*model.Risk
	controls []*model.Control
}

// load reads the three collections concurrently
func (uc *RegisterUseCase) load(ctx context.Context, workspaceID string) (*registerData, error) {
	var data registerData
	eg, ctx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		models, err := uc.repo.Model().List(ctx, workspaceID)
		if err != nil {
			return goerr.Wrap(err, "failed to list models")
		}
		data.models = models
		return nil
	})
	eg.Go(func() error {
		risks, err := uc.repo.Risk().List(ctx, workspaceID)
		if err != nil {
			return goerr.Wrap(err, "failed to list risks")
		}
		data.risks = risks
		return nil
	})
	eg.Go(func() error {
		controls, err := uc.repo.Control().List(ctx, workspaceID)
		if err != nil {
			return goerr.Wrap(err, "failed to list controls")
		}
		data.controls = controls
		return nil
	})

	if err := eg.Wait(); err != nil {
		return nil, goerr.Wrap(err, "failed to load register", goerr.V(WorkspaceIDKey, workspaceID))
	}
	return &data, nil
}

// BuildFullRegister returns the joined register. An empty store yields an
// empty slice together with ErrEmptyRegister.
func (uc *RegisterUseCase) BuildFullRegister(ctx context.Context, workspaceID string) ([]*model.RegisterRow, error) {
	data, err := uc.load(ctx, workspaceID)
	if err != nil {
		return nil, err
	}

	rows := model.BuildRegister(data.models, data.risks, data.controls)
	if len(rows) == 0 {
		return rows, emptyRegister(ctx, workspaceID, "register")
	}
	return rows, nil
}

// TopRisks returns the n highest composite rows, nulls last. A non-positive
// n falls back to model.DefaultTopN.
func (uc *RegisterUseCase) TopRisks(ctx context.Context, workspaceID string, n int) ([]*model.RegisterRow, error) {
	rows, err := uc.BuildFullRegister(ctx, workspaceID)
	if err != nil {
		return rows, err
	}
	return model.TopRisks(rows, n), nil
}

// CategoryCounts counts risks per broad category of the workspace taxonomy.
// It returns ErrEmptyRegister when no risk has been identified.
func (uc *RegisterUseCase) CategoryCounts(ctx context.Context, workspaceID string) ([]*model.CategoryCount, error) {
	taxonomy, err := taxonomyOf(uc.registry, workspaceID)
	if err != nil {
		return nil, err
	}

	risks, err := uc.repo.Risk().List(ctx, workspaceID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list risks", goerr.V(WorkspaceIDKey, workspaceID))
	}
	if len(risks) == 0 {
		return []*model.CategoryCount{}, emptyRegister(ctx, workspaceID, "category counts")
	}

	return model.CategoryCounts(risks, taxonomy), nil
}

func emptyRegister(ctx context.Context, workspaceID, report string) error {
	err := goerr.Wrap(ErrEmptyRegister, "nothing to report",
		goerr.V(WorkspaceIDKey, workspaceID),
		goerr.V("report", report))
	logging.From(ctx).Warn("empty register",
		WorkspaceIDKey, workspaceID,
		"report", report,
		"notice", NoticeOf(err).Code)
	return err
}
