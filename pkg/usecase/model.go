package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskregister/pkg/domain/interfaces"
	"github.com/secmon-lab/riskregister/pkg/domain/model"
	"github.com/secmon-lab/riskregister/pkg/domain/types"
	"github.com/secmon-lab/riskregister/pkg/utils/logging"
)

// AddModelInput holds the attributes of a model to register. An empty
// Status means In Development.
type AddModelInput struct {
	Name        string
	UseCase     string
	Description string
	Owner       string
	Status      string
}

type ModelUseCase struct {
	repo interfaces.Repository
}

func NewModelUseCase(repo interfaces.Repository) *ModelUseCase {
	return &ModelUseCase{repo: repo}
}

// AddModel always creates a new model, even when the name is already registered
func (uc *ModelUseCase) AddModel(ctx context.Context, workspaceID string, input AddModelInput) (*model.AIModel, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, goerr.Wrap(ErrEmptyName, "model name is required")
	}

	status, err := types.ParseModelStatus(input.Status)
	if err != nil {
		return nil, goerr.Wrap(ErrInvalidStatus, "failed to parse model status", goerr.V("status", input.Status))
	}

	created, err := uc.repo.Model().Create(ctx, workspaceID, &model.AIModel{
		Name:        name,
		UseCase:     input.UseCase,
		Description: input.Description,
		Owner:       input.Owner,
		Status:      status,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create model", goerr.V(WorkspaceIDKey, workspaceID))
	}

	logging.From(ctx).Info("model added",
		WorkspaceIDKey, workspaceID,
		ModelIDKey, created.ID,
		"name", created.Name,
		"status", created.Status)
	return created, nil
}

// RegisterModel returns the model with the same name if one exists, or adds a
// new one. The second value reports whether a model was created.
func (uc *ModelUseCase) RegisterModel(ctx context.Context, workspaceID string, input AddModelInput) (*model.AIModel, bool, error) {
	existing, err := uc.FindModelByName(ctx, workspaceID, input.Name)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		logging.From(ctx).Info("model already registered",
			WorkspaceIDKey, workspaceID,
			ModelIDKey, existing.ID,
			"name", existing.Name)
		return existing, false, nil
	}

	created, err := uc.AddModel(ctx, workspaceID, input)
	if err != nil {
		return nil, false, err
	}
	return created, true, nil
}

// FindModelByName returns the first model with name, or nil when none matches
func (uc *ModelUseCase) FindModelByName(ctx context.Context, workspaceID, name string) (*model.AIModel, error) {
	name = strings.TrimSpace(name)
	models, err := uc.repo.Model().List(ctx, workspaceID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list models", goerr.V(WorkspaceIDKey, workspaceID))
	}
	for _, m := range models {
		if m.Name == name {
			return m, nil
		}
	}
	return nil, nil
}

func (uc *ModelUseCase) GetModel(ctx context.Context, workspaceID string, id int64) (*model.AIModel, error) {
	return getModel(ctx, uc.repo, workspaceID, id)
}

func (uc *ModelUseCase) ListModels(ctx context.Context, workspaceID string) ([]*model.AIModel, error) {
	models, err := uc.repo.Model().List(ctx, workspaceID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list models", goerr.V(WorkspaceIDKey, workspaceID))
	}
	return models, nil
}

// getModel translates a repository miss into ErrModelNotFound
func getModel(ctx context.Context, repo interfaces.Repository, workspaceID string, id int64) (*model.AIModel, error) {
	m, err := repo.Model().Get(ctx, workspaceID, id)
	if err != nil {
		if isNotFound(err) {
			return nil, goerr.Wrap(ErrModelNotFound, "unknown model", goerr.V(ModelIDKey, id))
		}
		return nil, goerr.Wrap(err, "failed to get model", goerr.V(ModelIDKey, id))
	}
	return m, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, interfaces.ErrNotFound)
}
