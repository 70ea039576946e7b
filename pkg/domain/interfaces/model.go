package interfaces

import (
	"context"

	"github.com/secmon-lab/riskregister/pkg/domain/model"
)

type ModelRepository interface {
	// Create stores a new model with the next ID of the workspace sequence
	Create(ctx context.Context, workspaceID string, m *model.AIModel) (*model.AIModel, error)

	// Get retrieves a model by ID
	Get(ctx context.Context, workspaceID string, id int64) (*model.AIModel, error)

	// List retrieves all models ordered by ID
	List(ctx context.Context, workspaceID string) ([]*model.AIModel, error)
}
