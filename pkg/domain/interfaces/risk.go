package interfaces

import (
	"context"

	"github.com/secmon-lab/riskregister/pkg/domain/model"
)

type RiskRepository interface {
	// Create stores a new risk with the next ID of the workspace sequence
	Create(ctx context.Context, workspaceID string, risk *model.Risk) (*model.Risk, error)

	// Get retrieves a risk by ID
	Get(ctx context.Context, workspaceID string, id int64) (*model.Risk, error)

	// List retrieves all risks ordered by ID
	List(ctx context.Context, workspaceID string) ([]*model.Risk, error)

	// ListByModel retrieves risks of a model ordered by ID
	ListByModel(ctx context.Context, workspaceID string, modelID int64) ([]*model.Risk, error)

	// Update overwrites scores and composite of an existing risk
	Update(ctx context.Context, workspaceID string, risk *model.Risk) (*model.Risk, error)
}
