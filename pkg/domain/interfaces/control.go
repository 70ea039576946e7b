package interfaces

import (
	"context"

	"github.com/secmon-lab/riskregister/pkg/domain/model"
)

type ControlRepository interface {
	// Create stores a new control with the next ID of the workspace sequence
	Create(ctx context.Context, workspaceID string, control *model.Control) (*model.Control, error)

	// Get retrieves a control by ID
	Get(ctx context.Context, workspaceID string, id int64) (*model.Control, error)

	// List retrieves all controls ordered by ID
	List(ctx context.Context, workspaceID string) ([]*model.Control, error)

	// ListByRisk retrieves controls of a risk ordered by ID
	ListByRisk(ctx context.Context, workspaceID string, riskID int64) ([]*model.Control, error)

	// Update overwrites effectiveness and response of an existing control
	Update(ctx context.Context, workspaceID string, control *model.Control) (*model.Control, error)
}
