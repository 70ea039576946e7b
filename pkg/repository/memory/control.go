package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskregister/pkg/domain/model"
)

type controlRepository struct {
	mu       sync.RWMutex
	controls map[string]map[int64]*model.Control
	nextID   map[string]int64
}

func newControlRepository() *controlRepository {
	return &controlRepository{
		controls: make(map[string]map[int64]*model.Control),
		nextID:   make(map[string]int64),
	}
}

func (r *controlRepository) ensureWorkspace(workspaceID string) {
	if _, exists := r.controls[workspaceID]; !exists {
		r.controls[workspaceID] = make(map[int64]*model.Control)
	}
	if _, exists := r.nextID[workspaceID]; !exists {
		r.nextID[workspaceID] = 1
	}
}

func (r *controlRepository) Create(ctx context.Context, workspaceID string, control *model.Control) (*model.Control, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.ensureWorkspace(workspaceID)

	now := time.Now().UTC()
	created := control.Copy()
	created.ID = r.nextID[workspaceID]
	created.CreatedAt = now
	created.UpdatedAt = now
	r.nextID[workspaceID]++

	r.controls[workspaceID][created.ID] = created
	return created.Copy(), nil
}

func (r *controlRepository) Get(ctx context.Context, workspaceID string, id int64) (*model.Control, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	control, exists := r.controls[workspaceID][id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "control not found", goerr.V("id", id))
	}

	return control.Copy(), nil
}

func (r *controlRepository) List(ctx context.Context, workspaceID string) ([]*model.Control, error) {
	return r.filter(workspaceID, func(*model.Control) bool { return true }), nil
}

func (r *controlRepository) ListByRisk(ctx context.Context, workspaceID string, riskID int64) ([]*model.Control, error) {
	return r.filter(workspaceID, func(c *model.Control) bool { return c.RiskID == riskID }), nil
}

func (r *controlRepository) filter(workspaceID string, match func(*model.Control) bool) []*model.Control {
	r.mu.RLock()
	defer r.mu.RUnlock()

	controls := make([]*model.Control, 0)
	for _, c := range r.controls[workspaceID] {
		if match(c) {
			controls = append(controls, c.Copy())
		}
	}

	sort.Slice(controls, func(i, j int) bool { return controls[i].ID < controls[j].ID })
	return controls
}

func (r *controlRepository) Update(ctx context.Context, workspaceID string, control *model.Control) (*model.Control, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.controls[workspaceID][control.ID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "control not found", goerr.V("id", control.ID))
	}

	updated := existing.Copy()
	incoming := control.Copy()
	updated.Effectiveness = incoming.Effectiveness
	updated.Response = incoming.Response
	updated.UpdatedAt = time.Now().UTC()

	r.controls[workspaceID][updated.ID] = updated
	return updated.Copy(), nil
}
