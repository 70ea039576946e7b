package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskregister/pkg/domain/model"
)

type riskRepository struct {
	mu     sync.RWMutex
	risks  map[string]map[int64]*model.Risk
	nextID map[string]int64
}

func newRiskRepository() *riskRepository {
	return &riskRepository{
		risks:  make(map[string]map[int64]*model.Risk),
		nextID: make(map[string]int64),
	}
}

func (r *riskRepository) ensureWorkspace(workspaceID string) {
	if _, exists := r.risks[workspaceID]; !exists {
		r.risks[workspaceID] = make(map[int64]*model.Risk)
	}
	if _, exists := r.nextID[workspaceID]; !exists {
		r.nextID[workspaceID] = 1
	}
}

func (r *riskRepository) Create(ctx context.Context, workspaceID string, risk *model.Risk) (*model.Risk, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.ensureWorkspace(workspaceID)

	now := time.Now().UTC()
	created := risk.Copy()
	created.ID = r.nextID[workspaceID]
	created.CreatedAt = now
	created.UpdatedAt = now
	created.Recompute()
	r.nextID[workspaceID]++

	r.risks[workspaceID][created.ID] = created
	return created.Copy(), nil
}

func (r *riskRepository) Get(ctx context.Context, workspaceID string, id int64) (*model.Risk, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	risk, exists := r.risks[workspaceID][id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "risk not found", goerr.V("id", id))
	}

	return risk.Copy(), nil
}

func (r *riskRepository) List(ctx context.Context, workspaceID string) ([]*model.Risk, error) {
	return r.filter(workspaceID, func(*model.Risk) bool { return true }), nil
}

func (r *riskRepository) ListByModel(ctx context.Context, workspaceID string, modelID int64) ([]*model.Risk, error) {
	return r.filter(workspaceID, func(risk *model.Risk) bool { return risk.ModelID == modelID }), nil
}

func (r *riskRepository) filter(workspaceID string, match func(*model.Risk) bool) []*model.Risk {
	r.mu.RLock()
	defer r.mu.RUnlock()

	risks := make([]*model.Risk, 0)
	for _, risk := range r.risks[workspaceID] {
		if match(risk) {
			risks = append(risks, risk.Copy())
		}
	}

	sort.Slice(risks, func(i, j int) bool { return risks[i].ID < risks[j].ID })
	return risks
}

func (r *riskRepository) Update(ctx context.Context, workspaceID string, risk *model.Risk) (*model.Risk, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.risks[workspaceID][risk.ID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "risk not found", goerr.V("id", risk.ID))
	}

	// model, type and description are fixed at creation
	updated := existing.Copy()
	incoming := risk.Copy()
	updated.Likelihood = incoming.Likelihood
	updated.Magnitude = incoming.Magnitude
	updated.Composite = incoming.Composite
	updated.UpdatedAt = time.Now().UTC()

	r.risks[workspaceID][updated.ID] = updated
	return updated.Copy(), nil
}
