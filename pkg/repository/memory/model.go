package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskregister/pkg/domain/model"
)

type modelRepository struct {
	mu     sync.RWMutex
	models map[string]map[int64]*model.AIModel
	nextID map[string]int64
}

func newModelRepository() *modelRepository {
	return &modelRepository{
		models: make(map[string]map[int64]*model.AIModel),
		nextID: make(map[string]int64),
	}
}

func (r *modelRepository) ensureWorkspace(workspaceID string) {
	if _, exists := r.models[workspaceID]; !exists {
		r.models[workspaceID] = make(map[int64]*model.AIModel)
	}
	if _, exists := r.nextID[workspaceID]; !exists {
		r.nextID[workspaceID] = 1
	}
}

func (r *modelRepository) Create(ctx context.Context, workspaceID string, m *model.AIModel) (*model.AIModel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.ensureWorkspace(workspaceID)

	created := m.Copy()
	created.ID = r.nextID[workspaceID]
	created.CreatedAt = time.Now().UTC()
	r.nextID[workspaceID]++

	r.models[workspaceID][created.ID] = created
	return created.Copy(), nil
}

func (r *modelRepository) Get(ctx context.Context, workspaceID string, id int64) (*model.AIModel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, exists := r.models[workspaceID][id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "model not found", goerr.V("id", id))
	}

	return m.Copy(), nil
}

func (r *modelRepository) List(ctx context.Context, workspaceID string) ([]*model.AIModel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ws := r.models[workspaceID]
	models := make([]*model.AIModel, 0, len(ws))
	for _, m := range ws {
		models = append(models, m.Copy())
	}

	sort.Slice(models, func(i, j int) bool { return models[i].ID < models[j].ID })
	return models, nil
}
