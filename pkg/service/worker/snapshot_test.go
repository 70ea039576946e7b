package worker_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/riskregister/pkg/domain/model"
	"github.com/secmon-lab/riskregister/pkg/repository/memory"
	"github.com/secmon-lab/riskregister/pkg/service/worker"
	"github.com/secmon-lab/riskregister/pkg/usecase"
)

type savedSnapshot struct {
	workspaceID string
	rows        int
	at          time.Time
}

type mockStore struct {
	mu    sync.Mutex
	saved []savedSnapshot
	err   error
}

func (m *mockStore) Save(ctx context.Context, workspaceID string, rows []*model.RegisterRow, at time.Time) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return "", m.err
	}
	m.saved = append(m.saved, savedSnapshot{workspaceID: workspaceID, rows: len(rows), at: at})
	return "obj/" + workspaceID, nil
}

func (m *mockStore) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.saved)
}

func setup(t *testing.T) (*usecase.UseCases, []model.Workspace) {
	t.Helper()
	registry := model.NewWorkspaceRegistry()
	workspaces := []model.Workspace{{ID: "filled", Name: "Filled"}, {ID: "empty", Name: "Empty"}}
	for _, ws := range workspaces {
		registry.Register(&model.WorkspaceEntry{Workspace: ws})
	}
	uc := usecase.New(memory.New(), registry)

	m, err := uc.Model.AddModel(context.Background(), "filled", usecase.AddModelInput{Name: "M1"})
	gt.NoError(t, err).Required()
	_, err = uc.Risk.AddScoredRisk(context.Background(), "filled", m.ID, "Data Drift", "", 2, 3)
	gt.NoError(t, err).Required()

	return uc, workspaces
}

func TestSnapshotWorker_RunOnce(t *testing.T) {
	uc, workspaces := setup(t)
	store := &mockStore{}
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	w := worker.NewSnapshotWorker(uc.Register, store, workspaces, time.Hour)
	w.SetNow(func() time.Time { return fixed })

	saved := w.RunOnce(context.Background())
	gt.Value(t, saved).Equal(1)
	gt.Array(t, store.saved).Length(1).Required()
	gt.Value(t, store.saved[0].workspaceID).Equal("filled")
	gt.Value(t, store.saved[0].rows).Equal(1)
	gt.Bool(t, store.saved[0].at.Equal(fixed)).True()
}

func TestSnapshotWorker_StoreFailureContinues(t *testing.T) {
	uc, workspaces := setup(t)
	store := &mockStore{err: goerr.New("bucket unavailable")}

	w := worker.NewSnapshotWorker(uc.Register, store, workspaces, time.Hour)
	gt.Value(t, w.RunOnce(context.Background())).Equal(0)
}

func TestSnapshotWorker_StartStop(t *testing.T) {
	uc, workspaces := setup(t)
	store := &mockStore{}

	w := worker.NewSnapshotWorker(uc.Register, store, workspaces, 10*time.Millisecond)
	gt.NoError(t, w.Start(context.Background())).Required()

	deadline := time.Now().Add(2 * time.Second)
	for store.count() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	w.Stop()

	gt.Number(t, store.count()).GreaterOrEqual(1)
}

func TestSnapshotWorker_InvalidInterval(t *testing.T) {
	uc, workspaces := setup(t)
	w := worker.NewSnapshotWorker(uc.Register, &mockStore{}, workspaces, 0)
	gt.Value(t, w.Start(context.Background())).NotNil()
}
