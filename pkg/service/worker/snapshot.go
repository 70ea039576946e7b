package worker

import (
	"context"
	"errors"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskregister/pkg/domain/model"
	"github.com/secmon-lab/riskregister/pkg/usecase"
	"github.com/secmon-lab/riskregister/pkg/utils/errutil"
	"github.com/secmon-lab/riskregister/pkg/utils/logging"
)

// RegisterSource builds the joined register of a workspace
type RegisterSource interface {
	BuildFullRegister(ctx context.Context, workspaceID string) ([]*model.RegisterRow, error)
}

// SnapshotStore persists a register snapshot and returns its location
type SnapshotStore interface {
	Save(ctx context.Context, workspaceID string, rows []*model.RegisterRow, at time.Time) (string, error)
}

// SnapshotWorker periodically archives the register of every workspace.
//
// Architecture assumptions:
// - Single server instance (no distributed locking)
// - Empty registers are skipped, not archived
type SnapshotWorker struct {
	source     RegisterSource
	store      SnapshotStore
	workspaces []model.Workspace
	interval   time.Duration
	now        func() time.Time
	stopCh     chan struct{}
	doneCh     chan struct{}
}

// NewSnapshotWorker creates a worker archiving the given workspaces every interval
func NewSnapshotWorker(source RegisterSource, store SnapshotStore, workspaces []model.Workspace, interval time.Duration) *SnapshotWorker {
	return &SnapshotWorker{
		source:     source,
		store:      store,
		workspaces: workspaces,
		interval:   interval,
		now:        time.Now,
		stopCh:     make(chan struct{}),
		doneCh:     make(chan struct{}),
	}
}

// Start begins the background loop. It does not block.
func (w *SnapshotWorker) Start(ctx context.Context) error {
	if w.interval <= 0 {
		return goerr.New("snapshot interval must be positive", goerr.V("interval", w.interval.String()))
	}

	logging.Default().Info("Register snapshot worker starting",
		"interval", w.interval.String(),
		"workspaces", len(w.workspaces))

	go w.run(ctx)
	return nil
}

// Stop signals the worker to stop and waits for completion
func (w *SnapshotWorker) Stop() {
	logging.Default().Info("Register snapshot worker stopping")
	close(w.stopCh)
	<-w.doneCh
	logging.Default().Info("Register snapshot worker stopped")
}

func (w *SnapshotWorker) run(ctx context.Context) {
	defer close(w.doneCh)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.RunOnce(ctx)

		case <-w.stopCh:
			return

		case <-ctx.Done():
			logging.Default().Info("Register snapshot worker context cancelled")
			return
		}
	}
}

// RunOnce archives every workspace once. A failing workspace does not stop
// the others. It returns the number of snapshots saved.
func (w *SnapshotWorker) RunOnce(ctx context.Context) int {
	saved := 0
	at := w.now()
	for _, ws := range w.workspaces {
		ok, err := w.snapshot(ctx, ws.ID, at)
		if err != nil {
			_ = errutil.Handle(ctx, err, "register snapshot failed (will retry next interval)")
			continue
		}
		if ok {
			saved++
		}
	}
	return saved
}

// snapshot reports false when the register is empty and nothing was saved
func (w *SnapshotWorker) snapshot(ctx context.Context, workspaceID string, at time.Time) (bool, error) {
	rows, err := w.source.BuildFullRegister(ctx, workspaceID)
	if errors.Is(err, usecase.ErrEmptyRegister) {
		logging.From(ctx).Debug("register is empty, snapshot skipped", "workspace_id", workspaceID)
		return false, nil
	}
	if err != nil {
		return false, goerr.Wrap(err, "failed to build register", goerr.V("workspace_id", workspaceID))
	}

	if _, err := w.store.Save(ctx, workspaceID, rows, at); err != nil {
		return false, goerr.Wrap(err, "failed to save snapshot", goerr.V("workspace_id", workspaceID))
	}
	return true, nil
}
