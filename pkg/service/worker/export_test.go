package worker

import "time"

// SetNow replaces the clock for testing
func (w *SnapshotWorker) SetNow(now func() time.Time) {
	w.now = now
}
