package async_test

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/riskregister/pkg/utils/async"
	"github.com/secmon-lab/riskregister/pkg/utils/logging"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestDispatch(t *testing.T) {
	t.Run("runs handler with caller logger", func(t *testing.T) {
		var buf syncBuffer
		ctx := logging.With(context.Background(), slog.New(slog.NewJSONHandler(&buf, nil)))

		done := make(chan struct{})
		async.Dispatch(ctx, func(ctx context.Context) error {
			defer close(done)
			logging.From(ctx).Info("inside handler")
			return nil
		})

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("handler did not run")
		}
		gt.String(t, buf.String()).Contains("inside handler")
	})

	t.Run("logs handler error and recovers panic", func(t *testing.T) {
		var buf syncBuffer
		ctx := logging.With(context.Background(), slog.New(slog.NewJSONHandler(&buf, nil)))

		async.Dispatch(ctx, func(ctx context.Context) error {
			return goerr.New("notify failed")
		})
		async.Dispatch(ctx, func(ctx context.Context) error {
			panic("unexpected")
		})

		deadline := time.Now().Add(time.Second)
		for time.Now().Before(deadline) {
			out := buf.String()
			if strings.Contains(out, "notify failed") && strings.Contains(out, "panic in async handler") {
				return
			}
			time.Sleep(10 * time.Millisecond)
		}
		t.Fatalf("expected both errors to be logged, got: %s", buf.String())
	})
}
