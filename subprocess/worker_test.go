package subprocess

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dataflowgraph/sgn/core"
)

func echoFunc(ctx context.Context, w *Worker) error {
	select {
	case f := <-w.InQueue:
		w.OutQueue <- f
		return nil
	case <-time.After(10 * time.Millisecond):
		return nil
	}
}

func TestWorkerStopEndsRunLoop(t *testing.T) {
	w := NewWorker("echo", 4, nil)
	ctx := context.Background()

	done := make(chan struct{})
	go func() {
		w.run(ctx, echoFunc)
		close(done)
	}()

	w.Stop()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop")
	}
	assert.True(t, w.Terminated())
}

func TestWorkerShutdownDrainsPendingInput(t *testing.T) {
	w := NewWorker("echo", 8, nil)
	w.drainBackoff.Next(0) // warm path, no assertion

	ctx := context.Background()
	go w.run(ctx, echoFunc)

	for i := 0; i < 3; i++ {
		w.InQueue <- core.Frame{Metadata: map[string]any{"i": i}}
	}

	out, err := w.Shutdown(2 * time.Second)
	require.NoError(t, err)
	assert.Len(t, out, 3)
}

func TestWorkerShutdownTimesOutWhenWedged(t *testing.T) {
	w := NewWorker("wedged", 1, nil)
	// No goroutine calling w.run at all, so terminated never fires.
	_, err := w.Shutdown(50 * time.Millisecond)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timeout exceeded")
}

func TestWorkerRecoversFromPanickingFunc(t *testing.T) {
	w := NewWorker("panicky", 1, nil)
	calls := 0
	fn := func(ctx context.Context, w *Worker) error {
		calls++
		if calls == 1 {
			panic("boom")
		}
		w.Stop()
		return nil
	}

	ctx := context.Background()
	done := make(chan struct{})
	go func() {
		w.run(ctx, fn)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker never recovered from panic and stopped")
	}
	assert.GreaterOrEqual(t, calls, 2)
}
