package subprocess

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/dataflowgraph/sgn/backoff"
	"github.com/dataflowgraph/sgn/core"
)

// Func is the work a Worker performs on every iteration of its run loop,
// the Go analogue of sub_process_internal: it reads from InQueue and/or
// writes to OutQueue and returns quickly so the loop can re-check the
// stop/shutdown events. Returning an error is treated the same way a raised
// Exception was in the original - logged, and the loop continues - except
// for context cancellation, which stops the worker immediately.
type Func func(ctx context.Context, w *Worker) error

// Worker runs Func on a background goroutine, communicating with the frame
// scheduling goroutine through bounded channels. It is shared supporting
// infrastructure for SubProcessTransformElement and SubProcessSinkElement.
type Worker struct {
	Name string

	InQueue  chan core.Frame
	OutQueue chan core.Frame

	stop       *event
	shutdown   *event
	terminated *event

	drainBackoff *backoff.Config
	emptyPolls   uint

	argdict map[string]any
}

// NewWorker constructs a Worker with the given queue depth (mirroring
// subprocess.py's queue_maxsize), ready to be registered with a Supervisor.
func NewWorker(name string, queueSize int, argdict map[string]any) *Worker {
	return &Worker{
		Name:         name,
		InQueue:      make(chan core.Frame, queueSize),
		OutQueue:     make(chan core.Frame, queueSize),
		stop:         newEvent(),
		shutdown:     newEvent(),
		terminated:   newEvent(),
		drainBackoff: backoff.NewConfig(250*time.Millisecond, time.Second, 0),
		argdict:      argdict,
	}
}

// Arg returns a value stashed in the worker's argdict (the Go analogue of
// process_argdict), matching ok=false if the key is absent.
func (w *Worker) Arg(key string) (any, bool) {
	v, ok := w.argdict[key]
	return v, ok
}

// Terminated reports whether the worker's run loop has exited.
func (w *Worker) Terminated() bool { return w.terminated.IsSet() }

// run is the translation of _SubProcessTransSink._sub_process_wrapper: loop
// calling fn until stop or shutdown is requested, then (if this was an
// orderly shutdown rather than a hard stop) drain whatever is left in
// InQueue, waiting up to three consecutive empty polls before giving up -
// the same heuristic the original flags as "FIXME: find a better way" and
// which this translation keeps verbatim rather than silently improving.
func (w *Worker) run(ctx context.Context, fn Func) {
	defer w.terminated.Set()

	for !w.shutdown.IsSet() && !w.stop.IsSet() {
		select {
		case <-ctx.Done():
			return
		default:
		}
		w.callOnce(ctx, fn)
	}

	if w.shutdown.IsSet() && !w.stop.IsSet() {
		w.drain(ctx, fn)
	}
}

// callOnce runs fn once, recovering from a panic the way the original
// catches and ignores KeyboardInterrupt: log it and let the loop continue,
// rather than letting one bad frame kill the worker.
func (w *Worker) callOnce(ctx context.Context, fn Func) {
	defer func() {
		if r := recover(); r != nil {
			log.Warn().Str("worker", w.Name).Interface("panic", r).
				Msg("subprocess worker recovered from panic, continuing")
		}
	}()
	if err := fn(ctx, w); err != nil && ctx.Err() == nil {
		log.Warn().Str("worker", w.Name).Err(err).Msg("subprocess worker iteration failed")
	}
}

func (w *Worker) drain(ctx context.Context, fn Func) {
	tries := uint(0)
	const maxEmptyPolls = 3
	for {
		if len(w.InQueue) > 0 {
			w.callOnce(ctx, fn)
			tries = 0
			continue
		}
		d, _ := w.drainBackoff.Next(0)
		select {
		case <-time.After(d):
		case <-ctx.Done():
			return
		}
		tries++
		if tries >= maxEmptyPolls {
			return
		}
	}
}

// Shutdown requests an orderly drain-then-stop: sub_process_shutdown in the
// original. It blocks until the worker reports Terminated (timeout<=0 waits
// indefinitely), then flushes any remaining OutQueue items and fully stops
// the worker. If timeout elapses first it returns an error without flushing
// OutQueue or setting the stop event.
func (w *Worker) Shutdown(timeout time.Duration) ([]core.Frame, error) {
	w.shutdown.Set()

	deadline := time.Now().Add(timeout)
	for !w.terminated.IsSet() {
		if timeout > 0 && time.Now().After(deadline) {
			return nil, fmt.Errorf("subprocess: timeout exceeded waiting for worker %q to terminate", w.Name)
		}
		time.Sleep(50 * time.Millisecond)
	}

	var out []core.Frame
drain:
	for {
		select {
		case f := <-w.OutQueue:
			out = append(out, f)
		default:
			break drain
		}
	}

	w.stop.Set()
	return out, nil
}

// Stop requests immediate termination without draining pending work, the
// Go analogue of setting process_stop directly.
func (w *Worker) Stop() { w.stop.Set() }
