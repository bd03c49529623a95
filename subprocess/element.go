package subprocess

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/dataflowgraph/sgn/core"
	"github.com/dataflowgraph/sgn/util"
)

// QueueHooks implements core.TransformHooks and core.SinkHooks by moving
// frames through a Worker's queues with no further processing on the frame
// scheduling goroutine - Pull enqueues, Transform dequeues - exactly the
// division of labor subprocess.py's docstring examples show: "pull" hands
// data to the worker, "new"/"sub_process_internal" do the actual work off
// to the side.
type QueueHooks struct {
	Worker *Worker
	eos    *atomic.Bool
}

// NewQueueHooks wires hooks to w. The returned value tracks whether an EOS
// frame has been seen, for CheckTerminated's premature-termination check.
func NewQueueHooks(w *Worker) *QueueHooks {
	return &QueueHooks{Worker: w, eos: &atomic.Bool{}}
}

// Pull implements core.TransformHooks and core.SinkHooks: it hands frame to
// the worker's input queue, blocking (subject to ctx) if the queue is full -
// the bounded-queue back-pressure subprocess.py gets from
// multiprocessing.Queue(maxsize=...).
func (h *QueueHooks) Pull(ctx context.Context, pad *core.SinkPad, frame core.Frame) error {
	if frame.EOS {
		h.eos.Store(true)
	}
	util.Send(ctx, frame, h.Worker.InQueue)
	return ctx.Err()
}

// Transform implements core.TransformHooks: it takes the next frame the
// worker produced, blocking (subject to ctx and worker termination) until
// one is available.
func (h *QueueHooks) Transform(ctx context.Context, pad *core.SourcePad) (core.Frame, error) {
	select {
	case f := <-h.Worker.OutQueue:
		return f, nil
	case <-h.Worker.terminated.Wait():
		return core.Frame{EOS: true}, nil
	case <-ctx.Done():
		return core.Frame{}, ctx.Err()
	}
}

// SawEOS reports whether Pull has ever been called with an EOS frame.
func (h *QueueHooks) SawEOS() bool { return h.eos.Load() }

// SubProcessTransformElement pairs a core.TransformElement with the Worker
// that performs its Transform step off the frame-scheduling goroutine - the
// analogue of subprocess.py's SubProcessTransformElement.
type SubProcessTransformElement struct {
	*core.TransformElement
	Worker *Worker
	hooks  *QueueHooks
}

// NewSubProcessTransformElement constructs a TransformElement backed by
// worker, using QueueHooks to move frames across the queue boundary. Start
// the worker's run loop by registering it (and the Func implementing
// sub_process_internal's logic) with a Supervisor before the pipeline runs.
func NewSubProcessTransformElement(name string, sourcePadNames, sinkPadNames []string, worker *Worker) *SubProcessTransformElement {
	hooks := NewQueueHooks(worker)
	return &SubProcessTransformElement{
		TransformElement: core.NewTransformElement(name, sourcePadNames, sinkPadNames, hooks),
		Worker:           worker,
		hooks:            hooks,
	}
}

// CheckTerminated returns an error if the backing worker exited before this
// element observed EOS - subprocess.py's "internal()" premature-termination
// guard. Call it after each frame, or periodically from a supervising
// goroutine.
func (e *SubProcessTransformElement) CheckTerminated() error {
	if e.Worker.Terminated() && !e.hooks.SawEOS() {
		return &core.PipelineError{Stage: core.StageSubprocess,
			Err: fmt.Errorf("subprocess: worker for transform element %q stopped before EOS", e.Name())}
	}
	return nil
}

// SubProcessSinkElement pairs a core.SinkElement with the Worker that
// consumes its input off the frame-scheduling goroutine - the analogue of
// subprocess.py's SubProcessSinkElement.
type SubProcessSinkElement struct {
	*core.SinkElement
	Worker *Worker
	hooks  *sinkQueueHooks
}

type sinkQueueHooks struct {
	elem *core.SinkElement
	*QueueHooks
}

func (h *sinkQueueHooks) Pull(ctx context.Context, pad *core.SinkPad, frame core.Frame) error {
	if frame.EOS {
		h.elem.MarkEOS(pad)
	}
	return h.QueueHooks.Pull(ctx, pad, frame)
}

// NewSubProcessSinkElement constructs a SinkElement backed by worker; Pull
// marks EOS on the owning element (as every SinkHooks implementation must)
// before forwarding the frame to the worker's input queue.
func NewSubProcessSinkElement(name string, sinkPadNames []string, worker *Worker) *SubProcessSinkElement {
	qh := NewQueueHooks(worker)
	hooks := &sinkQueueHooks{QueueHooks: qh}
	elem := core.NewSinkElement(name, sinkPadNames, hooks)
	hooks.elem = elem
	return &SubProcessSinkElement{SinkElement: elem, Worker: worker, hooks: hooks}
}

// CheckTerminated returns an error if the backing worker exited before this
// element reached EOS.
func (e *SubProcessSinkElement) CheckTerminated() error {
	if e.Worker.Terminated() && !e.AtEOS() {
		return &core.PipelineError{Stage: core.StageSubprocess,
			Err: fmt.Errorf("subprocess: worker for sink element %q stopped before EOS", e.Name())}
	}
	return nil
}
