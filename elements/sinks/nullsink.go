package sinks

import (
	"context"

	"github.com/dataflowgraph/sgn/core"
)

// NullSink discards every frame it receives, marking EOS when the frame has
// EOS set and doing nothing else - useful for pipelines under test where only upstream side effects
// (e.g. a FakeSink's printed output, or a subprocess worker's own logging)
// matter.
type NullSink struct {
	elem *core.SinkElement
}

// Pull implements core.SinkHooks.
func (n *NullSink) Pull(ctx context.Context, pad *core.SinkPad, frame core.Frame) error {
	if frame.EOS {
		n.elem.MarkEOS(pad)
	}
	return nil
}

// NewNullSink constructs a SinkElement named name with one sink pad per
// entry in sinkPadNames that silently discards every frame.
func NewNullSink(name string, sinkPadNames []string) *core.SinkElement {
	hooks := &NullSink{}
	elem := core.NewSinkElement(name, sinkPadNames, hooks)
	hooks.elem = elem
	return elem
}
