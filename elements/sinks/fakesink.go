// Package sinks provides reference SinkElement implementations used in
// examples and tests, grounded on original_source/src/sgn/sinks.py.
package sinks

import (
	"context"
	"fmt"
	"sync"

	"github.com/dataflowgraph/sgn/core"
)

// FakeSink prints the frame flow it observes and marks EOS - a direct
// translation of FakeSink.pull. The printed line is part of this module's
// testable contract (see the elements/scenario tests), so its exact format - "frame flow:  %s -> %s" plus a "  EOS"
// suffix once the element has seen end-of-stream - is preserved verbatim.
type FakeSink struct {
	elem *core.SinkElement
	mu   sync.Mutex
}

// Pull implements core.SinkHooks.
func (f *FakeSink) Pull(ctx context.Context, pad *core.SinkPad, frame core.Frame) error {
	if frame.EOS {
		f.elem.MarkEOS(pad)
	}
	name, _ := frame.Metadata["name"].(string)
	msg := fmt.Sprintf("frame flow:  %s -> %s", name, pad.Name())
	if f.elem.AtEOS() {
		msg += "  EOS"
	}
	f.mu.Lock()
	fmt.Println(msg)
	f.mu.Unlock()
	return nil
}

// NewFakeSink constructs a SinkElement named name with one sink pad per
// entry in sinkPadNames, printing every frame it receives.
func NewFakeSink(name string, sinkPadNames []string) *core.SinkElement {
	hooks := &FakeSink{}
	elem := core.NewSinkElement(name, sinkPadNames, hooks)
	hooks.elem = elem
	return elem
}
