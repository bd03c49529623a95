// Package transforms provides reference TransformElement implementations
// used in examples and tests, grounded on
// original_source/src/sgn/transforms/__init__.py.
package transforms

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/dataflowgraph/sgn/core"
)

// FakeTransform buffers the most recent frame on each of its sink pads and,
// on each source pad, produces a frame whose "name" metadata traces the
// graph history: "<input1 name>+<input2 name>... -> <source-pad-name>" -
// a direct translation of FakeTransform.get_buffer/transform_buffer. EOS
// propagates forward if any buffered input frame is at EOS.
type FakeTransform struct {
	mu    sync.Mutex
	inbuf map[*core.SinkPad]core.Frame
}

// NewFakeTransform constructs a TransformElement named name with one sink
// pad per inChannels entry and one source pad per outChannels entry.
func NewFakeTransform(name string, inChannels, outChannels []string) *core.TransformElement {
	ft := &FakeTransform{inbuf: map[*core.SinkPad]core.Frame{}}
	return core.NewTransformElement(name, outChannels, inChannels, ft)
}

// Pull implements core.TransformHooks: it just buffers the incoming frame.
func (f *FakeTransform) Pull(ctx context.Context, pad *core.SinkPad, frame core.Frame) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inbuf[pad] = frame
	return nil
}

// Transform implements core.TransformHooks: it folds every buffered input
// frame's "name" metadata into a single trace string and forwards EOS if
// any input was at EOS.
func (f *FakeTransform) Transform(ctx context.Context, pad *core.SourcePad) (core.Frame, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	keys := make([]*core.SinkPad, 0, len(f.inbuf))
	for p := range f.inbuf {
		keys = append(keys, p)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Name() < keys[j].Name() })

	names := make([]string, 0, len(keys))
	eos := false
	for _, p := range keys {
		in := f.inbuf[p]
		n, _ := in.Metadata["name"].(string)
		names = append(names, n)
		if in.EOS {
			eos = true
		}
	}

	out := core.NewFrame()
	out.Metadata["name"] = fmt.Sprintf("%s -> %s", strings.Join(names, "+"), pad.Name())
	out.EOS = eos
	return out, nil
}
