// Package sources provides reference SourceElement implementations used in
// examples and tests, grounded on original_source/src/sgn/sources.py.
package sources

import (
	"context"
	"fmt"
	"sync"

	"github.com/dataflowgraph/sgn/core"
)

// FakeSrc emits NumFrames frames per source pad, each tagged with a
// "name" metadata entry of the form "<pad-name>[<index>]", flagging EOS on
// the last one - a direct translation of FakeSrc.new.
type FakeSrc struct {
	NumFrames int

	mu  sync.Mutex
	cnt map[*core.SourcePad]int
}

// New implements core.SourceHooks.
func (f *FakeSrc) New(ctx context.Context, pad *core.SourcePad) (core.Frame, error) {
	f.mu.Lock()
	if f.cnt == nil {
		f.cnt = map[*core.SourcePad]int{}
	}
	n := f.cnt[pad]
	f.cnt[pad] = n + 1
	f.mu.Unlock()

	frame := core.NewFrame()
	frame.Metadata["name"] = fmt.Sprintf("%s[%d]", pad.Name(), n)
	frame.EOS = n >= f.NumFrames-1
	return frame, nil
}

// NewFakeSrc constructs a SourceElement named name with one source pad per
// entry in sourcePadNames, each emitting numFrames frames before EOS.
func NewFakeSrc(name string, sourcePadNames []string, numFrames int) *core.SourceElement {
	return core.NewSourceElement(name, sourcePadNames, &FakeSrc{NumFrames: numFrames})
}
