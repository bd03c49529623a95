package sources

import (
	"context"
	"sync"

	"github.com/dataflowgraph/sgn/core"
)

// IterSource emits one frame per pad per call to New by pulling the next
// value off a per-pad Go iterator (a closure returning (value, ok)),
// flagging EOS once the iterator is exhausted. It generalizes FakeSrc's
// fixed-count counting into arbitrary finite sequences, matching the
// IterSource helper the original_source test suite exercises for building
// quick example pipelines.
type IterSource struct {
	mu   sync.Mutex
	next map[*core.SourcePad]func() (any, bool)
}

// NewIterSource constructs a SourceElement named name with one source pad
// per key of values; each pad's New call yields successive elements of its
// slice, tagged under the "value" metadata key. Once the slice is used up
// (immediately if it is empty), New yields a frame with no "value" entry
// and EOS set; the frame carrying the last element does not have EOS set.
func NewIterSource(name string, values map[string][]any) *core.SourceElement {
	padNames := make([]string, 0, len(values))
	for n := range values {
		padNames = append(padNames, n)
	}
	it := &IterSource{next: map[*core.SourcePad]func() (any, bool){}}
	elem := core.NewSourceElement(name, padNames, it)

	srcs := elem.Srcs()
	for n, vals := range values {
		vals := vals
		i := 0
		it.next[srcs[n]] = func() (any, bool) {
			if i >= len(vals) {
				return nil, false
			}
			v := vals[i]
			i++
			return v, true
		}
	}
	return elem
}

// New implements core.SourceHooks.
func (s *IterSource) New(ctx context.Context, pad *core.SourcePad) (core.Frame, error) {
	s.mu.Lock()
	fn := s.next[pad]
	s.mu.Unlock()

	frame := core.NewFrame()
	v, ok := fn()
	if !ok {
		frame.EOS = true
		return frame, nil
	}
	frame.Metadata["value"] = v
	return frame, nil
}
