package subprocess

import "github.com/dataflowgraph/sgn/util"

// event is a one-shot, idempotent flag: once Set, IsSet is true forever and
// every receiver on Wait's channel unblocks. It is the Go analogue of
// multiprocessing.Event, built directly on util.NewCompleteChannel's
// close-exactly-once channel pair.
type event struct {
	ch    chan struct{}
	setFn func()
}

func newEvent() *event {
	ch, cancel := util.NewCompleteChannel()
	return &event{ch: ch, setFn: cancel}
}

// Set flags the event. Safe to call more than once or concurrently.
func (e *event) Set() {
	e.setFn()
}

// IsSet reports whether Set has been called.
func (e *event) IsSet() bool {
	select {
	case <-e.ch:
		return true
	default:
		return false
	}
}

// Wait returns a channel that is closed once Set has been called.
func (e *event) Wait() <-chan struct{} {
	return e.ch
}
