// Package util provides internal channel helpers used by the subprocess
// package: context-aware sends and an
// idempotent close-once completion channel. External code should prefer
// the core, subprocess, and elements packages; these are primarily here so
// those packages don't each reimplement the same select{} boilerplate.
package util

import (
	"context"
	"sync"
)

// Send attempts to send elem on out, returning early without sending if ctx
// is cancelled first.
func Send[T any](ctx context.Context, elem T, out chan<- T) {
	select {
	case <-ctx.Done():
		return
	case out <- elem:
	}
}

// SendMany sends each of elems on out in order, stopping early (without
// sending the remainder) if ctx is cancelled.
func SendMany[T any](ctx context.Context, elems []T, out chan<- T) {
	for _, elem := range elems {
		select {
		case <-ctx.Done():
			return
		case out <- elem:
		}
	}
}

// NewCompleteChannel returns a channel that is closed exactly once, and the
// idempotent function that closes it - the building block for the
// subprocess package's one-shot event type.
func NewCompleteChannel() (chan struct{}, func()) {
	complete := make(chan struct{})
	once := sync.Once{}
	completeFn := func() {
		once.Do(func() {
			close(complete)
		})
	}
	return complete, completeFn
}
