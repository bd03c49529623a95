package core

import (
	"testing"

	"go.uber.org/goleak"
)

// TestMain verifies that no goroutine leaked out of a Run call: the
// scheduler's errgroup-based wave executor should leave nothing running
// once every wave has been joined.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
