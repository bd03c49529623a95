package scenario

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dataflowgraph/sgn/core"
	"github.com/dataflowgraph/sgn/elements/sinks"
	"github.com/dataflowgraph/sgn/elements/sources"
	"github.com/dataflowgraph/sgn/elements/transforms"
)

// TestMultiBranchGraphFansOutAcrossTwoWaves builds two sources feeding four
// transforms that fan out into five sink pads split across two sinks,
// exercising fan-out coherence (a linked/duplicated source pad's frame
// reaches every downstream sink pad unchanged) and per-branch ordering
// across two frames - the Go analogue of spec.md's "Multi-branch graph"
// scenario.
func TestMultiBranchGraphFansOutAcrossTwoWaves(t *testing.T) {
	p := core.NewPipeline()

	src1 := sources.NewFakeSrc("src1", []string{"H1"}, 2)
	src2 := sources.NewFakeSrc("src2", []string{"L1"}, 2)

	t1 := transforms.NewFakeTransform("t1", []string{"H1"}, []string{"H1"})
	t2 := transforms.NewFakeTransform("t2", []string{"L1"}, []string{"L1", "L1b"})
	t3 := transforms.NewFakeTransform("t3", []string{"H1"}, []string{"H1"})
	t4 := transforms.NewFakeTransform("t4", []string{"H1", "L1"}, []string{"H1"})

	sinkA := sinks.NewFakeSink("sinkA", []string{"a1", "a2"})
	sinkB := sinks.NewFakeSink("sinkB", []string{"b1", "b2", "b3"})

	require.NoError(t, p.Insert(src1, src2, t1, t2, t3, t4, sinkA, sinkB))
	require.NoError(t, p.Link(map[string]string{
		"t1:sink:H1": "src1:src:H1",
		"t3:sink:H1": "src1:src:H1", // fan-out: src1 feeds both t1 and t3
		"t2:sink:L1": "src2:src:L1",

		"sinkA:sink:a1": "t1:src:H1",
		"sinkA:sink:a2": "t3:src:H1",
		"sinkB:sink:b1": "t2:src:L1",
		"sinkB:sink:b2": "t2:src:L1b",

		"t4:sink:H1":    "t1:src:H1", // fan-out again: t1's output also feeds t4
		"t4:sink:L1":    "t2:src:L1",
		"sinkB:sink:b3": "t4:src:H1",
	}))

	out := captureStdout(t, func() {
		require.NoError(t, p.Run(context.Background()))
	})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 10)

	unmarked, eosMarked := 0, 0
	for _, l := range lines {
		assert.Contains(t, l, "frame flow:  ")
		if strings.HasSuffix(l, "  EOS") {
			eosMarked++
		} else {
			unmarked++
		}
	}
	assert.Equal(t, 5, unmarked)
	assert.Equal(t, 5, eosMarked)
}
