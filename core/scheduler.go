package core

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Run drives the pipeline from its current state to global EOS, exactly as
// spec.md §4.4 describes:
//
//  1. Outer (frame) loop: continue while not every SinkElement is at EOS.
//     Each iteration rebuilds a fresh topological sort over the full
//     pad-dependency graph — intentionally stateless between frames.
//  2. Inner (wave) loop: request the set of currently-ready pads, submit
//     each as a concurrent task, wait for the wave to complete, then move
//     to the next wave. Concurrency within a wave is provided by
//     golang.org/x/sync/errgroup, which also gives the failure semantics
//     spec.md §4.4 requires: on an uncaught pad error, outstanding tasks in
//     the wave are awaited (errgroup.Wait blocks until every goroutine
//     returns) before the error is surfaced to the caller.
//
// A sink pad that was never linked is reported as a StageConfiguration
// PipelineError before any pad is invoked. A cycle in the merged dependency
// graph is reported as a StageGraph PipelineError before any pad in that
// frame is invoked (spec.md §8 invariant 2). An error returned by any pad's
// hook is wrapped as a StageRuntime PipelineError and aborts the run;
// nothing is retried automatically (spec.md §7).
func (p *Pipeline) Run(ctx context.Context) error {
	for _, e := range p.elements {
		for _, pad := range e.Pads() {
			if sp, ok := pad.(*SinkPad); ok && !sp.Linked() {
				return newPipelineError(StageConfiguration,
					fmt.Errorf("sink pad %q has not been linked", sp.Name()))
			}
		}
	}
	for !p.atEOS() {
		waves, err := p.graph.waves()
		if err != nil {
			return newPipelineError(StageGraph, err)
		}
		if err := runFrame(ctx, waves); err != nil {
			return newPipelineError(StageRuntime, err)
		}
	}
	return nil
}

// runFrame executes one full topological traversal of the graph: each wave
// of pads is launched concurrently and joined before the next wave starts,
// giving the ordering guarantees of spec.md §4.4 — a sink pad runs strictly
// after the source pad it links to, and within one TransformElement every
// sink pad runs before any of that element's source pads.
func runFrame(ctx context.Context, waves [][]Pad) error {
	for _, wave := range waves {
		g, gctx := errgroup.WithContext(ctx)
		for _, pad := range wave {
			pad := pad
			g.Go(func() error {
				return pad.execute(gctx)
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
	}
	return nil
}
