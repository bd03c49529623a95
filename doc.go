// Package sgn is a streaming dataflow runtime built around a per-frame
// topological scheduler: pads, elements and links form a cycle-free graph,
// and every frame is scheduled by rebuilding that graph's topological waves
// from scratch.
//
// Subpackages:
//   - core: the pad/element/link/frame data model and the scheduler
//   - elements/sources, elements/sinks, elements/transforms: reference
//     element implementations (FakeSrc, FakeSink, FakeTransform, IterSource,
//     NullSink)
//   - elements/sqs: an SQS-backed SourceElement and SinkElement
//   - groups: pad-selection and multi-element linking sugar
//   - subprocess: bounded-queue worker isolation for elements whose work
//     should run off the frame-scheduling goroutine
//   - backoff: exponential backoff with jitter, used by subprocess and
//     available for any caller that needs a restart/retry delay schedule
//   - sgnlog, sgnconfig: structured logging and configuration
//
// Example usage:
//
//	src := sources.NewFakeSrc("src1", []string{"H1"}, 3)
//	trans := transforms.NewFakeTransform("trans1", []string{"H1"}, []string{"H1"})
//	snk := sinks.NewFakeSink("snk1", []string{"H1"})
//
//	p := core.NewPipeline()
//	p.Insert(src, trans, snk)
//	p.Link(map[string]string{
//	    "trans1:sink:H1": "src1:src:H1",
//	    "snk1:sink:H1":   "trans1:src:H1",
//	})
//	if err := p.Run(context.Background()); err != nil {
//	    log.Fatal(err)
//	}
package sgn
