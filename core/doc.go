// Package core implements the sgn graph execution engine: the data model of
// pads, elements, links and frames, the topological scheduler that drives a
// cyclic-free, per-frame DAG traversal, and the EOS termination protocol.
//
// Users assemble a Pipeline out of Elements (SourceElement, TransformElement,
// SinkElement), each exposing named Pads, link sink pads to source pads by
// name, and call Pipeline.Run to drive every element to quiescence.
//
// Core Concepts:
//   - Frame: the immutable unit of data carried between pads, tagged with an
//     end-of-stream flag, a gap flag, and opaque metadata.
//   - Pad: the scheduling unit. A SourcePad synthesizes a Frame on demand; a
//     SinkPad reads the Frame from its linked SourcePad and delivers it to
//     the owning element.
//   - Element: a named group of pads sharing user-supplied hooks (New,
//     Transform, Pull) and declaring intra-element scheduling dependencies.
//   - Pipeline: the registry of elements/pads by unique name, the merged
//     dependency graph, and the Run loop that drives frames to completion.
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
package core
