package core

import "fmt"

// Pipeline is the registry of elements and pads by unique name, the merged
// pad-dependency graph, and the entry point that drives the graph to global
// EOS. Process-wide name uniqueness (within this Pipeline instance) is
// enforced at Insert time: the names of every element and every pad are
// interned into a single map, and duplicates fail the insert (spec.md §3's
// "Pipeline registry").
type Pipeline struct {
	registry map[string]any // element name or pad name -> Element or Pad
	graph    *depGraph
	sinks    []*SinkElement
	elements []Element
}

// NewPipeline constructs an empty Pipeline with an empty registry and an
// empty dependency graph.
func NewPipeline() *Pipeline {
	return &Pipeline{
		registry: map[string]any{},
		graph:    newDepGraph(),
	}
}

// Insert registers one or more elements by unique name, merging each
// element's intra-element dependency edges into the pipeline's graph. It
// fails if an element or any of its pads is already registered, matching
// spec.md §8 invariant 1 (uniqueness).
func (p *Pipeline) Insert(elements ...Element) error {
	for _, e := range elements {
		if e == nil {
			return newPipelineError(StageConfiguration, fmt.Errorf("nil element"))
		}
		if _, exists := p.registry[e.Name()]; exists {
			return newPipelineError(StageConfiguration,
				fmt.Errorf("element name %q is already in use in this pipeline", e.Name()))
		}
		for _, pad := range e.Pads() {
			if _, exists := p.registry[pad.Name()]; exists {
				return newPipelineError(StageConfiguration,
					fmt.Errorf("pad name %q is already in use in this pipeline", pad.Name()))
			}
		}

		p.registry[e.Name()] = e
		for _, pad := range e.Pads() {
			p.registry[pad.Name()] = pad
		}
		if sink, ok := e.(*SinkElement); ok {
			p.sinks = append(p.sinks, sink)
		}
		p.elements = append(p.elements, e)
		p.graph.merge(e.dependencyEdges())
	}
	return nil
}

// InsertLinked is Insert followed by Link(linkMap), matching spec.md §6's
// "Pipeline.insert(elem, …, link_map=?)" contract where the link map, if
// present, is applied immediately after registration.
func (p *Pipeline) InsertLinked(linkMap map[string]string, elements ...Element) error {
	if err := p.Insert(elements...); err != nil {
		return err
	}
	return p.Link(linkMap)
}

// Link resolves each sinkName -> sourceName entry against the name
// registry, links the sink pad to the source pad, and merges the resulting
// edge into the pipeline's dependency graph. It fails if either name is
// unknown or resolves to the wrong pad variant.
func (p *Pipeline) Link(linkMap map[string]string) error {
	for sinkName, sourceName := range linkMap {
		sinkAny, ok := p.registry[sinkName]
		if !ok {
			return newPipelineError(StageConfiguration,
				fmt.Errorf("link_map refers to unknown sink pad %q", sinkName))
		}
		sourceAny, ok := p.registry[sourceName]
		if !ok {
			return newPipelineError(StageConfiguration,
				fmt.Errorf("link_map refers to unknown source pad %q", sourceName))
		}
		sinkPad, ok := sinkAny.(*SinkPad)
		if !ok {
			return newPipelineError(StageConfiguration,
				fmt.Errorf("%q is not a sink pad", sinkName))
		}
		sourcePad, ok := sourceAny.(*SourcePad)
		if !ok {
			return newPipelineError(StageConfiguration,
				fmt.Errorf("%q is not a source pad", sourceName))
		}
		p.graph.merge(sinkPad.link(sourcePad))
	}
	return nil
}

// Elements returns every element inserted so far, in insertion order.
func (p *Pipeline) Elements() []Element {
	out := make([]Element, len(p.elements))
	copy(out, p.elements)
	return out
}

// atEOS reports whether every SinkElement registered with this pipeline has
// at least one sink pad flagged end-of-stream; the pipeline-level
// termination predicate of spec.md §3.
func (p *Pipeline) atEOS() bool {
	if len(p.sinks) == 0 {
		return true
	}
	for _, s := range p.sinks {
		if !s.AtEOS() {
			return false
		}
	}
	return true
}
