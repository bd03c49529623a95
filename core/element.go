package core

import (
	"context"
	"fmt"
	"sync"
)

// Element is implemented by SourceElement, TransformElement and
// SinkElement. The unexported isElement marker seals it to this package's
// three variants.
type Element interface {
	Name() string
	ID() string
	Pads() []Pad
	isElement()
	dependencyEdges() map[Pad]map[Pad]struct{}
}

// SourceHooks is implemented by user types embedding *SourceElement. New is
// invoked once per frame for each of the element's source pads.
type SourceHooks interface {
	New(ctx context.Context, pad *SourcePad) (Frame, error)
}

// TransformHooks is implemented by user types embedding *TransformElement.
// Pull is invoked once per frame for each sink pad (fed by the linked
// upstream source pad); Transform is invoked once per frame for each source
// pad, after every one of this element's sink pads has been pulled.
type TransformHooks interface {
	Pull(ctx context.Context, pad *SinkPad, frame Frame) error
	Transform(ctx context.Context, pad *SourcePad) (Frame, error)
}

// SinkHooks is implemented by user types embedding *SinkElement. Idiomatic
// implementations call pad's owning element's MarkEOS when frame.EOS is
// true.
type SinkHooks interface {
	Pull(ctx context.Context, pad *SinkPad, frame Frame) error
}

// SourceElement exclusively owns one or more source pads and no sink pads.
// Construct one with NewSourceElement, supplying a SourceHooks
// implementation for the New callback.
type SourceElement struct {
	UniqueID
	sourcePads     []*SourcePad
	sourcePadNames []string
}

func (e *SourceElement) isElement() {}

// Pads returns every pad owned by this element, in construction order.
func (e *SourceElement) Pads() []Pad {
	pads := make([]Pad, len(e.sourcePads))
	for i, p := range e.sourcePads {
		pads[i] = p
	}
	return pads
}

// SourcePads returns the element's source pads in construction order.
func (e *SourceElement) SourcePads() []*SourcePad { return e.sourcePads }

// NewSourceElement constructs a SourceElement named name with one source
// pad per entry in sourcePadNames, each full-named
// "<name>:src:<pad-name>" per spec.md §4.3, wired to hooks.New. The
// element's dependency edges (see dependencyEdges) give every source pad an
// empty predecessor set: a SourceElement's pads have no intra-element
// predecessors.
func NewSourceElement(name string, sourcePadNames []string, hooks SourceHooks) *SourceElement {
	if len(sourcePadNames) == 0 {
		panic("sgn: SourceElement " + name + " must declare at least one source pad")
	}
	e := &SourceElement{UniqueID: newUniqueID(name), sourcePadNames: sourcePadNames}
	for _, n := range sourcePadNames {
		pad := &SourcePad{
			UniqueID:    newUniqueID(fmt.Sprintf("%s:src:%s", e.Name(), n)),
			elementName: e.Name(),
			produce:     hooks.New,
		}
		e.sourcePads = append(e.sourcePads, pad)
	}
	return e
}

// Srcs returns the element's source pads keyed by their short channel name
// (the name passed to NewSourceElement, not the full "elem:src:channel"
// pad name) - the Go analogue of the original's srcs dict, used by the
// groups package to select individual pads out of a multi-pad element.
func (e *SourceElement) Srcs() map[string]*SourcePad {
	out := make(map[string]*SourcePad, len(e.sourcePads))
	for i, n := range e.sourcePadNames {
		out[n] = e.sourcePads[i]
	}
	return out
}

// dependencyEdges returns the intra-element edges to merge into the
// pipeline's pad-dependency graph at Insert time.
func (e *SourceElement) dependencyEdges() map[Pad]map[Pad]struct{} {
	edges := make(map[Pad]map[Pad]struct{}, len(e.sourcePads))
	for _, p := range e.sourcePads {
		edges[Pad(p)] = map[Pad]struct{}{}
	}
	return edges
}

// TransformElement exclusively owns one or more source pads and one or more
// sink pads. Every source pad depends on every sink pad of the same
// element (spec.md §4.3): if finer-grained intra-element dependencies are
// needed, split the work across multiple TransformElements.
type TransformElement struct {
	UniqueID
	sourcePads     []*SourcePad
	sinkPads       []*SinkPad
	sourcePadNames []string
	sinkPadNames   []string
}

func (e *TransformElement) isElement() {}

// Pads returns every pad owned by this element, source pads first.
func (e *TransformElement) Pads() []Pad {
	pads := make([]Pad, 0, len(e.sourcePads)+len(e.sinkPads))
	for _, p := range e.sourcePads {
		pads = append(pads, p)
	}
	for _, p := range e.sinkPads {
		pads = append(pads, p)
	}
	return pads
}

// SourcePads returns the element's source pads in construction order.
func (e *TransformElement) SourcePads() []*SourcePad { return e.sourcePads }

// SinkPads returns the element's sink pads in construction order.
func (e *TransformElement) SinkPads() []*SinkPad { return e.sinkPads }

// NewTransformElement constructs a TransformElement named name with one
// source pad per sourcePadNames entry (wired to hooks.Transform) and one
// sink pad per sinkPadNames entry (wired to hooks.Pull), full-named per
// spec.md §4.3's "<name>:src:<pad-name>" / "<name>:sink:<pad-name>"
// convention.
func NewTransformElement(name string, sourcePadNames, sinkPadNames []string, hooks TransformHooks) *TransformElement {
	if len(sourcePadNames) == 0 || len(sinkPadNames) == 0 {
		panic("sgn: TransformElement " + name + " must declare at least one source pad and one sink pad")
	}
	e := &TransformElement{UniqueID: newUniqueID(name), sourcePadNames: sourcePadNames, sinkPadNames: sinkPadNames}
	for _, n := range sourcePadNames {
		e.sourcePads = append(e.sourcePads, &SourcePad{
			UniqueID:    newUniqueID(fmt.Sprintf("%s:src:%s", e.Name(), n)),
			elementName: e.Name(),
			produce:     hooks.Transform,
		})
	}
	for _, n := range sinkPadNames {
		e.sinkPads = append(e.sinkPads, &SinkPad{
			UniqueID:    newUniqueID(fmt.Sprintf("%s:sink:%s", e.Name(), n)),
			elementName: e.Name(),
			consume:     hooks.Pull,
		})
	}
	return e
}

// Srcs returns the element's source pads keyed by short channel name.
func (e *TransformElement) Srcs() map[string]*SourcePad {
	out := make(map[string]*SourcePad, len(e.sourcePads))
	for i, n := range e.sourcePadNames {
		out[n] = e.sourcePads[i]
	}
	return out
}

// Snks returns the element's sink pads keyed by short channel name.
func (e *TransformElement) Snks() map[string]*SinkPad {
	out := make(map[string]*SinkPad, len(e.sinkPads))
	for i, n := range e.sinkPadNames {
		out[n] = e.sinkPads[i]
	}
	return out
}

func (e *TransformElement) dependencyEdges() map[Pad]map[Pad]struct{} {
	edges := make(map[Pad]map[Pad]struct{}, len(e.sourcePads)+len(e.sinkPads))
	sinks := map[Pad]struct{}{}
	for _, p := range e.sinkPads {
		sinks[Pad(p)] = struct{}{}
		if _, ok := edges[Pad(p)]; !ok {
			edges[Pad(p)] = map[Pad]struct{}{}
		}
	}
	for _, p := range e.sourcePads {
		preds := make(map[Pad]struct{}, len(sinks))
		for s := range sinks {
			preds[s] = struct{}{}
		}
		edges[Pad(p)] = preds
	}
	return edges
}

// SinkElement exclusively owns one or more sink pads and no source pads. It
// owns the EOS table described in spec.md §3: each sink pad starts
// unflagged, and the element is at EOS once any of its sink pads has been
// marked.
type SinkElement struct {
	UniqueID
	sinkPads     []*SinkPad
	sinkPadNames []string
	mu           sync.Mutex
	atEOS        map[*SinkPad]bool
}

func (e *SinkElement) isElement() {}

// Pads returns every pad owned by this element.
func (e *SinkElement) Pads() []Pad {
	pads := make([]Pad, len(e.sinkPads))
	for i, p := range e.sinkPads {
		pads[i] = p
	}
	return pads
}

// SinkPads returns the element's sink pads in construction order.
func (e *SinkElement) SinkPads() []*SinkPad { return e.sinkPads }

// NewSinkElement constructs a SinkElement named name with one sink pad per
// entry in sinkPadNames, wired to hooks.Pull.
func NewSinkElement(name string, sinkPadNames []string, hooks SinkHooks) *SinkElement {
	if len(sinkPadNames) == 0 {
		panic("sgn: SinkElement " + name + " must declare at least one sink pad")
	}
	e := &SinkElement{UniqueID: newUniqueID(name), sinkPadNames: sinkPadNames, atEOS: map[*SinkPad]bool{}}
	for _, n := range sinkPadNames {
		pad := &SinkPad{
			UniqueID:    newUniqueID(fmt.Sprintf("%s:sink:%s", e.Name(), n)),
			elementName: e.Name(),
			consume:     hooks.Pull,
		}
		e.sinkPads = append(e.sinkPads, pad)
		e.atEOS[pad] = false
	}
	return e
}

// Snks returns the element's sink pads keyed by short channel name.
func (e *SinkElement) Snks() map[string]*SinkPad {
	out := make(map[string]*SinkPad, len(e.sinkPads))
	for i, n := range e.sinkPadNames {
		out[n] = e.sinkPads[i]
	}
	return out
}

func (e *SinkElement) dependencyEdges() map[Pad]map[Pad]struct{} {
	edges := make(map[Pad]map[Pad]struct{}, len(e.sinkPads))
	for _, p := range e.sinkPads {
		edges[Pad(p)] = map[Pad]struct{}{}
	}
	return edges
}

// MarkEOS flags pad as having delivered end-of-stream. Idiomatic Pull
// implementations call this when frame.EOS is true. Safe to call
// concurrently: sibling sink pads of the same element can be invoked from
// different goroutines within the same scheduler wave.
func (e *SinkElement) MarkEOS(pad *SinkPad) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.atEOS[pad] = true
}

// AtEOS reports whether any of this element's sink pads has been marked
// end-of-stream. The element never un-marks a pad within a run.
func (e *SinkElement) AtEOS() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, v := range e.atEOS {
		if v {
			return true
		}
	}
	return false
}
