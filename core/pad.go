package core

import (
	"context"
	"fmt"
)

// Pad is implemented by SourcePad and SinkPad. It is the scheduling unit:
// one Pad equals one node in the execution DAG. Users should never
// implement Pad themselves; the unexported isPad marker keeps the interface
// sealed to this package's two variants, mirroring the original design's
// "developers should not subclass Pad directly."
type Pad interface {
	Name() string
	ID() string
	isPad()
	execute(ctx context.Context) error
}

// SourcePad carries the most recent output Frame of the current frame
// cycle. It is wired, at element-construction time, to the owning
// element's producer hook (SourceElement.New or TransformElement.Transform).
type SourcePad struct {
	UniqueID
	elementName string
	produce     func(ctx context.Context, pad *SourcePad) (Frame, error)
	output      Frame
}

func (p *SourcePad) isPad() {}

// Output returns the Frame most recently produced on this pad during the
// current frame cycle. It is only meaningful after execute has run at least
// once; linked SinkPads read it through the scheduler's dependency
// ordering, never directly.
func (p *SourcePad) Output() Frame { return p.output }

func (p *SourcePad) execute(ctx context.Context) error {
	frame, err := p.produce(ctx, p)
	if err != nil {
		return fmt.Errorf("pad %q: %w", p.Name(), err)
	}
	p.output = frame.WithGraphHop(p.Name())
	return nil
}

// SinkPad holds a pointer to the linked SourcePad (nil before linking) and
// the most recent input Frame. It is wired, at element-construction time,
// to the owning element's consumer hook (TransformElement.Pull or
// SinkElement.Pull).
type SinkPad struct {
	UniqueID
	elementName string
	other       *SourcePad
	input       Frame
	consume     func(ctx context.Context, pad *SinkPad, frame Frame) error
}

func (p *SinkPad) isPad() {}

// Input returns the Frame most recently delivered to this pad during the
// current frame cycle.
func (p *SinkPad) Input() Frame { return p.input }

// Linked reports whether link has been called on this pad.
func (p *SinkPad) Linked() bool { return p.other != nil }

// link stores the upstream SourcePad and returns the one-element
// dependency entry {self: {source}} that the caller merges into the
// pipeline's pad-dependency graph.
func (p *SinkPad) link(source *SourcePad) map[Pad]map[Pad]struct{} {
	p.other = source
	return map[Pad]map[Pad]struct{}{
		Pad(p): {Pad(source): {}},
	}
}

func (p *SinkPad) execute(ctx context.Context) error {
	if p.other == nil {
		return fmt.Errorf("sink pad %q has not been linked", p.Name())
	}
	p.input = p.other.output.WithGraphHop(p.Name())
	if err := p.consume(ctx, p, p.input); err != nil {
		return fmt.Errorf("pad %q: %w", p.Name(), err)
	}
	return nil
}
