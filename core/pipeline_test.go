package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubSource always yields an immediate-EOS empty frame; it exists purely to
// exercise Pipeline wiring without depending on the elements/sources package
// (which itself depends on core, so importing it here would be circular).
type stubSource struct{}

func (stubSource) New(ctx context.Context, pad *SourcePad) (Frame, error) {
	f := NewFrame()
	f.EOS = true
	return f, nil
}

// stubSink records EOS on its owning element. elem is set after
// NewSinkElement returns, since the hooks value must exist before the
// element that owns it.
type stubSink struct {
	elem *SinkElement
}

func (s *stubSink) Pull(ctx context.Context, pad *SinkPad, frame Frame) error {
	if frame.EOS {
		s.elem.MarkEOS(pad)
	}
	return nil
}

func newStubSink(name string, padNames []string) *SinkElement {
	hooks := &stubSink{}
	elem := NewSinkElement(name, padNames, hooks)
	hooks.elem = elem
	return elem
}

func TestInsertRejectsDuplicateElementName(t *testing.T) {
	p := NewPipeline()
	src1 := NewSourceElement("src1", []string{"H1"}, stubSource{})
	src2 := NewSourceElement("src1", []string{"H2"}, stubSource{})

	require.NoError(t, p.Insert(src1))
	err := p.Insert(src2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already in use")
}

func TestInsertRejectsDuplicatePadName(t *testing.T) {
	p := NewPipeline()
	src1 := NewSourceElement("src1", []string{"H1"}, stubSource{})
	require.NoError(t, p.Insert(src1))

	dup := NewSourceElement("src2", []string{"H1"}, stubSource{})
	// Force a pad name collision against src1's pad by overwriting the
	// generated UniqueID before inserting.
	dup.sourcePads[0].UniqueID = newUniqueID("src1:src:H1")
	err := p.Insert(dup)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already in use")
}

func TestLinkUnknownNames(t *testing.T) {
	p := NewPipeline()
	snk := newStubSink("snk1", []string{"H1"})
	require.NoError(t, p.Insert(snk))

	err := p.Link(map[string]string{"does-not-exist": "snk1:sink:H1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown sink pad")

	src := NewSourceElement("src1", []string{"H1"}, stubSource{})
	require.NoError(t, p.Insert(src))
	err = p.Link(map[string]string{"snk1:sink:H1": "does-not-exist"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown source pad")
}

func TestLinkWrongPadType(t *testing.T) {
	p := NewPipeline()
	src := NewSourceElement("src1", []string{"H1"}, stubSource{})
	snk := newStubSink("snk1", []string{"H1"})
	require.NoError(t, p.Insert(src, snk))

	err := p.Link(map[string]string{"src1:src:H1": "snk1:sink:H1"})
	require.Error(t, err)
}

func TestInsertLinkedRunsToCompletion(t *testing.T) {
	p := NewPipeline()
	src := NewSourceElement("src1", []string{"H1"}, stubSource{})
	snk := newStubSink("snk1", []string{"H1"})
	require.NoError(t, p.InsertLinked(map[string]string{"snk1:sink:H1": "src1:src:H1"}, src, snk))

	err := p.Run(context.Background())
	require.NoError(t, err)
	assert.True(t, snk.AtEOS())
}
