// Package groups provides link-map-building sugar recovered from
// original_source/src/sgn/groups.py: selecting a subset of an element's
// pads, and combining elements/selections into named src/sink pad maps that
// Pipeline.Link can consume directly.
package groups

import (
	"fmt"
	"sort"

	"github.com/dataflowgraph/sgn/core"
)

// srcProvider and sinkProvider narrow core.Element to the one capability
// groups actually need: a name-keyed map of the element's own pads. All
// three concrete element types satisfy one or both interfaces; this lets
// Selection and Group accept any of them uniformly.
type srcProvider interface {
	Srcs() map[string]*core.SourcePad
}

type sinkProvider interface {
	Snks() map[string]*core.SinkPad
}

// Selection represents a user-chosen subset of one element's pads, the Go
// analogue of groups.py's PadSelection.
type Selection struct {
	element core.Element
	names   map[string]struct{}
}

// Select builds a Selection over element restricted to the named pads
// (matched against the short channel name passed at construction, e.g.
// "H1", not the full "elem:src:H1" pad name). It panics if a requested name
// is not among the element's source or sink pad names - a configuration
// mistake equivalent to PadSelection's ValueError, surfaced
// immediately since Selection is built eagerly at pipeline-assembly time.
func Select(element core.Element, padNames ...string) *Selection {
	all := map[string]struct{}{}
	if sp, ok := element.(srcProvider); ok {
		for n := range sp.Srcs() {
			all[n] = struct{}{}
		}
	}
	if sp, ok := element.(sinkProvider); ok {
		for n := range sp.Snks() {
			all[n] = struct{}{}
		}
	}
	selected := map[string]struct{}{}
	var invalid []string
	for _, n := range padNames {
		if _, ok := all[n]; !ok {
			invalid = append(invalid, n)
			continue
		}
		selected[n] = struct{}{}
	}
	if len(invalid) > 0 {
		panic(fmt.Sprintf("groups: pad names %v not found on element %q", invalid, element.Name()))
	}
	return &Selection{element: element, names: selected}
}

// Srcs returns the selected source pads, keyed by short channel name.
func (s *Selection) Srcs() map[string]*core.SourcePad {
	out := map[string]*core.SourcePad{}
	sp, ok := s.element.(srcProvider)
	if !ok {
		return out
	}
	for n, pad := range sp.Srcs() {
		if _, selected := s.names[n]; selected {
			out[n] = pad
		}
	}
	return out
}

// Snks returns the selected sink pads, keyed by short channel name.
func (s *Selection) Snks() map[string]*core.SinkPad {
	out := map[string]*core.SinkPad{}
	sp, ok := s.element.(sinkProvider)
	if !ok {
		return out
	}
	for n, pad := range sp.Snks() {
		if _, selected := s.names[n]; selected {
			out[n] = pad
		}
	}
	return out
}

// item is either a core.Element or a *Selection - the two things Group
// accepts, matching groups.py's Union[Element, PadSelection].
type item interface {
	srcs() map[string]*core.SourcePad
	snks() map[string]*core.SinkPad
	label() string
}

type elementItem struct{ e core.Element }

func (i elementItem) srcs() map[string]*core.SourcePad {
	if sp, ok := i.e.(srcProvider); ok {
		return sp.Srcs()
	}
	return nil
}
func (i elementItem) snks() map[string]*core.SinkPad {
	if sp, ok := i.e.(sinkProvider); ok {
		return sp.Snks()
	}
	return nil
}
func (i elementItem) label() string { return i.e.Name() }

func (s *Selection) srcs() map[string]*core.SourcePad { return s.Srcs() }
func (s *Selection) snks() map[string]*core.SinkPad   { return s.Snks() }
func (s *Selection) label() string                    { return s.element.Name() }

// Group is an unordered bag of elements and/or selections, the Go analogue
// of groups.py's ElementGroup. Its Srcs/Snks combine every member's pads
// into one name-keyed map, failing on a duplicate short name the same way
// the original raises KeyError.
type Group struct {
	items []item
}

// NewGroup combines elements and selections into a Group. Passing another
// Group flattens its members in, mirroring group()'s ElementGroup handling.
func NewGroup(members ...any) *Group {
	g := &Group{}
	for _, m := range members {
		switch v := m.(type) {
		case *Selection:
			g.items = append(g.items, v)
		case *Group:
			g.items = append(g.items, v.items...)
		case core.Element:
			g.items = append(g.items, elementItem{e: v})
		default:
			panic(fmt.Sprintf("groups: unsupported group member type %T", m))
		}
	}
	return g
}

// Srcs combines every member's source pads, keyed by short channel name.
// Panics on a duplicate name across members, matching groups.py's KeyError.
func (g *Group) Srcs() map[string]*core.SourcePad {
	out := map[string]*core.SourcePad{}
	for _, it := range g.items {
		for n, pad := range it.srcs() {
			if _, dup := out[n]; dup {
				panic(fmt.Sprintf("groups: duplicate pad name %q in group", n))
			}
			out[n] = pad
		}
	}
	return out
}

// Snks combines every member's sink pads, keyed by short channel name.
// Panics on a duplicate name across members.
func (g *Group) Snks() map[string]*core.SinkPad {
	out := map[string]*core.SinkPad{}
	for _, it := range g.items {
		for n, pad := range it.snks() {
			if _, dup := out[n]; dup {
				panic(fmt.Sprintf("groups: duplicate pad name %q in group", n))
			}
			out[n] = pad
		}
	}
	return out
}

type sinkSource interface {
	Snks() map[string]*core.SinkPad
}

type srcSource interface {
	Srcs() map[string]*core.SourcePad
}

// LinkMap builds a Pipeline.Link-ready map connecting every sink pad of
// sinks to the source pad of the same short channel name in srcs - the
// link-by-matching-channel-name sugar groups.py's connect() provides.
// Channels present on only one side are skipped; callers that want strict
// matching should compare len(result) against len(sinks.Snks()) themselves.
func LinkMap(sinks sinkSource, srcs srcSource) map[string]string {
	snkPads := sinks.Snks()
	srcPads := srcs.Srcs()

	channels := make([]string, 0, len(snkPads))
	for n := range snkPads {
		channels = append(channels, n)
	}
	sort.Strings(channels)

	out := map[string]string{}
	for _, n := range channels {
		srcPad, ok := srcPads[n]
		if !ok {
			continue
		}
		out[snkPads[n].Name()] = srcPad.Name()
	}
	return out
}
