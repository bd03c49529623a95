package core

import (
	"errors"
	"sort"
)

// depGraph maps each pad to the set of pads it depends on (must execute
// after). It accumulates two kinds of edges, exactly as spec.md §3
// describes:
//   - intra-element edges, added when an element is constructed (every
//     TransformElement source pad depends on every sink pad of the same
//     element; SourceElement source pads and SinkElement sink pads start
//     with no predecessors)
//   - link edges, added when a sink pad is linked to a source pad
//
// The graph is static between Insert/Link calls; the scheduler rebuilds a
// fresh topological ordering from it every frame (see depGraph.waves),
// which keeps the scheduler itself stateless between frames.
type depGraph struct {
	preds map[Pad]map[Pad]struct{}
}

func newDepGraph() *depGraph {
	return &depGraph{preds: map[Pad]map[Pad]struct{}{}}
}

// addNode ensures pad participates in the graph even if it has no
// predecessors yet (e.g. a freshly constructed SourceElement's source pads,
// or a not-yet-linked SinkPad).
func (g *depGraph) addNode(pad Pad) {
	if _, ok := g.preds[pad]; !ok {
		g.preds[pad] = map[Pad]struct{}{}
	}
}

// addEdge records that sink depends on source: source must execute before
// sink within the same frame cycle.
func (g *depGraph) addEdge(sink, source Pad) {
	g.addNode(source)
	if _, ok := g.preds[sink]; !ok {
		g.preds[sink] = map[Pad]struct{}{}
	}
	g.preds[sink][source] = struct{}{}
}

// merge folds a one-or-few-element dependency map (as produced by
// SinkPad.link or element construction) into the graph.
func (g *depGraph) merge(edges map[Pad]map[Pad]struct{}) {
	for node, preds := range edges {
		g.addNode(node)
		for p := range preds {
			g.addEdge(node, p)
		}
	}
}

var errCycle = errors.New("pad dependency graph contains a cycle")

// waves computes a topological ordering of the graph, grouped into waves of
// concurrently-ready pads: spec.md §4.4's "request the set of currently
// ready pads... submit each ready pad as a cooperative task." It is a
// straightforward Kahn's-algorithm sort, rebuilt from scratch on every call
// since the caller (Pipeline.Run) invokes it once per frame.
//
// Pads within a wave are returned in a deterministic order (by full name) so
// that logging and test output are reproducible; the scheduler itself makes
// no ordering guarantee between pads with no dependency path between them.
func (g *depGraph) waves() ([][]Pad, error) {
	indegree := make(map[Pad]int, len(g.preds))
	successors := make(map[Pad][]Pad)
	for node, preds := range g.preds {
		indegree[node] += len(preds)
		for p := range preds {
			successors[p] = append(successors[p], node)
			if _, ok := indegree[p]; !ok {
				indegree[p] = 0
			}
		}
	}

	remaining := len(indegree)
	var result [][]Pad
	for remaining > 0 {
		var ready []Pad
		for node, d := range indegree {
			if d == 0 {
				ready = append(ready, node)
			}
		}
		if len(ready) == 0 {
			return nil, errCycle
		}
		sort.Slice(ready, func(i, j int) bool { return ready[i].Name() < ready[j].Name() })

		for _, node := range ready {
			delete(indegree, node)
			remaining--
			for _, s := range successors[node] {
				indegree[s]--
			}
		}
		result = append(result, ready)
	}
	return result, nil
}
