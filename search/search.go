// Package search implements reachability, shortest hop paths and simple path
// enumeration over a graph.
//
// The algorithms only see the graph through callbacks, so any neighbourhood
// can be searched: the defaults follow outgoing edges, and WithChildren or
// WithTraverse swap in another one.
package search

import (
	"slices"

	"github.com/hupe1980/graphgo/fetch"
	"github.com/hupe1980/graphgo/graph"
	"github.com/hupe1980/graphgo/model"
)

// Step is one move of a path enumeration: the edge taken and the vertex it
// leads to.
type Step struct {
	Relation model.Edge
	Other    model.Vertex
}

// BFS explores from layer by layer until done accepts a vertex.
//
// Within a layer vertices are expanded last-in first-out. discover is called
// once per newly reached child, layer once per non-empty layer after the
// first; both may be nil. BFS reports whether done accepted a vertex.
func BFS(
	from model.Vertex,
	done func(model.Vertex) bool,
	children func(model.Vertex) []model.Vertex,
	discover func(parent, child model.Vertex),
	layer func([]model.Vertex),
) bool {
	visited := getVisited()
	defer putVisited(visited)
	visited.Set(uint(from))

	current := []model.Vertex{from}
	var next []model.Vertex
	for len(current) > 0 {
		node := current[len(current)-1]
		current = current[:len(current)-1]
		if done(node) {
			return true
		}
		for _, child := range children(node) {
			if visited.Test(uint(child)) {
				continue
			}
			visited.Set(uint(child))
			if discover != nil {
				discover(node, child)
			}
			next = append(next, child)
		}
		if len(current) == 0 {
			current, next = next, current[:0]
			if layer != nil && len(current) > 0 {
				layer(slices.Clone(current))
			}
		}
	}
	return false
}

type frame struct {
	node  model.Vertex
	steps []Step
	next  int
}

// AllPaths enumerates every simple path from -> to as a list of edges.
// A vertex never repeats within a path. Paths are reported in the order
// traverse lists the steps. from == to yields one empty path.
func AllPaths(from, to model.Vertex, traverse func(model.Vertex) []Step) [][]model.Edge {
	paths := [][]model.Edge{}
	if from == to {
		return append(paths, []model.Edge{})
	}

	visited := getVisited()
	defer putVisited(visited)
	visited.Set(uint(from))

	var path []model.Edge
	stack := []frame{{node: from, steps: traverse(from)}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next == len(top.steps) {
			visited.Clear(uint(top.node))
			stack = stack[:len(stack)-1]
			if len(path) > 0 {
				path = path[:len(path)-1]
			}
			continue
		}
		step := top.steps[top.next]
		top.next++

		if visited.Test(uint(step.Other)) {
			continue
		}
		if step.Other == to {
			found := make([]model.Edge, len(path), len(path)+1)
			copy(found, path)
			paths = append(paths, append(found, step.Relation))
			continue
		}
		path = append(path, step.Relation)
		visited.Set(uint(step.Other))
		stack = append(stack, frame{node: step.Other, steps: traverse(step.Other)})
	}
	return paths
}

// Search runs the algorithms against one graph.
type Search struct {
	g *graph.Graph
}

// New creates a Search over g.
func New(g *graph.Graph) *Search {
	return &Search{g: g}
}

// Children lists the targets of v's outgoing edges.
func (s *Search) Children(v model.Vertex) []model.Vertex {
	return s.g.V(v).Out().ToList()
}

// Traverse lists v's outgoing edges with their targets.
func (s *Search) Traverse(v model.Vertex) []Step {
	rec, ok := fetch.New(s.g, v).
		RelationsFetch("out", func(t graph.VertexSelection) graph.EdgeSelection { return t.OutE() }).
		First()
	if !ok {
		return nil
	}
	rels := rec.Relations["out"]
	steps := make([]Step, len(rels))
	for i, r := range rels {
		steps[i] = Step{Relation: r.Relation, Other: r.Other}
	}
	return steps
}

// IsReachable reports whether to can be reached from from.
func (s *Search) IsReachable(from, to model.Vertex, opts ...Option) bool {
	o := s.options(opts)
	return BFS(from, func(v model.Vertex) bool { return v == to }, o.children, o.discover, o.layer)
}

// FindPath returns a path with the fewest hops from -> to, both ends
// included, or an empty slice when to is unreachable.
func (s *Search) FindPath(from, to model.Vertex, opts ...Option) []model.Vertex {
	o := s.options(opts)
	parents := make(map[model.Vertex]model.Vertex)
	found := BFS(from, func(v model.Vertex) bool { return v == to }, o.children,
		func(parent, child model.Vertex) {
			parents[child] = parent
			if o.discover != nil {
				o.discover(parent, child)
			}
		},
		o.layer,
	)
	if !found {
		return []model.Vertex{}
	}
	path := []model.Vertex{to}
	for cur := to; cur != from; {
		cur = parents[cur]
		path = append(path, cur)
	}
	slices.Reverse(path)
	return path
}

// Paths enumerates every simple path from -> to.
func (s *Search) Paths(from, to model.Vertex, opts ...Option) [][]model.Edge {
	o := s.options(opts)
	return AllPaths(from, to, o.traverse)
}

func (s *Search) options(opts []Option) options {
	o := options{
		children: s.Children,
		traverse: s.Traverse,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
