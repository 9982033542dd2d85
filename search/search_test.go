package search

import (
	"testing"

	"github.com/hupe1980/graphgo/graph"
	"github.com/hupe1980/graphgo/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// edges of the test graph, in creation order
const (
	e01 model.Edge = iota
	e10
	e02
	e13
	e23
	e31
	e24
)

func newGraph(t *testing.T) *graph.Graph {
	t.Helper()

	g := graph.New()
	for range 6 {
		g.AddVertex()
	}
	for _, pair := range [][2]model.Vertex{{0, 1}, {1, 0}, {0, 2}, {1, 3}, {2, 3}, {3, 1}, {2, 4}} {
		_, err := g.AddEdge(pair[0], pair[1])
		require.NoError(t, err)
	}
	return g
}

func TestSearch_IsReachable(t *testing.T) {
	s := New(newGraph(t))

	assert.True(t, s.IsReachable(0, 0))
	assert.True(t, s.IsReachable(0, 4))
	assert.False(t, s.IsReachable(0, 5))
	assert.False(t, s.IsReachable(4, 0))
}

func TestSearch_FindPath(t *testing.T) {
	s := New(newGraph(t))

	assert.Equal(t, []model.Vertex{0}, s.FindPath(0, 0))
	assert.Equal(t, []model.Vertex{0, 2}, s.FindPath(0, 2))
	assert.Equal(t, []model.Vertex{0, 2, 4}, s.FindPath(0, 4))
	assert.Equal(t, []model.Vertex{}, s.FindPath(0, 5))

	t.Run("discover", func(t *testing.T) {
		var discovered [][2]model.Vertex
		s.FindPath(0, 2, WithDiscover(func(parent, child model.Vertex) {
			discovered = append(discovered, [2]model.Vertex{parent, child})
		}))

		assert.Equal(t, [][2]model.Vertex{{0, 1}, {0, 2}}, discovered)
	})
}

func TestSearch_CustomChildren(t *testing.T) {
	s := New(newGraph(t))
	next := WithChildren(func(v model.Vertex) []model.Vertex { return []model.Vertex{v + 1} })

	assert.True(t, s.IsReachable(0, 4, next))
	assert.Equal(t, []model.Vertex{0, 1, 2, 3, 4}, s.FindPath(0, 4, next))
}

func TestSearch_Layers(t *testing.T) {
	s := New(newGraph(t))

	var layers [][]model.Vertex
	found := s.IsReachable(0, 4, WithLayer(func(layer []model.Vertex) {
		layers = append(layers, layer)
	}))

	require.True(t, found)
	assert.Equal(t, [][]model.Vertex{{1, 2}, {3, 4}}, layers)

	t.Run("empty layers are not reported", func(t *testing.T) {
		layers = nil
		assert.False(t, s.IsReachable(4, 0, WithLayer(func(layer []model.Vertex) {
			layers = append(layers, layer)
		})))
		assert.Empty(t, layers)
	})
}

func TestSearch_Paths(t *testing.T) {
	s := New(newGraph(t))

	assert.Equal(t, [][]model.Edge{{}}, s.Paths(0, 0))
	assert.Equal(t, [][]model.Edge{{e02, e24}}, s.Paths(0, 4))
	assert.Equal(t, [][]model.Edge{{e01, e13}, {e02, e23}}, s.Paths(0, 3))
	assert.Equal(t, [][]model.Edge{{e10, e02, e23}, {e13}}, s.Paths(1, 3))
	assert.Equal(t, [][]model.Edge{}, s.Paths(0, 5))

	t.Run("custom traverse", func(t *testing.T) {
		g := newGraph(t)
		// walk edges backwards
		back := WithTraverse(func(v model.Vertex) []Step {
			var steps []Step
			for _, e := range g.InEdges(v) {
				ends, _ := g.Endpoints(e)
				steps = append(steps, Step{Relation: e, Other: ends.From})
			}
			return steps
		})

		assert.Equal(t, [][]model.Edge{{e24, e02}}, New(g).Paths(4, 0, back))
	})
}

func TestSearch_Traverse(t *testing.T) {
	s := New(newGraph(t))

	assert.Equal(t, []Step{{Relation: e10, Other: 0}, {Relation: e13, Other: 3}}, s.Traverse(1))
	assert.Empty(t, s.Traverse(4))
	assert.Nil(t, s.Traverse(9))
	assert.Equal(t, []model.Vertex{1, 2}, s.Children(0))
}

func TestAllPaths_Cycle(t *testing.T) {
	// 0 -> 1 -> 2 -> 0, 1 -> 3
	steps := map[model.Vertex][]Step{
		0: {{Relation: 0, Other: 1}},
		1: {{Relation: 1, Other: 2}, {Relation: 3, Other: 3}},
		2: {{Relation: 2, Other: 0}},
	}
	traverse := func(v model.Vertex) []Step { return steps[v] }

	assert.Equal(t, [][]model.Edge{{0, 3}}, AllPaths(0, 3, traverse))
	assert.Equal(t, [][]model.Edge{{1, 2}}, AllPaths(1, 0, traverse))
}
