package graph

import (
	"testing"

	"github.com/hupe1980/graphgo/model"
	"github.com/hupe1980/graphgo/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraph_AddVertex(t *testing.T) {
	g := New()

	assert.Equal(t, model.Vertex(0), g.AddVertex())
	assert.Equal(t, model.Vertex(1), g.AddVertex())
	assert.Equal(t, model.Vertex(2), g.AddVertex())
	assert.Equal(t, 3, g.VertexCount())

	t.Run("reuses lowest freed id", func(t *testing.T) {
		g.RemoveVertex(2)
		g.RemoveVertex(0)
		assert.Equal(t, 1, g.VertexCount())

		assert.Equal(t, model.Vertex(0), g.AddVertex())
		assert.Equal(t, model.Vertex(2), g.AddVertex())
		assert.Equal(t, model.Vertex(3), g.AddVertex())
	})
}

func TestGraph_AddEdge(t *testing.T) {
	g := New()
	a, b := g.AddVertex(), g.AddVertex()

	e, err := g.AddEdge(a, b)
	require.NoError(t, err)
	assert.Equal(t, model.Edge(0), e)

	ends, ok := g.Endpoints(e)
	require.True(t, ok)
	assert.Equal(t, model.Endpoints{From: a, To: b}, ends)
	assert.Equal(t, []model.Edge{e}, g.OutEdges(a))
	assert.Equal(t, []model.Edge{e}, g.InEdges(b))
	assert.Empty(t, g.InEdges(a))

	t.Run("dead endpoint", func(t *testing.T) {
		_, err := g.AddEdge(a, 7)
		require.ErrorIs(t, err, ErrVertexNotFound)

		g.RemoveVertex(b)
		_, err = g.AddEdge(b, a)
		require.ErrorIs(t, err, ErrVertexNotFound)
		assert.Equal(t, 0, g.EdgeCount())
	})

	t.Run("self loop", func(t *testing.T) {
		loop, err := g.AddEdge(a, a)
		require.NoError(t, err)

		in, out := g.Degree(a)
		assert.Equal(t, 1, in)
		assert.Equal(t, 1, out)

		g.RemoveEdge(loop)
		in, out = g.Degree(a)
		assert.Zero(t, in)
		assert.Zero(t, out)
	})
}

func TestGraph_RemoveVertex(t *testing.T) {
	g := New()
	require.NoError(t, g.RegisterEdgeLabel("knows", nil))
	require.NoError(t, g.RegisterVertexLabel("person", nil))

	a, b, c := g.AddVertex(), g.AddVertex(), g.AddVertex()
	ab, err := g.AddEdge(a, b)
	require.NoError(t, err)
	bc, err := g.AddEdge(b, c)
	require.NoError(t, err)
	ca, err := g.AddEdge(c, a)
	require.NoError(t, err)
	require.NoError(t, g.AddEdgeLabel(ab, "knows", nil))
	require.NoError(t, g.AddVertexLabel(b, "person", nil))

	g.RemoveVertex(b)

	assert.False(t, g.HasVertex(b))
	assert.False(t, g.HasEdge(ab))
	assert.False(t, g.HasEdge(bc))
	assert.True(t, g.HasEdge(ca))
	assert.Equal(t, []model.Edge{ca}, g.OutEdges(c))
	assert.Empty(t, g.OutEdges(a))
	assert.Empty(t, g.InEdges(c))
	assert.True(t, g.E().HasLabel("knows").None())
	assert.True(t, g.V().HasLabel("person").None())

	t.Run("idempotent", func(t *testing.T) {
		g.RemoveVertex(b)
		g.RemoveEdge(ab)
		assert.Equal(t, 2, g.VertexCount())
		assert.Equal(t, 1, g.EdgeCount())
	})
}

func TestGraph_RegisterLabel(t *testing.T) {
	g := New()

	require.NoError(t, g.RegisterVertexLabel("name", storage.NewDense[string]()))
	require.ErrorIs(t, g.RegisterVertexLabel("name", nil), ErrLabelExists)
	require.ErrorIs(t, g.RegisterVertexLabel(LabelOut, nil), ErrReservedLabel)
	require.ErrorIs(t, g.RegisterEdgeLabel(LabelEndpoints, nil), ErrReservedLabel)

	// edge and vertex labels live in separate namespaces
	require.NoError(t, g.RegisterEdgeLabel("name", nil))

	assert.Equal(t, []string{"name"}, g.VertexLabels())
	assert.Equal(t, []string{"name"}, g.EdgeLabels())

	s, ok := g.VertexStorage("name")
	require.True(t, ok)
	assert.IsType(t, &storage.Dense[string]{}, s)

	_, ok = g.VertexStorage("missing")
	assert.False(t, ok)
}

func TestGraph_LabelWrites(t *testing.T) {
	g := New()
	require.NoError(t, g.RegisterVertexLabel("name", storage.NewDense[string]()))
	require.NoError(t, g.RegisterVertexLabel("age", storage.NewSparse[int]()))
	v := g.AddVertex()

	t.Run("add and get", func(t *testing.T) {
		require.NoError(t, g.AddVertexLabel(v, "name", "fred"))
		require.NoError(t, g.AddVertexLabel(v, "age", nil))

		assert.Equal(t, map[string]any{"name": "fred", "age": nil}, g.GetVertex(v, "name", "age", "missing"))
	})

	t.Run("unknown label is ignored", func(t *testing.T) {
		require.NoError(t, g.AddVertexLabel(v, "missing", 1))
		require.NoError(t, g.UpdateVertexLabel(v, "missing", func(any) any { return 1 }))
	})

	t.Run("reserved label", func(t *testing.T) {
		require.ErrorIs(t, g.AddVertexLabel(v, LabelIn, nil), ErrReservedLabel)
		require.ErrorIs(t, g.CheckVertexLabel(LabelOut, nil), ErrReservedLabel)
	})

	t.Run("type mismatch", func(t *testing.T) {
		err := g.AddVertexLabel(v, "name", 42)

		var mismatch *storage.ErrTypeMismatch
		require.ErrorAs(t, err, &mismatch)
		assert.Equal(t, "string", mismatch.Expected)
		assert.Equal(t, "int", mismatch.Actual)
		assert.Equal(t, map[string]any{"name": "fred"}, g.GetVertex(v, "name"))
	})

	t.Run("update", func(t *testing.T) {
		require.NoError(t, g.UpdateVertexLabel(v, "age", func(cur any) any {
			assert.Nil(t, cur)
			return 30
		}))
		require.NoError(t, g.UpdateVertexLabel(v, "age", func(cur any) any { return cur.(int) + 1 }))

		assert.Equal(t, map[string]any{"age": 31}, g.GetVertex(v, "age"))
	})

	t.Run("stale id", func(t *testing.T) {
		dead := g.AddVertex()
		g.RemoveVertex(dead)

		require.ErrorIs(t, g.AddVertexLabel(dead, "name", "ghost"), ErrVertexNotFound)
		require.ErrorIs(t, g.UpdateVertexLabel(dead, "age", func(any) any { return 1 }), ErrVertexNotFound)
		assert.Empty(t, g.GetVertex(dead, "name", "age"))
	})

	t.Run("remove", func(t *testing.T) {
		g.RemoveVertexLabel(v, "name")
		g.RemoveVertexLabel(v, "missing")

		assert.Equal(t, map[string]any{"age": 31}, g.GetVertex(v, "name", "age"))
	})
}

func TestGraph_EdgeLabelWrites(t *testing.T) {
	g := New()
	require.NoError(t, g.RegisterEdgeLabel("weight", storage.NewDense[float64]()))
	a, b := g.AddVertex(), g.AddVertex()
	e, err := g.AddEdge(a, b)
	require.NoError(t, err)

	require.NoError(t, g.AddEdgeLabel(e, "weight", 1.5))
	require.NoError(t, g.UpdateEdgeLabel(e, "weight", func(cur any) any { return cur.(float64) * 2 }))
	assert.Equal(t, map[string]any{"weight": 3.0}, g.GetEdge(e, "weight"))

	require.ErrorIs(t, g.AddEdgeLabel(e, LabelEndpoints, nil), ErrReservedLabel)
	require.Error(t, g.CheckEdgeLabel("weight", "heavy"))
	require.NoError(t, g.CheckEdgeLabel("weight", 2.0))

	g.RemoveEdge(e)
	require.ErrorIs(t, g.AddEdgeLabel(e, "weight", 1.0), ErrEdgeNotFound)
	assert.Empty(t, g.GetEdge(e, "weight"))
}

func TestGraph_GetVertexAdjacency(t *testing.T) {
	g := New()
	a, b := g.AddVertex(), g.AddVertex()
	_, err := g.AddEdge(a, b)
	require.NoError(t, err)

	got := g.GetVertex(a, LabelOut)
	require.Contains(t, got, LabelOut)

	// the projected set is a copy
	snapshot := got[LabelOut]
	_, err = g.AddEdge(a, b)
	require.NoError(t, err)
	assert.Len(t, g.OutEdges(a), 2)
	assert.Equal(t, uint64(1), storageCardinality(t, snapshot))

	ends := g.GetEdge(0, LabelEndpoints)
	assert.Equal(t, model.Endpoints{From: a, To: b}, ends[LabelEndpoints])
}

func storageCardinality(t *testing.T, v any) uint64 {
	t.Helper()

	rb, ok := v.(interface{ GetCardinality() uint64 })
	require.True(t, ok)
	return rb.GetCardinality()
}
