package fixture

import (
	"testing"

	"github.com/hupe1980/graphgo"
	"github.com/hupe1980/graphgo/graph"
	"github.com/hupe1980/graphgo/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadHouse(t *testing.T) (*graphgo.World, Index) {
	t.Helper()

	f, err := LoadFile("testdata/house.yaml")
	require.NoError(t, err)

	w := graphgo.New()
	idx, err := f.Build(w)
	require.NoError(t, err)
	return w, idx
}

func TestFixture_Build(t *testing.T) {
	w, idx := loadHouse(t)
	g := w.Graph()

	assert.Equal(t, 8, g.VertexCount())
	assert.Equal(t, 4, g.EdgeCount())
	assert.Equal(t, model.Vertex(0), idx["window"])
	assert.Equal(t, model.Vertex(4), idx["room1"])

	assert.Equal(t, []string{"room", "wall", "window", "dimensions", "direction"}, g.VertexLabels())
	assert.Equal(t, []string{"has", "weight"}, g.EdgeLabels())

	assert.Equal(t, map[string]any{
		"dimensions": map[string]any{"w": 10, "h": 10},
	}, g.GetVertex(idx["window"], "dimensions", "direction"))
	assert.Equal(t, map[string]any{"direction": "north"}, g.GetVertex(idx["wall2"], "direction"))

	withWindows := g.V().HasLabel("window").In("has").HasLabel("wall").In("has").ToList()
	assert.Equal(t, []model.Vertex{idx["room1"]}, withWindows)

	weighted := g.E().HasLabel("weight").ToList()
	require.Len(t, weighted, 1)
	assert.Equal(t, map[string]any{"weight": 0.5}, g.GetEdge(weighted[0], "weight"))
}

func TestFixture_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{
			name: "duplicate key",
			doc:  "entities: [{key: a}, {key: a}]",
			want: ErrDuplicateKey,
		},
		{
			name: "unknown link key",
			doc:  "entities: [{key: a}]\nlinks: [{from: a, to: b}]",
			want: ErrUnknownKey,
		},
		{
			name: "unknown storage",
			doc:  "components: [{name: c, storage: column}]",
			want: ErrUnknownStorage,
		},
		{
			name: "unknown type",
			doc:  "components: [{name: c, storage: dense, type: uuid}]",
			want: ErrUnknownStorage,
		},
		{
			name: "typed null storage",
			doc:  "components: [{name: c, type: int}]",
			want: ErrUnknownStorage,
		},
		{
			name: "reserved label",
			doc:  "relations: [{name: \"->\"}]",
			want: graph.ErrReservedLabel,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Parse([]byte(tt.doc))
			require.NoError(t, err)

			_, err = f.Build(graphgo.New())
			require.ErrorIs(t, err, tt.want)
		})
	}

	t.Run("type mismatch", func(t *testing.T) {
		f, err := Parse([]byte(`
components: [{name: age, storage: dense, type: int}]
entities: [{key: a, with: {age: old}}]
`))
		require.NoError(t, err)

		w := graphgo.New()
		_, err = f.Build(w)

		var mismatch *graphgo.ErrTypeMismatch
		require.ErrorAs(t, err, &mismatch)
		assert.Zero(t, w.Graph().VertexCount())
	})

	t.Run("integer for float label", func(t *testing.T) {
		f, err := Parse([]byte(`
components: [{name: score, storage: sparse, type: float}]
relations: [{name: weight, storage: dense, type: float}]
entities: [{key: a, with: {score: 3}}, {key: b, with: {score: 2.5}}]
links: [{from: a, to: b, with: {weight: 1}}]
`))
		require.NoError(t, err)

		w := graphgo.New()
		idx, err := f.Build(w)
		require.NoError(t, err)

		g := w.Graph()
		assert.Equal(t, map[string]any{"score": 3.0}, g.GetVertex(idx["a"], "score"))
		assert.Equal(t, map[string]any{"score": 2.5}, g.GetVertex(idx["b"], "score"))
		assert.Equal(t, map[string]any{"weight": 1.0}, g.GetEdge(0, "weight"))
	})

	t.Run("unknown field", func(t *testing.T) {
		_, err := Parse([]byte("vertices: []"))
		require.Error(t, err)
	})

	t.Run("empty document", func(t *testing.T) {
		f, err := Parse(nil)
		require.NoError(t, err)
		assert.Empty(t, f.Entities)
	})
}

func TestIndex(t *testing.T) {
	_, idx := loadHouse(t)

	v, err := idx.Resolve("room2")
	require.NoError(t, err)
	assert.Equal(t, model.Vertex(5), v)

	v, err = idx.Resolve("7")
	require.NoError(t, err)
	assert.Equal(t, model.Vertex(7), v)

	_, err = idx.Resolve("attic")
	require.ErrorIs(t, err, ErrUnknownKey)
	_, err = idx.Lookup("7")
	require.ErrorIs(t, err, ErrUnknownKey)

	key, ok := idx.Key(3)
	require.True(t, ok)
	assert.Equal(t, "wall3", key)
}

func TestFixture_Marshal(t *testing.T) {
	f := &Fixture{
		Components: []Label{{Name: "room"}},
		Entities:   []Entity{{Key: "r1", With: map[string]any{"room": nil}}},
	}

	b, err := f.Marshal()
	require.NoError(t, err)

	back, err := Parse(b)
	require.NoError(t, err)
	assert.Equal(t, f.Components, back.Components)
	assert.Equal(t, "r1", back.Entities[0].Key)
	assert.Contains(t, back.Entities[0].With, "room")
}
