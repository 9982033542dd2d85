package graph

import (
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/graphgo/internal/bitmap"
	"github.com/hupe1980/graphgo/model"
)

// EdgeBuilder creates an edge for every pair in the Cartesian product of two
// vertex snapshots.
//
//	g.V(a).As("src").V(b, c).As("dst").
//	    EdgeBuilder().From("src").To("dst").Label("knows", nil).Build()
type EdgeBuilder struct {
	ctx     VertexSelection
	from    string
	to      string
	label   string
	value   any
	labeled bool
}

// From names the vertex snapshot edges start at.
func (b *EdgeBuilder) From(snapshot string) *EdgeBuilder {
	b.from = snapshot
	return b
}

// To names the vertex snapshot edges end at.
func (b *EdgeBuilder) To(snapshot string) *EdgeBuilder {
	b.to = snapshot
	return b
}

// Label tags every new edge with name and value.
func (b *EdgeBuilder) Label(name string, value any) *EdgeBuilder {
	b.label = name
	b.value = value
	b.labeled = true
	return b
}

// Build creates the edges. Every endpoint and the label value are validated
// before the first edge is created. Unknown snapshots count as empty.
func (b *EdgeBuilder) Build() ([]model.Edge, error) {
	g := b.ctx.g
	from := b.snapshot(b.from)
	to := b.snapshot(b.to)

	for _, mask := range []*roaring.Bitmap{from, to} {
		for id := range bitmap.Seq(mask) {
			if !g.HasVertex(model.Vertex(id)) {
				return nil, fmt.Errorf("edge builder: vertex %d: %w", id, ErrVertexNotFound)
			}
		}
	}
	if b.labeled {
		if err := g.CheckEdgeLabel(b.label, b.value); err != nil {
			return nil, fmt.Errorf("edge builder: %w", err)
		}
	}

	created := make([]model.Edge, 0, from.GetCardinality()*to.GetCardinality())
	for src := range bitmap.Seq(from) {
		for dst := range bitmap.Seq(to) {
			e, err := g.AddEdge(model.Vertex(src), model.Vertex(dst))
			if err != nil {
				return created, err
			}
			if b.labeled {
				if err := g.AddEdgeLabel(e, b.label, b.value); err != nil {
					return created, err
				}
			}
			created = append(created, e)
		}
	}
	return created, nil
}

func (b *EdgeBuilder) snapshot(name string) *roaring.Bitmap {
	if mask, ok := b.ctx.snaps.vertices[name]; ok {
		return mask
	}
	return roaring.New()
}
