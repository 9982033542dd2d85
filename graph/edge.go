package graph

import (
	"iter"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/graphgo/internal/bitmap"
	"github.com/hupe1980/graphgo/model"
	"github.com/hupe1980/graphgo/storage"
)

// EdgeSelection is an immutable set of edges plus the snapshot context of its
// traversal chain.
type EdgeSelection struct {
	g     *Graph
	mask  *roaring.Bitmap
	snaps *Snapshots
}

func (s EdgeSelection) with(mask *roaring.Bitmap) EdgeSelection {
	return EdgeSelection{g: s.g, mask: mask, snaps: s.snaps}
}

func (s EdgeSelection) vertices(mask *roaring.Bitmap) VertexSelection {
	return VertexSelection{g: s.g, mask: mask, snaps: s.snaps}
}

// Graph returns the graph the selection ranges over.
func (s EdgeSelection) Graph() *Graph { return s.g }

// Kind implements Selection.
func (s EdgeSelection) Kind() model.Kind { return model.KindEdge }

// Snapshots implements Selection.
func (s EdgeSelection) Snapshots() *Snapshots { return s.snaps }

// HasLabel keeps the edges carrying every named label.
func (s EdgeSelection) HasLabel(names ...string) EdgeSelection {
	if len(names) == 0 {
		return s
	}
	masks := make([]*roaring.Bitmap, 0, len(names)+1)
	masks = append(masks, s.mask)
	for _, name := range names {
		masks = append(masks, s.g.edgeLabels.mask(name))
	}
	return s.with(bitmap.And(masks...))
}

// HasAnyLabel keeps the edges carrying at least one named label.
// No names keeps the selection as is.
func (s EdgeSelection) HasAnyLabel(names ...string) EdgeSelection {
	if len(names) == 0 {
		return s
	}
	masks := make([]*roaring.Bitmap, len(names))
	for i, name := range names {
		masks[i] = s.g.edgeLabels.mask(name)
	}
	return s.with(bitmap.And(s.mask, bitmap.Or(masks...)))
}

// MatchesValue keeps the edges whose value for label is stored and satisfies
// pred.
func (s EdgeSelection) MatchesValue(label string, pred func(any) bool) EdgeSelection {
	return s.with(filterValues(s.g.edgeLabels, s.mask, label, pred))
}

func (s EdgeSelection) step(pick func(model.Endpoints, *roaring.Bitmap)) VertexSelection {
	out := roaring.New()
	for id := range bitmap.Seq(s.mask) {
		if ends, p := s.g.ends.Value(id); p == storage.Stored {
			pick(ends, out)
		}
	}
	return s.vertices(out)
}

// In steps to the source vertices of the selected edges.
func (s EdgeSelection) In() VertexSelection {
	return s.step(func(e model.Endpoints, out *roaring.Bitmap) { out.Add(uint32(e.From)) })
}

// Out steps to the target vertices of the selected edges.
func (s EdgeSelection) Out() VertexSelection {
	return s.step(func(e model.Endpoints, out *roaring.Bitmap) { out.Add(uint32(e.To)) })
}

// Both steps to both endpoints of the selected edges.
func (s EdgeSelection) Both() VertexSelection {
	return s.step(func(e model.Endpoints, out *roaring.Bitmap) {
		out.Add(uint32(e.From))
		out.Add(uint32(e.To))
	})
}

// As records the selection under name and returns it unchanged.
func (s EdgeSelection) As(name string) EdgeSelection {
	s.snaps.recordEdges(name, s.mask)
	return s
}

// Let records fn(s) under name and returns s unchanged.
func (s EdgeSelection) Let(name string, fn func(EdgeSelection) EdgeSelection) EdgeSelection {
	s.snaps.recordEdges(name, fn(s).mask)
	return s
}

// LetVertices records the vertex selection fn(s) under name and returns s
// unchanged.
func (s EdgeSelection) LetVertices(name string, fn func(EdgeSelection) VertexSelection) EdgeSelection {
	s.snaps.recordVertices(name, fn(s).mask)
	return s
}

// From resumes the chain at the edge snapshot name. Unknown names leave the
// selection unchanged.
func (s EdgeSelection) From(name string) EdgeSelection {
	if mask, ok := s.snaps.edges[name]; ok {
		return s.with(mask)
	}
	return s
}

// And intersects the named edge snapshots.
func (s EdgeSelection) And(names ...string) EdgeSelection {
	return s.with(bitmap.And(s.snaps.edgeMasks(names)...))
}

// Or unites the named edge snapshots.
func (s EdgeSelection) Or(names ...string) EdgeSelection {
	return s.with(bitmap.Or(s.snaps.edgeMasks(names)...))
}

// V starts a new root over vertices that shares this chain's snapshots.
func (s EdgeSelection) V(ids ...model.Vertex) VertexSelection {
	return s.g.vertexRoot(ids, s.snaps)
}

// E starts a new root over edges that shares this chain's snapshots.
func (s EdgeSelection) E(ids ...model.Edge) EdgeSelection {
	return s.g.edgeRoot(ids, s.snaps)
}

// Select implements Selection.
func (s EdgeSelection) Select(names ...string) map[string]Capture {
	return s.snaps.Select(names...)
}

// Values yields the stored values of the named labels for every selected edge.
// No names means every user label.
func (s EdgeSelection) Values(names ...string) iter.Seq[any] {
	return values(s.g.edgeLabels, s.mask, names)
}

// Labels lists, per selected edge, the user labels it carries.
func (s EdgeSelection) Labels() []LabelSet[model.Edge] {
	return labels[model.Edge](s.g.edgeLabels, s.mask)
}

// Seq iterates the selected edges in ascending order.
func (s EdgeSelection) Seq() iter.Seq[model.Edge] {
	return func(yield func(model.Edge) bool) {
		for id := range bitmap.Seq(s.mask) {
			if !yield(model.Edge(id)) {
				return
			}
		}
	}
}

// ToList materializes the selected edges in ascending order.
func (s EdgeSelection) ToList() []model.Edge {
	return model.Edges(bitmap.ToSlice(s.mask))
}

// First returns the smallest selected edge.
func (s EdgeSelection) First() (model.Edge, bool) {
	id, ok := bitmap.First(s.mask)
	return model.Edge(id), ok
}

// Some implements Selection.
func (s EdgeSelection) Some() bool { return !s.mask.IsEmpty() }

// None implements Selection.
func (s EdgeSelection) None() bool { return s.mask.IsEmpty() }

// Count implements Selection.
func (s EdgeSelection) Count() int { return int(s.mask.GetCardinality()) }

// Mask implements Selection.
func (s EdgeSelection) Mask() *roaring.Bitmap { return s.mask.Clone() }

// Contains reports whether e is selected.
func (s EdgeSelection) Contains(e model.Edge) bool { return s.mask.Contains(uint32(e)) }
