package graph

import (
	"iter"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/graphgo/internal/bitmap"
	"github.com/hupe1980/graphgo/model"
	"github.com/hupe1980/graphgo/storage"
)

// Names of the snapshots Both records on the chain.
const (
	bothIn  = "$both.in"
	bothOut = "$both.out"
)

// VertexSelection is an immutable set of vertices plus the snapshot context of
// its traversal chain.
//
// Every step returns a new selection and leaves the receiver's mask alone.
// Steps may record into the shared Snapshots.
type VertexSelection struct {
	g     *Graph
	mask  *roaring.Bitmap
	snaps *Snapshots
}

func (s VertexSelection) with(mask *roaring.Bitmap) VertexSelection {
	return VertexSelection{g: s.g, mask: mask, snaps: s.snaps}
}

func (s VertexSelection) edges(mask *roaring.Bitmap) EdgeSelection {
	return EdgeSelection{g: s.g, mask: mask, snaps: s.snaps}
}

// Graph returns the graph the selection ranges over.
func (s VertexSelection) Graph() *Graph { return s.g }

// Kind implements Selection.
func (s VertexSelection) Kind() model.Kind { return model.KindVertex }

// Snapshots implements Selection.
func (s VertexSelection) Snapshots() *Snapshots { return s.snaps }

// HasLabel keeps the vertices carrying every named label.
// Unregistered labels match nothing; no names keeps the selection as is.
func (s VertexSelection) HasLabel(names ...string) VertexSelection {
	if len(names) == 0 {
		return s
	}
	masks := make([]*roaring.Bitmap, 0, len(names)+1)
	masks = append(masks, s.mask)
	for _, name := range names {
		masks = append(masks, s.g.vertexLabels.mask(name))
	}
	return s.with(bitmap.And(masks...))
}

// adjacent unites the edge sets adjacency holds for the selected vertices.
func (s VertexSelection) adjacent(adjacency *storage.Dense[*roaring.Bitmap]) *roaring.Bitmap {
	var sets []*roaring.Bitmap
	for id := range bitmap.Seq(bitmap.And(s.mask, adjacency.Mask())) {
		if set, p := adjacency.Value(id); p == storage.Stored {
			sets = append(sets, set)
		}
	}
	return bitmap.Or(sets...)
}

// OutE steps to the outgoing edges carrying any of the named labels.
// No names means every outgoing edge.
func (s VertexSelection) OutE(names ...string) EdgeSelection {
	return s.edges(s.adjacent(s.g.outs)).HasAnyLabel(names...)
}

// InE steps to the incoming edges carrying any of the named labels.
func (s VertexSelection) InE(names ...string) EdgeSelection {
	return s.edges(s.adjacent(s.g.ins)).HasAnyLabel(names...)
}

// BothE steps to incoming and outgoing edges carrying any of the named labels.
func (s VertexSelection) BothE(names ...string) EdgeSelection {
	return s.edges(bitmap.Or(s.adjacent(s.g.outs), s.adjacent(s.g.ins))).HasAnyLabel(names...)
}

// Out steps along outgoing edges to their targets.
func (s VertexSelection) Out(names ...string) VertexSelection {
	return s.OutE(names...).Out()
}

// In steps along incoming edges to their sources.
func (s VertexSelection) In(names ...string) VertexSelection {
	return s.InE(names...).In()
}

// Both unites In and Out. Both intermediate results are recorded on the chain.
func (s VertexSelection) Both(names ...string) VertexSelection {
	return s.
		Let(bothIn, func(t VertexSelection) VertexSelection { return t.In(names...) }).
		Let(bothOut, func(t VertexSelection) VertexSelection { return t.Out(names...) }).
		Or(bothIn, bothOut)
}

// MatchesValue keeps the vertices whose value for label is stored and
// satisfies pred.
func (s VertexSelection) MatchesValue(label string, pred func(any) bool) VertexSelection {
	return s.with(filterValues(s.g.vertexLabels, s.mask, label, pred))
}

// MatchesDegree keeps the vertices for which pred(in-degree, out-degree) holds.
func (s VertexSelection) MatchesDegree(pred func(in, out int) bool) VertexSelection {
	out := roaring.New()
	for id := range bitmap.Seq(s.mask) {
		in, outDeg := s.g.Degree(model.Vertex(id))
		if pred(in, outDeg) {
			out.Add(id)
		}
	}
	return s.with(out)
}

// Partition expands the selection to every vertex sharing a partition of
// label with a selected vertex.
func (s VertexSelection) Partition(label string) VertexSelection {
	out := roaring.New()
	st, ok := s.g.vertexLabels.get(label)
	if !ok {
		return s.with(out)
	}
	for id := range bitmap.Seq(s.mask) {
		if v, p := st.Get(id); p == storage.Stored {
			out.AddMany(st.Partition(v))
		}
	}
	return s.with(out)
}

// OfPartition selects the vertices in the partition of label that
// representative falls into.
func (s VertexSelection) OfPartition(label string, representative any) VertexSelection {
	out := roaring.New()
	if st, ok := s.g.vertexLabels.get(label); ok {
		out.AddMany(st.Partition(representative))
	}
	return s.with(out)
}

// And intersects the named vertex snapshots. The current selection does not
// take part; a missing name yields an empty result.
func (s VertexSelection) And(names ...string) VertexSelection {
	return s.with(bitmap.And(s.snaps.vertexMasks(names)...))
}

// Or unites the named vertex snapshots.
func (s VertexSelection) Or(names ...string) VertexSelection {
	return s.with(bitmap.Or(s.snaps.vertexMasks(names)...))
}

// Not complements the selection within the live vertices.
func (s VertexSelection) Not() VertexSelection {
	return s.with(bitmap.AndNot(bitmap.Complement(s.mask, s.g.nextV), s.g.freeV))
}

// As records the selection under name and returns it unchanged.
func (s VertexSelection) As(name string) VertexSelection {
	s.snaps.recordVertices(name, s.mask)
	return s
}

// Let records fn(s) under name and returns s unchanged.
func (s VertexSelection) Let(name string, fn func(VertexSelection) VertexSelection) VertexSelection {
	s.snaps.recordVertices(name, fn(s).mask)
	return s
}

// LetEdges records the edge selection fn(s) under name and returns s unchanged.
func (s VertexSelection) LetEdges(name string, fn func(VertexSelection) EdgeSelection) VertexSelection {
	s.snaps.recordEdges(name, fn(s).mask)
	return s
}

// From resumes the chain at the vertex snapshot name. Unknown names leave the
// selection unchanged.
func (s VertexSelection) From(name string) VertexSelection {
	if mask, ok := s.snaps.vertices[name]; ok {
		return s.with(mask)
	}
	return s
}

// V starts a new root over vertices that shares this chain's snapshots.
func (s VertexSelection) V(ids ...model.Vertex) VertexSelection {
	return s.g.vertexRoot(ids, s.snaps)
}

// E starts a new root over edges that shares this chain's snapshots.
func (s VertexSelection) E(ids ...model.Edge) EdgeSelection {
	return s.g.edgeRoot(ids, s.snaps)
}

// Select implements Selection.
func (s VertexSelection) Select(names ...string) map[string]Capture {
	return s.snaps.Select(names...)
}

// Values yields the stored values of the named labels for every selected
// vertex, vertex by vertex. No names means every user label.
func (s VertexSelection) Values(names ...string) iter.Seq[any] {
	return values(s.g.vertexLabels, s.mask, names)
}

// Labels lists, per selected vertex, the user labels it carries.
func (s VertexSelection) Labels() []LabelSet[model.Vertex] {
	return labels[model.Vertex](s.g.vertexLabels, s.mask)
}

// EdgeBuilder returns a builder that connects vertex snapshots of this chain.
func (s VertexSelection) EdgeBuilder() *EdgeBuilder {
	return &EdgeBuilder{ctx: s}
}

// Seq iterates the selected vertices in ascending order.
func (s VertexSelection) Seq() iter.Seq[model.Vertex] {
	return func(yield func(model.Vertex) bool) {
		for id := range bitmap.Seq(s.mask) {
			if !yield(model.Vertex(id)) {
				return
			}
		}
	}
}

// ToList materializes the selected vertices in ascending order.
func (s VertexSelection) ToList() []model.Vertex {
	return model.Vertices(bitmap.ToSlice(s.mask))
}

// First returns the smallest selected vertex.
func (s VertexSelection) First() (model.Vertex, bool) {
	id, ok := bitmap.First(s.mask)
	return model.Vertex(id), ok
}

// Some implements Selection.
func (s VertexSelection) Some() bool { return !s.mask.IsEmpty() }

// None implements Selection.
func (s VertexSelection) None() bool { return s.mask.IsEmpty() }

// Count implements Selection.
func (s VertexSelection) Count() int { return int(s.mask.GetCardinality()) }

// Mask implements Selection.
func (s VertexSelection) Mask() *roaring.Bitmap { return s.mask.Clone() }

// Contains reports whether v is selected.
func (s VertexSelection) Contains(v model.Vertex) bool { return s.mask.Contains(uint32(v)) }
