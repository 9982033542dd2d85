package graph

import (
	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/graphgo/internal/bitmap"
	"github.com/hupe1980/graphgo/model"
)

// Snapshots is the named memory of one traversal chain.
//
// Every selection derived from the same root shares one Snapshots value, so a
// mask captured with As or Let is visible to every later step of the chain.
// Recorded masks are never mutated; a name is bound to at most one kind.
type Snapshots struct {
	vertices map[string]*roaring.Bitmap
	edges    map[string]*roaring.Bitmap
}

// NewSnapshots returns an empty snapshot context.
func NewSnapshots() *Snapshots {
	return &Snapshots{
		vertices: make(map[string]*roaring.Bitmap),
		edges:    make(map[string]*roaring.Bitmap),
	}
}

func (s *Snapshots) recordVertices(name string, mask *roaring.Bitmap) {
	delete(s.edges, name)
	s.vertices[name] = mask
}

func (s *Snapshots) recordEdges(name string, mask *roaring.Bitmap) {
	delete(s.vertices, name)
	s.edges[name] = mask
}

// Vertices returns a copy of the vertex snapshot recorded under name.
func (s *Snapshots) Vertices(name string) ([]model.Vertex, bool) {
	mask, ok := s.vertices[name]
	if !ok {
		return nil, false
	}
	return model.Vertices(bitmap.ToSlice(mask)), true
}

// Edges returns a copy of the edge snapshot recorded under name.
func (s *Snapshots) Edges(name string) ([]model.Edge, bool) {
	mask, ok := s.edges[name]
	if !ok {
		return nil, false
	}
	return model.Edges(bitmap.ToSlice(mask)), true
}

// Kind reports which universe name was captured in.
func (s *Snapshots) Kind(name string) model.Kind {
	if _, ok := s.vertices[name]; ok {
		return model.KindVertex
	}
	if _, ok := s.edges[name]; ok {
		return model.KindEdge
	}
	return model.KindUnknown
}

// Capture is the materialized form of one snapshot.
type Capture struct {
	Kind model.Kind
	IDs  []uint32
}

// Select materializes the named snapshots. Names never captured map to a
// Capture of kind KindUnknown with no ids.
func (s *Snapshots) Select(names ...string) map[string]Capture {
	out := make(map[string]Capture, len(names))
	for _, name := range names {
		switch kind := s.Kind(name); kind {
		case model.KindVertex:
			out[name] = Capture{Kind: kind, IDs: bitmap.ToSlice(s.vertices[name])}
		case model.KindEdge:
			out[name] = Capture{Kind: kind, IDs: bitmap.ToSlice(s.edges[name])}
		default:
			out[name] = Capture{Kind: kind, IDs: []uint32{}}
		}
	}
	return out
}

func (s *Snapshots) vertexMasks(names []string) []*roaring.Bitmap {
	masks := make([]*roaring.Bitmap, len(names))
	for i, name := range names {
		masks[i] = s.vertices[name]
	}
	return masks
}

func (s *Snapshots) edgeMasks(names []string) []*roaring.Bitmap {
	masks := make([]*roaring.Bitmap, len(names))
	for i, name := range names {
		masks[i] = s.edges[name]
	}
	return masks
}
