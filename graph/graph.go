package graph

import (
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/graphgo/internal/bitmap"
	"github.com/hupe1980/graphgo/model"
	"github.com/hupe1980/graphgo/storage"
)

const (
	// LabelOut is the reserved vertex label holding each vertex's outgoing edges.
	LabelOut = "out"
	// LabelIn is the reserved vertex label holding each vertex's incoming edges.
	LabelIn = "in"
	// LabelEndpoints is the reserved edge label holding each edge's endpoints.
	LabelEndpoints = "->"
)

// Graph is a sparse, id-addressed property graph.
//
// Vertices and edges are plain integers. Everything else, adjacency included,
// lives in label storages registered by name. A Graph is not safe for
// concurrent use.
type Graph struct {
	nextV uint32
	nextE uint32
	freeV *roaring.Bitmap
	freeE *roaring.Bitmap

	vertexLabels *registry
	edgeLabels   *registry

	outs *storage.Dense[*roaring.Bitmap]
	ins  *storage.Dense[*roaring.Bitmap]
	ends *storage.Dense[model.Endpoints]
}

// New creates an empty graph with the reserved adjacency labels registered.
func New() *Graph {
	g := &Graph{
		freeV:        roaring.New(),
		freeE:        roaring.New(),
		vertexLabels: newRegistry(),
		edgeLabels:   newRegistry(),
		outs:         storage.NewDense[*roaring.Bitmap](),
		ins:          storage.NewDense[*roaring.Bitmap](),
		ends:         storage.NewDense[model.Endpoints](),
	}
	g.vertexLabels.reserve(LabelOut, g.outs)
	g.vertexLabels.reserve(LabelIn, g.ins)
	g.edgeLabels.reserve(LabelEndpoints, g.ends)
	return g
}

// RegisterVertexLabel registers a vertex label backed by s.
// A nil storage registers a presence-only label.
func (g *Graph) RegisterVertexLabel(name string, s storage.Storage) error {
	if err := g.vertexLabels.register(name, s); err != nil {
		return fmt.Errorf("vertex label %q: %w", name, err)
	}
	return nil
}

// RegisterEdgeLabel registers an edge label backed by s.
// A nil storage registers a presence-only label.
func (g *Graph) RegisterEdgeLabel(name string, s storage.Storage) error {
	if err := g.edgeLabels.register(name, s); err != nil {
		return fmt.Errorf("edge label %q: %w", name, err)
	}
	return nil
}

// VertexStorage returns the storage registered for a vertex label.
func (g *Graph) VertexStorage(name string) (storage.Storage, bool) {
	return g.vertexLabels.get(name)
}

// EdgeStorage returns the storage registered for an edge label.
func (g *Graph) EdgeStorage(name string) (storage.Storage, bool) {
	return g.edgeLabels.get(name)
}

// VertexLabels lists the user-registered vertex labels in registration order.
func (g *Graph) VertexLabels() []string { return g.vertexLabels.userNames() }

// EdgeLabels lists the user-registered edge labels in registration order.
func (g *Graph) EdgeLabels() []string { return g.edgeLabels.userNames() }

func allocate(next *uint32, free *roaring.Bitmap) uint32 {
	if id, ok := bitmap.First(free); ok {
		free.Remove(id)
		return id
	}
	id := *next
	*next++
	return id
}

// AddVertex allocates a vertex. Freed ids are reused lowest first.
func (g *Graph) AddVertex() model.Vertex {
	id := allocate(&g.nextV, g.freeV)
	g.outs.Put(id, roaring.New())
	g.ins.Put(id, roaring.New())
	return model.Vertex(id)
}

// AddEdge allocates an edge from -> to and registers it with both endpoints.
func (g *Graph) AddEdge(from, to model.Vertex) (model.Edge, error) {
	if !g.HasVertex(from) {
		return 0, fmt.Errorf("edge source %d: %w", from, ErrVertexNotFound)
	}
	if !g.HasVertex(to) {
		return 0, fmt.Errorf("edge target %d: %w", to, ErrVertexNotFound)
	}
	id := allocate(&g.nextE, g.freeE)
	out, _ := g.outs.Value(uint32(from))
	out.Add(id)
	in, _ := g.ins.Value(uint32(to))
	in.Add(id)
	g.ends.Put(id, model.Endpoints{From: from, To: to})
	return model.Edge(id), nil
}

// RemoveEdge unregisters e from its endpoints and from every edge label.
// Removing a dead edge is a no-op.
func (g *Graph) RemoveEdge(e model.Edge) {
	if !g.HasEdge(e) {
		return
	}
	id := uint32(e)
	ends, _ := g.ends.Value(id)
	if out, p := g.outs.Value(uint32(ends.From)); p == storage.Stored {
		out.Remove(id)
	}
	if in, p := g.ins.Value(uint32(ends.To)); p == storage.Stored {
		in.Remove(id)
	}
	g.edgeLabels.removeAll(id)
	g.freeE.Add(id)
}

// RemoveVertex removes every edge incident to v, then v itself.
// Removing a dead vertex is a no-op.
func (g *Graph) RemoveVertex(v model.Vertex) {
	if !g.HasVertex(v) {
		return
	}
	id := uint32(v)
	out, _ := g.outs.Value(id)
	in, _ := g.ins.Value(id)
	for _, e := range bitmap.ToSlice(bitmap.Or(out, in)) {
		g.RemoveEdge(model.Edge(e))
	}
	g.vertexLabels.removeAll(id)
	g.freeV.Add(id)
}

// HasVertex reports whether v is live.
func (g *Graph) HasVertex(v model.Vertex) bool {
	return uint32(v) < g.nextV && !g.freeV.Contains(uint32(v))
}

// HasEdge reports whether e is live.
func (g *Graph) HasEdge(e model.Edge) bool {
	return uint32(e) < g.nextE && !g.freeE.Contains(uint32(e))
}

// VertexCount returns the number of live vertices.
func (g *Graph) VertexCount() int {
	return int(uint64(g.nextV) - g.freeV.GetCardinality())
}

// EdgeCount returns the number of live edges.
func (g *Graph) EdgeCount() int {
	return int(uint64(g.nextE) - g.freeE.GetCardinality())
}

// Endpoints returns the source and target of e.
func (g *Graph) Endpoints(e model.Edge) (model.Endpoints, bool) {
	ends, p := g.ends.Value(uint32(e))
	return ends, p == storage.Stored
}

// OutEdges returns the outgoing edges of v in ascending order.
func (g *Graph) OutEdges(v model.Vertex) []model.Edge {
	set, _ := g.outs.Value(uint32(v))
	return model.Edges(bitmap.ToSlice(set))
}

// InEdges returns the incoming edges of v in ascending order.
func (g *Graph) InEdges(v model.Vertex) []model.Edge {
	set, _ := g.ins.Value(uint32(v))
	return model.Edges(bitmap.ToSlice(set))
}

// Degree returns the number of incoming and outgoing edges of v.
func (g *Graph) Degree(v model.Vertex) (in, out int) {
	if set, p := g.ins.Value(uint32(v)); p == storage.Stored {
		in = int(set.GetCardinality())
	}
	if set, p := g.outs.Value(uint32(v)); p == storage.Stored {
		out = int(set.GetCardinality())
	}
	return in, out
}

// AddVertexLabel attaches label name to v, optionally with a value.
// Unregistered labels are ignored.
func (g *Graph) AddVertexLabel(v model.Vertex, name string, value any) error {
	s, err := g.writableVertexLabel(name)
	if err != nil || s == nil {
		return err
	}
	if !g.HasVertex(v) {
		return fmt.Errorf("vertex %d: %w", v, ErrVertexNotFound)
	}
	if _, err := s.Set(uint32(v), value); err != nil {
		return fmt.Errorf("vertex label %q: %w", name, err)
	}
	return nil
}

// AddEdgeLabel attaches label name to e, optionally with a value.
// Unregistered labels are ignored.
func (g *Graph) AddEdgeLabel(e model.Edge, name string, value any) error {
	s, err := g.writableEdgeLabel(name)
	if err != nil || s == nil {
		return err
	}
	if !g.HasEdge(e) {
		return fmt.Errorf("edge %d: %w", e, ErrEdgeNotFound)
	}
	if _, err := s.Set(uint32(e), value); err != nil {
		return fmt.Errorf("edge label %q: %w", name, err)
	}
	return nil
}

// UpdateVertexLabel replaces the value of name on v with fn(current).
// fn receives nil when v holds no value for name.
func (g *Graph) UpdateVertexLabel(v model.Vertex, name string, fn func(any) any) error {
	s, err := g.writableVertexLabel(name)
	if err != nil || s == nil {
		return err
	}
	if !g.HasVertex(v) {
		return fmt.Errorf("vertex %d: %w", v, ErrVertexNotFound)
	}
	cur, _ := s.Get(uint32(v))
	if _, err := s.Set(uint32(v), fn(cur)); err != nil {
		return fmt.Errorf("vertex label %q: %w", name, err)
	}
	return nil
}

// UpdateEdgeLabel replaces the value of name on e with fn(current).
func (g *Graph) UpdateEdgeLabel(e model.Edge, name string, fn func(any) any) error {
	s, err := g.writableEdgeLabel(name)
	if err != nil || s == nil {
		return err
	}
	if !g.HasEdge(e) {
		return fmt.Errorf("edge %d: %w", e, ErrEdgeNotFound)
	}
	cur, _ := s.Get(uint32(e))
	if _, err := s.Set(uint32(e), fn(cur)); err != nil {
		return fmt.Errorf("edge label %q: %w", name, err)
	}
	return nil
}

// RemoveVertexLabel detaches name from v. Unknown labels and ids are ignored.
func (g *Graph) RemoveVertexLabel(v model.Vertex, name string) {
	if s, err := g.writableVertexLabel(name); err == nil && s != nil {
		s.Remove(uint32(v))
	}
}

// RemoveEdgeLabel detaches name from e. Unknown labels and ids are ignored.
func (g *Graph) RemoveEdgeLabel(e model.Edge, name string) {
	if s, err := g.writableEdgeLabel(name); err == nil && s != nil {
		s.Remove(uint32(e))
	}
}

// CheckVertexLabel reports whether value could be written to vertex label name.
func (g *Graph) CheckVertexLabel(name string, value any) error {
	s, err := g.writableVertexLabel(name)
	if err != nil || s == nil {
		return err
	}
	if err := s.Check(value); err != nil {
		return fmt.Errorf("vertex label %q: %w", name, err)
	}
	return nil
}

// CheckEdgeLabel reports whether value could be written to edge label name.
func (g *Graph) CheckEdgeLabel(name string, value any) error {
	s, err := g.writableEdgeLabel(name)
	if err != nil || s == nil {
		return err
	}
	if err := s.Check(value); err != nil {
		return fmt.Errorf("edge label %q: %w", name, err)
	}
	return nil
}

func (g *Graph) writableVertexLabel(name string) (storage.Storage, error) {
	if g.vertexLabels.isReserved(name) {
		return nil, fmt.Errorf("vertex label %q: %w", name, ErrReservedLabel)
	}
	s, _ := g.vertexLabels.get(name)
	return s, nil
}

func (g *Graph) writableEdgeLabel(name string) (storage.Storage, error) {
	if g.edgeLabels.isReserved(name) {
		return nil, fmt.Errorf("edge label %q: %w", name, ErrReservedLabel)
	}
	s, _ := g.edgeLabels.get(name)
	return s, nil
}

// GetVertex projects the named labels of v. A name appears in the result iff
// it is registered and v carries it; presence-only labels map to nil.
func (g *Graph) GetVertex(v model.Vertex, names ...string) map[string]any {
	return project(g.vertexLabels, uint32(v), names)
}

// GetEdge projects the named labels of e.
func (g *Graph) GetEdge(e model.Edge, names ...string) map[string]any {
	return project(g.edgeLabels, uint32(e), names)
}

func project(r *registry, id uint32, names []string) map[string]any {
	out := make(map[string]any, len(names))
	for _, name := range names {
		s, ok := r.get(name)
		if !ok {
			continue
		}
		if v, p := read(s, id); p.Present() {
			out[name] = v
		}
	}
	return out
}

// read fetches a value, copying adjacency sets so callers never hold a live one.
func read(s storage.Storage, id uint32) (any, storage.Presence) {
	v, p := s.Get(id)
	if rb, ok := v.(*roaring.Bitmap); ok {
		return rb.Clone(), p
	}
	return v, p
}

func (g *Graph) liveVertices() *roaring.Bitmap {
	return bitmap.AndNot(bitmap.Range(g.nextV), g.freeV)
}

func (g *Graph) liveEdges() *roaring.Bitmap {
	return bitmap.AndNot(bitmap.Range(g.nextE), g.freeE)
}

// V starts a traversal over the given vertices, or over every live vertex when
// none are given. Dead ids are dropped.
func (g *Graph) V(ids ...model.Vertex) VertexSelection {
	return g.vertexRoot(ids, NewSnapshots())
}

// E starts a traversal over the given edges, or over every live edge when none
// are given. Dead ids are dropped.
func (g *Graph) E(ids ...model.Edge) EdgeSelection {
	return g.edgeRoot(ids, NewSnapshots())
}

func (g *Graph) vertexRoot(ids []model.Vertex, snaps *Snapshots) VertexSelection {
	live := g.liveVertices()
	if len(ids) == 0 {
		return VertexSelection{g: g, mask: live, snaps: snaps}
	}
	mask := roaring.New()
	for _, v := range ids {
		mask.Add(uint32(v))
	}
	mask.And(live)
	return VertexSelection{g: g, mask: mask, snaps: snaps}
}

func (g *Graph) edgeRoot(ids []model.Edge, snaps *Snapshots) EdgeSelection {
	live := g.liveEdges()
	if len(ids) == 0 {
		return EdgeSelection{g: g, mask: live, snaps: snaps}
	}
	mask := roaring.New()
	for _, e := range ids {
		mask.Add(uint32(e))
	}
	mask.And(live)
	return EdgeSelection{g: g, mask: mask, snaps: snaps}
}
