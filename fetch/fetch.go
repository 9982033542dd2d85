// Package fetch projects traversal results into nested records.
//
// A Fetcher wraps a root vertex selection. Each selected vertex becomes a
// Record holding the requested label values, the records of every named
// sub-fetch rooted at that vertex and the edges of every named relation fetch.
package fetch

import (
	"iter"

	"github.com/hupe1980/graphgo/graph"
	"github.com/hupe1980/graphgo/model"
)

// Record is the projection of one vertex.
type Record struct {
	Entity     model.Vertex          `json:"entity"`
	Components map[string]any        `json:"components,omitempty"`
	Sub        map[string][]Record   `json:"sub,omitempty"`
	Relations  map[string][]Relation `json:"relations,omitempty"`
}

// Relation is the projection of one edge, seen from the vertex it was
// fetched for.
type Relation struct {
	Relation   model.Edge     `json:"relation"`
	Other      model.Vertex   `json:"other"`
	Components map[string]any `json:"components,omitempty"`
}

type subFetch struct {
	name       string
	fn         func(graph.VertexSelection) graph.VertexSelection
	components []string
}

type relationFetch struct {
	name       string
	fn         func(graph.VertexSelection) graph.EdgeSelection
	components []string
}

// Fetcher builds a projection over a vertex selection.
type Fetcher struct {
	g          *graph.Graph
	root       graph.VertexSelection
	components []string
	subs       []subFetch
	relations  []relationFetch
}

// New creates a Fetcher rooted at ids, or at every live vertex when none are
// given.
func New(g *graph.Graph, ids ...model.Vertex) *Fetcher {
	return &Fetcher{g: g, root: g.V(ids...)}
}

// On narrows the root selection with fn.
func (f *Fetcher) On(fn func(graph.VertexSelection) graph.VertexSelection) *Fetcher {
	f.root = fn(f.root)
	return f
}

// WithComponents sets the vertex labels projected into each record.
func (f *Fetcher) WithComponents(names ...string) *Fetcher {
	f.components = names
	return f
}

// SubFetch adds a nested projection. For every record, fn is applied to a
// fresh selection holding only that record's vertex.
func (f *Fetcher) SubFetch(name string, fn func(graph.VertexSelection) graph.VertexSelection, components ...string) *Fetcher {
	f.subs = append(f.subs, subFetch{name: name, fn: fn, components: components})
	return f
}

// RelationsFetch adds an edge projection. For every record, fn maps the
// record's vertex to the edges to report; components are read from each edge.
func (f *Fetcher) RelationsFetch(name string, fn func(graph.VertexSelection) graph.EdgeSelection, components ...string) *Fetcher {
	f.relations = append(f.relations, relationFetch{name: name, fn: fn, components: components})
	return f
}

// Seq yields one record per selected vertex in ascending id order. Records are
// computed as the sequence is pulled.
func (f *Fetcher) Seq() iter.Seq[Record] {
	return func(yield func(Record) bool) {
		for v := range f.root.Seq() {
			if !yield(f.record(v)) {
				return
			}
		}
	}
}

// Collect materializes every record.
func (f *Fetcher) Collect() []Record {
	out := make([]Record, 0, f.root.Count())
	for r := range f.Seq() {
		out = append(out, r)
	}
	return out
}

// First returns the record of the smallest selected vertex.
func (f *Fetcher) First() (Record, bool) {
	for r := range f.Seq() {
		return r, true
	}
	return Record{}, false
}

// Count returns the number of records Seq would yield.
func (f *Fetcher) Count() int { return f.root.Count() }

func (f *Fetcher) record(v model.Vertex) Record {
	r := Record{
		Entity:     v,
		Components: f.g.GetVertex(v, f.components...),
	}
	if len(f.subs) > 0 {
		r.Sub = make(map[string][]Record, len(f.subs))
		for _, s := range f.subs {
			r.Sub[s.name] = New(f.g, v).On(s.fn).WithComponents(s.components...).Collect()
		}
	}
	if len(f.relations) > 0 {
		r.Relations = make(map[string][]Relation, len(f.relations))
		for _, rf := range f.relations {
			r.Relations[rf.name] = f.relate(v, rf)
		}
	}
	return r
}

func (f *Fetcher) relate(v model.Vertex, rf relationFetch) []Relation {
	edges := rf.fn(f.g.V(v))
	out := make([]Relation, 0, edges.Count())
	for e := range edges.Seq() {
		ends, ok := f.g.Endpoints(e)
		if !ok {
			continue
		}
		out = append(out, Relation{
			Relation:   e,
			Other:      ends.Other(v),
			Components: f.g.GetEdge(e, rf.components...),
		})
	}
	return out
}
