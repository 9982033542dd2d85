package graphgo

import (
	"context"
	"errors"
	"time"

	"github.com/hupe1980/graphgo/fetch"
	"github.com/hupe1980/graphgo/graph"
	"github.com/hupe1980/graphgo/model"
	"github.com/hupe1980/graphgo/search"
	"github.com/hupe1980/graphgo/storage"
)

// System is a unit of logic run against the World by Run.
type System interface {
	Execute(ctx context.Context, w *World) error
}

// SystemFunc adapts a function to System.
type SystemFunc func(ctx context.Context, w *World) error

// Execute implements System.
func (f SystemFunc) Execute(ctx context.Context, w *World) error { return f(ctx, w) }

type namedSystem struct {
	name   string
	system System
}

// World bundles a graph with the builders, fetchers and systems working on it.
// Entities are vertices, components are vertex labels, relations are edges
// and relation types are edge labels.
//
// A World is not safe for concurrent use.
type World struct {
	g       *graph.Graph
	systems []namedSystem
	logger  *Logger
	metrics MetricsCollector
}

// New creates an empty World.
func New(optFns ...Option) *World {
	o := applyOptions(optFns)
	w := &World{
		g:       graph.New(),
		logger:  o.logger,
		metrics: o.metricsCollector,
	}
	for _, s := range o.systems {
		w.RegisterSystem(s.name, s.system)
	}
	return w
}

// Graph returns the underlying graph.
func (w *World) Graph() *graph.Graph { return w.g }

// RegisterComponent registers a vertex label. A nil storage registers a
// presence-only component.
func (w *World) RegisterComponent(name string, s storage.Storage) error {
	return w.g.RegisterVertexLabel(name, s)
}

// RegisterRelation registers an edge label. A nil storage registers a
// presence-only relation type.
func (w *World) RegisterRelation(name string, s storage.Storage) error {
	return w.g.RegisterEdgeLabel(name, s)
}

// RegisterSystem adds a system. Registering a name again replaces the system
// and keeps its position.
func (w *World) RegisterSystem(name string, s System) {
	for i := range w.systems {
		if w.systems[i].name == name {
			w.systems[i].system = s
			return
		}
	}
	w.systems = append(w.systems, namedSystem{name: name, system: s})
}

// Systems lists the registered system names in run order.
func (w *World) Systems() []string {
	names := make([]string, len(w.systems))
	for i, s := range w.systems {
		names[i] = s.name
	}
	return names
}

// Run executes every system once in registration order. A failing system does
// not stop the ones after it; all failures are joined. Run stops early when
// ctx is done.
func (w *World) Run(ctx context.Context) error {
	var errs []error
	for _, s := range w.systems {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		start := time.Now()
		err := s.system.Execute(ctx, w)
		elapsed := time.Since(start)

		w.metrics.RecordSystemRun(s.name, elapsed, err)
		w.logger.LogSystemRun(ctx, s.name, elapsed, err)
		if err != nil {
			errs = append(errs, &ErrSystem{Name: s.name, cause: err})
		}
	}
	return errors.Join(errs...)
}

// Entity starts a builder for a new entity.
func (w *World) Entity() *EntityBuilder {
	return &EntityBuilder{w: w}
}

// EntityOf starts a builder that modifies the existing entity v.
func (w *World) EntityOf(v model.Vertex) *EntityBuilder {
	return &EntityBuilder{w: w, v: v, existing: true}
}

// Relation starts a builder for a new relation.
func (w *World) Relation() *RelationBuilder {
	return &RelationBuilder{w: w}
}

// RelationOf starts a builder that modifies the existing relation e.
func (w *World) RelationOf(e model.Edge) *RelationBuilder {
	return &RelationBuilder{w: w, e: e, existing: true}
}

// Fetch starts a fetch rooted at ids, or at every entity when none are given.
func (w *World) Fetch(ids ...model.Vertex) *fetch.Fetcher {
	return fetch.New(w.g, ids...)
}

// Collect materializes f and records the fetch.
func (w *World) Collect(ctx context.Context, f *fetch.Fetcher) []fetch.Record {
	start := time.Now()
	records := f.Collect()
	elapsed := time.Since(start)

	w.metrics.RecordFetch(len(records), elapsed)
	w.logger.LogFetch(ctx, len(records), elapsed)
	return records
}

// Search returns the graph algorithms bound to this World's graph.
func (w *World) Search() *search.Search {
	return search.New(w.g)
}
