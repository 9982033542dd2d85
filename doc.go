// Package graphgo provides an embedded, in-memory property graph for Go with a
// bitmap-backed traversal algebra.
//
// Vertices and edges are dense uint32 ids. Data lives in named label columns
// (package storage), and every traversal step is a roaring bitmap operation
// (package graph). On top of that sit a projection layer (package fetch),
// reachability and path search (package search) and this package's World,
// which wraps the graph in an entity/component vocabulary.
//
// # Quick Start
//
//	w := graphgo.New()
//	_ = w.RegisterComponent("room", nil)
//	_ = w.RegisterComponent("dimensions", storage.NewDense[Dimensions]())
//	_ = w.RegisterRelation("has", nil)
//
//	wall, _ := w.Entity().With("wall", nil).Close()
//	room, _ := w.Entity().
//	    With("room", nil).
//	    With("dimensions", Dimensions{W: 10, H: 10}).
//	    Rel(func(r *graphgo.RelationBuilder) *graphgo.RelationBuilder {
//	        return r.To(wall).With("has", nil)
//	    }).
//	    Close()
//
// # Queries
//
// Fetch turns a traversal into records:
//
//	records := w.Fetch().
//	    On(func(s graph.VertexSelection) graph.VertexSelection {
//	        return s.HasLabel("room").Out("has").HasLabel("wall").In("has")
//	    }).
//	    WithComponents("dimensions").
//	    Collect()
//
// # Systems
//
// Systems are callbacks run once per Run, in registration order:
//
//	w.RegisterSystem("grow", graphgo.SystemFunc(func(ctx context.Context, w *graphgo.World) error {
//	    ...
//	}))
//	err := w.Run(ctx)
//
// # Observability
//
// WithLogger and WithMetricsCollector attach a slog based Logger and a
// MetricsCollector. Both default to no-ops.
package graphgo
