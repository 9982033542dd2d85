// Package graph implements the in-memory property graph and its traversal
// algebra.
//
// # Store
//
// Vertices and edges are dense uint32 ids. A removed id goes to a free list
// and is handed out again, lowest first, by the next allocation of its kind.
// Labels are named column storages (see package storage), registered once per
// graph. Three labels are maintained by the store itself:
//
//	out   vertex -> set of outgoing edge ids
//	in    vertex -> set of incoming edge ids
//	->    edge   -> (source, target)
//
// Removing a vertex removes every incident edge first; removing an edge drops
// it from both endpoints' adjacency sets and from every edge label.
//
// # Traversal
//
// V and E start a chain. Each step returns a new selection holding its own
// roaring bitmap, so a selection is frozen at the moment it was computed:
//
//	rooms := g.V().HasLabel("room")
//	withWindows := rooms.
//	    Out("has").HasLabel("wall").
//	    Out("has").HasLabel("window").
//	    In("has").In("has")
//
// Steps along one chain share a Snapshots context. As and Let record masks
// by name; And, Or, From, Select and EdgeBuilder read them back:
//
//	g.V(fred).
//	    Let("hated", func(t graph.VertexSelection) graph.VertexSelection { return t.Out("hates") }).
//	    Let("known", func(t graph.VertexSelection) graph.VertexSelection { return t.Out("knows") }).
//	    And("hated", "known")
//
// Unregistered label names behave like empty masks. Dead ids read as absent
// and their removal is a no-op.
package graph
