package model

import (
	"fmt"
)

// Vertex is a dense vertex identifier.
// It is strictly 32-bit so that selections can be held in roaring bitmaps.
type Vertex uint32

// Edge is a dense edge identifier.
type Edge uint32

// MaxID is the largest identifier the store hands out.
const MaxID = ^uint32(0)

// Endpoints is the immutable (source, target) pair of an edge.
type Endpoints struct {
	From Vertex
	To   Vertex
}

// Other returns the endpoint opposite to v.
// For a self-loop both endpoints are v.
func (e Endpoints) Other(v Vertex) Vertex {
	if e.From == v {
		return e.To
	}
	return e.From
}

// String returns a string representation of the Endpoints.
func (e Endpoints) String() string {
	return fmt.Sprintf("%d->%d", e.From, e.To)
}

// Kind tells which universe a captured snapshot belongs to.
type Kind uint8

const (
	// KindUnknown marks a snapshot name that was never captured.
	KindUnknown Kind = iota
	// KindVertex marks a snapshot over vertex identifiers.
	KindVertex
	// KindEdge marks a snapshot over edge identifiers.
	KindEdge
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindVertex:
		return "vertex"
	case KindEdge:
		return "edge"
	default:
		return "unknown"
	}
}

// Vertices converts raw identifiers into vertices.
func Vertices(ids []uint32) []Vertex {
	out := make([]Vertex, len(ids))
	for i, id := range ids {
		out[i] = Vertex(id)
	}
	return out
}

// Edges converts raw identifiers into edges.
func Edges(ids []uint32) []Edge {
	out := make([]Edge, len(ids))
	for i, id := range ids {
		out[i] = Edge(id)
	}
	return out
}
