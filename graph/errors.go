package graph

import "errors"

var (
	// ErrVertexNotFound is returned when a mutation targets a vertex that was
	// never allocated or has been removed.
	ErrVertexNotFound = errors.New("vertex not found")

	// ErrEdgeNotFound is returned when a mutation targets an edge that was
	// never allocated or has been removed.
	ErrEdgeNotFound = errors.New("edge not found")

	// ErrReservedLabel is returned when a caller tries to register or write one
	// of the adjacency labels the store maintains itself.
	ErrReservedLabel = errors.New("label is reserved")

	// ErrLabelExists is returned when a label name is registered twice.
	ErrLabelExists = errors.New("label already registered")
)
