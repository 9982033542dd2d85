package graphgo

import (
	"errors"
	"fmt"

	"github.com/hupe1980/graphgo/graph"
	"github.com/hupe1980/graphgo/storage"
)

var (
	// ErrMissingSource is returned when a new relation is closed without From.
	ErrMissingSource = errors.New("relation has no source")

	// ErrMissingTarget is returned when a new relation is closed without To.
	ErrMissingTarget = errors.New("relation has no target")

	// ErrVertexNotFound aliases graph.ErrVertexNotFound.
	ErrVertexNotFound = graph.ErrVertexNotFound

	// ErrEdgeNotFound aliases graph.ErrEdgeNotFound.
	ErrEdgeNotFound = graph.ErrEdgeNotFound

	// ErrReservedLabel aliases graph.ErrReservedLabel.
	ErrReservedLabel = graph.ErrReservedLabel

	// ErrLabelExists aliases graph.ErrLabelExists.
	ErrLabelExists = graph.ErrLabelExists
)

// ErrTypeMismatch aliases storage.ErrTypeMismatch.
type ErrTypeMismatch = storage.ErrTypeMismatch

// ErrSystem reports a failed system run.
//
// The error returned by the system can be accessed via errors.Unwrap.
type ErrSystem struct {
	Name  string
	cause error
}

func (e *ErrSystem) Error() string {
	return fmt.Sprintf("system %q: %v", e.Name, e.cause)
}

func (e *ErrSystem) Unwrap() error { return e.cause }
