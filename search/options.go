package search

import "github.com/hupe1980/graphgo/model"

type options struct {
	children func(model.Vertex) []model.Vertex
	discover func(parent, child model.Vertex)
	layer    func([]model.Vertex)
	traverse func(model.Vertex) []Step
}

// Option configures a single search call.
type Option func(*options)

// WithChildren replaces the neighbourhood used by IsReachable and FindPath.
func WithChildren(fn func(model.Vertex) []model.Vertex) Option {
	return func(o *options) {
		if fn != nil {
			o.children = fn
		}
	}
}

// WithDiscover registers a callback for every newly reached vertex.
func WithDiscover(fn func(parent, child model.Vertex)) Option {
	return func(o *options) {
		o.discover = fn
	}
}

// WithLayer registers a callback for every completed, non-empty layer.
func WithLayer(fn func(layer []model.Vertex)) Option {
	return func(o *options) {
		o.layer = fn
	}
}

// WithTraverse replaces the step function used by Paths.
func WithTraverse(fn func(model.Vertex) []Step) Option {
	return func(o *options) {
		if fn != nil {
			o.traverse = fn
		}
	}
}
