package graphgo

import (
	"context"
	"fmt"
	"time"

	"github.com/hupe1980/graphgo/model"
)

// RelationBuilder queues label changes for one relation and applies them on
// Close. A new relation needs both From and To; an existing one keeps its
// endpoints and ignores them.
type RelationBuilder struct {
	w        *World
	e        model.Edge
	existing bool
	from     model.Vertex
	to       model.Vertex
	hasFrom  bool
	hasTo    bool
	ops      []labelOp
}

// From sets the source entity.
func (b *RelationBuilder) From(v model.Vertex) *RelationBuilder {
	b.from, b.hasFrom = v, true
	return b
}

// To sets the target entity.
func (b *RelationBuilder) To(v model.Vertex) *RelationBuilder {
	b.to, b.hasTo = v, true
	return b
}

// With attaches relation label name with value.
func (b *RelationBuilder) With(name string, value any) *RelationBuilder {
	b.ops = append(b.ops, labelOp{kind: opWith, name: name, value: value})
	return b
}

// Without detaches relation label name.
func (b *RelationBuilder) Without(name string) *RelationBuilder {
	b.ops = append(b.ops, labelOp{kind: opWithout, name: name})
	return b
}

// Update replaces the value of relation label name with fn(current).
func (b *RelationBuilder) Update(name string, fn func(any) any) *RelationBuilder {
	b.ops = append(b.ops, labelOp{kind: opUpdate, name: name, fn: fn})
	return b
}

// Close validates the builder, creates the edge if needed and applies the
// queued changes in order.
func (b *RelationBuilder) Close() (model.Edge, error) {
	start := time.Now()
	e, err := b.close()
	b.w.metrics.RecordRelationClose(time.Since(start), err)
	b.w.logger.LogRelationClose(context.Background(), e, len(b.ops), err)
	return e, err
}

func (b *RelationBuilder) close() (model.Edge, error) {
	g := b.w.g
	if b.existing {
		if !g.HasEdge(b.e) {
			return b.e, fmt.Errorf("relation %d: %w", b.e, ErrEdgeNotFound)
		}
	} else {
		switch {
		case !b.hasFrom:
			return 0, ErrMissingSource
		case !b.hasTo:
			return 0, ErrMissingTarget
		case !g.HasVertex(b.from):
			return 0, fmt.Errorf("relation source %d: %w", b.from, ErrVertexNotFound)
		case !g.HasVertex(b.to):
			return 0, fmt.Errorf("relation target %d: %w", b.to, ErrVertexNotFound)
		}
	}
	ops, err := resolveOps(b.ops, g.CheckEdgeLabel, func(name string) (any, bool) {
		if _, ok := g.EdgeStorage(name); !ok {
			return nil, false
		}
		if !b.existing {
			return nil, true
		}
		return g.GetEdge(b.e, name)[name], true
	})
	if err != nil {
		return b.e, fmt.Errorf("relation: %w", err)
	}

	e := b.e
	if !b.existing {
		if e, err = g.AddEdge(b.from, b.to); err != nil {
			return 0, err
		}
	}
	for _, op := range ops {
		if op.kind == opWithout {
			g.RemoveEdgeLabel(e, op.name)
			continue
		}
		if err := g.AddEdgeLabel(e, op.name, op.value); err != nil {
			return e, fmt.Errorf("relation %d: %w", e, err)
		}
	}
	return e, nil
}
