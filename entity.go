package graphgo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hupe1980/graphgo/model"
)

type opKind uint8

const (
	opWith opKind = iota
	opWithout
	opUpdate
)

// labelOp is one queued label mutation.
type labelOp struct {
	kind  opKind
	name  string
	value any
	fn    func(any) any
}

// resolveOps evaluates queued operations without touching the graph. Each
// update sees the value the operations before it would leave behind; its
// result is type-checked and queued as a With, so fn runs exactly once.
// current returns the stored value of a label and whether the label is
// registered. Updates of unregistered labels are dropped.
func resolveOps(ops []labelOp, check func(name string, value any) error, current func(name string) (any, bool)) ([]labelOp, error) {
	pending := make(map[string]any)
	out := make([]labelOp, 0, len(ops))
	for _, op := range ops {
		switch op.kind {
		case opWith:
			if err := check(op.name, op.value); err != nil {
				return nil, err
			}
			pending[op.name] = op.value
		case opWithout:
			if err := check(op.name, nil); err != nil {
				return nil, err
			}
			pending[op.name] = nil
		case opUpdate:
			if err := check(op.name, nil); err != nil {
				return nil, err
			}
			cur, registered := current(op.name)
			if !registered {
				continue
			}
			if v, ok := pending[op.name]; ok {
				cur = v
			}
			next := op.fn(cur)
			if err := check(op.name, next); err != nil {
				return nil, err
			}
			pending[op.name] = next
			op = labelOp{kind: opWith, name: op.name, value: next}
		}
		out = append(out, op)
	}
	return out, nil
}

// Updater adapts a typed update function for EntityBuilder.Update and
// RelationBuilder.Update. A missing or foreign value reaches fn as the zero T.
func Updater[T any](fn func(T) T) func(any) any {
	return func(cur any) any {
		t, _ := cur.(T)
		return fn(t)
	}
}

// EntityBuilder queues component changes for one entity and applies them on
// Close.
//
//	room, err := w.Entity().
//	    With("room", nil).
//	    With("dimensions", Dimensions{W: 10, H: 10}).
//	    Rel(func(r *graphgo.RelationBuilder) *graphgo.RelationBuilder {
//	        return r.To(wall).With("has", nil)
//	    }).
//	    Close()
type EntityBuilder struct {
	w        *World
	v        model.Vertex
	existing bool
	ops      []labelOp
	rels     []func(*RelationBuilder) *RelationBuilder
}

// With attaches component name with value. A nil value marks the component
// without data.
func (b *EntityBuilder) With(name string, value any) *EntityBuilder {
	b.ops = append(b.ops, labelOp{kind: opWith, name: name, value: value})
	return b
}

// Without detaches component name.
func (b *EntityBuilder) Without(name string) *EntityBuilder {
	b.ops = append(b.ops, labelOp{kind: opWithout, name: name})
	return b
}

// Update replaces the value of component name with fn(current).
func (b *EntityBuilder) Update(name string, fn func(any) any) *EntityBuilder {
	b.ops = append(b.ops, labelOp{kind: opUpdate, name: name, fn: fn})
	return b
}

// Rel queues a relation starting at this entity. fn receives a builder whose
// source is already set; the returned builder is closed after the entity.
// A nil return skips the relation.
func (b *EntityBuilder) Rel(fn func(*RelationBuilder) *RelationBuilder) *EntityBuilder {
	b.rels = append(b.rels, fn)
	return b
}

// Close applies the queued changes in order and returns the entity.
//
// Updates are evaluated and every resulting value is type-checked before the
// graph is touched, so a rejected entity leaves no trace. Relation failures
// are reported after the entity itself has been written.
func (b *EntityBuilder) Close() (model.Vertex, error) {
	start := time.Now()
	v, err := b.close()
	b.w.metrics.RecordEntityClose(time.Since(start), err)
	b.w.logger.LogEntityClose(context.Background(), v, len(b.ops), err)
	return v, err
}

func (b *EntityBuilder) close() (model.Vertex, error) {
	g := b.w.g
	if b.existing && !g.HasVertex(b.v) {
		return b.v, fmt.Errorf("entity %d: %w", b.v, ErrVertexNotFound)
	}
	ops, err := resolveOps(b.ops, g.CheckVertexLabel, func(name string) (any, bool) {
		if _, ok := g.VertexStorage(name); !ok {
			return nil, false
		}
		if !b.existing {
			return nil, true
		}
		return g.GetVertex(b.v, name)[name], true
	})
	if err != nil {
		return b.v, fmt.Errorf("entity: %w", err)
	}

	v := b.v
	if !b.existing {
		v = g.AddVertex()
	}
	for _, op := range ops {
		if op.kind == opWithout {
			g.RemoveVertexLabel(v, op.name)
			continue
		}
		if err := g.AddVertexLabel(v, op.name, op.value); err != nil {
			return v, fmt.Errorf("entity %d: %w", v, err)
		}
	}

	var errs []error
	for _, fn := range b.rels {
		rb := fn(b.w.Relation().From(v))
		if rb == nil {
			continue
		}
		if _, err := rb.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return v, fmt.Errorf("entity %d: %w", v, err)
	}
	return v, nil
}
