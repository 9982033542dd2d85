package graph

import (
	"iter"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/graphgo/internal/bitmap"
	"github.com/hupe1980/graphgo/model"
	"github.com/hupe1980/graphgo/storage"
)

// Selection is the capability set shared by vertex and edge selections.
type Selection interface {
	// Kind reports the universe the selection ranges over.
	Kind() model.Kind
	// Mask returns a copy of the selected ids.
	Mask() *roaring.Bitmap
	// Count returns the number of selected ids.
	Count() int
	// Some reports whether at least one id is selected.
	Some() bool
	// None reports whether the selection is empty.
	None() bool
	// Select materializes named snapshots of the chain.
	Select(names ...string) map[string]Capture
	// Snapshots returns the chain's snapshot context.
	Snapshots() *Snapshots
}

var (
	_ Selection = VertexSelection{}
	_ Selection = EdgeSelection{}
)

// LabelSet lists the labels one selected id carries.
type LabelSet[ID ~uint32] struct {
	ID     ID
	Labels []string
}

// Match adapts a typed predicate for MatchesValue. Values that are not a T do
// not match.
func Match[T any](pred func(T) bool) func(any) bool {
	return func(v any) bool {
		t, ok := v.(T)
		return ok && pred(t)
	}
}

// filterValues keeps the ids of mask whose stored value for name satisfies pred.
func filterValues(r *registry, mask *roaring.Bitmap, name string, pred func(any) bool) *roaring.Bitmap {
	out := roaring.New()
	s, ok := r.get(name)
	if !ok {
		return out
	}
	for id := range bitmap.Seq(mask) {
		if v, p := read(s, id); p == storage.Stored && pred(v) {
			out.Add(id)
		}
	}
	return out
}

// values yields the stored values of names for every id in mask.
func values(r *registry, mask *roaring.Bitmap, names []string) iter.Seq[any] {
	if len(names) == 0 {
		names = r.userNames()
	}
	return func(yield func(any) bool) {
		for id := range bitmap.Seq(mask) {
			for _, name := range names {
				s, ok := r.get(name)
				if !ok {
					continue
				}
				if v, p := read(s, id); p == storage.Stored {
					if !yield(v) {
						return
					}
				}
			}
		}
	}
}

func labels[ID ~uint32](r *registry, mask *roaring.Bitmap) []LabelSet[ID] {
	names := r.userNames()
	out := make([]LabelSet[ID], 0, mask.GetCardinality())
	for id := range bitmap.Seq(mask) {
		set := LabelSet[ID]{ID: ID(id), Labels: []string{}}
		for _, name := range names {
			if bitmap.Contains(r.mask(name), id) {
				set.Labels = append(set.Labels, name)
			}
		}
		out = append(out, set)
	}
	return out
}
