package graph

import (
	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/graphgo/storage"
)

// registry maps label names to storages and remembers registration order.
type registry struct {
	names    []string
	byName   map[string]storage.Storage
	reserved map[string]struct{}
}

func newRegistry() *registry {
	return &registry{
		byName:   make(map[string]storage.Storage),
		reserved: make(map[string]struct{}),
	}
}

func (r *registry) reserve(name string, s storage.Storage) {
	r.reserved[name] = struct{}{}
	r.names = append(r.names, name)
	r.byName[name] = s
}

func (r *registry) register(name string, s storage.Storage) error {
	if r.isReserved(name) {
		return ErrReservedLabel
	}
	if _, ok := r.byName[name]; ok {
		return ErrLabelExists
	}
	if s == nil {
		s = storage.NewNull()
	}
	r.names = append(r.names, name)
	r.byName[name] = s
	return nil
}

func (r *registry) isReserved(name string) bool {
	_, ok := r.reserved[name]
	return ok
}

func (r *registry) get(name string) (storage.Storage, bool) {
	s, ok := r.byName[name]
	return s, ok
}

// mask returns the presence mask of name, or nil for unregistered names.
func (r *registry) mask(name string) *roaring.Bitmap {
	if s, ok := r.byName[name]; ok {
		return s.Mask()
	}
	return nil
}

// userNames lists every non-reserved label in registration order.
func (r *registry) userNames() []string {
	out := make([]string, 0, len(r.names))
	for _, n := range r.names {
		if !r.isReserved(n) {
			out = append(out, n)
		}
	}
	return out
}

// removeAll drops id from every storage, reserved ones included.
func (r *registry) removeAll(id uint32) {
	for _, n := range r.names {
		r.byName[n].Remove(id)
	}
}
