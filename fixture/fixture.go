// Package fixture loads graphs described in YAML into a World.
//
//	components:
//	  - name: room
//	  - name: dimensions
//	    storage: dense
//	relations:
//	  - name: has
//	entities:
//	  - key: r1
//	    with: {room: null, dimensions: {w: 10, h: 10}}
//	  - key: w1
//	links:
//	  - {from: r1, to: w1, with: {has: null}}
//
// Entities are created in file order, so their vertex ids follow that order
// on a fresh World. Links are created after every entity exists.
package fixture

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"

	"github.com/hupe1980/graphgo"
	"github.com/hupe1980/graphgo/model"
	"github.com/hupe1980/graphgo/storage"
	"gopkg.in/yaml.v3"
)

var (
	// ErrDuplicateKey is returned when two entities share a key.
	ErrDuplicateKey = errors.New("duplicate entity key")

	// ErrUnknownKey is returned when a link or lookup names a key that no
	// entity declares.
	ErrUnknownKey = errors.New("unknown entity key")

	// ErrUnknownStorage is returned for an unsupported storage or type name.
	ErrUnknownStorage = errors.New("unknown storage")
)

// Fixture is the decoded YAML document.
type Fixture struct {
	Components []Label  `yaml:"components"`
	Relations  []Label  `yaml:"relations"`
	Entities   []Entity `yaml:"entities"`
	Links      []Link   `yaml:"links"`
}

// Label declares a component or relation type.
type Label struct {
	Name string `yaml:"name"`
	// Storage is null (default), dense or sparse.
	Storage string `yaml:"storage,omitempty"`
	// Type restricts values of dense and sparse storages: any (default), int,
	// float, string or bool.
	Type string `yaml:"type,omitempty"`
}

// Entity declares a vertex and its components.
type Entity struct {
	Key  string         `yaml:"key"`
	With map[string]any `yaml:"with,omitempty"`
}

// Link declares an edge between two entity keys.
type Link struct {
	From string         `yaml:"from"`
	To   string         `yaml:"to"`
	With map[string]any `yaml:"with,omitempty"`
}

// Parse decodes a fixture. Unknown fields are rejected.
func Parse(data []byte) (*Fixture, error) {
	return Load(bytes.NewReader(data))
}

// Load decodes a fixture from r.
func Load(r io.Reader) (*Fixture, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f Fixture
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode fixture: %w", err)
	}
	return &f, nil
}

// LoadFile decodes the fixture stored at path.
func LoadFile(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}
	return Parse(data)
}

// Marshal encodes f back to YAML.
func (f *Fixture) Marshal() ([]byte, error) {
	return yaml.Marshal(f)
}

// Build registers the fixture's labels on w and creates its entities and
// links.
func (f *Fixture) Build(w *graphgo.World) (Index, error) {
	for _, l := range f.Components {
		s, err := l.storage()
		if err != nil {
			return nil, fmt.Errorf("component %q: %w", l.Name, err)
		}
		if err := w.RegisterComponent(l.Name, s); err != nil {
			return nil, err
		}
	}
	for _, l := range f.Relations {
		s, err := l.storage()
		if err != nil {
			return nil, fmt.Errorf("relation %q: %w", l.Name, err)
		}
		if err := w.RegisterRelation(l.Name, s); err != nil {
			return nil, err
		}
	}

	componentTypes := declaredTypes(f.Components)
	relationTypes := declaredTypes(f.Relations)

	idx := make(Index, len(f.Entities))
	for i, e := range f.Entities {
		if e.Key != "" {
			if _, ok := idx[e.Key]; ok {
				return nil, fmt.Errorf("entity %d: %w: %q", i, ErrDuplicateKey, e.Key)
			}
		}
		b := w.Entity()
		for _, name := range sortedKeys(e.With) {
			b.With(name, coerce(componentTypes[name], e.With[name]))
		}
		v, err := b.Close()
		if err != nil {
			return nil, fmt.Errorf("entity %q: %w", e.Key, err)
		}
		if e.Key != "" {
			idx[e.Key] = v
		}
	}

	for i, l := range f.Links {
		from, err := idx.Lookup(l.From)
		if err != nil {
			return nil, fmt.Errorf("link %d: %w", i, err)
		}
		to, err := idx.Lookup(l.To)
		if err != nil {
			return nil, fmt.Errorf("link %d: %w", i, err)
		}
		b := w.Relation().From(from).To(to)
		for _, name := range sortedKeys(l.With) {
			b.With(name, coerce(relationTypes[name], l.With[name]))
		}
		if _, err := b.Close(); err != nil {
			return nil, fmt.Errorf("link %d: %w", i, err)
		}
	}
	return idx, nil
}

func (l Label) storage() (storage.Storage, error) {
	switch l.Storage {
	case "", "null":
		if l.Type != "" {
			return nil, fmt.Errorf("%w: null storage cannot hold %q values", ErrUnknownStorage, l.Type)
		}
		return storage.NewNull(), nil
	case "dense":
		return typed(l.Type, denseOf)
	case "sparse":
		return typed(l.Type, sparseOf)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStorage, l.Storage)
	}
}

type factory struct {
	anyS, intS, floatS, stringS, boolS func() storage.Storage
}

var denseOf = factory{
	anyS:    func() storage.Storage { return storage.NewDense[any]() },
	intS:    func() storage.Storage { return storage.NewDense[int]() },
	floatS:  func() storage.Storage { return storage.NewDense[float64]() },
	stringS: func() storage.Storage { return storage.NewDense[string]() },
	boolS:   func() storage.Storage { return storage.NewDense[bool]() },
}

var sparseOf = factory{
	anyS:    func() storage.Storage { return storage.NewSparse[any]() },
	intS:    func() storage.Storage { return storage.NewSparse[int]() },
	floatS:  func() storage.Storage { return storage.NewSparse[float64]() },
	stringS: func() storage.Storage { return storage.NewSparse[string]() },
	boolS:   func() storage.Storage { return storage.NewSparse[bool]() },
}

func typed(name string, f factory) (storage.Storage, error) {
	switch name {
	case "", "any":
		return f.anyS(), nil
	case "int":
		return f.intS(), nil
	case "float":
		return f.floatS(), nil
	case "string":
		return f.stringS(), nil
	case "bool":
		return f.boolS(), nil
	default:
		return nil, fmt.Errorf("%w: type %q", ErrUnknownStorage, name)
	}
}

func declaredTypes(labels []Label) map[string]string {
	types := make(map[string]string, len(labels))
	for _, l := range labels {
		types[l.Name] = l.Type
	}
	return types
}

// coerce widens YAML integers to float64 for float labels; `weight: 1`
// decodes as an int.
func coerce(typ string, v any) any {
	if typ != "float" {
		return v
	}
	switch n := v.(type) {
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case uint64:
		return float64(n)
	}
	return v
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Index maps entity keys to the vertices Build allocated for them.
type Index map[string]model.Vertex

// Lookup resolves an entity key.
func (idx Index) Lookup(key string) (model.Vertex, error) {
	v, ok := idx[key]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	return v, nil
}

// Resolve accepts an entity key or a decimal vertex id.
func (idx Index) Resolve(ref string) (model.Vertex, error) {
	if v, ok := idx[ref]; ok {
		return v, nil
	}
	n, err := strconv.ParseUint(ref, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrUnknownKey, ref)
	}
	return model.Vertex(n), nil
}

// Key returns the key declared for v.
func (idx Index) Key(v model.Vertex) (string, bool) {
	for k, id := range idx {
		if id == v {
			return k, true
		}
	}
	return "", false
}
