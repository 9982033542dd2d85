// Package codec encodes query results written by the graphgo CLI.
//
// Every codec renders one value per call. Write adds the trailing newline and
// optional indentation; WriteLines streams a sequence as one value per line so
// large fetches never have to be materialized.
package codec

import (
	"fmt"
	"io"
	"iter"
)

// Codec encodes and decodes result values.
type Codec interface {
	Name() string
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

// Indenter is implemented by codecs that can pretty-print.
type Indenter interface {
	MarshalIndent(v any, prefix, indent string) ([]byte, error)
}

// Default is the codec used when none is chosen.
var Default Codec = GoJSON{}

var builtin = []Codec{JSON{}, GoJSON{}}

// Names lists the built-in codec names.
func Names() []string {
	names := make([]string, 0, len(builtin))
	for _, c := range builtin {
		names = append(names, c.Name())
	}
	return names
}

// ByName returns the built-in codec called name.
func ByName(name string) (Codec, bool) {
	for _, c := range builtin {
		if c.Name() == name {
			return c, true
		}
	}
	return nil, false
}

// Write encodes v to w followed by a newline. With pretty set, codecs that
// implement Indenter indent by two spaces; others fall back to Marshal.
func Write(w io.Writer, c Codec, v any, pretty bool) error {
	var (
		b   []byte
		err error
	)
	if in, ok := c.(Indenter); ok && pretty {
		b, err = in.MarshalIndent(v, "", "  ")
	} else {
		b, err = c.Marshal(v)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", c.Name(), err)
	}
	b = append(b, '\n')
	_, err = w.Write(b)
	return err
}

// WriteLines encodes every element of seq on its own line and returns the
// number of lines written. It stops at the first error.
func WriteLines[T any](w io.Writer, c Codec, seq iter.Seq[T]) (int, error) {
	n := 0
	for v := range seq {
		if err := Write(w, c, v, false); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

// MustMarshal encodes v with c, or Default when c is nil, and panics on error.
func MustMarshal(c Codec, v any) []byte {
	if c == nil {
		c = Default
	}
	b, err := c.Marshal(v)
	if err != nil {
		panic(fmt.Errorf("codec %s: %w", c.Name(), err))
	}
	return b
}
