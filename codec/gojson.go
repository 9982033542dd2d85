package codec

import gojson "github.com/goccy/go-json"

// GoJSON renders results with github.com/goccy/go-json. Output matches JSON
// byte for byte on the values a fetch produces.
type GoJSON struct{}

// Name returns the codec name used by --format ("go-json").
func (GoJSON) Name() string { return "go-json" }

// Marshal encodes the value to compact JSON.
func (GoJSON) Marshal(v any) ([]byte, error) { return gojson.Marshal(v) }

// Unmarshal decodes the JSON data into v.
func (GoJSON) Unmarshal(data []byte, v any) error { return gojson.Unmarshal(data, v) }

// MarshalIndent encodes the value with one indent per nesting level.
func (GoJSON) MarshalIndent(v any, prefix, indent string) ([]byte, error) {
	return gojson.MarshalIndent(v, prefix, indent)
}
