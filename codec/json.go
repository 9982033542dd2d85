package codec

import "encoding/json"

// JSON renders results with encoding/json. Map keys are sorted, so the
// components of a record always print in the same order. Label values holding
// funcs, channels or complex numbers cannot be encoded.
type JSON struct{}

// Name returns the codec name used by --format ("json").
func (JSON) Name() string { return "json" }

// Marshal encodes the value to compact JSON.
func (JSON) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

// Unmarshal decodes the JSON data into v.
func (JSON) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

// MarshalIndent encodes the value with one indent per nesting level.
func (JSON) MarshalIndent(v any, prefix, indent string) ([]byte, error) {
	return json.MarshalIndent(v, prefix, indent)
}
