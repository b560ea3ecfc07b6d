package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Payload is the field-name-to-value mapping sent to the prediction
// endpoint. Keys follow the schema's feature order exactly, and every field
// in the order is present, with nil standing in for unset values, so the
// service always receives a complete, stably-ordered key set.
type Payload struct {
	keys   []string
	values map[string]any
}

// NewPayload builds a payload by iterating order and reading values. Fields
// absent from values are included as nil rather than omitted.
func NewPayload(order []string, values map[string]any) Payload {
	p := Payload{
		keys:   append([]string(nil), order...),
		values: make(map[string]any, len(order)),
	}
	for _, name := range order {
		if value, ok := values[name]; ok {
			p.values[name] = value
			continue
		}
		p.values[name] = nil
	}
	return p
}

// Keys returns the payload's key sequence.
func (p Payload) Keys() []string {
	return append([]string(nil), p.keys...)
}

// Value returns the value stored for a field (nil for unset fields).
func (p Payload) Value(name string) any {
	return p.values[name]
}

// Len reports the number of fields.
func (p Payload) Len() int {
	return len(p.keys)
}

// MarshalJSON emits the payload as a JSON object whose keys appear in
// feature order, which map marshaling cannot guarantee.
func (p Payload) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range p.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, fmt.Errorf("schema: encode payload key %q: %w", name, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		value, err := json.Marshal(p.values[name])
		if err != nil {
			return nil, fmt.Errorf("schema: encode payload value %q: %w", name, err)
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
