package schema

import "strings"

// FieldKind enumerates the control variants a prediction service can declare
// for a field. Unknown kinds are valid input and degrade to text rendering.
type FieldKind string

const (
	FieldKindNumber FieldKind = "number"
	FieldKindSelect FieldKind = "select"
	FieldKindText   FieldKind = "text"
)

// FieldMeta describes how a single field should be collected. Min, Max, and
// Placeholder are presentation hints only; out-of-range values are still
// accepted and submitted as-is.
type FieldMeta struct {
	Kind        FieldKind `json:"kind" yaml:"kind"`
	Min         *float64  `json:"min,omitempty" yaml:"min,omitempty"`
	Max         *float64  `json:"max,omitempty" yaml:"max,omitempty"`
	Placeholder string    `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Options     []any     `json:"options,omitempty" yaml:"options,omitempty"`
}

// Control resolves the concrete control variant for the meta, folding
// unrecognized kinds into text so a malformed schema never breaks rendering.
func (m FieldMeta) Control() FieldKind {
	switch m.Kind {
	case FieldKindNumber, FieldKindSelect, FieldKindText:
		return m.Kind
	default:
		return FieldKindText
	}
}

// FieldSchema is the server-declared form description: the canonical field
// sequence plus per-field metadata. FeatureOrder is authoritative for payload
// key order; FieldMeta entries are optional per field.
type FieldSchema struct {
	FeatureOrder []string             `json:"feature_order" yaml:"feature_order"`
	FieldMeta    map[string]FieldMeta `json:"field_meta" yaml:"field_meta"`
}

// MetaFor returns the metadata for a field, defaulting to a bare text control
// when the schema omits the entry.
func (s FieldSchema) MetaFor(name string) FieldMeta {
	if meta, ok := s.FieldMeta[name]; ok {
		return meta
	}
	return FieldMeta{Kind: FieldKindText}
}

// Empty reports whether the schema declares no fields.
func (s FieldSchema) Empty() bool {
	return len(s.FeatureOrder) == 0
}

// Label derives a display label from a field name by replacing separator
// characters with spaces. The stored key is never affected.
func Label(name string) string {
	replacer := strings.NewReplacer("_", " ", "-", " ")
	return strings.Join(strings.Fields(replacer.Replace(name)), " ")
}

// PredictionResult is the service response to a submitted payload. It is
// immutable once received; callers replace it wholesale on each submission.
type PredictionResult struct {
	Probability float64        `json:"probability"`
	RiskLabel   string         `json:"risk_label"`
	InputsUsed  map[string]any `json:"inputs_used"`
}
