package form

import (
	"math"
	"strconv"

	"github.com/goliatone/go-riskform/pkg/schema"
)

// CoerceValue turns a raw input string into the typed value stored for a
// field, dispatching on the resolved control kind. Absence is represented
// uniformly as nil across all kinds so payload assembly never has to guess.
func CoerceValue(meta schema.FieldMeta, raw string) any {
	switch meta.Control() {
	case schema.FieldKindNumber:
		return CoerceNumber(raw)
	case schema.FieldKindSelect:
		return CoerceChoice(raw)
	default:
		return CoerceText(raw)
	}
}

// CoerceNumber parses a numeric input. Empty or unparseable input yields nil,
// never NaN. Range hints are not enforced here.
func CoerceNumber(raw string) any {
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return nil
	}
	return value
}

// CoerceChoice handles select input: the empty sentinel yields nil, a choice
// that parses as a finite number is stored numerically, anything else keeps
// the raw string.
func CoerceChoice(raw string) any {
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return raw
	}
	return value
}

// CoerceText passes strings through, mapping empty input to nil.
func CoerceText(raw string) any {
	if raw == "" {
		return nil
	}
	return raw
}
