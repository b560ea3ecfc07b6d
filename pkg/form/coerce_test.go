package form_test

import (
	"testing"

	"github.com/goliatone/go-riskform/pkg/form"
	"github.com/goliatone/go-riskform/pkg/schema"
)

func TestCoerceNumber(t *testing.T) {
	cases := []struct {
		raw  string
		want any
	}{
		{"", nil},
		{"34", 34.0},
		{"34.5", 34.5},
		{"-2", -2.0},
		{"abc", nil},
		{"NaN", nil},
		{"Inf", nil},
		{"1e3", 1000.0},
	}
	for _, tc := range cases {
		if got := form.CoerceNumber(tc.raw); got != tc.want {
			t.Errorf("CoerceNumber(%q) = %v, want %v", tc.raw, got, tc.want)
		}
	}
}

func TestCoerceChoice(t *testing.T) {
	cases := []struct {
		raw  string
		want any
	}{
		{"", nil},
		{"2", 2.0},
		{"2.5", 2.5},
		{"B", "B"},
		{"NaN", "NaN"},
	}
	for _, tc := range cases {
		if got := form.CoerceChoice(tc.raw); got != tc.want {
			t.Errorf("CoerceChoice(%q) = %v, want %v", tc.raw, got, tc.want)
		}
	}
}

func TestCoerceText(t *testing.T) {
	if got := form.CoerceText(""); got != nil {
		t.Errorf("CoerceText(\"\") = %v, want nil", got)
	}
	if got := form.CoerceText("hello"); got != "hello" {
		t.Errorf("CoerceText(\"hello\") = %v, want hello", got)
	}
}

func TestCoerceValueDispatchesOnControl(t *testing.T) {
	number := schema.FieldMeta{Kind: schema.FieldKindNumber}
	if got := form.CoerceValue(number, "34"); got != 34.0 {
		t.Errorf("number coercion = %v, want 34.0", got)
	}

	choice := schema.FieldMeta{Kind: schema.FieldKindSelect}
	if got := form.CoerceValue(choice, "B"); got != "B" {
		t.Errorf("select coercion = %v, want B", got)
	}

	// Unknown kinds degrade to text handling.
	unknown := schema.FieldMeta{Kind: "slider"}
	if got := form.CoerceValue(unknown, "34"); got != "34" {
		t.Errorf("unknown kind coercion = %v, want raw string", got)
	}
}
