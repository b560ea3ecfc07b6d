package schema_test

import (
	"encoding/json"
	"testing"

	"github.com/goliatone/go-riskform/pkg/schema"
)

func TestPayloadMarshalKeepsFeatureOrder(t *testing.T) {
	order := []string{"zeta", "age", "category"}
	payload := schema.NewPayload(order, map[string]any{
		"age":      34.0,
		"category": "B",
		"zeta":     1.5,
	})

	got, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"zeta":1.5,"age":34,"category":"B"}`
	if string(got) != want {
		t.Fatalf("payload = %s, want %s", got, want)
	}
}

func TestPayloadFillsUnsetFieldsWithNull(t *testing.T) {
	payload := schema.NewPayload([]string{"age", "category"}, map[string]any{
		"age": 34.0,
	})

	got, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"age":34,"category":null}`
	if string(got) != want {
		t.Fatalf("payload = %s, want %s", got, want)
	}

	if value := payload.Value("category"); value != nil {
		t.Fatalf("unset field value = %v, want nil", value)
	}
	if payload.Len() != 2 {
		t.Fatalf("len = %d, want 2", payload.Len())
	}
}

func TestPayloadIgnoresValuesOutsideOrder(t *testing.T) {
	payload := schema.NewPayload([]string{"age"}, map[string]any{
		"age":      34.0,
		"intruder": "x",
	})

	got, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"age":34}`
	if string(got) != want {
		t.Fatalf("payload = %s, want %s", got, want)
	}
}
