package client_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-riskform/pkg/client"
	"github.com/goliatone/go-riskform/pkg/schema"
)

func TestSchemaDecodesResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/schema" {
			t.Errorf("path = %q, want /schema", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{
			"feature_order": ["age", "category"],
			"field_meta": {"age": {"kind": "number"}}
		}`)
	}))
	defer server.Close()

	api := client.New(client.WithBaseURL(server.URL))
	got, err := api.Schema(context.Background())
	if err != nil {
		t.Fatalf("schema: %v", err)
	}

	want := schema.FieldSchema{
		FeatureOrder: []string{"age", "category"},
		FieldMeta:    map[string]schema.FieldMeta{"age": {Kind: schema.FieldKindNumber}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("schema mismatch (-want +got):\n%s", diff)
	}
}

func TestSchemaFailureUsesFixedMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "plain text boom", http.StatusBadGateway)
	}))
	defer server.Close()

	api := client.New(client.WithBaseURL(server.URL))
	_, err := api.Schema(context.Background())

	var statusErr *client.StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("error = %v, want *client.StatusError", err)
	}
	if statusErr.Code != http.StatusBadGateway {
		t.Fatalf("code = %d, want %d", statusErr.Code, http.StatusBadGateway)
	}
	if statusErr.Message != client.MsgSchemaFailed {
		t.Fatalf("message = %q, want %q", statusErr.Message, client.MsgSchemaFailed)
	}
}

func TestFailureDetailOverridesFixedMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = io.WriteString(w, `{"detail": "field age is out of range"}`)
	}))
	defer server.Close()

	api := client.New(client.WithBaseURL(server.URL))
	_, err := api.Predict(context.Background(), schema.NewPayload([]string{"age"}, nil))

	var statusErr *client.StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("error = %v, want *client.StatusError", err)
	}
	if statusErr.Message != "field age is out of range" {
		t.Fatalf("message = %q, want service detail", statusErr.Message)
	}
}

func TestPredictSendsWrappedOrderedPayload(t *testing.T) {
	var body []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var err error
		body, err = io.ReadAll(r.Body)
		if err != nil {
			t.Errorf("read body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"probability": 0.82, "risk_label": "High Risk", "inputs_used": {"age": 34}}`)
	}))
	defer server.Close()

	api := client.New(client.WithBaseURL(server.URL))
	payload := schema.NewPayload([]string{"zeta", "age", "category"}, map[string]any{
		"age":      34.0,
		"category": "B",
		"zeta":     1.0,
	})

	got, err := api.Predict(context.Background(), payload)
	if err != nil {
		t.Fatalf("predict: %v", err)
	}

	wantBody := `{"payload":{"zeta":1,"age":34,"category":"B"}}`
	if string(body) != wantBody {
		t.Fatalf("request body = %s, want %s", body, wantBody)
	}

	want := &schema.PredictionResult{
		Probability: 0.82,
		RiskLabel:   "High Risk",
		InputsUsed:  map[string]any{"age": float64(34)},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("result mismatch (-want +got):\n%s", diff)
	}
}

func TestMetricsDecodesSnapshot(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/metrics" {
			t.Errorf("path = %q, want /metrics", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"accuracy": 0.875, "model": "gb"})
	}))
	defer server.Close()

	api := client.New(client.WithBaseURL(server.URL))
	got, err := api.Metrics(context.Background())
	if err != nil {
		t.Fatalf("metrics: %v", err)
	}

	want := schema.MetricsSnapshot{"accuracy": 0.875, "model": "gb"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("metrics mismatch (-want +got):\n%s", diff)
	}
}

func TestNewTrimsTrailingSlash(t *testing.T) {
	api := client.New(client.WithBaseURL("http://example.test/api/"))
	if got := api.BaseURL(); got != "http://example.test/api" {
		t.Fatalf("base url = %q, want trailing slash trimmed", got)
	}
}
