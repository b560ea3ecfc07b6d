package tui_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-riskform/pkg/render"
	"github.com/goliatone/go-riskform/pkg/renderers/tui"
	"github.com/goliatone/go-riskform/pkg/schema"
)

// scriptDriver replays canned answers and records every prompt message.
type scriptDriver struct {
	t *testing.T

	inputs  []string
	selects []int

	prompts []string
	infos   []string
}

func (d *scriptDriver) Input(_ context.Context, cfg tui.InputConfig) (string, error) {
	d.prompts = append(d.prompts, cfg.Message)
	if len(d.inputs) == 0 {
		d.t.Fatalf("unexpected input prompt %q", cfg.Message)
	}
	answer := d.inputs[0]
	d.inputs = d.inputs[1:]
	return answer, nil
}

func (d *scriptDriver) Select(_ context.Context, cfg tui.SelectConfig) (int, error) {
	d.prompts = append(d.prompts, cfg.Message)
	if len(d.selects) == 0 {
		d.t.Fatalf("unexpected select prompt %q", cfg.Message)
	}
	choice := d.selects[0]
	d.selects = d.selects[1:]
	if choice < 0 || choice >= len(cfg.Options) {
		d.t.Fatalf("scripted choice %d out of range for %v", choice, cfg.Options)
	}
	return choice, nil
}

func (d *scriptDriver) Info(_ context.Context, msg string) error {
	d.infos = append(d.infos, msg)
	return nil
}

func testSchema() schema.FieldSchema {
	return schema.FieldSchema{
		FeatureOrder: []string{"age", "category", "notes"},
		FieldMeta: map[string]schema.FieldMeta{
			"age":      {Kind: schema.FieldKindNumber},
			"category": {Kind: schema.FieldKindSelect, Options: []any{"A", "B"}},
		},
	}
}

func TestSessionCollectsOrderedPayload(t *testing.T) {
	driver := &scriptDriver{
		t:       t,
		inputs:  []string{"34", "hello"},
		selects: []int{2}, // "B" after the skip entry
	}
	session := tui.New(tui.WithPromptDriver(driver))

	out, err := session.Render(context.Background(), testSchema(), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	want := `{"age":34,"category":"B","notes":"hello"}`
	if string(out) != want {
		t.Fatalf("payload = %s, want %s", out, want)
	}

	wantPrompts := []string{"age", "category", "notes"}
	if diff := cmp.Diff(wantPrompts, driver.prompts); diff != "" {
		t.Fatalf("prompt order mismatch (-want +got):\n%s", diff)
	}
}

func TestSessionSkippedFieldsBecomeNull(t *testing.T) {
	driver := &scriptDriver{
		t:       t,
		inputs:  []string{"", ""},
		selects: []int{0}, // skip entry
	}
	session := tui.New(tui.WithPromptDriver(driver))

	out, err := session.Render(context.Background(), testSchema(), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	want := `{"age":null,"category":null,"notes":null}`
	if string(out) != want {
		t.Fatalf("payload = %s, want %s", out, want)
	}
}

func TestSessionRepromptsBadNumbers(t *testing.T) {
	driver := &scriptDriver{
		t:       t,
		inputs:  []string{"abc", "NaN", "34", ""},
		selects: []int{0},
	}
	session := tui.New(tui.WithPromptDriver(driver))

	out, err := session.Render(context.Background(), testSchema(), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	want := `{"age":34,"category":null,"notes":null}`
	if string(out) != want {
		t.Fatalf("payload = %s, want %s", out, want)
	}
	if len(driver.infos) != 2 {
		t.Fatalf("info messages = %v, want two re-prompt notices", driver.infos)
	}
}

func TestSessionNumericChoiceStoredAsNumber(t *testing.T) {
	fields := schema.FieldSchema{
		FeatureOrder: []string{"tier"},
		FieldMeta: map[string]schema.FieldMeta{
			"tier": {Kind: schema.FieldKindSelect, Options: []any{1.0, 2.0}},
		},
	}
	driver := &scriptDriver{t: t, selects: []int{1}}
	session := tui.New(tui.WithPromptDriver(driver))

	out, err := session.Render(context.Background(), fields, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if string(out) != `{"tier":1}` {
		t.Fatalf("payload = %s, want numeric choice", out)
	}
}

func TestSessionPrettyOutput(t *testing.T) {
	driver := &scriptDriver{
		t:       t,
		inputs:  []string{"34", ""},
		selects: []int{0},
	}
	session := tui.New(
		tui.WithPromptDriver(driver),
		tui.WithOutputFormat(tui.OutputFormatPrettyText),
	)

	out, err := session.Render(context.Background(), testSchema(), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	text := string(out)
	for _, line := range []string{"age = 34", "category = (unset)", "notes = (unset)"} {
		if !strings.Contains(text, line) {
			t.Fatalf("output missing %q:\n%s", line, text)
		}
	}
}

func TestSessionRejectsEmptySchema(t *testing.T) {
	session := tui.New(tui.WithPromptDriver(&scriptDriver{t: t}))
	if _, err := session.Render(context.Background(), schema.FieldSchema{}, render.RenderOptions{}); err == nil {
		t.Fatal("expected error for empty schema")
	}
}
