// Package tui collects prediction inputs through interactive terminal
// prompts: one prompt per schema field, walked in feature order.
package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-riskform/pkg/form"
	"github.com/goliatone/go-riskform/pkg/render"
	"github.com/goliatone/go-riskform/pkg/schema"
)

// skipChoice is the sentinel select entry that leaves a field unset.
const skipChoice = "(leave blank)"

// Renderer implements render.Renderer for terminal sessions.
type Renderer struct {
	driver       PromptDriver
	outputFormat OutputFormat
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the TUI renderer. Without options it prompts through a
// survey-backed driver and serializes the payload as JSON.
func New(options ...Option) *Renderer {
	r := &Renderer{
		driver:       newSurveyDriver(),
		outputFormat: OutputFormatJSON,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	if r.outputFormat == OutputFormatPrettyText {
		return "text/plain; charset=utf-8"
	}
	return "application/json"
}

// Render walks the fields in feature order, prompting once per field and
// coercing each answer to its typed value. The serialized payload keeps the
// feature order and carries null for fields the user skipped.
func (r *Renderer) Render(ctx context.Context, formSchema schema.FieldSchema, opts render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if formSchema.Empty() {
		return nil, errors.New("tui: schema has no fields")
	}

	values := make(map[string]any, len(formSchema.FeatureOrder))
	for name, value := range opts.Values {
		values[name] = value
	}

	for _, name := range formSchema.FeatureOrder {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		meta := formSchema.MetaFor(name)
		value, err := r.promptField(ctx, name, meta, values[name])
		if err != nil {
			return nil, err
		}
		if value == nil {
			delete(values, name)
			continue
		}
		values[name] = value
	}

	payload := schema.NewPayload(formSchema.FeatureOrder, values)
	return r.serialize(payload)
}

func (r *Renderer) promptField(ctx context.Context, name string, meta schema.FieldMeta, current any) (any, error) {
	switch meta.Control() {
	case schema.FieldKindNumber:
		return r.promptNumber(ctx, name, meta, current)
	case schema.FieldKindSelect:
		return r.promptSelect(ctx, name, meta, current)
	default:
		return r.promptText(ctx, name, meta, current)
	}
}

// promptNumber re-prompts until the answer parses; an empty answer leaves
// the field unset.
func (r *Renderer) promptNumber(ctx context.Context, name string, meta schema.FieldMeta, current any) (any, error) {
	cfg := InputConfig{
		Message:     schema.Label(name),
		Default:     displayValue(current),
		Help:        numberHelp(meta),
		Placeholder: meta.Placeholder,
	}
	for {
		raw, err := r.driver.Input(ctx, cfg)
		if err != nil {
			return nil, err
		}
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			return nil, nil
		}
		if value := form.CoerceNumber(trimmed); value != nil {
			return value, nil
		}
		if err := r.driver.Info(ctx, fmt.Sprintf("%q is not a number, try again or leave blank to skip", raw)); err != nil {
			return nil, err
		}
	}
}

func (r *Renderer) promptSelect(ctx context.Context, name string, meta schema.FieldMeta, current any) (any, error) {
	options := make([]string, 0, len(meta.Options)+1)
	options = append(options, skipChoice)
	for _, option := range meta.Options {
		options = append(options, optionLabel(option))
	}

	defaultIndex := 0
	if display := displayValue(current); display != "" {
		if i := indexOf(options, display); i > 0 {
			defaultIndex = i
		}
	}

	choice, err := r.driver.Select(ctx, SelectConfig{
		Message:      schema.Label(name),
		Options:      options,
		DefaultIndex: defaultIndex,
	})
	if err != nil {
		return nil, err
	}
	if choice <= 0 || choice >= len(options) {
		return nil, nil
	}
	return form.CoerceChoice(options[choice]), nil
}

func (r *Renderer) promptText(ctx context.Context, name string, meta schema.FieldMeta, current any) (any, error) {
	raw, err := r.driver.Input(ctx, InputConfig{
		Message:     schema.Label(name),
		Default:     displayValue(current),
		Placeholder: meta.Placeholder,
	})
	if err != nil {
		return nil, err
	}
	return form.CoerceText(raw), nil
}

func (r *Renderer) serialize(payload schema.Payload) ([]byte, error) {
	if r.outputFormat == OutputFormatPrettyText {
		var builder strings.Builder
		for _, name := range payload.Keys() {
			value := payload.Value(name)
			builder.WriteString(name)
			builder.WriteString(" = ")
			if value == nil {
				builder.WriteString("(unset)")
			} else {
				builder.WriteString(displayValue(value))
			}
			builder.WriteString("\n")
		}
		return []byte(builder.String()), nil
	}

	out, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("tui: serialize payload: %w", err)
	}
	return out, nil
}

func numberHelp(meta schema.FieldMeta) string {
	switch {
	case meta.Min != nil && meta.Max != nil:
		return fmt.Sprintf("between %s and %s", formatBound(*meta.Min), formatBound(*meta.Max))
	case meta.Min != nil:
		return fmt.Sprintf("at least %s", formatBound(*meta.Min))
	case meta.Max != nil:
		return fmt.Sprintf("at most %s", formatBound(*meta.Max))
	default:
		return ""
	}
}

func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func optionLabel(option any) string {
	switch v := option.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func displayValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}
