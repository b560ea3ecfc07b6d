package html

import (
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/goliatone/go-riskform/pkg/schema"
)

// renderField builds the markup for one control. Dispatch follows the
// resolved control kind, so unrecognized or missing metadata degrades to a
// plain text input instead of failing the page.
func renderField(name string, meta schema.FieldMeta, value any) string {
	var builder strings.Builder
	builder.Grow(256)

	builder.WriteString(`<div class="field" data-kind="`)
	builder.WriteString(html.EscapeString(string(meta.Control())))
	builder.WriteString("\">\n")

	builder.WriteString(`    <label for="rf-`)
	builder.WriteString(html.EscapeString(name))
	builder.WriteString(`">`)
	builder.WriteString(html.EscapeString(schema.Label(name)))
	builder.WriteString("</label>\n")

	switch meta.Control() {
	case schema.FieldKindNumber:
		writeNumberInput(&builder, name, meta, value)
	case schema.FieldKindSelect:
		writeSelect(&builder, name, meta, value)
	default:
		writeTextInput(&builder, name, meta, value)
	}

	builder.WriteString("</div>\n")
	return builder.String()
}

func writeNumberInput(builder *strings.Builder, name string, meta schema.FieldMeta, value any) {
	builder.WriteString(`    <input type="number" step="any" id="rf-`)
	builder.WriteString(html.EscapeString(name))
	builder.WriteString(`" name="`)
	builder.WriteString(html.EscapeString(name))
	builder.WriteString(`"`)
	if current := displayValue(value); current != "" {
		builder.WriteString(` value="`)
		builder.WriteString(html.EscapeString(current))
		builder.WriteString(`"`)
	}
	// min/max/placeholder are presentation hints only; the browser is not
	// asked to enforce them beyond its default affordances.
	if meta.Min != nil {
		builder.WriteString(` min="`)
		builder.WriteString(formatFloat(*meta.Min))
		builder.WriteString(`"`)
	}
	if meta.Max != nil {
		builder.WriteString(` max="`)
		builder.WriteString(formatFloat(*meta.Max))
		builder.WriteString(`"`)
	}
	if meta.Placeholder != "" {
		builder.WriteString(` placeholder="`)
		builder.WriteString(html.EscapeString(meta.Placeholder))
		builder.WriteString(`"`)
	}
	builder.WriteString(">\n")
}

func writeSelect(builder *strings.Builder, name string, meta schema.FieldMeta, value any) {
	current := displayValue(value)

	builder.WriteString(`    <select id="rf-`)
	builder.WriteString(html.EscapeString(name))
	builder.WriteString(`" name="`)
	builder.WriteString(html.EscapeString(name))
	builder.WriteString("\">\n")

	builder.WriteString(`        <option value="">Select&hellip;</option>` + "\n")
	for _, option := range meta.Options {
		text := displayValue(option)
		builder.WriteString(`        <option value="`)
		builder.WriteString(html.EscapeString(text))
		builder.WriteString(`"`)
		if current != "" && current == text {
			builder.WriteString(` selected`)
		}
		builder.WriteString(`>`)
		builder.WriteString(html.EscapeString(text))
		builder.WriteString("</option>\n")
	}

	builder.WriteString("    </select>\n")
}

func writeTextInput(builder *strings.Builder, name string, meta schema.FieldMeta, value any) {
	builder.WriteString(`    <input type="text" id="rf-`)
	builder.WriteString(html.EscapeString(name))
	builder.WriteString(`" name="`)
	builder.WriteString(html.EscapeString(name))
	builder.WriteString(`"`)
	if current := displayValue(value); current != "" {
		builder.WriteString(` value="`)
		builder.WriteString(html.EscapeString(current))
		builder.WriteString(`"`)
	}
	if meta.Placeholder != "" {
		builder.WriteString(` placeholder="`)
		builder.WriteString(html.EscapeString(meta.Placeholder))
		builder.WriteString(`"`)
	}
	builder.WriteString(">\n")
}

// displayValue renders a stored value for attribute embedding. Numbers drop
// the trailing zero noise so 34.0 round-trips as "34".
func displayValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return formatFloat(v)
	default:
		return fmt.Sprint(v)
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
