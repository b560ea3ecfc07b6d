package html

import (
	"strconv"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-riskform/pkg/result"
	"github.com/goliatone/go-riskform/pkg/schema"
)

var (
	labelPolicyOnce sync.Once
	labelPolicy     *bluemonday.Policy
)

// renderResult builds the markup for a prediction result: the formatted
// probability, the tiered risk label, and a proportional fill bar. It is a
// pure projection of the result; the probability is never re-derived.
func renderResult(res *schema.PredictionResult) string {
	if res == nil {
		return ""
	}

	severity := result.Classify(res.RiskLabel)
	label := sanitizeRemoteText(res.RiskLabel)
	if label == "" {
		label = severity.Describe()
	}
	width := strconv.FormatFloat(result.BarWidth(res.Probability), 'f', 1, 64)

	var builder strings.Builder
	builder.Grow(512)

	builder.WriteString(`<section class="result">` + "\n")
	builder.WriteString("    <h2>Prediction</h2>\n")

	builder.WriteString(`    <div class="probability `)
	builder.WriteString(severity.CSSClass())
	builder.WriteString(`">`)
	builder.WriteString(result.FormatProbability(res.Probability))
	builder.WriteString("</div>\n")

	builder.WriteString(`    <div class="risk-label `)
	builder.WriteString(severity.CSSClass())
	builder.WriteString(`">`)
	builder.WriteString(label)
	builder.WriteString("</div>\n")

	builder.WriteString(`    <div class="bar"><div class="bar-fill `)
	builder.WriteString(severity.CSSClass())
	builder.WriteString(`" style="width: `)
	builder.WriteString(width)
	builder.WriteString(`%"></div></div>` + "\n")

	builder.WriteString("</section>\n")
	return builder.String()
}

// sanitizeRemoteText strips any markup from a service-provided display
// string before it is embedded in the page. The strict policy's output is
// already entity-escaped, so no further escaping is applied.
func sanitizeRemoteText(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(remoteTextPolicy().Sanitize(trimmed))
}

func remoteTextPolicy() *bluemonday.Policy {
	labelPolicyOnce.Do(func() {
		labelPolicy = bluemonday.StrictPolicy()
	})
	return labelPolicy
}
