// Package result projects a prediction result into display values. It is a
// pure, side-effect-free layer: probabilities and labels are formatted and
// tiered, never re-derived or re-validated.
package result

import "fmt"

// Severity is the display tier derived from the service's risk label.
type Severity string

const (
	SeverityHigh     Severity = "high"
	SeverityModerate Severity = "moderate"
	SeverityLow      Severity = "low"
)

// Classify maps a risk label to a severity tier by string equality. Unknown
// labels fall into the low tier, matching the service's default bucket.
func Classify(riskLabel string) Severity {
	switch riskLabel {
	case "High Risk":
		return SeverityHigh
	case "Moderate Risk":
		return SeverityModerate
	default:
		return SeverityLow
	}
}

// FormatProbability renders a [0,1] probability as a percentage with one
// decimal place, e.g. 0.82 -> "82.0%".
func FormatProbability(p float64) string {
	return fmt.Sprintf("%.1f%%", p*100)
}

// BarWidth converts a probability into a fill width percentage for the
// proportional bar, clamped to [0,100].
func BarWidth(p float64) float64 {
	width := p * 100
	if width < 0 {
		return 0
	}
	if width > 100 {
		return 100
	}
	return width
}

// CSSClass returns the style hook used by the HTML presenter for the tier.
func (s Severity) CSSClass() string {
	switch s {
	case SeverityHigh:
		return "severity-high"
	case SeverityModerate:
		return "severity-moderate"
	default:
		return "severity-low"
	}
}

// Describe returns the human copy used by terminal output for the tier.
func (s Severity) Describe() string {
	switch s {
	case SeverityHigh:
		return "High Risk"
	case SeverityModerate:
		return "Moderate Risk"
	default:
		return "Lower Risk"
	}
}
