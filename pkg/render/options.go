package render

import "github.com/goliatone/go-riskform/pkg/schema"

// RenderOptions carry per-request session state into a renderer without the
// renderer ever owning it: current values, the banner error, the latest
// result, and the metrics snapshot.
type RenderOptions struct {
	// Values pre-populates controls keyed by field name. Nil entries render
	// as unset.
	Values map[string]any
	// Error is the banner message surfaced when a fetch or submit failed.
	Error string
	// Loading disables the submit trigger while a request is in flight.
	Loading bool
	// Result, when non-nil, is presented alongside the form.
	Result *schema.PredictionResult
	// Metrics feeds the model-metrics panel; nil hides it.
	Metrics schema.MetricsSnapshot
}
