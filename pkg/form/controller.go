// Package form owns the mutable state behind a prediction form session: the
// field schema, the metrics snapshot, the value map, and the submit
// lifecycle. Rendering layers read and write only through the controller.
package form

import (
	"context"
	"sync"

	"github.com/goliatone/go-riskform/pkg/schema"
)

// API is the slice of the prediction service the controller depends on.
// *client.Client satisfies it; tests inject stubs.
type API interface {
	Schema(ctx context.Context) (schema.FieldSchema, error)
	Metrics(ctx context.Context) (schema.MetricsSnapshot, error)
	Predict(ctx context.Context, payload schema.Payload) (*schema.PredictionResult, error)
}

// UIState mirrors what the page reflects: a loading flag, a banner error,
// and the latest result. Error and Result are mutually exclusive; each submit
// attempt clears both before setting one.
type UIState struct {
	Loading bool
	Error   string
	Result  *schema.PredictionResult
}

// Controller drives one form session. All mutable state lives here; renderers
// receive snapshots and push edits through SetValue.
type Controller struct {
	mu sync.Mutex

	api API

	schema       schema.FieldSchema
	schemaLoaded bool
	metrics      schema.MetricsSnapshot
	values       map[string]any
	state        UIState

	// generation invalidates in-flight responses: Reset and each new attempt
	// bump it, and a response whose captured generation no longer matches is
	// dropped instead of applied.
	generation uint64
}

// NewController builds a controller bound to a service API.
func NewController(api API) *Controller {
	return &Controller{
		api:    api,
		values: make(map[string]any),
	}
}

// Load runs the initial serial fetch: schema first, then metrics. A schema
// failure surfaces in the banner and skips the metrics request entirely; a
// metrics failure surfaces in the banner but leaves the schema-driven form
// usable. There is no automatic retry.
func (c *Controller) Load(ctx context.Context) {
	c.mu.Lock()
	c.generation++
	gen := c.generation
	c.mu.Unlock()

	loaded, err := c.api.Schema(ctx)

	c.mu.Lock()
	if gen != c.generation {
		c.mu.Unlock()
		return
	}
	if err != nil {
		c.state.Error = errorMessage(err, "Failed to fetch schema")
		c.mu.Unlock()
		return
	}
	c.schema = loaded
	c.schemaLoaded = true
	c.mu.Unlock()

	metrics, err := c.api.Metrics(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation {
		return
	}
	if err != nil {
		c.state.Error = errorMessage(err, "Failed to fetch metrics")
		return
	}
	c.metrics = metrics
}

// UseSchema installs a schema obtained outside the service, for example a
// local document. Any in-flight load or submit response is abandoned.
func (c *Controller) UseSchema(s schema.FieldSchema) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.generation++
	c.schema = s
	c.schemaLoaded = true
}

// LoadMetrics fetches only the metrics snapshot, for sessions whose schema
// was installed locally. Failures surface in the banner.
func (c *Controller) LoadMetrics(ctx context.Context) {
	c.mu.Lock()
	gen := c.generation
	c.mu.Unlock()

	metrics, err := c.api.Metrics(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation {
		return
	}
	if err != nil {
		c.state.Error = errorMessage(err, "Failed to fetch metrics")
		return
	}
	c.metrics = metrics
}

// SetValue records an edit. The value map is rebuilt rather than mutated in
// place so snapshots handed to renderers stay stable.
func (c *Controller) SetValue(name string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := make(map[string]any, len(c.values)+1)
	for k, v := range c.values {
		next[k] = v
	}
	next[name] = value
	c.values = next
}

// Submit assembles the payload in feature order and sends it. At most one
// submission is in flight: a call while loading is a no-op. The loading flag
// is cleared exactly once per attempt regardless of outcome.
func (c *Controller) Submit(ctx context.Context) {
	c.mu.Lock()
	if c.state.Loading || !c.schemaLoaded {
		c.mu.Unlock()
		return
	}
	c.generation++
	gen := c.generation
	c.state = UIState{Loading: true}
	payload := buildPayload(c.schema, c.values)
	c.mu.Unlock()

	result, err := c.api.Predict(ctx, payload)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation {
		return
	}
	if err != nil {
		c.state = UIState{Error: errorMessage(err, "Prediction failed")}
		return
	}
	c.state = UIState{Result: result}
}

// Reset clears the value map and the current result, keeping the loaded
// schema, metrics, and any banner error. An in-flight response is abandoned.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.generation++
	c.values = make(map[string]any)
	c.state = UIState{Error: c.state.Error}
}

// Payload returns what Submit would send right now: every field from the
// schema's feature order, with nil standing in for unset values.
func (c *Controller) Payload() schema.Payload {
	c.mu.Lock()
	defer c.mu.Unlock()
	return buildPayload(c.schema, c.values)
}

// Schema returns the loaded schema and whether the load has happened.
func (c *Controller) Schema() (schema.FieldSchema, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.schema, c.schemaLoaded
}

// Metrics returns the last successfully loaded metrics snapshot.
func (c *Controller) Metrics() schema.MetricsSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.metrics
}

// Values returns a copy of the current value map.
func (c *Controller) Values() map[string]any {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make(map[string]any, len(c.values))
	for k, v := range c.values {
		out[k] = v
	}
	return out
}

// State returns the current UI state snapshot.
func (c *Controller) State() UIState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func buildPayload(s schema.FieldSchema, values map[string]any) schema.Payload {
	return schema.NewPayload(s.FeatureOrder, values)
}

func errorMessage(err error, fallback string) string {
	if err == nil || err.Error() == "" {
		return fallback
	}
	return err.Error()
}
