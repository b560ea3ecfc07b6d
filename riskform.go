// Package riskform turns a prediction service's field schema into a working
// form: controls are rendered per field, typed values are collected, and the
// ordered payload is submitted for a probability and risk tier.
package riskform

import (
	"context"

	"github.com/goliatone/go-riskform/pkg/client"
	"github.com/goliatone/go-riskform/pkg/form"
	"github.com/goliatone/go-riskform/pkg/render"
	"github.com/goliatone/go-riskform/pkg/renderers/html"
	"github.com/goliatone/go-riskform/pkg/schema"
)

// FieldSchema is the server-declared form description.
type FieldSchema = schema.FieldSchema

// FieldMeta describes how a single field is collected.
type FieldMeta = schema.FieldMeta

// PredictionResult is the service response to a submitted payload.
type PredictionResult = schema.PredictionResult

// MetricsSnapshot is the opaque metrics mapping the service exposes.
type MetricsSnapshot = schema.MetricsSnapshot

// RenderOptions carries per-render session state into a renderer.
type RenderOptions = render.RenderOptions

// NewClient exposes the service client constructor from the top-level module.
func NewClient(options ...client.Option) *client.Client {
	return client.New(options...)
}

// NewController builds a form session controller bound to a service API.
func NewController(api form.API) *form.Controller {
	return form.NewController(api)
}

// GenerateHTML is the simplest entry point for callers that just want the
// form page: it fetches the schema and metrics from the service and renders
// the initial page.
func GenerateHTML(ctx context.Context, api *client.Client, options ...html.Option) ([]byte, error) {
	renderer, err := html.New(options...)
	if err != nil {
		return nil, err
	}

	controller := form.NewController(api)
	controller.Load(ctx)

	fields, _ := controller.Schema()
	state := controller.State()
	return renderer.Render(ctx, fields, render.RenderOptions{
		Values:  controller.Values(),
		Error:   state.Error,
		Loading: state.Loading,
		Result:  state.Result,
		Metrics: controller.Metrics(),
	})
}
