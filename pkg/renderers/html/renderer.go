// Package html renders the prediction form as a single self-contained page:
// one control per schema field, an error banner, the result block, and the
// model-metrics panel.
package html

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/goliatone/go-riskform/pkg/render"
	rendertemplate "github.com/goliatone/go-riskform/pkg/render/template"
	"github.com/goliatone/go-riskform/pkg/render/template/gotemplate"
	"github.com/goliatone/go-riskform/pkg/schema"
)

// Option configures the renderer.
type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	title            string
	submitPath       string
	resetPath        string
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		if files != nil {
			cfg.templateFS = files
		}
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path != "" {
			cfg.templateFS = os.DirFS(path)
		}
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithTitle overrides the page title.
func WithTitle(title string) Option {
	return func(cfg *config) {
		if trimmed := strings.TrimSpace(title); trimmed != "" {
			cfg.title = trimmed
		}
	}
}

// WithSubmitPath overrides the form's submit action.
func WithSubmitPath(path string) Option {
	return func(cfg *config) {
		if path != "" {
			cfg.submitPath = path
		}
	}
}

// WithResetPath overrides the form's reset action.
func WithResetPath(path string) Option {
	return func(cfg *config) {
		if path != "" {
			cfg.resetPath = path
		}
	}
}

// Renderer implements render.Renderer for browser sessions.
type Renderer struct {
	templates  rendertemplate.TemplateRenderer
	title      string
	submitPath string
	resetPath  string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the HTML renderer applying any provided options. By default
// the embedded page template is used.
func New(options ...Option) (*Renderer, error) {
	cfg := config{
		templateFS: TemplatesFS(),
		title:      "Risk Prediction",
		submitPath: "/submit",
		resetPath:  "/reset",
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	templates := cfg.templateRenderer
	if templates == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("html: template engine: %w", err)
		}
		templates = engine
	}

	return &Renderer{
		templates:  templates,
		title:      cfg.title,
		submitPath: cfg.submitPath,
		resetPath:  cfg.resetPath,
	}, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "html"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render assembles the page: a control per field in feature order, the
// banner, the result block, and the metrics table.
func (r *Renderer) Render(ctx context.Context, form schema.FieldSchema, opts render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("html: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var fields strings.Builder
	for _, name := range form.FeatureOrder {
		fields.WriteString(renderField(name, form.MetaFor(name), opts.Values[name]))
	}

	page, err := r.templates.RenderTemplate("page", map[string]any{
		"title":       r.title,
		"error":       opts.Error,
		"loading":     opts.Loading,
		"has_schema":  !form.Empty(),
		"fields_html": fields.String(),
		"result_html": renderResult(opts.Result),
		"metrics":     opts.Metrics.Entries(),
		"submit_path": r.submitPath,
		"reset_path":  r.resetPath,
	})
	if err != nil {
		return nil, fmt.Errorf("html: render page: %w", err)
	}
	return []byte(page), nil
}
