package template

import "io"

// TemplateRenderer mirrors the github.com/goliatone/go-template engine
// contract, giving renderers a seam they can satisfy with the bundled
// pongo2-backed engine or any compatible implementation.
type TemplateRenderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
}
