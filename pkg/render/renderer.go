package render

import (
	"context"

	"github.com/goliatone/go-riskform/pkg/schema"
)

// Renderer converts a field schema plus session state into a byte
// representation (an HTML page, a terminal session transcript, JSON).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, form schema.FieldSchema, options RenderOptions) ([]byte, error)
}
