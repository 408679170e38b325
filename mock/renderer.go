package mock

import (
	"context"

	"github.com/fwojciec/offerdoc"
)

var _ offerdoc.Renderer = (*Renderer)(nil)

// Renderer is a mock implementation of offerdoc.Renderer.
type Renderer struct {
	RenderPDFFn func(ctx context.Context, req *offerdoc.PDFRequest) ([]byte, error)
}

func (r *Renderer) RenderPDF(ctx context.Context, req *offerdoc.PDFRequest) ([]byte, error) {
	return r.RenderPDFFn(ctx, req)
}
