package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/offerdoc"
)

// Ensure LoggingRenderer implements offerdoc.Renderer.
var _ offerdoc.Renderer = (*LoggingRenderer)(nil)

// LoggingRenderer wraps a Renderer with logging.
type LoggingRenderer struct {
	next   offerdoc.Renderer
	logger *slog.Logger
}

// NewLoggingRenderer creates a new LoggingRenderer.
func NewLoggingRenderer(next offerdoc.Renderer, logger *slog.Logger) *LoggingRenderer {
	return &LoggingRenderer{next: next, logger: logger}
}

// RenderPDF delegates to the wrapped renderer and logs input and output sizes.
func (r *LoggingRenderer) RenderPDF(ctx context.Context, req *offerdoc.PDFRequest) (pdf []byte, err error) {
	defer func(begin time.Time) {
		r.logger.Info("render pdf",
			"html_bytes", len(req.Content),
			"pdf_bytes", len(pdf),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return r.next.RenderPDF(ctx, req)
}
