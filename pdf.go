package offerdoc

import (
	"context"
	"strings"
)

// PageBreakMarker is the placeholder authors type to force a page break.
const PageBreakMarker = "[SAUT_PAGE]"

// pageBreakHTML replaces PageBreakMarker in rendered documents.
const pageBreakHTML = `<div style="page-break-after: always;"></div>`

// DefaultPDFMargin is used for any PDF margin left empty.
const DefaultPDFMargin = "0mm"

// Margins are the page margins of a rendered PDF, as CSS lengths.
type Margins struct {
	Top    string `json:"top"`
	Right  string `json:"right"`
	Bottom string `json:"bottom"`
	Left   string `json:"left"`
}

// WithDefaults returns m with empty margins set to DefaultPDFMargin.
func (m Margins) WithDefaults() Margins {
	for _, p := range []*string{&m.Top, &m.Right, &m.Bottom, &m.Left} {
		if *p == "" {
			*p = DefaultPDFMargin
		}
	}
	return m
}

// MarginsFromConfig returns the PDF margins of a template config.
func MarginsFromConfig(cfg Config) Margins {
	return Margins{
		Top:    cfg.MarginTop,
		Right:  cfg.MarginRight,
		Bottom: cfg.MarginBottom,
		Left:   cfg.MarginLeft,
	}
}

// PDFRequest describes a document to render.
type PDFRequest struct {
	Content string
	Header  string
	Footer  string
	CSS     string
	Margins Margins

	// Options are extra renderer flags keyed by name without leading dashes.
	// An empty value produces a bare flag.
	Options map[string]string
}

// Validate returns an error if the request cannot be rendered.
func (r *PDFRequest) Validate() error {
	if strings.TrimSpace(r.Content) == "" {
		return Errorf(EINVALID, "HTML content is required")
	}
	return nil
}

// Renderer renders HTML documents to PDF.
type Renderer interface {
	// RenderPDF returns the PDF bytes for req.
	// Returns EINVALID if the request has no content.
	RenderPDF(ctx context.Context, req *PDFRequest) ([]byte, error)
}

// ExpandPageBreaks replaces every page break marker in s with a CSS page break.
func ExpandPageBreaks(s string) string {
	return strings.ReplaceAll(s, PageBreakMarker, pageBreakHTML)
}
