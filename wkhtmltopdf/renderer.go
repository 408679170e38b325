// Package wkhtmltopdf renders offerdoc PDFs with the wkhtmltopdf binary.
package wkhtmltopdf

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"

	"github.com/fwojciec/offerdoc"
)

// DefaultBinary is the executable looked up on PATH when none is configured.
const DefaultBinary = "wkhtmltopdf"

// basePrelude is prepended to every stylesheet so user styles can override it.
const basePrelude = "body { font-family: Arial, sans-serif; }\n"

// Ensure Renderer implements offerdoc.Renderer at compile time.
var _ offerdoc.Renderer = (*Renderer)(nil)

// Renderer writes the document into a temporary directory and runs
// wkhtmltopdf on it.
type Renderer struct {
	binary string
	logger *slog.Logger
}

// NewRenderer creates a Renderer running binary. An empty binary means
// DefaultBinary; a nil logger discards wkhtmltopdf warnings.
func NewRenderer(binary string, logger *slog.Logger) *Renderer {
	if binary == "" {
		binary = DefaultBinary
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Renderer{binary: binary, logger: logger}
}

// RenderPDF renders req and returns the PDF bytes.
func (r *Renderer) RenderPDF(ctx context.Context, req *offerdoc.PDFRequest) ([]byte, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	dir, err := os.MkdirTemp("", "offerdoc-pdf-")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	files, err := writeFiles(dir, req)
	if err != nil {
		return nil, err
	}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, r.binary, Args(req, files)...)
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("failed to generate PDF: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	if stderr.Len() > 0 {
		r.logger.Debug("wkhtmltopdf warnings", "stderr", strings.TrimSpace(stderr.String()))
	}

	pdf, err := os.ReadFile(files.Output)
	if err != nil {
		return nil, fmt.Errorf("failed to read PDF: %w", err)
	}
	return pdf, nil
}

// Files are the paths wkhtmltopdf reads and writes. Header and Footer are
// empty when the request has none.
type Files struct {
	Main   string
	Header string
	Footer string
	Output string
}

func writeFiles(dir string, req *offerdoc.PDFRequest) (Files, error) {
	css := basePrelude + req.CSS
	files := Files{
		Main:   filepath.Join(dir, "main.html"),
		Output: filepath.Join(dir, "output.pdf"),
	}

	if err := os.WriteFile(files.Main, []byte(Document(css, offerdoc.ExpandPageBreaks(req.Content))), 0o600); err != nil {
		return Files{}, fmt.Errorf("failed to write main.html: %w", err)
	}
	if req.Header != "" {
		files.Header = filepath.Join(dir, "header.html")
		body := `<div class="header">` + req.Header + `</div>`
		if err := os.WriteFile(files.Header, []byte(Document(css, body)), 0o600); err != nil {
			return Files{}, fmt.Errorf("failed to write header.html: %w", err)
		}
	}
	if req.Footer != "" {
		files.Footer = filepath.Join(dir, "footer.html")
		body := `<div class="footer">` + req.Footer + `</div>`
		if err := os.WriteFile(files.Footer, []byte(Document(css, body)), 0o600); err != nil {
			return Files{}, fmt.Errorf("failed to write footer.html: %w", err)
		}
	}
	return files, nil
}

// Document wraps body in a UTF-8 HTML page carrying css.
func Document(css, body string) string {
	var sb strings.Builder
	sb.WriteString(`<!DOCTYPE html><html><head><meta charset="UTF-8"><style>`)
	sb.WriteString(css)
	sb.WriteString(`</style></head><body>`)
	sb.WriteString(body)
	sb.WriteString(`</body></html>`)
	return sb.String()
}

// Args builds the wkhtmltopdf argument list. Options are sorted by name so
// the command line is deterministic.
func Args(req *offerdoc.PDFRequest, files Files) []string {
	args := []string{"--enable-local-file-access", "--encoding", "UTF-8", "--enable-javascript"}

	for _, name := range slices.Sorted(maps.Keys(req.Options)) {
		args = append(args, "--"+strings.TrimLeft(name, "-"))
		if v := req.Options[name]; v != "" {
			args = append(args, v)
		}
	}

	m := req.Margins.WithDefaults()
	args = append(args,
		"--margin-top", m.Top,
		"--margin-bottom", m.Bottom,
		"--margin-left", m.Left,
		"--margin-right", m.Right,
	)

	if files.Header != "" {
		args = append(args, "--header-html", files.Header)
	}
	if files.Footer != "" {
		args = append(args, "--footer-html", files.Footer)
	}
	return append(args, files.Main, files.Output)
}
