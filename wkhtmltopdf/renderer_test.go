package wkhtmltopdf_test

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/fwojciec/offerdoc"
	"github.com/fwojciec/offerdoc/wkhtmltopdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArgs(t *testing.T) {
	t.Parallel()

	t.Run("orders fixed flags, options, margins and files", func(t *testing.T) {
		t.Parallel()

		req := &offerdoc.PDFRequest{
			Content: "<p>x</p>",
			Margins: offerdoc.Margins{Top: "10mm", Left: "5mm"},
			Options: map[string]string{"page-size": "A4", "grayscale": "", "--orientation": "Landscape"},
		}
		files := wkhtmltopdf.Files{Main: "/tmp/main.html", Header: "/tmp/header.html", Output: "/tmp/out.pdf"}

		args := wkhtmltopdf.Args(req, files)

		assert.Equal(t, []string{
			"--enable-local-file-access", "--encoding", "UTF-8", "--enable-javascript",
			"--orientation", "Landscape",
			"--grayscale",
			"--page-size", "A4",
			"--margin-top", "10mm",
			"--margin-bottom", "0mm",
			"--margin-left", "5mm",
			"--margin-right", "0mm",
			"--header-html", "/tmp/header.html",
			"/tmp/main.html", "/tmp/out.pdf",
		}, args)
	})

	t.Run("omits header and footer flags without files", func(t *testing.T) {
		t.Parallel()

		args := wkhtmltopdf.Args(&offerdoc.PDFRequest{Content: "x"}, wkhtmltopdf.Files{Main: "m", Output: "o"})

		assert.NotContains(t, args, "--header-html")
		assert.NotContains(t, args, "--footer-html")
		assert.Equal(t, []string{"m", "o"}, args[len(args)-2:])
	})
}

func TestDocument(t *testing.T) {
	t.Parallel()

	got := wkhtmltopdf.Document("p{}", "<p>x</p>")

	assert.Equal(t, `<!DOCTYPE html><html><head><meta charset="UTF-8"><style>p{}</style></head><body><p>x</p></body></html>`, got)
}

func TestRenderer_RenderPDF(t *testing.T) {
	t.Parallel()

	t.Run("rejects empty content", func(t *testing.T) {
		t.Parallel()

		r := wkhtmltopdf.NewRenderer("", nil)

		_, err := r.RenderPDF(context.Background(), &offerdoc.PDFRequest{})

		assert.Equal(t, offerdoc.EINVALID, offerdoc.ErrorCode(err))
	})

	t.Run("reports a missing binary", func(t *testing.T) {
		t.Parallel()

		r := wkhtmltopdf.NewRenderer(filepath.Join(t.TempDir(), "missing"), nil)

		_, err := r.RenderPDF(context.Background(), &offerdoc.PDFRequest{Content: "<p>x</p>"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to generate PDF")
	})

	t.Run("runs the binary with the written files", func(t *testing.T) {
		t.Parallel()

		if _, err := exec.LookPath("sh"); err != nil {
			t.Skip("sh not available")
		}

		// The fake binary copies main.html to the output path, so the
		// returned bytes show what was written.
		bin := filepath.Join(t.TempDir(), "fake-wkhtmltopdf")
		script := "#!/bin/sh\nfor last; do :; done\neval in=\\${$(($#-1))}\ncp \"$in\" \"$last\"\n"
		require.NoError(t, os.WriteFile(bin, []byte(script), 0o755))

		r := wkhtmltopdf.NewRenderer(bin, nil)

		out, err := r.RenderPDF(context.Background(), &offerdoc.PDFRequest{
			Content: "<p>a</p>[SAUT_PAGE]<p>b</p>",
			CSS:     "p{color:red}",
		})

		require.NoError(t, err)
		assert.Contains(t, string(out), "body { font-family: Arial, sans-serif; }\np{color:red}")
		assert.Contains(t, string(out), `<p>a</p><div style="page-break-after: always;"></div><p>b</p>`)
	})

	t.Run("runs the real binary when installed", func(t *testing.T) {
		t.Parallel()

		bin, err := exec.LookPath(wkhtmltopdf.DefaultBinary)
		if err != nil {
			t.Skip("wkhtmltopdf not installed")
		}

		out, err := wkhtmltopdf.NewRenderer(bin, nil).RenderPDF(context.Background(), &offerdoc.PDFRequest{
			Content: "<h1>Offre</h1>",
			Header:  "<p>En-tête</p>",
		})

		require.NoError(t, err)
		assert.Equal(t, "%PDF", string(out[:4]))
	})
}
