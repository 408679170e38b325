package htmltomarkdown_test

import (
	"testing"

	"github.com/fwojciec/offerdoc"
	"github.com/fwojciec/offerdoc/htmltomarkdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConverter_Convert(t *testing.T) {
	t.Parallel()

	t.Run("converts headings and paragraphs", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(`<h1>Offre commerciale</h1><h2>Conditions</h2><p>Valable <strong>30 jours</strong>.</p>`)

		require.NoError(t, err)
		assert.Contains(t, md, "# Offre commerciale")
		assert.Contains(t, md, "## Conditions")
		assert.Contains(t, md, "Valable **30 jours**.")
	})

	t.Run("converts price tables", func(t *testing.T) {
		t.Parallel()

		html := `<table>
<thead><tr><th>Désignation</th><th>Prix</th></tr></thead>
<tbody><tr><td>Abonnement</td><td>120 €</td></tr></tbody>
</table>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "Désignation")
		assert.Contains(t, md, "Abonnement")
		assert.Contains(t, md, "|")
		assert.Contains(t, md, "---")
	})

	t.Run("turns page breaks into thematic breaks", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(`<p>page 1</p>[SAUT_PAGE]<p>page 2</p>`)

		require.NoError(t, err)
		assert.NotContains(t, md, "[SAUT_PAGE]")
		assert.Contains(t, md, "page 1")
		assert.Contains(t, md, "page 2")
	})

	t.Run("shortens embedded images", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(`<p><img src="data:image/png;base64,AAAABBBBCCCC" alt="logo"><img src="https://example.com/a.png" alt="remote"></p>`)

		require.NoError(t, err)
		assert.Contains(t, md, "![logo]("+htmltomarkdown.EmbeddedImageSrc+")")
		assert.Contains(t, md, "https://example.com/a.png")
		assert.NotContains(t, md, "base64")
	})

	t.Run("drops style elements", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(`<style>p { color: red; }</style><p>visible</p>`)

		require.NoError(t, err)
		assert.Equal(t, "visible", md)
	})

	t.Run("returns error for empty input", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		_, err := conv.Convert("  ")

		require.Error(t, err)
		assert.Equal(t, offerdoc.EINVALID, offerdoc.ErrorCode(err))
	})
}
