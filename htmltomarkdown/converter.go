// Package htmltomarkdown renders template HTML as Markdown for terminal previews.
package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/offerdoc"
)

// EmbeddedImageSrc replaces base64 image sources so previews stay readable.
const EmbeddedImageSrc = "embedded-image"

// Ensure Converter implements offerdoc.Converter at compile time.
var _ offerdoc.Converter = (*Converter)(nil)

// Converter wraps html-to-markdown to convert template HTML to Markdown.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &Converter{conv: conv}
}

// Convert transforms template HTML into Markdown. Page break markers become
// thematic breaks and base64 images are shortened to EmbeddedImageSrc.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", offerdoc.Errorf(offerdoc.EINVALID, "empty HTML input")
	}

	html = strings.ReplaceAll(html, offerdoc.PageBreakMarker, "<hr>")

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", err
	}
	doc.Find("img[src]").Each(func(_ int, img *goquery.Selection) {
		if src, _ := img.Attr("src"); offerdoc.IsBase64Image(src) {
			img.SetAttr("src", EmbeddedImageSrc)
		}
	})
	body, err := doc.Find("body").Html()
	if err != nil {
		return "", err
	}

	result, err := c.conv.ConvertString(body)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(result), nil
}
