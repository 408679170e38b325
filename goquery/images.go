package goquery

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/offerdoc"
	"github.com/google/uuid"
)

// ExtractImages returns all <img> elements whose src is a base64 image data
// URI, in document order.
func (e *Editor) ExtractImages(s string) []offerdoc.Image {
	if s == "" {
		return nil
	}

	f, ok := e.parse("extract images", s)
	if !ok {
		return nil
	}

	sel := base64Images(f)
	images := make([]offerdoc.Image, 0, sel.Length())
	sel.Each(func(i int, img *goquery.Selection) {
		src, _ := img.Attr("src")
		images = append(images, offerdoc.Image{
			ID:        uuid.NewString(),
			Index:     i,
			Src:       src,
			MediaType: offerdoc.DataURIMediaType(src),
		})
	})
	return images
}

// ReplaceImage sets the src of the base64 image at index.
func (e *Editor) ReplaceImage(s string, index int, src string) string {
	if s == "" {
		return s
	}

	f, ok := e.parse("replace image", s)
	if !ok {
		return s
	}

	sel := base64Images(f)
	if index < 0 || index >= sel.Length() {
		e.logger.Warn("image index out of range", "index", index, "count", sel.Length())
		return s
	}

	sel.Eq(index).SetAttr("src", src)
	return e.renderOr("replace image", f, s)
}

func base64Images(f *fragment) *goquery.Selection {
	return f.find("img[src]").FilterFunction(func(_ int, img *goquery.Selection) bool {
		src, _ := img.Attr("src")
		return offerdoc.IsBase64Image(src)
	})
}
