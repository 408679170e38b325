package offerdoc

// Heading describes a heading element (h1-h6) of a template's content.
//
// OriginalIndex is the heading's position among all headings of the document
// it was extracted from. It is only meaningful against that exact document:
// re-extract after any structural change.
type Heading struct {
	OriginalIndex int    `json:"originalIndex"`
	Level         int    `json:"level"`
	Text          string `json:"text"`
}

// Table describes a table element of a template's content.
//
// OriginalIndex is the table's position among all tables of the document and
// is independent of heading indices.
type Table struct {
	ID            string `json:"id"`
	OriginalIndex int    `json:"originalIndex"`
	Caption       string `json:"caption,omitempty"`
	RowCount      int    `json:"rowCount"`
	ColumnCount   int    `json:"columnCount"`
	HTMLSnippet   string `json:"htmlSnippet"`
	HTML          string `json:"html"`
	ClassName     string `json:"className,omitempty"`
}

// Image describes an embedded base64 image of a template's content.
type Image struct {
	ID        string `json:"id"`
	Index     int    `json:"index"`
	Src       string `json:"src"`
	MediaType string `json:"mediaType"`
}

// StructureEditor reads and removes structural units of an HTML fragment.
//
// Methods never fail: references that do not resolve against the given HTML
// leave it unchanged and are reported as warnings by the implementation.
type StructureEditor interface {
	// ExtractHeadings returns all headings in document order.
	ExtractHeadings(html string) []Heading

	// RemoveSection removes a heading and the content it owns.
	RemoveSection(html string, heading Heading) string

	// RemoveSections removes several sections extracted from the same HTML.
	RemoveSections(html string, headings []Heading) string

	// ExtractTables returns all tables in document order.
	ExtractTables(html string) []Table

	// RemoveTable removes the table at the given position.
	RemoveTable(html string, index int) string

	// ExtractImages returns all base64 images in document order.
	ExtractImages(html string) []Image

	// ReplaceImage sets the src of the image at the given position.
	ReplaceImage(html string, index int, src string) string
}
