package mock

import "github.com/fwojciec/offerdoc"

var _ offerdoc.StructureEditor = (*StructureEditor)(nil)

// StructureEditor is a mock implementation of offerdoc.StructureEditor.
type StructureEditor struct {
	ExtractHeadingsFn func(html string) []offerdoc.Heading
	RemoveSectionFn   func(html string, heading offerdoc.Heading) string
	RemoveSectionsFn  func(html string, headings []offerdoc.Heading) string
	ExtractTablesFn   func(html string) []offerdoc.Table
	RemoveTableFn     func(html string, index int) string
	ExtractImagesFn   func(html string) []offerdoc.Image
	ReplaceImageFn    func(html string, index int, src string) string
}

func (e *StructureEditor) ExtractHeadings(html string) []offerdoc.Heading {
	return e.ExtractHeadingsFn(html)
}

func (e *StructureEditor) RemoveSection(html string, heading offerdoc.Heading) string {
	return e.RemoveSectionFn(html, heading)
}

func (e *StructureEditor) RemoveSections(html string, headings []offerdoc.Heading) string {
	return e.RemoveSectionsFn(html, headings)
}

func (e *StructureEditor) ExtractTables(html string) []offerdoc.Table {
	return e.ExtractTablesFn(html)
}

func (e *StructureEditor) RemoveTable(html string, index int) string {
	return e.RemoveTableFn(html, index)
}

func (e *StructureEditor) ExtractImages(html string) []offerdoc.Image {
	return e.ExtractImagesFn(html)
}

func (e *StructureEditor) ReplaceImage(html string, index int, src string) string {
	return e.ReplaceImageFn(html, index, src)
}
