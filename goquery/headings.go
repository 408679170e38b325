package goquery

import (
	"cmp"
	"slices"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/offerdoc"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const headingSelector = "h1, h2, h3, h4, h5, h6"

// ExtractHeadings returns all h1-h6 elements in document order.
func (e *Editor) ExtractHeadings(s string) []offerdoc.Heading {
	f, ok := e.parse("extract headings", s)
	if !ok {
		return nil
	}

	sel := f.find(headingSelector)
	headings := make([]offerdoc.Heading, 0, sel.Length())
	sel.Each(func(i int, h *goquery.Selection) {
		headings = append(headings, offerdoc.Heading{
			OriginalIndex: i,
			Level:         headingLevel(h.Get(0)),
			Text:          h.Text(),
		})
	})
	return headings
}

// RemoveSection removes the heading at heading.OriginalIndex together with
// the sibling nodes it owns.
func (e *Editor) RemoveSection(s string, heading offerdoc.Heading) string {
	f, ok := e.parse("remove section", s)
	if !ok {
		return s
	}

	if !e.removeSection(f, heading) {
		return s
	}
	return e.renderOr("remove section", f, s)
}

// RemoveSections removes several sections whose descriptors were extracted
// from s. Sections are removed from the highest index down, which keeps the
// indices of the remaining descriptors valid against the shrinking tree.
func (e *Editor) RemoveSections(s string, headings []offerdoc.Heading) string {
	if len(headings) == 0 {
		return s
	}

	f, ok := e.parse("remove sections", s)
	if !ok {
		return s
	}

	sorted := slices.Clone(headings)
	slices.SortStableFunc(sorted, func(a, b offerdoc.Heading) int {
		return cmp.Compare(b.OriginalIndex, a.OriginalIndex)
	})

	removed := 0
	for i, h := range sorted {
		// A repeated index would hit whichever heading moved into that slot.
		if i > 0 && h.OriginalIndex == sorted[i-1].OriginalIndex {
			e.logger.Warn("duplicate heading index skipped", "index", h.OriginalIndex)
			continue
		}
		if e.removeSection(f, h) {
			removed++
		}
	}

	if removed == 0 {
		return s
	}
	return e.renderOr("remove sections", f, s)
}

// removeSection locates the heading against the live tree and detaches its
// section. It reports whether anything was removed.
func (e *Editor) removeSection(f *fragment, heading offerdoc.Heading) bool {
	headings := f.find(headingSelector)
	if heading.OriginalIndex < 0 || heading.OriginalIndex >= headings.Length() {
		e.logger.Warn("heading index out of range",
			"index", heading.OriginalIndex,
			"count", headings.Length(),
		)
		return false
	}

	target := headings.Get(heading.OriginalIndex)
	found := headingLevel(target)
	if found != heading.Level {
		e.logger.Warn("heading level mismatch",
			"index", heading.OriginalIndex,
			"expected", heading.Level,
			"found", found,
			"text", strings.TrimSpace(headings.Eq(heading.OriginalIndex).Text()),
		)
	}

	level := heading.Level
	if level < 1 || level > 6 {
		level = found
	}

	for _, n := range sectionNodes(target, level) {
		n.Parent.RemoveChild(n)
	}
	return true
}

// sectionNodes returns start and every following sibling up to the next
// sibling heading of the same or a more significant level.
func sectionNodes(start *html.Node, level int) []*html.Node {
	nodes := []*html.Node{start}
	for n := start.NextSibling; n != nil; n = n.NextSibling {
		if l := headingLevel(n); l > 0 && l <= level {
			break
		}
		nodes = append(nodes, n)
	}
	return nodes
}

// headingLevel returns 1-6 for h1-h6 elements and 0 for any other node.
func headingLevel(n *html.Node) int {
	if n == nil || n.Type != html.ElementNode {
		return 0
	}
	switch n.DataAtom {
	case atom.H1:
		return 1
	case atom.H2:
		return 2
	case atom.H3:
		return 3
	case atom.H4:
		return 4
	case atom.H5:
		return 5
	case atom.H6:
		return 6
	}
	return 0
}
