package goquery

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/offerdoc"
	"github.com/google/uuid"
)

// snippetMaxLen is the longest first-row preview kept before truncation.
const snippetMaxLen = 100

// ExtractTables returns all tables in document order with their metadata.
func (e *Editor) ExtractTables(s string) []offerdoc.Table {
	if s == "" {
		return nil
	}

	f, ok := e.parse("extract tables", s)
	if !ok {
		return nil
	}

	sel := f.find("table")
	tables := make([]offerdoc.Table, 0, sel.Length())
	sel.Each(func(i int, t *goquery.Selection) {
		// Rows of nested tables are counted too.
		rows := t.Find("tr")
		caption := strings.TrimSpace(t.ChildrenFiltered("caption").First().Text())

		outer, err := goquery.OuterHtml(t)
		if err != nil {
			e.logger.Warn("render table", "index", i, "err", err)
		}
		className, _ := t.Attr("class")

		tables = append(tables, offerdoc.Table{
			ID:            fmt.Sprintf("table-%d-%s", i, uuid.NewString()),
			OriginalIndex: i,
			Caption:       caption,
			RowCount:      rows.Length(),
			ColumnCount:   columnCount(rows),
			HTMLSnippet:   tableSnippet(i, rows, caption),
			HTML:          outer,
			ClassName:     className,
		})
	})
	return tables
}

// RemoveTable removes the table at index among all tables of s.
func (e *Editor) RemoveTable(s string, index int) string {
	if s == "" {
		return s
	}

	f, ok := e.parse("remove table", s)
	if !ok {
		return s
	}

	tables := f.find("table")
	if index < 0 || index >= tables.Length() {
		e.logger.Warn("table index out of range", "index", index, "count", tables.Length())
		return s
	}

	tables.Eq(index).Remove()
	return e.renderOr("remove table", f, s)
}

// columnCount returns the widest row's effective width.
func columnCount(rows *goquery.Selection) int {
	widest := 0
	rows.Each(func(_ int, row *goquery.Selection) {
		width := 0
		row.ChildrenFiltered("th, td").Each(func(_ int, cell *goquery.Selection) {
			width += colspan(cell)
		})
		widest = max(widest, width)
	})
	return widest
}

// colspan parses the leading integer of a cell's colspan attribute.
// Missing, unparseable and non-positive values count as 1.
func colspan(cell *goquery.Selection) int {
	v, ok := cell.Attr("colspan")
	if !ok {
		return 1
	}
	v = strings.TrimSpace(v)

	end := 0
	for end < len(v) && v[end] >= '0' && v[end] <= '9' {
		end++
	}
	n, err := strconv.Atoi(v[:end])
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// tableSnippet builds a short preview from the first row's cells.
func tableSnippet(index int, rows *goquery.Selection, caption string) string {
	snippet := "Tableau vide"
	if rows.Length() > 0 {
		var texts []string
		rows.First().ChildrenFiltered("th, td").Each(func(_ int, cell *goquery.Selection) {
			if text := strings.TrimSpace(cell.Text()); text != "" {
				texts = append(texts, text)
			}
		})
		snippet = truncate(strings.Join(texts, " | "), snippetMaxLen)
	}

	if snippet == "" && caption != "" {
		snippet = "Légende: " + caption
	}
	if snippet == "" {
		snippet = fmt.Sprintf("Tableau %d", index+1)
	}
	return snippet
}

// truncate shortens s to maxLen characters, ending in "..." when cut.
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
