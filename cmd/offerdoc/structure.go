package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/offerdoc"
)

// Run executes the outline command.
func (c *OutlineCmd) Run(deps *Dependencies) error {
	draft, err := findDraft(deps, c.ID)
	if err != nil {
		return fail(deps, err)
	}

	headings := deps.Editor.ExtractHeadings(draft.Content)
	if len(headings) == 0 {
		fmt.Fprintln(deps.Stdout, "No headings found.")
		return nil
	}

	for _, h := range headings {
		indent := strings.Repeat("  ", max(h.Level-1, 0))
		fmt.Fprintf(deps.Stdout, "%s[%d] %s\n", indent, h.OriginalIndex, strings.TrimSpace(h.Text))
	}
	return nil
}

// Run executes the remove-section command.
func (c *RemoveSectionCmd) Run(deps *Dependencies) error {
	draft, err := findDraft(deps, c.ID)
	if err != nil {
		return fail(deps, err)
	}

	headings := deps.Editor.ExtractHeadings(draft.Content)
	selected := make([]offerdoc.Heading, 0, len(c.Indexes))
	for _, i := range c.Indexes {
		if i < 0 || i >= len(headings) {
			err := offerdoc.Errorf(offerdoc.EINVALID, "heading index %d out of range (draft has %d headings)", i, len(headings))
			return fail(deps, err)
		}
		selected = append(selected, headings[i])
	}

	draft.Content = deps.Editor.RemoveSections(draft.Content, selected)
	if err := deps.Drafts.SaveDraft(deps.Ctx, draft); err != nil {
		return fail(deps, err)
	}

	fmt.Fprintf(deps.Stdout, "Removed %d section(s) from %s\n", len(selected), c.ID)
	return nil
}

// Run executes the tables command.
func (c *TablesCmd) Run(deps *Dependencies) error {
	draft, err := findDraft(deps, c.ID)
	if err != nil {
		return fail(deps, err)
	}

	tables := deps.Editor.ExtractTables(draft.Content)
	if len(tables) == 0 {
		fmt.Fprintln(deps.Stdout, "No tables found.")
		return nil
	}

	for _, t := range tables {
		fmt.Fprintf(deps.Stdout, "[%d] %d rows x %d columns  %s\n", t.OriginalIndex, t.RowCount, t.ColumnCount, t.HTMLSnippet)
	}
	return nil
}

// Run executes the remove-table command.
func (c *RemoveTableCmd) Run(deps *Dependencies) error {
	draft, err := findDraft(deps, c.ID)
	if err != nil {
		return fail(deps, err)
	}

	if n := len(deps.Editor.ExtractTables(draft.Content)); c.Index < 0 || c.Index >= n {
		err := offerdoc.Errorf(offerdoc.EINVALID, "table index %d out of range (draft has %d tables)", c.Index, n)
		return fail(deps, err)
	}

	draft.Content = deps.Editor.RemoveTable(draft.Content, c.Index)
	if err := deps.Drafts.SaveDraft(deps.Ctx, draft); err != nil {
		return fail(deps, err)
	}

	fmt.Fprintf(deps.Stdout, "Removed table %d from %s\n", c.Index, c.ID)
	return nil
}
