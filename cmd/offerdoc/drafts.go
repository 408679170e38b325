package main

import (
	"fmt"

	"github.com/fwojciec/offerdoc"
)

// pullPageSize is the page size used when pulling every template.
const pullPageSize = 50

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	page, err := deps.Templates.FindTemplates(deps.Ctx, offerdoc.TemplateFilter{
		Page:    c.Page,
		PerPage: c.PerPage,
		Search:  c.Search,
	})
	if err != nil {
		return fail(deps, err)
	}

	if len(page.Templates) == 0 {
		fmt.Fprintln(deps.Stdout, "No templates found.")
		return nil
	}

	for _, t := range page.Templates {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s\n", t.ID, t.Type, t.Name)
	}
	fmt.Fprintf(deps.Stdout, "\nPage %d, %d of %d templates\n", page.CurrentPage, len(page.Templates), page.Total)

	return nil
}

// Run executes the pull command.
func (c *PullCmd) Run(deps *Dependencies) error {
	if len(c.IDs) == 0 && !c.All {
		err := offerdoc.Errorf(offerdoc.EINVALID, "specify template IDs or --all")
		return fail(deps, err)
	}

	var templates []*offerdoc.Template
	if c.All {
		all, err := c.findAll(deps)
		if err != nil {
			return fail(deps, err)
		}
		templates = all
	} else {
		for _, id := range c.IDs {
			t, err := deps.Templates.FindTemplateByID(deps.Ctx, id)
			if err != nil {
				return fail(deps, err)
			}
			templates = append(templates, t)
		}
	}

	pulled := 0
	for _, t := range templates {
		existing, err := deps.Drafts.FindDraftByID(deps.Ctx, t.ID)
		if err != nil && offerdoc.ErrorCode(err) != offerdoc.ENOTFOUND {
			return fail(deps, err)
		}
		if existing != nil && existing.Modified() && !c.Force {
			fmt.Fprintf(deps.Stderr, "  skip %s: draft has unpushed changes (use --force to overwrite)\n", t.ID)
			continue
		}

		if err := deps.Drafts.SaveDraft(deps.Ctx, offerdoc.NewDraft(t)); err != nil {
			return fail(deps, err)
		}
		fmt.Fprintf(deps.Stdout, "Pulled %s  %s\n", t.ID, t.Name)
		pulled++
	}

	fmt.Fprintf(deps.Stdout, "Pulled %d of %d templates\n", pulled, len(templates))
	return nil
}

// findAll pages through every remote template.
func (c *PullCmd) findAll(deps *Dependencies) ([]*offerdoc.Template, error) {
	var all []*offerdoc.Template
	for page := 1; ; page++ {
		p, err := deps.Templates.FindTemplates(deps.Ctx, offerdoc.TemplateFilter{Page: page, PerPage: pullPageSize})
		if err != nil {
			return nil, err
		}
		all = append(all, p.Templates...)
		if len(p.Templates) == 0 || len(all) >= p.Total {
			return all, nil
		}
	}
}

// Run executes the drafts command.
func (c *DraftsCmd) Run(deps *Dependencies) error {
	var filter offerdoc.DraftFilter
	if c.Modified {
		filter.Modified = &c.Modified
	}

	drafts, err := deps.Drafts.FindDrafts(deps.Ctx, filter)
	if err != nil {
		return fail(deps, err)
	}

	if len(drafts) == 0 {
		fmt.Fprintln(deps.Stdout, "No drafts found. Use 'offerdoc pull' to fetch templates.")
		return nil
	}

	for _, d := range drafts {
		marker := " "
		if d.Modified() {
			marker = "*"
		}
		fmt.Fprintf(deps.Stdout, "%s %s  %s\n", marker, d.TemplateID, d.Name)
	}

	return nil
}

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	draft, err := findDraft(deps, c.ID)
	if err != nil {
		return fail(deps, err)
	}

	out := draft.Content
	switch c.Part {
	case "header":
		out = draft.Header
	case "footer":
		out = draft.Footer
	}

	if c.Markdown {
		out, err = deps.Converter.Convert(out)
		if err != nil {
			return fail(deps, err)
		}
	}

	fmt.Fprintln(deps.Stdout, out)
	return nil
}

// findDraft retrieves a draft with a hint when it has not been pulled.
func findDraft(deps *Dependencies, id string) (*offerdoc.Draft, error) {
	draft, err := deps.Drafts.FindDraftByID(deps.Ctx, id)
	if offerdoc.ErrorCode(err) == offerdoc.ENOTFOUND {
		return nil, offerdoc.Errorf(offerdoc.ENOTFOUND, "draft %q not found. Run 'offerdoc pull %s' first.", id, id)
	}
	return draft, err
}

// selectDrafts returns the drafts with the given IDs, or every draft if none are given.
func selectDrafts(deps *Dependencies, ids []string) ([]*offerdoc.Draft, error) {
	if len(ids) == 0 {
		return deps.Drafts.FindDrafts(deps.Ctx, offerdoc.DraftFilter{})
	}
	drafts := make([]*offerdoc.Draft, 0, len(ids))
	for _, id := range ids {
		d, err := findDraft(deps, id)
		if err != nil {
			return nil, err
		}
		drafts = append(drafts, d)
	}
	return drafts, nil
}

// transformDraft applies fn to the content, header and footer of a draft.
func transformDraft(d *offerdoc.Draft, fn func(string) string) {
	d.Content = fn(d.Content)
	d.Header = fn(d.Header)
	d.Footer = fn(d.Footer)
}
