package main

import (
	"fmt"
	"os"

	"github.com/fwojciec/offerdoc"
)

// Run executes the style command.
func (c *StyleCmd) Run(deps *Dependencies) error {
	draft, err := findDraft(deps, c.ID)
	if err != nil {
		return fail(deps, err)
	}

	style := draft.Config.Style
	switch {
	case c.Validate:
		problems := offerdoc.ValidateCSS(style)
		for _, p := range problems {
			fmt.Fprintf(deps.Stdout, "  %s\n", p)
		}
		if len(problems) > 0 {
			return fail(deps, offerdoc.Errorf(offerdoc.EINVALID, "%d CSS problem(s) found", len(problems)))
		}
		fmt.Fprintln(deps.Stdout, "CSS is valid.")
		return nil
	case c.File != "":
		data, err := os.ReadFile(c.File)
		if err != nil {
			return fail(deps, err)
		}
		style = string(data)
	case c.Format:
		style = offerdoc.FormatCSS(style)
	case c.Minify:
		style = offerdoc.MinifyCSS(style)
	default:
		fmt.Fprintln(deps.Stdout, style)
		return nil
	}

	draft.Config.Style = style
	if err := deps.Drafts.SaveDraft(deps.Ctx, draft); err != nil {
		return fail(deps, err)
	}

	fmt.Fprintf(deps.Stdout, "Updated style of %s\n", c.ID)
	return nil
}

// Run executes the margins command.
func (c *MarginsCmd) Run(deps *Dependencies) error {
	draft, err := findDraft(deps, c.ID)
	if err != nil {
		return fail(deps, err)
	}

	cfg := &draft.Config
	updated := false
	for _, m := range []struct {
		value string
		field *string
	}{
		{c.Top, &cfg.MarginTop},
		{c.Right, &cfg.MarginRight},
		{c.Bottom, &cfg.MarginBottom},
		{c.Left, &cfg.MarginLeft},
	} {
		if m.value != "" {
			*m.field = m.value
			updated = true
		}
	}

	if updated {
		if err := deps.Drafts.SaveDraft(deps.Ctx, draft); err != nil {
			return fail(deps, err)
		}
	}

	fmt.Fprintf(deps.Stdout, "top: %s\nright: %s\nbottom: %s\nleft: %s\n",
		cfg.MarginTop, cfg.MarginRight, cfg.MarginBottom, cfg.MarginLeft)
	return nil
}
