package main

import (
	"fmt"

	"github.com/fwojciec/offerdoc"
)

// Run executes the replace command.
func (c *ReplaceCmd) Run(deps *Dependencies) error {
	if c.Term == "" {
		return fail(deps, offerdoc.Errorf(offerdoc.EINVALID, "search term is required"))
	}

	drafts, err := selectDrafts(deps, c.IDs)
	if err != nil {
		return fail(deps, err)
	}

	opts := offerdoc.SearchOptions{MatchCase: c.MatchCase, WholeWord: c.WholeWord}
	total, changed := 0, 0
	for _, d := range drafts {
		n := offerdoc.CountMatches(d.Content, c.Term, opts) +
			offerdoc.CountMatches(d.Header, c.Term, opts) +
			offerdoc.CountMatches(d.Footer, c.Term, opts)
		if n == 0 {
			continue
		}

		transformDraft(d, func(s string) string {
			return offerdoc.ReplaceAll(s, c.Term, c.Replacement, opts)
		})
		if err := deps.Drafts.SaveDraft(deps.Ctx, d); err != nil {
			return fail(deps, err)
		}

		fmt.Fprintf(deps.Stdout, "%s: %d replacement(s)\n", d.TemplateID, n)
		total += n
		changed++
	}

	fmt.Fprintf(deps.Stdout, "Replaced %d occurrence(s) in %d draft(s)\n", total, changed)
	return nil
}

// Run executes the suggest command.
func (c *SuggestCmd) Run(deps *Dependencies) error {
	drafts, err := selectDrafts(deps, c.IDs)
	if err != nil {
		return fail(deps, err)
	}

	suggestions := offerdoc.DefaultSuggestions()
	found := 0
	for _, d := range drafts {
		for _, s := range suggestions {
			n := 0
			for _, part := range []string{d.Content, d.Header, d.Footer} {
				count, err := offerdoc.CountSuggestion(part, s)
				if err != nil {
					return fail(deps, err)
				}
				n += count
			}
			if n > 0 {
				fmt.Fprintf(deps.Stdout, "%s  %s -> %s  %d match(es)  %s\n", d.TemplateID, s.From, s.To, n, s.Description)
				found += n
			}
		}

		if !c.Apply {
			continue
		}

		applied := 0
		for _, p := range []*string{&d.Content, &d.Header, &d.Footer} {
			out, counts, err := offerdoc.ApplySuggestions(*p, suggestions)
			if err != nil {
				return fail(deps, err)
			}
			*p = out
			for _, n := range counts {
				applied += n
			}
		}
		if applied == 0 {
			continue
		}
		if err := deps.Drafts.SaveDraft(deps.Ctx, d); err != nil {
			return fail(deps, err)
		}
	}

	switch {
	case found == 0:
		fmt.Fprintln(deps.Stdout, "No suggestions.")
	case c.Apply:
		fmt.Fprintf(deps.Stdout, "Applied %d suggestion(s)\n", found)
	default:
		fmt.Fprintf(deps.Stdout, "%d suggestion(s). Run with --apply to apply them.\n", found)
	}
	return nil
}
