package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/offerdoc"
	"github.com/fwojciec/offerdoc/batch"
)

// Run executes the push command.
func (c *PushCmd) Run(deps *Dependencies) error {
	var drafts []*offerdoc.Draft
	if len(c.IDs) > 0 {
		selected, err := selectDrafts(deps, c.IDs)
		if err != nil {
			return fail(deps, err)
		}
		drafts = selected
	} else {
		modified := true
		found, err := deps.Drafts.FindDrafts(deps.Ctx, offerdoc.DraftFilter{Modified: &modified})
		if err != nil {
			return fail(deps, err)
		}
		drafts = found
	}

	if len(drafts) == 0 {
		fmt.Fprintln(deps.Stdout, "Nothing to push.")
		return nil
	}

	saver := &batch.Saver{
		Templates:   deps.Templates,
		Drafts:      deps.Drafts,
		Concurrency: c.Concurrency,
	}

	progress := func(p batch.Progress) {
		if p.Err != nil {
			fmt.Fprintf(deps.Stderr, "  [%d/%d] failed %s: %s\n", p.Current, p.Total, p.TemplateID, errorMessage(p.Err))
			return
		}
		fmt.Fprintf(deps.Stdout, "  [%d/%d] pushed %s  %s\n", p.Current, p.Total, p.TemplateID, p.TemplateName)
	}

	result, err := saver.SaveAll(deps.Ctx, drafts, progress)
	if err != nil {
		return fail(deps, err)
	}

	fmt.Fprintf(deps.Stdout, "Pushed %d template(s), %d failed\n", result.Success, result.Errors)
	if result.Errors > 0 {
		err := offerdoc.Errorf(offerdoc.EINTERNAL, "failed to push %s", strings.Join(result.FailedIDs, ", "))
		return fail(deps, err)
	}
	return nil
}
