package main

import (
	"fmt"
	"os"

	"github.com/fwojciec/offerdoc"
)

// Run executes the pdf command.
func (c *PDFCmd) Run(deps *Dependencies) error {
	draft, err := findDraft(deps, c.ID)
	if err != nil {
		return fail(deps, err)
	}

	if c.Vars != "" {
		list, err := deps.Variables.FindVariableListByName(deps.Ctx, c.Vars)
		if err != nil {
			return fail(deps, err)
		}
		transformDraft(draft, func(s string) string {
			return offerdoc.ApplyVariables(s, list.Variables)
		})
	}

	pdf, err := deps.Renderer.RenderPDF(deps.Ctx, &offerdoc.PDFRequest{
		Content: draft.Content,
		Header:  draft.Header,
		Footer:  draft.Footer,
		CSS:     draft.Config.Style,
		Margins: offerdoc.MarginsFromConfig(draft.Config),
	})
	if err != nil {
		return fail(deps, err)
	}

	if err := os.WriteFile(c.Output, pdf, 0o644); err != nil {
		return fail(deps, err)
	}

	fmt.Fprintf(deps.Stdout, "Wrote %s (%d bytes)\n", c.Output, len(pdf))
	return nil
}
