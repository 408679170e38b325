package main

import (
	"fmt"

	"github.com/fwojciec/offerdoc"
)

// Run executes the vars list command.
func (c *VarsListCmd) Run(deps *Dependencies) error {
	lists, err := deps.Variables.FindVariableLists(deps.Ctx)
	if err != nil {
		return fail(deps, err)
	}

	if len(lists) == 0 {
		fmt.Fprintln(deps.Stdout, "No variable lists. Use 'offerdoc vars set' to create one.")
		return nil
	}

	for _, l := range lists {
		fmt.Fprintln(deps.Stdout, l.Name)
		for _, v := range l.Variables {
			fmt.Fprintf(deps.Stdout, "  [%s] = %s\n", v.Key, v.Value)
		}
	}
	return nil
}

// Run executes the vars set command.
func (c *VarsSetCmd) Run(deps *Dependencies) error {
	list, err := deps.Variables.FindVariableListByName(deps.Ctx, c.List)
	switch {
	case offerdoc.ErrorCode(err) == offerdoc.ENOTFOUND:
		list = &offerdoc.VariableList{Name: c.List}
		list.Set(c.Key, c.Value)
		err = deps.Variables.CreateVariableList(deps.Ctx, list)
	case err == nil:
		list.Set(c.Key, c.Value)
		err = deps.Variables.UpdateVariableList(deps.Ctx, list)
	}
	if err != nil {
		return fail(deps, err)
	}

	fmt.Fprintf(deps.Stdout, "Set [%s] in %s\n", c.Key, c.List)
	return nil
}

// Run executes the vars apply command.
func (c *VarsApplyCmd) Run(deps *Dependencies) error {
	list, err := deps.Variables.FindVariableListByName(deps.Ctx, c.List)
	if err != nil {
		return fail(deps, err)
	}

	drafts, err := selectDrafts(deps, c.IDs)
	if err != nil {
		return fail(deps, err)
	}

	changed := 0
	for _, d := range drafts {
		before := d.Hash()
		transformDraft(d, func(s string) string {
			return offerdoc.ApplyVariables(s, list.Variables)
		})
		if d.Hash() == before {
			continue
		}
		if err := deps.Drafts.SaveDraft(deps.Ctx, d); err != nil {
			return fail(deps, err)
		}
		fmt.Fprintf(deps.Stdout, "%s: variables applied\n", d.TemplateID)
		changed++
	}

	fmt.Fprintf(deps.Stdout, "Applied %s to %d draft(s)\n", c.List, changed)
	return nil
}

// Run executes the vars delete command.
func (c *VarsDeleteCmd) Run(deps *Dependencies) error {
	list, err := deps.Variables.FindVariableListByName(deps.Ctx, c.List)
	if err != nil {
		return fail(deps, err)
	}
	if err := deps.Variables.DeleteVariableList(deps.Ctx, list.ID); err != nil {
		return fail(deps, err)
	}

	fmt.Fprintf(deps.Stdout, "Deleted variable list %q\n", c.List)
	return nil
}
