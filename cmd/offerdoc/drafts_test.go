package main_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/offerdoc"
	main "github.com/fwojciec/offerdoc/cmd/offerdoc"
	"github.com/fwojciec/offerdoc/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("lists templates with ID, type and name", func(t *testing.T) {
		t.Parallel()

		var got offerdoc.TemplateFilter
		deps, stdout, _ := newDeps()
		deps.Templates = &mock.TemplateService{
			FindTemplatesFn: func(_ context.Context, filter offerdoc.TemplateFilter) (*offerdoc.TemplatePage, error) {
				got = filter
				return &offerdoc.TemplatePage{
					Templates:   []*offerdoc.Template{{ID: "7", Type: "offer", Name: "Offre fibre"}},
					Total:       31,
					CurrentPage: 2,
				}, nil
			},
		}

		err := (&main.ListCmd{Search: "fibre", Page: 2, PerPage: 10}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, offerdoc.TemplateFilter{Page: 2, PerPage: 10, Search: "fibre"}, got)
		assert.Contains(t, stdout.String(), "7  offer  Offre fibre")
		assert.Contains(t, stdout.String(), "Page 2, 1 of 31 templates")
	})

	t.Run("shows a message when no templates match", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps()
		deps.Templates = &mock.TemplateService{
			FindTemplatesFn: func(context.Context, offerdoc.TemplateFilter) (*offerdoc.TemplatePage, error) {
				return &offerdoc.TemplatePage{}, nil
			},
		}

		require.NoError(t, (&main.ListCmd{}).Run(deps))
		assert.Contains(t, stdout.String(), "No templates found.")
	})

	t.Run("prints the API error", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := newDeps()
		deps.Templates = &mock.TemplateService{
			FindTemplatesFn: func(context.Context, offerdoc.TemplateFilter) (*offerdoc.TemplatePage, error) {
				return nil, offerdoc.Errorf(offerdoc.EUNAUTHORIZED, "invalid token")
			},
		}

		err := (&main.ListCmd{}).Run(deps)

		assert.Equal(t, offerdoc.EUNAUTHORIZED, offerdoc.ErrorCode(err))
		assert.Equal(t, "error: invalid token\n", stderr.String())
	})
}

func TestPullCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("saves templates as unmodified drafts", func(t *testing.T) {
		t.Parallel()

		store := newDraftStore()
		deps, stdout, _ := newDeps()
		deps.Drafts = store
		deps.Templates = &mock.TemplateService{
			FindTemplateByIDFn: func(_ context.Context, id string) (*offerdoc.Template, error) {
				return &offerdoc.Template{ID: id, Name: "Offre " + id, Type: "offer", Content: "<p>x</p>"}, nil
			},
		}

		err := (&main.PullCmd{IDs: []string{"1", "2"}}).Run(deps)

		require.NoError(t, err)
		require.NotNil(t, store.get("1"))
		require.NotNil(t, store.get("2"))
		assert.False(t, store.get("1").Modified())
		assert.Contains(t, stdout.String(), "Pulled 2 of 2 templates")
	})

	t.Run("requires IDs or --all", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := newDeps()

		err := (&main.PullCmd{}).Run(deps)

		assert.Equal(t, offerdoc.EINVALID, offerdoc.ErrorCode(err))
		assert.Contains(t, stderr.String(), "--all")
	})

	t.Run("pages through every template with --all", func(t *testing.T) {
		t.Parallel()

		var pages []int
		store := newDraftStore()
		deps, _, _ := newDeps()
		deps.Drafts = store
		deps.Templates = &mock.TemplateService{
			FindTemplatesFn: func(_ context.Context, filter offerdoc.TemplateFilter) (*offerdoc.TemplatePage, error) {
				pages = append(pages, filter.Page)
				id := string(rune('a' + filter.Page - 1))
				return &offerdoc.TemplatePage{
					Templates: []*offerdoc.Template{{ID: id, Name: id, Type: "offer"}},
					Total:     3,
				}, nil
			},
		}

		err := (&main.PullCmd{All: true}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, []int{1, 2, 3}, pages)
		assert.NotNil(t, store.get("c"))
	})

	t.Run("skips drafts with unpushed changes", func(t *testing.T) {
		t.Parallel()

		local := pulledDraft("1", "<p>old</p>")
		local.Content = "<p>edited</p>"
		store := newDraftStore(local)
		deps, stdout, stderr := newDeps()
		deps.Drafts = store
		deps.Templates = &mock.TemplateService{
			FindTemplateByIDFn: func(_ context.Context, id string) (*offerdoc.Template, error) {
				return &offerdoc.Template{ID: id, Name: "Remote", Type: "offer", Content: "<p>remote</p>"}, nil
			},
		}

		err := (&main.PullCmd{IDs: []string{"1"}}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "<p>edited</p>", store.get("1").Content)
		assert.Contains(t, stderr.String(), "skip 1")
		assert.Contains(t, stdout.String(), "Pulled 0 of 1 templates")
	})

	t.Run("overwrites unpushed changes with --force", func(t *testing.T) {
		t.Parallel()

		local := pulledDraft("1", "<p>old</p>")
		local.Content = "<p>edited</p>"
		store := newDraftStore(local)
		deps, _, _ := newDeps()
		deps.Drafts = store
		deps.Templates = &mock.TemplateService{
			FindTemplateByIDFn: func(_ context.Context, id string) (*offerdoc.Template, error) {
				return &offerdoc.Template{ID: id, Name: "Remote", Type: "offer", Content: "<p>remote</p>"}, nil
			},
		}

		err := (&main.PullCmd{IDs: []string{"1"}, Force: true}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "<p>remote</p>", store.get("1").Content)
		assert.False(t, store.get("1").Modified())
	})
}

func TestDraftsCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("marks modified drafts", func(t *testing.T) {
		t.Parallel()

		edited := pulledDraft("2", "<p>a</p>")
		edited.Content = "<p>b</p>"
		deps, stdout, _ := newDeps()
		deps.Drafts = newDraftStore(pulledDraft("1", "<p>a</p>"), edited)

		require.NoError(t, (&main.DraftsCmd{}).Run(deps))
		assert.Equal(t, "  1  Offre 1\n* 2  Offre 2\n", stdout.String())
	})

	t.Run("filters modified drafts", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps()
		deps.Drafts = newDraftStore(pulledDraft("1", "<p>a</p>"))

		require.NoError(t, (&main.DraftsCmd{Modified: true}).Run(deps))
		assert.Contains(t, stdout.String(), "No drafts found.")
	})
}

func TestShowCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints the content", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps()
		deps.Drafts = newDraftStore(pulledDraft("1", "<p>Bonjour</p>"))

		require.NoError(t, (&main.ShowCmd{ID: "1", Part: "content"}).Run(deps))
		assert.Equal(t, "<p>Bonjour</p>\n", stdout.String())
	})

	t.Run("converts to markdown", func(t *testing.T) {
		t.Parallel()

		var input string
		deps, stdout, _ := newDeps()
		deps.Drafts = newDraftStore(pulledDraft("1", "<p>Bonjour</p>"))
		deps.Converter = &mock.Converter{
			ConvertFn: func(html string) (string, error) {
				input = html
				return "Bonjour", nil
			},
		}

		require.NoError(t, (&main.ShowCmd{ID: "1", Part: "content", Markdown: true}).Run(deps))
		assert.Equal(t, "<p>Bonjour</p>", input)
		assert.Equal(t, "Bonjour\n", stdout.String())
	})

	t.Run("hints at pull when the draft is missing", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := newDeps()
		deps.Drafts = newDraftStore()

		err := (&main.ShowCmd{ID: "9"}).Run(deps)

		assert.Equal(t, offerdoc.ENOTFOUND, offerdoc.ErrorCode(err))
		assert.Contains(t, stderr.String(), "offerdoc pull 9")
	})

	t.Run("prints internal errors verbatim", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := newDeps()
		deps.Drafts = &mock.DraftService{
			FindDraftByIDFn: func(context.Context, string) (*offerdoc.Draft, error) {
				return nil, errors.New("database is locked")
			},
		}

		err := (&main.ShowCmd{ID: "1"}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, "error: database is locked\n", stderr.String())
	})
}
