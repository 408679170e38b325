package main_test

import (
	"testing"

	"github.com/fwojciec/offerdoc"
	main "github.com/fwojciec/offerdoc/cmd/offerdoc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplaceCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("replaces in content, header and footer of every draft", func(t *testing.T) {
		t.Parallel()

		withHeader := pulledDraft("1", "<p>ACME et acme</p>")
		withHeader.Header = "<p>ACME</p>"
		store := newDraftStore(withHeader, pulledDraft("2", "<p>autre</p>"))
		deps, stdout, _ := newDeps()
		deps.Drafts = store

		err := (&main.ReplaceCmd{Term: "acme", Replacement: "Globex"}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "<p>Globex et Globex</p>", store.get("1").Content)
		assert.Equal(t, "<p>Globex</p>", store.get("1").Header)
		assert.Equal(t, 1, store.saves)
		assert.Equal(t, "1: 3 replacement(s)\nReplaced 3 occurrence(s) in 1 draft(s)\n", stdout.String())
	})

	t.Run("honors match case and whole word", func(t *testing.T) {
		t.Parallel()

		store := newDraftStore(pulledDraft("1", "<p>Net netflix net</p>"))
		deps, _, _ := newDeps()
		deps.Drafts = store

		err := (&main.ReplaceCmd{Term: "net", Replacement: "web", IDs: []string{"1"}, MatchCase: true, WholeWord: true}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "<p>Net netflix web</p>", store.get("1").Content)
	})

	t.Run("rejects an empty term", func(t *testing.T) {
		t.Parallel()

		deps, _, _ := newDeps()

		err := (&main.ReplaceCmd{}).Run(deps)

		assert.Equal(t, offerdoc.EINVALID, offerdoc.ErrorCode(err))
	})
}

func TestSuggestCmd_Run(t *testing.T) {
	t.Parallel()

	const content = "<p>Réf. 24-6000-34-G3 et 24-6000-34-g3</p>"

	t.Run("lists matches without changing drafts", func(t *testing.T) {
		t.Parallel()

		store := newDraftStore(pulledDraft("1", content))
		deps, stdout, _ := newDeps()
		deps.Drafts = store

		require.NoError(t, (&main.SuggestCmd{}).Run(deps))
		assert.Contains(t, stdout.String(), "1  24-6000-34-G3 -> [REFERENCE]  2 match(es)")
		assert.Contains(t, stdout.String(), "Run with --apply")
		assert.Zero(t, store.saves)
	})

	t.Run("applies the suggestions", func(t *testing.T) {
		t.Parallel()

		store := newDraftStore(pulledDraft("1", content))
		deps, stdout, _ := newDeps()
		deps.Drafts = store

		require.NoError(t, (&main.SuggestCmd{Apply: true}).Run(deps))
		assert.Equal(t, "<p>Réf. [REFERENCE] et [REFERENCE]</p>", store.get("1").Content)
		assert.Contains(t, stdout.String(), "Applied 2 suggestion(s)")
	})

	t.Run("reports when nothing matches", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps()
		deps.Drafts = newDraftStore(pulledDraft("1", "<p>rien</p>"))

		require.NoError(t, (&main.SuggestCmd{}).Run(deps))
		assert.Equal(t, "No suggestions.\n", stdout.String())
	})
}
