package main_test

import (
	"bytes"
	"context"
	"slices"
	"sync"

	"github.com/fwojciec/offerdoc"
	main "github.com/fwojciec/offerdoc/cmd/offerdoc"
	"github.com/fwojciec/offerdoc/goquery"
	"github.com/fwojciec/offerdoc/mock"
)

// newDeps returns dependencies writing to fresh buffers, using the real
// structural editor.
func newDeps() (*main.Dependencies, *bytes.Buffer, *bytes.Buffer) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	return &main.Dependencies{
		Ctx:    context.Background(),
		Stdout: stdout,
		Stderr: stderr,
		Editor: goquery.NewEditor(nil),
	}, stdout, stderr
}

// draftStore is an in-memory DraftService backed by mock function fields.
type draftStore struct {
	mock.DraftService

	mu     sync.Mutex
	drafts map[string]*offerdoc.Draft
	saves  int
}

func newDraftStore(drafts ...*offerdoc.Draft) *draftStore {
	s := &draftStore{drafts: map[string]*offerdoc.Draft{}}
	for _, d := range drafts {
		s.drafts[d.TemplateID] = d
	}
	s.SaveDraftFn = func(_ context.Context, d *offerdoc.Draft) error {
		s.mu.Lock()
		defer s.mu.Unlock()
		cp := *d
		s.drafts[d.TemplateID] = &cp
		s.saves++
		return nil
	}
	s.FindDraftByIDFn = func(_ context.Context, id string) (*offerdoc.Draft, error) {
		s.mu.Lock()
		defer s.mu.Unlock()
		d, ok := s.drafts[id]
		if !ok {
			return nil, offerdoc.Errorf(offerdoc.ENOTFOUND, "draft not found")
		}
		cp := *d
		return &cp, nil
	}
	s.FindDraftsFn = func(_ context.Context, filter offerdoc.DraftFilter) ([]*offerdoc.Draft, error) {
		s.mu.Lock()
		defer s.mu.Unlock()
		ids := make([]string, 0, len(s.drafts))
		for id := range s.drafts {
			ids = append(ids, id)
		}
		slices.Sort(ids)
		var out []*offerdoc.Draft
		for _, id := range ids {
			d := *s.drafts[id]
			if filter.Modified != nil && d.Modified() != *filter.Modified {
				continue
			}
			out = append(out, &d)
		}
		return out, nil
	}
	s.MarkSyncedFn = func(_ context.Context, id string) error {
		s.mu.Lock()
		defer s.mu.Unlock()
		d, ok := s.drafts[id]
		if !ok {
			return offerdoc.Errorf(offerdoc.ENOTFOUND, "draft not found")
		}
		d.BaseHash = d.Hash()
		return nil
	}
	return s
}

func (s *draftStore) get(id string) *offerdoc.Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.drafts[id]
}

// pulledDraft returns an unmodified draft with the given content.
func pulledDraft(id, content string) *offerdoc.Draft {
	return offerdoc.NewDraft(&offerdoc.Template{
		ID:      id,
		Name:    "Offre " + id,
		Type:    "offer",
		Content: content,
		Config:  offerdoc.DefaultConfig(),
	})
}
