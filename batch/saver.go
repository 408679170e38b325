// Package batch pushes local drafts back to the remote template API.
package batch

import (
	"context"
	"slices"

	"github.com/fwojciec/offerdoc"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of uploads in flight when unset.
const DefaultConcurrency = 4

// Saver uploads drafts in parallel and marks the successful ones as synced.
type Saver struct {
	Templates   offerdoc.TemplateService
	Drafts      offerdoc.DraftService
	Concurrency int
}

// Result holds the outcome of a batch save.
type Result struct {
	Success   int
	Errors    int
	FailedIDs []string
}

// Progress reports one finished draft. Err is nil on success.
type Progress struct {
	Current      int
	Total        int
	TemplateID   string
	TemplateName string
	Err          error
}

// ProgressFunc is a callback for reporting save progress.
type ProgressFunc func(Progress)

type saveResult struct {
	draft *offerdoc.Draft
	err   error
}

// SaveAll uploads every draft. A failing draft is counted and does not stop
// the others. The progress callback, if provided, is called from the calling
// goroutine once per draft.
func (s *Saver) SaveAll(ctx context.Context, drafts []*offerdoc.Draft, progress ProgressFunc) (*Result, error) {
	concurrency := s.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	resultCh := make(chan saveResult, len(drafts))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for _, d := range drafts {
			g.Go(func() error {
				err := s.Templates.UpdateTemplate(gctx, d.TemplateID, d.Update())
				resultCh <- saveResult{draft: d, err: err}
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	result := &Result{}
	completed := 0
	for r := range resultCh {
		completed++

		// Drafts are marked here so that only one goroutine writes to the store.
		err := r.err
		if err == nil && s.Drafts != nil {
			err = s.Drafts.MarkSynced(ctx, r.draft.TemplateID)
		}

		if err != nil {
			result.Errors++
			result.FailedIDs = append(result.FailedIDs, r.draft.TemplateID)
		} else {
			result.Success++
		}

		if progress != nil {
			progress(Progress{
				Current:      completed,
				Total:        len(drafts),
				TemplateID:   r.draft.TemplateID,
				TemplateName: r.draft.Name,
				Err:          err,
			})
		}
	}

	slices.Sort(result.FailedIDs)

	if err := ctx.Err(); err != nil {
		return result, err
	}
	return result, nil
}
