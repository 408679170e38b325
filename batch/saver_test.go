package batch_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fwojciec/offerdoc"
	"github.com/fwojciec/offerdoc/batch"
	"github.com/fwojciec/offerdoc/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drafts(ids ...string) []*offerdoc.Draft {
	out := make([]*offerdoc.Draft, 0, len(ids))
	for _, id := range ids {
		out = append(out, &offerdoc.Draft{TemplateID: id, Name: "Template " + id, Content: "<p>" + id + "</p>"})
	}
	return out
}

func TestSaver_SaveAll(t *testing.T) {
	t.Parallel()

	t.Run("uploads every draft and marks it synced", func(t *testing.T) {
		t.Parallel()

		var mu sync.Mutex
		uploaded := map[string]string{}
		var synced []string
		s := &batch.Saver{
			Templates: &mock.TemplateService{
				UpdateTemplateFn: func(_ context.Context, id string, upd offerdoc.TemplateUpdate) error {
					mu.Lock()
					defer mu.Unlock()
					uploaded[id] = upd.Content
					return nil
				},
			},
			Drafts: &mock.DraftService{
				MarkSyncedFn: func(_ context.Context, id string) error {
					synced = append(synced, id)
					return nil
				},
			},
		}

		result, err := s.SaveAll(context.Background(), drafts("1", "2", "3"), nil)

		require.NoError(t, err)
		assert.Equal(t, 3, result.Success)
		assert.Zero(t, result.Errors)
		assert.Empty(t, result.FailedIDs)
		assert.Equal(t, map[string]string{"1": "<p>1</p>", "2": "<p>2</p>", "3": "<p>3</p>"}, uploaded)
		assert.ElementsMatch(t, []string{"1", "2", "3"}, synced)
	})

	t.Run("counts failures without stopping", func(t *testing.T) {
		t.Parallel()

		var synced atomic.Int32
		s := &batch.Saver{
			Templates: &mock.TemplateService{
				UpdateTemplateFn: func(_ context.Context, id string, _ offerdoc.TemplateUpdate) error {
					if id == "3" || id == "1" {
						return errors.New("API error: 500")
					}
					return nil
				},
			},
			Drafts: &mock.DraftService{
				MarkSyncedFn: func(context.Context, string) error {
					synced.Add(1)
					return nil
				},
			},
		}

		result, err := s.SaveAll(context.Background(), drafts("3", "2", "1", "4"), nil)

		require.NoError(t, err)
		assert.Equal(t, 2, result.Success)
		assert.Equal(t, 2, result.Errors)
		assert.Equal(t, []string{"1", "3"}, result.FailedIDs)
		assert.Equal(t, int32(2), synced.Load())
	})

	t.Run("counts a failed sync as an error", func(t *testing.T) {
		t.Parallel()

		s := &batch.Saver{
			Templates: &mock.TemplateService{
				UpdateTemplateFn: func(context.Context, string, offerdoc.TemplateUpdate) error { return nil },
			},
			Drafts: &mock.DraftService{
				MarkSyncedFn: func(context.Context, string) error { return errors.New("disk full") },
			},
		}

		result, err := s.SaveAll(context.Background(), drafts("1"), nil)

		require.NoError(t, err)
		assert.Equal(t, 1, result.Errors)
		assert.Equal(t, []string{"1"}, result.FailedIDs)
	})

	t.Run("reports progress for each draft", func(t *testing.T) {
		t.Parallel()

		s := &batch.Saver{
			Templates: &mock.TemplateService{
				UpdateTemplateFn: func(_ context.Context, id string, _ offerdoc.TemplateUpdate) error {
					if id == "2" {
						return errors.New("boom")
					}
					return nil
				},
			},
		}

		var events []batch.Progress
		_, err := s.SaveAll(context.Background(), drafts("1", "2"), func(p batch.Progress) {
			events = append(events, p)
		})

		require.NoError(t, err)
		require.Len(t, events, 2)
		assert.Equal(t, 1, events[0].Current)
		assert.Equal(t, 2, events[1].Current)
		for _, e := range events {
			assert.Equal(t, 2, e.Total)
			assert.Equal(t, "Template "+e.TemplateID, e.TemplateName)
			if e.TemplateID == "2" {
				assert.EqualError(t, e.Err, "boom")
			} else {
				assert.NoError(t, e.Err)
			}
		}
	})

	t.Run("limits concurrent uploads", func(t *testing.T) {
		t.Parallel()

		var inFlight, peak atomic.Int32
		s := &batch.Saver{
			Concurrency: 2,
			Templates: &mock.TemplateService{
				UpdateTemplateFn: func(context.Context, string, offerdoc.TemplateUpdate) error {
					n := inFlight.Add(1)
					for {
						p := peak.Load()
						if n <= p || peak.CompareAndSwap(p, n) {
							break
						}
					}
					time.Sleep(5 * time.Millisecond)
					inFlight.Add(-1)
					return nil
				},
			},
		}

		result, err := s.SaveAll(context.Background(), drafts("1", "2", "3", "4", "5", "6"), nil)

		require.NoError(t, err)
		assert.Equal(t, 6, result.Success)
		assert.LessOrEqual(t, peak.Load(), int32(2))
	})

	t.Run("handles an empty batch", func(t *testing.T) {
		t.Parallel()

		s := &batch.Saver{Templates: &mock.TemplateService{}}

		result, err := s.SaveAll(context.Background(), nil, nil)

		require.NoError(t, err)
		assert.Equal(t, &batch.Result{}, result)
	})
}
