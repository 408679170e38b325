package mock

import (
	"context"

	"github.com/fwojciec/offerdoc"
)

var _ offerdoc.DraftService = (*DraftService)(nil)

// DraftService is a mock implementation of offerdoc.DraftService.
type DraftService struct {
	SaveDraftFn     func(ctx context.Context, draft *offerdoc.Draft) error
	FindDraftByIDFn func(ctx context.Context, templateID string) (*offerdoc.Draft, error)
	FindDraftsFn    func(ctx context.Context, filter offerdoc.DraftFilter) ([]*offerdoc.Draft, error)
	MarkSyncedFn    func(ctx context.Context, templateID string) error
	DeleteDraftFn   func(ctx context.Context, templateID string) error
}

func (s *DraftService) SaveDraft(ctx context.Context, draft *offerdoc.Draft) error {
	return s.SaveDraftFn(ctx, draft)
}

func (s *DraftService) FindDraftByID(ctx context.Context, templateID string) (*offerdoc.Draft, error) {
	return s.FindDraftByIDFn(ctx, templateID)
}

func (s *DraftService) FindDrafts(ctx context.Context, filter offerdoc.DraftFilter) ([]*offerdoc.Draft, error) {
	return s.FindDraftsFn(ctx, filter)
}

func (s *DraftService) MarkSynced(ctx context.Context, templateID string) error {
	return s.MarkSyncedFn(ctx, templateID)
}

func (s *DraftService) DeleteDraft(ctx context.Context, templateID string) error {
	return s.DeleteDraftFn(ctx, templateID)
}
