package mock

import (
	"context"

	"github.com/fwojciec/offerdoc"
)

var _ offerdoc.TemplateService = (*TemplateService)(nil)

// TemplateService is a mock implementation of offerdoc.TemplateService.
type TemplateService struct {
	FindTemplatesFn    func(ctx context.Context, filter offerdoc.TemplateFilter) (*offerdoc.TemplatePage, error)
	FindTemplateByIDFn func(ctx context.Context, id string) (*offerdoc.Template, error)
	CreateTemplateFn   func(ctx context.Context, template *offerdoc.Template) error
	UpdateTemplateFn   func(ctx context.Context, id string, upd offerdoc.TemplateUpdate) error
}

func (s *TemplateService) FindTemplates(ctx context.Context, filter offerdoc.TemplateFilter) (*offerdoc.TemplatePage, error) {
	return s.FindTemplatesFn(ctx, filter)
}

func (s *TemplateService) FindTemplateByID(ctx context.Context, id string) (*offerdoc.Template, error) {
	return s.FindTemplateByIDFn(ctx, id)
}

func (s *TemplateService) CreateTemplate(ctx context.Context, template *offerdoc.Template) error {
	return s.CreateTemplateFn(ctx, template)
}

func (s *TemplateService) UpdateTemplate(ctx context.Context, id string, upd offerdoc.TemplateUpdate) error {
	return s.UpdateTemplateFn(ctx, id, upd)
}
