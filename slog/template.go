// Package slog provides logging decorators for offerdoc services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/offerdoc"
)

// Ensure LoggingTemplateService implements offerdoc.TemplateService.
var _ offerdoc.TemplateService = (*LoggingTemplateService)(nil)

// LoggingTemplateService wraps a TemplateService with request logging.
type LoggingTemplateService struct {
	next   offerdoc.TemplateService
	logger *slog.Logger
}

// NewLoggingTemplateService creates a new LoggingTemplateService.
func NewLoggingTemplateService(next offerdoc.TemplateService, logger *slog.Logger) *LoggingTemplateService {
	return &LoggingTemplateService{next: next, logger: logger}
}

// FindTemplates delegates to the wrapped service and logs the page fetched.
func (s *LoggingTemplateService) FindTemplates(ctx context.Context, filter offerdoc.TemplateFilter) (page *offerdoc.TemplatePage, err error) {
	defer func(begin time.Time) {
		count, total := 0, 0
		if page != nil {
			count, total = len(page.Templates), page.Total
		}
		s.logger.Info("find templates",
			"page", filter.Page,
			"search", filter.Search,
			"count", count,
			"total", total,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindTemplates(ctx, filter)
}

// FindTemplateByID delegates to the wrapped service and logs the lookup.
func (s *LoggingTemplateService) FindTemplateByID(ctx context.Context, id string) (t *offerdoc.Template, err error) {
	defer func(begin time.Time) {
		s.logger.Info("find template",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindTemplateByID(ctx, id)
}

// CreateTemplate delegates to the wrapped service and logs the new ID.
func (s *LoggingTemplateService) CreateTemplate(ctx context.Context, t *offerdoc.Template) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("create template",
			"id", t.ID,
			"name", t.Name,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CreateTemplate(ctx, t)
}

// UpdateTemplate delegates to the wrapped service and logs the payload size.
func (s *LoggingTemplateService) UpdateTemplate(ctx context.Context, id string, upd offerdoc.TemplateUpdate) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("update template",
			"id", id,
			"bytes", len(upd.Content)+len(upd.Header)+len(upd.Footer)+len(upd.Config.Style),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.UpdateTemplate(ctx, id, upd)
}
