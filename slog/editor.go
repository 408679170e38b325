package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/offerdoc"
)

// Ensure LoggingEditor implements offerdoc.StructureEditor.
var _ offerdoc.StructureEditor = (*LoggingEditor)(nil)

// LoggingEditor wraps a StructureEditor with debug logging of each edit.
type LoggingEditor struct {
	next   offerdoc.StructureEditor
	logger *slog.Logger
}

// NewLoggingEditor creates a new LoggingEditor.
func NewLoggingEditor(next offerdoc.StructureEditor, logger *slog.Logger) *LoggingEditor {
	return &LoggingEditor{next: next, logger: logger}
}

func (e *LoggingEditor) ExtractHeadings(html string) (headings []offerdoc.Heading) {
	defer func(begin time.Time) {
		e.logger.Debug("extract headings", "bytes", len(html), "count", len(headings), "duration", time.Since(begin))
	}(time.Now())
	return e.next.ExtractHeadings(html)
}

func (e *LoggingEditor) RemoveSection(html string, heading offerdoc.Heading) (out string) {
	defer func(begin time.Time) {
		e.logger.Debug("remove section",
			"index", heading.OriginalIndex,
			"level", heading.Level,
			"removed_bytes", len(html)-len(out),
			"duration", time.Since(begin),
		)
	}(time.Now())
	return e.next.RemoveSection(html, heading)
}

func (e *LoggingEditor) RemoveSections(html string, headings []offerdoc.Heading) (out string) {
	defer func(begin time.Time) {
		e.logger.Debug("remove sections",
			"count", len(headings),
			"removed_bytes", len(html)-len(out),
			"duration", time.Since(begin),
		)
	}(time.Now())
	return e.next.RemoveSections(html, headings)
}

func (e *LoggingEditor) ExtractTables(html string) (tables []offerdoc.Table) {
	defer func(begin time.Time) {
		e.logger.Debug("extract tables", "bytes", len(html), "count", len(tables), "duration", time.Since(begin))
	}(time.Now())
	return e.next.ExtractTables(html)
}

func (e *LoggingEditor) RemoveTable(html string, index int) (out string) {
	defer func(begin time.Time) {
		e.logger.Debug("remove table", "index", index, "removed_bytes", len(html)-len(out), "duration", time.Since(begin))
	}(time.Now())
	return e.next.RemoveTable(html, index)
}

func (e *LoggingEditor) ExtractImages(html string) (images []offerdoc.Image) {
	defer func(begin time.Time) {
		e.logger.Debug("extract images", "bytes", len(html), "count", len(images), "duration", time.Since(begin))
	}(time.Now())
	return e.next.ExtractImages(html)
}

func (e *LoggingEditor) ReplaceImage(html string, index int, src string) (out string) {
	defer func(begin time.Time) {
		e.logger.Debug("replace image", "index", index, "src_bytes", len(src), "duration", time.Since(begin))
	}(time.Now())
	return e.next.ReplaceImage(html, index, src)
}
