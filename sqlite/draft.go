package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/fwojciec/offerdoc"
)

// Compile-time interface verification.
var _ offerdoc.DraftService = (*DraftService)(nil)

const draftColumns = `template_id, name, type, content, header, footer,
	margin_top, margin_right, margin_bottom, margin_left, style,
	base_hash, pulled_at, updated_at`

// DraftService implements offerdoc.DraftService using SQLite.
type DraftService struct {
	db *DB
}

// NewDraftService creates a new DraftService.
func NewDraftService(db *DB) *DraftService {
	return &DraftService{db: db}
}

// SaveDraft creates or replaces a draft. PulledAt defaults to now.
func (s *DraftService) SaveDraft(ctx context.Context, draft *offerdoc.Draft) error {
	if err := draft.Validate(); err != nil {
		return err
	}

	now := time.Now().UTC()
	if draft.PulledAt.IsZero() {
		draft.PulledAt = now
	}
	draft.UpdatedAt = now

	cfg := draft.Config
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO drafts (`+draftColumns+`, content_hash)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (template_id) DO UPDATE SET
			name = excluded.name,
			type = excluded.type,
			content = excluded.content,
			header = excluded.header,
			footer = excluded.footer,
			margin_top = excluded.margin_top,
			margin_right = excluded.margin_right,
			margin_bottom = excluded.margin_bottom,
			margin_left = excluded.margin_left,
			style = excluded.style,
			base_hash = excluded.base_hash,
			pulled_at = excluded.pulled_at,
			updated_at = excluded.updated_at,
			content_hash = excluded.content_hash
	`, draft.TemplateID, draft.Name, draft.Type, draft.Content, draft.Header, draft.Footer,
		cfg.MarginTop, cfg.MarginRight, cfg.MarginBottom, cfg.MarginLeft, cfg.Style,
		draft.BaseHash, draft.PulledAt.Format(time.RFC3339), draft.UpdatedAt.Format(time.RFC3339),
		draft.Hash())

	return err
}

// FindDraftByID retrieves a draft by template ID.
func (s *DraftService) FindDraftByID(ctx context.Context, templateID string) (*offerdoc.Draft, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+draftColumns+`
		FROM drafts
		WHERE template_id = ?
	`, templateID)

	draft, err := scanDraft(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, offerdoc.Errorf(offerdoc.ENOTFOUND, "draft %q not found", templateID)
	}
	if err != nil {
		return nil, err
	}
	return draft, nil
}

// FindDrafts retrieves drafts matching the filter, ordered by name.
func (s *DraftService) FindDrafts(ctx context.Context, filter offerdoc.DraftFilter) ([]*offerdoc.Draft, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + draftColumns + " FROM drafts WHERE 1=1")

	if filter.TemplateID != nil {
		query.WriteString(" AND template_id = ?")
		args = append(args, *filter.TemplateID)
	}
	if filter.Modified != nil {
		if *filter.Modified {
			query.WriteString(" AND content_hash != base_hash")
		} else {
			query.WriteString(" AND content_hash = base_hash")
		}
	}

	query.WriteString(" ORDER BY name, template_id")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var drafts []*offerdoc.Draft
	for rows.Next() {
		draft, err := scanDraft(rows)
		if err != nil {
			return nil, err
		}
		drafts = append(drafts, draft)
	}

	return drafts, rows.Err()
}

// MarkSynced records the draft's current content as the remote state.
func (s *DraftService) MarkSynced(ctx context.Context, templateID string) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE drafts
		SET base_hash = content_hash, updated_at = ?
		WHERE template_id = ?
	`, time.Now().UTC().Format(time.RFC3339), templateID)
	if err != nil {
		return err
	}
	return checkAffected(result, "draft %q not found", templateID)
}

// DeleteDraft permanently removes a draft.
func (s *DraftService) DeleteDraft(ctx context.Context, templateID string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM drafts WHERE template_id = ?", templateID)
	if err != nil {
		return err
	}
	return checkAffected(result, "draft %q not found", templateID)
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanDraft(row scanner) (*offerdoc.Draft, error) {
	var d offerdoc.Draft
	var pulledAt, updatedAt string

	if err := row.Scan(&d.TemplateID, &d.Name, &d.Type, &d.Content, &d.Header, &d.Footer,
		&d.Config.MarginTop, &d.Config.MarginRight, &d.Config.MarginBottom, &d.Config.MarginLeft, &d.Config.Style,
		&d.BaseHash, &pulledAt, &updatedAt); err != nil {
		return nil, err
	}

	var err error
	if d.PulledAt, err = parseRFC3339(pulledAt, "pulled_at"); err != nil {
		return nil, err
	}
	if d.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
		return nil, err
	}
	return &d, nil
}
