package offerdoc

import (
	"context"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
)

// Draft is a locally edited copy of a remote template.
type Draft struct {
	TemplateID string    `json:"templateId"`
	Name       string    `json:"name"`
	Type       string    `json:"type"`
	Content    string    `json:"content"`
	Header     string    `json:"header"`
	Footer     string    `json:"footer"`
	Config     Config    `json:"config"`
	BaseHash   string    `json:"baseHash"`
	PulledAt   time.Time `json:"pulledAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// NewDraft creates an unmodified draft from a remote template.
func NewDraft(t *Template) *Draft {
	d := &Draft{
		TemplateID: t.ID,
		Name:       t.Name,
		Type:       t.Type,
		Content:    t.Content,
		Header:     t.Header,
		Footer:     t.Footer,
		Config:     t.Config,
	}
	d.BaseHash = d.Hash()
	return d
}

// Validate returns an error if the draft contains invalid fields.
func (d *Draft) Validate() error {
	if d.TemplateID == "" {
		return Errorf(EINVALID, "draft template ID required")
	}
	return nil
}

// Hash returns the content hash of the draft's editable fields.
func (d *Draft) Hash() string {
	return ContentHash(d.Content, d.Header, d.Footer, d.Config)
}

// Modified reports whether the draft differs from the template it was pulled from.
func (d *Draft) Modified() bool {
	return d.Hash() != d.BaseHash
}

// Update returns the template update that saves this draft.
func (d *Draft) Update() TemplateUpdate {
	return TemplateUpdate{
		Content: d.Content,
		Config:  d.Config,
		Header:  d.Header,
		Footer:  d.Footer,
	}
}

// ContentHash computes an xxhash over the editable fields of a template.
// Fields are length-prefixed so that moving text between fields changes the hash.
func ContentHash(content, header, footer string, cfg Config) string {
	h := xxhash.New()
	for _, s := range []string{content, header, footer, cfg.MarginTop, cfg.MarginRight, cfg.MarginBottom, cfg.MarginLeft, cfg.Style} {
		fmt.Fprintf(h, "%d:", len(s))
		_, _ = h.WriteString(s)
	}
	return fmt.Sprintf("%016x", h.Sum64())
}

// DraftService represents a service for managing local drafts.
type DraftService interface {
	// SaveDraft creates or replaces a draft.
	SaveDraft(ctx context.Context, draft *Draft) error

	// FindDraftByID retrieves a draft by template ID.
	// Returns ENOTFOUND if the draft does not exist.
	FindDraftByID(ctx context.Context, templateID string) (*Draft, error)

	// FindDrafts retrieves drafts matching the filter.
	FindDrafts(ctx context.Context, filter DraftFilter) ([]*Draft, error)

	// MarkSynced records the draft's current content as the remote state.
	// Returns ENOTFOUND if the draft does not exist.
	MarkSynced(ctx context.Context, templateID string) error

	// DeleteDraft permanently removes a draft.
	// Returns ENOTFOUND if the draft does not exist.
	DeleteDraft(ctx context.Context, templateID string) error
}

// DraftFilter represents a filter for FindDrafts.
type DraftFilter struct {
	TemplateID *string `json:"templateId"`
	Modified   *bool   `json:"modified"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
