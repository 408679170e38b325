package offerdoc

import (
	"context"
)

// Default page margins applied when the remote API returns no config.
const (
	DefaultMarginTop    = "25mm"
	DefaultMarginRight  = "10mm"
	DefaultMarginBottom = "25mm"
	DefaultMarginLeft   = "10mm"
)

// Config holds the page layout of a template. Style is the template's CSS;
// the remote API stores it next to config rather than inside it.
type Config struct {
	MarginTop    string `json:"marginTop"`
	MarginRight  string `json:"marginRight"`
	MarginBottom string `json:"marginBottom"`
	MarginLeft   string `json:"marginLeft"`
	Style        string `json:"style,omitempty"`
}

// DefaultConfig returns the margins used by templates without a config.
func DefaultConfig() Config {
	return Config{
		MarginTop:    DefaultMarginTop,
		MarginRight:  DefaultMarginRight,
		MarginBottom: DefaultMarginBottom,
		MarginLeft:   DefaultMarginLeft,
	}
}

// Template represents an offer template stored in the remote API.
type Template struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Type          string  `json:"type"`
	TypeCode      string  `json:"type_code"`
	Content       string  `json:"content"`
	Header        string  `json:"header"`
	Footer        string  `json:"footer"`
	Config        Config  `json:"config"`
	DeletedAt     *string `json:"deleted_at"`
	InactivatedAt *string `json:"inactivated_at"`
}

// Validate returns an error if the template contains invalid fields.
func (t *Template) Validate() error {
	if t.Name == "" {
		return Errorf(EINVALID, "template name required")
	}
	if t.Type == "" {
		return Errorf(EINVALID, "template type required")
	}
	return nil
}

// TemplatePage is one page of a template listing.
type TemplatePage struct {
	Templates   []*Template `json:"data"`
	Total       int         `json:"total"`
	PerPage     int         `json:"per_page"`
	CurrentPage int         `json:"current_page"`
}

// TemplateService represents the remote template storage.
type TemplateService interface {
	// FindTemplates retrieves one page of templates matching the filter.
	FindTemplates(ctx context.Context, filter TemplateFilter) (*TemplatePage, error)

	// FindTemplateByID retrieves a single template.
	// Returns ENOTFOUND if the template does not exist.
	FindTemplateByID(ctx context.Context, id string) (*Template, error)

	// CreateTemplate creates a new template and sets its ID.
	CreateTemplate(ctx context.Context, template *Template) error

	// UpdateTemplate replaces the editable fields of a template.
	// Returns ENOTFOUND if the template does not exist.
	UpdateTemplate(ctx context.Context, id string, upd TemplateUpdate) error
}

// TemplateFilter represents a filter for FindTemplates.
type TemplateFilter struct {
	Page    int    `json:"page"`
	PerPage int    `json:"perPage"`
	Search  string `json:"search"`
}

// TemplateUpdate represents the fields sent when saving a template.
// The remote API replaces all of them at once.
type TemplateUpdate struct {
	Content string `json:"content"`
	Config  Config `json:"config"`
	Header  string `json:"header"`
	Footer  string `json:"footer"`
}
