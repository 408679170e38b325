// Package http provides the HTTP client for the remote offer template API
// and the HTTP server exposing offerdoc over JSON.
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/fwojciec/offerdoc"
	"golang.org/x/time/rate"
)

// DefaultTimeout is the default timeout for API requests.
const DefaultTimeout = 30 * time.Second

// DefaultRequestsPerSecond caps the request rate against the remote API.
const DefaultRequestsPerSecond = 10

// DefaultPerPage is the page size used when a filter leaves it unset.
const DefaultPerPage = 10

// listSort is the fixed listing order expected by the remote API.
const listSort = "type_id DESC NULLS LAST"

// DefaultRetryDelays returns the backoff delays between attempts on a 502
// response: 1s, 2s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second}
}

// Ensure TemplateService implements offerdoc.TemplateService at compile time.
var _ offerdoc.TemplateService = (*TemplateService)(nil)

// TemplateService talks to the remote offer template API.
type TemplateService struct {
	baseURL string
	token   string
	client  *http.Client
	timeout time.Duration
	delays  []time.Duration
	limiter *rate.Limiter
}

// Option configures a TemplateService.
type Option func(*TemplateService)

// WithTimeout sets the timeout for API requests.
// Defaults to DefaultTimeout (30s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(s *TemplateService) {
		s.timeout = d
	}
}

// WithHTTPClient sets the underlying HTTP client. Its timeout takes
// precedence over WithTimeout.
func WithHTTPClient(c *http.Client) Option {
	return func(s *TemplateService) {
		s.client = c
	}
}

// WithRetryDelays sets the delays between attempts on a 502 response.
// The number of attempts is len(delays)+1.
func WithRetryDelays(delays []time.Duration) Option {
	return func(s *TemplateService) {
		s.delays = delays
	}
}

// WithRateLimit caps requests per second with the given burst.
func WithRateLimit(rps float64, burst int) Option {
	return func(s *TemplateService) {
		s.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// NewTemplateService creates a client for the API rooted at baseURL that
// authenticates with token.
func NewTemplateService(baseURL, token string, opts ...Option) *TemplateService {
	s := &TemplateService{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		timeout: DefaultTimeout,
		delays:  DefaultRetryDelays(),
		limiter: rate.NewLimiter(DefaultRequestsPerSecond, DefaultRequestsPerSecond),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.client == nil {
		s.client = &http.Client{Timeout: s.timeout}
	}
	return s
}

// FindTemplates retrieves one page of templates matching the filter.
func (s *TemplateService) FindTemplates(ctx context.Context, filter offerdoc.TemplateFilter) (*offerdoc.TemplatePage, error) {
	page, perPage := filter.Page, filter.PerPage
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = DefaultPerPage
	}

	q := url.Values{}
	q.Set("per_page", strconv.Itoa(perPage))
	q.Set("page", strconv.Itoa(page))
	q.Set("sort", listSort)
	q.Set("with_inactivated", "0")
	q.Set("only_deleted", "0")
	if filter.Search != "" {
		q.Set("search", filter.Search)
	}

	body, err := s.do(ctx, http.MethodGet, "/offer_templates?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Models      []apiModel `json:"models"`
		Total       int        `json:"total"`
		PerPage     int        `json:"per_page"`
		CurrentPage int        `json:"current_page"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, offerdoc.Errorf(offerdoc.EINVALID, "invalid response format: %v", err)
	}
	if resp.Models == nil {
		return nil, offerdoc.Errorf(offerdoc.EINVALID, "invalid response format")
	}

	result := &offerdoc.TemplatePage{
		Templates:   make([]*offerdoc.Template, 0, len(resp.Models)),
		Total:       resp.Total,
		PerPage:     resp.PerPage,
		CurrentPage: resp.CurrentPage,
	}
	if result.PerPage == 0 {
		result.PerPage = perPage
	}
	if result.CurrentPage == 0 {
		result.CurrentPage = page
	}
	for _, m := range resp.Models {
		result.Templates = append(result.Templates, m.template())
	}
	return result, nil
}

// FindTemplateByID retrieves a single template.
func (s *TemplateService) FindTemplateByID(ctx context.Context, id string) (*offerdoc.Template, error) {
	body, err := s.do(ctx, http.MethodGet, "/offer_templates/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}
	m, err := decodeModel(body)
	if err != nil {
		return nil, err
	}
	return m.template(), nil
}

// CreateTemplate creates a new template and sets its ID from the response.
func (s *TemplateService) CreateTemplate(ctx context.Context, t *offerdoc.Template) error {
	if err := t.Validate(); err != nil {
		return err
	}

	req := struct {
		Name    string        `json:"name"`
		Type    string        `json:"type"`
		Content string        `json:"content"`
		Config  apiMarginsDTO `json:"config"`
		Style   string        `json:"style"`
		Header  string        `json:"header"`
		Footer  string        `json:"footer"`
	}{
		Name:    t.Name,
		Type:    t.Type,
		Content: t.Content,
		Config:  marginsDTO(t.Config),
		Style:   t.Config.Style,
		Header:  t.Header,
		Footer:  t.Footer,
	}

	body, err := s.do(ctx, http.MethodPost, "/offer_templates", req)
	if err != nil {
		return err
	}
	m, err := decodeModel(body)
	if err != nil {
		return err
	}
	if m.ID != "" {
		t.ID = string(m.ID)
	}
	return nil
}

// UpdateTemplate replaces the editable fields of a template.
func (s *TemplateService) UpdateTemplate(ctx context.Context, id string, upd offerdoc.TemplateUpdate) error {
	req := struct {
		Content string        `json:"content"`
		Config  apiMarginsDTO `json:"config"`
		Style   string        `json:"style"`
		Header  string        `json:"header"`
		Footer  string        `json:"footer"`
	}{
		Content: upd.Content,
		Config:  marginsDTO(upd.Config),
		Style:   upd.Config.Style,
		Header:  upd.Header,
		Footer:  upd.Footer,
	}

	_, err := s.do(ctx, http.MethodPut, "/offer_templates/"+url.PathEscape(id), req)
	return err
}

// Ping checks that the API is reachable and accepts the token.
func (s *TemplateService) Ping(ctx context.Context) error {
	_, err := s.FindTemplates(ctx, offerdoc.TemplateFilter{Page: 1, PerPage: 1})
	return err
}

// do sends a request, retrying 502 responses and transport errors, and
// returns the response body.
func (s *TemplateService) do(ctx context.Context, method, path string, payload any) ([]byte, error) {
	auth := authorization(s.token)
	if auth == "" {
		return nil, offerdoc.Errorf(offerdoc.EUNAUTHORIZED, "API token is not configured")
	}

	var data []byte
	if payload != nil {
		var err error
		if data, err = json.Marshal(payload); err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
	}

	maxAttempts := len(s.delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		body, status, err := s.send(ctx, method, path, auth, data)
		switch {
		case err != nil && ctx.Err() != nil:
			return nil, ctx.Err()
		case err != nil:
			lastErr = err
		case status != http.StatusBadGateway:
			return body, statusError(status, body)
		default:
			lastErr = statusError(status, body)
		}

		if attempt >= maxAttempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(s.delays[attempt]):
		}
	}

	return nil, lastErr
}

func (s *TemplateService) send(ctx context.Context, method, path, auth string, data []byte) ([]byte, int, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, 0, err
	}

	var reqBody io.Reader
	if data != nil {
		reqBody = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, reqBody)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Authorization", auth)
	req.Header.Set("Accept", "application/json")
	if data != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, err
	}
	return body, resp.StatusCode, nil
}

// authorization builds the Authorization header value for token.
func authorization(token string) string {
	token = strings.TrimSpace(token)
	if token == "" {
		return ""
	}
	if strings.HasPrefix(token, "Bearer ") {
		return token
	}
	return "Bearer " + token
}

// statusError maps a non-2xx response to an application error.
func statusError(status int, body []byte) error {
	if status >= 200 && status < 300 {
		return nil
	}
	msg := strings.TrimSpace(string(body))
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return offerdoc.Errorf(offerdoc.EUNAUTHORIZED, "API rejected the token (HTTP %d)", status)
	case http.StatusNotFound:
		return offerdoc.Errorf(offerdoc.ENOTFOUND, "template not found")
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return offerdoc.Errorf(offerdoc.EINVALID, "API error: %d %s. %s", status, http.StatusText(status), msg)
	}
	return fmt.Errorf("API error: %d %s. %s", status, http.StatusText(status), msg)
}

// flexString decodes a JSON string or number as a string.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", b)
	}
	*f = flexString(n.String())
	return nil
}

type apiMarginsDTO struct {
	MarginTop    string `json:"marginTop"`
	MarginRight  string `json:"marginRight"`
	MarginBottom string `json:"marginBottom"`
	MarginLeft   string `json:"marginLeft"`
}

func marginsDTO(cfg offerdoc.Config) apiMarginsDTO {
	return apiMarginsDTO{
		MarginTop:    cfg.MarginTop,
		MarginRight:  cfg.MarginRight,
		MarginBottom: cfg.MarginBottom,
		MarginLeft:   cfg.MarginLeft,
	}
}

// apiModel is a template as returned by the remote API. Any field may be
// missing or null.
type apiModel struct {
	ID            flexString     `json:"id"`
	Name          string         `json:"name"`
	Type          flexString     `json:"type"`
	TypeCode      flexString     `json:"type_code"`
	Content       string         `json:"content"`
	Header        string         `json:"header"`
	Footer        string         `json:"footer"`
	Style         string         `json:"style"`
	Config        *apiMarginsDTO `json:"config"`
	DeletedAt     *string        `json:"deleted_at"`
	InactivatedAt *string        `json:"inactivated_at"`
}

// decodeModel accepts either a bare model or one wrapped as {"model": ...}.
func decodeModel(body []byte) (*apiModel, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return &apiModel{}, nil
	}
	var wrapped struct {
		Model *apiModel `json:"model"`
	}
	if err := json.Unmarshal(body, &wrapped); err != nil {
		return nil, offerdoc.Errorf(offerdoc.EINVALID, "invalid response format: %v", err)
	}
	if wrapped.Model != nil {
		return wrapped.Model, nil
	}

	var m apiModel
	if err := json.Unmarshal(body, &m); err != nil {
		return nil, offerdoc.Errorf(offerdoc.EINVALID, "invalid response format: %v", err)
	}
	return &m, nil
}

// template normalizes m, filling the defaults used for missing fields.
func (m *apiModel) template() *offerdoc.Template {
	t := &offerdoc.Template{
		ID:            orDefault(string(m.ID), "unknown"),
		Name:          orDefault(m.Name, "Unnamed Template"),
		Type:          orDefault(string(m.Type), "unknown"),
		TypeCode:      orDefault(string(m.TypeCode), "unknown"),
		Content:       orDefault(m.Content, "Content not available"),
		Header:        m.Header,
		Footer:        m.Footer,
		Config:        offerdoc.DefaultConfig(),
		DeletedAt:     m.DeletedAt,
		InactivatedAt: m.InactivatedAt,
	}
	if m.Config != nil {
		t.Config = offerdoc.Config{
			MarginTop:    m.Config.MarginTop,
			MarginRight:  m.Config.MarginRight,
			MarginBottom: m.Config.MarginBottom,
			MarginLeft:   m.Config.MarginLeft,
		}
	}
	t.Config.Style = m.Style
	return t
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
