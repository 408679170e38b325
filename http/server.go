package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/fwojciec/offerdoc"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// DefaultMaxBodyBytes limits request bodies, e.g. templates with embedded images.
const DefaultMaxBodyBytes = 100 << 20

// TemplateServiceFunc returns a template service authenticated with token.
type TemplateServiceFunc func(token string) offerdoc.TemplateService

// Server exposes template proxying, PDF generation and the structural editor
// over JSON.
type Server struct {
	router    chi.Router
	templates TemplateServiceFunc
	editor    offerdoc.StructureEditor
	renderer  offerdoc.Renderer
	logger    *slog.Logger
	maxBody   int64
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithMaxBodyBytes limits the size of request bodies.
// Defaults to DefaultMaxBodyBytes (100 MiB) if not specified.
func WithMaxBodyBytes(n int64) ServerOption {
	return func(s *Server) {
		s.maxBody = n
	}
}

// WithLogger sets the request logger. Defaults to discarding.
func WithLogger(logger *slog.Logger) ServerOption {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates and configures the HTTP server.
func NewServer(templates TemplateServiceFunc, editor offerdoc.StructureEditor, renderer offerdoc.Renderer, opts ...ServerOption) *Server {
	s := &Server{
		templates: templates,
		editor:    editor,
		renderer:  renderer,
		logger:    slog.New(slog.DiscardHandler),
		maxBody:   DefaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.logger))
	r.Use(BodyLimit(s.maxBody))

	r.Get("/health", s.handleHealth)

	r.Group(func(r chi.Router) {
		r.Use(TokenMiddleware)

		r.Get("/api/templates", s.handleListTemplates)
		r.Get("/api/templates/{id}", s.handleGetTemplate)
		r.Put("/api/templates/{id}", s.handleUpdateTemplate)
	})

	r.Post("/api/generate-pdf", s.handleGeneratePDF)

	r.Post("/api/headings", s.handleHeadings)
	r.Post("/api/sections/remove", s.handleRemoveSections)
	r.Post("/api/tables", s.handleTables)
	r.Post("/api/tables/remove", s.handleRemoveTable)
	r.Post("/api/images", s.handleImages)

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	perPage, _ := strconv.Atoi(q.Get("per_page"))

	result, err := s.templates(tokenFromContext(r.Context())).FindTemplates(r.Context(), offerdoc.TemplateFilter{
		Page:    page,
		PerPage: perPage,
		Search:  q.Get("search"),
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleGetTemplate(w http.ResponseWriter, r *http.Request) {
	t, err := s.templates(tokenFromContext(r.Context())).FindTemplateByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleUpdateTemplate(w http.ResponseWriter, r *http.Request) {
	var upd offerdoc.TemplateUpdate
	if !s.decode(w, r, &upd) {
		return
	}

	id := chi.URLParam(r, "id")
	if err := s.templates(tokenFromContext(r.Context())).UpdateTemplate(r.Context(), id, upd); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"id": id})
}

// pdfRequest is the JSON body of the PDF endpoint.
type pdfRequest struct {
	HTMLContent string           `json:"htmlContent"`
	HeaderHTML  string           `json:"headerHtml"`
	FooterHTML  string           `json:"footerHtml"`
	CSSStyles   string           `json:"cssStyles"`
	Margins     offerdoc.Margins `json:"margins"`
	Options     map[string]any   `json:"options"`
}

// flags converts JSON options to renderer flags. true yields a bare flag,
// false drops it and any other value is formatted as the flag's argument.
func (p *pdfRequest) flags() map[string]string {
	if len(p.Options) == 0 {
		return nil
	}
	flags := make(map[string]string, len(p.Options))
	for k, v := range p.Options {
		switch v := v.(type) {
		case bool:
			if v {
				flags[k] = ""
			}
		case string:
			flags[k] = v
		case nil:
		default:
			flags[k] = fmt.Sprint(v)
		}
	}
	return flags
}

func (s *Server) handleGeneratePDF(w http.ResponseWriter, r *http.Request) {
	var body pdfRequest
	if !s.decode(w, r, &body) {
		return
	}

	req := &offerdoc.PDFRequest{
		Content: body.HTMLContent,
		Header:  body.HeaderHTML,
		Footer:  body.FooterHTML,
		CSS:     body.CSSStyles,
		Margins: body.Margins,
		Options: body.flags(),
	}
	if err := req.Validate(); err != nil {
		jsonError(w, "htmlContent is required", http.StatusBadRequest)
		return
	}

	pdf, err := s.renderer.RenderPDF(r.Context(), req)
	if err != nil {
		s.logger.Error("generate pdf", "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error":   "Failed to generate PDF",
			"details": err.Error(),
		})
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="generated.pdf"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(pdf)))
	_, _ = w.Write(pdf)
}

type htmlRequest struct {
	HTML string `json:"html"`
}

func (s *Server) handleHeadings(w http.ResponseWriter, r *http.Request) {
	var body htmlRequest
	if !s.decode(w, r, &body) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"headings": s.editor.ExtractHeadings(body.HTML)})
}

func (s *Server) handleRemoveSections(w http.ResponseWriter, r *http.Request) {
	var body struct {
		HTML     string             `json:"html"`
		Headings []offerdoc.Heading `json:"headings"`
	}
	if !s.decode(w, r, &body) {
		return
	}
	writeJSON(w, http.StatusOK, htmlRequest{HTML: s.editor.RemoveSections(body.HTML, body.Headings)})
}

func (s *Server) handleTables(w http.ResponseWriter, r *http.Request) {
	var body htmlRequest
	if !s.decode(w, r, &body) {
		return
	}
	tables := s.editor.ExtractTables(body.HTML)
	if tables == nil {
		tables = []offerdoc.Table{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"tables": tables})
}

func (s *Server) handleRemoveTable(w http.ResponseWriter, r *http.Request) {
	var body struct {
		HTML  string `json:"html"`
		Index int    `json:"index"`
	}
	if !s.decode(w, r, &body) {
		return
	}
	writeJSON(w, http.StatusOK, htmlRequest{HTML: s.editor.RemoveTable(body.HTML, body.Index)})
}

func (s *Server) handleImages(w http.ResponseWriter, r *http.Request) {
	var body htmlRequest
	if !s.decode(w, r, &body) {
		return
	}
	images := s.editor.ExtractImages(body.HTML)
	if images == nil {
		images = []offerdoc.Image{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"images": images})
}

// decode reads a JSON body into v, writing a 400 or 413 response on failure.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			jsonError(w, "request body too large", http.StatusRequestEntityTooLarge)
			return false
		}
		jsonError(w, "invalid JSON body: "+err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

// writeError maps an application error code to an HTTP status.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch offerdoc.ErrorCode(err) {
	case offerdoc.EINVALID:
		status = http.StatusBadRequest
	case offerdoc.ENOTFOUND:
		status = http.StatusNotFound
	case offerdoc.EUNAUTHORIZED:
		status = http.StatusUnauthorized
	case offerdoc.ECONFLICT:
		status = http.StatusConflict
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "err", err)
		jsonError(w, err.Error(), status)
		return
	}
	jsonError(w, offerdoc.ErrorMessage(err), status)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, status int) {
	writeJSON(w, status, map[string]string{"error": msg})
}
