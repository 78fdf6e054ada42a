package http

import (
	"bytes"
	"embed"
	"html/template"
	"log/slog"
	"net/http"

	"arrearscli/internal/arrears"
)

//go:embed templates/*.html
var templateFS embed.FS

var dashboardTemplates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// DashboardHandler renders the report as a read-only HTML page
type DashboardHandler struct {
	service ReportServiceInterface
	title   string
	logger  *slog.Logger
}

// NewDashboardHandler creates the dashboard handler. title heads the error
// page when no report could be built.
func NewDashboardHandler(service ReportServiceInterface, title string, logger *slog.Logger) *DashboardHandler {
	return &DashboardHandler{
		service: service,
		title:   title,
		logger:  logger.With(slog.String("component", "dashboard_handler")),
	}
}

type dashboardView struct {
	Report  *arrears.Report
	Headers []string
}

type errorView struct {
	Title string
	Error string
}

// ServeHTTP handles GET /
func (h *DashboardHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.Generate(r.Context())
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	var buf bytes.Buffer
	view := dashboardView{Report: report, Headers: report.Columns.Headers()}
	if err := dashboardTemplates.ExecuteTemplate(&buf, "dashboard.html", view); err != nil {
		h.renderError(w, r, err)
		return
	}

	writeHTML(w, http.StatusOK, buf.Bytes())
}

func (h *DashboardHandler) renderError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.ErrorContext(r.Context(), "dashboard render failed",
		slog.String("error", err.Error()))

	var buf bytes.Buffer
	if tmplErr := dashboardTemplates.ExecuteTemplate(&buf, "error.html", errorView{Title: h.title, Error: err.Error()}); tmplErr != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeHTML(w, http.StatusInternalServerError, buf.Bytes())
}

func writeHTML(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	w.Write(body)
}
