package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "arrearscli/internal/errors"
)

// ReportHandler serves the arrears report as JSON
type ReportHandler struct {
	service      ReportServiceInterface
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewReportHandler creates a new report handler
func NewReportHandler(service ReportServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *ReportHandler {
	return &ReportHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "report_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the report routes, mounted under /api/report
func (h *ReportHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/", h.GetReport)
	r.Get("/cache", h.GetCacheStats)
	r.Delete("/cache", h.ResetCache)

	return r
}

// GetReport handles GET /api/report
func (h *ReportHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.Generate(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, report)
}

// GetCacheStats handles GET /api/report/cache
func (h *ReportHandler) GetCacheStats(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, h.service.CacheStats())
}

// ResetCache handles DELETE /api/report/cache
func (h *ReportHandler) ResetCache(w http.ResponseWriter, r *http.Request) {
	h.service.ResetCache(r.Context())
	h.logger.InfoContext(r.Context(), "dataset cache reset requested",
		slog.String("remote_addr", r.RemoteAddr))
	render.NoContent(w, r)
}
