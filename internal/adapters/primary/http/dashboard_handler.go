package http

import (
	"bytes"
	_ "embed"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/meharaz2020/fair-dashboard/internal/adapters/primary/render"
	"github.com/meharaz2020/fair-dashboard/internal/adapters/primary/validation"
	"github.com/meharaz2020/fair-dashboard/internal/core/domain"
	apperrors "github.com/meharaz2020/fair-dashboard/internal/core/errors"
	"github.com/meharaz2020/fair-dashboard/internal/core/ports"
)

//go:embed templates/dashboard.html
var dashboardHTML string

var dashboardTemplate = template.Must(template.New("dashboard").Parse(dashboardHTML))

// DashboardOptions holds presentation settings for the dashboard page
type DashboardOptions struct {
	Title           string
	LogoURL         string
	DefaultMode     domain.Mode
	RefreshInterval time.Duration
}

// DashboardHandler serves the dashboard page and its JSON API.
type DashboardHandler struct {
	service      ports.DashboardService
	errorHandler *ErrorHandler
	opts         DashboardOptions
	logger       *slog.Logger
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(
	service ports.DashboardService,
	errorHandler *ErrorHandler,
	opts DashboardOptions,
	logger *slog.Logger,
) *DashboardHandler {
	if !opts.DefaultMode.IsValid() {
		opts.DefaultMode = domain.ModeFiveMinute
	}
	return &DashboardHandler{
		service:      service,
		errorHandler: errorHandler,
		opts:         opts,
		logger:       logger.With("handler", "dashboard"),
	}
}

// RegisterPageRoutes registers the HTML routes.
func (h *DashboardHandler) RegisterPageRoutes(r chi.Router) {
	r.Get("/", h.HandlePage)
	r.Get("/report", h.HandleReport)
}

// RegisterAPIRoutes registers the JSON API routes. refreshMiddleware wraps
// only the manual refresh endpoint.
func (h *DashboardHandler) RegisterAPIRoutes(r chi.Router, refreshMiddleware ...func(http.Handler) http.Handler) {
	r.Get("/snapshot", h.HandleSnapshot)
	r.With(refreshMiddleware...).Post("/refresh", h.HandleRefresh)
	r.Get("/timeseries", h.HandleTimeSeries)
	r.Get("/timeseries.png", h.HandleTimeSeriesPNG)
}

// HandleSnapshot handles GET /api/v1/snapshot.
func (h *DashboardHandler) HandleSnapshot(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.service.Latest()
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}
	WriteSuccess(w, snapshot)
}

// HandleRefresh handles POST /api/v1/refresh.
func (h *DashboardHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.service.Refresh(r.Context())
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.logger.InfoContext(r.Context(), "manual refresh completed",
		"refreshed_at", snapshot.RefreshedAt,
	)
	WriteSuccess(w, snapshot)
}

// HandleTimeSeries handles GET /api/v1/timeseries.
func (h *DashboardHandler) HandleTimeSeries(w http.ResponseWriter, r *http.Request) {
	spec, ok := h.timeSeries(w, r)
	if !ok {
		return
	}
	WriteSuccess(w, spec)
}

// HandleTimeSeriesPNG handles GET /api/v1/timeseries.png.
func (h *DashboardHandler) HandleTimeSeriesPNG(w http.ResponseWriter, r *http.Request) {
	spec, ok := h.timeSeries(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := render.PNG(&buf, *spec); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}
	WriteBytes(w, "image/png", buf.Bytes())
}

// HandleReport handles GET /report, a server-rendered chart page.
func (h *DashboardHandler) HandleReport(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.service.Latest()
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	spec, ok := h.timeSeries(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := render.WriteReport(&buf, h.opts.Title, snapshot, spec); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

type pageData struct {
	Title         string
	LogoURL       string
	DefaultMode   string
	Modes         []domain.Mode
	RefreshMillis int64
	Snapshot      *domain.Snapshot
}

// HandlePage handles GET /. The page renders whatever snapshot exists and
// then follows live updates over the websocket.
func (h *DashboardHandler) HandlePage(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.service.Latest()
	if err != nil && !errors.Is(err, apperrors.ErrSnapshotUnavailable) {
		h.errorHandler.Handle(w, r, err)
		return
	}

	data := pageData{
		Title:         h.opts.Title,
		LogoURL:       h.opts.LogoURL,
		DefaultMode:   string(h.opts.DefaultMode),
		Modes:         domain.Modes,
		RefreshMillis: h.opts.RefreshInterval.Milliseconds(),
		Snapshot:      snapshot,
	}

	var buf bytes.Buffer
	if err := dashboardTemplate.Execute(&buf, data); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to render dashboard page", "error", err)
		h.errorHandler.Handle(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (h *DashboardHandler) timeSeries(w http.ResponseWriter, r *http.Request) (*domain.ChartSpec, bool) {
	mode, err := validation.ParseMode(r, h.opts.DefaultMode)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return nil, false
	}

	spec, err := h.service.TimeSeries(r.Context(), mode)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return nil, false
	}
	return spec, true
}
