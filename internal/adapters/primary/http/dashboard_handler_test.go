package http

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/meharaz2020/fair-dashboard/internal/core/charts"
	"github.com/meharaz2020/fair-dashboard/internal/core/domain"
	apperrors "github.com/meharaz2020/fair-dashboard/internal/core/errors"
	"github.com/meharaz2020/fair-dashboard/internal/core/mocks"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testSnapshot() *domain.Snapshot {
	row := domain.NewSummaryRowFromCounters(map[string]domain.Counter{
		domain.ColTotalRegistered: domain.NewCounter(500),
		domain.ColVisitors:        domain.NewCounter(300),
	})
	return &domain.Snapshot{
		Table:       domain.ToAttributeValuePairs(row, domain.SummaryColumns),
		Pies:        charts.BuildPies(row),
		RefreshedAt: time.Now().UTC(),
	}
}

func testIntervals() []domain.IntervalCount {
	return []domain.IntervalCount{
		{Start: time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC), Count: 4},
		{Start: time.Date(2025, 2, 1, 9, 5, 0, 0, time.UTC), Count: 6},
	}
}

func newDashboardRouter(svc *mocks.MockDashboardService, refreshMiddleware ...func(stdhttp.Handler) stdhttp.Handler) chi.Router {
	handler := NewDashboardHandler(svc, NewErrorHandler(discardLogger()), DashboardOptions{
		Title:           "HOSPITALITY JOB FAIR",
		LogoURL:         "https://example.com/logo.svg",
		DefaultMode:     domain.ModeFiveMinute,
		RefreshInterval: 30 * time.Second,
	}, discardLogger())

	r := chi.NewRouter()
	handler.RegisterPageRoutes(r)
	r.Route("/api/v1", func(r chi.Router) {
		handler.RegisterAPIRoutes(r, refreshMiddleware...)
	})
	return r
}

func serve(r chi.Router, method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	recorder := httptest.NewRecorder()
	r.ServeHTTP(recorder, req)
	return recorder
}

func decodeError(t *testing.T, recorder *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
	return resp
}

func TestDashboardHandler_Snapshot(t *testing.T) {
	t.Run("returns latest snapshot", func(t *testing.T) {
		svc := mocks.NewMockDashboardService()
		svc.On("Latest").Return(testSnapshot(), nil)

		recorder := serve(newDashboardRouter(svc), stdhttp.MethodGet, "/api/v1/snapshot")

		require.Equal(t, stdhttp.StatusOK, recorder.Code)
		var body struct {
			Data domain.Snapshot `json:"data"`
		}
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&body))
		require.Len(t, body.Data.Table, len(domain.SummaryColumns))
		assert.Equal(t, domain.AttributeValue{Attribute: "total_registered", Value: "500"}, body.Data.Table[0])
		require.Len(t, body.Data.Pies, 3)
		assert.Equal(t, []float64{500, 300}, body.Data.Pies[0].Values)
	})

	t.Run("unavailable before first refresh", func(t *testing.T) {
		svc := mocks.NewMockDashboardService()
		svc.On("Latest").Return(nil, apperrors.ErrSnapshotUnavailable)

		recorder := serve(newDashboardRouter(svc), stdhttp.MethodGet, "/api/v1/snapshot")

		assert.Equal(t, stdhttp.StatusServiceUnavailable, recorder.Code)
		assert.Equal(t, "SNAPSHOT_UNAVAILABLE", decodeError(t, recorder).Code)
	})
}

func TestDashboardHandler_Refresh(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := mocks.NewMockDashboardService()
		svc.On("Refresh", mock.Anything).Return(testSnapshot(), nil)

		recorder := serve(newDashboardRouter(svc), stdhttp.MethodPost, "/api/v1/refresh")

		assert.Equal(t, stdhttp.StatusOK, recorder.Code)
		svc.AssertExpectations(t)
	})

	t.Run("query failure", func(t *testing.T) {
		svc := mocks.NewMockDashboardService()
		svc.On("Refresh", mock.Anything).
			Return(nil, fmt.Errorf("fetch summary: %w", apperrors.ErrQueryFailed))

		recorder := serve(newDashboardRouter(svc), stdhttp.MethodPost, "/api/v1/refresh")

		assert.Equal(t, stdhttp.StatusBadGateway, recorder.Code)
		assert.Equal(t, "QUERY_FAILED", decodeError(t, recorder).Code)
	})

	t.Run("refresh middleware applies", func(t *testing.T) {
		svc := mocks.NewMockDashboardService()
		reject := func(stdhttp.Handler) stdhttp.Handler {
			return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
				w.WriteHeader(stdhttp.StatusTooManyRequests)
			})
		}

		recorder := serve(newDashboardRouter(svc, reject), stdhttp.MethodPost, "/api/v1/refresh")

		assert.Equal(t, stdhttp.StatusTooManyRequests, recorder.Code)
		svc.AssertNotCalled(t, "Refresh", mock.Anything)
	})

	t.Run("GET is not allowed", func(t *testing.T) {
		svc := mocks.NewMockDashboardService()

		recorder := serve(newDashboardRouter(svc), stdhttp.MethodGet, "/api/v1/refresh")

		assert.Equal(t, stdhttp.StatusMethodNotAllowed, recorder.Code)
	})
}

func TestDashboardHandler_TimeSeries(t *testing.T) {
	line := charts.BuildIntervalLine(testIntervals())
	bar := charts.BuildHourlyBar(domain.ToHourlyBuckets(testIntervals()))

	tests := []struct {
		name     string
		target   string
		wantMode domain.Mode
		spec     *domain.ChartSpec
		wantKind domain.ChartKind
	}{
		{"default mode", "/api/v1/timeseries", domain.ModeFiveMinute, &line, domain.ChartLine},
		{"five minute", "/api/v1/timeseries?mode=5min", domain.ModeFiveMinute, &line, domain.ChartLine},
		{"hourly", "/api/v1/timeseries?mode=hourly", domain.ModeHourly, &bar, domain.ChartBar},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := mocks.NewMockDashboardService()
			svc.On("TimeSeries", mock.Anything, tt.wantMode).Return(tt.spec, nil)

			recorder := serve(newDashboardRouter(svc), stdhttp.MethodGet, tt.target)

			require.Equal(t, stdhttp.StatusOK, recorder.Code)
			var body struct {
				Data domain.ChartSpec `json:"data"`
			}
			require.NoError(t, json.NewDecoder(recorder.Body).Decode(&body))
			assert.Equal(t, tt.wantKind, body.Data.Kind)
			assert.Equal(t, tt.spec.Values, body.Data.Values)
			svc.AssertExpectations(t)
		})
	}

	t.Run("invalid mode", func(t *testing.T) {
		svc := mocks.NewMockDashboardService()

		recorder := serve(newDashboardRouter(svc), stdhttp.MethodGet, "/api/v1/timeseries?mode=daily")

		assert.Equal(t, stdhttp.StatusBadRequest, recorder.Code)
		assert.Equal(t, "INVALID_MODE", decodeError(t, recorder).Code)
		svc.AssertNotCalled(t, "TimeSeries", mock.Anything, mock.Anything)
	})

	t.Run("hourly placeholder", func(t *testing.T) {
		placeholder := charts.Placeholder()
		svc := mocks.NewMockDashboardService()
		svc.On("TimeSeries", mock.Anything, domain.ModeHourly).Return(&placeholder, nil)

		recorder := serve(newDashboardRouter(svc), stdhttp.MethodGet, "/api/v1/timeseries?mode=hourly")

		require.Equal(t, stdhttp.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), `"kind":"placeholder"`)
		assert.Contains(t, recorder.Body.String(), "No Data Available")
	})
}

func TestDashboardHandler_TimeSeriesPNG(t *testing.T) {
	t.Run("renders image", func(t *testing.T) {
		line := charts.BuildIntervalLine(testIntervals())
		svc := mocks.NewMockDashboardService()
		svc.On("TimeSeries", mock.Anything, domain.ModeFiveMinute).Return(&line, nil)

		recorder := serve(newDashboardRouter(svc), stdhttp.MethodGet, "/api/v1/timeseries.png")

		require.Equal(t, stdhttp.StatusOK, recorder.Code)
		assert.Equal(t, "image/png", recorder.Header().Get("Content-Type"))
		assert.True(t, strings.HasPrefix(recorder.Body.String(), "\x89PNG"))
	})

	t.Run("single interval", func(t *testing.T) {
		line := charts.BuildIntervalLine(testIntervals()[:1])
		svc := mocks.NewMockDashboardService()
		svc.On("TimeSeries", mock.Anything, domain.ModeFiveMinute).Return(&line, nil)

		recorder := serve(newDashboardRouter(svc), stdhttp.MethodGet, "/api/v1/timeseries.png?mode=5min")

		require.Equal(t, stdhttp.StatusOK, recorder.Code, recorder.Body.String())
		assert.True(t, strings.HasPrefix(recorder.Body.String(), "\x89PNG"))
	})

	t.Run("no data", func(t *testing.T) {
		placeholder := charts.Placeholder()
		svc := mocks.NewMockDashboardService()
		svc.On("TimeSeries", mock.Anything, domain.ModeHourly).Return(&placeholder, nil)

		recorder := serve(newDashboardRouter(svc), stdhttp.MethodGet, "/api/v1/timeseries.png?mode=hourly")

		assert.Equal(t, stdhttp.StatusNotFound, recorder.Code)
		assert.Equal(t, "NO_DATA", decodeError(t, recorder).Code)
	})
}

func TestDashboardHandler_Report(t *testing.T) {
	t.Run("renders charts", func(t *testing.T) {
		line := charts.BuildIntervalLine(testIntervals())
		svc := mocks.NewMockDashboardService()
		svc.On("Latest").Return(testSnapshot(), nil)
		svc.On("TimeSeries", mock.Anything, domain.ModeFiveMinute).Return(&line, nil)

		recorder := serve(newDashboardRouter(svc), stdhttp.MethodGet, "/report")

		require.Equal(t, stdhttp.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Header().Get("Content-Type"), "text/html")
		assert.Contains(t, recorder.Body.String(), "Total Registered vs Visitors")
		assert.Contains(t, recorder.Body.String(), "OPID Count per 5 Minutes")
	})

	t.Run("no snapshot yet", func(t *testing.T) {
		svc := mocks.NewMockDashboardService()
		svc.On("Latest").Return(nil, apperrors.ErrSnapshotUnavailable)

		recorder := serve(newDashboardRouter(svc), stdhttp.MethodGet, "/report")

		assert.Equal(t, stdhttp.StatusServiceUnavailable, recorder.Code)
		svc.AssertNotCalled(t, "TimeSeries", mock.Anything, mock.Anything)
	})
}

func TestDashboardHandler_Page(t *testing.T) {
	t.Run("renders table", func(t *testing.T) {
		svc := mocks.NewMockDashboardService()
		svc.On("Latest").Return(testSnapshot(), nil)

		recorder := serve(newDashboardRouter(svc), stdhttp.MethodGet, "/")

		require.Equal(t, stdhttp.StatusOK, recorder.Code)
		body := recorder.Body.String()
		assert.Contains(t, body, "<h1>HOSPITALITY JOB FAIR</h1>")
		assert.Contains(t, body, "https://example.com/logo.svg")
		assert.Contains(t, body, "<td>total_registered</td><td>500</td>")
		assert.Contains(t, body, `<option value="5min" selected>`)
		assert.Contains(t, body, "pie-chart-3")
	})

	t.Run("renders before first refresh", func(t *testing.T) {
		svc := mocks.NewMockDashboardService()
		svc.On("Latest").Return(nil, apperrors.ErrSnapshotUnavailable)

		recorder := serve(newDashboardRouter(svc), stdhttp.MethodGet, "/")

		require.Equal(t, stdhttp.StatusOK, recorder.Code)
		assert.NotContains(t, recorder.Body.String(), "<td>total_registered</td>")
	})
}

func TestNewDashboardHandler_DefaultsInvalidMode(t *testing.T) {
	handler := NewDashboardHandler(mocks.NewMockDashboardService(), NewErrorHandler(discardLogger()),
		DashboardOptions{DefaultMode: "weekly"}, discardLogger())

	assert.Equal(t, domain.ModeFiveMinute, handler.opts.DefaultMode)
}
