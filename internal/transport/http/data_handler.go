package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "almanac/internal/errors"
	"almanac/internal/middleware"
	"almanac/pkg/contracts/domain"
)

// DataHandler handles query HTTP requests with RFC 7807 compliance
type DataHandler struct {
	service DataServiceInterface
	logger  *slog.Logger
	params  *middleware.QueryParamValidator
}

// NewDataHandler creates a new data handler with RFC 7807 error handling
func NewDataHandler(service DataServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *DataHandler {
	return &DataHandler{
		service: service,
		logger:  logger.With(slog.String("component", "data_handler")),
		params:  middleware.NewQueryParamValidator(logger, errorHandler),
	}
}

// Routes returns the query routes
func (h *DataHandler) Routes() chi.Router {
	r := chi.NewRouter()

	// Use render for consistent JSON responses
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/years", h.GetYears)
	r.Get("/standings", h.GetStandings)
	r.Get("/leaderboard", h.GetLeaderboard)
	r.Get("/trend", h.GetTrend)
	r.Get("/tables", h.GetTables)

	return r
}

// GetYears handles GET /api/years
func (h *DataHandler) GetYears(w http.ResponseWriter, r *http.Request) {
	years, err := h.service.Years(r.Context())
	if err != nil {
		h.renderQueryError(w, r, "/api/years", err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"years": years,
		"count": len(years),
	})
}

// GetStandings handles GET /api/standings. An omitted year defaults to
// the latest season; an unknown year returns an empty row set, not an
// error.
func (h *DataHandler) GetStandings(w http.ResponseWriter, r *http.Request) {
	year, ok := h.seasonYear(w, r, "/api/standings")
	if !ok {
		return
	}
	if year == 0 {
		latest, ok := h.latestYear(w, r, "/api/standings")
		if !ok {
			return
		}
		year = latest
	}

	rows, err := h.service.Standings(r.Context(), year)
	if err != nil {
		h.renderQueryError(w, r, "/api/standings", err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"year":  year,
		"rows":  rows,
		"count": len(rows),
	})
}

// GetLeaderboard handles GET /api/leaderboard. Unknown tables and
// metrics are 400s; a season with no rows is an empty result.
func (h *DataHandler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	table := domain.Table(r.URL.Query().Get("table"))
	metric := r.URL.Query().Get("metric")

	year, ok := h.seasonYear(w, r, "/api/leaderboard")
	if !ok {
		return
	}
	if year == 0 {
		latest, ok := h.latestYear(w, r, "/api/leaderboard")
		if !ok {
			return
		}
		year = latest
	}

	limit, ok := h.params.ValidateInt(w, r, "limit", 1, 100, 10)
	if !ok {
		return
	}
	order, ok := h.params.ValidateEnum(w, r, "order",
		[]string{string(domain.SortDescending), string(domain.SortAscending)},
		string(domain.SortDescending))
	if !ok {
		return
	}

	entries, err := h.service.Leaderboard(r.Context(), table, year, metric, limit, domain.SortOrder(order))
	if err != nil {
		h.renderQueryError(w, r, "/api/leaderboard", err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"table":   table,
		"year":    year,
		"metric":  metric,
		"order":   order,
		"entries": entries,
		"count":   len(entries),
	})
}

// GetTrend handles GET /api/trend. Mode defaults to "all"; window mode
// centers on the selected year, defaulting to the latest season.
func (h *DataHandler) GetTrend(w http.ResponseWriter, r *http.Request) {
	table := domain.Table(r.URL.Query().Get("table"))
	entity := r.URL.Query().Get("entity")
	metric := r.URL.Query().Get("metric")

	mode := domain.TrendMode(r.URL.Query().Get("mode"))
	if mode == "" {
		mode = domain.TrendModeAll
	}

	year, ok := h.seasonYear(w, r, "/api/trend")
	if !ok {
		return
	}
	if year == 0 && mode == domain.TrendModeWindow {
		latest, ok := h.latestYear(w, r, "/api/trend")
		if !ok {
			return
		}
		year = latest
	}

	points, err := h.service.Trend(r.Context(), table, entity, metric, mode, year)
	if err != nil {
		h.renderQueryError(w, r, "/api/trend", err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"table":  table,
		"entity": entity,
		"metric": metric,
		"mode":   mode,
		"points": points,
		"count":  len(points),
	})
}

// GetTables handles GET /api/tables
func (h *DataHandler) GetTables(w http.ResponseWriter, r *http.Request) {
	metas, err := h.service.Tables(r.Context())
	if err != nil {
		h.renderQueryError(w, r, "/api/tables", err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"tables": metas,
		"count":  len(metas),
	})
}

// seasonYear parses the optional year query parameter. Zero means the
// parameter was omitted; the caller decides the default.
func (h *DataHandler) seasonYear(w http.ResponseWriter, r *http.Request, endpoint string) (int, bool) {
	raw := r.URL.Query().Get("year")
	if raw == "" {
		return 0, true
	}

	year, err := strconv.Atoi(raw)
	if err != nil || year < 1871 || year > 2100 {
		h.renderQueryError(w, r, endpoint, fmt.Errorf("%w: %q", apierrors.ErrInvalidYear, raw))
		return 0, false
	}
	return year, true
}

// latestYear resolves the default season for queries without a year
func (h *DataHandler) latestYear(w http.ResponseWriter, r *http.Request, endpoint string) (int, bool) {
	years, err := h.service.Years(r.Context())
	if err != nil {
		h.renderQueryError(w, r, endpoint, err)
		return 0, false
	}
	if len(years) == 0 {
		h.renderQueryError(w, r, endpoint, apierrors.ErrDatasetEmpty)
		return 0, false
	}
	return years[0], true
}

// renderQueryError maps a query error to its RFC 7807 response
func (h *DataHandler) renderQueryError(w http.ResponseWriter, r *http.Request, endpoint string, err error) {
	traceID := middleware.GetReqID(r.Context())

	h.logger.WarnContext(r.Context(), "query failed",
		slog.String("endpoint", endpoint),
		slog.String("error", err.Error()),
		slog.String("request_id", traceID),
	)

	render.Render(w, r, apierrors.MapQueryError(err, traceID, apierrors.QueryInstance(endpoint, traceID)))
}
