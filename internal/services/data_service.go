package services

import (
	"context"
	"log/slog"
	"time"

	"almanac/internal/dataset"
	apierrors "almanac/internal/errors"
	"almanac/internal/infrastructure"
	"almanac/internal/stats"
	"almanac/pkg/contracts/domain"
)

// DataService answers dashboard queries over the loaded dataset. It
// owns the cross-cutting concerns around the pure stats functions:
// logging, query metrics and the dataset-missing guard.
type DataService struct {
	ds      *dataset.Dataset
	logger  *slog.Logger
	metrics *infrastructure.BusinessMetrics
}

// NewDataService creates a data service. The dataset may be nil when
// the server starts without cleaned data; every query then fails with
// ErrDatasetMissing. Metrics may be nil in tests.
func NewDataService(ds *dataset.Dataset, logger *slog.Logger, metrics *infrastructure.BusinessMetrics) *DataService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DataService{
		ds:      ds,
		logger:  infrastructure.WithComponent(logger, "data_service"),
		metrics: metrics,
	}
}

// Years returns the seasons available for querying, latest first
func (s *DataService) Years(ctx context.Context) ([]int, error) {
	if s.ds == nil {
		return nil, apierrors.ErrDatasetMissing
	}
	start := time.Now()

	years := stats.Years(s.ds)

	infrastructure.RecordQueryMetrics(ctx, s.metrics, "years", string(domain.TableTeams), time.Since(start), len(years))
	s.logger.DebugContext(ctx, "years listed",
		slog.Int("count", len(years)),
		slog.Duration("duration", time.Since(start)))
	return years, nil
}

// Standings returns one season's team rows in display order
func (s *DataService) Standings(ctx context.Context, year int) ([]domain.TeamSeason, error) {
	if s.ds == nil {
		return nil, apierrors.ErrDatasetMissing
	}
	start := time.Now()

	rows := stats.Standings(s.ds, year)

	infrastructure.RecordQueryMetrics(ctx, s.metrics, "standings", string(domain.TableTeams), time.Since(start), len(rows))
	s.logger.DebugContext(ctx, "standings computed",
		slog.Int("year", year),
		slog.Int("rows", len(rows)),
		slog.Duration("duration", time.Since(start)))
	return rows, nil
}

// Leaderboard ranks one season's rows by a metric
func (s *DataService) Leaderboard(ctx context.Context, table domain.Table, year int, metric string, topN int, order domain.SortOrder) ([]domain.LeaderboardEntry, error) {
	if s.ds == nil {
		return nil, apierrors.ErrDatasetMissing
	}
	start := time.Now()

	entries, err := stats.Leaderboard(s.ds, table, year, metric, topN, order)
	if err != nil {
		logQueryError(ctx, "leaderboard", err,
			slog.String("table", string(table)),
			slog.String("metric", metric))
		return nil, err
	}

	infrastructure.RecordQueryMetrics(ctx, s.metrics, "leaderboard", string(table), time.Since(start), len(entries))
	s.logger.DebugContext(ctx, "leaderboard computed",
		slog.String("table", string(table)),
		slog.Int("year", year),
		slog.String("metric", metric),
		slog.Int("entries", len(entries)),
		slog.Duration("duration", time.Since(start)))
	return entries, nil
}

// Trend returns an entity's season-by-season series for one metric
func (s *DataService) Trend(ctx context.Context, table domain.Table, entity, metric string, mode domain.TrendMode, year int) ([]domain.TrendPoint, error) {
	if s.ds == nil {
		return nil, apierrors.ErrDatasetMissing
	}
	start := time.Now()

	points, err := stats.Trend(s.ds, table, entity, metric, mode, year)
	if err != nil {
		logQueryError(ctx, "trend", err,
			slog.String("table", string(table)),
			slog.String("entity", entity),
			slog.String("metric", metric))
		return nil, err
	}

	infrastructure.RecordQueryMetrics(ctx, s.metrics, "trend", string(table), time.Since(start), len(points))
	s.logger.DebugContext(ctx, "trend computed",
		slog.String("table", string(table)),
		slog.String("entity", entity),
		slog.String("metric", metric),
		slog.String("mode", string(mode)),
		slog.Int("points", len(points)),
		slog.Duration("duration", time.Since(start)))
	return points, nil
}

// Tables describes every queryable table: row counts, year spans and
// the metrics each accepts.
func (s *DataService) Tables(ctx context.Context) ([]domain.TableMeta, error) {
	if s.ds == nil {
		return nil, apierrors.ErrDatasetMissing
	}
	start := time.Now()

	metas, err := stats.AllMeta(s.ds)
	if err != nil {
		logQueryError(ctx, "tables", err)
		return nil, err
	}

	infrastructure.RecordQueryMetrics(ctx, s.metrics, "tables", "all", time.Since(start), len(metas))
	return metas, nil
}

// logQueryError logs a failed query with the request-scoped logger
func logQueryError(ctx context.Context, query string, err error, attrs ...slog.Attr) {
	logger := infrastructure.LoggerWithContext(ctx)

	allAttrs := []slog.Attr{
		slog.String("component", "data_service"),
		slog.String("query", query),
		slog.String("error", err.Error()),
	}
	allAttrs = append(allAttrs, attrs...)

	logger.LogAttrs(ctx, slog.LevelWarn, "query failed", allAttrs...)
}
