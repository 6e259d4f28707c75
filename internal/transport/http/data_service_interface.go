package http

import (
	"context"

	"almanac/pkg/contracts/domain"
)

// DataServiceInterface defines the query operations the data handler needs
type DataServiceInterface interface {
	Years(ctx context.Context) ([]int, error)
	Standings(ctx context.Context, year int) ([]domain.TeamSeason, error)
	Leaderboard(ctx context.Context, table domain.Table, year int, metric string, topN int, order domain.SortOrder) ([]domain.LeaderboardEntry, error)
	Trend(ctx context.Context, table domain.Table, entity, metric string, mode domain.TrendMode, year int) ([]domain.TrendPoint, error)
	Tables(ctx context.Context) ([]domain.TableMeta, error)
}
