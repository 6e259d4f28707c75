package stats

import (
	"fmt"
	"slices"

	"almanac/internal/dataprocessing"
	apierrors "almanac/internal/errors"
	"almanac/pkg/contracts/domain"
)

// Metrics returns the metric names a table can be queried by, in
// canonical column order.
func Metrics(table domain.Table) ([]string, error) {
	schema, err := dataprocessing.SchemaFor(table)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", apierrors.ErrUnknownTable, table)
	}
	return schema.NumericColumns(), nil
}

// validMetric reports whether metric can be queried on table
func validMetric(table domain.Table, metric string) bool {
	metrics, err := Metrics(table)
	if err != nil {
		return false
	}
	return slices.Contains(metrics, metric)
}

func teamMetric(row domain.TeamSeason, metric string) float64 {
	switch metric {
	case "wins":
		return float64(row.Wins)
	case "losses":
		return float64(row.Losses)
	case "win_percentage":
		return row.WinPercentage
	case "games_behind":
		return row.GamesBehind
	}
	return 0
}

func battingMetric(row domain.BattingSeason, metric string) float64 {
	switch metric {
	case "games":
		return float64(row.Games)
	case "at_bats":
		return float64(row.AtBats)
	case "runs":
		return float64(row.Runs)
	case "hits":
		return float64(row.Hits)
	case "home_runs":
		return float64(row.HomeRuns)
	case "rbi":
		return float64(row.RBI)
	case "stolen_bases":
		return float64(row.StolenBases)
	case "batting_average":
		return row.BattingAverage
	}
	return 0
}

func pitchingMetric(row domain.PitchingSeason, metric string) float64 {
	switch metric {
	case "games":
		return float64(row.Games)
	case "wins":
		return float64(row.Wins)
	case "losses":
		return float64(row.Losses)
	case "innings_pitched":
		return row.InningsPitched
	case "strikeouts":
		return float64(row.Strikeouts)
	case "walks":
		return float64(row.Walks)
	case "saves":
		return float64(row.Saves)
	case "era":
		return row.ERA
	}
	return 0
}
