package stats

import (
	"fmt"
	"sort"

	"almanac/internal/dataset"
	apierrors "almanac/internal/errors"
	"almanac/pkg/contracts/domain"
)

// windowRadius is how many seasons a window trend reaches either side
// of the selected year
const windowRadius = 5

// rateMetrics average when a traded player's team rows combine into one
// season point; counting stats sum.
var rateMetrics = map[string]bool{
	"batting_average": true,
	"era":             true,
	"win_percentage":  true,
	"games_behind":    true,
}

// Trend returns an entity's season-by-season series for one metric,
// ascending by year. The entity is a team name on the teams table and a
// player name otherwise. Mode "all" covers every season the entity
// appears in; mode "window" keeps seasons within windowRadius of the
// selected year, clipped to the entity's own span. Seasons without a
// row are omitted, never zero-filled. An entity with no rows at all is
// an error; a window that catches no seasons is just empty.
func Trend(ds *dataset.Dataset, table domain.Table, entity, metric string, mode domain.TrendMode, selectedYear int) ([]domain.TrendPoint, error) {
	if !table.Valid() {
		return nil, fmt.Errorf("%w: %q", apierrors.ErrUnknownTable, table)
	}
	if !mode.Valid() {
		return nil, fmt.Errorf("%w: %q", apierrors.ErrUnknownMode, mode)
	}
	if !validMetric(table, metric) {
		return nil, fmt.Errorf("%w: %q on table %s", apierrors.ErrUnknownMetric, metric, table)
	}

	values := seriesValues(ds, table, entity, metric)
	if len(values) == 0 {
		return nil, fmt.Errorf("%w: %q in table %s", apierrors.ErrUnknownEntity, entity, table)
	}

	years := make([]int, 0, len(values))
	for year := range values {
		years = append(years, year)
	}
	sort.Ints(years)

	lo, hi := years[0], years[len(years)-1]
	if mode == domain.TrendModeWindow {
		lo, hi = WindowBounds(years[0], years[len(years)-1], selectedYear)
	}

	points := make([]domain.TrendPoint, 0, len(years))
	for _, year := range years {
		if year < lo || year > hi {
			continue
		}
		points = append(points, domain.TrendPoint{
			Year:  year,
			Value: aggregate(values[year], rateMetrics[metric]),
		})
	}
	return points, nil
}

// WindowBounds clips the ±windowRadius span around selected to the
// available [min, max] year range
func WindowBounds(min, max, selected int) (int, int) {
	lo := selected - windowRadius
	hi := selected + windowRadius
	if lo < min {
		lo = min
	}
	if hi > max {
		hi = max
	}
	return lo, hi
}

// seriesValues collects the entity's metric values grouped by season.
// Multiple values in one season come from mid-season trades.
func seriesValues(ds *dataset.Dataset, table domain.Table, entity, metric string) map[int][]float64 {
	values := make(map[int][]float64)
	switch table {
	case domain.TableTeams:
		for _, row := range ds.Teams() {
			if row.Team == entity {
				values[row.Year] = append(values[row.Year], teamMetric(row, metric))
			}
		}
	case domain.TableBatting:
		for _, row := range ds.Batting() {
			if row.Player == entity {
				values[row.Year] = append(values[row.Year], battingMetric(row, metric))
			}
		}
	case domain.TablePitching:
		for _, row := range ds.Pitching() {
			if row.Player == entity {
				values[row.Year] = append(values[row.Year], pitchingMetric(row, metric))
			}
		}
	}
	return values
}

func aggregate(values []float64, isRate bool) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	if isRate && len(values) > 0 {
		return sum / float64(len(values))
	}
	return sum
}
