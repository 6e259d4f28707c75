package stats

import (
	"fmt"
	"sort"

	"almanac/internal/dataset"
	apierrors "almanac/internal/errors"
	"almanac/pkg/contracts/domain"
)

// Leaderboard ranks one season's rows by a metric and returns at most
// topN entries. The default order is descending; ascending suits rate
// stats like era where lower is better. Players traded mid-season rank
// per team row, so the Team field disambiguates. Ties order by player
// then team. A season with no rows returns an empty slice.
func Leaderboard(ds *dataset.Dataset, table domain.Table, year int, metric string, topN int, order domain.SortOrder) ([]domain.LeaderboardEntry, error) {
	if !table.Valid() {
		return nil, fmt.Errorf("%w: %q", apierrors.ErrUnknownTable, table)
	}
	if !validMetric(table, metric) {
		return nil, fmt.Errorf("%w: %q on table %s", apierrors.ErrUnknownMetric, metric, table)
	}
	if topN < 1 {
		return nil, fmt.Errorf("%w: %d", apierrors.ErrInvalidLimit, topN)
	}

	type ranked struct {
		player string
		team   string
		value  float64
	}
	var rows []ranked

	switch table {
	case domain.TableTeams:
		for _, row := range ds.TeamsForYear(year) {
			rows = append(rows, ranked{team: row.Team, value: teamMetric(row, metric)})
		}
	case domain.TableBatting:
		for _, row := range ds.BattingForYear(year) {
			rows = append(rows, ranked{player: row.Player, team: row.Team, value: battingMetric(row, metric)})
		}
	case domain.TablePitching:
		for _, row := range ds.PitchingForYear(year) {
			rows = append(rows, ranked{player: row.Player, team: row.Team, value: pitchingMetric(row, metric)})
		}
	}

	ascending := order == domain.SortAscending
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].value != rows[j].value {
			if ascending {
				return rows[i].value < rows[j].value
			}
			return rows[i].value > rows[j].value
		}
		if rows[i].player != rows[j].player {
			return rows[i].player < rows[j].player
		}
		return rows[i].team < rows[j].team
	})

	if len(rows) > topN {
		rows = rows[:topN]
	}

	entries := make([]domain.LeaderboardEntry, len(rows))
	for i, row := range rows {
		entries[i] = domain.LeaderboardEntry{
			Rank:   i + 1,
			Player: row.player,
			Team:   row.team,
			Value:  row.value,
		}
	}
	return entries, nil
}
