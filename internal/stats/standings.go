package stats

import (
	"sort"

	"almanac/internal/dataset"
	"almanac/pkg/contracts/domain"
)

// Standings returns one season's team rows in display order: wins
// descending, losses ascending, then team name so equal records always
// land in the same order. A season with no rows returns an empty slice.
func Standings(ds *dataset.Dataset, year int) []domain.TeamSeason {
	rows := ds.TeamsForYear(year)
	if rows == nil {
		return []domain.TeamSeason{}
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Wins != rows[j].Wins {
			return rows[i].Wins > rows[j].Wins
		}
		if rows[i].Losses != rows[j].Losses {
			return rows[i].Losses < rows[j].Losses
		}
		return rows[i].Team < rows[j].Team
	})
	return rows
}
