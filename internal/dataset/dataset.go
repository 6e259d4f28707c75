// Package dataset loads the cleaned season CSVs into immutable typed
// tables the query layer reads. Loading is strict: a missing file,
// unexpected header or malformed row fails the load rather than
// serving partial data.
package dataset

import (
	"sort"
	"time"

	"almanac/pkg/contracts/domain"
)

// Dataset holds every cleaned table in memory. It is built once by a
// Loader and never modified afterwards; accessors hand out the backing
// slices, which callers must treat as read-only.
type Dataset struct {
	teams    []domain.TeamSeason
	batting  []domain.BattingSeason
	pitching []domain.PitchingSeason

	minYear  int
	maxYear  int
	dir      string
	loadedAt time.Time
}

// Teams returns all standings rows in cleaned-file order
func (d *Dataset) Teams() []domain.TeamSeason {
	return d.teams
}

// Batting returns all batting rows in cleaned-file order
func (d *Dataset) Batting() []domain.BattingSeason {
	return d.batting
}

// Pitching returns all pitching rows in cleaned-file order
func (d *Dataset) Pitching() []domain.PitchingSeason {
	return d.pitching
}

// TeamsForYear returns the standings rows for one season
func (d *Dataset) TeamsForYear(year int) []domain.TeamSeason {
	var rows []domain.TeamSeason
	for _, row := range d.teams {
		if row.Year == year {
			rows = append(rows, row)
		}
	}
	return rows
}

// BattingForYear returns the batting rows for one season
func (d *Dataset) BattingForYear(year int) []domain.BattingSeason {
	var rows []domain.BattingSeason
	for _, row := range d.batting {
		if row.Year == year {
			rows = append(rows, row)
		}
	}
	return rows
}

// PitchingForYear returns the pitching rows for one season
func (d *Dataset) PitchingForYear(year int) []domain.PitchingSeason {
	var rows []domain.PitchingSeason
	for _, row := range d.pitching {
		if row.Year == year {
			rows = append(rows, row)
		}
	}
	return rows
}

// Years returns the distinct standings seasons in ascending order.
// The standings table drives the season dropdown; batting or pitching
// rows outside its range do not add years here.
func (d *Dataset) Years() []int {
	seen := make(map[int]bool, 16)
	years := make([]int, 0, 16)
	for _, row := range d.teams {
		if !seen[row.Year] {
			seen[row.Year] = true
			years = append(years, row.Year)
		}
	}
	sort.Ints(years)
	return years
}

// YearRange returns the lowest and highest season across all three
// tables. Both are zero when the dataset is empty.
func (d *Dataset) YearRange() (min, max int) {
	return d.minYear, d.maxYear
}

// Empty reports whether the standings table has no rows
func (d *Dataset) Empty() bool {
	return len(d.teams) == 0
}

// Counts returns per-table row counts for health reporting
func (d *Dataset) Counts() map[string]int {
	return map[string]int{
		string(domain.TableTeams):    len(d.teams),
		string(domain.TableBatting):  len(d.batting),
		string(domain.TablePitching): len(d.pitching),
	}
}

// Dir returns the directory the dataset was loaded from
func (d *Dataset) Dir() string {
	return d.dir
}

// LoadedAt returns when the load finished
func (d *Dataset) LoadedAt() time.Time {
	return d.loadedAt
}
