package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "almanac/internal/errors"
	"almanac/pkg/contracts/domain"
)

func TestLeaderboard_HomeRuns1998(t *testing.T) {
	ds := newFixtureDataset(t)

	entries, err := Leaderboard(ds, domain.TableBatting, 1998, "home_runs", 3, domain.SortDescending)

	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, domain.LeaderboardEntry{Rank: 1, Player: "M. McGwire", Team: "STL", Value: 70}, entries[0])
	assert.Equal(t, domain.LeaderboardEntry{Rank: 2, Player: "K. Griffey Jr.", Team: "SEA", Value: 56}, entries[1])
	assert.Equal(t, domain.LeaderboardEntry{Rank: 3, Player: "A. Belle", Team: "CHW", Value: 49}, entries[2])
}

func TestLeaderboard_TieBreaksByPlayer(t *testing.T) {
	ds := newFixtureDataset(t)

	entries, err := Leaderboard(ds, domain.TableBatting, 1998, "home_runs", 5, domain.SortDescending)

	require.NoError(t, err)
	require.Len(t, entries, 5)
	// Gonzalez and Ramirez both hit 45
	assert.Equal(t, "J. Gonzalez", entries[3].Player)
	assert.Equal(t, "M. Ramirez", entries[4].Player)
	assert.Equal(t, entries[3].Value, entries[4].Value)
}

func TestLeaderboard_AscendingForERA(t *testing.T) {
	ds := newFixtureDataset(t)

	entries, err := Leaderboard(ds, domain.TablePitching, 1998, "era", 10, domain.SortAscending)

	require.NoError(t, err)
	require.Len(t, entries, 4)
	assert.Equal(t, "R. Clemens", entries[0].Player)
	assert.Equal(t, 2.65, entries[0].Value)
	assert.Equal(t, "D. Wells", entries[3].Player)
	assert.Equal(t, 3.49, entries[3].Value)
}

func TestLeaderboard_TeamsTableHasNoPlayer(t *testing.T) {
	ds := newFixtureDataset(t)

	entries, err := Leaderboard(ds, domain.TableTeams, 1998, "wins", 2, domain.SortDescending)

	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Empty(t, entries[0].Player)
	assert.Equal(t, "New York Yankees", entries[0].Team)
	assert.Equal(t, float64(114), entries[0].Value)
}

func TestLeaderboard_TopNLargerThanData(t *testing.T) {
	ds := newFixtureDataset(t)

	entries, err := Leaderboard(ds, domain.TablePitching, 1997, "strikeouts", 50, domain.SortDescending)

	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestLeaderboard_EmptyYearIsNotAnError(t *testing.T) {
	ds := newFixtureDataset(t)

	entries, err := Leaderboard(ds, domain.TableBatting, 1950, "home_runs", 10, domain.SortDescending)

	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestLeaderboard_InvalidInputs(t *testing.T) {
	ds := newFixtureDataset(t)

	tests := []struct {
		name    string
		table   domain.Table
		metric  string
		topN    int
		wantErr error
	}{
		{name: "unknown table", table: domain.Table("lineups"), metric: "wins", topN: 10, wantErr: apierrors.ErrUnknownTable},
		{name: "unknown metric", table: domain.TableBatting, metric: "dingers", topN: 10, wantErr: apierrors.ErrUnknownMetric},
		{name: "metric from another table", table: domain.TableTeams, metric: "era", topN: 10, wantErr: apierrors.ErrUnknownMetric},
		{name: "year is not a metric", table: domain.TableBatting, metric: "year", topN: 10, wantErr: apierrors.ErrUnknownMetric},
		{name: "zero limit", table: domain.TableBatting, metric: "home_runs", topN: 0, wantErr: apierrors.ErrInvalidLimit},
		{name: "negative limit", table: domain.TableBatting, metric: "home_runs", topN: -5, wantErr: apierrors.ErrInvalidLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Leaderboard(ds, tt.table, 1998, tt.metric, tt.topN, domain.SortDescending)

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
