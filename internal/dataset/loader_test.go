package dataset

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "almanac/internal/errors"
	"almanac/internal/shared/testutil"
)

func TestLoader_Load(t *testing.T) {
	fixtures := testutil.NewSeasonFixtures(t.TempDir())
	require.NoError(t, fixtures.WriteCleanFiles())

	loader := NewLoader(slog.Default())
	ds, err := loader.Load(context.Background(), fixtures.CleanDir())

	require.NoError(t, err)
	assert.Len(t, ds.Teams(), 12)
	assert.Len(t, ds.Batting(), 10)
	assert.Len(t, ds.Pitching(), 6)
	assert.False(t, ds.Empty())
	assert.Equal(t, fixtures.CleanDir(), ds.Dir())
	assert.False(t, ds.LoadedAt().IsZero())
}

func TestLoader_Load_TypedRows(t *testing.T) {
	fixtures := testutil.NewSeasonFixtures(t.TempDir())
	require.NoError(t, fixtures.WriteCleanFiles())

	loader := NewLoader(slog.Default())
	ds, err := loader.Load(context.Background(), fixtures.CleanDir())
	require.NoError(t, err)

	assert.Equal(t, fixtures.TeamSeasons1998(), ds.TeamsForYear(1998))
	assert.Equal(t, fixtures.BattingSeason1998McGwire(), ds.Batting()[0])

	clemens := ds.PitchingForYear(1997)[0]
	assert.Equal(t, "R. Clemens", clemens.Player)
	assert.Equal(t, 2.05, clemens.ERA)
	assert.Equal(t, 264.0, clemens.InningsPitched)
}

func TestLoader_Load_YearRange(t *testing.T) {
	fixtures := testutil.NewSeasonFixtures(t.TempDir())
	require.NoError(t, fixtures.WriteCleanFiles())

	loader := NewLoader(slog.Default())
	ds, err := loader.Load(context.Background(), fixtures.CleanDir())
	require.NoError(t, err)

	// Batting reaches back to 1996 even though standings start in 1997
	min, max := ds.YearRange()
	assert.Equal(t, 1996, min)
	assert.Equal(t, 1998, max)
	assert.Equal(t, []int{1997, 1998}, ds.Years())
}

func TestLoader_Load_MissingFile(t *testing.T) {
	fixtures := testutil.NewSeasonFixtures(t.TempDir())
	require.NoError(t, fixtures.WriteCleanFiles())
	require.NoError(t, os.Remove(filepath.Join(fixtures.CleanDir(), "pitching.csv")))

	loader := NewLoader(slog.Default())
	_, err := loader.Load(context.Background(), fixtures.CleanDir())

	require.Error(t, err)
	assert.ErrorIs(t, err, apierrors.ErrDatasetMissing)
}

func TestLoader_Load_MissingDirectory(t *testing.T) {
	loader := NewLoader(slog.Default())
	_, err := loader.Load(context.Background(), filepath.Join(t.TempDir(), "nowhere"))

	require.Error(t, err)
	assert.ErrorIs(t, err, apierrors.ErrDatasetMissing)
}

func TestLoader_Load_CorruptedFiles(t *testing.T) {
	tests := []struct {
		name       string
		corruption string
	}{
		{name: "empty file", corruption: "empty"},
		{name: "wrong header", corruption: "wrong_header"},
		{name: "ragged row", corruption: "ragged_row"},
		{name: "binary data", corruption: "binary_data"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fixtures := testutil.NewSeasonFixtures(t.TempDir())
			require.NoError(t, fixtures.WriteCleanFiles())
			require.NoError(t, fixtures.CreateCorruptedCSV(
				filepath.Join(fixtures.CleanDir(), "teams.csv"), tt.corruption))

			loader := NewLoader(slog.Default())
			_, err := loader.Load(context.Background(), fixtures.CleanDir())

			require.Error(t, err)
			var appErr *apierrors.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, apierrors.ErrTypeParsing, appErr.Type)
		})
	}
}

func TestLoader_Load_HeaderOnlyFile(t *testing.T) {
	fixtures := testutil.NewSeasonFixtures(t.TempDir())
	require.NoError(t, fixtures.WriteCleanFiles())
	require.NoError(t, fixtures.CreateCorruptedCSV(
		filepath.Join(fixtures.CleanDir(), "teams.csv"), "header_only"))

	loader := NewLoader(slog.Default())
	ds, err := loader.Load(context.Background(), fixtures.CleanDir())

	// A valid header with no rows loads, but the dataset reports empty
	require.NoError(t, err)
	assert.True(t, ds.Empty())
	assert.Empty(t, ds.Years())
	assert.Len(t, ds.Batting(), 10)
}

func TestLoader_Load_MalformedNumeric(t *testing.T) {
	fixtures := testutil.NewSeasonFixtures(t.TempDir())
	require.NoError(t, fixtures.WriteCleanFiles())

	bad := "year,team,division,wins,losses,win_percentage,games_behind\n" +
		"1998,New York Yankees,East,ninety,48,0.704,0\n"
	require.NoError(t, os.WriteFile(filepath.Join(fixtures.CleanDir(), "teams.csv"), []byte(bad), 0644))

	loader := NewLoader(slog.Default())
	_, err := loader.Load(context.Background(), fixtures.CleanDir())

	require.Error(t, err)
	var appErr *apierrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apierrors.ErrTypeParsing, appErr.Type)
	assert.Contains(t, appErr.Message, "line 2")
}

func TestLoader_Load_InvalidRowValues(t *testing.T) {
	fixtures := testutil.NewSeasonFixtures(t.TempDir())
	require.NoError(t, fixtures.WriteCleanFiles())

	// Parses fine but fails domain validation: negative wins
	bad := "year,team,division,wins,losses,win_percentage,games_behind\n" +
		"1998,New York Yankees,East,-3,48,0.704,0\n"
	require.NoError(t, os.WriteFile(filepath.Join(fixtures.CleanDir(), "teams.csv"), []byte(bad), 0644))

	loader := NewLoader(slog.Default())
	_, err := loader.Load(context.Background(), fixtures.CleanDir())

	require.Error(t, err)
	var appErr *apierrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apierrors.ErrTypeValidation, appErr.Type)
}

func TestLoader_Load_LogsSummary(t *testing.T) {
	logger, handler := testutil.NewTestLogger(t)
	fixtures := testutil.NewSeasonFixtures(t.TempDir())
	require.NoError(t, fixtures.WriteCleanFiles())

	loader := NewLoader(logger)
	_, err := loader.Load(context.Background(), fixtures.CleanDir())
	require.NoError(t, err)

	assert.True(t, handler.ContainsMessage("dataset loaded"))
	assert.True(t, handler.ContainsAttr("teams", int64(12)))
	assert.True(t, handler.ContainsAttr("min_year", int64(1996)))
}

func TestNewLoader_NilLogger(t *testing.T) {
	loader := NewLoader(nil)
	assert.NotNil(t, loader.logger)
	assert.NotNil(t, loader.validate)
}
