package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"almanac/pkg/contracts/domain"
)

// TestGetPaths tests the GetPaths function with various scenarios
func TestGetPaths(t *testing.T) {
	t.Run("basic path resolution", func(t *testing.T) {
		paths, err := GetPaths()
		require.NoError(t, err)
		require.NotNil(t, paths)

		// Verify all paths are absolute
		assert.True(t, filepath.IsAbs(paths.ExecutableDir), "ExecutableDir should be absolute")
		assert.True(t, filepath.IsAbs(paths.DataDir), "DataDir should be absolute")
		assert.True(t, filepath.IsAbs(paths.RawDir), "RawDir should be absolute")
		assert.True(t, filepath.IsAbs(paths.CleanDir), "CleanDir should be absolute")
		assert.True(t, filepath.IsAbs(paths.LogsDir), "LogsDir should be absolute")

		// Verify paths are correctly related to executable dir
		assert.Equal(t, filepath.Join(paths.ExecutableDir, "data"), paths.DataDir)
		assert.Equal(t, filepath.Join(paths.DataDir, "raw"), paths.RawDir)
		assert.Equal(t, filepath.Join(paths.DataDir, "clean"), paths.CleanDir)
		assert.Equal(t, filepath.Join(paths.ExecutableDir, "logs"), paths.LogsDir)
		assert.Equal(t, filepath.Join(paths.ExecutableDir, "web"), paths.WebDir)
	})

	t.Run("consistent calls return same paths", func(t *testing.T) {
		paths1, err1 := GetPaths()
		require.NoError(t, err1)

		paths2, err2 := GetPaths()
		require.NoError(t, err2)

		assert.Equal(t, paths1.ExecutableDir, paths2.ExecutableDir)
		assert.Equal(t, paths1.CleanDir, paths2.CleanDir)
		assert.Equal(t, paths1.CleanTeamsCSV, paths2.CleanTeamsCSV)
	})

	t.Run("well-known clean files live under clean dir", func(t *testing.T) {
		paths, err := GetPaths()
		require.NoError(t, err)

		assert.Equal(t, filepath.Join(paths.CleanDir, "teams.csv"), paths.CleanTeamsCSV)
		assert.Equal(t, filepath.Join(paths.CleanDir, "batting.csv"), paths.CleanBattingCSV)
		assert.Equal(t, filepath.Join(paths.CleanDir, "pitching.csv"), paths.CleanPitchingCSV)
		assert.Equal(t, filepath.Join(paths.CleanDir, "almanac.xlsx"), paths.WorkbookXLSX)
	})
}

// TestPathsAt tests explicit-root path construction
func TestPathsAt(t *testing.T) {
	root := t.TempDir()
	paths := PathsAt(root)

	assert.Equal(t, root, paths.ExecutableDir)
	assert.Equal(t, filepath.Join(root, "data", "raw"), paths.RawDir)
	assert.Equal(t, filepath.Join(root, "data", "clean"), paths.CleanDir)
	assert.Equal(t, filepath.Join(root, "data", "clean", "teams.csv"), paths.CleanTeamsCSV)
}

// TestPathOverrides tests the flag-driven directory overrides
func TestPathOverrides(t *testing.T) {
	base := PathsAt(t.TempDir())

	t.Run("WithRawDir", func(t *testing.T) {
		custom := filepath.Join(t.TempDir(), "scraped")
		paths := base.WithRawDir(custom)

		assert.Equal(t, custom, paths.RawDir)
		assert.Equal(t, filepath.Join(custom, "teams.csv"), paths.RawCSV(domain.TableTeams))
		// Cleaned artifacts stay where they were
		assert.Equal(t, base.CleanDir, paths.CleanDir)
		assert.Equal(t, base.CleanTeamsCSV, paths.CleanTeamsCSV)
		// The original is untouched
		assert.NotEqual(t, custom, base.RawDir)
	})

	t.Run("WithCleanDir", func(t *testing.T) {
		custom := filepath.Join(t.TempDir(), "out")
		paths := base.WithCleanDir(custom)

		assert.Equal(t, custom, paths.CleanDir)
		assert.Equal(t, filepath.Join(custom, "teams.csv"), paths.CleanTeamsCSV)
		assert.Equal(t, filepath.Join(custom, "batting.csv"), paths.CleanBattingCSV)
		assert.Equal(t, filepath.Join(custom, "pitching.csv"), paths.CleanPitchingCSV)
		assert.Equal(t, filepath.Join(custom, "almanac.xlsx"), paths.WorkbookXLSX)
		assert.Equal(t, base.RawDir, paths.RawDir)
	})
}

// TestEnsureDirectories tests directory creation
func TestEnsureDirectories(t *testing.T) {
	root := t.TempDir()
	paths := PathsAt(root)

	err := paths.EnsureDirectories()
	require.NoError(t, err)

	for _, dir := range []string{paths.DataDir, paths.RawDir, paths.CleanDir, paths.LogsDir} {
		info, statErr := os.Stat(dir)
		require.NoError(t, statErr, "directory %s should exist", dir)
		assert.True(t, info.IsDir())
	}

	// Second call is a no-op
	assert.NoError(t, paths.EnsureDirectories())
}

// TestTableFilePaths tests per-table raw and clean path helpers
func TestTableFilePaths(t *testing.T) {
	paths := PathsAt(t.TempDir())

	tests := []struct {
		table     domain.Table
		wantRaw   string
		wantClean string
	}{
		{domain.TableTeams, "teams.csv", "teams.csv"},
		{domain.TableBatting, "batting.csv", "batting.csv"},
		{domain.TablePitching, "pitching.csv", "pitching.csv"},
	}

	for _, tt := range tests {
		t.Run(string(tt.table), func(t *testing.T) {
			assert.Equal(t, filepath.Join(paths.RawDir, tt.wantRaw), paths.RawCSV(tt.table))
			assert.Equal(t, filepath.Join(paths.CleanDir, tt.wantClean), paths.CleanCSV(tt.table))
		})
	}
}

// TestValidateCleanData tests cleaned-dataset presence checks
func TestValidateCleanData(t *testing.T) {
	t.Run("all files missing", func(t *testing.T) {
		paths := PathsAt(t.TempDir())

		err := paths.ValidateCleanData()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cleaned data missing")
		assert.Contains(t, err.Error(), "teams")
		assert.Contains(t, err.Error(), "batting")
		assert.Contains(t, err.Error(), "pitching")
	})

	t.Run("partial dataset still fails", func(t *testing.T) {
		paths := PathsAt(t.TempDir())
		require.NoError(t, paths.EnsureDirectories())
		require.NoError(t, os.WriteFile(paths.CleanTeamsCSV, []byte("year,team\n"), 0644))

		err := paths.ValidateCleanData()
		require.Error(t, err)
		assert.NotContains(t, err.Error(), "teams (")
		assert.Contains(t, err.Error(), "batting")
	})

	t.Run("complete dataset passes", func(t *testing.T) {
		paths := PathsAt(t.TempDir())
		require.NoError(t, paths.EnsureDirectories())
		for _, f := range []string{paths.CleanTeamsCSV, paths.CleanBattingCSV, paths.CleanPitchingCSV} {
			require.NoError(t, os.WriteFile(f, []byte("header\n"), 0644))
		}

		assert.NoError(t, paths.ValidateCleanData())
	})
}

// TestFileExists tests the file existence helper
func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "present.csv")
	require.NoError(t, os.WriteFile(existing, []byte("x"), 0644))

	assert.True(t, FileExists(existing))
	assert.False(t, FileExists(filepath.Join(dir, "absent.csv")))
}
