package exporter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"almanac/internal/config"
	"almanac/internal/dataprocessing"
	"almanac/internal/shared/testutil"
)

func TestWorkbookExporter_Export(t *testing.T) {
	paths := config.PathsAt(t.TempDir())
	logger, _ := testutil.NewTestLogger(t)
	e := NewWorkbookExporter(paths, logger)

	path, err := e.Export([]*dataprocessing.CleanTable{cleanedTeams(), cleanedBatting()})
	require.NoError(t, err)
	assert.Equal(t, paths.WorkbookXLSX, path)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"teams", "batting"}, f.GetSheetList())

	rows, err := f.GetRows("teams")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, dataprocessing.TeamsSchema.Header(), rows[0])
	assert.Equal(t, []string{"1998", "New York Yankees", "East", "114", "48", "0.704", "0"}, rows[1])

	// Numeric columns must land as numbers, not text.
	textType, err := f.GetCellType("teams", "B2")
	require.NoError(t, err)
	assert.Equal(t, excelize.CellTypeSharedString, textType)
	winsType, err := f.GetCellType("teams", "D2")
	require.NoError(t, err)
	assert.NotEqual(t, excelize.CellTypeSharedString, winsType,
		"wins must not be stored as text")

	rows, err = f.GetRows("batting")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "M. McGwire", rows[1][1])
	assert.Equal(t, "70", rows[1][7])
}

func TestWorkbookExporter_NoTables(t *testing.T) {
	e := NewWorkbookExporter(config.PathsAt(t.TempDir()), nil)
	_, err := e.Export(nil)
	assert.Error(t, err)
}
