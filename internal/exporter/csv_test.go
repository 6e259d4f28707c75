package exporter

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"almanac/internal/config"
)

func readRecords(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return records
}

func TestCSVWriter_WriteCSV(t *testing.T) {
	paths := config.PathsAt(t.TempDir())
	w := NewCSVWriter(paths)

	target := filepath.Join(t.TempDir(), "out.csv")
	err := w.WriteCSV(target, WriteOptions{
		Headers: []string{"year", "team", "wins"},
		Records: [][]string{
			{"1998", "New York Yankees", "114"},
			{"1998", "Boston Red Sox", "92"},
		},
	})
	require.NoError(t, err)

	records := readRecords(t, target)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"year", "team", "wins"}, records[0])
	assert.Equal(t, []string{"1998", "Boston Red Sox", "92"}, records[2])
}

func TestCSVWriter_WriteCSVTruncatesExisting(t *testing.T) {
	paths := config.PathsAt(t.TempDir())
	w := NewCSVWriter(paths)
	target := filepath.Join(t.TempDir(), "out.csv")

	opts := WriteOptions{
		Headers: []string{"year", "wins"},
		Records: [][]string{{"1998", "114"}},
	}
	require.NoError(t, w.WriteCSV(target, opts))

	opts.Records = [][]string{{"1997", "96"}}
	require.NoError(t, w.WriteCSV(target, opts))

	records := readRecords(t, target)
	require.Len(t, records, 2, "rewrite must replace, not append")
	assert.Equal(t, []string{"1997", "96"}, records[1])
}

func TestCSVWriter_AppendToCSV(t *testing.T) {
	paths := config.PathsAt(t.TempDir())
	w := NewCSVWriter(paths)
	target := filepath.Join(t.TempDir(), "out.csv")

	require.NoError(t, w.WriteCSV(target, WriteOptions{
		Headers: []string{"year", "wins"},
		Records: [][]string{{"1998", "114"}},
	}))
	require.NoError(t, w.AppendToCSV(target, [][]string{{"1997", "96"}}))

	records := readRecords(t, target)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"year", "wins"}, records[0], "append must not repeat the header")
	assert.Equal(t, []string{"1997", "96"}, records[2])
}

func TestCSVWriter_WriteSimpleCSVAddsBOM(t *testing.T) {
	paths := config.PathsAt(t.TempDir())
	w := NewCSVWriter(paths)
	target := filepath.Join(t.TempDir(), "excel.csv")

	require.NoError(t, w.WriteSimpleCSV(target, []string{"team"}, [][]string{{"Seattle Mariners"}}))

	raw, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xEF, 0xBB, 0xBF}, raw[:3], "Excel-facing files carry a UTF-8 BOM")
}

func TestCSVWriter_CreatesMissingDirectories(t *testing.T) {
	paths := config.PathsAt(t.TempDir())
	w := NewCSVWriter(paths)

	target := filepath.Join(t.TempDir(), "nested", "deeper", "out.csv")
	err := w.WriteCSV(target, WriteOptions{
		Headers: []string{"year"},
		Records: [][]string{{"1998"}},
	})
	require.NoError(t, err)
	assert.FileExists(t, target)
}

func TestCSVWriter_ResolvePath(t *testing.T) {
	root := t.TempDir()
	paths := config.PathsAt(root)
	w := NewCSVWriter(paths)

	abs := filepath.Join(root, "explicit.csv")

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "absolute passes through",
			input:    abs,
			expected: abs,
		},
		{
			name:     "raw prefix lands in the raw directory",
			input:    "raw/batting.csv",
			expected: filepath.Join(paths.RawDir, "batting.csv"),
		},
		{
			name:     "bare name is a cleaned artifact",
			input:    "teams.csv",
			expected: filepath.Join(paths.CleanDir, "teams.csv"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, w.resolvePath(tt.input))
		})
	}
}

func TestCSVWriter_QuotedCells(t *testing.T) {
	paths := config.PathsAt(t.TempDir())
	w := NewCSVWriter(paths)
	target := filepath.Join(t.TempDir(), "out.csv")

	require.NoError(t, w.WriteCSV(target, WriteOptions{
		Headers: []string{"player", "team"},
		Records: [][]string{{`Griffey, Ken "Junior"`, "SEA"}},
	}))

	records := readRecords(t, target)
	require.Len(t, records, 2)
	assert.Equal(t, `Griffey, Ken "Junior"`, records[1][0],
		"commas and quotes must survive a write/read round trip")
}
