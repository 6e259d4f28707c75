package scrape

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"almanac/internal/config"
	"almanac/internal/exporter"
	"almanac/pkg/contracts/domain"
)

// RawWriter appends scraped season tables to the per-table raw CSV
// files. Each file gets id and year columns prepended to the headers
// exactly as scraped; the id sequence is continuous across seasons for
// the lifetime of the writer, so one crawl produces one consistent
// numbering per table.
type RawWriter struct {
	paths  *config.Paths
	csv    *exporter.CSVWriter
	nextID map[domain.Table]int
	logger *slog.Logger
}

// NewRawWriter builds a writer rooted at the given paths. logger may be
// nil.
func NewRawWriter(paths *config.Paths, logger *slog.Logger) *RawWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &RawWriter{
		paths:  paths,
		csv:    exporter.NewCSVWriter(paths),
		nextID: make(map[domain.Table]int),
		logger: logger.With(slog.String("component", "raw_writer")),
	}
}

// Append writes one season's tables to their raw CSV files. Nil tables
// are skipped; a season page missing a table is not an error.
func (w *RawWriter) Append(data *YearData) error {
	for _, entry := range []struct {
		table domain.Table
		t     *Table
	}{
		{domain.TableBatting, data.Batting},
		{domain.TablePitching, data.Pitching},
		{domain.TableTeams, data.Standings},
	} {
		if entry.t == nil {
			w.logger.Warn("season page missing table",
				slog.Int("year", data.Year),
				slog.String("table", string(entry.table)))
			continue
		}
		if err := w.appendTable(entry.table, entry.t, data.Year); err != nil {
			return fmt.Errorf("writing raw %s for %d: %w", entry.table, data.Year, err)
		}
	}
	return nil
}

func (w *RawWriter) appendTable(table domain.Table, t *Table, year int) error {
	id := w.nextID[table]
	if id == 0 {
		id = 1
	}
	records := make([][]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		record := make([]string, 0, len(row)+2)
		record = append(record, strconv.Itoa(id), strconv.Itoa(year))
		record = append(record, row...)
		records = append(records, record)
		id++
	}

	path := w.paths.RawCSV(table)
	empty, err := fileEmpty(path)
	if err != nil {
		return err
	}

	// First write carries the header; later seasons only append rows.
	// No BOM: the cleaner reads these files back.
	if empty {
		err = w.csv.WriteCSV(path, exporter.WriteOptions{
			Headers: append([]string{"id", "year"}, t.Headers...),
			Records: records,
		})
	} else {
		err = w.csv.AppendToCSV(path, records)
	}
	if err != nil {
		return err
	}
	w.nextID[table] = id

	w.logger.Debug("appended raw rows",
		slog.String("table", string(table)),
		slog.Int("year", year),
		slog.Int("rows", len(t.Rows)),
		slog.String("path", path))
	return nil
}

// fileEmpty reports whether path is absent or zero length, which is
// when the CSV header still needs writing.
func fileEmpty(path string) (bool, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return info.Size() == 0, nil
}
