package exporter

import (
	"fmt"
	"log/slog"

	"almanac/internal/config"
	"almanac/internal/dataprocessing"
)

// CleanExporter writes cleaned tables to their canonical CSV files,
// the ones the dashboard loads at startup.
type CleanExporter struct {
	csvWriter *CSVWriter
	paths     *config.Paths
}

// NewCleanExporter creates a cleaned-data exporter rooted at paths
func NewCleanExporter(paths *config.Paths) *CleanExporter {
	return &CleanExporter{
		csvWriter: NewCSVWriter(paths),
		paths:     paths,
	}
}

// ExportTable writes one cleaned table to its well-known path and
// returns that path. The file is replaced wholesale; cleaned CSVs are
// rebuilt, never appended to. No BOM is written because the dataset
// loader and a re-run of the cleaner both read these files back.
func (e *CleanExporter) ExportTable(table *dataprocessing.CleanTable) (string, error) {
	if table == nil {
		return "", fmt.Errorf("nil cleaned table")
	}

	path := e.paths.CleanCSV(table.Table)
	err := e.csvWriter.WriteCSV(path, WriteOptions{
		Headers: table.Header,
		Records: table.Rows,
	})
	if err != nil {
		return "", fmt.Errorf("failed to export cleaned %s: %w", table.Table, err)
	}

	slog.Info("Exported cleaned table",
		slog.String("table", string(table.Table)),
		slog.String("path", path),
		slog.Int("rows", len(table.Rows)))
	return path, nil
}

// ExportAll writes every cleaned table and returns the written paths
// in input order
func (e *CleanExporter) ExportAll(tables []*dataprocessing.CleanTable) ([]string, error) {
	paths := make([]string, 0, len(tables))
	for _, table := range tables {
		path, err := e.ExportTable(table)
		if err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}
