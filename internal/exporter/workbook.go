package exporter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/xuri/excelize/v2"

	"almanac/internal/config"
	"almanac/internal/dataprocessing"
)

// WorkbookExporter writes the cleaned dataset as a single Excel
// workbook, one sheet per table. The workbook is a convenience copy for
// spreadsheet users; the CSVs stay the canonical cleaned artifacts.
type WorkbookExporter struct {
	paths  *config.Paths
	logger *slog.Logger
}

// NewWorkbookExporter creates a workbook exporter. logger may be nil.
func NewWorkbookExporter(paths *config.Paths, logger *slog.Logger) *WorkbookExporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &WorkbookExporter{
		paths:  paths,
		logger: logger.With(slog.String("component", "workbook_exporter")),
	}
}

// Export writes the cleaned tables to the well-known workbook path and
// returns it. Numeric cells are written as numbers so the sheets sort
// and chart without retyping; each table's schema says which columns
// those are.
func (e *WorkbookExporter) Export(tables []*dataprocessing.CleanTable) (string, error) {
	if len(tables) == 0 {
		return "", fmt.Errorf("no cleaned tables to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	for i, table := range tables {
		sheet := string(table.Table)
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
				return "", fmt.Errorf("failed to name sheet %s: %w", sheet, err)
			}
		} else {
			if _, err := f.NewSheet(sheet); err != nil {
				return "", fmt.Errorf("failed to add sheet %s: %w", sheet, err)
			}
		}

		if err := e.writeSheet(f, sheet, table); err != nil {
			return "", err
		}
	}

	path := e.paths.WorkbookXLSX
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("failed to save workbook: %w", err)
	}

	e.logger.Info("exported workbook",
		slog.String("path", path),
		slog.Int("sheets", len(tables)))
	return path, nil
}

func (e *WorkbookExporter) writeSheet(f *excelize.File, sheet string, table *dataprocessing.CleanTable) error {
	schema, err := dataprocessing.SchemaFor(table.Table)
	if err != nil {
		return err
	}

	header := make([]interface{}, len(table.Header))
	for i, name := range table.Header {
		header[i] = name
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write %s header: %w", sheet, err)
	}

	for rowIdx, row := range table.Rows {
		cell, err := excelize.CoordinatesToCellName(1, rowIdx+2)
		if err != nil {
			return err
		}
		cells := typedCells(schema, row)
		if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, rowIdx+1, err)
		}
	}
	return nil
}

// typedCells converts a cleaned row's string cells into the values the
// schema declares. Cells that fail to parse stay strings; the cleaner
// already rejected anything malformed, so that only happens for string
// columns.
func typedCells(schema dataprocessing.Schema, row []string) []interface{} {
	cells := make([]interface{}, len(row))
	for i, value := range row {
		if i >= len(schema.Columns) {
			cells[i] = value
			continue
		}
		switch schema.Columns[i].Kind {
		case dataprocessing.KindInt:
			if n, err := strconv.Atoi(value); err == nil {
				cells[i] = n
				continue
			}
		case dataprocessing.KindFloat:
			if v, err := strconv.ParseFloat(value, 64); err == nil {
				cells[i] = v
				continue
			}
		}
		cells[i] = value
	}
	return cells
}
