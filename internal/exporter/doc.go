// Package exporter writes the pipeline's file artifacts: raw and
// cleaned CSVs, and the optional Excel workbook.
//
// This package contains three main components:
//
// CSVWriter: Core CSV writing with header, append and UTF-8 BOM
// support, shared by the scraper's raw output and the cleaner's
// cleaned output.
//
// CleanExporter: Writes cleaned tables to their well-known per-table
// paths, replacing the files wholesale so cleaning stays idempotent.
//
// WorkbookExporter: Renders the cleaned dataset as one Excel workbook
// with a sheet per table and typed numeric cells.
//
// Example usage:
//
//	cleanExporter := exporter.NewCleanExporter(paths)
//	path, err := cleanExporter.ExportTable(cleaned)
//
//	workbook := exporter.NewWorkbookExporter(paths, logger)
//	path, err = workbook.Export(tables)
package exporter
