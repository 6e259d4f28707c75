// Package dataprocessing turns scraped season tables into the canonical
// cleaned CSVs the rest of the application reads.
//
// # Architecture
//
// The package is organized around three pieces:
//
// 1. Schema: the fixed shape of each table (teams, batting, pitching).
// A schema holds the canonical column names in order, the raw header
// spellings that map to them, and each column's type and criticality
//
// 2. Cleaner: resolves raw headers against a schema, coerces every cell,
// drops rows that cannot be repaired and deduplicates the rest
//
// 3. Report: the per-table account of what cleaning did, consumed by the
// cleaner CLI for its summary line and by the metrics layer for the
// clean_rows_* counters
//
// # Cleaning Rules
//
// Cells equal to "", "-", "--", "n/a", "na", "null" or "none" after
// trimming are null. A null critical cell drops the row; a null
// non-critical cell becomes the column's zero value. Numeric cells are
// normalized before parsing (thousands separators and stray quotes
// removed, "½" becomes ".5"); a non-null numeric cell that still does
// not parse drops the row. Exact duplicate rows and rows repeating an
// already-seen key keep the first occurrence. Cleaning is idempotent:
// canonical names are aliases of themselves, so running the cleaner
// over its own output changes nothing.
//
// # Usage
//
// Cleaning one file:
//
//	cleaner := dataprocessing.NewCleaner(logger)
//	table, report, err := cleaner.CleanFile(ctx, dataprocessing.BattingSchema, "raw/batting.csv")
//	if err != nil {
//	    return err
//	}
//	logger.Info("cleaned", "summary", report.Summary())
//
// # Data Flow
//
// The typical data flow through this package:
//
//	Raw CSV → ReadRawCSV → RawTable → Clean → CleanTable + Report → exporter
//
// # Error Handling
//
// File and parse failures return *errors.AppError with ErrTypeStorage or
// ErrTypeParsing. A raw header missing a critical column is a parsing
// error: silently producing an empty table would hide a broken scrape.
// Per-row problems never error; they are counted in the Report.
//
// # Testing
//
// Tests run the cleaner over the shared season fixtures and compare the
// output against the expected cleaned CSVs, so every rule above is
// pinned by at least one fixture row.
package dataprocessing
