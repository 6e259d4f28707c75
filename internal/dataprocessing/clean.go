package dataprocessing

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	apierrors "almanac/internal/errors"
	"almanac/internal/infrastructure"
	"almanac/pkg/contracts/domain"
)

// nullMarkers are the cell values treated as absent, compared after
// trimming and case folding
var nullMarkers = map[string]bool{
	"":     true,
	"-":    true,
	"--":   true,
	"n/a":  true,
	"na":   true,
	"null": true,
	"none": true,
}

// RawTable is a parsed but uncleaned CSV: the header row as scraped
// plus every data row, possibly ragged.
type RawTable struct {
	Header []string
	Rows   [][]string
}

// CleanTable is the cleaned output: canonical header order and rows
// whose cells are already coerced and reformatted for writing.
type CleanTable struct {
	Table  domain.Table
	Header []string
	Rows   [][]string
}

// Cleaner normalizes raw season tables into their canonical shape
type Cleaner struct {
	logger *slog.Logger
}

// NewCleaner creates a cleaner. A nil logger falls back to the default.
func NewCleaner(logger *slog.Logger) *Cleaner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cleaner{
		logger: infrastructure.WithComponent(logger, "cleaner"),
	}
}

// ReadRawCSV parses a raw CSV file into a RawTable. Rows may have
// fewer or more fields than the header; Clean pads and truncates.
func ReadRawCSV(path string) (*RawTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apierrors.NewStorageError(fmt.Sprintf("open raw file %s", path), err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, apierrors.NewParsingError(fmt.Sprintf("raw file %s is empty", path), nil)
	}
	if err != nil {
		return nil, apierrors.NewParsingError(fmt.Sprintf("read header of %s", path), err)
	}
	// Files saved from Excel arrive with a UTF-8 BOM glued to the
	// first header cell.
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\uFEFF")
	}

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, apierrors.NewParsingError(fmt.Sprintf("read rows of %s", path), err)
		}
		rows = append(rows, record)
	}
	return &RawTable{Header: header, Rows: rows}, nil
}

// Clean coerces a raw table into its canonical shape and reports what
// was dropped. Rows are removed when a critical cell is null or a
// numeric cell holds a non-null value that does not parse; exact
// duplicates and rows whose key was already seen are removed keeping
// the first occurrence. Cleaning a cleaned table returns it unchanged.
func (c *Cleaner) Clean(ctx context.Context, schema Schema, raw *RawTable) (*CleanTable, *Report, error) {
	report := &Report{Table: schema.Table, RowsIn: len(raw.Rows)}

	positions, err := resolveColumns(schema, raw.Header, report)
	if err != nil {
		return nil, nil, err
	}

	clean := &CleanTable{
		Table:  schema.Table,
		Header: schema.Header(),
	}
	seenRows := make(map[string]bool, len(raw.Rows))
	seenKeys := make(map[string]bool, len(raw.Rows))

	for _, row := range raw.Rows {
		values, reason := coerceRow(schema, positions, row)
		switch reason {
		case DropMissingCritical:
			report.MissingCritical++
			continue
		case DropBadNumeric:
			report.BadNumeric++
			continue
		}

		rowSig := strings.Join(values, "\x1f")
		if seenRows[rowSig] {
			report.Duplicates++
			continue
		}
		keySig := keySignature(schema, values)
		if seenKeys[keySig] {
			report.KeyConflicts++
			continue
		}
		seenRows[rowSig] = true
		seenKeys[keySig] = true
		clean.Rows = append(clean.Rows, values)
	}

	report.RowsOut = len(clean.Rows)
	c.logger.InfoContext(ctx, "table cleaned", report.LogAttrs()...)
	return clean, report, nil
}

// CleanFile reads, cleans and returns one raw CSV file
func (c *Cleaner) CleanFile(ctx context.Context, schema Schema, path string) (*CleanTable, *Report, error) {
	raw, err := ReadRawCSV(path)
	if err != nil {
		return nil, nil, err
	}
	c.logger.DebugContext(ctx, "raw table read",
		slog.String("table", string(schema.Table)),
		slog.String("path", path),
		slog.Int("rows", len(raw.Rows)))
	return c.Clean(ctx, schema, raw)
}

// resolveColumns maps each schema column to its position in the raw
// header. Unrecognized raw headers are recorded and dropped; a raw
// header resolving to an already-mapped column keeps the first
// occurrence. Every critical column must be present.
func resolveColumns(schema Schema, header []string, report *Report) (map[int]int, error) {
	aliases := schema.aliasIndex()
	positions := make(map[int]int, len(schema.Columns))

	for rawIdx, rawName := range header {
		colIdx, ok := aliases[normalizeHeader(rawName)]
		if !ok {
			report.UnmappedColumns = append(report.UnmappedColumns, strings.TrimSpace(rawName))
			continue
		}
		if _, taken := positions[colIdx]; taken {
			report.Warnings = append(report.Warnings,
				fmt.Sprintf("duplicate header %q ignored", strings.TrimSpace(rawName)))
			continue
		}
		positions[colIdx] = rawIdx
	}

	var missingCritical []string
	for i, col := range schema.Columns {
		if _, ok := positions[i]; ok {
			continue
		}
		if col.Critical {
			missingCritical = append(missingCritical, col.Name)
		} else {
			report.Warnings = append(report.Warnings,
				fmt.Sprintf("column %q not found, filling with zero values", col.Name))
		}
	}
	if len(missingCritical) > 0 {
		return nil, apierrors.NewParsingError(
			fmt.Sprintf("table %s: required columns missing from header: %s",
				schema.Table, strings.Join(missingCritical, ", ")), nil)
	}
	return positions, nil
}

// coerceRow converts one raw row into canonical order and typed string
// form. It returns a non-empty drop reason when the row must go.
func coerceRow(schema Schema, positions map[int]int, row []string) ([]string, string) {
	values := make([]string, len(schema.Columns))

	for i, col := range schema.Columns {
		raw := ""
		if pos, ok := positions[i]; ok && pos < len(row) {
			raw = row[pos]
		}
		trimmed := strings.TrimSpace(raw)
		isNull := nullMarkers[strings.ToLower(trimmed)]

		if isNull {
			if col.Critical {
				return nil, DropMissingCritical
			}
			values[i] = zeroValue(col.Kind)
			continue
		}

		switch col.Kind {
		case KindInt:
			n, err := parseInt(trimmed)
			if err != nil {
				return nil, DropBadNumeric
			}
			values[i] = strconv.Itoa(n)
		case KindFloat:
			f, err := parseFloat(trimmed)
			if err != nil {
				return nil, DropBadNumeric
			}
			values[i] = strconv.FormatFloat(f, 'f', -1, 64)
		default:
			values[i] = trimmed
		}
	}
	return values, ""
}

// keySignature joins a row's key cells for conflict detection
func keySignature(schema Schema, values []string) string {
	parts := make([]string, 0, len(schema.Key))
	for i, col := range schema.Columns {
		for _, key := range schema.Key {
			if col.Name == key {
				parts = append(parts, values[i])
			}
		}
	}
	return strings.Join(parts, "\x1f")
}

// zeroValue is the cleaned form of a null non-critical cell
func zeroValue(kind Kind) string {
	switch kind {
	case KindInt, KindFloat:
		return "0"
	default:
		return ""
	}
}

// normalizeNumber strips formatting the source pages use: thousands
// separators, stray quotes and the half-game fraction in GB columns.
func normalizeNumber(value string) string {
	value = strings.ReplaceAll(value, ",", "")
	value = strings.ReplaceAll(value, `"`, "")
	value = strings.ReplaceAll(value, "½", ".5")
	return strings.TrimSpace(value)
}

// parseInt parses a normalized integer cell. Values with a fractional
// part of zero, like "42.0", are accepted.
func parseInt(value string) (int, error) {
	normalized := normalizeNumber(value)
	if n, err := strconv.Atoi(normalized); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(normalized, 64)
	if err != nil {
		return 0, fmt.Errorf("not an integer: %q", value)
	}
	if f != float64(int(f)) {
		return 0, fmt.Errorf("not an integer: %q", value)
	}
	return int(f), nil
}

// parseFloat parses a normalized numeric cell
func parseFloat(value string) (float64, error) {
	f, err := strconv.ParseFloat(normalizeNumber(value), 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", value)
	}
	return f, nil
}
