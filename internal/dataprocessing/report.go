package dataprocessing

import (
	"fmt"
	"log/slog"
	"strings"

	"almanac/pkg/contracts/domain"
)

// Drop reasons as reported by Clean and exported to metrics.
const (
	DropMissingCritical = "missing_critical"
	DropBadNumeric      = "bad_numeric"
	DropDuplicate       = "duplicate"
	DropKeyConflict     = "key_conflict"
)

// Report records what cleaning one table did: row counts in and out,
// per-reason drop counts, raw headers that mapped to no canonical
// column, and non-fatal coercion warnings.
type Report struct {
	Table           domain.Table `json:"table"`
	RowsIn          int          `json:"rows_in"`
	RowsOut         int          `json:"rows_out"`
	MissingCritical int          `json:"missing_critical"`
	BadNumeric      int          `json:"bad_numeric"`
	Duplicates      int          `json:"duplicates"`
	KeyConflicts    int          `json:"key_conflicts"`
	UnmappedColumns []string     `json:"unmapped_columns,omitempty"`
	Warnings        []string     `json:"warnings,omitempty"`
}

// Dropped returns the total number of rows removed
func (r *Report) Dropped() int {
	return r.MissingCritical + r.BadNumeric + r.Duplicates + r.KeyConflicts
}

// DroppedByReason returns drop counts keyed by reason, only for
// reasons that occurred. The keys feed the clean_rows_dropped_total
// metric labels.
func (r *Report) DroppedByReason() map[string]int {
	reasons := make(map[string]int, 4)
	if r.MissingCritical > 0 {
		reasons[DropMissingCritical] = r.MissingCritical
	}
	if r.BadNumeric > 0 {
		reasons[DropBadNumeric] = r.BadNumeric
	}
	if r.Duplicates > 0 {
		reasons[DropDuplicate] = r.Duplicates
	}
	if r.KeyConflicts > 0 {
		reasons[DropKeyConflict] = r.KeyConflicts
	}
	return reasons
}

// Summary returns a one-line human-readable account for CLI output
func (r *Report) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %d rows in, %d rows out", r.Table, r.RowsIn, r.RowsOut)
	if r.Dropped() > 0 {
		fmt.Fprintf(&b, " (dropped %d: %d missing critical, %d bad numeric, %d duplicate, %d key conflict)",
			r.Dropped(), r.MissingCritical, r.BadNumeric, r.Duplicates, r.KeyConflicts)
	}
	return b.String()
}

// LogAttrs returns the report as slog attributes
func (r *Report) LogAttrs() []any {
	return []any{
		slog.String("table", string(r.Table)),
		slog.Int("rows_in", r.RowsIn),
		slog.Int("rows_out", r.RowsOut),
		slog.Int("missing_critical", r.MissingCritical),
		slog.Int("bad_numeric", r.BadNumeric),
		slog.Int("duplicates", r.Duplicates),
		slog.Int("key_conflicts", r.KeyConflicts),
	}
}
