package dataprocessing

import (
	"fmt"
	"strings"

	"almanac/pkg/contracts/domain"
)

// Kind is the declared type of a cleaned column
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindFloat
)

// String returns the kind name for logs and reports
func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	default:
		return "string"
	}
}

// ColumnSpec describes one canonical column: its cleaned name, the raw
// header spellings that resolve to it, its type and whether a missing or
// unparseable value drops the whole row.
type ColumnSpec struct {
	Name     string
	Aliases  []string
	Kind     Kind
	Critical bool
}

// Schema describes one table's cleaned shape. Key names the columns
// that identify a row for conflict detection.
type Schema struct {
	Table   domain.Table
	Columns []ColumnSpec
	Key     []string
}

// TeamsSchema is the cleaned shape of the season standings table
var TeamsSchema = Schema{
	Table: domain.TableTeams,
	Columns: []ColumnSpec{
		{Name: "year", Aliases: []string{"Year"}, Kind: KindInt, Critical: true},
		{Name: "team", Aliases: []string{"Team | Roster", "Team", "Tm"}, Kind: KindString, Critical: true},
		{Name: "division", Aliases: []string{"Division", "Div"}, Kind: KindString},
		{Name: "wins", Aliases: []string{"W"}, Kind: KindInt, Critical: true},
		{Name: "losses", Aliases: []string{"L"}, Kind: KindInt, Critical: true},
		{Name: "win_percentage", Aliases: []string{"WP", "PCT"}, Kind: KindFloat},
		{Name: "games_behind", Aliases: []string{"GB"}, Kind: KindFloat},
	},
	Key: []string{"year", "team"},
}

// BattingSchema is the cleaned shape of the batting season table
var BattingSchema = Schema{
	Table: domain.TableBatting,
	Columns: []ColumnSpec{
		{Name: "year", Aliases: []string{"Year"}, Kind: KindInt, Critical: true},
		{Name: "player", Aliases: []string{"Name(s)", "Player", "Name"}, Kind: KindString, Critical: true},
		{Name: "team", Aliases: []string{"Team(s)", "Team", "Tm"}, Kind: KindString, Critical: true},
		{Name: "games", Aliases: []string{"G"}, Kind: KindInt},
		{Name: "at_bats", Aliases: []string{"AB"}, Kind: KindInt},
		{Name: "runs", Aliases: []string{"R"}, Kind: KindInt},
		{Name: "hits", Aliases: []string{"H"}, Kind: KindInt},
		{Name: "home_runs", Aliases: []string{"HR"}, Kind: KindInt, Critical: true},
		{Name: "rbi", Aliases: []string{"RBI"}, Kind: KindInt},
		{Name: "stolen_bases", Aliases: []string{"SB"}, Kind: KindInt},
		{Name: "batting_average", Aliases: []string{"AVG", "BA"}, Kind: KindFloat},
	},
	Key: []string{"year", "player", "team"},
}

// PitchingSchema is the cleaned shape of the pitching season table
var PitchingSchema = Schema{
	Table: domain.TablePitching,
	Columns: []ColumnSpec{
		{Name: "year", Aliases: []string{"Year"}, Kind: KindInt, Critical: true},
		{Name: "player", Aliases: []string{"Name(s)", "Player", "Name"}, Kind: KindString, Critical: true},
		{Name: "team", Aliases: []string{"Team(s)", "Team", "Tm"}, Kind: KindString, Critical: true},
		{Name: "games", Aliases: []string{"G"}, Kind: KindInt},
		{Name: "wins", Aliases: []string{"W"}, Kind: KindInt},
		{Name: "losses", Aliases: []string{"L"}, Kind: KindInt},
		{Name: "innings_pitched", Aliases: []string{"IP"}, Kind: KindFloat},
		{Name: "strikeouts", Aliases: []string{"SO", "K"}, Kind: KindInt},
		{Name: "walks", Aliases: []string{"BB"}, Kind: KindInt},
		{Name: "saves", Aliases: []string{"SV"}, Kind: KindInt},
		{Name: "era", Aliases: []string{"ERA"}, Kind: KindFloat, Critical: true},
	},
	Key: []string{"year", "player", "team"},
}

// SchemaFor returns the schema for a table name
func SchemaFor(table domain.Table) (Schema, error) {
	switch table {
	case domain.TableTeams:
		return TeamsSchema, nil
	case domain.TableBatting:
		return BattingSchema, nil
	case domain.TablePitching:
		return PitchingSchema, nil
	}
	return Schema{}, fmt.Errorf("no schema for table %q", table)
}

// Schemas returns all table schemas in canonical order
func Schemas() []Schema {
	return []Schema{TeamsSchema, BattingSchema, PitchingSchema}
}

// Header returns the canonical column names in declaration order
func (s Schema) Header() []string {
	header := make([]string, len(s.Columns))
	for i, col := range s.Columns {
		header[i] = col.Name
	}
	return header
}

// CriticalColumns returns the names of columns whose absence drops a row
func (s Schema) CriticalColumns() []string {
	var critical []string
	for _, col := range s.Columns {
		if col.Critical {
			critical = append(critical, col.Name)
		}
	}
	return critical
}

// NumericColumns returns the query-able metric names: every int or
// float column except the year itself
func (s Schema) NumericColumns() []string {
	var numeric []string
	for _, col := range s.Columns {
		if col.Name == "year" {
			continue
		}
		if col.Kind == KindInt || col.Kind == KindFloat {
			numeric = append(numeric, col.Name)
		}
	}
	return numeric
}

// Column returns the ColumnSpec for a canonical column name
func (s Schema) Column(name string) (ColumnSpec, bool) {
	for _, col := range s.Columns {
		if col.Name == name {
			return col, true
		}
	}
	return ColumnSpec{}, false
}

// aliasIndex builds a lookup from normalized raw header to column
// position in the schema. Canonical names are aliases of themselves,
// which is what makes cleaning already-clean files the identity.
func (s Schema) aliasIndex() map[string]int {
	index := make(map[string]int, len(s.Columns)*2)
	for i, col := range s.Columns {
		index[normalizeHeader(col.Name)] = i
		for _, alias := range col.Aliases {
			index[normalizeHeader(alias)] = i
		}
	}
	return index
}

// normalizeHeader folds a raw header for alias lookup
func normalizeHeader(header string) string {
	return strings.ToLower(strings.TrimSpace(header))
}
