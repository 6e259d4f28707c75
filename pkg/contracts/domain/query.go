package domain

// LeaderboardEntry represents one ranked row of a leaderboard query
type LeaderboardEntry struct {
	Rank   int     `json:"rank"`
	Player string  `json:"player,omitempty"`
	Team   string  `json:"team"`
	Value  float64 `json:"value"`
}

// TrendPoint represents one season's value in a trend series.
// Years in which the entity has no row are omitted from the series,
// never zero-filled.
type TrendPoint struct {
	Year  int     `json:"year"`
	Value float64 `json:"value"`
}

// TrendMode selects how much history a trend query returns
type TrendMode string

const (
	// TrendModeAll returns every season the entity appears in
	TrendModeAll TrendMode = "all"
	// TrendModeWindow returns seasons within five years of a selected
	// year, clipped to the dataset's year range
	TrendModeWindow TrendMode = "window"
)

// Valid reports whether m names a known trend mode
func (m TrendMode) Valid() bool {
	return m == TrendModeAll || m == TrendModeWindow
}

// SortOrder represents the direction of a ranked query
type SortOrder string

const (
	SortDescending SortOrder = "desc"
	SortAscending  SortOrder = "asc"
)

// TableMeta describes one cleaned table for API consumers
type TableMeta struct {
	Name    Table    `json:"name"`
	Rows    int      `json:"rows"`
	MinYear int      `json:"min_year"`
	MaxYear int      `json:"max_year"`
	Metrics []string `json:"metrics"`
}
