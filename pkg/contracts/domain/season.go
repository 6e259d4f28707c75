package domain

// TeamSeason represents one team's record for one season
type TeamSeason struct {
	Year          int     `json:"year" validate:"required,min=1871"`
	Team          string  `json:"team" validate:"required"`
	Division      string  `json:"division,omitempty"`
	Wins          int     `json:"wins" validate:"min=0"`
	Losses        int     `json:"losses" validate:"min=0"`
	WinPercentage float64 `json:"win_percentage" validate:"min=0,max=1"`
	GamesBehind   float64 `json:"games_behind" validate:"min=0"`
}

// BattingSeason represents one player's batting line for one season.
// A player traded mid-season has one row per team.
type BattingSeason struct {
	Year           int     `json:"year" validate:"required,min=1871"`
	Player         string  `json:"player" validate:"required"`
	Team           string  `json:"team" validate:"required"`
	Games          int     `json:"games" validate:"min=0"`
	AtBats         int     `json:"at_bats" validate:"min=0"`
	Runs           int     `json:"runs" validate:"min=0"`
	Hits           int     `json:"hits" validate:"min=0"`
	HomeRuns       int     `json:"home_runs" validate:"min=0"`
	RBI            int     `json:"rbi" validate:"min=0"`
	StolenBases    int     `json:"stolen_bases" validate:"min=0"`
	BattingAverage float64 `json:"batting_average" validate:"min=0"`
}

// PitchingSeason represents one player's pitching line for one season
type PitchingSeason struct {
	Year           int     `json:"year" validate:"required,min=1871"`
	Player         string  `json:"player" validate:"required"`
	Team           string  `json:"team" validate:"required"`
	Games          int     `json:"games" validate:"min=0"`
	Wins           int     `json:"wins" validate:"min=0"`
	Losses         int     `json:"losses" validate:"min=0"`
	InningsPitched float64 `json:"innings_pitched" validate:"min=0"`
	Strikeouts     int     `json:"strikeouts" validate:"min=0"`
	Walks          int     `json:"walks" validate:"min=0"`
	Saves          int     `json:"saves" validate:"min=0"`
	ERA            float64 `json:"era" validate:"min=0"`
}

// Table identifies one of the cleaned datasets
type Table string

const (
	TableTeams    Table = "teams"
	TableBatting  Table = "batting"
	TablePitching Table = "pitching"
)

// Valid reports whether t names a known table
func (t Table) Valid() bool {
	switch t {
	case TableTeams, TableBatting, TablePitching:
		return true
	}
	return false
}
