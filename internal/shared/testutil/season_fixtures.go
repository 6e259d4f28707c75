package testutil

import (
	"fmt"
	"os"
	"path/filepath"

	"almanac/pkg/contracts/domain"
)

// SeasonFixtures provides raw and cleaned CSV test data for the
// cleaner, dataset and stats packages.
type SeasonFixtures struct {
	TestDataDir string
}

// NewSeasonFixtures creates a new fixtures manager rooted at testDataDir
func NewSeasonFixtures(testDataDir string) *SeasonFixtures {
	return &SeasonFixtures{
		TestDataDir: testDataDir,
	}
}

// RawTeamsCSV returns standings data as the scraper writes it: an id
// column, scraped header spellings, a "½" games-behind, null markers,
// one row with a blank critical cell, one unparseable critical cell and
// one exact duplicate.
func (f *SeasonFixtures) RawTeamsCSV() string {
	return `id,Year,Team | Roster,W,L,WP,GB,Division
1,1998,New York Yankees,114,48,.704,-,East
2,1998,Boston Red Sox,92,70,.568,22,East
3,1998,Toronto Blue Jays,88,74,.543,26,East
4,1998,Baltimore Orioles,79,83,.488,35,East
5,1998,Cleveland Indians,89,73,.549,-,Central
6,1998,Chicago White Sox,80,82,.494,9,Central
7,1998,Texas Rangers,88,74,.543,-,West
8,1998,Anaheim Angels,85,77,.525,3,West
9,1997,Baltimore Orioles,98,64,.605,-,East
10,1997,New York Yankees,96,66,.593,2,East
11,1997,Boston Red Sox,78,84,.481,19½,East
12,1997,Toronto Blue Jays,76,86,.469,22,n/a
13,1997,Milwaukee Brewers,,82,.484,--,Central
14,1997,Oops Club,abc,90,.400,44,Central
6,1998,Chicago White Sox,80,82,.494,9,Central
`
}

// RawBattingCSV returns batting data as scraped. Includes the 1998
// M. McGwire 70 home run line, a mid-season trade (two rows for one
// player-year), null-marked non-critical cells, a blank critical cell
// and an unparseable non-critical numeric.
func (f *SeasonFixtures) RawBattingCSV() string {
	return `id,Year,Name(s),Team(s),G,AB,R,H,HR,RBI,SB,AVG
1,1998,M. McGwire,STL,155,509,130,152,70,147,1,.299
2,1998,K. Griffey Jr.,SEA,161,633,120,180,56,146,20,.284
3,1998,A. Belle,CHW,163,609,113,200,49,152,6,.328
4,1998,J. Gonzalez,TEX,154,606,110,193,45,157,2,.318
5,1998,M. Ramirez,CLE,150,571,108,168,45,145,5,.294
6,1997,K. Griffey Jr.,SEA,157,608,125,185,56,147,15,.304
7,1997,T. Martinez,NYY,158,594,96,176,44,141,3,.296
8,1996,K. Griffey Jr.,SEA,140,545,125,165,49,140,16,.303
9,1998,R. Ledee,NYY,42,79,13,19,,12,3,.241
10,1998,M. Easler,OAK,87,"1,234",41,77,12,40,abc,.280
11,1997,J. Journeyman,SEA,60,210,25,55,8,30,-,.262
12,1997,J. Journeyman,BOS,40,150,18,40,6,22,n/a,.267
`
}

// RawPitchingCSV returns pitching data as scraped. Includes a
// null-marked critical cell (era) and a duplicate key with differing
// values.
func (f *SeasonFixtures) RawPitchingCSV() string {
	return `id,Year,Name(s),Team(s),G,W,L,IP,SO,BB,SV,ERA
1,1998,R. Clemens,TOR,33,20,6,234.2,271,88,0,2.65
2,1998,P. Martinez,BOS,33,19,7,233.2,251,67,0,2.89
3,1998,D. Wells,NYY,30,18,4,214.1,163,29,0,3.49
4,1998,T. Gordon,BOS,73,7,4,79.1,78,25,46,2.72
5,1997,R. Clemens,TOR,34,21,7,264.0,292,68,0,2.05
6,1997,R. Johnson,SEA,30,20,4,213.0,291,77,0,2.28
7,1998,B. Blownsave,DET,50,2,8,61.0,40,30,3,null
8,1997,R. Clemens,TOR,34,21,7,264.0,292,68,0,2.06
`
}

// CleanTeamsCSV returns the canonical-header standings file the cleaner
// produces from RawTeamsCSV
func (f *SeasonFixtures) CleanTeamsCSV() string {
	return `year,team,division,wins,losses,win_percentage,games_behind
1998,New York Yankees,East,114,48,0.704,0
1998,Boston Red Sox,East,92,70,0.568,22
1998,Toronto Blue Jays,East,88,74,0.543,26
1998,Baltimore Orioles,East,79,83,0.488,35
1998,Cleveland Indians,Central,89,73,0.549,0
1998,Chicago White Sox,Central,80,82,0.494,9
1998,Texas Rangers,West,88,74,0.543,0
1998,Anaheim Angels,West,85,77,0.525,3
1997,Baltimore Orioles,East,98,64,0.605,0
1997,New York Yankees,East,96,66,0.593,2
1997,Boston Red Sox,East,78,84,0.481,19.5
1997,Toronto Blue Jays,,76,86,0.469,22
`
}

// CleanBattingCSV returns the canonical-header batting file the cleaner
// produces from RawBattingCSV
func (f *SeasonFixtures) CleanBattingCSV() string {
	return `year,player,team,games,at_bats,runs,hits,home_runs,rbi,stolen_bases,batting_average
1998,M. McGwire,STL,155,509,130,152,70,147,1,0.299
1998,K. Griffey Jr.,SEA,161,633,120,180,56,146,20,0.284
1998,A. Belle,CHW,163,609,113,200,49,152,6,0.328
1998,J. Gonzalez,TEX,154,606,110,193,45,157,2,0.318
1998,M. Ramirez,CLE,150,571,108,168,45,145,5,0.294
1997,K. Griffey Jr.,SEA,157,608,125,185,56,147,15,0.304
1997,T. Martinez,NYY,158,594,96,176,44,141,3,0.296
1996,K. Griffey Jr.,SEA,140,545,125,165,49,140,16,0.303
1997,J. Journeyman,SEA,60,210,25,55,8,30,0,0.262
1997,J. Journeyman,BOS,40,150,18,40,6,22,0,0.267
`
}

// CleanPitchingCSV returns the canonical-header pitching file the
// cleaner produces from RawPitchingCSV
func (f *SeasonFixtures) CleanPitchingCSV() string {
	return `year,player,team,games,wins,losses,innings_pitched,strikeouts,walks,saves,era
1998,R. Clemens,TOR,33,20,6,234.2,271,88,0,2.65
1998,P. Martinez,BOS,33,19,7,233.2,251,67,0,2.89
1998,D. Wells,NYY,30,18,4,214.1,163,29,0,3.49
1998,T. Gordon,BOS,73,7,4,79.1,78,25,46,2.72
1997,R. Clemens,TOR,34,21,7,264,292,68,0,2.05
1997,R. Johnson,SEA,30,20,4,213,291,77,0,2.28
`
}

// TeamSeasons1998 returns the typed 1998 standings rows in cleaned-file
// order, for asserting against loaded datasets
func (f *SeasonFixtures) TeamSeasons1998() []domain.TeamSeason {
	return []domain.TeamSeason{
		{Year: 1998, Team: "New York Yankees", Division: "East", Wins: 114, Losses: 48, WinPercentage: 0.704, GamesBehind: 0},
		{Year: 1998, Team: "Boston Red Sox", Division: "East", Wins: 92, Losses: 70, WinPercentage: 0.568, GamesBehind: 22},
		{Year: 1998, Team: "Toronto Blue Jays", Division: "East", Wins: 88, Losses: 74, WinPercentage: 0.543, GamesBehind: 26},
		{Year: 1998, Team: "Baltimore Orioles", Division: "East", Wins: 79, Losses: 83, WinPercentage: 0.488, GamesBehind: 35},
		{Year: 1998, Team: "Cleveland Indians", Division: "Central", Wins: 89, Losses: 73, WinPercentage: 0.549, GamesBehind: 0},
		{Year: 1998, Team: "Chicago White Sox", Division: "Central", Wins: 80, Losses: 82, WinPercentage: 0.494, GamesBehind: 9},
		{Year: 1998, Team: "Texas Rangers", Division: "West", Wins: 88, Losses: 74, WinPercentage: 0.543, GamesBehind: 0},
		{Year: 1998, Team: "Anaheim Angels", Division: "West", Wins: 85, Losses: 77, WinPercentage: 0.525, GamesBehind: 3},
	}
}

// BattingSeason1998McGwire returns the headline home run row
func (f *SeasonFixtures) BattingSeason1998McGwire() domain.BattingSeason {
	return domain.BattingSeason{
		Year: 1998, Player: "M. McGwire", Team: "STL",
		Games: 155, AtBats: 509, Runs: 130, Hits: 152,
		HomeRuns: 70, RBI: 147, StolenBases: 1, BattingAverage: 0.299,
	}
}

// RawDir returns the directory raw fixture files are written to
func (f *SeasonFixtures) RawDir() string {
	return filepath.Join(f.TestDataDir, "raw")
}

// CleanDir returns the directory cleaned fixture files are written to
func (f *SeasonFixtures) CleanDir() string {
	return filepath.Join(f.TestDataDir, "clean")
}

// WriteRawFiles writes teams.csv, batting.csv and pitching.csv in
// scraped form under RawDir
func (f *SeasonFixtures) WriteRawFiles() error {
	files := map[string]string{
		"teams.csv":    f.RawTeamsCSV(),
		"batting.csv":  f.RawBattingCSV(),
		"pitching.csv": f.RawPitchingCSV(),
	}
	return f.writeFiles(f.RawDir(), files)
}

// WriteCleanFiles writes the three cleaned CSVs under CleanDir
func (f *SeasonFixtures) WriteCleanFiles() error {
	files := map[string]string{
		"teams.csv":    f.CleanTeamsCSV(),
		"batting.csv":  f.CleanBattingCSV(),
		"pitching.csv": f.CleanPitchingCSV(),
	}
	return f.writeFiles(f.CleanDir(), files)
}

func (f *SeasonFixtures) writeFiles(dir string, files map[string]string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
	}
	return nil
}

// CreateCorruptedCSV creates various malformed CSV files for loader
// error-path testing
func (f *SeasonFixtures) CreateCorruptedCSV(path, corruptionType string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	var data []byte

	switch corruptionType {
	case "empty":
		data = []byte{}
	case "header_only":
		data = []byte("year,team,division,wins,losses,win_percentage,games_behind\n")
	case "wrong_header":
		data = []byte("season,club,w,l\n1998,New York Yankees,114,48\n")
	case "ragged_row":
		data = []byte("year,team,division,wins,losses,win_percentage,games_behind\n1998,New York Yankees,East,114\n")
	case "binary_data":
		data = make([]byte, 256)
		for i := range data {
			data[i] = byte(i)
		}
	default:
		return fmt.Errorf("unknown corruption type: %s", corruptionType)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write corrupted file: %w", err)
	}
	return nil
}

// CleanupTestData removes all test data files
func (f *SeasonFixtures) CleanupTestData() error {
	return os.RemoveAll(f.TestDataDir)
}
