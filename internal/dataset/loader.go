package dataset

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/errgroup"

	"almanac/internal/dataprocessing"
	apierrors "almanac/internal/errors"
	"almanac/internal/infrastructure"
	"almanac/pkg/contracts/domain"
)

// Loader reads cleaned CSVs into a Dataset
type Loader struct {
	logger   *slog.Logger
	validate *validator.Validate
}

// NewLoader creates a loader. A nil logger falls back to the default.
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		logger:   infrastructure.WithComponent(logger, "dataset"),
		validate: validator.New(),
	}
}

// Load reads teams.csv, batting.csv and pitching.csv from dir. The
// three files load concurrently; the first failure aborts the load.
func (l *Loader) Load(ctx context.Context, dir string) (*Dataset, error) {
	start := time.Now()

	ds := &Dataset{dir: dir}
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		ds.teams, err = l.loadTeams(ctx, filepath.Join(dir, "teams.csv"))
		return err
	})
	g.Go(func() error {
		var err error
		ds.batting, err = l.loadBatting(ctx, filepath.Join(dir, "batting.csv"))
		return err
	})
	g.Go(func() error {
		var err error
		ds.pitching, err = l.loadPitching(ctx, filepath.Join(dir, "pitching.csv"))
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	ds.minYear, ds.maxYear = yearRange(ds)
	ds.loadedAt = time.Now()

	l.logger.InfoContext(ctx, "dataset loaded",
		slog.String("dir", dir),
		slog.Int("teams", len(ds.teams)),
		slog.Int("batting", len(ds.batting)),
		slog.Int("pitching", len(ds.pitching)),
		slog.Int("min_year", ds.minYear),
		slog.Int("max_year", ds.maxYear),
		slog.Duration("duration", time.Since(start)))
	return ds, nil
}

func (l *Loader) loadTeams(ctx context.Context, path string) ([]domain.TeamSeason, error) {
	rows, err := readCleanCSV(path, dataprocessing.TeamsSchema.Header())
	if err != nil {
		return nil, err
	}

	seasons := make([]domain.TeamSeason, 0, len(rows))
	for i, row := range rows {
		season, err := parseTeamRow(row)
		if err != nil {
			return nil, rowError(path, i, err)
		}
		if err := l.validate.Struct(season); err != nil {
			return nil, rowInvalid(path, i, err)
		}
		seasons = append(seasons, season)
	}
	return seasons, nil
}

func (l *Loader) loadBatting(ctx context.Context, path string) ([]domain.BattingSeason, error) {
	rows, err := readCleanCSV(path, dataprocessing.BattingSchema.Header())
	if err != nil {
		return nil, err
	}

	seasons := make([]domain.BattingSeason, 0, len(rows))
	for i, row := range rows {
		season, err := parseBattingRow(row)
		if err != nil {
			return nil, rowError(path, i, err)
		}
		if err := l.validate.Struct(season); err != nil {
			return nil, rowInvalid(path, i, err)
		}
		seasons = append(seasons, season)
	}
	return seasons, nil
}

func (l *Loader) loadPitching(ctx context.Context, path string) ([]domain.PitchingSeason, error) {
	rows, err := readCleanCSV(path, dataprocessing.PitchingSchema.Header())
	if err != nil {
		return nil, err
	}

	seasons := make([]domain.PitchingSeason, 0, len(rows))
	for i, row := range rows {
		season, err := parsePitchingRow(row)
		if err != nil {
			return nil, rowError(path, i, err)
		}
		if err := l.validate.Struct(season); err != nil {
			return nil, rowInvalid(path, i, err)
		}
		seasons = append(seasons, season)
	}
	return seasons, nil
}

// readCleanCSV reads a cleaned file and verifies its header matches the
// canonical column order exactly. Cleaned files are machine-written, so
// any deviation means the file is not a cleaner output.
func readCleanCSV(path string, wantHeader []string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", apierrors.ErrDatasetMissing, path)
		}
		return nil, apierrors.NewStorageError(fmt.Sprintf("open cleaned file %s", path), err)
	}
	defer f.Close()

	reader := csv.NewReader(f)

	header, err := reader.Read()
	if err == io.EOF {
		return nil, apierrors.NewParsingError(fmt.Sprintf("cleaned file %s is empty", path), nil)
	}
	if err != nil {
		return nil, apierrors.NewParsingError(fmt.Sprintf("read header of %s", path), err)
	}
	if !slices.Equal(header, wantHeader) {
		return nil, apierrors.NewParsingError(
			fmt.Sprintf("file %s: header %v does not match canonical columns %v", path, header, wantHeader), nil)
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
	return rows, nil
}

func parseTeamRow(row []string) (domain.TeamSeason, error) {
	var season domain.TeamSeason
	var err error

	if season.Year, err = parseIntColumn("year", row[0]); err != nil {
		return season, err
	}
	season.Team = row[1]
	season.Division = row[2]
	if season.Wins, err = parseIntColumn("wins", row[3]); err != nil {
		return season, err
	}
	if season.Losses, err = parseIntColumn("losses", row[4]); err != nil {
		return season, err
	}
	if season.WinPercentage, err = parseFloatColumn("win_percentage", row[5]); err != nil {
		return season, err
	}
	if season.GamesBehind, err = parseFloatColumn("games_behind", row[6]); err != nil {
		return season, err
	}
	return season, nil
}

func parseBattingRow(row []string) (domain.BattingSeason, error) {
	var season domain.BattingSeason
	var err error

	if season.Year, err = parseIntColumn("year", row[0]); err != nil {
		return season, err
	}
	season.Player = row[1]
	season.Team = row[2]
	if season.Games, err = parseIntColumn("games", row[3]); err != nil {
		return season, err
	}
	if season.AtBats, err = parseIntColumn("at_bats", row[4]); err != nil {
		return season, err
	}
	if season.Runs, err = parseIntColumn("runs", row[5]); err != nil {
		return season, err
	}
	if season.Hits, err = parseIntColumn("hits", row[6]); err != nil {
		return season, err
	}
	if season.HomeRuns, err = parseIntColumn("home_runs", row[7]); err != nil {
		return season, err
	}
	if season.RBI, err = parseIntColumn("rbi", row[8]); err != nil {
		return season, err
	}
	if season.StolenBases, err = parseIntColumn("stolen_bases", row[9]); err != nil {
		return season, err
	}
	if season.BattingAverage, err = parseFloatColumn("batting_average", row[10]); err != nil {
		return season, err
	}
	return season, nil
}

func parsePitchingRow(row []string) (domain.PitchingSeason, error) {
	var season domain.PitchingSeason
	var err error

	if season.Year, err = parseIntColumn("year", row[0]); err != nil {
		return season, err
	}
	season.Player = row[1]
	season.Team = row[2]
	if season.Games, err = parseIntColumn("games", row[3]); err != nil {
		return season, err
	}
	if season.Wins, err = parseIntColumn("wins", row[4]); err != nil {
		return season, err
	}
	if season.Losses, err = parseIntColumn("losses", row[5]); err != nil {
		return season, err
	}
	if season.InningsPitched, err = parseFloatColumn("innings_pitched", row[6]); err != nil {
		return season, err
	}
	if season.Strikeouts, err = parseIntColumn("strikeouts", row[7]); err != nil {
		return season, err
	}
	if season.Walks, err = parseIntColumn("walks", row[8]); err != nil {
		return season, err
	}
	if season.Saves, err = parseIntColumn("saves", row[9]); err != nil {
		return season, err
	}
	if season.ERA, err = parseFloatColumn("era", row[10]); err != nil {
		return season, err
	}
	return season, nil
}

func parseIntColumn(column, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("column %s: %q is not an integer", column, value)
	}
	return n, nil
}

func parseFloatColumn(column, value string) (float64, error) {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("column %s: %q is not a number", column, value)
	}
	return f, nil
}

func rowError(path string, rowIdx int, err error) error {
	// rowIdx is zero-based over data rows; +2 accounts for the header
	// line and one-based file numbering
	return apierrors.NewParsingError(fmt.Sprintf("%s line %d", path, rowIdx+2), err)
}

func rowInvalid(path string, rowIdx int, err error) error {
	return apierrors.NewAppValidationError(fmt.Sprintf("%s line %d: %v", path, rowIdx+2, err))
}

func yearRange(ds *Dataset) (min, max int) {
	consider := func(year int) {
		if min == 0 || year < min {
			min = year
		}
		if year > max {
			max = year
		}
	}
	for _, row := range ds.teams {
		consider(row.Year)
	}
	for _, row := range ds.batting {
		consider(row.Year)
	}
	for _, row := range ds.pitching {
		consider(row.Year)
	}
	return min, max
}
