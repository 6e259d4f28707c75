package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"almanac/pkg/contracts/domain"
)

// Paths contains all the application paths.
// This is the single source of truth for ALL file paths in the application.
type Paths struct {
	ExecutableDir string
	DataDir       string
	RawDir        string
	CleanDir      string
	LogsDir       string
	WebDir        string

	// Well-known cleaned data files
	CleanTeamsCSV    string
	CleanBattingCSV  string
	CleanPitchingCSV string
	WorkbookXLSX     string
}

// GetPaths returns the application paths relative to the executable location.
// All paths are ALWAYS relative to the executable directory, never the
// current working directory, so binaries behave the same from any shell.
func GetPaths() (*Paths, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("failed to get executable path: %v", err)
	}

	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve executable symlinks: %v", err)
	}

	exeDir := filepath.Dir(exe)

	// Directory structure:
	// <exe dir>/
	//   ├── data/
	//   │   ├── raw/     (scraped or hand-supplied CSV inputs)
	//   │   └── clean/   (cleaner outputs, dashboard inputs)
	//   ├── logs/
	//   └── web/
	dataDir := filepath.Join(exeDir, "data")
	rawDir := filepath.Join(dataDir, "raw")
	cleanDir := filepath.Join(dataDir, "clean")

	paths := &Paths{
		ExecutableDir: exeDir,
		DataDir:       dataDir,
		RawDir:        rawDir,
		CleanDir:      cleanDir,
		LogsDir:       filepath.Join(exeDir, "logs"),
		WebDir:        filepath.Join(exeDir, "web"),

		CleanTeamsCSV:    filepath.Join(cleanDir, "teams.csv"),
		CleanBattingCSV:  filepath.Join(cleanDir, "batting.csv"),
		CleanPitchingCSV: filepath.Join(cleanDir, "pitching.csv"),
		WorkbookXLSX:     filepath.Join(cleanDir, "almanac.xlsx"),
	}

	return paths, nil
}

// PathsAt returns Paths rooted at an explicit directory instead of the
// executable location. The cleaner and scraper use it for -in/-out flags,
// and tests use it with t.TempDir().
func PathsAt(root string) *Paths {
	dataDir := filepath.Join(root, "data")
	rawDir := filepath.Join(dataDir, "raw")
	cleanDir := filepath.Join(dataDir, "clean")

	return &Paths{
		ExecutableDir: root,
		DataDir:       dataDir,
		RawDir:        rawDir,
		CleanDir:      cleanDir,
		LogsDir:       filepath.Join(root, "logs"),
		WebDir:        filepath.Join(root, "web"),

		CleanTeamsCSV:    filepath.Join(cleanDir, "teams.csv"),
		CleanBattingCSV:  filepath.Join(cleanDir, "batting.csv"),
		CleanPitchingCSV: filepath.Join(cleanDir, "pitching.csv"),
		WorkbookXLSX:     filepath.Join(cleanDir, "almanac.xlsx"),
	}
}

// WithRawDir returns a copy of p reading and writing raw CSVs in dir.
// The scraper's -out flag and the cleaner's -in flag resolve through it.
func (p *Paths) WithRawDir(dir string) *Paths {
	q := *p
	q.RawDir = dir
	return &q
}

// WithCleanDir returns a copy of p with every cleaned artifact rooted in
// dir. The cleaner's -out flag resolves through it.
func (p *Paths) WithCleanDir(dir string) *Paths {
	q := *p
	q.CleanDir = dir
	q.CleanTeamsCSV = filepath.Join(dir, "teams.csv")
	q.CleanBattingCSV = filepath.Join(dir, "batting.csv")
	q.CleanPitchingCSV = filepath.Join(dir, "pitching.csv")
	q.WorkbookXLSX = filepath.Join(dir, "almanac.xlsx")
	return &q
}

// EnsureDirectories creates all required directories if they don't exist
func (p *Paths) EnsureDirectories() error {
	directories := []string{
		p.DataDir,
		p.RawDir,
		p.CleanDir,
		p.LogsDir,
	}

	logger := slog.Default()

	for _, dir := range directories {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %v", dir, err)
		}

		if logger != nil {
			logger.Debug("Ensured directory exists",
				slog.String("directory", dir))
		}
	}

	return nil
}

// RawCSV returns the raw input file path for a table
func (p *Paths) RawCSV(table domain.Table) string {
	return filepath.Join(p.RawDir, string(table)+".csv")
}

// CleanCSV returns the cleaned output file path for a table
func (p *Paths) CleanCSV(table domain.Table) string {
	return filepath.Join(p.CleanDir, string(table)+".csv")
}

// GetLogPath returns the path for a log file
func (p *Paths) GetLogPath(filename string) string {
	return filepath.Join(p.LogsDir, filename)
}

// FileExists checks if a file exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// ValidateCleanData checks that every cleaned table file exists.
// The dashboard refuses to start without a complete cleaned dataset.
func (p *Paths) ValidateCleanData() error {
	required := map[string]string{
		"teams":    p.CleanTeamsCSV,
		"batting":  p.CleanBattingCSV,
		"pitching": p.CleanPitchingCSV,
	}

	var missing []string
	for name, path := range required {
		if !FileExists(path) {
			missing = append(missing, fmt.Sprintf("%s (%s)", name, path))
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("cleaned data missing, run the cleaner first: %s", strings.Join(missing, ", "))
	}

	return nil
}

// LogPathResolution logs detailed path resolution information for debugging
func (p *Paths) LogPathResolution() {
	logger := slog.Default()
	if logger == nil {
		return
	}

	logger.Info("Path resolution summary",
		slog.Group("directories",
			slog.String("executable", p.ExecutableDir),
			slog.String("data", p.DataDir),
			slog.String("raw", p.RawDir),
			slog.String("clean", p.CleanDir),
			slog.String("logs", p.LogsDir),
			slog.String("web", p.WebDir),
		),
		slog.Group("clean_files",
			slog.String("teams", p.CleanTeamsCSV),
			slog.String("batting", p.CleanBattingCSV),
			slog.String("pitching", p.CleanPitchingCSV),
			slog.String("workbook", p.WorkbookXLSX),
		))
}
