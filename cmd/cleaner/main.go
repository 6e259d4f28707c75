package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"almanac/internal/config"
	"almanac/internal/dataprocessing"
	"almanac/internal/exporter"
	"almanac/internal/infrastructure"
	"almanac/pkg/contracts/domain"
)

func main() {
	inDir := flag.String("in", "", "directory holding raw CSV files (defaults to data/raw relative to the executable)")
	outDir := flag.String("out", "", "directory for cleaned CSV files (defaults to data/clean relative to the executable)")
	tableFlag := flag.String("table", "all", "table to clean: all | teams | batting | pitching")
	excel := flag.Bool("excel", false, "also write the cleaned dataset as an Excel workbook")
	flag.Parse()

	_ = godotenv.Load(".env")

	tables, err := selectTables(*tableFlag)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	paths, err := config.GetPaths()
	if err != nil {
		fmt.Printf("Error: failed to initialize paths: %v\n", err)
		os.Exit(1)
	}
	if *inDir != "" {
		paths = paths.WithRawDir(*inDir)
	}
	if *outDir != "" {
		paths = paths.WithCleanDir(*outDir)
	}
	if err := paths.EnsureDirectories(); err != nil {
		fmt.Printf("Error: failed to create required directories: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("Failed to load config, using defaults", "error", err)
		cfg = config.Default()
		cfg.Logging.FilePath = paths.GetLogPath("cleaner.log")
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}

	logger.Info("Cleaner starting",
		slog.String("input_dir", paths.RawDir),
		slog.String("output_dir", paths.CleanDir),
		slog.String("table", *tableFlag),
		slog.Bool("excel", *excel))

	// Every requested raw file must exist before any cleaning starts, so
	// a typo in -in never produces a partial cleaned dataset.
	for _, table := range tables {
		if !config.FileExists(paths.RawCSV(table)) {
			logger.Error("Raw input file missing",
				slog.String("table", string(table)),
				slog.String("path", paths.RawCSV(table)))
			fmt.Printf("Error: raw input file missing for %s: %s\n", table, paths.RawCSV(table))
			os.Exit(1)
		}
	}

	metrics := initMetrics(logger)
	cleaner := dataprocessing.NewCleaner(logger)
	cleanExporter := exporter.NewCleanExporter(paths)
	ctx := context.Background()

	cleaned := make([]*dataprocessing.CleanTable, 0, len(tables))
	for i, table := range tables {
		schema, err := dataprocessing.SchemaFor(table)
		if err != nil {
			logger.Error("Unknown table schema", slog.String("table", string(table)), slog.String("error", err.Error()))
			os.Exit(1)
		}

		fmt.Printf("Cleaning table %d of %d: %s\n", i+1, len(tables), table)

		cleanTable, report, err := cleaner.CleanFile(ctx, schema, paths.RawCSV(table))
		if err != nil {
			logger.Error("Cleaning failed",
				slog.String("table", string(table)),
				slog.String("error", err.Error()))
			fmt.Printf("Error: cleaning %s failed: %v\n", table, err)
			os.Exit(1)
		}

		infrastructure.RecordCleaningMetrics(ctx, metrics, string(table),
			report.RowsIn, report.RowsOut, report.DroppedByReason())

		path, err := cleanExporter.ExportTable(cleanTable)
		if err != nil {
			logger.Error("Export failed",
				slog.String("table", string(table)),
				slog.String("error", err.Error()))
			fmt.Printf("Error: writing cleaned %s failed: %v\n", table, err)
			os.Exit(1)
		}

		logger.Info("Cleaned table written", append(report.LogAttrs(), slog.String("path", path))...)
		fmt.Println(report.Summary())
		cleaned = append(cleaned, cleanTable)
	}

	if *excel {
		workbook := exporter.NewWorkbookExporter(paths, logger)
		path, err := workbook.Export(cleaned)
		if err != nil {
			logger.Error("Workbook export failed", slog.String("error", err.Error()))
			fmt.Printf("Error: workbook export failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Workbook written: %s\n", path)
	}

	logger.Info("Cleaning complete", slog.Int("tables", len(cleaned)))
	fmt.Printf("Cleaning complete: %d tables\n", len(cleaned))
}

// initMetrics wires the dropped-row counters. Metric failures downgrade
// to a warning so a broken exporter never blocks cleaning.
func initMetrics(logger *slog.Logger) *infrastructure.BusinessMetrics {
	otelCfg := infrastructure.DefaultOTelConfig()
	otelCfg.ServiceName = "almanac-cleaner"

	providers, err := infrastructure.InitializeOTel(otelCfg, logger)
	if err != nil {
		logger.Warn("OpenTelemetry initialization failed, cleaning counters disabled",
			slog.String("error", err.Error()))
		return nil
	}

	metrics, err := infrastructure.CreateBusinessMetrics(providers.Meter)
	if err != nil {
		logger.Warn("Business metrics creation failed, cleaning counters disabled",
			slog.String("error", err.Error()))
		return nil
	}
	return metrics
}

// selectTables resolves the -table flag into the tables to clean, in
// the order the dashboard loads them.
func selectTables(name string) ([]domain.Table, error) {
	if name == "all" {
		return []domain.Table{domain.TableTeams, domain.TableBatting, domain.TablePitching}, nil
	}

	table := domain.Table(name)
	if !table.Valid() {
		return nil, fmt.Errorf("unknown table %q (expected all, teams, batting or pitching)", name)
	}
	return []domain.Table{table}, nil
}
