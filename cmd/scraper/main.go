package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"almanac/internal/config"
	"almanac/internal/infrastructure"
	"almanac/internal/scrape"
)

func main() {
	fromYear := flag.Int("from", 0, "first season to scrape (0 = oldest season on the year index)")
	toYear := flag.Int("to", 0, "last season to scrape (0 = newest season on the year index)")
	headless := flag.Bool("headless", true, "run the browser headless")
	outDir := flag.String("out", "", "directory for raw CSV files (defaults to data/raw relative to the executable)")
	flag.Parse()

	_ = godotenv.Load(".env")

	if *fromYear != 0 && *toYear != 0 && *fromYear > *toYear {
		fmt.Printf("Error: -from %d is after -to %d\n", *fromYear, *toYear)
		os.Exit(1)
	}

	paths, err := config.GetPaths()
	if err != nil {
		fmt.Printf("Error: failed to initialize paths: %v\n", err)
		os.Exit(1)
	}
	if *outDir != "" {
		paths = paths.WithRawDir(*outDir)
	}
	if err := paths.EnsureDirectories(); err != nil {
		fmt.Printf("Error: failed to create required directories: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("Failed to load config, using defaults", "error", err)
		cfg = config.Default()
		cfg.Logging.FilePath = paths.GetLogPath("scraper.log")
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}

	metrics := initMetrics(logger)

	logger.Info("Season scraper starting",
		slog.Int("from", *fromYear),
		slog.Int("to", *toYear),
		slog.Bool("headless", *headless),
		slog.String("base_url", cfg.Scraper.BaseURL),
		slog.String("output_dir", paths.RawDir))

	client := scrape.NewClient(scrape.Options{
		BaseURL:        cfg.Scraper.BaseURL,
		Headless:       *headless,
		PageTimeout:    cfg.Scraper.PageTimeout,
		PagesPerSecond: cfg.Scraper.RatePerSec,
	}, logger, metrics)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	browserCtx, cancel := client.Browse(ctx)
	defer cancel()

	links, err := client.YearLinks(browserCtx)
	if err != nil {
		logger.Error("Failed to collect year links", slog.String("error", err.Error()))
		os.Exit(1)
	}

	links = filterYears(links, *fromYear, *toYear)
	if len(links) == 0 {
		logger.Warn("No seasons matched the requested range",
			slog.Int("from", *fromYear),
			slog.Int("to", *toYear))
		fmt.Println("No seasons matched the requested range")
		return
	}
	fmt.Printf("Found %d seasons to scrape\n", len(links))

	writer := scrape.NewRawWriter(paths, logger)

	scraped, failed := 0, 0
	for _, link := range links {
		if ctx.Err() != nil {
			logger.Warn("Crawl interrupted",
				slog.Int("seasons_done", scraped),
				slog.Int("seasons_left", len(links)-scraped-failed))
			os.Exit(1)
		}

		data, err := client.ScrapeYear(browserCtx, link)
		if err != nil {
			// One broken season page should not kill the crawl.
			failed++
			logger.Error("Season scrape failed",
				slog.Int("year", link.Year),
				slog.String("url", link.URL),
				slog.String("error", err.Error()))
			continue
		}

		if err := writer.Append(data); err != nil {
			logger.Error("Failed to write raw rows",
				slog.Int("year", link.Year),
				slog.String("error", err.Error()))
			os.Exit(1)
		}

		scraped++
		fmt.Printf("Scraped season %d (%d of %d)\n", link.Year, scraped+failed, len(links))
	}

	logger.Info("Crawl complete",
		slog.Int("seasons_scraped", scraped),
		slog.Int("seasons_failed", failed),
		slog.String("output_dir", paths.RawDir))
	fmt.Printf("Crawl complete: %d seasons scraped, %d failed\n", scraped, failed)

	if scraped == 0 {
		os.Exit(1)
	}
}

// initMetrics wires the crawl counters. Metric failures downgrade to a
// warning so a broken exporter never blocks scraping.
func initMetrics(logger *slog.Logger) *infrastructure.BusinessMetrics {
	otelCfg := infrastructure.DefaultOTelConfig()
	otelCfg.ServiceName = "almanac-scraper"

	providers, err := infrastructure.InitializeOTel(otelCfg, logger)
	if err != nil {
		logger.Warn("OpenTelemetry initialization failed, crawl counters disabled",
			slog.String("error", err.Error()))
		return nil
	}

	metrics, err := infrastructure.CreateBusinessMetrics(providers.Meter)
	if err != nil {
		logger.Warn("Business metrics creation failed, crawl counters disabled",
			slog.String("error", err.Error()))
		return nil
	}
	return metrics
}

// filterYears keeps the links inside the requested crawl bounds. A zero
// bound is open ended.
func filterYears(links []scrape.YearLink, from, to int) []scrape.YearLink {
	filtered := make([]scrape.YearLink, 0, len(links))
	for _, link := range links {
		if from != 0 && link.Year < from {
			continue
		}
		if to != 0 && link.Year > to {
			continue
		}
		filtered = append(filtered, link)
	}
	return filtered
}
