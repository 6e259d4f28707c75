// Package config provides centralized configuration management for Almanac.
// It handles loading configuration from multiple sources, validation, and
// provides a type-safe API for accessing configuration values throughout
// the application.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//	1. Environment variables (highest priority)
//	2. Configuration file (config.yaml)
//	3. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern ALMANAC_* for namespacing:
//
//	ALMANAC_SERVER_HOST=127.0.0.1
//	ALMANAC_SERVER_PORT=8050
//	ALMANAC_LOGGING_LEVEL=info
//	ALMANAC_PATHS_CLEAN_DIR=data/clean
//	ALMANAC_SCRAPER_RATE_PER_SEC=0.5
//
// # Path Management
//
// The package provides centralized path management through the Paths type,
// which resolves all file system paths relative to the executable location:
//
//	paths, err := config.GetPaths()
//	teamsCSV := paths.CleanCSV(domain.TableTeams)
//	rawCSV := paths.RawCSV(domain.TableBatting)
//
// # Validation
//
// All configuration is validated at load time to ensure required fields are
// present, values are within acceptable ranges, and data directories exist
// or can be created.
//
// # Usage
//
// Load configuration at application startup:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
package config
