package config

import "time"

// Defaults shared by the loader, the flag surfaces and the config file.
// The envconfig default tags repeat these values because struct tags
// cannot reference constants.
const (
	DefaultHost = "127.0.0.1"
	DefaultPort = 8050

	DefaultRateLimit = 100 // requests per second
	DefaultBurstSize = 50

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	DefaultDataDir  = "data"
	DefaultRawDir   = "data/raw"
	DefaultCleanDir = "data/clean"
	DefaultLogsDir  = "logs"
	DefaultWebDir   = "web"
)

// Archive crawl defaults.
const (
	AlmanacBaseURL    = "https://www.baseball-almanac.com"
	ScrapePageTimeout = 45 * time.Second
)
