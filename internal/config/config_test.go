package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoad tests the Load function with various scenarios
func TestLoad(t *testing.T) {
	// Save original environment to restore later
	originalEnv := make(map[string]string)
	envVars := []string{
		"ALMANAC_SERVER_HOST", "ALMANAC_SERVER_PORT", "ALMANAC_SERVER_READ_TIMEOUT",
		"ALMANAC_SERVER_WRITE_TIMEOUT", "ALMANAC_SERVER_DEBUG",
		"ALMANAC_SECURITY_ALLOWED_ORIGINS", "ALMANAC_SECURITY_ENABLE_CORS",
		"ALMANAC_LOGGING_LEVEL", "ALMANAC_LOGGING_FORMAT", "ALMANAC_LOGGING_OUTPUT",
		"ALMANAC_PATHS_RAW_DIR", "ALMANAC_PATHS_CLEAN_DIR",
		"ALMANAC_SCRAPER_BASE_URL", "ALMANAC_SCRAPER_RATE_PER_SEC",
	}

	for _, envVar := range envVars {
		originalEnv[envVar] = os.Getenv(envVar)
	}

	defer func() {
		for _, envVar := range envVars {
			if val, exists := originalEnv[envVar]; exists && val != "" {
				os.Setenv(envVar, val)
			} else {
				os.Unsetenv(envVar)
			}
		}
	}()

	tests := []struct {
		name        string
		setupEnv    func()
		wantErr     bool
		validateCfg func(*testing.T, *Config)
	}{
		{
			name: "default configuration with no env vars",
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "127.0.0.1", cfg.Server.Host)
				assert.Equal(t, 8050, cfg.Server.Port)
				assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
				assert.Equal(t, 15*time.Second, cfg.Server.WriteTimeout)
				assert.Equal(t, 60*time.Second, cfg.Server.IdleTimeout)
				assert.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout)
				assert.False(t, cfg.Server.Debug)

				assert.Equal(t, []string{"http://localhost:8050"}, cfg.Security.AllowedOrigins)
				assert.True(t, cfg.Security.EnableCORS)
				assert.True(t, cfg.Security.RateLimit.Enabled)
				assert.Equal(t, 100.0, cfg.Security.RateLimit.RPS)
				assert.Equal(t, 50, cfg.Security.RateLimit.Burst)

				assert.Equal(t, "info", cfg.Logging.Level)
				assert.Equal(t, "json", cfg.Logging.Format)
				assert.Equal(t, "both", cfg.Logging.Output)

				assert.Equal(t, "data/raw", cfg.Paths.RawDir)
				assert.Equal(t, "data/clean", cfg.Paths.CleanDir)
				assert.NotEmpty(t, cfg.Paths.ExecutableDir)

				assert.Equal(t, "https://www.baseball-almanac.com", cfg.Scraper.BaseURL)
				assert.Equal(t, "AL", cfg.Scraper.League)
				assert.Equal(t, 0.5, cfg.Scraper.RatePerSec)
				assert.True(t, cfg.Scraper.Headless)
			},
		},
		{
			name: "custom environment variables",
			setupEnv: func() {
				os.Setenv("ALMANAC_SERVER_HOST", "0.0.0.0")
				os.Setenv("ALMANAC_SERVER_PORT", "9090")
				os.Setenv("ALMANAC_SERVER_READ_TIMEOUT", "30s")
				os.Setenv("ALMANAC_SERVER_DEBUG", "true")
				os.Setenv("ALMANAC_SECURITY_ALLOWED_ORIGINS", "http://example.com,https://example.com")
				os.Setenv("ALMANAC_LOGGING_LEVEL", "debug")
				os.Setenv("ALMANAC_LOGGING_FORMAT", "text")
				os.Setenv("ALMANAC_SCRAPER_RATE_PER_SEC", "2")
			},
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "0.0.0.0", cfg.Server.Host)
				assert.Equal(t, 9090, cfg.Server.Port)
				assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
				assert.True(t, cfg.Server.Debug)
				assert.Equal(t, []string{"http://example.com", "https://example.com"}, cfg.Security.AllowedOrigins)
				assert.Equal(t, "debug", cfg.Logging.Level)
				assert.Equal(t, "json", cfg.Logging.Format) // validate() should force this to json
				assert.Equal(t, 2.0, cfg.Scraper.RatePerSec)
			},
		},
		{
			name: "invalid port number",
			setupEnv: func() {
				os.Setenv("ALMANAC_SERVER_PORT", "99999")
			},
			wantErr: true,
		},
		{
			name: "negative timeout",
			setupEnv: func() {
				os.Setenv("ALMANAC_SERVER_READ_TIMEOUT", "-5s")
			},
			wantErr: true,
		},
		{
			name: "empty allowed origins",
			setupEnv: func() {
				os.Setenv("ALMANAC_SECURITY_ALLOWED_ORIGINS", "")
			},
			wantErr: true,
		},
		{
			name: "negative scrape rate",
			setupEnv: func() {
				os.Setenv("ALMANAC_SCRAPER_RATE_PER_SEC", "-1")
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Clean environment first
			for _, envVar := range envVars {
				os.Unsetenv(envVar)
			}

			if tt.setupEnv != nil {
				tt.setupEnv()
			}

			cfg, err := Load()

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, cfg)
			if tt.validateCfg != nil {
				tt.validateCfg(t, cfg)
			}
		})
	}
}

// TestLoadFromFile tests YAML file loading
func TestLoadFromFile(t *testing.T) {
	t.Run("valid yaml", func(t *testing.T) {
		configFile := filepath.Join(t.TempDir(), "config.yaml")
		configContent := `
server:
  host: 192.168.1.10
  port: 8888
logging:
  level: warn
scraper:
  base_url: https://example.test
`
		require.NoError(t, os.WriteFile(configFile, []byte(configContent), 0644))

		cfg, err := loadFromFile(configFile)
		require.NoError(t, err)
		assert.Equal(t, "192.168.1.10", cfg.Server.Host)
		assert.Equal(t, 8888, cfg.Server.Port)
		assert.Equal(t, "warn", cfg.Logging.Level)
		assert.Equal(t, "https://example.test", cfg.Scraper.BaseURL)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		configFile := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(configFile, []byte("server: [not: valid"), 0644))

		_, err := loadFromFile(configFile)
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := loadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
}

// TestMergeConfigs tests env-over-file precedence
func TestMergeConfigs(t *testing.T) {
	fileCfg := Config{}
	fileCfg.Server.Host = "filehost"
	fileCfg.Server.Port = 7000
	fileCfg.Logging.Level = "warn"
	fileCfg.Scraper.BaseURL = "https://file.test"

	t.Run("env zero values take file values", func(t *testing.T) {
		envCfg := Config{}

		merged := mergeConfigs(fileCfg, envCfg)
		assert.Equal(t, "filehost", merged.Server.Host)
		assert.Equal(t, 7000, merged.Server.Port)
		assert.Equal(t, "warn", merged.Logging.Level)
		assert.Equal(t, "https://file.test", merged.Scraper.BaseURL)
	})

	t.Run("env values win over file values", func(t *testing.T) {
		envCfg := Config{}
		envCfg.Server.Host = "envhost"
		envCfg.Server.Port = 9000
		envCfg.Logging.Level = "debug"

		merged := mergeConfigs(fileCfg, envCfg)
		assert.Equal(t, "envhost", merged.Server.Host)
		assert.Equal(t, 9000, merged.Server.Port)
		assert.Equal(t, "debug", merged.Logging.Level)
	})
}

// TestDefault tests the default configuration
func TestDefault(t *testing.T) {
	cfg := Default()
	require.NotNil(t, cfg)

	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 8050, cfg.Server.Port)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "data/raw", cfg.Paths.RawDir)
	assert.Equal(t, "data/clean", cfg.Paths.CleanDir)
	assert.Equal(t, "AL", cfg.Scraper.League)

	// Defaults must pass their own validation
	assert.NoError(t, cfg.validate())
}
