package cfg

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"sportiq/internal/common"
)

// Settings holds the validated runtime configuration.
type Settings struct {
	APIKey          string
	Vendor          string
	Endpoints       map[string]string
	RESTTimeout     time.Duration
	DashboardPort   int
	MetricsPort     int
	DataPath        string
	OddsSeed        uint64
	FetchRatePerMin int
	LogLevel        string
}

// ConfigFile is the YAML layout read from CONFIG_FILE.
type ConfigFile struct {
	API struct {
		Key         string `yaml:"key"`
		Vendor      string `yaml:"vendor"`
		RESTTimeout string `yaml:"restTimeout"`
	} `yaml:"api"`

	// Endpoints maps a sport name to a fixtures URL.
	Endpoints map[string]string `yaml:"endpoints"`

	Dashboard struct {
		Port            int `yaml:"port"`
		FetchRatePerMin int `yaml:"fetchRatePerMin"`
	} `yaml:"dashboard"`

	Odds struct {
		Seed uint64 `yaml:"seed"`
	} `yaml:"odds"`

	System struct {
		DataPath    string `yaml:"dataPath"`
		MetricsPort *int   `yaml:"metricsPort"`
		LogLevel    string `yaml:"logLevel"`
	} `yaml:"system"`
}

// Load reads .env (if present), then YAML from CONFIG_FILE when set, then
// environment overrides.
func Load() (Settings, error) {
	// A missing .env is normal outside development.
	_ = godotenv.Load()

	if configPath := os.Getenv(common.EnvConfigFile); configPath != "" {
		return loadFromYAML(configPath)
	}

	return loadFromEnv()
}

func loadFromYAML(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var config ConfigFile
	if err := yaml.Unmarshal(data, &config); err != nil {
		return Settings{}, fmt.Errorf("failed to parse config file: %w", err)
	}

	restTimeout, err := time.ParseDuration(config.API.RESTTimeout)
	if err != nil {
		restTimeout = 10 * time.Second
	}

	metricsPort := common.DefaultMetricsPort
	if config.System.MetricsPort != nil {
		metricsPort = *config.System.MetricsPort
	}

	settings := Settings{
		APIKey:          apiKey(config.API.Key),
		Vendor:          getEnvOrDefault(common.EnvVendor, orDefault(config.API.Vendor, common.DefaultVendor)),
		Endpoints:       config.Endpoints,
		RESTTimeout:     getDurationOrDefault(common.EnvRESTTimeout, restTimeout),
		DashboardPort:   getIntOrDefault(common.EnvDashboardPort, orDefaultInt(config.Dashboard.Port, common.DefaultDashboardPort)),
		MetricsPort:     getIntOrDefault(common.EnvMetricsPort, metricsPort),
		DataPath:        getEnvOrDefault(common.EnvDataPath, config.System.DataPath),
		OddsSeed:        getUintOrDefault(common.EnvOddsSeed, config.Odds.Seed),
		FetchRatePerMin: getIntOrDefault(common.EnvFetchRatePerMin, orDefaultInt(config.Dashboard.FetchRatePerMin, common.DefaultFetchRatePerMin)),
		LogLevel:        getEnvOrDefault(common.EnvLogLevel, orDefault(config.System.LogLevel, common.DefaultLogLevel)),
	}
	if settings.Endpoints == nil {
		settings.Endpoints = make(map[string]string)
	}

	if err := validateSettings(&settings); err != nil {
		return Settings{}, fmt.Errorf("configuration validation failed: %w", err)
	}

	return settings, nil
}

func loadFromEnv() (Settings, error) {
	settings := Settings{
		APIKey:          apiKey(""),
		Vendor:          getEnvOrDefault(common.EnvVendor, common.DefaultVendor),
		Endpoints:       make(map[string]string),
		RESTTimeout:     getDurationOrDefault(common.EnvRESTTimeout, 10*time.Second),
		DashboardPort:   getIntOrDefault(common.EnvDashboardPort, common.DefaultDashboardPort),
		MetricsPort:     getIntOrDefault(common.EnvMetricsPort, common.DefaultMetricsPort),
		DataPath:        os.Getenv(common.EnvDataPath), // optional
		OddsSeed:        getUintOrDefault(common.EnvOddsSeed, 0),
		FetchRatePerMin: getIntOrDefault(common.EnvFetchRatePerMin, common.DefaultFetchRatePerMin),
		LogLevel:        getEnvOrDefault(common.EnvLogLevel, common.DefaultLogLevel),
	}

	if err := validateSettings(&settings); err != nil {
		return Settings{}, fmt.Errorf("configuration validation failed: %w", err)
	}

	return settings, nil
}

// apiKey prefers SPORTIQ_API_KEY, then the legacy RAPIDAPI_KEY, then the
// value from the config file.
func apiKey(configValue string) string {
	if v := os.Getenv(common.EnvAPIKey); v != "" {
		return v
	}
	return getEnvOrDefault(common.EnvLegacyAPIKey, configValue)
}

func getEnvOrDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultValue
}

func getIntOrDefault(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultValue
}

func getUintOrDefault(key string, defaultValue uint64) uint64 {
	if v := os.Getenv(key); v != "" {
		if u, err := strconv.ParseUint(v, 10, 64); err == nil {
			return u
		}
	}
	return defaultValue
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func orDefaultInt(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}

// validateSettings range-checks every value.
func validateSettings(settings *Settings) error {
	if settings.APIKey == "" {
		return errors.New(common.ErrMsgAPIKeyRequired)
	}

	switch settings.Vendor {
	case common.VendorAPISports, common.VendorRapidAPI:
	default:
		return fmt.Errorf("%s, got %q", common.ErrMsgUnknownVendor, settings.Vendor)
	}

	if settings.RESTTimeout < time.Second || settings.RESTTimeout > time.Minute {
		return fmt.Errorf("REST timeout must be between 1s and 1m, got %v", settings.RESTTimeout)
	}

	if settings.DashboardPort < common.MinPort || settings.DashboardPort > common.MaxPort {
		return fmt.Errorf("dashboard port must be between %d and %d, got %d", common.MinPort, common.MaxPort, settings.DashboardPort)
	}
	// 0 disables the metrics listener
	if settings.MetricsPort != 0 && (settings.MetricsPort < common.MinPort || settings.MetricsPort > common.MaxPort) {
		return fmt.Errorf("metrics port must be 0 or between %d and %d, got %d", common.MinPort, common.MaxPort, settings.MetricsPort)
	}
	if settings.MetricsPort != 0 && settings.MetricsPort == settings.DashboardPort {
		return fmt.Errorf("metrics port and dashboard port must differ, both are %d", settings.MetricsPort)
	}

	if settings.FetchRatePerMin <= 0 || settings.FetchRatePerMin > common.MaxFetchRatePerMin {
		return fmt.Errorf("fetch rate must be between 1 and %d per minute, got %d", common.MaxFetchRatePerMin, settings.FetchRatePerMin)
	}

	switch settings.LogLevel {
	case "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log level must be one of trace, debug, info, warn, error, got %q", settings.LogLevel)
	}

	for sport, url := range settings.Endpoints {
		if url == "" {
			return fmt.Errorf("endpoint for %s cannot be empty", sport)
		}
	}

	return nil
}
