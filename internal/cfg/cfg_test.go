package cfg

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadFromEnv(t *testing.T) {
	tests := []struct {
		name     string
		envVars  map[string]string
		wantErr  bool
		validate func(t *testing.T, settings Settings)
	}{
		{
			name: "valid config with required fields",
			envVars: map[string]string{
				"SPORTIQ_API_KEY": "test_key",
			},
			wantErr: false,
			validate: func(t *testing.T, settings Settings) {
				if settings.APIKey != "test_key" {
					t.Errorf("expected APIKey to be 'test_key', got %s", settings.APIKey)
				}
				// Test defaults
				if settings.Vendor != "apisports" {
					t.Errorf("expected default vendor apisports, got %s", settings.Vendor)
				}
				if settings.RESTTimeout != 10*time.Second {
					t.Errorf("expected default RESTTimeout 10s, got %v", settings.RESTTimeout)
				}
				if settings.DashboardPort != 8501 {
					t.Errorf("expected default DashboardPort 8501, got %d", settings.DashboardPort)
				}
				if settings.MetricsPort != 9090 {
					t.Errorf("expected default MetricsPort 9090, got %d", settings.MetricsPort)
				}
				if settings.OddsSeed != 0 {
					t.Errorf("expected default OddsSeed 0, got %d", settings.OddsSeed)
				}
				if settings.FetchRatePerMin != 30 {
					t.Errorf("expected default FetchRatePerMin 30, got %d", settings.FetchRatePerMin)
				}
				if settings.LogLevel != "info" {
					t.Errorf("expected default LogLevel info, got %s", settings.LogLevel)
				}
				if settings.DataPath != "" {
					t.Errorf("expected empty DataPath, got %s", settings.DataPath)
				}
			},
		},
		{
			name: "legacy key name",
			envVars: map[string]string{
				"RAPIDAPI_KEY": "legacy_key",
			},
			wantErr: false,
			validate: func(t *testing.T, settings Settings) {
				if settings.APIKey != "legacy_key" {
					t.Errorf("expected APIKey 'legacy_key', got %s", settings.APIKey)
				}
			},
		},
		{
			name: "new key wins over legacy key",
			envVars: map[string]string{
				"SPORTIQ_API_KEY": "new_key",
				"RAPIDAPI_KEY":    "legacy_key",
			},
			wantErr: false,
			validate: func(t *testing.T, settings Settings) {
				if settings.APIKey != "new_key" {
					t.Errorf("expected APIKey 'new_key', got %s", settings.APIKey)
				}
			},
		},
		{
			name: "custom settings",
			envVars: map[string]string{
				"SPORTIQ_API_KEY":    "test_key",
				"SPORTIQ_VENDOR":     "rapidapi",
				"REST_TIMEOUT":       "5s",
				"DASHBOARD_PORT":     "8600",
				"METRICS_PORT":       "0",
				"DATA_PATH":          "/tmp/sportiq",
				"ODDS_SEED":          "42",
				"FETCH_RATE_PER_MIN": "120",
				"LOG_LEVEL":          "debug",
			},
			wantErr: false,
			validate: func(t *testing.T, settings Settings) {
				if settings.Vendor != "rapidapi" {
					t.Errorf("expected vendor rapidapi, got %s", settings.Vendor)
				}
				if settings.RESTTimeout != 5*time.Second {
					t.Errorf("expected RESTTimeout 5s, got %v", settings.RESTTimeout)
				}
				if settings.DashboardPort != 8600 {
					t.Errorf("expected DashboardPort 8600, got %d", settings.DashboardPort)
				}
				if settings.MetricsPort != 0 {
					t.Errorf("expected MetricsPort 0, got %d", settings.MetricsPort)
				}
				if settings.DataPath != "/tmp/sportiq" {
					t.Errorf("expected DataPath /tmp/sportiq, got %s", settings.DataPath)
				}
				if settings.OddsSeed != 42 {
					t.Errorf("expected OddsSeed 42, got %d", settings.OddsSeed)
				}
				if settings.FetchRatePerMin != 120 {
					t.Errorf("expected FetchRatePerMin 120, got %d", settings.FetchRatePerMin)
				}
				if settings.LogLevel != "debug" {
					t.Errorf("expected LogLevel debug, got %s", settings.LogLevel)
				}
			},
		},
		{
			name: "unparseable numbers fall back to defaults",
			envVars: map[string]string{
				"SPORTIQ_API_KEY": "test_key",
				"ODDS_SEED":       "-1",
				"DASHBOARD_PORT":  "abc",
			},
			wantErr: false,
			validate: func(t *testing.T, settings Settings) {
				if settings.OddsSeed != 0 {
					t.Errorf("expected OddsSeed 0, got %d", settings.OddsSeed)
				}
				if settings.DashboardPort != 8501 {
					t.Errorf("expected DashboardPort 8501, got %d", settings.DashboardPort)
				}
			},
		},
		{
			name:    "missing API key",
			envVars: map[string]string{},
			wantErr: true,
		},
		{
			name: "unknown vendor",
			envVars: map[string]string{
				"SPORTIQ_API_KEY": "test_key",
				"SPORTIQ_VENDOR":  "espn",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearTestEnv(t)

			for key, value := range tt.envVars {
				t.Setenv(key, value)
			}

			settings, err := loadFromEnv()

			if tt.wantErr && err == nil {
				t.Error("expected error but got none")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}

			if !tt.wantErr && tt.validate != nil {
				tt.validate(t, settings)
			}
		})
	}
}

func TestLoadFromYAML(t *testing.T) {
	tests := []struct {
		name         string
		yamlContent  string
		envOverrides map[string]string
		wantErr      bool
		validate     func(t *testing.T, settings Settings)
	}{
		{
			name: "valid YAML config",
			yamlContent: `
api:
  key: "yaml_key"
  vendor: "rapidapi"
  restTimeout: "15s"

endpoints:
  soccer: "http://localhost:9999/fixtures"

dashboard:
  port: 8700
  fetchRatePerMin: 10

odds:
  seed: 2024

system:
  dataPath: "/custom/data"
  metricsPort: 9191
  logLevel: "warn"
`,
			wantErr: false,
			validate: func(t *testing.T, settings Settings) {
				if settings.APIKey != "yaml_key" {
					t.Errorf("expected APIKey 'yaml_key', got %s", settings.APIKey)
				}
				if settings.Vendor != "rapidapi" {
					t.Errorf("expected vendor rapidapi, got %s", settings.Vendor)
				}
				if settings.RESTTimeout != 15*time.Second {
					t.Errorf("expected RESTTimeout 15s, got %v", settings.RESTTimeout)
				}
				if settings.Endpoints["soccer"] != "http://localhost:9999/fixtures" {
					t.Errorf("expected soccer endpoint override, got %v", settings.Endpoints)
				}
				if settings.DashboardPort != 8700 {
					t.Errorf("expected DashboardPort 8700, got %d", settings.DashboardPort)
				}
				if settings.FetchRatePerMin != 10 {
					t.Errorf("expected FetchRatePerMin 10, got %d", settings.FetchRatePerMin)
				}
				if settings.OddsSeed != 2024 {
					t.Errorf("expected OddsSeed 2024, got %d", settings.OddsSeed)
				}
				if settings.DataPath != "/custom/data" {
					t.Errorf("expected DataPath /custom/data, got %s", settings.DataPath)
				}
				if settings.MetricsPort != 9191 {
					t.Errorf("expected MetricsPort 9191, got %d", settings.MetricsPort)
				}
				if settings.LogLevel != "warn" {
					t.Errorf("expected LogLevel warn, got %s", settings.LogLevel)
				}
			},
		},
		{
			name: "YAML with environment overrides",
			yamlContent: `
api:
  key: "yaml_key"
system:
  metricsPort: 9191
`,
			envOverrides: map[string]string{
				"SPORTIQ_API_KEY": "env_key",
				"METRICS_PORT":    "9292",
				"ODDS_SEED":       "7",
			},
			wantErr: false,
			validate: func(t *testing.T, settings Settings) {
				if settings.APIKey != "env_key" {
					t.Errorf("expected APIKey 'env_key', got %s", settings.APIKey)
				}
				if settings.MetricsPort != 9292 {
					t.Errorf("expected MetricsPort 9292, got %d", settings.MetricsPort)
				}
				if settings.OddsSeed != 7 {
					t.Errorf("expected OddsSeed 7, got %d", settings.OddsSeed)
				}
				// Unset values take defaults
				if settings.DashboardPort != 8501 {
					t.Errorf("expected DashboardPort 8501, got %d", settings.DashboardPort)
				}
				if settings.RESTTimeout != 10*time.Second {
					t.Errorf("expected RESTTimeout 10s, got %v", settings.RESTTimeout)
				}
				if settings.Endpoints == nil {
					t.Error("expected non-nil Endpoints map")
				}
			},
		},
		{
			name: "metrics disabled in YAML",
			yamlContent: `
api:
  key: "yaml_key"
system:
  metricsPort: 0
`,
			wantErr: false,
			validate: func(t *testing.T, settings Settings) {
				if settings.MetricsPort != 0 {
					t.Errorf("expected MetricsPort 0, got %d", settings.MetricsPort)
				}
			},
		},
		{
			name: "missing API key",
			yamlContent: `
api:
  vendor: "apisports"
`,
			wantErr: true,
		},
		{
			name: "empty endpoint override",
			yamlContent: `
api:
  key: "yaml_key"
endpoints:
  tennis: ""
`,
			wantErr: true,
		},
		{
			name:        "invalid YAML",
			yamlContent: "api: [unclosed",
			wantErr:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearTestEnv(t)

			tmpDir := t.TempDir()
			configFile := filepath.Join(tmpDir, "config.yaml")
			if err := os.WriteFile(configFile, []byte(tt.yamlContent), 0o644); err != nil {
				t.Fatalf("failed to write config file: %v", err)
			}

			for key, value := range tt.envOverrides {
				t.Setenv(key, value)
			}

			settings, err := loadFromYAML(configFile)

			if tt.wantErr && err == nil {
				t.Error("expected error but got none")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}

			if !tt.wantErr && tt.validate != nil {
				tt.validate(t, settings)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	t.Run("environment only", func(t *testing.T) {
		clearTestEnv(t)
		t.Setenv("SPORTIQ_API_KEY", "env_key")

		settings, err := Load()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if settings.APIKey != "env_key" {
			t.Errorf("expected APIKey 'env_key', got %s", settings.APIKey)
		}
	})

	t.Run("config file", func(t *testing.T) {
		clearTestEnv(t)

		configFile := filepath.Join(t.TempDir(), "config.yaml")
		if err := os.WriteFile(configFile, []byte("api:\n  key: file_key\n"), 0o644); err != nil {
			t.Fatalf("failed to write config file: %v", err)
		}
		t.Setenv("CONFIG_FILE", configFile)

		settings, err := Load()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if settings.APIKey != "file_key" {
			t.Errorf("expected APIKey 'file_key', got %s", settings.APIKey)
		}
	})

	t.Run("missing config file", func(t *testing.T) {
		clearTestEnv(t)
		t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))

		if _, err := Load(); err == nil {
			t.Error("expected error for missing config file")
		}
	})
}

// clearTestEnv clears potentially conflicting environment variables
func clearTestEnv(t *testing.T) {
	envVars := []string{
		"SPORTIQ_API_KEY", "RAPIDAPI_KEY", "SPORTIQ_VENDOR", "CONFIG_FILE",
		"REST_TIMEOUT", "DASHBOARD_PORT", "METRICS_PORT", "DATA_PATH",
		"ODDS_SEED", "FETCH_RATE_PER_MIN", "LOG_LEVEL",
	}

	for _, env := range envVars {
		t.Setenv(env, "")
	}
}
