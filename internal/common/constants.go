package common

// Environment variable keys
const (
	EnvAPIKey          = "SPORTIQ_API_KEY"
	EnvLegacyAPIKey    = "RAPIDAPI_KEY"
	EnvVendor          = "SPORTIQ_VENDOR"
	EnvConfigFile      = "CONFIG_FILE"
	EnvRESTTimeout     = "REST_TIMEOUT"
	EnvDashboardPort   = "DASHBOARD_PORT"
	EnvMetricsPort     = "METRICS_PORT"
	EnvDataPath        = "DATA_PATH"
	EnvOddsSeed        = "ODDS_SEED"
	EnvFetchRatePerMin = "FETCH_RATE_PER_MIN"
	EnvLogLevel        = "LOG_LEVEL"
)

// API vendors
const (
	VendorAPISports = "apisports"
	VendorRapidAPI  = "rapidapi"
)

// Configuration defaults
const (
	DefaultVendor          = VendorAPISports
	DefaultDashboardPort   = 8501
	DefaultMetricsPort     = 9090
	DefaultFetchRatePerMin = 30
	DefaultLogLevel        = "info"
)

// Credential headers per vendor
const (
	HeaderAPISportsKey = "x-apisports-key"
	HeaderRapidAPIKey  = "X-RapidAPI-Key"
	HeaderRapidAPIHost = "X-RapidAPI-Host"
)

// Odds sampling ranges for generated predictions
const (
	HomeOddsMin = 1.5
	HomeOddsMax = 3.5
	AwayOddsMin = 2.5
	AwayOddsMax = 4.5
)

// Placeholder used when a team name is absent from a payload.
const UnknownTeam = "?"

// Common error messages
const (
	ErrMsgAPIKeyRequired = "API key is required (set " + EnvAPIKey + ")"
	ErrMsgUnknownVendor  = "vendor must be apisports or rapidapi"
)

// Validation constants
const (
	MinPort            = 1024
	MaxPort            = 65535
	MaxFetchRatePerMin = 600
)
