package config

import (
	"fmt"
	"log"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/miguelacho_api/internal/core/domain"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Fetch policies for the rate tables.
const (
	FetchPolicyStartup    = "startup"
	FetchPolicyPerRequest = "per_request"
)

// Data sources for the spreadsheet gateway.
const (
	DataSourceGoogle = "google"
	DataSourceXLSX   = "xlsx"
)

// Config holds application configuration.
type Config struct {
	Port                string
	IsProduction        bool
	LogLevel            slog.Level
	ShutdownGracePeriod time.Duration

	// Spreadsheet gateway
	DataSource            string
	GoogleCredentialsPath string
	SpreadsheetID         string
	XLSXPath              string
	GatewayTimeout        time.Duration
	GatewayMaxRetries     int

	// Tables
	RatesRange           domain.SheetRange
	ProfitRange          domain.SheetRange
	RateFields           domain.RateTableFields
	RatesDropBlankRows   bool
	ProfitMatrixLayout   domain.MatrixLayout
	ProfitMatrixKeyField string
	FetchPolicy          string
	CacheRefreshInterval time.Duration

	// HTTP extras
	RateLimit       string
	AdminJWTSecret  string
	PosthogAPIKey   string
	PosthogEndpoint string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PORT", "8081")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("SHUTDOWN_GRACE_PERIOD", "10s")
	viper.SetDefault("DATA_SOURCE", DataSourceGoogle)
	viper.SetDefault("GOOGLE_CREDENTIALS_PATH", "./credentials.json")
	viper.SetDefault("SPREADSHEET_ID", "1jv-wydSjH84MLUtj-zRvHsxUlpEiqe5AlkTkr6K2248")
	viper.SetDefault("XLSX_PATH", "")
	viper.SetDefault("GATEWAY_TIMEOUT", "10s")
	viper.SetDefault("GATEWAY_MAX_RETRIES", 1)
	viper.SetDefault("RATES_SHEET_NAME", "Mercado")
	viper.SetDefault("RATES_SHEET_RANGE", "A1:M1000")
	viper.SetDefault("RATES_ID_FIELD", "IDTAS")
	viper.SetDefault("RATES_TIMESTAMP_FIELD", "TIMESTAMP")
	viper.SetDefault("RATES_DROP_BLANK_ROWS", true)
	viper.SetDefault("PROFIT_SHEET_NAME", "miguelacho")
	viper.SetDefault("PROFIT_SHEET_RANGE", "B1:L12")
	viper.SetDefault("PROFIT_MATRIX_LAYOUT", string(domain.MatrixLayoutGrid))
	viper.SetDefault("PROFIT_MATRIX_KEY_FIELD", "")
	viper.SetDefault("FETCH_POLICY", FetchPolicyStartup)
	viper.SetDefault("CACHE_REFRESH_INTERVAL", "0s")
	viper.SetDefault("RATE_LIMIT", "120-M")
	viper.SetDefault("ADMIN_JWT_SECRET", "")
	viper.SetDefault("POSTHOG_API_KEY", "")
	viper.SetDefault("POSTHOG_ENDPOINT", "")

	// Actual environment variables override .env values, which override the defaults above.
	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8081"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.LogLevel = parseLogLevel(viper.GetString("LOG_LEVEL"))
	cfg.ShutdownGracePeriod = durationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second)

	cfg.DataSource = strings.ToLower(viper.GetString("DATA_SOURCE"))
	cfg.GoogleCredentialsPath = viper.GetString("GOOGLE_CREDENTIALS_PATH")
	cfg.SpreadsheetID = viper.GetString("SPREADSHEET_ID")
	cfg.XLSXPath = viper.GetString("XLSX_PATH")
	cfg.GatewayTimeout = durationOrDefault("GATEWAY_TIMEOUT", 10*time.Second)
	cfg.GatewayMaxRetries = viper.GetInt("GATEWAY_MAX_RETRIES")
	if cfg.GatewayMaxRetries < 0 || cfg.GatewayMaxRetries > 1 {
		log.Printf("Warning: GATEWAY_MAX_RETRIES must be 0 or 1 ('%d'). Defaulting to 1.\n", cfg.GatewayMaxRetries)
		cfg.GatewayMaxRetries = 1
	}

	cfg.RatesRange = domain.SheetRange{
		Sheet: viper.GetString("RATES_SHEET_NAME"),
		Range: viper.GetString("RATES_SHEET_RANGE"),
	}
	cfg.ProfitRange = domain.SheetRange{
		Sheet: viper.GetString("PROFIT_SHEET_NAME"),
		Range: viper.GetString("PROFIT_SHEET_RANGE"),
	}
	cfg.RateFields = domain.RateTableFields{
		IDField:        viper.GetString("RATES_ID_FIELD"),
		TimestampField: viper.GetString("RATES_TIMESTAMP_FIELD"),
	}
	cfg.RatesDropBlankRows = viper.GetBool("RATES_DROP_BLANK_ROWS")

	layout, err := domain.ParseMatrixLayout(strings.ToLower(viper.GetString("PROFIT_MATRIX_LAYOUT")))
	if err != nil {
		return nil, err
	}
	cfg.ProfitMatrixLayout = layout
	cfg.ProfitMatrixKeyField = viper.GetString("PROFIT_MATRIX_KEY_FIELD")

	cfg.FetchPolicy = strings.ToLower(viper.GetString("FETCH_POLICY"))
	cfg.CacheRefreshInterval = durationOrDefault("CACHE_REFRESH_INTERVAL", 0)

	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	cfg.AdminJWTSecret = viper.GetString("ADMIN_JWT_SECRET")
	if cfg.AdminJWTSecret == "" {
		log.Println("Warning: ADMIN_JWT_SECRET not set. Admin routes are disabled.")
	}
	cfg.PosthogAPIKey = viper.GetString("POSTHOG_API_KEY")
	cfg.PosthogEndpoint = viper.GetString("POSTHOG_ENDPOINT")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the enumerations and the settings each data source needs.
func (c *Config) Validate() error {
	switch c.FetchPolicy {
	case FetchPolicyStartup, FetchPolicyPerRequest:
	default:
		return fmt.Errorf("invalid FETCH_POLICY '%s' (expected %s or %s)", c.FetchPolicy, FetchPolicyStartup, FetchPolicyPerRequest)
	}

	switch c.DataSource {
	case DataSourceGoogle:
		if c.SpreadsheetID == "" {
			return fmt.Errorf("SPREADSHEET_ID is required when DATA_SOURCE is %s", DataSourceGoogle)
		}
		if c.GoogleCredentialsPath == "" {
			return fmt.Errorf("GOOGLE_CREDENTIALS_PATH is required when DATA_SOURCE is %s", DataSourceGoogle)
		}
	case DataSourceXLSX:
		if c.XLSXPath == "" {
			return fmt.Errorf("XLSX_PATH is required when DATA_SOURCE is %s", DataSourceXLSX)
		}
	default:
		return fmt.Errorf("invalid DATA_SOURCE '%s' (expected %s or %s)", c.DataSource, DataSourceGoogle, DataSourceXLSX)
	}

	if c.RatesRange.Sheet == "" || c.RatesRange.Range == "" {
		return fmt.Errorf("RATES_SHEET_NAME and RATES_SHEET_RANGE are required")
	}
	if c.ProfitRange.Sheet == "" || c.ProfitRange.Range == "" {
		return fmt.Errorf("PROFIT_SHEET_NAME and PROFIT_SHEET_RANGE are required")
	}
	if c.CacheRefreshInterval < 0 {
		return fmt.Errorf("CACHE_REFRESH_INTERVAL must not be negative")
	}
	return nil
}

func durationOrDefault(key string, def time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, def.String())
		}
		return def
	}
	return d
}

func parseLogLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		log.Printf("Warning: Invalid value for LOG_LEVEL ('%s'). Defaulting to info.\n", s)
		return slog.LevelInfo
	}
	return level
}
