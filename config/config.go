package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Fetch modes.
const (
	FetchModeAPI     = "api"
	FetchModeBrowser = "browser"
)

// Database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	APIKey       string
	APIEndpoint  string
	TargetURL    string
	FetchMode    string
	RenderJS     bool
	FetchTimeout time.Duration
	ChromeBin    string

	OutputBase    string
	Formats       []string
	DebugHTMLPath string

	ColumnMap     string
	TableSelector string

	SaveDB           bool
	DBDriver         string
	SQLitePath       string
	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string
	DBConnectRetries int

	LogLevel string
}

// Load reads the .env file if present and returns a populated Config struct.
// The bool reports whether a .env file was found.
func Load() (*Config, bool) {
	envFound := godotenv.Load() == nil

	return &Config{
		APIKey:       getEnv("SCRAPINGBEE_API_KEY", ""),
		APIEndpoint:  getEnv("SCRAPINGBEE_ENDPOINT", "https://app.scrapingbee.com/api/v1/"),
		TargetURL:    getEnv("TARGET_URL", "https://swappa.com/listings/apple-iphone-13-pro-max"),
		FetchMode:    getEnv("FETCH_MODE", FetchModeAPI),
		RenderJS:     getEnvBool("RENDER_JS", true),
		FetchTimeout: getEnvDuration("FETCH_TIMEOUT", 90*time.Second),
		ChromeBin:    getEnv("CHROME_BIN", ""),

		OutputBase:    getEnv("OUTPUT_BASE", "swappa_report"),
		Formats:       getEnvList("OUTPUT_FORMATS", []string{"csv", "json", "xlsx", "docx"}),
		DebugHTMLPath: getEnv("DEBUG_HTML_PATH", "debug_page.html"),

		ColumnMap:     getEnv("COLUMN_MAP", ""),
		TableSelector: getEnv("TABLE_SELECTOR", "table#listings_table tbody tr"),

		SaveDB:           getEnvBool("SAVE_DB", false),
		DBDriver:         getEnv("DB_DRIVER", DriverSQLite),
		SQLitePath:       getEnv("SQLITE_PATH", "swappa_listings.db"),
		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "scraper"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "scraper123"),
		PostgresDB:       getEnv("POSTGRES_DB", "swappa"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
		DBConnectRetries: getEnvInt("DB_CONNECT_RETRIES", 5),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}, envFound
}

// Validate checks the settings a run cannot start without.
func (c *Config) Validate() error {
	var errs []error
	switch c.FetchMode {
	case FetchModeAPI:
		if c.APIKey == "" {
			errs = append(errs, errors.New("api key is required in api fetch mode (SCRAPINGBEE_API_KEY or --api-key)"))
		}
	case FetchModeBrowser:
	default:
		errs = append(errs, fmt.Errorf("unknown fetch mode %q", c.FetchMode))
	}
	if c.TargetURL == "" {
		errs = append(errs, errors.New("target url is required"))
	}
	if c.SaveDB && c.DBDriver != DriverSQLite && c.DBDriver != DriverPostgres {
		errs = append(errs, fmt.Errorf("unknown db driver %q", c.DBDriver))
	}
	return errors.Join(errs...)
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		b, err := strconv.ParseBool(val)
		if err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return fallback
}

func getEnvList(key string, fallback []string) []string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(val, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
