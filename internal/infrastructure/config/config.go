// internal/infrastructure/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	// DISPLAY_TZ must resolve in slim containers
	_ "time/tzdata"

	"github.com/joho/godotenv"
)

// Operation log backends
const (
	OpLogPostgres = "postgres"
	OpLogMongo    = "mongo"
)

// Config holds all configuration for the application
type Config struct {
	// App
	AppVersion string

	// Server
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	APIKey       string
	CORSOrigins  []string

	// PostgreSQL
	DatabaseURL      string
	DBMaxOpenConns   int
	DBMinIdleConns   int
	DBAcquireTimeout time.Duration

	// Operation log
	OpLogBackend string

	// MongoDB
	MongoURI      string
	MongoDB       string
	MongoUser     string
	MongoPassword string

	// Google
	GoogleCredsPath     string
	ProjectsFolderID    string
	InWorkMarker        string
	JobCardRange        string
	MasterSpreadsheetID string
	MasterSheetTitle    string
	ProjectsSheetTitle  string

	// Projections
	DisplayTZ string

	// Sync
	SyncConcurrency int
	SyncInterval    time.Duration

	// Logging
	LogLevel      string
	LogFile       string
	LogMaxSizeMB  int
	LogMaxBackups int
	LogMaxAgeDays int
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	// Set defaults and override with env vars
	config := &Config{
		AppVersion:   getEnv("APP_VERSION", "1.0.0"),
		Port:         getEnv("PORT", "8080"),
		ReadTimeout:  time.Duration(getEnvAsInt("READ_TIMEOUT", 30)) * time.Second,
		WriteTimeout: time.Duration(getEnvAsInt("WRITE_TIMEOUT", 300)) * time.Second,
		APIKey:       getEnv("API_KEY", ""),
		CORSOrigins:  getEnvAsList("CORS_ORIGINS", []string{"*"}),

		DatabaseURL:      normalizeDatabaseURL(getEnv("DATABASE_URL", "")),
		DBMaxOpenConns:   getEnvAsInt("DB_MAX_OPEN_CONNS", 5),
		DBMinIdleConns:   getEnvAsInt("DB_MIN_IDLE_CONNS", 1),
		DBAcquireTimeout: getEnvAsDuration("DB_ACQUIRE_TIMEOUT", 30*time.Second),

		OpLogBackend: strings.ToLower(getEnv("OPLOG_BACKEND", OpLogPostgres)),

		MongoURI:      getEnv("MONGODB_DSN", "mongodb://localhost:27017"),
		MongoDB:       getEnv("MONGO_DB", "workshop"),
		MongoUser:     getEnv("MONGO_USER", ""),
		MongoPassword: getEnv("MONGO_PASSWORD", ""),

		GoogleCredsPath:     getEnv("GOOGLE_CREDS_PATH", "credentials.json"),
		ProjectsFolderID:    getEnv("PROJECTS_FOLDER_ID", ""),
		InWorkMarker:        getEnv("IN_WORK_MARKER", "in_work"),
		JobCardRange:        getEnv("JOB_CARD_RANGE", "JC"),
		MasterSpreadsheetID: getEnv("MASTER_SPREADSHEET_ID", ""),
		MasterSheetTitle:    getEnv("MASTER_SHEET_TITLE", "master"),
		ProjectsSheetTitle:  getEnv("PROJECTS_SHEET_TITLE", "projects"),

		DisplayTZ: getEnv("DISPLAY_TZ", "Europe/Moscow"),

		SyncConcurrency: getEnvAsInt("SYNC_CONCURRENCY", 4),
		SyncInterval:    getEnvAsDuration("SYNC_INTERVAL", 0),

		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFile:       getEnv("LOG_FILE", ""),
		LogMaxSizeMB:  getEnvAsInt("LOG_MAX_SIZE_MB", 100),
		LogMaxBackups: getEnvAsInt("LOG_MAX_BACKUPS", 5),
		LogMaxAgeDays: getEnvAsInt("LOG_MAX_AGE_DAYS", 30),
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks values that have no usable default
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.OpLogBackend != OpLogPostgres && c.OpLogBackend != OpLogMongo {
		return fmt.Errorf("OPLOG_BACKEND must be %q or %q, got %q", OpLogPostgres, OpLogMongo, c.OpLogBackend)
	}
	if _, err := time.LoadLocation(c.DisplayTZ); err != nil {
		return fmt.Errorf("invalid DISPLAY_TZ %q: %w", c.DisplayTZ, err)
	}
	if c.DBMaxOpenConns < 1 {
		return fmt.Errorf("DB_MAX_OPEN_CONNS must be positive")
	}
	return nil
}

// Location returns the display time zone
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.DisplayTZ)
	if err != nil {
		return time.UTC
	}
	return loc
}

// normalizeDatabaseURL drops SQLAlchemy driver suffixes such as postgresql+psycopg://
func normalizeDatabaseURL(url string) string {
	scheme, rest, ok := strings.Cut(url, "://")
	if !ok {
		return url
	}
	if base, _, found := strings.Cut(scheme, "+"); found {
		return base + "://" + rest
	}
	return url
}

// Helper functions to get environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	// bare numbers are seconds
	if value, err := strconv.Atoi(valueStr); err == nil {
		return time.Duration(value) * time.Second
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	var out []string
	for _, v := range strings.Split(valueStr, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
