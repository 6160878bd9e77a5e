// Package config loads application configuration from the environment.
package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Supported database drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds application configuration
type Config struct {
	Env  string
	Port string

	// Database
	DBDriver       string
	DBHost         string
	DBPort         string
	DBUser         string
	DBPassword     string
	DBName         string
	DBSSLMode      string
	SQLitePath     string
	MigrationsPath string

	// Maintenance endpoints are only routed when this is set.
	AdminAPIKey string

	// Currency rates
	RatesURL      string
	RatesHouse    string
	RatesTimeout  time.Duration
	RatesCacheTTL time.Duration

	ShutdownTimeout time.Duration
}

var defaults = map[string]any{
	"ENV":              "development",
	"PORT":             "8080",
	"DB_DRIVER":        DriverPostgres,
	"DB_HOST":          "localhost",
	"DB_PORT":          "5432",
	"DB_USER":          "ledger",
	"DB_PASSWORD":      "ledger",
	"DB_NAME":          "ledger",
	"DB_SSLMODE":       "disable",
	"SQLITE_PATH":      "ledger.db",
	"MIGRATIONS_PATH":  "migrations",
	"ADMIN_API_KEY":    "",
	"RATES_URL":        "https://www.dolarsi.com/api/api.php?type=valoresprincipales",
	"RATES_HOUSE":      "Dolar Bolsa",
	"RATES_TIMEOUT":    "10s",
	"RATES_CACHE_TTL":  "10m",
	"SHUTDOWN_TIMEOUT": "15s",
}

// Load loads configuration from environment variables, after merging an
// optional .env file into the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}
	return FromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()
	return v
}

// FromViper builds a Config from an already populated viper instance.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Env:            v.GetString("ENV"),
		Port:           v.GetString("PORT"),
		DBDriver:       strings.ToLower(v.GetString("DB_DRIVER")),
		DBHost:         v.GetString("DB_HOST"),
		DBPort:         v.GetString("DB_PORT"),
		DBUser:         v.GetString("DB_USER"),
		DBPassword:     v.GetString("DB_PASSWORD"),
		DBName:         v.GetString("DB_NAME"),
		DBSSLMode:      v.GetString("DB_SSLMODE"),
		SQLitePath:     v.GetString("SQLITE_PATH"),
		MigrationsPath: v.GetString("MIGRATIONS_PATH"),
		AdminAPIKey:    v.GetString("ADMIN_API_KEY"),
		RatesURL:       v.GetString("RATES_URL"),
		RatesHouse:     v.GetString("RATES_HOUSE"),
	}

	switch cfg.DBDriver {
	case DriverPostgres, DriverSQLite:
	default:
		return nil, fmt.Errorf("invalid DB_DRIVER %q: must be %s or %s", cfg.DBDriver, DriverPostgres, DriverSQLite)
	}

	var err error
	if cfg.RatesTimeout, err = parseDuration(v, "RATES_TIMEOUT"); err != nil {
		return nil, err
	}
	if cfg.RatesCacheTTL, err = parseDuration(v, "RATES_CACHE_TTL"); err != nil {
		return nil, err
	}
	if cfg.ShutdownTimeout, err = parseDuration(v, "SHUTDOWN_TIMEOUT"); err != nil {
		return nil, err
	}

	return cfg, nil
}

// IsProduction reports whether the service runs with production settings.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func parseDuration(v *viper.Viper, key string) (time.Duration, error) {
	raw := v.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %v", key, d)
	}
	return d, nil
}
