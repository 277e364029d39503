// Package config reads the backend configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

var ErrAPIURLMissing = errors.New("environment variable API_URL must be set")

// Config is the runtime configuration of the backend.
type Config struct {
	APIURL     *url.URL
	ListenAddr string
	GinMode    string
	LogFormat  string

	DataDir  string
	Database DatabaseConfig

	CORSAllowOrigins []string
	EnablePprof      bool

	// RateLimit is a limiter formatted rate like "100-M", empty disables rate limiting
	RateLimit string

	Redis RedisConfig

	ReportCurrencyLocale string
}

// DatabaseConfig holds the PostgreSQL settings. SQLite in DataDir is used
// when Host is empty.
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable", d.Host, d.Port, d.User, d.Password, d.Name)
}

// RedisConfig holds the settings of the report cache. It is disabled
// when Addr is empty.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// Load reads a .env file in the working directory if there is one, then
// builds the configuration from the environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("reading .env file: %w", err)
	} else if err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	apiURL, ok := os.LookupEnv("API_URL")
	if !ok {
		return Config{}, ErrAPIURLMissing
	}

	parsed, err := url.Parse(apiURL)
	if err != nil {
		return Config{}, fmt.Errorf("environment variable API_URL must be a valid URL: %w", err)
	}

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return Config{}, fmt.Errorf("environment variable REDIS_DB must be an integer: %w", err)
	}

	redisTTL, err := time.ParseDuration(getEnv("REDIS_TTL", "10m"))
	if err != nil {
		return Config{}, fmt.Errorf("environment variable REDIS_TTL must be a duration: %w", err)
	}

	return Config{
		APIURL:     parsed,
		ListenAddr: getEnv("LISTEN_ADDR", ":8080"),
		GinMode:    getEnv("GIN_MODE", "release"),
		LogFormat:  os.Getenv("LOG_FORMAT"),
		DataDir:    getEnv("DATA_DIR", filepath.Join(".", "data")),
		Database: DatabaseConfig{
			Host:     os.Getenv("DB_HOST"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     getEnv("DB_NAME", "workforce"),
		},
		CORSAllowOrigins: strings.Fields(os.Getenv("CORS_ALLOW_ORIGINS")),
		EnablePprof:      os.Getenv("ENABLE_PPROF") == "true",
		RateLimit:        os.Getenv("RATE_LIMIT"),
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
			TTL:      redisTTL,
		},
		ReportCurrencyLocale: getEnv("REPORT_CURRENCY_LOCALE", "en-US"),
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
