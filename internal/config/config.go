// Package config reads the server configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// HTTP server
	Port      string
	APIURL    string
	GinMode   string
	LogFormat string

	// Database
	DatabaseURL string
	SQLitePath  string

	// Authentication
	JWTSecret    string
	JWTExpiresIn time.Duration

	CORSAllowOrigins []string
	EnablePprof      bool

	// problems found while parsing, reported by Validate
	problems []string
}

// Load reads the .env files, if they exist, and then the environment.
// Variables already set in the environment take precedence over .env files.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}

	for _, f := range files {
		err := godotenv.Load(f)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("could not load %s: %w", f, err)
		}
	}

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		GinMode:     getEnv("GIN_MODE", "release"),
		LogFormat:   os.Getenv("LOG_FORMAT"),
		DatabaseURL: databaseURL(),
		SQLitePath:  getEnv("SQLITE_PATH", "data/expenses.db"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		EnablePprof: os.Getenv("ENABLE_PPROF") == "true",
	}

	cfg.APIURL = getEnv("API_URL", fmt.Sprintf("http://localhost:%s", cfg.Port))
	cfg.JWTExpiresIn = cfg.getEnvDuration("JWT_EXPIRES_IN", time.Hour)

	if origins := os.Getenv("CORS_ALLOW_ORIGINS"); origins != "" {
		cfg.CORSAllowOrigins = strings.Fields(origins)
	}

	return cfg, nil
}

// UsePostgres reports if a PostgreSQL database is configured.
// Otherwise, SQLite is used.
func (c *Config) UsePostgres() bool {
	return c.DatabaseURL != ""
}

// Validate validates the configuration and returns an error listing
// all problems found
func (c *Config) Validate() error {
	problems := append([]string{}, c.problems...)

	if port, err := strconv.Atoi(c.Port); err != nil {
		problems = append(problems, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if u, err := url.Parse(c.APIURL); err != nil || u.Scheme == "" || u.Host == "" {
		problems = append(problems, fmt.Sprintf("invalid API_URL '%s': must be an absolute URL", c.APIURL))
	}

	switch c.GinMode {
	case "debug", "release", "test":
	default:
		problems = append(problems, fmt.Sprintf("invalid GIN_MODE '%s': must be one of debug, release, test", c.GinMode))
	}

	if !c.UsePostgres() && c.SQLitePath == "" {
		problems = append(problems, "SQLITE_PATH cannot be empty when no PostgreSQL database is configured")
	}

	if c.JWTSecret == "" {
		problems = append(problems, "JWT_SECRET is required")
	}

	if c.JWTExpiresIn <= 0 {
		problems = append(problems, fmt.Sprintf("invalid JWT_EXPIRES_IN %v: must be positive", c.JWTExpiresIn))
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}

	return nil
}

// databaseURL returns DATABASE_URL or builds a postgres:// URL from the
// DB_* variables when DB_HOST is set.
func databaseURL() string {
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		return dsn
	}

	host := os.Getenv("DB_HOST")
	if host == "" {
		return ""
	}

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(getEnv("DB_USER", "postgres"), os.Getenv("DB_PASSWORD")),
		Host:     net.JoinHostPort(host, getEnv("DB_PORT", "5432")),
		Path:     "/" + getEnv("DB_NAME", "expenses"),
		RawQuery: url.Values{"sslmode": {getEnv("DB_SSLMODE", "disable")}}.Encode(),
	}

	return u.String()
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func (c *Config) getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	d, err := time.ParseDuration(value)
	if err != nil {
		c.problems = append(c.problems, fmt.Sprintf("invalid %s '%s': must be a duration like 1h or 30m", key, value))
		return defaultValue
	}
	return d
}
