// Package config loads the server configuration from flags, the environment
// and an optional .env file.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	App    AppConfig
	Logger LoggerConfig
	Data   DataConfig
	Server ServerConfig
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level string
}

// DataConfig points at the dataset and the region table.
type DataConfig struct {
	Path        string // CSV file loaded at startup
	RegionsFile string // optional JSON region table; built-in default when empty
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	RateLimit    float64 // requests per second per client, 0 disables
}

// Load builds the configuration with precedence flags > environment > .env > defaults.
func Load(args []string) (*Config, error) {
	fset := flag.NewFlagSet("vgsales", flag.ContinueOnError)
	env := fset.String("env", "", "Environment (development, production)")
	logLevel := fset.String("log-level", "", "Log level (debug, info, warn, error)")
	dataPath := fset.String("data", "", "Path to the sales CSV (default: data/video_games_sales.csv)")
	regionsFile := fset.String("regions", "", "Path to a JSON region table")
	port := fset.String("port", "", "Server port (default: 8080)")
	readTimeout := fset.String("read-timeout", "", "HTTP read timeout (default: 10s)")
	writeTimeout := fset.String("write-timeout", "", "HTTP write timeout (default: 30s)")
	idleTimeout := fset.String("idle-timeout", "", "HTTP idle timeout (default: 60s)")
	rateLimit := fset.String("rate-limit", "", "Requests per second per client (default: 20, 0 disables)")
	envFile := fset.String("env-file", ".env", "Path to .env file")

	if err := fset.Parse(args); err != nil {
		return nil, err
	}

	if err := godotenv.Load(*envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", *envFile, err)
	}

	cfg := &Config{
		App: AppConfig{
			Environment: getConfigValue(*env, "ENV", "development"),
		},
		Logger: LoggerConfig{
			Level: getConfigValue(*logLevel, "LOG_LEVEL", "info"),
		},
		Data: DataConfig{
			Path:        getConfigValue(*dataPath, "DATA_PATH", "data/video_games_sales.csv"),
			RegionsFile: getConfigValue(*regionsFile, "REGIONS_FILE", ""),
		},
		Server: ServerConfig{
			Port: getConfigValue(*port, "SERVER_PORT", "8080"),
		},
	}

	var err error
	if cfg.Server.ReadTimeout, err = parseDuration(*readTimeout, "SERVER_READ_TIMEOUT", "10s"); err != nil {
		return nil, err
	}
	if cfg.Server.WriteTimeout, err = parseDuration(*writeTimeout, "SERVER_WRITE_TIMEOUT", "30s"); err != nil {
		return nil, err
	}
	if cfg.Server.IdleTimeout, err = parseDuration(*idleTimeout, "SERVER_IDLE_TIMEOUT", "60s"); err != nil {
		return nil, err
	}

	rateStr := getConfigValue(*rateLimit, "RATE_LIMIT", "20")
	if cfg.Server.RateLimit, err = strconv.ParseFloat(rateStr, 64); err != nil {
		return nil, fmt.Errorf("invalid rate limit %q: %w", rateStr, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration and reports every problem at once.
func (c *Config) Validate() error {
	var problems []string

	switch c.App.Environment {
	case "development", "production":
	default:
		problems = append(problems, fmt.Sprintf("invalid environment %q: must be development or production", c.App.Environment))
	}

	switch strings.ToLower(c.Logger.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		problems = append(problems, fmt.Sprintf("invalid log level %q", c.Logger.Level))
	}

	if c.Data.Path == "" {
		problems = append(problems, "data path cannot be empty")
	}

	if port, err := strconv.Atoi(c.Server.Port); err != nil {
		problems = append(problems, fmt.Sprintf("invalid port '%s': must be a number", c.Server.Port))
	} else if port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	timeouts := []struct {
		name string
		d    time.Duration
	}{
		{"read timeout", c.Server.ReadTimeout},
		{"write timeout", c.Server.WriteTimeout},
		{"idle timeout", c.Server.IdleTimeout},
	}
	for _, t := range timeouts {
		if t.d <= 0 {
			problems = append(problems, fmt.Sprintf("invalid %s %v: must be positive", t.name, t.d))
		}
	}

	if c.Server.RateLimit < 0 {
		problems = append(problems, fmt.Sprintf("invalid rate limit %v: must not be negative", c.Server.RateLimit))
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return ":" + c.Server.Port
}

func getConfigValue(flagValue, envKey, defaultValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if v := os.Getenv(envKey); v != "" {
		return v
	}
	return defaultValue
}

func parseDuration(flagValue, envKey, defaultValue string) (time.Duration, error) {
	s := getConfigValue(flagValue, envKey, defaultValue)
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", strings.ToLower(envKey), s, err)
	}
	return d, nil
}
