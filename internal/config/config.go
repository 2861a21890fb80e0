// Package config manages environment variables and the optional config file.
//
// It layers defaults, an optional YAML file and `SAMPLEDB_` prefixed
// environment variables into structured Go types, and validates that
// required values are present so they can be reused across the
// application runtime.
//
// Responsibilities:
//   - Load environment variables (optionally from a `.env` file).
//   - Map env vars and file keys into a structured Go config (structs).
//   - Validate required values so the app fails fast on bad/missing config.
//   - Provide sane defaults for optional config blocks (e.g. observability).
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	// Side-effect import: if a `.env` file exists it is loaded into the
	// process env before any key is read.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

/*
	Keys are read in three layers, lowest precedence first:

	1. DefaultConfig()            compiled-in defaults
	2. $SAMPLEDB_CONFIG           optional YAML file
	3. SAMPLEDB_* env vars        prefix removed, lowercased

	Nested struct fields use "." as the delimiter, so
	SAMPLEDB_DATABASE.HOST -> database.host -> Config.Database.Host
*/

const (
	// EnvPrefix is the prefix every environment key must carry.
	EnvPrefix = "SAMPLEDB_"

	// FileEnvKey names the env var holding the optional YAML config path.
	FileEnvKey = "SAMPLEDB_CONFIG"

	// ServiceName labels logs, traces and metrics.
	ServiceName = "sampledb-api"
)

// Config is the root configuration object for the application.
//
// The `koanf:"..."` tags specify where koanf should map values from.
// The `validate:"..."` tags are enforced by go-playground/validator.
//
// Observability is a pointer because it is optional. If not provided,
// defaults are injected at load time.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
//
// Timeouts are whole seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required"`

	// CacheMaxAge is the advisory max-age (seconds) attached to successful
	// GET responses. It never affects server-side state.
	CacheMaxAge int `koanf:"cache_max_age" validate:"min=0"`
}

// DatabaseConfig contains PostgreSQL connection parameters and pool tuning.
//
// MaxOpenConns bounds the pool: when every connection is checked out,
// acquisition blocks until one is released.
type DatabaseConfig struct {
	Host            string `koanf:"host" validate:"required"`
	Port            int    `koanf:"port" validate:"required"`
	User            string `koanf:"user" validate:"required"`
	Password        string `koanf:"password" validate:"required"`
	Name            string `koanf:"name" validate:"required"`
	SSLMode         string `koanf:"ssl_mode" validate:"required"`
	MaxOpenConns    int    `koanf:"max_open_conns" validate:"required,min=1"`
	MaxIdleConns    int    `koanf:"max_idle_conns" validate:"min=0,ltefield=MaxOpenConns"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime" validate:"required"`
	ConnMaxIdleTime int    `koanf:"conn_max_idle_time" validate:"required"`

	// AutoMigrate runs the embedded migrations at startup.
	AutoMigrate bool `koanf:"auto_migrate"`
}

// DefaultConfig returns the compiled-in defaults.
//
// They mirror the sample deployment: a local database named "sample"
// and a pool of five connections.
func DefaultConfig() *Config {
	return &Config{
		Primary: Primary{Env: "local"},
		Server: ServerConfig{
			Port:               "3000",
			ReadTimeout:        30,
			WriteTimeout:       30,
			IdleTimeout:        60,
			CORSAllowedOrigins: []string{"*"},
			CacheMaxAge:        604800,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "root",
			Password:        "root",
			Name:            "sample",
			SSLMode:         "disable",
			MaxOpenConns:    5,
			MaxIdleConns:    1,
			ConnMaxLifetime: 3600,
			ConnMaxIdleTime: 300,
			AutoMigrate:     true,
		},
		Observability: DefaultObservabilityConfig(),
	}
}

// LoadConfig loads configuration, validates it, applies observability
// defaults and returns the resulting config.
//
// Behavior summary:
//   - Starts from DefaultConfig
//   - Merges the YAML file named by SAMPLEDB_CONFIG, if set
//   - Merges env vars with prefix SAMPLEDB_
//   - Validates required config blocks/fields
//   - Sets default observability if missing, then forces service name + environment
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	if path := os.Getenv(FileEnvKey); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("could not load config file %s: %w", path, err)
		}
	}

	// SAMPLEDB_DATABASE.HOST -> "database.host"
	err := k.Load(env.ProviderWithValue(EnvPrefix, ".", envKeyValue), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	// Unmarshal on top of the defaults so unset keys keep their default.
	mainConfig := DefaultConfig()
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal main config: %w", err)
	}

	if err := validator.New().Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if mainConfig.Observability == nil {
		mainConfig.Observability = DefaultObservabilityConfig()
	}

	mainConfig.Observability.ServiceName = ServiceName
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return mainConfig, nil
}

// listKeys are the slice-valued keys. From the environment they are given
// as comma-separated values.
var listKeys = map[string]bool{
	"server.cors_allowed_origins":        true,
	"observability.health_checks.checks": true,
}

// envKeyValue maps SAMPLEDB_SERVER.PORT to "server.port" and splits list values.
func envKeyValue(key, value string) (string, any) {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	if !listKeys[key] {
		return key, value
	}

	items := make([]string, 0)
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return key, items
}
