// Package config loads environment variables into structured, validated
// configuration.
//
// Variables use the USERS_ prefix and dot-delimited nesting, e.g.
// USERS_SERVER.PORT -> Config.Server.Port. A .env file, when present, is
// loaded by godotenv's autoload import before anything reads the environment.
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix shared by all environment variables of this
// service.
const EnvPrefix = "USERS_"

// Last-name match modes for the search endpoints.
const (
	MatchExact    = "exact"
	MatchContains = "contains"
)

// Config is the root configuration object.
type Config struct {
	Primary  Primary        `koanf:"primary" validate:"required"`
	Server   ServerConfig   `koanf:"server" validate:"required"`
	Database DatabaseConfig `koanf:"database" validate:"required"`
	Users    UsersConfig    `koanf:"users" validate:"required"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime. Timeouts are
// seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required"`
}

// DatabaseConfig contains PostgreSQL connection parameters and pool tuning.
type DatabaseConfig struct {
	Host            string `koanf:"host" validate:"required"`
	Port            int    `koanf:"port" validate:"required"`
	User            string `koanf:"user" validate:"required"`
	Password        string `koanf:"password" validate:"required"`
	Name            string `koanf:"name" validate:"required"`
	SSLMode         string `koanf:"ssl_mode" validate:"required"`
	MaxOpenConns    int    `koanf:"max_open_conns" validate:"required"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime" validate:"required"`
	ConnMaxIdleTime int    `koanf:"conn_max_idle_time" validate:"required"`
}

// UsersConfig holds the behavioral knobs of the users API.
//
// LastNameMatch selects how the last-name search compares values: "exact" is
// case-insensitive equality, "contains" is case-insensitive substring
// containment.
type UsersConfig struct {
	LastNameMatch   string `koanf:"last_name_match" validate:"required,oneof=exact contains"`
	DefaultPageSize int    `koanf:"default_page_size" validate:"required,min=1"`
	MaxPageSize     int    `koanf:"max_page_size" validate:"required,min=1"`
}

// LoggingConfig controls log verbosity. Level defaults to "info" when the
// block is absent.
type LoggingConfig struct {
	Level string `koanf:"level"`
}

// Load reads, unmarshals, and validates the configuration from the
// environment.
func Load() (*Config, error) {
	k := koanf.New(".")

	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("loading environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	if cfg.Users.DefaultPageSize > cfg.Users.MaxPageSize {
		return nil, fmt.Errorf("users.default_page_size (%d) exceeds users.max_page_size (%d)",
			cfg.Users.DefaultPageSize, cfg.Users.MaxPageSize)
	}

	return cfg, nil
}
