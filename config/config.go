// Package config provides connection and pool configuration for the backends
// of tsql, loaded from YAML or JSON files, the environment, and ".env" files.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/bluepython508/tsql"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Driver names a supported backend.
type Driver string

const (
	DriverSqlite   Driver = `sqlite`
	DriverPostgres Driver = `postgres`
)

// Config holds the configuration of one database connection pool.
type Config struct {
	// Driver is the backend: sqlite or postgres
	Driver Driver `json:"driver" yaml:"driver"`

	// DSN is the data source: a file path or ":memory:" for sqlite, a
	// connection URL or key/value string for postgres
	DSN string `json:"dsn" yaml:"dsn"`

	// Pool configuration
	Pool Pool `json:"pool" yaml:"pool"`
}

// Pool holds "database/sql" pool settings. Zero values keep the driver's
// defaults.
type Pool struct {
	// MaxOpenConns is the maximum number of open connections (0 = unlimited)
	MaxOpenConns int `json:"max_open_conns" yaml:"max_open_conns"`

	// MaxIdleConns is the maximum number of idle connections
	MaxIdleConns int `json:"max_idle_conns" yaml:"max_idle_conns"`

	// ConnMaxLifetime is the maximum lifetime of a connection
	ConnMaxLifetime time.Duration `json:"conn_max_lifetime" yaml:"conn_max_lifetime"`

	// ConnMaxIdleTime is the maximum idle time of a connection
	ConnMaxIdleTime time.Duration `json:"conn_max_idle_time" yaml:"conn_max_idle_time"`
}

// DefaultConfig returns the default configuration: an in-memory sqlite
// database.
func DefaultConfig() *Config {
	return &Config{
		Driver: DriverSqlite,
		DSN:    `:memory:`,
	}
}

// Validate validates the configuration. Failures are reported as
// tsql.ErrConfiguration.
func (self *Config) Validate() error {
	switch self.Driver {
	case DriverSqlite, DriverPostgres:
		// Valid drivers
	default:
		return invalid(`invalid driver: %q (must be sqlite or postgres)`, self.Driver)
	}

	if self.DSN == `` {
		return invalid(`dsn is required`)
	}

	if self.Pool.MaxOpenConns < 0 {
		return invalid(`pool.max_open_conns must not be negative, got %d`, self.Pool.MaxOpenConns)
	}
	if self.Pool.MaxIdleConns < 0 {
		return invalid(`pool.max_idle_conns must not be negative, got %d`, self.Pool.MaxIdleConns)
	}
	if self.Pool.MaxOpenConns > 0 && self.Pool.MaxIdleConns > self.Pool.MaxOpenConns {
		return invalid(
			`pool.max_idle_conns (%d) must not exceed pool.max_open_conns (%d)`,
			self.Pool.MaxIdleConns, self.Pool.MaxOpenConns,
		)
	}
	if self.Pool.ConnMaxLifetime < 0 || self.Pool.ConnMaxIdleTime < 0 {
		return invalid(`pool durations must not be negative`)
	}

	return nil
}

// Load loads configuration from a YAML or JSON file, applies environment
// overrides, and validates the result.
func Load(path string) (*Config, error) {
	cfg, err := LoadFromFile(path)
	if err != nil {
		return nil, err
	}
	if err := LoadFromEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromFile loads configuration from a YAML or JSON file, on top of the
// defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, tsql.ErrConfiguration.WithWhile(`reading config file`).WithCause(err)
	}

	cfg := DefaultConfig()

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case `.yaml`, `.yml`:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, tsql.ErrConfiguration.WithWhile(`parsing YAML config`).WithCause(err)
		}
	case `.json`:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, tsql.ErrConfiguration.WithWhile(`parsing JSON config`).WithCause(err)
		}
	default:
		return nil, invalid(`unsupported config file format: %s`, ext)
	}

	return cfg, nil
}

/*
LoadEnv loads the given `.env` files into the process environment (missing
files are ignored, existing variables are kept), then builds a validated
configuration from the defaults and the environment. Without arguments, loads
`.env` from the working directory.
*/
func LoadEnv(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{`.env`}
	}
	for _, file := range files {
		if _, err := os.Stat(file); err != nil {
			continue
		}
		if err := godotenv.Load(file); err != nil {
			return nil, tsql.ErrConfiguration.WithWhile(`loading ` + file).WithCause(err)
		}
	}

	cfg := DefaultConfig()
	if err := LoadFromEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromEnv applies environment variables on top of the configuration.
// Environment variables use the TSQL_ prefix.
func LoadFromEnv(cfg *Config) error {
	if v := os.Getenv(`TSQL_DRIVER`); v != `` {
		cfg.Driver = Driver(v)
	}
	if v := os.Getenv(`TSQL_DSN`); v != `` {
		cfg.DSN = v
	}

	// Pool configuration
	if err := envInt(`TSQL_MAX_OPEN_CONNS`, &cfg.Pool.MaxOpenConns); err != nil {
		return err
	}
	if err := envInt(`TSQL_MAX_IDLE_CONNS`, &cfg.Pool.MaxIdleConns); err != nil {
		return err
	}
	if err := envDuration(`TSQL_CONN_MAX_LIFETIME`, &cfg.Pool.ConnMaxLifetime); err != nil {
		return err
	}
	if err := envDuration(`TSQL_CONN_MAX_IDLE_TIME`, &cfg.Pool.ConnMaxIdleTime); err != nil {
		return err
	}
	return nil
}

func envInt(key string, out *int) error {
	v := os.Getenv(key)
	if v == `` {
		return nil
	}
	val, err := strconv.Atoi(v)
	if err != nil {
		return tsql.ErrConfiguration.WithWhile(`reading ` + key).WithCause(err)
	}
	*out = val
	return nil
}

func envDuration(key string, out *time.Duration) error {
	v := os.Getenv(key)
	if v == `` {
		return nil
	}
	val, err := time.ParseDuration(v)
	if err != nil {
		return tsql.ErrConfiguration.WithWhile(`reading ` + key).WithCause(err)
	}
	*out = val
	return nil
}

func invalid(format string, args ...any) error {
	return tsql.ErrConfiguration.WithWhile(`validating config`).WithCause(fmt.Errorf(format, args...))
}
