package database

import (
	"os"

	"golang.org/x/exp/slices"
)

// Credentials holds the username/password pair used to authenticate against
// a network database.  The zero value means "no credentials supplied".
type Credentials struct {
	User     string
	Password string
}

// Config describes a target database: its dialect, name and, for network
// dialects, the credentials and endpoint needed to reach it.
//
// A Config is an immutable value: it is built and validated by NewConfig
// and never modified afterwards.
type Config struct {
	Dialect      Dialect
	DatabaseName string
	Credentials  Credentials
	Host         string
	Port         int
}

type ConfigOption func(*Config)

// WithCredentials sets the username and password used to authenticate.
func WithCredentials(user, password string) ConfigOption {
	return func(cfg *Config) {
		cfg.Credentials = Credentials{User: user, Password: password}
	}
}

// WithHost sets the host name or address of the database server.
func WithHost(host string) ConfigOption {
	return func(cfg *Config) {
		cfg.Host = host
	}
}

// WithPort sets the port the database server listens on.
func WithPort(port int) ConfigOption {
	return func(cfg *Config) {
		cfg.Port = port
	}
}

// NewConfig builds and validates a Config for a database with the specified
// dialect and name.  Validation is eager: an invalid Config is rejected here,
// before any connection is attempted.
//
// The dialect must be one of the supported dialects.  For the sqlite dialect
// the database name is a file path which must reference an existing store;
// no credentials, host or port are required.  For every other dialect,
// credentials, host and port must all be supplied; the returned
// BadConfigError names each field that is missing.
func NewConfig(dialect Dialect, dbname string, opt ...ConfigOption) (Config, error) {
	cfg := Config{
		Dialect:      dialect,
		DatabaseName: dbname,
	}
	for _, opt := range opt {
		opt(&cfg)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// validate applies the construction-time invariants of a Config, returning
// a BadConfigError identifying the offending field(s) if any are violated.
func (cfg Config) validate() error {
	if !slices.Contains(supportedDialects, cfg.Dialect) {
		return BadConfigError{Fields: []string{"dialect"}, error: ErrUnsupportedDialect}
	}

	if cfg.Dialect == SQLite {
		if _, err := os.Stat(cfg.DatabaseName); err != nil {
			return BadConfigError{Fields: []string{"database name"}, error: ErrDatabaseNotFound}
		}
		return nil
	}

	if missing := cfg.missingFields(); len(missing) > 0 {
		return BadConfigError{Fields: missing, error: ErrMissingFields}
	}

	return nil
}

// missingFields identifies the fields required by a network dialect that
// are absent from the Config.
func (cfg Config) missingFields() []string {
	missing := []string{}
	if cfg.Credentials == (Credentials{}) {
		missing = append(missing, "credentials")
	}
	if cfg.Host == "" {
		missing = append(missing, "host")
	}
	if cfg.Port == 0 {
		missing = append(missing, "port")
	}
	return missing
}
