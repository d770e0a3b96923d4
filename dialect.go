package database

import (
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	_ "github.com/microsoft/go-mssqldb"

	"golang.org/x/exp/slices"
)

// Dialect identifies a supported database backend.
type Dialect string

const (
	SQLite     Dialect = "sqlite"
	PostgreSQL Dialect = "postgresql"
	MySQL      Dialect = "mysql"
	MSSQL      Dialect = "mssql"
)

var supportedDialects = []Dialect{SQLite, PostgreSQL, MySQL, MSSQL}

// ResolveConnector derives the dialect-specific connection descriptor for a
// Config.  It performs no I/O, is deterministic and does not modify the
// Config.
//
// Configs are expected to have been validated at construction; if that
// guarantee has been bypassed and fields required by the dialect are absent,
// a BadConfigError is returned rather than a malformed descriptor.
func ResolveConnector(cfg Config) (Connector, error) {
	if !slices.Contains(supportedDialects, cfg.Dialect) {
		return nil, BadConfigError{Fields: []string{"dialect"}, error: ErrUnsupportedDialect}
	}

	if cfg.Dialect == SQLite {
		return sqliteConnector{database: cfg.DatabaseName}, nil
	}

	if missing := cfg.missingFields(); len(missing) > 0 {
		return nil, BadConfigError{Fields: missing, error: ErrMissingFields}
	}

	switch cfg.Dialect {
	case PostgreSQL:
		return postgresConnector{
			user:     cfg.Credentials.User,
			password: cfg.Credentials.Password,
			host:     cfg.Host,
			port:     cfg.Port,
			database: cfg.DatabaseName,
		}, nil
	case MySQL:
		return mysqlConnector{
			user:     cfg.Credentials.User,
			password: cfg.Credentials.Password,
			host:     cfg.Host,
			port:     cfg.Port,
			database: cfg.DatabaseName,
		}, nil
	default:
		return mssqlConnector{
			user:     cfg.Credentials.User,
			password: cfg.Credentials.Password,
			host:     cfg.Host,
			port:     cfg.Port,
			database: cfg.DatabaseName,
		}, nil
	}
}

// sqliteConnector locates a file-backed sqlite store; the connection string
// is the database file path.
type sqliteConnector struct {
	database string
}

func (c sqliteConnector) Driver() string           { return "sqlite3" }
func (c sqliteConnector) ConnectionString() string { return c.database }
func (c sqliteConnector) String() string           { return "sqlite: " + c.database }

type postgresConnector struct {
	user     string
	password string
	host     string
	port     int
	database string
}

func (c postgresConnector) Driver() string { return "postgres" }

func (c postgresConnector) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s", c.user, c.password, c.host, c.port, c.database)
}

// String describes the connector without exposing the password.
func (c postgresConnector) String() string {
	return fmt.Sprintf("postgresql: %s@%s:%d/%s", c.user, c.host, c.port, c.database)
}

// mysqlConnector uses the pure-Go mysql driver; the connection string is
// in that driver's user:password@tcp(host:port)/dbname format.
type mysqlConnector struct {
	user     string
	password string
	host     string
	port     int
	database string
}

func (c mysqlConnector) Driver() string { return "mysql" }

func (c mysqlConnector) ConnectionString() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s", c.user, c.password, c.host, c.port, c.database)
}

// String describes the connector without exposing the password.
func (c mysqlConnector) String() string {
	return fmt.Sprintf("mysql: %s@%s:%d/%s", c.user, c.host, c.port, c.database)
}

type mssqlConnector struct {
	user     string
	password string
	host     string
	port     int
	database string
}

func (c mssqlConnector) Driver() string { return "sqlserver" }

func (c mssqlConnector) ConnectionString() string {
	return fmt.Sprintf("server=%s;port=%d;database=%s;user id=%s;password=%s",
		c.host, c.port, c.database, c.user, c.password)
}

// String describes the connector without exposing the password.
func (c mssqlConnector) String() string {
	return fmt.Sprintf("mssql: %s@%s:%d/%s", c.user, c.host, c.port, c.database)
}
