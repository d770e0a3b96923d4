package database

import (
	"fmt"
	"strings"
)

type Error string

func (e Error) Error() string { return string(e) }

const ErrNotConnected = Error("not connected: call Connect first")
const ErrUnsupportedDialect = Error("unsupported dialect")
const ErrDatabaseNotFound = Error("database does not exist")
const ErrMissingFields = Error("required fields are missing")
const ErrWithDBAndWithReplicaIsInvalid = Error("cannot use WithReplica when using WithDB")
const ErrWithDBAndWithDBOptionsIsInvalid = Error("cannot use WithDBOptions when using WithDB")
const ErrPingTimeoutIsInvalid = Error("ping timeout must be greater than or equal to zero")

// BadConfigError wraps a configuration validation failure, identifying
// the field(s) that are missing or invalid.
type BadConfigError struct {
	Fields []string
	error
}

// Error implements the error interface.
func (e BadConfigError) Error() string {
	if len(e.Fields) > 0 {
		return fmt.Sprintf("bad config: %s: %s", e.error, strings.Join(e.Fields, ", "))
	}
	return fmt.Sprintf("bad config: %s", e.error)
}

// Is returns a boolean indicating whether the target error is a
// BadConfigError.
func (e BadConfigError) Is(target error) bool {
	_, ok := target.(BadConfigError)
	return ok
}

// Unwrap returns the wrapped error.
func (e BadConfigError) Unwrap() error { return e.error }

// WrongCredentialsError wraps an authentication failure reported by the
// driver during Connect, identifying the username that was rejected.
type WrongCredentialsError struct {
	User string
	error
}

// Error implements the error interface.
func (e WrongCredentialsError) Error() string {
	return fmt.Sprintf("wrong credentials for user %q: %s", e.User, e.error)
}

// Is returns a boolean indicating whether the target error is a
// WrongCredentialsError.
func (e WrongCredentialsError) Is(target error) bool {
	_, ok := target.(WrongCredentialsError)
	return ok
}

// Unwrap returns the wrapped error.
func (e WrongCredentialsError) Unwrap() error { return e.error }

// SQLSyntaxError wraps a syntax problem reported by the driver during
// Execute.  The wrapped error carries the raw driver message.
type SQLSyntaxError struct {
	error
}

// Error implements the error interface.
func (e SQLSyntaxError) Error() string {
	return fmt.Sprintf("sql syntax error: %s", e.error)
}

// Is returns a boolean indicating whether the target error is a
// SQLSyntaxError.
func (e SQLSyntaxError) Is(target error) bool {
	_, ok := target.(SQLSyntaxError)
	return ok
}

// Unwrap returns the wrapped error.
func (e SQLSyntaxError) Unwrap() error { return e.error }

// NoSuchTableError wraps a missing-table failure reported by the driver
// during Execute, identifying the database and (best-effort) the table.
//
// The table name is extracted from the driver message; when extraction
// fails the Table field is left empty.
type NoSuchTableError struct {
	Database string
	Table    string
	error
}

// Error implements the error interface.
func (e NoSuchTableError) Error() string {
	return fmt.Sprintf("no such table %q in database %q", e.Table, e.Database)
}

// Is returns a boolean indicating whether the target error is a
// NoSuchTableError.
func (e NoSuchTableError) Is(target error) bool {
	_, ok := target.(NoSuchTableError)
	return ok
}

// Unwrap returns the wrapped error.
func (e NoSuchTableError) Unwrap() error { return e.error }

// ConfigurationError wraps any error returned during configuration of
// a new session.
type ConfigurationError struct {
	error
}

// Error implements the error interface.
func (e ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s", e.error)
}

// Is returns a boolean indicating whether the target error is a
// ConfigurationError.
func (e ConfigurationError) Is(target error) bool {
	_, ok := target.(ConfigurationError)
	return ok
}

// Unwrap returns the wrapped error.
func (e ConfigurationError) Unwrap() error {
	return e.error
}

// ConnectionFailedError wraps errors that occur when attempting to establish
// a connection and all configured connectors have failed.
type ConnectionFailedError struct {
	error
}

// Error implements the error interface.
func (e ConnectionFailedError) Error() string {
	return fmt.Sprintf("connection failed: %s", e.error)
}

// Is returns a boolean indicating whether the target error is a
// ConnectionFailedError.
func (e ConnectionFailedError) Is(target error) bool {
	_, ok := target.(ConnectionFailedError)
	return ok
}

// Unwrap returns the wrapped error.
func (e ConnectionFailedError) Unwrap() error {
	return e.error
}

// ConnectionError wraps an error from a connection attempt using
// a specific connector, identifying the operation that failed.
type ConnectionError struct {
	Connector
	op string
	error
}

// Error implements the error interface.
func (e ConnectionError) Error() string {
	return fmt.Sprintf("unable to connect: %s: %s: %s", e.Connector, e.op, e.error)
}

// Is returns a boolean indicating whether the target error is a
// ConnectionError.
func (e ConnectionError) Is(target error) bool {
	_, ok := target.(ConnectionError)
	return ok
}

// Unwrap returns the wrapped error.
func (e ConnectionError) Unwrap() error { return e.error }

// TransactionError wraps an error from a transaction operation, identifying
// the name of the transaction and the operation that failed.
type TransactionError struct {
	txn string
	op  string
	error
}

// Error implements the error interface.
func (e TransactionError) Error() string {
	if e.op == "" {
		return fmt.Sprintf("transaction: %s: %s", e.txn, e.error)
	}
	return fmt.Sprintf("transaction: %s: %s: %s", e.txn, e.op, e.error)
}

// Is returns a boolean indicating whether the target error is a
// TransactionError.
//
// A target TransactionError is considered equal if it has the same
// transaction name and operation name as the receiver.
func (e TransactionError) Is(target error) bool {
	if other, ok := target.(TransactionError); ok {
		return e.txn == other.txn && e.op == other.op
	}
	return false
}

// Unwrap returns the wrapped error.
func (e TransactionError) Unwrap() error { return e.error }
