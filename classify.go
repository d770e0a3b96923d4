package database

import (
	"regexp"
	"strings"
)

// Driver failures are classified by matching substrings of the failure
// message, case-insensitively, against per-dialect pattern tables.  This is
// best-effort by nature: the patterns are coupled to the wording of each
// driver's messages, which is not a stable protocol.  New patterns are added
// to the tables below; the call sites in Connect and Execute never change.
//
// A message matching no pattern is never masked: the original error is
// returned unchanged.

// pattern maps a lower-cased substring of a driver failure message to a
// typed error.
type pattern struct {
	substr string
	wrap   func(cfg Config, err error, msg string) error
}

// executePatterns classifies failures reported while executing a statement.
//
// The missing-table pattern is specific to the file-backed dialect: the
// other backends report missing relations with their own wording, which
// passes through unclassified.
var executePatterns = map[Dialect][]pattern{
	SQLite: {
		{substr: "syntax error", wrap: asSyntaxError},
		{substr: "no such table", wrap: asNoSuchTable},
	},
	PostgreSQL: {
		{substr: "syntax error", wrap: asSyntaxError},
	},
	MySQL: {
		{substr: "syntax error", wrap: asSyntaxError},
		{substr: "error in your sql syntax", wrap: asSyntaxError},
	},
	MSSQL: {
		{substr: "syntax error", wrap: asSyntaxError},
		{substr: "incorrect syntax", wrap: asSyntaxError},
	},
}

// connectPatterns classifies failures reported by the liveness probe during
// Connect.  The file-backed dialect has no authentication to reject.
var connectPatterns = map[Dialect][]pattern{
	PostgreSQL: {
		{substr: "password authentication failed", wrap: asWrongCredentials},
	},
	MySQL: {
		{substr: "access denied", wrap: asWrongCredentials},
	},
	MSSQL: {
		{substr: "login failed", wrap: asWrongCredentials},
	},
}

// match looks up the failure message in the pattern table for the Config's
// dialect, returning the typed error and true on a match.
func match(table map[Dialect][]pattern, cfg Config, err error) (error, bool) {
	msg := strings.ToLower(strings.TrimSpace(err.Error()))
	for _, p := range table[cfg.Dialect] {
		if strings.Contains(msg, p.substr) {
			return p.wrap(cfg, err, msg), true
		}
	}
	return err, false
}

// classifyExecute maps a driver failure from a statement execution onto the
// error taxonomy.  Unmatched failures are returned unchanged.
func classifyExecute(cfg Config, err error) error {
	classified, _ := match(executePatterns, cfg, err)
	return classified
}

// classifyConnect maps a driver failure from the connect probe onto the
// error taxonomy, reporting whether the failure was recognised as an
// authentication rejection.
func classifyConnect(cfg Config, err error) (error, bool) {
	return match(connectPatterns, cfg, err)
}

var noSuchTableName = regexp.MustCompile(`no such table: (.+)`)

func asSyntaxError(_ Config, err error, _ string) error {
	return SQLSyntaxError{err}
}

func asNoSuchTable(cfg Config, err error, msg string) error {
	table := ""
	if m := noSuchTableName.FindStringSubmatch(msg); m != nil {
		table = m[1]
	}
	return NoSuchTableError{Database: cfg.DatabaseName, Table: table, error: err}
}

func asWrongCredentials(cfg Config, err error, _ string) error {
	return WrongCredentialsError{User: cfg.Credentials.User, error: err}
}
