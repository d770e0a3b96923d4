package database

import (
	"errors"
	"testing"
)

func TestClassifyExecute(t *testing.T) {
	// ARRANGE
	sqlite := Config{Dialect: SQLite, DatabaseName: "chinook.db"}

	t.Run("classifies a syntax error", func(t *testing.T) {
		// ARRANGE
		testcases := []struct {
			name string
			cfg  Config
			msg  string
		}{
			{name: "sqlite", cfg: sqlite, msg: `near "SELEKT": syntax error`},
			{name: "postgresql", cfg: Config{Dialect: PostgreSQL}, msg: `pq: syntax error at or near "SELEKT"`},
			{name: "mysql", cfg: Config{Dialect: MySQL}, msg: "Error 1064 (42000): You have an error in your SQL syntax"},
			{name: "mssql", cfg: Config{Dialect: MSSQL}, msg: "mssql: Incorrect syntax near 'SELEKT'."},
		}
		for _, tc := range testcases {
			t.Run(tc.name, func(t *testing.T) {
				// ARRANGE
				err := errors.New(tc.msg)

				// ACT
				got := classifyExecute(tc.cfg, err)

				// ASSERT
				assertExpectedError(t, SQLSyntaxError{}, got)
				assertExpectedError(t, err, got)
			})
		}
	})

	t.Run("classifies a missing table", func(t *testing.T) {
		// ARRANGE
		err := errors.New("no such table: albums")

		// ACT
		got := classifyExecute(sqlite, err)

		// ASSERT
		assertExpectedError(t, NoSuchTableError{}, got)

		t.Run("identifies the database and table", func(t *testing.T) {
			wanted := NoSuchTableError{Database: "chinook.db", Table: "albums", error: err}
			nst := NoSuchTableError{}
			if !errors.As(got, &nst) {
				t.Fatalf("expected NoSuchTableError, got %T", got)
			}
			if wanted != nst {
				t.Errorf("\nwanted %#v\ngot    %#v", wanted, nst)
			}
		})
	})

	t.Run("when the table name cannot be extracted", func(t *testing.T) {
		// ARRANGE
		err := errors.New("no such table")

		// ACT
		got := classifyExecute(sqlite, err)

		// ASSERT
		assertExpectedError(t, NoSuchTableError{}, got)

		t.Run("leaves the table empty", func(t *testing.T) {
			nst := NoSuchTableError{}
			if !errors.As(got, &nst) {
				t.Fatalf("expected NoSuchTableError, got %T", got)
			}
			wanted := ""
			if wanted != nst.Table {
				t.Errorf("\nwanted %#v\ngot    %#v", wanted, nst.Table)
			}
		})
	})

	t.Run("matches case-insensitively", func(t *testing.T) {
		// ARRANGE
		err := errors.New(`NEAR "selekt": Syntax Error`)

		// ACT
		got := classifyExecute(sqlite, err)

		// ASSERT
		assertExpectedError(t, SQLSyntaxError{}, got)
	})

	t.Run("passes an unmatched failure through unchanged", func(t *testing.T) {
		// ARRANGE
		err := errors.New("database is locked")

		// ACT
		got := classifyExecute(sqlite, err)

		// ASSERT
		wanted := err
		if wanted != got {
			t.Errorf("\nwanted %#v\ngot    %#v", wanted, got)
		}
	})

	t.Run("missing-table pattern is file-backed only", func(t *testing.T) {
		// ARRANGE
		err := errors.New("no such table: albums")

		// ACT
		got := classifyExecute(Config{Dialect: PostgreSQL}, err)

		// ASSERT
		wanted := err
		if wanted != got {
			t.Errorf("\nwanted %#v\ngot    %#v", wanted, got)
		}
	})
}

func TestClassifyConnect(t *testing.T) {
	// ARRANGE
	testcases := []struct {
		name    string
		dialect Dialect
		msg     string
		matched bool
	}{
		{name: "postgresql auth rejection", dialect: PostgreSQL,
			msg: `pq: password authentication failed for user "alice"`, matched: true},
		{name: "mysql auth rejection", dialect: MySQL,
			msg: "Error 1045 (28000): Access denied for user 'alice'@'localhost'", matched: true},
		{name: "mssql auth rejection", dialect: MSSQL,
			msg: "mssql: Login failed for user 'alice'.", matched: true},
		{name: "unreachable host", dialect: PostgreSQL,
			msg: "dial tcp: connect: connection refused", matched: false},
		{name: "sqlite never authenticates", dialect: SQLite,
			msg: "password authentication failed", matched: false},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			// ARRANGE
			cfg := Config{Dialect: tc.dialect, Credentials: Credentials{User: "alice"}}
			err := errors.New(tc.msg)

			// ACT
			got, matched := classifyConnect(cfg, err)

			// ASSERT
			t.Run("reports a match", func(t *testing.T) {
				wanted := tc.matched
				if wanted != matched {
					t.Errorf("\nwanted %#v\ngot    %#v", wanted, matched)
				}
			})

			if tc.matched {
				assertExpectedError(t, WrongCredentialsError{}, got)

				t.Run("identifies the attempted user", func(t *testing.T) {
					wc := WrongCredentialsError{}
					if !errors.As(got, &wc) {
						t.Fatalf("expected WrongCredentialsError, got %T", got)
					}
					wanted := "alice"
					if wanted != wc.User {
						t.Errorf("\nwanted %#v\ngot    %#v", wanted, wc.User)
					}
				})
			} else {
				t.Run("returns the failure unchanged", func(t *testing.T) {
					wanted := err
					if wanted != got {
						t.Errorf("\nwanted %#v\ngot    %#v", wanted, got)
					}
				})
			}
		})
	}
}
