package database

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

// testNetworkConfig returns a valid configuration for a network dialect.
func testNetworkConfig(t *testing.T, dialect Dialect) Config {
	t.Helper()

	cfg, err := NewConfig(dialect, "chinook",
		WithCredentials("alice", "wonderland"),
		WithHost("db.local"),
		WithPort(5432),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return cfg
}

// testSqliteConfig creates an empty store file in a test-scoped directory
// and returns a configuration referencing it.
func testSqliteConfig(t *testing.T) Config {
	t.Helper()

	path := filepath.Join(t.TempDir(), "chinook.db")
	if err := os.WriteFile(path, nil, 0o600); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg, err := NewConfig(SQLite, path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return cfg
}

// arrangeMultipleBadConnections sets up a session with multiple connectors
// where each connector is a bad connection.  It returns the mock database and
// the session.
func arrangeMultipleBadConnections() (*sql.DB, *session) {
	db := MockBadConnection()

	sut := &session{
		configs: []Config{{}, {}},
		connectors: []Connector{
			MockConnector("a bad connection"),
			MockConnector("another bad connection"),
		},
		open: func(string, string) (*sql.DB, error) { return db, nil },
		db:   db,
		mru:  0,
	}
	sut.trymethod = &retry{sut}

	return db, sut
}

// arrangeSessionTest sets up a connected session with a mock database using
// the noretry try method.  It returns the session, the mock database, and
// the sqlmock.Sqlmock.
//
// This helper is used in the arrange phase of tests for the session methods
// that operate over an established connection.
func arrangeSessionTest(cfg Config, setup func(sqlmock.Sqlmock)) (*session, *sql.DB, sqlmock.Sqlmock) {
	db, dbmock, _ := sqlmock.New()
	setup(dbmock)

	sut := &session{
		config: cfg,
		db:     db,
	}
	sut.trymethod = &noretry{sut}

	return sut, db, dbmock
}

// arrangeTransactionTest initialises a sqlmock database which is configured
// to expect a transaction to be started.  Additional mock expectations may be
// configured by passing a setup function which accepts the mock.
//
// After calling the setup function, a transaction is started on the mock
// database.  The function then returns the context, database, a transaction
// and the mock database.
//
// This helper is used in the arrange phase of tests for the methods of the
// transaction type.
func arrangeTransactionTest(t *testing.T, setup func(mock sqlmock.Sqlmock)) (context.Context, *sql.DB, *transaction, sqlmock.Sqlmock) {
	ctx := context.Background()

	db, dbmock, _ := sqlmock.New()
	dbmock.ExpectBegin()
	setup(dbmock)

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	return ctx, db, &transaction{tx}, dbmock
}

func assertExecResult(t *testing.T, wanted, got sql.Result) {
	t.Run("returns expected result", func(t *testing.T) {
		if wanted == nil {
			if wanted != got {
				t.Errorf("\nwanted %v\ngot    %v", wanted, got)
			}
			return
		}

		wantedLastInsertID, _ := wanted.LastInsertId()
		wantedRowsAffected, _ := wanted.RowsAffected()

		gotLastInsertID, _ := got.LastInsertId()
		gotRowsAffected, _ := got.RowsAffected()

		if wantedLastInsertID != gotLastInsertID || wantedRowsAffected != gotRowsAffected {
			t.Errorf("\nwanted\n  last insert id: %d\n  rows affected : %d\ngot\n  last insert id: %d\n  rows affected : %d",
				wantedLastInsertID, wantedRowsAffected, gotLastInsertID, gotRowsAffected)
		}
	})
}

func assertErrorIsNil(t *testing.T, err error) {
	t.Run("returns expected error", func(t *testing.T) {
		wanted := (error)(nil)
		got := err
		if wanted != got {
			t.Errorf("\nwanted %#v\ngot    %#v", wanted, got)
		}
	})
}

func assertExpectedError(t *testing.T, wanted error, got error) {
	t.Run("returns expected error", func(t *testing.T) {
		if !errors.Is(got, wanted) {
			t.Errorf("\nwanted %#v\ngot    %#v", wanted, got)
		}
	})
}

func assertExpectationsMet(t *testing.T, mock sqlmock.Sqlmock) {
	t.Run("mock expectations were met", func(t *testing.T) {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet expectations: %v", err)
		}
	})
}
