package database

import (
	"context"
	"database/sql"
	"errors"
	"runtime/debug"
	"time"
)

var PingTimeout = 500 * time.Millisecond

type session struct {
	config      Config              // the primary database configuration
	replicas    []Config            // optional failover configurations
	configs     []Config            // resolved rotation: primary followed by replicas
	connectors  []Connector         // connectors resolved from configs
	mru         int                 // the index of the most recently used (successfully connected) connector
	db          *sql.DB             // nil until Connect succeeds
	injected    bool                // db was injected with WithDB
	pingTimeout time.Duration
	configure   func(*sql.DB) error
	open        func(string, string) (*sql.DB, error)
	trymethod
}

// NewSession returns a disconnected session for the database described by
// the supplied Config.  The Config is validated before anything else; an
// invalid Config is rejected here, never deferred to Connect.
//
// The returned session must be connected with Connect before any other
// operation may be used.
func NewSession(cfg Config, opt ...SessionOption) (Session, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	s := &session{
		config: cfg,
		mru:    -1,
		open:   sql.Open,
	}

	// apply supplied session options
	for _, opt := range opt {
		if err := opt(s); err != nil {
			return nil, ConfigurationError{err}
		}
	}

	// set the try method according to whether there are replicas to
	// rotate onto when a connection goes bad
	if len(s.replicas) == 0 {
		s.trymethod = &noretry{s}
	} else {
		s.trymethod = &retry{s}
	}

	return s, nil
}

// Connect transitions the session to its connected state.  The primary
// Config and any replicas are resolved to dialect-specific connectors and a
// handle is opened from the first connector that serves; the handle is
// probed with a ping so that authentication failures surface now rather
// than on first use.
//
// If the probe reports an authentication rejection a WrongCredentialsError
// identifying the attempted username is returned and the session remains
// disconnected; replicas are not tried, since the credentials would be
// rejected there too.  Any other probe failure is collected per connector
// and, once all connectors have been tried, returned wrapped in a
// ConnectionFailedError.
//
// Calling Connect on an already connected session re-resolves the
// connectors and re-opens the handle, releasing the previous one.
func (s *session) Connect(ctx context.Context) error {
	if s.injected {
		return s.Ping(ctx)
	}

	s.close(true)

	configs := append([]Config{s.config}, s.replicas...)
	connectors := make([]Connector, len(configs))
	for i, cfg := range configs {
		cnc, err := ResolveConnector(cfg)
		if err != nil {
			return err
		}
		connectors[i] = cnc
	}
	s.configs = configs
	s.connectors = connectors

	return s.connectany(ctx)
}

// connectany attempts to connect using the resolved connectors, starting
// with the connector following the most recently connected connector or the
// first connector if no connection has yet been made.
//
// All connectors will be tried until a connection is established or all
// connectors have been tried.
//
// If no connection can be established then a ConnectionFailedError is
// returned, wrapping the errors from each failed connection attempt.
func (s *session) connectany(ctx context.Context) error {
	ix := s.mru
	connected := false

	errs := []error{}
	for i := 0; i < len(s.connectors); i++ {
		ix = (ix + 1) % len(s.connectors)
		cnc := s.connectors[ix]

		db, err := s.open(cnc.Driver(), cnc.ConnectionString())
		if err != nil {
			errs = append(errs, ConnectionError{cnc, "open db", err})
			continue
		}

		if err := db.PingContext(ctx); err != nil {
			db.Close()
			if werr, ok := classifyConnect(s.configs[ix], err); ok {
				return werr
			}
			errs = append(errs, ConnectionError{cnc, "ping", err})
			continue
		}

		s.db = db
		s.mru = ix
		connected = true
		break
	}

	if !connected {
		return ConnectionFailedError{errors.Join(errs...)}
	}

	if s.configure != nil {
		if err := s.configure(s.db); err != nil {
			return ConfigurationError{err}
		}
	}

	return nil
}

// engine returns the connection handle, or ErrNotConnected if the session
// has not (successfully) connected.  Every operation that touches the
// driver obtains the handle through this accessor, so the state check
// cannot be skipped and no I/O is attempted while disconnected.
func (s *session) engine() (*sql.DB, error) {
	if s.db == nil {
		return nil, ErrNotConnected
	}
	return s.db, nil
}

// reconnect closes the current connection (ignoring any error)
// and attempts to reconnect
func (s *session) reconnect(ctx context.Context) error {
	s.close(true)
	return s.connectany(ctx)
}

// close closes the current database connection, if one exists.
//
// If force is true then the function always returns nil, otherwise
// any error returned by the database Close method is returned.
func (s *session) close(force bool) error {
	if db := s.db; db != nil {
		s.db = nil
		if err := db.Close(); err != nil && !force {
			return err
		}
	}
	return nil
}

// Close closes the current database connection, if one exists.
func (s *session) Close() error {
	return s.close(false)
}

// Execute runs a sql statement, returning its fully materialised result.
//
// A transient connection is checked out of the pool for the duration of the
// call; columns and rows are captured while the cursor is open and the
// connection is released on every exit path.
//
// A failure reported by the driver is classified against the error
// taxonomy: a syntax problem is returned as a SQLSyntaxError, a missing
// table on a file-backed store as a NoSuchTableError.  A failure matching
// no known pattern is returned unchanged.
func (s *session) Execute(ctx context.Context, qry string) (*QueryResult, error) {
	if _, err := s.engine(); err != nil {
		return nil, err
	}

	var result *QueryResult
	err := s.try(ctx, func(db *sql.DB) error {
		rows, err := db.QueryContext(ctx, qry)
		if err != nil {
			return err
		}
		defer rows.Close()

		result, err = scanResult(rows)
		return err
	})
	if err != nil {
		return nil, classifyExecute(s.config, err)
	}

	return result, nil
}

// Exec executes a sql command or query returning a result (but no rows)
// and any error.
//
// If the session is configured with replicas and the current connection
// returns a driver.ErrBadConn error, the command will be retried on all
// connectors until it succeeds or all connectors have been tried.
//
// Driver failures are classified in the same way as for Execute.
func (s *session) Exec(ctx context.Context, cmd string, args ...any) (result sql.Result, err error) {
	if _, err = s.engine(); err != nil {
		return nil, err
	}

	err = s.try(ctx, func(db *sql.DB) error {
		result, err = db.ExecContext(ctx, cmd, args...)
		return err
	})
	if err != nil {
		return nil, classifyExecute(s.config, err)
	}
	return result, nil
}

// Ping verifies the connection to the database is still alive.  The Ping
// honors any configured PingTimeout on the session.  If not set on the
// session, the PingTimeout set at the package level is applied.
//
// If the session is configured with replicas and Ping returns
// driver.ErrBadConn, it will be retried on all connectors until it succeeds
// or all connectors have been tried.
func (s *session) Ping(ctx context.Context) error {
	if _, err := s.engine(); err != nil {
		return err
	}

	return s.try(ctx, func(db *sql.DB) error {
		t := s.pingTimeout
		if t == 0 {
			t = PingTimeout
		}

		ctx, cancel := context.WithTimeout(ctx, t)
		defer cancel()

		return db.PingContext(ctx)
	})
}

// Commit issues a commit over a transient connection scoped to the call.
//
// Handles obtained from the driver operate in autocommit mode, so the
// commit is expressed by opening a transaction on the transient connection
// and committing it immediately; the connection is released whatever the
// outcome.  Success is "did not fail".
func (s *session) Commit(ctx context.Context) error {
	return s.endTx(ctx, (*sql.Tx).Commit)
}

// Rollback issues a rollback over a transient connection scoped to the
// call; the connection is released whatever the outcome.
func (s *session) Rollback(ctx context.Context) error {
	return s.endTx(ctx, (*sql.Tx).Rollback)
}

func (s *session) endTx(ctx context.Context, end func(*sql.Tx) error) error {
	db, err := s.engine()
	if err != nil {
		return err
	}

	cn, err := db.Conn(ctx)
	if err != nil {
		return err
	}
	defer cn.Close()

	tx, err := cn.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	return end(tx)
}

// Transact starts a new transaction with a given name and executes the supplied
// function.  Any database operations performed within the function will be part
// of the transaction if they are performed using the supplied Transaction object.
//
// A transaction is automatically rolled back if the supplied function returns
// an error or panics.  If the supplied function returns nil then the transaction is
// committed.
//
// If the supplied function panics or returns an error or if any transaction
// control operation fails (begin, commit, rollback) then a TransactionError{} is
// returned, wrapping the error that occured.
//
// If a new transaction cannot be created due to a driver.ErrBadConn error and the
// session is configured with replicas, the begin transaction attempt will be
// retried on all connectors until it succeeds or all connectors have been tried.
func (s *session) Transact(ctx context.Context, name string, op func(tx Transaction) error, opts *sql.TxOptions) (err error) {
	if _, err = s.engine(); err != nil {
		return TransactionError{txn: name, op: "begin", error: err}
	}

	// the transaction is started using the 'try' func so that any
	// connection errors are handled by the retry mechanism.
	var tx *sql.Tx
	err = s.try(ctx, func(db *sql.DB) error {
		tx, err = db.BeginTx(ctx, opts)
		return err
	})
	if err != nil {
		return TransactionError{name, "begin", err}
	}

	// set a flag to indicate that we should rollback at exit and defer a call
	// which will rollback the transaction if the flag is still set
	rollback := true
	defer func() {
		if r := recover(); r != nil {
			err = TransactionError{name, "panic", errors.New(string(debug.Stack()))}
		}
		if !rollback {
			return
		}
		if txerr := tx.Rollback(); txerr != nil {
			err = errors.Join(err, TransactionError{name, "rollback", txerr})
		}
	}()

	// transaction operations are performed without using the 'try' func
	// since all transaction operations must be performed on the same
	// connection; a connection error on a transacted operation fails
	// the transaction.
	if err = op(&transaction{tx}); err != nil {
		return TransactionError{txn: name, error: err}
	}

	// we successfully completed the transaction; whatever happens now
	// the transaction will either be commited or will fail to commit and be
	// rolled back.  Either way, we should no longer rollback at exit
	rollback = false

	// commit the transaction
	if err = tx.Commit(); err != nil {
		return TransactionError{name, "commit", err}
	}

	return nil
}
