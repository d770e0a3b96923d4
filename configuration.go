package database

import (
	"database/sql"
	"time"

	"golang.org/x/exp/slices"
)

type SessionOption func(*session) error

// WithReplica adds a fallback Config to be used for establishing a
// connection when the primary (and any previously added replicas) cannot
// serve.  The replica is validated with the same rules as the primary.
//
// If the replica has already been added it is ignored.
//
// With replicas configured, if a ErrBadConn error is returned from the
// current connection it will be closed and the operation retried on a new
// connection, established from the next Config in rotation.
func WithReplica(cfg Config) SessionOption {
	return func(s *session) error {
		if s.db != nil {
			return ErrWithDBAndWithReplicaIsInvalid
		}
		if err := cfg.validate(); err != nil {
			return err
		}
		if !slices.Contains(s.replicas, cfg) {
			s.replicas = append(s.replicas, cfg)
		}
		return nil
	}
}

// WithDBOptions establishes a configuration function that is called
// whenever a connection is established.  This can be used to configure the
// database handle, for example to set the maximum number of open
// connections.
//
// Returns ErrWithDBAndWithDBOptionsIsInvalid if a database handle has
// already been injected.
func WithDBOptions(cfg func(*sql.DB) error) SessionOption {
	return func(s *session) error {
		if s.db != nil {
			return ErrWithDBAndWithDBOptionsIsInvalid
		}
		s.configure = cfg
		return nil
	}
}

// WithDB injects an established database handle, bypassing dialect
// resolution.  This is intended primarily for use when mocking a database
// for testing purposes.
//
// Returns ErrWithDBAndWithReplicaIsInvalid if any replicas have already
// been added.
//
// Returns ErrWithDBAndWithDBOptionsIsInvalid if a configuration function
// has been configured.  It is expected that when using WithDB the specified
// *sql.DB is already fully configured as required.
func WithDB(db *sql.DB) SessionOption {
	return func(s *session) error {
		if len(s.replicas) > 0 {
			return ErrWithDBAndWithReplicaIsInvalid
		}

		if s.configure != nil {
			return ErrWithDBAndWithDBOptionsIsInvalid
		}

		s.db = db
		s.injected = true

		return nil
	}
}

// WithPingTimeout sets the timeout for a ping operation.
func WithPingTimeout(t time.Duration) SessionOption {
	return func(s *session) error {
		if t < 0 {
			return ErrPingTimeoutIsInvalid
		}

		s.pingTimeout = t

		return nil
	}
}
