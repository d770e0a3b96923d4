package database

import (
	"context"
	"database/sql"
)

// Connector describes a dialect-specific connection descriptor: the name of
// the registered driver together with the connection string it accepts.
type Connector interface {
	ConnectionString() string
	Driver() string
}

type TransactMethod interface {
	Transact(context.Context, string, func(Transaction) error, *sql.TxOptions) error
}

type TransactionMethods interface {
	Exec(context.Context, string, ...any) (sql.Result, error)
	Prepare(context.Context, string) (*sql.Stmt, error)
	Query(context.Context, string, ...any) (*sql.Rows, error)
	QueryRow(context.Context, string, ...any) (*sql.Row, error)
}

type Transaction interface {
	TransactionMethods
	Statement(context.Context, *sql.Stmt) *sql.Stmt
}

// Session is a stateful facade over a single configured database.  A session
// is created disconnected; Connect must succeed before any other operation
// may be used.
type Session interface {
	Connect(context.Context) error
	Ping(context.Context) error
	Execute(context.Context, string) (*QueryResult, error)
	Exec(context.Context, string, ...any) (sql.Result, error)
	Commit(context.Context) error
	Rollback(context.Context) error
	Close() error
	TransactMethod
}
