package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DBTX is the subset of pgx connection behavior the queries need.
// Both *pgxpool.Pool and pgx.Tx satisfy it, so the same query methods
// run standalone or inside a transaction.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

// Queries holds all database query methods bound to a connection or transaction.
type Queries struct {
	db DBTX
}

// New creates a Queries instance bound to the given connection.
func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// WithTx returns a Queries instance bound to the given transaction.
func (q *Queries) WithTx(tx pgx.Tx) *Queries {
	return &Queries{db: tx}
}

// Tx is an open database transaction. Queries() returns a Querier whose
// writes are invisible to other callers until Commit.
type Tx interface {
	Queries() Querier
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Store is the full persistence surface services depend on: every query
// plus the ability to open an atomic unit of work.
type Store interface {
	Querier
	BeginTx(ctx context.Context) (Tx, error)
}

// PgxStore implements Store on a pgx connection pool.
type PgxStore struct {
	*Queries
	pool *pgxpool.Pool
}

// NewStore creates a Store backed by the given pool.
func NewStore(pool *pgxpool.Pool) *PgxStore {
	return &PgxStore{
		Queries: New(pool),
		pool:    pool,
	}
}

// BeginTx opens a transaction on the pool.
func (s *PgxStore) BeginTx(ctx context.Context) (Tx, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	return &pgxTx{tx: tx, queries: New(tx)}, nil
}

type pgxTx struct {
	tx      pgx.Tx
	queries *Queries
}

func (t *pgxTx) Queries() Querier { return t.queries }

func (t *pgxTx) Commit(ctx context.Context) error { return t.tx.Commit(ctx) }

// Rollback is a no-op after Commit, so it is safe to defer unconditionally.
func (t *pgxTx) Rollback(ctx context.Context) error { return t.tx.Rollback(ctx) }
