package database

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Querier is the subset of pgx shared by *pgxpool.Pool, *pgxpool.Conn and
// pgx.Tx. Repository statements are written against it so the same code runs
// on a pooled connection or inside a transaction.
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Beginner starts transactions. *pgxpool.Pool satisfies it.
type Beginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// WithConn checks a connection out of the pool for the duration of fn and
// returns it on every exit path, including panics inside fn.
func WithConn(ctx context.Context, pool *pgxpool.Pool, fn func(q Querier) error) error {
	return pool.AcquireFunc(ctx, func(conn *pgxpool.Conn) error {
		return fn(conn)
	})
}

// WithTx runs fn inside a transaction. The transaction commits when fn
// returns nil and rolls back otherwise; the underlying connection goes back
// to the pool either way.
func WithTx(ctx context.Context, db Beginner, fn func(tx pgx.Tx) error) error {
	return pgx.BeginFunc(ctx, db, fn)
}
