package database

import (
	"context"
	"fmt"

	"github.com/georgysavva/scany/pgxscan"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/xlab/closer"
)

type pool struct {
	pool *pgxpool.Pool
}

// NewPGX connects to postgres. The pool is closed on shutdown.
func NewPGX(ctx context.Context, url string) (PGX, error) {
	p, err := pgxpool.Connect(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.Connect: %w", err)
	}

	closer.Bind(p.Close)

	return &pool{pool: p}, nil
}

func (p *pool) BeginTx(ctx context.Context, txOptions *pgx.TxOptions) (Tx, error) {
	var opts pgx.TxOptions
	if txOptions != nil {
		opts = *txOptions
	}

	t, err := p.pool.BeginTx(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}

	return &tx{tx: t}, nil
}

func (p *pool) ExecRaw(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error) {
	return p.pool.Exec(ctx, sql, arguments...)
}

func (p *pool) Exec(ctx context.Context, sqlizer Sqlizer) (pgconn.CommandTag, error) {
	return execSqlizer(ctx, p.pool, sqlizer)
}

func (p *pool) Select(ctx context.Context, dst interface{}, sqlizer Sqlizer) error {
	return selectSqlizer(ctx, p.pool, dst, sqlizer)
}

func (p *pool) Get(ctx context.Context, dst interface{}, sqlizer Sqlizer) error {
	return getSqlizer(ctx, p.pool, dst, sqlizer)
}

type tx struct {
	tx pgx.Tx
}

func (t *tx) ExecRaw(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error) {
	return t.tx.Exec(ctx, sql, arguments...)
}

func (t *tx) Exec(ctx context.Context, sqlizer Sqlizer) (pgconn.CommandTag, error) {
	return execSqlizer(ctx, t.tx, sqlizer)
}

func (t *tx) Select(ctx context.Context, dst interface{}, sqlizer Sqlizer) error {
	return selectSqlizer(ctx, t.tx, dst, sqlizer)
}

func (t *tx) Get(ctx context.Context, dst interface{}, sqlizer Sqlizer) error {
	return getSqlizer(ctx, t.tx, dst, sqlizer)
}

func (t *tx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

func (t *tx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

// InTx runs fn in a transaction that is committed when fn succeeds and
// rolled back otherwise.
func InTx(ctx context.Context, db Beginner, fn func(q Queryable) error) error {
	t, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer t.Rollback(ctx)

	if err := fn(t); err != nil {
		return err
	}

	if err := t.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

func execSqlizer(ctx context.Context, e execer, sqlizer Sqlizer) (pgconn.CommandTag, error) {
	query, args, err := sqlizer.ToSql()
	if err != nil {
		return nil, fmt.Errorf("ToSql: %w", err)
	}

	return e.Exec(ctx, query, args...)
}

func selectSqlizer(ctx context.Context, q pgxscan.Querier, dst interface{}, sqlizer Sqlizer) error {
	query, args, err := sqlizer.ToSql()
	if err != nil {
		return fmt.Errorf("ToSql: %w", err)
	}

	return pgxscan.Select(ctx, q, dst, query, args...)
}

func getSqlizer(ctx context.Context, q pgxscan.Querier, dst interface{}, sqlizer Sqlizer) error {
	query, args, err := sqlizer.ToSql()
	if err != nil {
		return fmt.Errorf("ToSql: %w", err)
	}

	return pgxscan.Get(ctx, q, dst, query, args...)
}
