package database

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTx struct {
	statements []string
	committed  bool
	rolledBack bool
	commitErr  error
}

func (f *fakeTx) Exec(_ context.Context, sqlizer Sqlizer) (pgconn.CommandTag, error) {
	query, _, err := sqlizer.ToSql()
	if err != nil {
		return nil, err
	}
	f.statements = append(f.statements, query)
	return pgconn.CommandTag("SELECT 1"), nil
}

func (f *fakeTx) Get(context.Context, interface{}, Sqlizer) error {
	return pgx.ErrNoRows
}

func (f *fakeTx) Select(context.Context, interface{}, Sqlizer) error {
	return nil
}

func (f *fakeTx) ExecRaw(_ context.Context, sql string, _ ...interface{}) (pgconn.CommandTag, error) {
	f.statements = append(f.statements, sql)
	return pgconn.CommandTag("CREATE TABLE"), nil
}

func (f *fakeTx) Commit(context.Context) error {
	if f.commitErr != nil {
		return f.commitErr
	}
	f.committed = true
	return nil
}

func (f *fakeTx) Rollback(context.Context) error {
	if !f.committed {
		f.rolledBack = true
	}
	return nil
}

type fakeBeginner struct {
	tx  *fakeTx
	err error
}

func (f *fakeBeginner) BeginTx(context.Context, *pgx.TxOptions) (Tx, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.tx, nil
}

func TestInTx_Commits(t *testing.T) {
	db := &fakeBeginner{tx: &fakeTx{}}

	err := InTx(context.Background(), db, func(q Queryable) error {
		_, err := q.ExecRaw(context.Background(), "SELECT 1")
		return err
	})

	require.NoError(t, err)
	assert.True(t, db.tx.committed)
	assert.False(t, db.tx.rolledBack)
}

func TestInTx_RollsBackOnError(t *testing.T) {
	db := &fakeBeginner{tx: &fakeTx{}}
	boom := errors.New("boom")

	err := InTx(context.Background(), db, func(Queryable) error { return boom })

	assert.ErrorIs(t, err, boom)
	assert.False(t, db.tx.committed)
	assert.True(t, db.tx.rolledBack)
}

func TestInTx_CommitFailure(t *testing.T) {
	db := &fakeBeginner{tx: &fakeTx{commitErr: errors.New("connection reset")}}

	err := InTx(context.Background(), db, func(Queryable) error { return nil })

	assert.ErrorContains(t, err, "commit transaction")
	assert.True(t, db.tx.rolledBack)
}

func TestInTx_BeginFailure(t *testing.T) {
	called := false
	err := InTx(context.Background(), &fakeBeginner{err: errors.New("no connection")}, func(Queryable) error {
		called = true
		return nil
	})

	assert.Error(t, err)
	assert.False(t, called)
}

func TestMigrate_LocksThenCreates(t *testing.T) {
	db := &fakeBeginner{tx: &fakeTx{}}

	require.NoError(t, Migrate(context.Background(), db))

	require.Len(t, db.tx.statements, 2)
	assert.Equal(t, "SELECT pg_advisory_xact_lock(hashtext($1))", db.tx.statements[0])
	assert.Contains(t, db.tx.statements[1], "CREATE TABLE IF NOT EXISTS event_documents")
	assert.True(t, db.tx.committed)
}
