package database

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

var PSQL = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const EventDocumentsTable = "event_documents"

const createEventDocumentsTable = `
CREATE TABLE IF NOT EXISTS ` + EventDocumentsTable + ` (
	name       text PRIMARY KEY,
	document   jsonb NOT NULL,
	updated_at timestamptz NOT NULL DEFAULT now()
)`

// AdvisoryLock takes a transaction scoped advisory lock named key.
func AdvisoryLock(key string) Sqlizer {
	return PSQL.Select().Column(sq.Expr("pg_advisory_xact_lock(hashtext(?))", key))
}

// Migrate creates the tables the application needs.
func Migrate(ctx context.Context, db Beginner) error {
	return InTx(ctx, db, func(q Queryable) error {
		if _, err := q.Exec(ctx, AdvisoryLock("migrations")); err != nil {
			return fmt.Errorf("lock migrations: %w", err)
		}

		if _, err := q.ExecRaw(ctx, createEventDocumentsTable); err != nil {
			return fmt.Errorf("create %s: %w", EventDocumentsTable, err)
		}

		return nil
	})
}
