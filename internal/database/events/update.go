package events

import (
	"context"
	"fmt"
	"time"

	"github.com/SergeyKozhin/events-assistant/internal/database"
)

func saveDocumentQuery(name string, data []byte, now time.Time) database.Sqlizer {
	return database.PSQL.
		Insert(database.EventDocumentsTable).
		Columns(
			"name",
			"document",
			"updated_at",
		).
		Values(
			name,
			string(data),
			now,
		).
		Suffix("ON CONFLICT (name) DO UPDATE SET document = EXCLUDED.document, updated_at = EXCLUDED.updated_at")
}

func (*Repository) SaveDocument(ctx context.Context, q database.Queryable, name string, data []byte) error {
	if _, err := q.Exec(ctx, saveDocumentQuery(name, data, time.Now().UTC())); err != nil {
		return fmt.Errorf("SQL request: %w", err)
	}

	return nil
}

// LockDocument blocks other writers of the named document until the
// surrounding transaction ends.
func (*Repository) LockDocument(ctx context.Context, q database.Queryable, name string) error {
	if _, err := q.Exec(ctx, database.AdvisoryLock(database.EventDocumentsTable+":"+name)); err != nil {
		return fmt.Errorf("SQL request: %w", err)
	}

	return nil
}
