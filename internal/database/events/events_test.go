package events

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/SergeyKozhin/events-assistant/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveDocumentQuery(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	sql, args, err := saveDocumentQuery("events", []byte(`[]`), now).ToSql()

	require.NoError(t, err)
	assert.Equal(t,
		"INSERT INTO event_documents (name,document,updated_at) VALUES ($1,$2,$3) "+
			"ON CONFLICT (name) DO UPDATE SET document = EXCLUDED.document, updated_at = EXCLUDED.updated_at",
		sql)
	assert.Equal(t, []interface{}{"events", "[]", now}, args)
}

func TestLockDocumentQuery(t *testing.T) {
	sql, args, err := database.AdvisoryLock(database.EventDocumentsTable + ":events").ToSql()

	require.NoError(t, err)
	assert.Equal(t, "SELECT pg_advisory_xact_lock(hashtext($1))", sql)
	assert.Equal(t, []interface{}{"event_documents:events"}, args)
}

func TestBackend_Integration(t *testing.T) {
	url := os.Getenv("POSTGRES_URL")
	if url == "" {
		t.Skip("POSTGRES_URL not set")
	}

	ctx := context.Background()
	db, err := database.NewPGX(ctx, url)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(ctx, db))

	name := "test-" + time.Now().Format("20060102150405.000000000")
	backend := NewBackend(db, NewRepository(), name)

	data, err := backend.Read(ctx)
	require.NoError(t, err)
	assert.Nil(t, data)

	require.NoError(t, backend.Write(ctx, []byte(`[{"id": 1}]`)))
	require.NoError(t, backend.Write(ctx, []byte(`[{"id": 2}]`)))

	data, err = backend.Read(ctx)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id": 2}]`, string(data))

	_, err = db.ExecRaw(ctx, "DELETE FROM "+database.EventDocumentsTable+" WHERE name = $1", name)
	require.NoError(t, err)
}
