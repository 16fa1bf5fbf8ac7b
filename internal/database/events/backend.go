package events

import (
	"context"
	"fmt"

	"github.com/SergeyKozhin/events-assistant/internal/database"
)

// Backend stores the event collection as one named jsonb document.
type Backend struct {
	db   database.PGX
	repo *Repository
	name string
}

func NewBackend(db database.PGX, repo *Repository, name string) *Backend {
	return &Backend{
		db:   db,
		repo: repo,
		name: name,
	}
}

func (b *Backend) Read(ctx context.Context) ([]byte, error) {
	data, err := b.repo.GetDocument(ctx, b.db, b.name)
	if err != nil {
		return nil, fmt.Errorf("repo.GetDocument: %w", err)
	}

	return data, nil
}

// Write replaces the document. Writers of the same document in other
// processes are serialized by an advisory lock.
func (b *Backend) Write(ctx context.Context, data []byte) error {
	return database.InTx(ctx, b.db, func(q database.Queryable) error {
		if err := b.repo.LockDocument(ctx, q, b.name); err != nil {
			return fmt.Errorf("repo.LockDocument: %w", err)
		}

		if err := b.repo.SaveDocument(ctx, q, b.name, data); err != nil {
			return fmt.Errorf("repo.SaveDocument: %w", err)
		}

		return nil
	})
}
