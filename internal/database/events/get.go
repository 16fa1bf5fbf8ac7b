package events

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/SergeyKozhin/events-assistant/internal/database"
	"github.com/jackc/pgx/v4"
)

// GetDocument returns nil when the named document does not exist yet.
func (*Repository) GetDocument(ctx context.Context, q database.Queryable, name string) ([]byte, error) {
	qb := baseQuery.
		Where(sq.Eq{"name": name})

	dto := &documentDTO{}
	if err := q.Get(ctx, dto, qb); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("SQL request: %w", err)
	}

	return dto.Document, nil
}
