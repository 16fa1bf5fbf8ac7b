package events

import "github.com/SergeyKozhin/events-assistant/internal/database"

type Repository struct{}

func NewRepository() *Repository {
	return &Repository{}
}

var baseQuery = database.PSQL.
	Select(
		"name",
		"document",
		"updated_at",
	).
	From(database.EventDocumentsTable)
