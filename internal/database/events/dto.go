package events

import "time"

type documentDTO struct {
	Name      string
	Document  []byte
	UpdatedAt time.Time
}
