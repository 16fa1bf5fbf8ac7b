package model

import "time"

type EventCreate struct {
	Name        string
	Description string
	Start       time.Time
	End         time.Time
}

type Event struct {
	ID          int64
	Cancelled   bool
	Reminded24h bool
	Reminded1h  bool
	// Positions maps a position name to the participant holding it.
	Positions map[string]string
	// AnnouncementMessageID references the roster message in the
	// announcement channel. Empty until the first signup is posted.
	AnnouncementMessageID string
	EventCreate
}

// Clone returns a deep copy so callers can use the event outside of the
// store lock.
func (e *Event) Clone() *Event {
	c := *e
	c.Positions = make(map[string]string, len(e.Positions))
	for k, v := range e.Positions {
		c.Positions[k] = v
	}

	return &c
}

// Identity is the acting user of a command.
type Identity struct {
	ID          string
	DisplayName string
	Roles       []string
}

func (i Identity) HasRole(role string) bool {
	for _, r := range i.Roles {
		if r == role {
			return true
		}
	}

	return false
}
