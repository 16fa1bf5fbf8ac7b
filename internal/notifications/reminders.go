package notifications

import (
	"time"

	"github.com/SergeyKozhin/events-assistant/internal/model"
)

// reminderTolerance is half the width of the window around each lead time.
// The window must be wider than the tick interval, otherwise an event can
// slip between two ticks without ever being inside it.
const reminderTolerance = time.Minute

type reminder struct {
	name      string
	lead      time.Duration
	tolerance time.Duration
	prefix    string
	sent      func(e *model.Event) bool
	mark      func(e *model.Event)
}

var reminders = []reminder{
	{
		name:      "24h",
		lead:      24 * time.Hour,
		tolerance: reminderTolerance,
		prefix:    "⏰ Event starts in 24 hours",
		sent:      func(e *model.Event) bool { return e.Reminded24h },
		mark:      func(e *model.Event) { e.Reminded24h = true },
	},
	{
		name:      "1h",
		lead:      time.Hour,
		tolerance: reminderTolerance,
		prefix:    "⏰ Event starts in 1 hour",
		sent:      func(e *model.Event) bool { return e.Reminded1h },
		mark:      func(e *model.Event) { e.Reminded1h = true },
	},
}

// due reports whether delta, the time left until the start, lies strictly
// inside the window.
func (r reminder) due(delta time.Duration) bool {
	return delta > r.lead-r.tolerance && delta < r.lead+r.tolerance
}
