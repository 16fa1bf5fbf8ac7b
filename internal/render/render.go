// Package render turns events into platform neutral messages. It has no
// side effects; adapters convert the result into their own wire format.
package render

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/SergeyKozhin/events-assistant/internal/model"
)

const (
	TimeLayout      = "2006-01-02 15:04 UTC"
	DefaultPrefix   = "📅 Event"
	EmptyRosterText = "No signups yet."
)

type Field struct {
	Name   string
	Value  string
	Inline bool
}

type Message struct {
	Title       string
	Description string
	Fields      []Field
	Footer      string
	Color       int
	Timestamp   time.Time
}

type Renderer struct {
	Footer string
	Color  int
	Now    func() time.Time
}

func NewRenderer(footer string, color int) *Renderer {
	return &Renderer{
		Footer: footer,
		Color:  color,
		Now:    time.Now,
	}
}

// Event renders the event card used for info replies and reminders.
func (r *Renderer) Event(e *model.Event, prefix string) *Message {
	if prefix == "" {
		prefix = DefaultPrefix
	}

	return &Message{
		Title:       fmt.Sprintf("%s: %s", prefix, e.Name),
		Description: e.Description,
		Fields: []Field{
			{Name: "🕒 Start (UTC)", Value: e.Start.UTC().Format(TimeLayout), Inline: true},
			{Name: "🕓 End (UTC)", Value: e.End.UTC().Format(TimeLayout), Inline: true},
			{Name: "🆔 Event ID", Value: strconv.FormatInt(e.ID, 10), Inline: true},
		},
		Footer:    r.Footer,
		Color:     r.Color,
		Timestamp: r.Now().UTC(),
	}
}

// Roster renders the event card with the current position assignments.
func (r *Renderer) Roster(e *model.Event, prefix string) *Message {
	m := r.Event(e, prefix)
	m.Fields = append(m.Fields, Field{Name: "👥 Roster", Value: RosterText(e.Positions)})

	return m
}

// RosterText lists "position: participant" lines sorted by position.
func RosterText(positions map[string]string) string {
	if len(positions) == 0 {
		return EmptyRosterText
	}

	names := make([]string, 0, len(positions))
	for p := range positions {
		names = append(names, p)
	}
	sort.Strings(names)

	lines := make([]string, len(names))
	for i, p := range names {
		lines[i] = fmt.Sprintf("%s: %s", p, positions[p])
	}

	return strings.Join(lines, "\n")
}

// ListLine renders one row of the event list.
func ListLine(e *model.Event) string {
	return fmt.Sprintf("**%d** — %s (%s)", e.ID, e.Name, e.Start.UTC().Format(TimeLayout))
}
