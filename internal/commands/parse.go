package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/SergeyKozhin/events-assistant/internal/model"
)

var inputLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ParseTime reads a user supplied UTC timestamp.
func ParseTime(field, v string) (time.Time, error) {
	v = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(v), "UTC"))
	for _, layout := range inputLayouts {
		t, err := time.ParseInLocation(layout, v, time.UTC)
		if err == nil {
			return t.UTC(), nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: %s must look like 2025-01-31 18:00 (UTC)", model.ErrValidation, field)
}

// ParseRange reads the start and end of an event.
func ParseRange(startValue, endValue string) (time.Time, time.Time, error) {
	start, err := ParseTime("start", startValue)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := ParseTime("end", endValue)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	return start, end, nil
}
