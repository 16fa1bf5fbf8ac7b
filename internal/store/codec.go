package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/SergeyKozhin/events-assistant/internal/model"
)

type eventDTO struct {
	ID                    int64             `json:"id"`
	Name                  string            `json:"name"`
	Description           string            `json:"description"`
	Start                 string            `json:"start"`
	End                   string            `json:"end"`
	Cancelled             bool              `json:"cancelled"`
	Reminded24h           bool              `json:"reminded_24h"`
	Reminded1h            bool              `json:"reminded_1h"`
	Positions             map[string]string `json:"positions"`
	AnnouncementMessageID *string           `json:"announcement_message_id"`
}

// Layouts accepted when reading timestamps. Naive timestamps are UTC.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

func parseTime(v string) (time.Time, error) {
	for _, layout := range timeLayouts {
		t, err := time.ParseInLocation(layout, v, time.UTC)
		if err == nil {
			return t.UTC(), nil
		}
	}

	return time.Time{}, fmt.Errorf("unsupported time format %q", v)
}

func mapToEvent(dto *eventDTO) (*model.Event, error) {
	start, err := parseTime(dto.Start)
	if err != nil {
		return nil, fmt.Errorf("event %d start: %w", dto.ID, err)
	}
	end, err := parseTime(dto.End)
	if err != nil {
		return nil, fmt.Errorf("event %d end: %w", dto.ID, err)
	}

	positions := dto.Positions
	if positions == nil {
		positions = map[string]string{}
	}

	var ref string
	if dto.AnnouncementMessageID != nil {
		ref = *dto.AnnouncementMessageID
	}

	return &model.Event{
		ID:                    dto.ID,
		Cancelled:             dto.Cancelled,
		Reminded24h:           dto.Reminded24h,
		Reminded1h:            dto.Reminded1h,
		Positions:             positions,
		AnnouncementMessageID: ref,
		EventCreate: model.EventCreate{
			Name:        dto.Name,
			Description: dto.Description,
			Start:       start,
			End:         end,
		},
	}, nil
}

func mapToDTO(e *model.Event) *eventDTO {
	positions := e.Positions
	if positions == nil {
		positions = map[string]string{}
	}

	var ref *string
	if e.AnnouncementMessageID != "" {
		ref = &e.AnnouncementMessageID
	}

	return &eventDTO{
		ID:                    e.ID,
		Name:                  e.Name,
		Description:           e.Description,
		Start:                 e.Start.UTC().Format(time.RFC3339Nano),
		End:                   e.End.UTC().Format(time.RFC3339Nano),
		Cancelled:             e.Cancelled,
		Reminded24h:           e.Reminded24h,
		Reminded1h:            e.Reminded1h,
		Positions:             positions,
		AnnouncementMessageID: ref,
	}
}

// Decode parses a stored document. An empty document is an empty collection.
func Decode(data []byte) ([]*model.Event, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return []*model.Event{}, nil
	}

	var dtos []*eventDTO
	if err := json.Unmarshal(data, &dtos); err != nil {
		return nil, fmt.Errorf("decode events: %w", err)
	}

	res := make([]*model.Event, 0, len(dtos))
	for _, d := range dtos {
		if d == nil {
			continue
		}
		e, err := mapToEvent(d)
		if err != nil {
			return nil, fmt.Errorf("decode events: %w", err)
		}
		res = append(res, e)
	}

	return res, nil
}

// Encode serializes the whole collection. Output is stable: the same
// collection always encodes to the same bytes.
func Encode(events []*model.Event) ([]byte, error) {
	dtos := make([]*eventDTO, len(events))
	for i, e := range events {
		dtos[i] = mapToDTO(e)
	}

	data, err := json.MarshalIndent(dtos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode events: %w", err)
	}

	return append(data, '\n'), nil
}
