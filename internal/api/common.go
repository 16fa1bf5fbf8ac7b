package api

import (
	"time"

	"github.com/SergeyKozhin/events-assistant/internal/model"
)

type eventResp struct {
	ID                    int64             `json:"id"`
	Name                  string            `json:"name"`
	Description           string            `json:"description"`
	Start                 string            `json:"start"`
	End                   string            `json:"end"`
	Cancelled             bool              `json:"cancelled"`
	Reminded24h           bool              `json:"reminded_24h"`
	Reminded1h            bool              `json:"reminded_1h"`
	Positions             map[string]string `json:"positions"`
	AnnouncementMessageID string            `json:"announcement_message_id,omitempty"`
}

func mapToEventResp(event *model.Event) *eventResp {
	positions := event.Positions
	if positions == nil {
		positions = map[string]string{}
	}

	return &eventResp{
		ID:                    event.ID,
		Name:                  event.Name,
		Description:           event.Description,
		Start:                 event.Start.UTC().Format(time.RFC3339),
		End:                   event.End.UTC().Format(time.RFC3339),
		Cancelled:             event.Cancelled,
		Reminded24h:           event.Reminded24h,
		Reminded1h:            event.Reminded1h,
		Positions:             positions,
		AnnouncementMessageID: event.AnnouncementMessageID,
	}
}
