package notifications

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/SergeyKozhin/events-assistant/internal/model"
	"github.com/SergeyKozhin/events-assistant/internal/pkg/fcm"
)

// MultiNotifier announces through every notifier and joins their errors.
type MultiNotifier []Notifier

func (m MultiNotifier) Announce(ctx context.Context, event *model.Event, prefix string) error {
	var errs []error
	for _, n := range m {
		if err := n.Announce(ctx, event, prefix); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

type fcmService interface {
	SendMessage(ctx context.Context, m *fcm.Message) error
	SendMessageBatch(ctx context.Context, ms []*fcm.Message) error
}

// PushNotifier mirrors announcements to mobile devices, either through a
// topic, a fixed list of device tokens, or both.
type PushNotifier struct {
	fcm    fcmService
	topic  string
	tokens []string
}

func NewPushNotifier(fcm fcmService, topic string, tokens []string) *PushNotifier {
	return &PushNotifier{
		fcm:    fcm,
		topic:  topic,
		tokens: tokens,
	}
}

func (p *PushNotifier) Announce(ctx context.Context, event *model.Event, prefix string) error {
	data := map[string]string{
		"event_id":    strconv.FormatInt(event.ID, 10),
		"event_title": event.Name,
		"event_start": event.Start.UTC().Format(time.RFC3339),
	}
	body := fmt.Sprintf("%s (%s UTC)", event.Name, event.Start.UTC().Format("2006-01-02 15:04"))

	if p.topic != "" {
		if err := p.fcm.SendMessage(ctx, &fcm.Message{
			Topic: p.topic,
			Title: prefix,
			Body:  body,
			Data:  data,
		}); err != nil {
			return fmt.Errorf("%w: push to topic %s: %v", model.ErrDelivery, p.topic, err)
		}
	}

	if len(p.tokens) == 0 {
		return nil
	}

	messages := make([]*fcm.Message, len(p.tokens))
	for i, t := range p.tokens {
		messages[i] = &fcm.Message{
			Token: t,
			Title: prefix,
			Body:  body,
			Data:  data,
		}
	}

	if err := p.fcm.SendMessageBatch(ctx, messages); err != nil {
		return fmt.Errorf("%w: push to devices: %v", model.ErrDelivery, err)
	}

	return nil
}
