package fcm

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go"
	"firebase.google.com/go/messaging"
	"golang.org/x/sync/errgroup"
	"google.golang.org/api/option"
)

type Service struct {
	client *messaging.Client
}

// NewService builds a messaging client. An empty credentialsFile falls back
// to application default credentials.
func NewService(ctx context.Context, credentialsFile string) (*Service, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	app, err := firebase.NewApp(ctx, nil, opts...)
	if err != nil {
		return nil, fmt.Errorf("init firebase app: %w", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("obtaining messaging client: %w", err)
	}

	return &Service{client: client}, nil
}

// Message targets either a device Token or a Topic.
type Message struct {
	Token string
	Topic string
	Title string
	Body  string
	Data  map[string]string
}

func toMessaging(m *Message) *messaging.Message {
	return &messaging.Message{
		Data:  m.Data,
		Token: m.Token,
		Topic: m.Topic,
		Notification: &messaging.Notification{
			Title: m.Title,
			Body:  m.Body,
		},
	}
}

func (s *Service) SendMessage(ctx context.Context, m *Message) error {
	_, err := s.client.Send(ctx, toMessaging(m))
	if err != nil {
		return fmt.Errorf("send message: %w", err)
	}

	return nil
}

const batchSize = 500

func (s *Service) SendMessageBatch(ctx context.Context, ms []*Message) error {
	messages := make([]*messaging.Message, len(ms))
	for i, m := range ms {
		messages[i] = toMessaging(m)
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, batch := range batches(messages, batchSize) {
		batch := batch
		g.Go(func() error {
			resp, err := s.client.SendAll(ctx, batch)
			if err != nil {
				return fmt.Errorf("send message: %w", err)
			}
			if resp.FailureCount > 0 {
				return fmt.Errorf("send message: %d of %d failed", resp.FailureCount, len(batch))
			}
			return nil
		})
	}

	return g.Wait()
}

func batches[T any](items []T, size int) [][]T {
	var res [][]T
	for i := 0; i < len(items); i += size {
		to := i + size
		if to > len(items) {
			to = len(items)
		}
		res = append(res, items[i:to])
	}

	return res
}
