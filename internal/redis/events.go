package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/gomodule/redigo/redis"
)

// EventsBackend stores the event document under a single key.
type EventsBackend struct {
	pool *redis.Pool
	key  string
}

func NewEventsBackend(pool *redis.Pool, key string) *EventsBackend {
	return &EventsBackend{
		pool: pool,
		key:  key,
	}
}

func (b *EventsBackend) Read(ctx context.Context) ([]byte, error) {
	conn, err := b.pool.GetContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("get connection: %w", err)
	}
	defer conn.Close()

	data, err := redis.Bytes(conn.Do("GET", b.key))
	if err != nil {
		if errors.Is(err, redis.ErrNil) {
			return nil, nil
		}
		return nil, fmt.Errorf("GET %s: %w", b.key, err)
	}

	return data, nil
}

func (b *EventsBackend) Write(ctx context.Context, data []byte) error {
	conn, err := b.pool.GetContext(ctx)
	if err != nil {
		return fmt.Errorf("get connection: %w", err)
	}
	defer conn.Close()

	if _, err := redis.String(conn.Do("SET", b.key, data)); err != nil {
		return fmt.Errorf("SET %s: %w", b.key, err)
	}

	return nil
}
