package redis

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/gomodule/redigo/redis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConn struct {
	mu   *sync.Mutex
	data map[string][]byte
	err  error
}

func (c *fakeConn) Close() error { return nil }
func (c *fakeConn) Err() error   { return nil }

func (c *fakeConn) Do(cmd string, args ...interface{}) (interface{}, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if cmd == "" {
		return nil, nil
	}
	if c.err != nil {
		return nil, c.err
	}

	switch cmd {
	case "GET":
		v, ok := c.data[args[0].(string)]
		if !ok {
			return nil, nil
		}
		return v, nil
	case "SET":
		c.data[args[0].(string)] = append([]byte(nil), args[1].([]byte)...)
		return "OK", nil
	}

	return nil, fmt.Errorf("unexpected command %s", cmd)
}

func (c *fakeConn) Send(string, ...interface{}) error { return nil }
func (c *fakeConn) Flush() error                      { return nil }
func (c *fakeConn) Receive() (interface{}, error)     { return nil, nil }

func newFakePool(conn *fakeConn) *redis.Pool {
	return &redis.Pool{
		DialContext: func(context.Context) (redis.Conn, error) {
			return conn, nil
		},
	}
}

func TestEventsBackend_ReadMissing(t *testing.T) {
	conn := &fakeConn{mu: &sync.Mutex{}, data: map[string][]byte{}}
	backend := NewEventsBackend(newFakePool(conn), "events")

	data, err := backend.Read(context.Background())

	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestEventsBackend_WriteThenRead(t *testing.T) {
	ctx := context.Background()
	conn := &fakeConn{mu: &sync.Mutex{}, data: map[string][]byte{}}
	backend := NewEventsBackend(newFakePool(conn), "events")

	require.NoError(t, backend.Write(ctx, []byte(`[]`)))
	data, err := backend.Read(ctx)

	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), data)
	assert.Contains(t, conn.data, "events")
}

func TestEventsBackend_WriteError(t *testing.T) {
	conn := &fakeConn{mu: &sync.Mutex{}, data: map[string][]byte{}, err: errors.New("connection refused")}
	backend := NewEventsBackend(newFakePool(conn), "events")

	err := backend.Write(context.Background(), []byte(`[]`))

	assert.Error(t, err)
}
