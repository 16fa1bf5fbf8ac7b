package store_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/SergeyKozhin/events-assistant/internal/model"
	"github.com/SergeyKozhin/events-assistant/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEvents() []*model.Event {
	start := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	return []*model.Event{
		{
			ID:        1,
			Positions: map[string]string{"CTR": "alice", "APP": "bob"},
			EventCreate: model.EventCreate{
				Name:        "Istanbul FNO",
				Description: "Friday night ops",
				Start:       start,
				End:         start.Add(3 * time.Hour),
			},
		},
		{
			ID:                    2,
			Cancelled:             true,
			Reminded24h:           true,
			AnnouncementMessageID: "1234",
			Positions:             map[string]string{},
			EventCreate: model.EventCreate{
				Name:  "Ankara Overload",
				Start: start.Add(48 * time.Hour),
				End:   start.Add(50 * time.Hour),
			},
		},
	}
}

func TestStore_LoadAll_Empty(t *testing.T) {
	s := store.New(store.NewMemoryBackend())

	events, err := s.LoadAll(context.Background())

	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestStore_SaveAndLoad(t *testing.T) {
	ctx := context.Background()
	s := store.New(store.NewMemoryBackend())

	require.NoError(t, s.SaveAll(ctx, sampleEvents()))

	events, err := s.LoadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, sampleEvents(), events)
}

func TestStore_RoundTripIsStable(t *testing.T) {
	ctx := context.Background()
	backend := store.NewMemoryBackend()
	s := store.New(backend)
	require.NoError(t, s.SaveAll(ctx, sampleEvents()))
	before := backend.Bytes()

	events, err := s.LoadAll(ctx)
	require.NoError(t, err)
	require.NoError(t, s.SaveAll(ctx, events))

	assert.Equal(t, string(before), string(backend.Bytes()))
}

func TestStore_SaveFailureIsSurfaced(t *testing.T) {
	backend := store.NewMemoryBackend()
	backend.SetErr(errors.New("disk full"))
	s := store.New(backend)

	err := s.SaveAll(context.Background(), sampleEvents())

	assert.ErrorIs(t, err, model.ErrStorage)
}

func TestStore_Update_SkipSave(t *testing.T) {
	ctx := context.Background()
	backend := store.NewMemoryBackend()
	s := store.New(backend)

	err := s.Update(ctx, func(events []*model.Event) ([]*model.Event, bool, error) {
		return append(events, sampleEvents()...), false, nil
	})

	require.NoError(t, err)
	assert.Nil(t, backend.Bytes())
}

func TestStore_Update_PropagatesError(t *testing.T) {
	boom := errors.New("boom")
	s := store.New(store.NewMemoryBackend())

	err := s.Update(context.Background(), func(events []*model.Event) ([]*model.Event, bool, error) {
		return nil, true, boom
	})

	assert.ErrorIs(t, err, boom)
}

func TestStore_Update_Serialized(t *testing.T) {
	ctx := context.Background()
	s := store.New(store.NewMemoryBackend())

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.Update(ctx, func(events []*model.Event) ([]*model.Event, bool, error) {
				return append(events, &model.Event{ID: int64(len(events) + 1)}), true, nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	events, err := s.LoadAll(ctx)
	require.NoError(t, err)
	assert.Len(t, events, 50)
}

func TestDecode_DefaultsMissingFields(t *testing.T) {
	doc := `[{"id": 3, "name": "Legacy", "start": "2025-01-01T10:00", "end": "2025-01-01T12:00:00+00:00", "description": "", "cancelled": false}]`

	events, err := store.Decode([]byte(doc))

	require.NoError(t, err)
	require.Len(t, events, 1)
	e := events[0]
	assert.Equal(t, int64(3), e.ID)
	assert.False(t, e.Reminded24h)
	assert.False(t, e.Reminded1h)
	assert.NotNil(t, e.Positions)
	assert.Empty(t, e.Positions)
	assert.Empty(t, e.AnnouncementMessageID)
	assert.Equal(t, time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC), e.Start)
	assert.Equal(t, time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC), e.End)
}

func TestDecode_BadTime(t *testing.T) {
	_, err := store.Decode([]byte(`[{"id": 1, "start": "tomorrow", "end": "2025-01-01T12:00"}]`))

	assert.Error(t, err)
}

func TestFileBackend(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data", "events.json")
	backend := store.NewFileBackend(path)

	data, err := backend.Read(ctx)
	require.NoError(t, err)
	assert.Nil(t, data)

	s := store.New(backend)
	require.NoError(t, s.SaveAll(ctx, sampleEvents()))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	events, err := s.LoadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, sampleEvents(), events)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
