package events_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SergeyKozhin/events-assistant/internal/business/events"
	"github.com/SergeyKozhin/events-assistant/internal/model"
	"github.com/SergeyKozhin/events-assistant/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var start = time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)

func newService(t *testing.T) (*events.Service, *store.MemoryBackend) {
	t.Helper()
	backend := store.NewMemoryBackend()
	return events.NewService(store.New(backend)), backend
}

func create(t *testing.T, s *events.Service, name string) *model.Event {
	t.Helper()
	e, err := s.CreateEvent(context.Background(), &model.EventCreate{
		Name:        name,
		Description: "desc",
		Start:       start,
		End:         start.Add(2 * time.Hour),
	})
	require.NoError(t, err)
	return e
}

func TestService_CreateEvent(t *testing.T) {
	s, _ := newService(t)

	e := create(t, s, "FNO")

	assert.Equal(t, int64(1), e.ID)
	assert.False(t, e.Cancelled)
	assert.False(t, e.Reminded24h)
	assert.False(t, e.Reminded1h)
	assert.Empty(t, e.Positions)
	assert.Empty(t, e.AnnouncementMessageID)
}

func TestService_CreateEvent_IDAllocation(t *testing.T) {
	ctx := context.Background()
	s, _ := newService(t)

	assert.Equal(t, int64(1), create(t, s, "one").ID)
	assert.Equal(t, int64(2), create(t, s, "two").ID)
	assert.Equal(t, int64(3), create(t, s, "three").ID)

	removed, err := s.DeleteEvent(ctx, 2)
	require.NoError(t, err)
	assert.True(t, removed)

	assert.Equal(t, int64(4), create(t, s, "four").ID)
}

func TestService_CreateEvent_InvertedRange(t *testing.T) {
	s, backend := newService(t)

	_, err := s.CreateEvent(context.Background(), &model.EventCreate{
		Name:  "backwards",
		Start: time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC),
	})

	assert.ErrorIs(t, err, model.ErrValidation)
	assert.Nil(t, backend.Bytes())
}

func TestService_CreateEvent_StorageError(t *testing.T) {
	s, backend := newService(t)
	backend.SetErr(errors.New("disk full"))

	_, err := s.CreateEvent(context.Background(), &model.EventCreate{
		Name:  "FNO",
		Start: start,
		End:   start.Add(time.Hour),
	})

	assert.ErrorIs(t, err, model.ErrStorage)
}

func TestService_DeleteEvent_Idempotent(t *testing.T) {
	ctx := context.Background()
	s, backend := newService(t)
	create(t, s, "keep")
	before := backend.Bytes()

	removed, err := s.DeleteEvent(ctx, 42)
	require.NoError(t, err)
	assert.False(t, removed)

	removed, err = s.DeleteEvent(ctx, 42)
	require.NoError(t, err)
	assert.False(t, removed)

	assert.Equal(t, string(before), string(backend.Bytes()))
}

func TestService_GetEventByID(t *testing.T) {
	ctx := context.Background()
	s, _ := newService(t)
	created := create(t, s, "FNO")

	e, err := s.GetEventByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, e)

	_, err = s.GetEventByID(ctx, 99)
	assert.ErrorIs(t, err, model.ErrNoRecord)
}

func TestService_GetEvents_SkipsCancelled(t *testing.T) {
	ctx := context.Background()
	s, _ := newService(t)
	create(t, s, "first")
	second := create(t, s, "second")
	create(t, s, "third")

	cancelled, err := s.CancelEvent(ctx, second.ID)
	require.NoError(t, err)
	assert.True(t, cancelled.Cancelled)

	list, err := s.GetEvents(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "first", list[0].Name)
	assert.Equal(t, "third", list[1].Name)

	// cancelled events remain addressable by id
	e, err := s.GetEventByID(ctx, second.ID)
	require.NoError(t, err)
	assert.True(t, e.Cancelled)
}

func TestService_SetPosition_Overwrites(t *testing.T) {
	ctx := context.Background()
	s, _ := newService(t)
	e := create(t, s, "FNO")

	_, err := s.SetPosition(ctx, e.ID, "CTR", "alice")
	require.NoError(t, err)
	updated, err := s.SetPosition(ctx, e.ID, "CTR", "bob")
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"CTR": "bob"}, updated.Positions)

	stored, err := s.GetEventByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"CTR": "bob"}, stored.Positions)
}

func TestService_SetPosition_NotFound(t *testing.T) {
	s, _ := newService(t)

	_, err := s.SetPosition(context.Background(), 7, "CTR", "alice")

	assert.ErrorIs(t, err, model.ErrNoRecord)
}

func TestService_SetAnnouncement(t *testing.T) {
	ctx := context.Background()
	s, _ := newService(t)
	e := create(t, s, "FNO")

	updated, err := s.SetAnnouncement(ctx, e.ID, "msg-1")
	require.NoError(t, err)
	assert.Equal(t, "msg-1", updated.AnnouncementMessageID)

	updated, err = s.SetAnnouncement(ctx, e.ID, "")
	require.NoError(t, err)
	assert.Empty(t, updated.AnnouncementMessageID)
}

func TestService_GetAllEvents_IncludesCancelled(t *testing.T) {
	ctx := context.Background()
	s, _ := newService(t)
	create(t, s, "first")
	second := create(t, s, "second")
	_, err := s.CancelEvent(ctx, second.ID)
	require.NoError(t, err)

	all, err := s.GetAllEvents(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.True(t, all[1].Cancelled)
}
