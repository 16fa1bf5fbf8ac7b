package discord

import (
	"errors"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakePresence struct {
	updates []discordgo.UpdateStatusData
	err     error
}

func (p *fakePresence) UpdateStatusComplex(usd discordgo.UpdateStatusData) error {
	p.updates = append(p.updates, usd)
	return p.err
}

func TestStatusRotator_Cycles(t *testing.T) {
	presence := &fakePresence{}
	r, err := NewStatusRotator(presence, DefaultActivities, zap.NewNop().Sugar(), "@every 5m")
	require.NoError(t, err)

	for i := 0; i < len(DefaultActivities)+1; i++ {
		r.Rotate()
	}

	require.Len(t, presence.updates, 5)
	assert.Equal(t, "TRvACC events", presence.updates[0].Activities[0].Name)
	assert.Equal(t, discordgo.ActivityTypeGame, presence.updates[2].Activities[0].Type)
	assert.Equal(t, "TRvACC events", presence.updates[4].Activities[0].Name)
}

func TestStatusRotator_ErrorIsLogged(t *testing.T) {
	presence := &fakePresence{err: errors.New("not connected")}
	r, err := NewStatusRotator(presence, DefaultActivities, zap.NewNop().Sugar(), "@every 5m")
	require.NoError(t, err)

	assert.NotPanics(t, r.Rotate)
}

func TestStatusRotator_BadSchedule(t *testing.T) {
	_, err := NewStatusRotator(&fakePresence{}, DefaultActivities, zap.NewNop().Sugar(), "every now and then")
	assert.Error(t, err)
}

func TestStatusRotator_StartStop(t *testing.T) {
	presence := &fakePresence{}
	r, err := NewStatusRotator(presence, DefaultActivities, zap.NewNop().Sugar(), "@every 1h")
	require.NoError(t, err)

	r.Start()
	r.Stop()
	assert.Len(t, presence.updates, 1)
}
