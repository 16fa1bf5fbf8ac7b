package discord

import (
	"fmt"
	"sync"

	"github.com/bwmarrin/discordgo"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DefaultActivities is the presence rotation of the assistant.
var DefaultActivities = []*discordgo.Activity{
	{Type: discordgo.ActivityTypeWatching, Name: "TRvACC events"},
	{Type: discordgo.ActivityTypeWatching, Name: "Turkish airspace"},
	{Type: discordgo.ActivityTypeGame, Name: "on VATSIM Türkiye"},
	{Type: discordgo.ActivityTypeListening, Name: "event briefings"},
}

type presenceUpdater interface {
	UpdateStatusComplex(usd discordgo.UpdateStatusData) error
}

// StatusRotator cycles the bot presence through a fixed list of activities.
type StatusRotator struct {
	presence   presenceUpdater
	activities []*discordgo.Activity
	logger     *zap.SugaredLogger
	cron       *cron.Cron

	mu   sync.Mutex
	next int
}

func NewStatusRotator(
	presence presenceUpdater,
	activities []*discordgo.Activity,
	logger *zap.SugaredLogger,
	schedule string,
) (*StatusRotator, error) {
	r := &StatusRotator{
		presence:   presence,
		activities: activities,
		logger:     logger,
		cron:       cron.New(),
	}

	if _, err := r.cron.AddFunc(schedule, r.Rotate); err != nil {
		return nil, fmt.Errorf("cron.AddFunc %q: %w", schedule, err)
	}

	return r, nil
}

// Start sets the first activity and schedules the rest.
func (r *StatusRotator) Start() {
	r.Rotate()
	r.cron.Start()
}

// Stop waits for a running rotation to finish.
func (r *StatusRotator) Stop() {
	<-r.cron.Stop().Done()
}

func (r *StatusRotator) Rotate() {
	if len(r.activities) == 0 {
		return
	}

	r.mu.Lock()
	activity := r.activities[r.next%len(r.activities)]
	r.next++
	r.mu.Unlock()

	err := r.presence.UpdateStatusComplex(discordgo.UpdateStatusData{
		Activities: []*discordgo.Activity{activity},
		Status:     string(discordgo.StatusOnline),
	})
	if err != nil {
		r.logger.Errorw("update status", "activity", activity.Name, "err", err)
	}
}
