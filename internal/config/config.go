package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env"
)

const (
	StoreDriverFile     = "file"
	StoreDriverMemory   = "memory"
	StoreDriverRedis    = "redis"
	StoreDriverPostgres = "postgres"
)

type config struct {
	Production            bool          `env:"PRODUCTION" envDefault:"false"`
	Port                  string        `env:"PORT" envDefault:"80"`
	HTTPEnabled           bool          `env:"HTTP_ENABLED" envDefault:"false"`
	Secret                string        `env:"SECRET"`
	JwtTTL                time.Duration `env:"TOKEN_TTL" envDefault:"720h"`
	DiscordToken          string        `env:"DISCORD_TOKEN"`
	DiscordGuildID        string        `env:"DISCORD_GUILD_ID"`
	EventsAdminRoleID     string        `env:"EVENTS_ADMIN_ROLE_ID"`
	AnnouncementChannelID string        `env:"ANNOUNCEMENT_CHANNEL_ID"`
	StoreDriver           string        `env:"STORE_DRIVER" envDefault:"file"`
	EventsFile            string        `env:"EVENTS_FILE" envDefault:"events.json"`
	RedisUrl              string        `env:"REDIS_URL" envDefault:"redis:6379"`
	RedisKey              string        `env:"REDIS_KEY" envDefault:"events-assistant:events"`
	PostgresUrl           string        `env:"POSTGRES_URL"`
	PostgresDocument      string        `env:"POSTGRES_DOCUMENT" envDefault:"events"`
	ReminderInterval      time.Duration `env:"REMINDER_INTERVAL" envDefault:"1m"`
	StatusRotation        string        `env:"STATUS_ROTATION" envDefault:"@every 5m"`
	EmbedColor            int           `env:"EMBED_COLOR" envDefault:"570570"`
	FooterText            string        `env:"FOOTER_TEXT" envDefault:"TRvACC Events Department"`
	RosterPrefix          string        `env:"ROSTER_PREFIX" envDefault:"📋 Roster"`
	FcmEnabled            bool          `env:"FCM_ENABLED" envDefault:"false"`
	FcmCredentialsFile    string        `env:"FCM_CREDENTIALS_FILE" envDefault:"secrets/firebase.json"`
	FcmTopic              string        `env:"FCM_TOPIC" envDefault:"events"`
	FcmTokens             []string      `env:"FCM_TOKENS" envSeparator:","`
}

var conf config

func init() {
	if err := env.Parse(&conf); err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
}

func Production() bool {
	return conf.Production
}

func Port() string {
	return conf.Port
}

func HTTPEnabled() bool {
	return conf.HTTPEnabled
}

func Secret() string {
	return conf.Secret
}

func JwtTTL() time.Duration {
	return conf.JwtTTL
}

func DiscordToken() string {
	return conf.DiscordToken
}

func DiscordGuildID() string {
	return conf.DiscordGuildID
}

func EventsAdminRoleID() string {
	return conf.EventsAdminRoleID
}

func AnnouncementChannelID() string {
	return conf.AnnouncementChannelID
}

func StoreDriver() string {
	return conf.StoreDriver
}

func EventsFile() string {
	return conf.EventsFile
}

func RedisURL() string {
	return conf.RedisUrl
}

func RedisKey() string {
	return conf.RedisKey
}

func PostgresURL() string {
	return conf.PostgresUrl
}

func PostgresDocument() string {
	return conf.PostgresDocument
}

func ReminderInterval() time.Duration {
	return conf.ReminderInterval
}

func StatusRotation() string {
	return conf.StatusRotation
}

func EmbedColor() int {
	return conf.EmbedColor
}

func FooterText() string {
	return conf.FooterText
}

func RosterPrefix() string {
	return conf.RosterPrefix
}

func FcmEnabled() bool {
	return conf.FcmEnabled
}

func FcmCredentialsFile() string {
	return conf.FcmCredentialsFile
}

func FcmTopic() string {
	return conf.FcmTopic
}

func FcmTokens() []string {
	return conf.FcmTokens
}

// Validate reports the settings the assistant cannot start without.
func Validate() error {
	switch {
	case conf.DiscordToken == "":
		return fmt.Errorf("DISCORD_TOKEN must be set")
	case conf.AnnouncementChannelID == "":
		return fmt.Errorf("ANNOUNCEMENT_CHANNEL_ID must be set")
	case conf.EventsAdminRoleID == "":
		return fmt.Errorf("EVENTS_ADMIN_ROLE_ID must be set")
	case conf.HTTPEnabled && conf.Secret == "":
		return fmt.Errorf("SECRET must be set when HTTP_ENABLED is true")
	}

	switch conf.StoreDriver {
	case StoreDriverFile, StoreDriverMemory, StoreDriverRedis:
	case StoreDriverPostgres:
		if conf.PostgresUrl == "" {
			return fmt.Errorf("POSTGRES_URL must be set for the postgres store")
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", conf.StoreDriver)
	}

	return nil
}
