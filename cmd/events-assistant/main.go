package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/SergeyKozhin/events-assistant/internal/api"
	events_service "github.com/SergeyKozhin/events-assistant/internal/business/events"
	"github.com/SergeyKozhin/events-assistant/internal/commands"
	"github.com/SergeyKozhin/events-assistant/internal/config"
	"github.com/SergeyKozhin/events-assistant/internal/database"
	"github.com/SergeyKozhin/events-assistant/internal/database/events"
	"github.com/SergeyKozhin/events-assistant/internal/discord"
	"github.com/SergeyKozhin/events-assistant/internal/notifications"
	"github.com/SergeyKozhin/events-assistant/internal/pkg/fcm"
	"github.com/SergeyKozhin/events-assistant/internal/pkg/jwt"
	"github.com/SergeyKozhin/events-assistant/internal/redis"
	"github.com/SergeyKozhin/events-assistant/internal/render"
	"github.com/SergeyKozhin/events-assistant/internal/roster"
	"github.com/SergeyKozhin/events-assistant/internal/store"
	"github.com/bwmarrin/discordgo"
	"github.com/xlab/closer"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	ctx := context.Background()

	logger, err := initLogger()
	if err != nil {
		log.Fatalf("unable to initialize logger: %v", err)
	}

	if err := config.Validate(); err != nil {
		logger.Fatalw("invalid configuration", "err", err)
	}

	backend, err := initBackend(ctx, logger)
	if err != nil {
		logger.Fatalw("unable to initialize event store", "driver", config.StoreDriver(), "err", err)
	}
	eventStore := store.New(backend)
	eventsService := events_service.NewService(eventStore)

	session, err := discordgo.New("Bot " + config.DiscordToken())
	if err != nil {
		logger.Fatalw("unable to create discord session", "err", err)
	}
	session.Identify.Intents = discordgo.IntentsGuilds

	renderer := render.NewRenderer(config.FooterText(), config.EmbedColor())
	messenger := discord.NewMessenger(session, config.AnnouncementChannelID(), renderer)

	notifier := notifications.MultiNotifier{messenger}
	if config.FcmEnabled() {
		fcmService, err := fcm.NewService(ctx, config.FcmCredentialsFile())
		if err != nil {
			logger.Fatalw("unable to initialize fcm service", "err", err)
		}
		notifier = append(notifier, notifications.NewPushNotifier(fcmService, config.FcmTopic(), config.FcmTokens()))
	}

	synchronizer := roster.NewSynchronizer(eventsService, messenger, renderer, logger, config.RosterPrefix())
	commandsService := commands.NewService(eventsService, synchronizer, logger, config.EventsAdminRoleID())

	bot := discord.NewBot(session, commandsService, renderer, logger, config.DiscordGuildID())
	if err := bot.Open(); err != nil {
		logger.Fatalw("unable to connect to discord", "err", err)
	}
	closer.Bind(func() {
		if err := bot.Close(); err != nil {
			logger.Errorw("failed closing discord session", "err", err)
		}
	})

	if cleared, err := synchronizer.Sweep(ctx); err != nil {
		logger.Errorw("roster sweep failed", "err", err)
	} else {
		logger.Infow("roster sweep finished", "cleared", cleared)
	}

	scheduler := notifications.NewScheduler(eventStore, notifier, logger, config.ReminderInterval())
	go scheduler.Start(ctx)
	closer.Bind(scheduler.Stop)

	rotator, err := discord.NewStatusRotator(session, discord.DefaultActivities, logger, config.StatusRotation())
	if err != nil {
		logger.Fatalw("invalid status rotation schedule", "err", err)
	}
	rotator.Start()
	closer.Bind(rotator.Stop)

	if config.HTTPEnabled() {
		startServer(logger, commandsService)
	}

	logger.Infow("events assistant started", "store", config.StoreDriver())
	closer.Hold()
}

func initBackend(ctx context.Context, logger *zap.SugaredLogger) (store.Backend, error) {
	switch config.StoreDriver() {
	case config.StoreDriverRedis:
		pool := redis.NewRedisPool(config.RedisURL(), logger)
		return redis.NewEventsBackend(pool, config.RedisKey()), nil
	case config.StoreDriverPostgres:
		db, err := database.NewPGX(ctx, config.PostgresURL())
		if err != nil {
			return nil, err
		}
		if err := database.Migrate(ctx, db); err != nil {
			return nil, err
		}
		return events.NewBackend(db, events.NewRepository(), config.PostgresDocument()), nil
	case config.StoreDriverMemory:
		logger.Warnw("events are kept in memory and lost on restart")
		return store.NewMemoryBackend(), nil
	default:
		return store.NewFileBackend(config.EventsFile()), nil
	}
}

func startServer(logger *zap.SugaredLogger, commandsService *commands.Service) {
	jwts := jwt.NewManager(config.Secret(), config.JwtTTL())
	handler := api.NewApi(logger, jwts, commandsService)

	errLogger, err := zap.NewStdLogAt(logger.Desugar(), zap.ErrorLevel)
	if err != nil {
		logger.Fatalw("error initiating server logger", "err", err)
	}

	server := &http.Server{
		Addr:              ":" + config.Port(),
		Handler:           handler,
		ErrorLog:          errLogger,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Infow("Started server", "port", config.Port())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Errorw("server error", "err", err)
		}
	}()

	closer.Bind(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			logger.Errorw("failed shutting down server", "err", err)
		}
	})
}

func initLogger() (*zap.SugaredLogger, error) {
	var logger *zap.Logger
	var err error

	if config.Production() {
		logger, err = zap.NewProduction()
	} else {
		conf := zap.NewDevelopmentConfig()
		conf.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		logger, err = conf.Build()
	}

	if err != nil {
		return nil, err
	}

	closer.Bind(func() {
		_ = logger.Sync()
	})

	return logger.Sugar(), nil
}
