package discord

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/SergeyKozhin/events-assistant/internal/commands"
	"github.com/SergeyKozhin/events-assistant/internal/model"
	"github.com/SergeyKozhin/events-assistant/internal/render"
	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Bot answers the slash commands of the guild.
type Bot struct {
	session  *discordgo.Session
	commands commandService
	renderer *render.Renderer
	logger   *zap.SugaredLogger
	guildID  string
	latency  func() time.Duration
}

type commandService interface {
	Authorize(who model.Identity) error
	ListEvents(ctx context.Context) ([]*model.Event, error)
	GetEvent(ctx context.Context, id int64) (*model.Event, error)
	CreateEvent(ctx context.Context, who model.Identity, info *model.EventCreate) (*model.Event, error)
	DeleteEvent(ctx context.Context, who model.Identity, id int64) error
	CancelEvent(ctx context.Context, who model.Identity, id int64) (*model.Event, error)
	Signup(ctx context.Context, who model.Identity, eventID int64, position string) (*model.Event, error)
}

func NewBot(
	session *discordgo.Session,
	commands commandService,
	renderer *render.Renderer,
	logger *zap.SugaredLogger,
	guildID string,
) *Bot {
	return &Bot{
		session:  session,
		commands: commands,
		renderer: renderer,
		logger:   logger,
		guildID:  guildID,
		latency:  session.HeartbeatLatency,
	}
}

// Open connects to the gateway and registers the slash commands.
func (b *Bot) Open() error {
	b.session.AddHandler(b.onInteraction)

	if err := b.session.Open(); err != nil {
		return fmt.Errorf("session.Open: %w", err)
	}

	b.logger.Infow("logged in", "user", b.session.State.User.String())

	registered, err := b.session.ApplicationCommandBulkOverwrite(b.session.State.User.ID, b.guildID, Commands)
	if err != nil {
		return fmt.Errorf("session.ApplicationCommandBulkOverwrite: %w", err)
	}

	b.logger.Infow("slash commands synced", "count", len(registered))

	return nil
}

func (b *Bot) Close() error {
	return b.session.Close()
}

func (b *Bot) onInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	data := i.ApplicationCommandData()
	who := identity(i.Interaction)
	logger := b.logger.With("request_id", uuid.NewString(), "command", data.Name, "user_id", who.ID)

	r := b.execute(context.Background(), logger, who, data.Name, optionMap(data.Options))

	if err := s.InteractionRespond(i.Interaction, r.response()); err != nil {
		logger.Errorw("respond to interaction", "err", err)
	}
}

// reply is the answer to a command before it is put on the wire.
type reply struct {
	content   string
	embed     *render.Message
	ephemeral bool
}

func (r reply) response() *discordgo.InteractionResponse {
	data := &discordgo.InteractionResponseData{Content: r.content}
	if r.embed != nil {
		data.Embeds = []*discordgo.MessageEmbed{Embed(r.embed)}
	}
	if r.ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}

	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	}
}

type options map[string]*discordgo.ApplicationCommandInteractionDataOption

func optionMap(opts []*discordgo.ApplicationCommandInteractionDataOption) options {
	m := make(options, len(opts))
	for _, opt := range opts {
		m[opt.Name] = opt
	}

	return m
}

func (o options) intValue(name string) int64 {
	if opt, ok := o[name]; ok && opt.Type == discordgo.ApplicationCommandOptionInteger {
		return opt.IntValue()
	}

	return 0
}

func (o options) stringValue(name string) string {
	if opt, ok := o[name]; ok && opt.Type == discordgo.ApplicationCommandOptionString {
		return strings.TrimSpace(opt.StringValue())
	}

	return ""
}

func (b *Bot) execute(ctx context.Context, logger *zap.SugaredLogger, who model.Identity, name string, opts options) reply {
	switch name {
	case "ping":
		return reply{content: fmt.Sprintf("🏓 Pong! `%dms`", b.latency().Milliseconds())}
	case "help":
		return reply{content: helpText}
	case "event_list":
		events, err := b.commands.ListEvents(ctx)
		if err != nil {
			return failure(logger, err)
		}
		if len(events) == 0 {
			return reply{content: "No upcoming events."}
		}
		lines := make([]string, len(events))
		for i, e := range events {
			lines[i] = render.ListLine(e)
		}
		return reply{content: strings.Join(lines, "\n")}
	case "event_info":
		event, err := b.commands.GetEvent(ctx, opts.intValue(optionEventID))
		if err != nil {
			return failure(logger, err)
		}
		return reply{embed: b.renderer.Event(event, "")}
	case "event_create":
		if err := b.commands.Authorize(who); err != nil {
			return failure(logger, err)
		}
		start, end, err := commands.ParseRange(opts.stringValue(optionStart), opts.stringValue(optionEnd))
		if err != nil {
			return failure(logger, err)
		}
		event, err := b.commands.CreateEvent(ctx, who, &model.EventCreate{
			Name:        opts.stringValue(optionName),
			Description: opts.stringValue(optionDescription),
			Start:       start,
			End:         end,
		})
		if err != nil {
			return failure(logger, err)
		}
		return reply{content: "✅ Event created successfully.", embed: b.renderer.Event(event, "")}
	case "event_delete":
		if err := b.commands.DeleteEvent(ctx, who, opts.intValue(optionEventID)); err != nil {
			return failure(logger, err)
		}
		return reply{content: "🗑️ Event deleted."}
	case "event_cancel":
		event, err := b.commands.CancelEvent(ctx, who, opts.intValue(optionEventID))
		if err != nil {
			return failure(logger, err)
		}
		return reply{content: "🚫 Event cancelled.", embed: b.renderer.Event(event, "")}
	case "event_signup":
		position := opts.stringValue(optionPosition)
		event, err := b.commands.Signup(ctx, who, opts.intValue(optionEventID), position)
		if err != nil && (event == nil || !errors.Is(err, model.ErrDelivery)) {
			return failure(logger, err)
		}
		if err != nil {
			logger.Errorw("signup roster delivery", "event_id", event.ID, "err", err)
			return reply{content: commands.UserMessage(err), ephemeral: true}
		}
		return reply{content: fmt.Sprintf("✅ Signed up as **%s** for **%s**.", position, event.Name)}
	default:
		logger.Warnw("unknown command")
		return reply{content: commands.MessageError, ephemeral: true}
	}
}

func failure(logger *zap.SugaredLogger, err error) reply {
	switch {
	case errors.Is(err, model.ErrNoRecord), errors.Is(err, model.ErrValidation):
		logger.Debugw("command rejected", "err", err)
		return reply{content: commands.UserMessage(err)}
	case errors.Is(err, model.ErrForbidden):
		logger.Infow("command forbidden")
		return reply{content: commands.UserMessage(err), ephemeral: true}
	default:
		logger.Errorw("command failed", "err", err)
		return reply{content: commands.UserMessage(err), ephemeral: true}
	}
}

// identity resolves the acting user and, inside a guild, their roles.
func identity(i *discordgo.Interaction) model.Identity {
	if i.Member != nil && i.Member.User != nil {
		name := i.Member.Nick
		if name == "" {
			name = i.Member.User.Username
		}
		return model.Identity{
			ID:          i.Member.User.ID,
			DisplayName: name,
			Roles:       i.Member.Roles,
		}
	}
	if i.User != nil {
		return model.Identity{ID: i.User.ID, DisplayName: i.User.Username}
	}

	return model.Identity{}
}
