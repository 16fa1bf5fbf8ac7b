package discord

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SergeyKozhin/events-assistant/internal/model"
	"github.com/SergeyKozhin/events-assistant/internal/render"
	"github.com/bwmarrin/discordgo"
)

// Messenger posts, edits and looks up messages in the announcement channel.
type Messenger struct {
	channel   channelAPI
	channelID string
	renderer  *render.Renderer
}

type channelAPI interface {
	SendEmbed(channelID string, embed *discordgo.MessageEmbed) (*discordgo.Message, error)
	EditEmbed(channelID, messageID string, embed *discordgo.MessageEmbed) (*discordgo.Message, error)
	Message(channelID, messageID string) (*discordgo.Message, error)
}

type sessionChannel struct {
	session *discordgo.Session
}

func (c sessionChannel) SendEmbed(channelID string, embed *discordgo.MessageEmbed) (*discordgo.Message, error) {
	return c.session.ChannelMessageSendEmbed(channelID, embed)
}

func (c sessionChannel) EditEmbed(channelID, messageID string, embed *discordgo.MessageEmbed) (*discordgo.Message, error) {
	return c.session.ChannelMessageEditEmbed(channelID, messageID, embed)
}

func (c sessionChannel) Message(channelID, messageID string) (*discordgo.Message, error) {
	return c.session.ChannelMessage(channelID, messageID)
}

func NewMessenger(session *discordgo.Session, channelID string, renderer *render.Renderer) *Messenger {
	return newMessenger(sessionChannel{session: session}, channelID, renderer)
}

func newMessenger(channel channelAPI, channelID string, renderer *render.Renderer) *Messenger {
	return &Messenger{
		channel:   channel,
		channelID: channelID,
		renderer:  renderer,
	}
}

func (m *Messenger) SendMessage(ctx context.Context, msg *render.Message) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("discord.SendMessage: %w: %v", model.ErrDelivery, err)
	}

	sent, err := m.channel.SendEmbed(m.channelID, Embed(msg))
	if err != nil {
		return "", deliveryError("discord.SendMessage", err)
	}

	return sent.ID, nil
}

func (m *Messenger) EditMessage(ctx context.Context, ref string, msg *render.Message) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("discord.EditMessage: %w: %v", model.ErrDelivery, err)
	}

	if _, err := m.channel.EditEmbed(m.channelID, ref, Embed(msg)); err != nil {
		return deliveryError("discord.EditMessage", err)
	}

	return nil
}

// FetchMessage returns model.ErrMessageNotFound when ref no longer exists.
func (m *Messenger) FetchMessage(ctx context.Context, ref string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("discord.FetchMessage: %w: %v", model.ErrDelivery, err)
	}

	if _, err := m.channel.Message(m.channelID, ref); err != nil {
		return deliveryError("discord.FetchMessage", err)
	}

	return nil
}

// Announce posts the event card under prefix. It backs the reminder scheduler.
func (m *Messenger) Announce(ctx context.Context, event *model.Event, prefix string) error {
	_, err := m.SendMessage(ctx, m.renderer.Event(event, prefix))
	return err
}

func deliveryError(op string, err error) error {
	var restErr *discordgo.RESTError
	if errors.As(err, &restErr) && restErr.Message != nil && restErr.Message.Code == discordgo.ErrCodeUnknownMessage {
		return fmt.Errorf("%s: %w", op, model.ErrMessageNotFound)
	}

	return fmt.Errorf("%s: %w: %v", op, model.ErrDelivery, err)
}

// Embed converts a rendered message into a Discord embed.
func Embed(msg *render.Message) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       msg.Title,
		Description: msg.Description,
		Color:       msg.Color,
	}
	if !msg.Timestamp.IsZero() {
		embed.Timestamp = msg.Timestamp.UTC().Format(time.RFC3339)
	}
	if msg.Footer != "" {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: msg.Footer}
	}
	for _, f := range msg.Fields {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   f.Name,
			Value:  f.Value,
			Inline: f.Inline,
		})
	}

	return embed
}
