package discord

import "github.com/bwmarrin/discordgo"

const (
	optionEventID     = "event_id"
	optionName        = "name"
	optionStart       = "start_utc"
	optionEnd         = "end_utc"
	optionDescription = "description"
	optionPosition    = "position"
)

var eventIDOption = &discordgo.ApplicationCommandOption{
	Type:        discordgo.ApplicationCommandOptionInteger,
	Name:        optionEventID,
	Description: "Event ID",
	Required:    true,
}

// Commands are the slash commands registered in the guild.
var Commands = []*discordgo.ApplicationCommand{
	{
		Name:        "ping",
		Description: "Check bot latency",
	},
	{
		Name:        "help",
		Description: "Show bot help",
	},
	{
		Name:        "event_list",
		Description: "List upcoming events",
	},
	{
		Name:        "event_info",
		Description: "Get event details",
		Options:     []*discordgo.ApplicationCommandOption{eventIDOption},
	},
	{
		Name:        "event_create",
		Description: "Create an event (Events Dept only)",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        optionName,
				Description: "Event name",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        optionStart,
				Description: "Start time, e.g. 2025-01-31 18:00",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        optionEnd,
				Description: "End time, e.g. 2025-01-31 21:00",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        optionDescription,
				Description: "Event description",
			},
		},
	},
	{
		Name:        "event_delete",
		Description: "Delete an event (Events Dept only)",
		Options:     []*discordgo.ApplicationCommandOption{eventIDOption},
	},
	{
		Name:        "event_cancel",
		Description: "Cancel an event (Events Dept only)",
		Options:     []*discordgo.ApplicationCommandOption{eventIDOption},
	},
	{
		Name:        "event_signup",
		Description: "Sign up for a position",
		Options: []*discordgo.ApplicationCommandOption{
			eventIDOption,
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        optionPosition,
				Description: "Position, e.g. LTFM_TWR",
				Required:    true,
			},
		},
	},
}

const helpText = "**TRvACC Events Assistant**\n" +
	"`/event_list` – List upcoming events\n" +
	"`/event_info <id>` – Event details\n" +
	"`/event_signup <id> <position>` – Sign up for a position\n" +
	"`/event_create` – Create event (Events Dept)\n" +
	"`/event_cancel <id>` – Cancel event (Events Dept)\n" +
	"`/event_delete <id>` – Delete event (Events Dept)\n" +
	"`/ping` – Bot latency\n" +
	"`/help` – This message"
