package discord

import "github.com/bwmarrin/discordgo"

var (
	minPosition = 0.0
	minOne      = 1.0
	minZero     = 0.0
)

func playerOpt(desc string) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "player",
		Description: desc,
		Required:    true,
	}
}

// Commands se registran en el guild al arrancar.
var Commands = []*discordgo.ApplicationCommand{
	{
		Name:        "register",
		Description: "Register your fantasy team",
		Options: []*discordgo.ApplicationCommandOption{
			{Type: discordgo.ApplicationCommandOptionString, Name: "abbrev", Description: "Team abbreviation (max 5)", Required: true, MaxLength: 5},
			{Type: discordgo.ApplicationCommandOptionString, Name: "name", Description: "Team name (max 32)", Required: true, MaxLength: 32},
		},
	},
	{Name: "draft", Description: "Draft a player when it is your turn", Options: []*discordgo.ApplicationCommandOption{playerOpt("Player to draft")}},
	{Name: "pickup", Description: "Pick up a free agent", Options: []*discordgo.ApplicationCommandOption{playerOpt("Player to pick up")}},
	{Name: "drop", Description: "Drop a player from your roster", Options: []*discordgo.ApplicationCommandOption{playerOpt("Player to drop")}},
	{
		Name:        "move",
		Description: "Move a player to another position (0 = captain, 1-5 = starters, 6+ = subs)",
		Options: []*discordgo.ApplicationCommandOption{
			playerOpt("Player to move"),
			{Type: discordgo.ApplicationCommandOptionInteger, Name: "position", Description: "Target position", Required: true, MinValue: &minPosition, MaxValue: 9},
		},
	},
	{
		Name:        "roster",
		Description: "Show a fantasy roster",
		Options: []*discordgo.ApplicationCommandOption{
			{Type: discordgo.ApplicationCommandOptionString, Name: "team", Description: "Team name or abbreviation (yours by default)"},
		},
	},
	{Name: "standings", Description: "League standings"},
	{Name: "freeagents", Description: "Best players without a team"},
	{
		Name:        "info",
		Description: "Show a real team or a player",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type: discordgo.ApplicationCommandOptionString, Name: "category", Description: "team or player", Required: true,
				Choices: []*discordgo.ApplicationCommandOptionChoice{{Name: "team", Value: "team"}, {Name: "player", Value: "player"}},
			},
			{Type: discordgo.ApplicationCommandOptionString, Name: "name", Description: "Name or abbreviation", Required: true},
		},
	},
	{Name: "rules", Description: "How fantasy points are scored"},
	{Name: "draftstatus", Description: "Whose turn it is in the draft"},

	// admins
	{Name: "startdraft", Description: "Start the draft with the registered teams"},
	{Name: "skipdraft", Description: "Skip the draft and open free agency"},
	{
		Name:        "config",
		Description: "League settings (before the draft)",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type: discordgo.ApplicationCommandOptionSubCommand, Name: "rounds", Description: "Draft rounds",
				Options: []*discordgo.ApplicationCommandOption{
					{Type: discordgo.ApplicationCommandOptionInteger, Name: "value", Description: "Rounds", Required: true, MinValue: &minOne},
				},
			},
			{
				Type: discordgo.ApplicationCommandOptionSubCommand, Name: "subs", Description: "Bench slots per roster",
				Options: []*discordgo.ApplicationCommandOption{
					{Type: discordgo.ApplicationCommandOptionInteger, Name: "value", Description: "Sub slots", Required: true, MinValue: &minZero, MaxValue: 4},
				},
			},
		},
	},
	{
		Name:        "upload",
		Description: "Upload a vlr.gg match",
		Options: []*discordgo.ApplicationCommandOption{
			{Type: discordgo.ApplicationCommandOptionString, Name: "match", Description: "vlr.gg match number", Required: true},
			{Type: discordgo.ApplicationCommandOptionString, Name: "event", Description: "Tracked event to tag the results with"},
		},
	},
	{
		Name:        "event",
		Description: "Events whose results are fetched automatically",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type: discordgo.ApplicationCommandOptionSubCommand, Name: "track", Description: "Track an event",
				Options: []*discordgo.ApplicationCommandOption{
					{Type: discordgo.ApplicationCommandOptionString, Name: "name", Description: "Event name as shown on vlr.gg", Required: true},
				},
			},
			{
				Type: discordgo.ApplicationCommandOptionSubCommand, Name: "untrack", Description: "Stop tracking an event",
				Options: []*discordgo.ApplicationCommandOption{
					{Type: discordgo.ApplicationCommandOptionString, Name: "name", Description: "Event name", Required: true},
				},
			},
		},
	},
	{
		Name:        "addteam",
		Description: "Import a real team and its players from vlr.gg",
		Options: []*discordgo.ApplicationCommandOption{
			{Type: discordgo.ApplicationCommandOptionString, Name: "url", Description: "vlr.gg team page", Required: true},
		},
	},
}
