package discord

import (
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"

	"github.com/jose-valero/fantasy-vct-bot/internal/domain"
)

// Límite de content de Discord.
const maxContent = 2000

// newCall aplana opciones y subcomando (un solo nivel, no usamos grupos).
func newCall(s *discordgo.Session, ic *discordgo.InteractionCreate) *Call {
	c := &Call{
		Session: s,
		Event:   ic,
		GuildID: ic.GuildID,
		UserID:  userID(ic),
		Args:    map[string]*discordgo.ApplicationCommandInteractionDataOption{},
	}
	if ic.Type != discordgo.InteractionApplicationCommand {
		return c
	}
	for _, o := range ic.ApplicationCommandData().Options {
		if o.Type == discordgo.ApplicationCommandOptionSubCommand {
			c.Sub = o.Name
			for _, so := range o.Options {
				c.Args[so.Name] = so
			}
			continue
		}
		c.Args[o.Name] = o
	}
	return c
}

// userID sirve tanto en guild (Member) como en DM (User).
func userID(ic *discordgo.InteractionCreate) string {
	if ic.Member != nil && ic.Member.User != nil {
		return ic.Member.User.ID
	}
	if ic.User != nil {
		return ic.User.ID
	}
	return ""
}

// errReply arma el mensaje visible; los internos no muestran detalles.
func errReply(err error) string {
	return "❌ " + domain.UserMessage(err)
}

// truncate corta en un límite de runa y agrega "…".
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-1]) + "…"
}

func refreshButton(key ComponentKey, label string) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.Button{Label: label, Style: discordgo.SecondaryButton, CustomID: string(key), Emoji: &discordgo.ComponentEmoji{Name: "🔄"}},
		}},
	}
}
