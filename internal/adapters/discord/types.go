package discord

import (
	"context"

	"github.com/bwmarrin/discordgo"
)

// Call son los datos ya extraídos de una interacción de slash command.
type Call struct {
	Session *discordgo.Session
	Event   *discordgo.InteractionCreate
	GuildID string
	UserID  string
	// Sub es el subcomando, si lo hay.
	Sub string
	// Args por nombre, de primer nivel o del subcomando.
	Args map[string]*discordgo.ApplicationCommandInteractionDataOption
}

func (c *Call) Str(name string) string {
	if o, ok := c.Args[name]; ok && o.Type == discordgo.ApplicationCommandOptionString {
		return o.StringValue()
	}
	return ""
}

func (c *Call) Int(name string) (int, bool) {
	if o, ok := c.Args[name]; ok && o.Type == discordgo.ApplicationCommandOptionInteger {
		return int(o.IntValue()), true
	}
	return 0, false
}

// Reply es lo que devuelve un handler.
type Reply struct {
	Content    string
	Components []discordgo.MessageComponent
}

type CommandHandler func(ctx context.Context, c *Call) (Reply, error)

type Command struct {
	Name string
	// AdminOnly exige rol de admin (ver permissions.go).
	AdminOnly bool
	// Public publica el resultado en el canal; los errores siguen siendo efímeros.
	Public  bool
	Handler CommandHandler
}

type ComponentHandler func(ctx context.Context, c *Call) (Reply, error)

// Component con Edit reemplaza el mensaje del botón; sin Edit contesta efímero.
type Component struct {
	Edit    bool
	Handler ComponentHandler
}

// ComponentKey: custom_id de los botones que publica el bot.
type ComponentKey string

const (
	StandingsRefresh ComponentKey = "standings_refresh"
	DraftStatusCheck ComponentKey = "draft_status"
)
