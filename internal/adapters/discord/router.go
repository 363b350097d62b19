package discord

import (
	"context"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"

	"github.com/jose-valero/fantasy-vct-bot/internal/app/service"
	"github.com/jose-valero/fantasy-vct-bot/internal/infra/metrics"
	"github.com/jose-valero/fantasy-vct-bot/pkg/logger"
)

const (
	commandTimeout   = 12 * time.Second
	componentTimeout = 8 * time.Second
)

type Router struct {
	s            *discordgo.Session
	guildID      string
	adminRoleIDs []string

	league  *service.League
	limiter *userLimiter
	metrics *metrics.Metrics
	log     zerolog.Logger

	commands   map[string]Command
	components map[ComponentKey]Component
}

func NewRouter(
	s *discordgo.Session,
	guildID string,
	adminRoleIDs []string,
	league *service.League,
	m *metrics.Metrics,
) *Router {
	r := &Router{
		s:            s,
		guildID:      guildID,
		adminRoleIDs: adminRoleIDs,
		league:       league,
		limiter:      newUserLimiter(2 * time.Second),
		metrics:      m,
		log:          logger.Component("discord"),
	}
	r.commands = r.commandTable()
	r.components = r.componentTable()
	return r
}

// Register pisa los comandos del guild con la lista actual.
func (r *Router) Register() error {
	appID := r.s.State.User.ID
	_, err := r.s.ApplicationCommandBulkOverwrite(appID, r.guildID, Commands)
	return err
}

func (r *Router) Handlers() {
	r.s.AddHandler(func(s *discordgo.Session, ic *discordgo.InteractionCreate) {
		switch ic.Type {
		case discordgo.InteractionApplicationCommand:
			r.handleSlashCommand(s, ic)
		case discordgo.InteractionMessageComponent:
			r.handleMessageComponent(s, ic)
		}
	})
	r.s.AddHandler(func(_ *discordgo.Session, ev *discordgo.Ready) {
		r.log.Info().Str("user", ev.User.Username).Int("guilds", len(ev.Guilds)).Msg("discord ready")
	})
}

func (r *Router) handleSlashCommand(s *discordgo.Session, ic *discordgo.InteractionCreate) {
	data := ic.ApplicationCommandData()
	c := newCall(s, ic)
	r.log.Debug().Str("cmd", data.Name).Str("sub", c.Sub).Str("by", c.UserID).Msg("slash")

	cmd, ok := r.commands[data.Name]
	if !ok {
		_ = Defer(s, ic, false)
		ReplyEphemeral(s, ic, "❌ Unknown command.")
		return
	}

	defer func() {
		if rec := recover(); rec != nil {
			r.log.Error().Interface("panic", rec).Str("cmd", data.Name).Msg("panic in command")
			ReplyEphemeral(s, ic, "❌ unexpected error, try again later")
		}
	}()

	// Siempre efímero: permisos, límites y errores no salen al canal.
	_ = Defer(s, ic, false)

	if cmd.AdminOnly && !r.isAdmin(s, ic) {
		ReplyEphemeral(s, ic, "🔒 You don't have permission to use this command.")
		return
	}
	if !r.limiter.Allow(c.UserID, data.Name) {
		ReplyEphemeral(s, ic, "⏳ Slow down a second…")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	done := r.step(data.Name)
	rep, err := cmd.Handler(ctx, c)
	done(err)
	if err != nil {
		ReplyEphemeral(s, ic, errReply(err))
		return
	}
	if publish(cmd, err) {
		Publish(s, ic, rep)
		return
	}
	Followup(s, ic, false, rep)
}

// publish: sólo el resultado exitoso de un comando público va al canal.
func publish(cmd Command, err error) bool {
	return cmd.Public && err == nil
}

func (r *Router) handleMessageComponent(s *discordgo.Session, ic *discordgo.InteractionCreate) {
	key := ComponentKey(ic.MessageComponentData().CustomID)
	comp, ok := r.components[key]
	if !ok {
		return
	}
	c := newCall(s, ic)

	defer func() {
		if rec := recover(); rec != nil {
			r.log.Error().Interface("panic", rec).Str("component", string(key)).Msg("panic in component")
		}
	}()

	if !r.limiter.Allow(c.UserID, string(key)) {
		_ = Defer(s, ic, false)
		ReplyEphemeral(s, ic, "⏳ Slow down a second…")
		return
	}
	if comp.Edit {
		_ = DeferUpdate(s, ic)
	} else {
		_ = Defer(s, ic, false)
	}

	ctx, cancel := context.WithTimeout(context.Background(), componentTimeout)
	defer cancel()

	done := r.step(string(key))
	rep, err := comp.Handler(ctx, c)
	done(err)
	switch {
	case err != nil:
		Followup(s, ic, false, Reply{Content: errReply(err)})
	case comp.Edit:
		EditOriginal(s, ic, rep)
	default:
		Followup(s, ic, false, rep)
	}
}
