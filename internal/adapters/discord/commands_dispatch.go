// Handlers de slash commands: sólo leen opciones y delegan en la liga.

package discord

import (
	"context"

	"github.com/jose-valero/fantasy-vct-bot/internal/domain"
)

func text(msg string, err error) (Reply, error) {
	return Reply{Content: msg}, err
}

func (r *Router) commandTable() map[string]Command {
	l := r.league
	cmds := []Command{
		{Name: "register", Handler: func(ctx context.Context, c *Call) (Reply, error) {
			return text(l.Register(ctx, c.UserID, c.Str("abbrev"), c.Str("name")))
		}},
		{Name: "draft", Public: true, Handler: func(ctx context.Context, c *Call) (Reply, error) {
			msg, err := l.Draft(ctx, c.UserID, c.Str("player"))
			if err != nil {
				return Reply{}, err
			}
			return Reply{Content: msg, Components: refreshButton(DraftStatusCheck, "Draft status")}, nil
		}},
		{Name: "pickup", Public: true, Handler: func(ctx context.Context, c *Call) (Reply, error) {
			return text(l.Pickup(ctx, c.UserID, c.Str("player")))
		}},
		{Name: "drop", Public: true, Handler: func(ctx context.Context, c *Call) (Reply, error) {
			return text(l.Drop(ctx, c.UserID, c.Str("player")))
		}},
		{Name: "move", Handler: func(ctx context.Context, c *Call) (Reply, error) {
			pos, ok := c.Int("position")
			if !ok {
				return Reply{}, domain.Validation("position is required")
			}
			return text(l.Move(ctx, c.UserID, c.Str("player"), pos))
		}},
		{Name: "roster", Handler: func(ctx context.Context, c *Call) (Reply, error) {
			return text(l.Roster(ctx, c.UserID, c.Str("team")))
		}},
		{Name: "standings", Public: true, Handler: r.standings},
		{Name: "freeagents", Handler: func(ctx context.Context, _ *Call) (Reply, error) {
			return text(l.FreeAgents(ctx))
		}},
		{Name: "info", Handler: func(ctx context.Context, c *Call) (Reply, error) {
			return text(l.Info(ctx, c.Str("category"), c.Str("name")))
		}},
		{Name: "rules", Handler: func(context.Context, *Call) (Reply, error) {
			return Reply{Content: l.ScoringRules()}, nil
		}},
		{Name: "draftstatus", Handler: r.draftStatus},

		{Name: "startdraft", AdminOnly: true, Public: true, Handler: func(ctx context.Context, _ *Call) (Reply, error) {
			msg, err := l.StartDraft(ctx)
			if err != nil {
				return Reply{}, err
			}
			return Reply{Content: msg, Components: refreshButton(DraftStatusCheck, "Draft status")}, nil
		}},
		{Name: "skipdraft", AdminOnly: true, Public: true, Handler: func(ctx context.Context, _ *Call) (Reply, error) {
			return text(l.SkipDraft(ctx))
		}},
		{Name: "config", AdminOnly: true, Handler: func(ctx context.Context, c *Call) (Reply, error) {
			n, ok := c.Int("value")
			if !ok {
				return Reply{}, domain.Validation("value is required")
			}
			switch c.Sub {
			case "rounds":
				return text(l.SetRounds(ctx, n))
			case "subs":
				return text(l.SetSubSlots(ctx, n))
			}
			return Reply{}, domain.Validation("use `/config rounds` or `/config subs`")
		}},
		{Name: "upload", AdminOnly: true, Handler: func(ctx context.Context, c *Call) (Reply, error) {
			return text(l.UploadMatch(ctx, c.Str("match"), c.Str("event")))
		}},
		{Name: "event", AdminOnly: true, Handler: func(ctx context.Context, c *Call) (Reply, error) {
			switch c.Sub {
			case "track":
				return text(l.TrackEvent(ctx, c.Str("name")))
			case "untrack":
				return text(l.UntrackEvent(ctx, c.Str("name")))
			}
			return Reply{}, domain.Validation("use `/event track` or `/event untrack`")
		}},
		{Name: "addteam", AdminOnly: true, Handler: func(ctx context.Context, c *Call) (Reply, error) {
			return text(l.AddTeam(ctx, c.Str("url")))
		}},
	}

	out := make(map[string]Command, len(cmds))
	for _, c := range cmds {
		out[c.Name] = c
	}
	return out
}

func (r *Router) standings(ctx context.Context, _ *Call) (Reply, error) {
	msg, err := r.league.Standings(ctx)
	if err != nil {
		return Reply{}, err
	}
	return Reply{Content: msg, Components: refreshButton(StandingsRefresh, "Refresh")}, nil
}

func (r *Router) draftStatus(ctx context.Context, _ *Call) (Reply, error) {
	return text(r.league.DraftStatus(ctx))
}
