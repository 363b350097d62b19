package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/jose-valero/fantasy-vct-bot/internal/app/draft"
	"github.com/jose-valero/fantasy-vct-bot/internal/app/roster"
	"github.com/jose-valero/fantasy-vct-bot/internal/app/scoring"
	"github.com/jose-valero/fantasy-vct-bot/internal/domain"
	"github.com/jose-valero/fantasy-vct-bot/internal/infra/metrics"
	"github.com/jose-valero/fantasy-vct-bot/pkg/logger"
)

const (
	maxTeamName   = 32
	maxTeamAbbrev = 5
)

// League es la fachada que usan Discord, el server HTTP y el fetcher.
// Todas las operaciones toman mu: draft, roster y cache no tienen locks propios.
type League struct {
	mu sync.Mutex

	store Store
	src   MatchSource
	draft *draft.Coordinator
	alloc *roster.Allocator
	cache *scoring.Cache

	// loaded: atletas cuyos games ya están todos en el cache.
	loaded map[int64]bool
	epoch  int64

	metrics *metrics.Metrics
	log     zerolog.Logger
}

type Option func(*League)

func WithDraft(d *draft.Coordinator) Option { return func(l *League) { l.draft = d } }

func WithSubSlots(n int) Option {
	return func(l *League) { _ = l.alloc.SetSubSlots(n) }
}

func WithMetrics(m *metrics.Metrics) Option { return func(l *League) { l.metrics = m } }

func WithLogger(lg zerolog.Logger) Option { return func(l *League) { l.log = lg } }

func NewLeague(store Store, src MatchSource, opts ...Option) *League {
	l := &League{
		store:  store,
		src:    src,
		draft:  draft.New(),
		alloc:  roster.NewAllocator(store, 2),
		cache:  scoring.NewCache(),
		loaded: make(map[int64]bool),
		log:    logger.Component("league"),
	}
	for _, o := range opts {
		o(l)
	}
	return l
}

// Register crea el fantasy team del usuario.
func (l *League) Register(ctx context.Context, ownerID, abbrev, name string) (string, error) {
	abbrev = strings.ToUpper(strings.TrimSpace(abbrev))
	name = strings.TrimSpace(name)
	switch {
	case name == "" || abbrev == "":
		return "", domain.Validation("team name and abbreviation are required")
	case utf8.RuneCountInString(name) > maxTeamName:
		return "", domain.Validation("team name must be at most %d characters", maxTeamName)
	case utf8.RuneCountInString(abbrev) > maxTeamAbbrev:
		return "", domain.Validation("abbreviation must be at most %d characters", maxTeamAbbrev)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.draft.State() == draft.InProgress {
		return "", domain.State("registration is closed while the draft is running")
	}
	if _, err := l.store.FantasyTeamByOwner(ctx, ownerID); err == nil {
		return "", domain.Conflict("you already have a team")
	} else if !errors.Is(err, domain.ErrNotFound) {
		return "", err
	}

	t, err := l.store.RegisterTeam(ctx, ownerID, name, abbrev)
	if err != nil {
		return "", err
	}
	l.log.Info().Str("owner", ownerID).Str("team", t.Name).Msg("team registered")
	return fmt.Sprintf("✅ Registered **%s** [%s].", t.Name, t.Abbrev), nil
}

// StartDraft arma el orden snake con los dueños registrados.
func (l *League) StartDraft(ctx context.Context) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.draft.Started() {
		return "", domain.State("the draft has already started")
	}
	teams, err := l.store.FantasyTeams(ctx)
	if err != nil {
		return "", err
	}
	var owners []string
	for _, t := range teams {
		if t.OwnerID != "" {
			owners = append(owners, t.OwnerID)
		}
	}
	if len(owners) == 0 {
		return "", domain.Validation("no teams are registered yet")
	}

	first, err := l.draft.Start(owners)
	if err != nil {
		return "", err
	}
	l.metrics.DraftRemaining(len(l.draft.Remaining()) + 1)
	l.log.Info().Int("owners", len(owners)).Int("rounds", l.draft.Rounds()).Str("first", first).Msg("draft started")
	return fmt.Sprintf("🏁 The draft has started: %d rounds, %d teams.\n🎯 <@%s> is up first.",
		l.draft.Rounds(), len(owners), first), nil
}

func (l *League) SkipDraft(context.Context) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.draft.Skip()
	l.metrics.DraftRemaining(0)
	return "⏭️ Draft skipped. Free agency is open: use `/pickup`.", nil
}

func (l *League) SetRounds(_ context.Context, n int) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.draft.Started() {
		return "", domain.State("the draft has already started")
	}
	if err := l.draft.SetRounds(n); err != nil {
		return "", err
	}
	return fmt.Sprintf("⚙️ The draft will have %d rounds.", n), nil
}

func (l *League) SetSubSlots(_ context.Context, n int) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.draft.Started() {
		return "", domain.State("the draft has already started")
	}
	if err := l.alloc.SetSubSlots(n); err != nil {
		return "", err
	}
	return fmt.Sprintf("⚙️ Rosters now have %d slots (%d on the bench).", l.alloc.MaxSlots(), l.alloc.MaxSlots()-domain.BaseSlots), nil
}

func (l *League) DraftStatus(context.Context) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	switch l.draft.State() {
	case draft.NotStarted:
		return fmt.Sprintf("Draft has not started yet! (%d rounds, %d roster slots)", l.draft.Rounds(), l.alloc.MaxSlots()), nil
	case draft.InProgress:
		return fmt.Sprintf("🎯 <@%s> is on the clock. %d picks left after this one.", l.draft.Current(), len(l.draft.Remaining())), nil
	}
	return "✅ The draft is complete. Free agency is open.", nil
}

// Draft es el pick del turno actual. Con el draft terminado se comporta como Pickup.
func (l *League) Draft(ctx context.Context, ownerID, athleteName string) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.draft.Started() {
		return "", domain.State("Draft has not started yet!")
	}
	if !l.draft.CanPick(ownerID) {
		return "", domain.State("It is not your turn yet!")
	}
	msg, err := l.assign(ctx, ownerID, athleteName)
	if err != nil {
		return "", err
	}
	if l.draft.State() != draft.InProgress {
		return msg, nil
	}

	next, ok := l.draft.Advance()
	l.metrics.DraftPick(len(l.draft.Remaining()))
	if !ok {
		l.log.Info().Msg("draft complete")
		return msg + "\n🏁 The draft is complete! Free agency is open.", nil
	}
	return msg + fmt.Sprintf("\n🎯 <@%s> is up.", next), nil
}

// Pickup agrega un agente libre una vez terminado el draft.
func (l *League) Pickup(ctx context.Context, ownerID, athleteName string) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.draft.Completed() {
		return "", domain.State("free agency opens when the draft is complete")
	}
	return l.assign(ctx, ownerID, athleteName)
}

func (l *League) assign(ctx context.Context, ownerID, athleteName string) (string, error) {
	team, err := l.ownTeam(ctx, ownerID)
	if err != nil {
		return "", err
	}
	a, err := l.store.AthleteByName(ctx, strings.TrimSpace(athleteName))
	if err != nil {
		return "", err
	}
	pos, err := l.alloc.Assign(ctx, team.ID, a.ID)
	if err != nil {
		return "", err
	}
	l.log.Debug().Str("team", team.Name).Str("athlete", a.Name).Int("position", pos).Msg("athlete assigned")
	return fmt.Sprintf("✅ **%s** joins **%s** as %s.", a.Name, team.Name, domain.PositionName(pos)), nil
}

// Drop libera al atleta; sólo con el draft completo.
func (l *League) Drop(ctx context.Context, ownerID, athleteName string) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.draft.Completed() {
		return "", domain.State("you can only drop athletes after the draft")
	}
	team, err := l.ownTeam(ctx, ownerID)
	if err != nil {
		return "", err
	}
	a, err := l.store.AthleteByName(ctx, strings.TrimSpace(athleteName))
	if err != nil {
		return "", err
	}
	if err := l.alloc.Remove(ctx, team.ID, a.ID); err != nil {
		return "", err
	}
	return fmt.Sprintf("👋 **%s** was dropped from **%s**.", a.Name, team.Name), nil
}

// Move cambia de posición (o intercambia) dentro del propio roster.
func (l *League) Move(ctx context.Context, ownerID, athleteName string, position int) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	team, err := l.ownTeam(ctx, ownerID)
	if err != nil {
		return "", err
	}
	a, err := l.store.AthleteByName(ctx, strings.TrimSpace(athleteName))
	if err != nil {
		return "", err
	}
	moves, err := l.alloc.SetPosition(ctx, team.ID, a.ID, position)
	if err != nil {
		return "", err
	}
	if len(moves) == 0 {
		return fmt.Sprintf("ℹ️ **%s** is already at %s.", a.Name, domain.PositionName(position)), nil
	}
	msg := fmt.Sprintf("🔁 **%s** moved to %s.", a.Name, domain.PositionName(position))
	if len(moves) > 1 {
		msg += fmt.Sprintf(" The previous occupant moved to %s.", domain.PositionName(moves[1].To))
	}
	return msg, nil
}

func (l *League) ownTeam(ctx context.Context, ownerID string) (domain.FantasyTeam, error) {
	t, err := l.store.FantasyTeamByOwner(ctx, ownerID)
	if errors.Is(err, domain.ErrNotFound) {
		return t, domain.NotFound("you don't have a team yet, use /register")
	}
	return t, err
}

func (l *League) TrackEvent(ctx context.Context, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", domain.Validation("event name is required")
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	e, err := l.store.TrackEvent(ctx, name)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("📌 Tracking **%s**. New results will be fetched automatically.", e.Name), nil
}

func (l *League) UntrackEvent(ctx context.Context, name string) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	ok, err := l.store.UntrackEvent(ctx, strings.TrimSpace(name))
	if err != nil {
		return "", err
	}
	if !ok {
		return "", domain.NotFound("event %s is not tracked", name)
	}
	return fmt.Sprintf("🗑️ Stopped tracking **%s**.", name), nil
}

// AddTeam importa un equipo real y sus jugadores desde su página de vlr.gg.
func (l *League) AddTeam(ctx context.Context, url string) (string, error) {
	r, err := l.src.ParseTeam(ctx, url)
	if err != nil {
		return "", err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	team, athletes, err := l.store.ImportRoster(ctx, r)
	if err != nil {
		return "", err
	}
	names := make([]string, len(athletes))
	for i, a := range athletes {
		names[i] = a.Name
	}
	msg := fmt.Sprintf("✅ Imported **%s** [%s]: %s", team.Name, team.Abbrev, strings.Join(names, ", "))

	broken, err := l.brokenLineups(ctx)
	if err != nil {
		return "", err
	}
	if len(broken) > 0 {
		l.log.Warn().Str("real_team", team.Abbrev).Strs("teams", broken).Msg("import left lineups with two starters from one team")
		msg += "\n⚠️ These lineups now start two players from the same team: " + strings.Join(broken, ", ")
	}
	return msg, nil
}

// brokenLineups lista los equipos fantasy cuyos titulares ya no cumplen la
// regla de un jugador por equipo real (p.ej. tras un traspaso). Requiere mu.
func (l *League) brokenLineups(ctx context.Context) ([]string, error) {
	teams, err := l.store.FantasyTeams(ctx)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, t := range teams {
		slots, err := l.store.Roster(ctx, t.ID)
		if err != nil {
			return nil, err
		}
		if roster.ValidateDiversity(slots) != nil {
			out = append(out, t.Name)
		}
	}
	return out, nil
}
