package service

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/jose-valero/fantasy-vct-bot/internal/app/scoring"
	"github.com/jose-valero/fantasy-vct-bot/internal/domain"
	"github.com/jose-valero/fantasy-vct-bot/internal/infra/metrics"
)

const freeAgentsLimit = 25

// ensureLoaded llena el cache con todos los games guardados de los atletas
// que todavía no se cargaron. Requiere mu. Un atleta sin cargar nunca tiene
// entradas parciales: UploadMatch sólo guarda games de atletas ya cargados.
func (l *League) ensureLoaded(ctx context.Context, athleteIDs []int64) error {
	var missing []int64
	for _, id := range athleteIDs {
		if !l.loaded[id] {
			missing = append(missing, id)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	results, err := l.store.ResultsByAthletes(ctx, missing)
	if err != nil {
		return fmt.Errorf("load results: %w", err)
	}
	for _, r := range results {
		l.cache.Store(r.AthleteID, r.GameID, scoring.Score(r.Stats))
	}
	for _, id := range missing {
		l.loaded[id] = true
	}
	return nil
}

func (l *League) reportCache() {
	s := l.cache.Stats()
	l.metrics.Cache(metrics.CacheStats{Athletes: s.Athletes, Hits: s.Hits, Misses: s.Misses, Invalidations: s.Invalidations})
}

// AthleteTotal devuelve el total de puntos del atleta (sin multiplicador).
func (l *League) AthleteTotal(ctx context.Context, athleteID int64) (float64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.ensureLoaded(ctx, []int64{athleteID}); err != nil {
		return 0, err
	}
	return l.cache.RetrieveTotal(athleteID), nil
}

// SyncEpoch invalida el cache si otro proceso subió resultados.
func (l *League) SyncEpoch(ctx context.Context) (bool, error) {
	e, err := l.store.Epoch(ctx)
	if err != nil {
		return false, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if e == l.epoch {
		return false, nil
	}
	l.epoch = e
	clear(l.loaded)
	l.cache.Invalidate()
	l.reportCache()
	l.log.Debug().Int64("epoch", e).Msg("score epoch changed, cache invalidated")
	return true, nil
}

type slotLine struct {
	slot   domain.Slot
	raw    float64
	points float64
}

// teamLines calcula los puntos de cada slot; requiere mu.
func (l *League) teamLines(ctx context.Context, slots []domain.Slot) ([]slotLine, float64, error) {
	ids := make([]int64, len(slots))
	for i, s := range slots {
		ids[i] = s.AthleteID
	}
	if err := l.ensureLoaded(ctx, ids); err != nil {
		return nil, 0, err
	}
	lines := make([]slotLine, len(slots))
	var total float64
	for i, s := range slots {
		raw := l.cache.RetrieveTotal(s.AthleteID)
		pts := scoring.ApplyPosition(raw, s.Position)
		lines[i] = slotLine{slot: s, raw: raw, points: pts}
		total += pts
	}
	l.reportCache()
	return lines, scoring.Round1(total), nil
}

// Roster muestra el equipo pedido (por nombre o abreviatura) o el propio.
func (l *League) Roster(ctx context.Context, ownerID, teamRef string) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var team domain.FantasyTeam
	var err error
	if strings.TrimSpace(teamRef) == "" {
		team, err = l.ownTeam(ctx, ownerID)
	} else {
		team, err = l.store.FantasyTeamByRef(ctx, strings.TrimSpace(teamRef))
	}
	if err != nil {
		return "", err
	}
	slots, err := l.store.Roster(ctx, team.ID)
	if err != nil {
		return "", err
	}
	lines, total, err := l.teamLines(ctx, slots)
	if err != nil {
		return "", err
	}

	byPos := make(map[int]slotLine, len(lines))
	for _, ln := range lines {
		byPos[ln.slot.Position] = ln
	}
	var b strings.Builder
	fmt.Fprintf(&b, "**%s** [%s] · %.1f pts\n```\n", team.Name, team.Abbrev, total)
	for pos := range l.alloc.MaxSlots() {
		ln, ok := byPos[pos]
		if !ok {
			fmt.Fprintf(&b, "%-9s  -\n", domain.PositionName(pos))
			continue
		}
		name := ln.slot.Athlete.Name
		if ab := ln.slot.Athlete.RealTeamAbbrev; ab != "" {
			name += " (" + ab + ")"
		}
		if domain.IsSub(pos) {
			fmt.Fprintf(&b, "%-9s  %-24s %6.1f  bench\n", domain.PositionName(pos), name, ln.raw)
			continue
		}
		fmt.Fprintf(&b, "%-9s  %-24s %6.1f\n", domain.PositionName(pos), name, ln.points)
	}
	b.WriteString("```")
	return b.String(), nil
}

// Standing es una fila de la tabla.
type Standing struct {
	Team   domain.FantasyTeam
	Points float64
}

// StandingsTable ordena por puntos (desc) y, a igualdad, por nombre.
func (l *League) StandingsTable(ctx context.Context) ([]Standing, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.standings(ctx)
}

func (l *League) standings(ctx context.Context) ([]Standing, error) {
	teams, err := l.store.FantasyTeams(ctx)
	if err != nil {
		return nil, err
	}
	slots, err := l.store.AllSlots(ctx)
	if err != nil {
		return nil, err
	}
	lines, _, err := l.teamLines(ctx, slots)
	if err != nil {
		return nil, err
	}
	points := make(map[int64]float64, len(teams))
	for _, ln := range lines {
		points[ln.slot.FantasyTeamID] += ln.points
	}
	out := make([]Standing, len(teams))
	for i, t := range teams {
		t.Points = scoring.Round1(points[t.ID])
		out[i] = Standing{Team: t, Points: t.Points}
	}
	slices.SortStableFunc(out, func(a, b Standing) int {
		if c := cmp.Compare(b.Points, a.Points); c != 0 {
			return c
		}
		return strings.Compare(strings.ToLower(a.Team.Name), strings.ToLower(b.Team.Name))
	})
	return out, nil
}

func (l *League) Standings(ctx context.Context) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	rows, err := l.standings(ctx)
	if err != nil {
		return "", err
	}
	if len(rows) == 0 {
		return "ℹ️ No teams are registered yet.", nil
	}
	var b strings.Builder
	b.WriteString("🏆 **Standings**\n")
	for i, r := range rows {
		fmt.Fprintf(&b, "%d) **%s** [%s] · %.1f pts", i+1, r.Team.Name, r.Team.Abbrev, r.Points)
		if r.Team.OwnerID != "" {
			fmt.Fprintf(&b, " · <@%s>", r.Team.OwnerID)
		}
		b.WriteByte('\n')
	}
	return b.String(), nil
}

// FreeAgents lista los mejores atletas sin equipo por puntos.
func (l *League) FreeAgents(ctx context.Context) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	athletes, err := l.store.FreeAgents(ctx)
	if err != nil {
		return "", err
	}
	if len(athletes) == 0 {
		return "ℹ️ There are no free agents.", nil
	}
	ids := make([]int64, len(athletes))
	for i, a := range athletes {
		ids[i] = a.ID
	}
	if err := l.ensureLoaded(ctx, ids); err != nil {
		return "", err
	}
	type row struct {
		a   domain.Athlete
		pts float64
	}
	rows := make([]row, len(athletes))
	for i, a := range athletes {
		rows[i] = row{a: a, pts: l.cache.RetrieveTotal(a.ID)}
	}
	l.reportCache()
	slices.SortStableFunc(rows, func(x, y row) int { return cmp.Compare(y.pts, x.pts) })

	var b strings.Builder
	fmt.Fprintf(&b, "🆓 **Free agents** (%d)\n```\n", len(rows))
	for i, r := range rows {
		if i == freeAgentsLimit {
			fmt.Fprintf(&b, "... and %d more\n", len(rows)-freeAgentsLimit)
			break
		}
		fmt.Fprintf(&b, "%-16s %-5s %6.1f\n", r.a.Name, r.a.RealTeamAbbrev, r.pts)
	}
	b.WriteString("```")
	return b.String(), nil
}

// Info muestra un equipo real (category team) o un atleta (category player).
func (l *League) Info(ctx context.Context, category, name string) (string, error) {
	name = strings.TrimSpace(name)
	switch strings.ToLower(strings.TrimSpace(category)) {
	case "team", "teams":
		return l.teamInfo(ctx, name)
	case "player", "players":
		return l.playerInfo(ctx, name)
	}
	return "", domain.Validation("category must be team or player")
}

func (l *League) teamInfo(ctx context.Context, ref string) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	t, err := l.store.RealTeamByRef(ctx, ref)
	if err != nil {
		return "", err
	}
	athletes, err := l.store.AthletesByRealTeam(ctx, t.ID)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	fmt.Fprintf(&b, "```%s [%s]:", t.Name, t.Abbrev)
	for _, a := range athletes {
		b.WriteString("\n\t" + a.Name)
	}
	b.WriteString("```")
	return b.String(), nil
}

func (l *League) playerInfo(ctx context.Context, name string) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	a, err := l.store.AthleteByName(ctx, name)
	if err != nil {
		return "", err
	}
	if err := l.ensureLoaded(ctx, []int64{a.ID}); err != nil {
		return "", err
	}
	games, _ := l.cache.RetrieveAll(a.ID)
	total := l.cache.RetrieveTotal(a.ID)
	l.reportCache()

	var b strings.Builder
	fmt.Fprintf(&b, "**%s**", a.Name)
	if a.RealTeamAbbrev != "" {
		fmt.Fprintf(&b, " (%s)", a.RealTeamAbbrev)
	}
	fmt.Fprintf(&b, " · %.1f pts over %d games\n", total, len(games))

	slot, ok, err := l.store.SlotOf(ctx, a.ID)
	if err != nil {
		return "", err
	}
	if !ok {
		b.WriteString("Free agent.")
		return b.String(), nil
	}
	teams, err := l.store.FantasyTeams(ctx)
	if err != nil {
		return "", err
	}
	for _, t := range teams {
		if t.ID == slot.FantasyTeamID {
			fmt.Fprintf(&b, "Rostered by **%s** as %s.", t.Name, domain.PositionName(slot.Position))
			break
		}
	}
	return b.String(), nil
}

// ScoringRules no depende del estado de la liga.
func (l *League) ScoringRules() string {
	var b strings.Builder
	b.WriteString("📐 **Scoring**\n```\n")
	for _, w := range scoring.Rules() {
		fmt.Fprintf(&b, "%-7s %+5.2f\n", w.Stat, w.Points)
	}
	fmt.Fprintf(&b, "```Captain scores x%.1f. Players 1-5 score normally. Subs don't score.\nOnly one starter (Players 1-5) per real team.", domain.CaptainMultiplier)
	return b.String()
}
