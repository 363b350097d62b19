package vlr

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/jose-valero/fantasy-vct-bot/internal/domain"
)

// ParseMatch lee las pestañas summary y performance de un match y las une.
func (c *Client) ParseMatch(ctx context.Context, matchID string) (domain.ScrapedMatch, error) {
	id, err := domain.ParseMatchID(matchID)
	if err != nil {
		return domain.ScrapedMatch{}, err
	}

	summary, err := c.doHTML(ctx, fmt.Sprintf("%s/%d/?game=all", c.baseURL, id))
	if errors.Is(err, ErrNotFound) {
		return domain.ScrapedMatch{}, domain.NotFound("match %d not found on vlr.gg", id)
	}
	if err != nil {
		return domain.ScrapedMatch{}, err
	}
	games, err := parseSummary(summary)
	if err != nil {
		return domain.ScrapedMatch{}, err
	}
	if len(games) == 0 {
		return domain.ScrapedMatch{}, domain.State("match %d has no completed maps yet", id)
	}

	perf, err := c.doHTML(ctx, fmt.Sprintf("%s/%d/?game=all&tab=performance", c.baseURL, id))
	if err != nil {
		return domain.ScrapedMatch{}, err
	}
	if err := mergePerformance(perf, games); err != nil {
		return domain.ScrapedMatch{}, err
	}
	return domain.ScrapedMatch{MatchID: id, Games: games}, nil
}

// gameDivs devuelve los div.vm-stats-game jugados, sin el agregado "all".
func gameDivs(doc *html.Node) ([]*html.Node, []int64, error) {
	var divs []*html.Node
	var ids []int64
	for _, d := range findAll(doc, byClass("div", "vm-stats-game")) {
		raw, _ := attr(d, "data-game-id")
		if raw == "all" || strings.Contains(strings.ToLower(cleanText(d)), "not available") {
			continue
		}
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, nil, parseErr("bad data-game-id %q", raw)
		}
		divs = append(divs, d)
		ids = append(ids, id)
	}
	return divs, ids, nil
}

func parseSummary(doc *html.Node) ([]domain.ScrapedGame, error) {
	divs, ids, err := gameDivs(doc)
	if err != nil {
		return nil, err
	}
	games := make([]domain.ScrapedGame, 0, len(divs))
	for i, d := range divs {
		g, err := parseGameSummary(d, ids[i])
		if err != nil {
			return nil, err
		}
		games = append(games, g)
	}
	return games, nil
}

func parseGameSummary(d *html.Node, gameID int64) (domain.ScrapedGame, error) {
	g := domain.ScrapedGame{GameID: gameID}

	header := nthChild(d, "div", 0)
	mapDiv := find(header, byClass("div", "map"))
	if f := strings.Fields(text(mapDiv)); len(f) > 0 {
		g.Map = f[0]
	}

	scores := findAll(header, byClass("div", "team"))
	tables := findAll(d, byTag("table"))
	if len(scores) < 2 || len(tables) < 2 {
		return g, parseErr("game %d: expected two teams, got %d scores and %d tables", gameID, len(scores), len(tables))
	}
	for i := range 2 {
		t, err := parseTeamSummary(scores[i], tables[i])
		if err != nil {
			return g, fmt.Errorf("game %d: %w", gameID, err)
		}
		g.Teams[i] = t
	}

	if picked := find(mapDiv, byClass("span", "picked")); picked != nil {
		switch {
		case hasClass(picked, "mod-1"):
			g.Teams[0].MapPick = true
		case hasClass(picked, "mod-2"):
			g.Teams[1].MapPick = true
		}
	}
	return g, nil
}

func parseTeamSummary(score, table *html.Node) (domain.ScrapedTeam, error) {
	var t domain.ScrapedTeam
	t.Name = cleanText(find(score, byClass("div", "team-name")))
	if sc := find(score, byClass("div", "score")); sc != nil {
		t.Won = hasClass(sc, "mod-win")
		t.Score = firstInt(cleanText(sc))
	}

	for _, row := range findAll(table, byTag("tr")) {
		cell := find(row, byClass("td", "mod-player"))
		if cell == nil {
			continue
		}
		divs := children(find(cell, byTag("a")), "div")
		if len(divs) == 0 {
			return t, parseErr("player cell without name")
		}
		p := domain.ScrapedPlayer{Name: cleanText(divs[0])}
		if t.Abbrev == "" && len(divs) > 1 {
			t.Abbrev = cleanText(divs[1])
		}
		if img := find(find(row, byClass("td", "mod-agents")), byTag("img")); img != nil {
			p.Agent, _ = attr(img, "alt")
		}

		stats := findAll(row, byClass("td", "mod-stat"))
		if len(stats) < 5 {
			return t, parseErr("player %s: expected stat columns, got %d", p.Name, len(stats))
		}
		p.Stats.ACS = firstFloat(statValue(stats[1]))
		p.Stats.Kills = firstInt(statValue(stats[2]))
		p.Stats.Deaths = firstInt(statValue(stats[3]))
		p.Stats.Assists = firstInt(statValue(stats[4]))
		t.Players = append(t.Players, p)
	}
	return t, nil
}

// statValue prefiere el valor "ambos lados" (span.mod-both).
func statValue(td *html.Node) string {
	if both := find(td, byClass("span", "mod-both")); both != nil {
		return cleanText(both)
	}
	return cleanText(td)
}

// Columnas de la tabla de performance que nos interesan.
const (
	colTwoK   = 2
	colThreeK = 3
	colFourK  = 4
	colFiveK  = 5
	colV2     = 7
	colV3     = 8
	colV4     = 9
	colV5     = 10
)

// mergePerformance completa multikills y clutches en los jugadores del summary.
// Las filas 1..5 son del primer equipo y el resto del segundo.
func mergePerformance(doc *html.Node, games []domain.ScrapedGame) error {
	divs, ids, err := gameDivs(doc)
	if err != nil {
		return err
	}
	byID := make(map[int64]*domain.ScrapedGame, len(games))
	for i := range games {
		byID[games[i].GameID] = &games[i]
	}

	for i, d := range divs {
		g, ok := byID[ids[i]]
		if !ok {
			continue
		}
		table := find(nthChild(d, "div", 1), byTag("table"))
		if table == nil {
			return parseErr("game %d: performance table missing", ids[i])
		}
		for r, row := range findAll(table, byTag("tr")) {
			if r == 0 {
				continue
			}
			tds := children(row, "td")
			if len(tds) <= colV5 {
				continue
			}
			words := strings.Fields(text(tds[0]))
			if len(words) < 2 {
				continue
			}
			name := strings.Join(words[:len(words)-1], " ")
			side := 0
			if r > 5 {
				side = 1
			}
			p := playerByName(g, side, name)
			p.Stats.TwoKills = firstInt(text(tds[colTwoK]))
			p.Stats.ThreeKills = firstInt(text(tds[colThreeK]))
			p.Stats.FourKills = firstInt(text(tds[colFourK]))
			p.Stats.FiveKills = firstInt(text(tds[colFiveK]))
			p.Stats.ClutchV2 = firstInt(text(tds[colV2]))
			p.Stats.ClutchV3 = firstInt(text(tds[colV3]))
			p.Stats.ClutchV4 = firstInt(text(tds[colV4]))
			p.Stats.ClutchV5 = firstInt(text(tds[colV5]))
		}
	}
	return nil
}

// playerByName busca primero en el lado esperado; si no está, lo agrega ahí.
func playerByName(g *domain.ScrapedGame, side int, name string) *domain.ScrapedPlayer {
	for _, s := range []int{side, 1 - side} {
		ps := g.Teams[s].Players
		for i := range ps {
			if ps[i].Name == name {
				return &ps[i]
			}
		}
	}
	g.Teams[side].Players = append(g.Teams[side].Players, domain.ScrapedPlayer{Name: name})
	ps := g.Teams[side].Players
	return &ps[len(ps)-1]
}
