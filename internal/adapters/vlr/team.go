package vlr

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"golang.org/x/net/html"

	"github.com/jose-valero/fantasy-vct-bot/internal/domain"
)

// ParseTeam lee una página de equipo (URL completa o path "/team/2/sentinels").
func (c *Client) ParseTeam(ctx context.Context, teamURL string) (domain.ScrapedRoster, error) {
	u, err := c.teamURL(teamURL)
	if err != nil {
		return domain.ScrapedRoster{}, err
	}
	doc, err := c.doHTML(ctx, u)
	if errors.Is(err, ErrNotFound) {
		return domain.ScrapedRoster{}, domain.NotFound("team page not found on vlr.gg")
	}
	if err != nil {
		return domain.ScrapedRoster{}, err
	}
	return parseTeamPage(doc)
}

func (c *Client) teamURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "/") {
		raw = c.baseURL + raw
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || !strings.Contains(u.Path, "/team/") {
		return "", domain.Validation("not a vlr.gg team url")
	}
	return u.String(), nil
}

func parseTeamPage(doc *html.Node) (domain.ScrapedRoster, error) {
	var r domain.ScrapedRoster
	header := find(doc, byClass("div", "team-header"))
	if header == nil {
		return r, parseErr("team header missing")
	}
	r.Name = cleanText(find(header, byTag("h1")))
	if r.Name == "" {
		return r, parseErr("team name missing")
	}
	r.Abbrev = cleanText(find(header, byTag("h2")))
	if r.Abbrev == "" {
		r.Abbrev = r.Name
	}

	card := find(find(doc, byClass("div", "team-summary-container-1")), byClass("div", "wf-card"))
	if card == nil {
		return r, parseErr("roster card missing")
	}
	// El primer grupo es el título; el segundo, los jugadores (después viene staff).
	players := nthChild(card, "div", 1)
	if players == nil {
		players = card
	}
	for _, item := range findAll(players, byClass("div", "team-roster-item")) {
		if name := cleanText(find(item, byClass("div", "team-roster-item-name-alias"))); name != "" {
			r.Players = append(r.Players, name)
		}
	}
	return r, nil
}
