package domain

import (
	"strconv"
	"strings"
)

// Formas que devuelve el scraper de vlr.gg; no se persisten tal cual.

type ScrapedPlayer struct {
	Name  string
	Agent string
	Stats StatLine
}

type ScrapedTeam struct {
	Name    string
	Abbrev  string
	Score   int
	Won     bool
	MapPick bool
	Players []ScrapedPlayer
}

type ScrapedGame struct {
	GameID int64
	Map    string
	Teams  [2]ScrapedTeam
}

type ScrapedMatch struct {
	MatchID int64
	Games   []ScrapedGame
}

// ScrapedRoster es el resultado de leer la página de un equipo.
type ScrapedRoster struct {
	Name    string
	Abbrev  string
	Players []string
}

// RecentMatch es un match terminado listado por vlrggapi.
type RecentMatch struct {
	MatchID int64
	Event   string
	Team1   string
	Team2   string
}

// ParseMatchID valida que el id de vlr sea un entero positivo.
func ParseMatchID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, Validation("Not a valid vlr match number.")
	}
	return id, nil
}
