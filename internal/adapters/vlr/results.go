package vlr

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/jose-valero/fantasy-vct-bot/internal/domain"
)

// segmentDTO es un match terminado según vlrggapi /match/results.
type segmentDTO struct {
	Team1          string `json:"team1"`
	Team2          string `json:"team2"`
	Score1         string `json:"score1"`
	Score2         string `json:"score2"`
	TimeCompleted  string `json:"time_completed"`
	RoundInfo      string `json:"round_info"`
	TournamentName string `json:"tournament_name"`
	MatchPage      string `json:"match_page"`
}

// matchID saca el id de match_page ("/12345/team-a-vs-team-b").
func (s segmentDTO) matchID() (int64, bool) {
	p := strings.Trim(s.MatchPage, "/")
	if i := strings.Index(p, "/"); i >= 0 {
		p = p[:i]
	}
	id, err := strconv.ParseInt(p, 10, 64)
	return id, err == nil && id > 0
}

type resultsDTO struct {
	Data struct {
		Status   int          `json:"status"`
		Segments []segmentDTO `json:"segments"`
	} `json:"data"`
}

// RecentResults lista los matches terminados; los que no tienen id válido se omiten.
func (c *Client) RecentResults(ctx context.Context) ([]domain.RecentMatch, error) {
	var dto resultsDTO
	u := c.apiURL + "/match/results"
	if err := c.doJSON(ctx, u, &dto); err != nil {
		return nil, err
	}
	if dto.Data.Status != http.StatusOK {
		return nil, &APIError{URL: u, Status: dto.Data.Status, Body: "vlrggapi data status"}
	}
	out := make([]domain.RecentMatch, 0, len(dto.Data.Segments))
	for _, s := range dto.Data.Segments {
		id, ok := s.matchID()
		if !ok {
			continue
		}
		out = append(out, domain.RecentMatch{
			MatchID: id,
			Event:   strings.TrimSpace(s.TournamentName),
			Team1:   s.Team1,
			Team2:   s.Team2,
		})
	}
	return out, nil
}
