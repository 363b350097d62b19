package service

import (
	"context"

	"github.com/jose-valero/fantasy-vct-bot/internal/app/roster"
	"github.com/jose-valero/fantasy-vct-bot/internal/domain"
)

// Store lo implementa internal/infra/storage.Store.
type Store interface {
	roster.Store

	AthleteByName(ctx context.Context, name string) (domain.Athlete, error)
	FreeAgents(ctx context.Context) ([]domain.Athlete, error)
	AthletesByRealTeam(ctx context.Context, teamID int64) ([]domain.Athlete, error)
	RealTeamByRef(ctx context.Context, ref string) (domain.RealTeam, error)

	RegisterTeam(ctx context.Context, ownerID, name, abbrev string) (domain.FantasyTeam, error)
	FantasyTeamByOwner(ctx context.Context, discordID string) (domain.FantasyTeam, error)
	FantasyTeamByRef(ctx context.Context, ref string) (domain.FantasyTeam, error)
	FantasyTeams(ctx context.Context) ([]domain.FantasyTeam, error)
	AllSlots(ctx context.Context) ([]domain.Slot, error)

	ResultsByAthletes(ctx context.Context, athleteIDs []int64) ([]domain.MatchResult, error)
	MatchExists(ctx context.Context, matchID int64) (bool, error)
	SaveMatch(ctx context.Context, m domain.ScrapedMatch, eventID *int64) (domain.UploadReport, error)
	ImportRoster(ctx context.Context, r domain.ScrapedRoster) (domain.RealTeam, []domain.Athlete, error)

	TrackEvent(ctx context.Context, name string) (domain.Event, error)
	UntrackEvent(ctx context.Context, name string) (bool, error)
	EventByName(ctx context.Context, name string) (domain.Event, error)

	Epoch(ctx context.Context) (int64, error)
	RecordFetch(ctx context.Context, matchID int64, status, detail string) error
}

// FetchStore es lo que necesita el fetch automático.
type FetchStore interface {
	Events(ctx context.Context) ([]domain.Event, error)
	StoredMatches(ctx context.Context, matchIDs []int64) (map[int64]bool, error)
}

// Lo implementa internal/adapters/vlr.Client
type MatchSource interface {
	ParseMatch(ctx context.Context, matchID string) (domain.ScrapedMatch, error)
	ParseTeam(ctx context.Context, url string) (domain.ScrapedRoster, error)
}

type ResultFeed interface {
	RecentResults(ctx context.Context) ([]domain.RecentMatch, error)
}

// Uploader lo implementa *League.
type Uploader interface {
	UploadMatch(ctx context.Context, matchID, eventName string) (string, error)
}
