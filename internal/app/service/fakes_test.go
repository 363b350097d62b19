package service_test

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/jose-valero/fantasy-vct-bot/internal/app/roster"
	"github.com/jose-valero/fantasy-vct-bot/internal/domain"
)

// fakeStore guarda todo en memoria; replica lo justo de storage.Store.
type fakeStore struct {
	mu sync.Mutex

	realTeams map[int64]domain.RealTeam
	athletes  map[int64]domain.Athlete
	teams     []domain.FantasyTeam
	slots     map[int64]domain.Slot // por athlete id
	results   []domain.MatchResult
	events    []domain.Event
	fetches   map[int64]string
	epoch     int64

	resultLoads int
	nextID      int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		realTeams: map[int64]domain.RealTeam{},
		athletes:  map[int64]domain.Athlete{},
		slots:     map[int64]domain.Slot{},
		fetches:   map[int64]string{},
		nextID:    1000,
	}
}

func (f *fakeStore) id() int64 { f.nextID++; return f.nextID }

func (f *fakeStore) addRealTeam(id int64, name, abbrev string) {
	f.realTeams[id] = domain.RealTeam{ID: id, Name: name, Abbrev: abbrev}
}

func (f *fakeStore) addAthlete(id int64, name string, team int64) {
	a := domain.Athlete{ID: id, Name: name}
	if team != 0 {
		t := team
		a.RealTeamID = &t
		a.RealTeamAbbrev = f.realTeams[team].Abbrev
	}
	f.athletes[id] = a
}

func (f *fakeStore) addResult(athleteID, matchID, gameID int64, s domain.StatLine) {
	f.results = append(f.results, domain.MatchResult{ID: f.id(), MatchID: matchID, GameID: gameID, AthleteID: athleteID, Stats: s})
}

func (f *fakeStore) GetAthlete(_ context.Context, id int64) (domain.Athlete, error) {
	a, ok := f.athletes[id]
	if !ok {
		return a, domain.NotFound("athlete not found")
	}
	return a, nil
}

func (f *fakeStore) SlotOf(_ context.Context, athleteID int64) (domain.Slot, bool, error) {
	s, ok := f.slots[athleteID]
	return s, ok, nil
}

func (f *fakeStore) Roster(_ context.Context, teamID int64) ([]domain.Slot, error) {
	var out []domain.Slot
	for _, s := range f.slots {
		if s.FantasyTeamID == teamID {
			s.Athlete = f.athletes[s.AthleteID]
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (f *fakeStore) InsertSlot(_ context.Context, s domain.Slot) error {
	if _, ok := f.slots[s.AthleteID]; ok {
		return domain.Conflict("athlete already rostered")
	}
	f.slots[s.AthleteID] = s
	return nil
}

func (f *fakeStore) DeleteSlot(_ context.Context, teamID, athleteID int64) (bool, error) {
	s, ok := f.slots[athleteID]
	if !ok || s.FantasyTeamID != teamID {
		return false, nil
	}
	delete(f.slots, athleteID)
	return true, nil
}

func (f *fakeStore) ApplyMoves(_ context.Context, _ int64, moves []roster.Move) error {
	for _, mv := range moves {
		s := f.slots[mv.AthleteID]
		s.Position = mv.To
		f.slots[mv.AthleteID] = s
	}
	return nil
}

func (f *fakeStore) AthleteByName(_ context.Context, name string) (domain.Athlete, error) {
	for _, a := range f.athletes {
		if strings.EqualFold(a.Name, name) {
			return a, nil
		}
	}
	return domain.Athlete{}, domain.NotFound("athlete not found")
}

func (f *fakeStore) FreeAgents(context.Context) ([]domain.Athlete, error) {
	var out []domain.Athlete
	for _, a := range f.athletes {
		if _, ok := f.slots[a.ID]; !ok {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeStore) AthletesByRealTeam(_ context.Context, teamID int64) ([]domain.Athlete, error) {
	var out []domain.Athlete
	for _, a := range f.athletes {
		if a.RealTeamID != nil && *a.RealTeamID == teamID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeStore) RealTeamByRef(_ context.Context, ref string) (domain.RealTeam, error) {
	for _, t := range f.realTeams {
		if strings.EqualFold(t.Name, ref) || strings.EqualFold(t.Abbrev, ref) {
			return t, nil
		}
	}
	return domain.RealTeam{}, domain.NotFound("team not found")
}

func (f *fakeStore) RegisterTeam(_ context.Context, ownerID, name, abbrev string) (domain.FantasyTeam, error) {
	for _, t := range f.teams {
		if strings.EqualFold(t.Name, name) {
			return domain.FantasyTeam{}, domain.Conflict("a team with that name already exists")
		}
		if strings.EqualFold(t.Abbrev, abbrev) {
			return domain.FantasyTeam{}, domain.Conflict("a team with that abbreviation already exists")
		}
	}
	t := domain.FantasyTeam{ID: f.id(), OwnerID: ownerID, Name: name, Abbrev: abbrev}
	f.teams = append(f.teams, t)
	return t, nil
}

func (f *fakeStore) FantasyTeamByOwner(_ context.Context, discordID string) (domain.FantasyTeam, error) {
	for _, t := range f.teams {
		if t.OwnerID == discordID {
			return t, nil
		}
	}
	return domain.FantasyTeam{}, domain.NotFound("team not found")
}

func (f *fakeStore) FantasyTeamByRef(_ context.Context, ref string) (domain.FantasyTeam, error) {
	for _, t := range f.teams {
		if strings.EqualFold(t.Name, ref) || strings.EqualFold(t.Abbrev, ref) {
			return t, nil
		}
	}
	return domain.FantasyTeam{}, domain.NotFound("team not found")
}

func (f *fakeStore) FantasyTeams(context.Context) ([]domain.FantasyTeam, error) {
	return append([]domain.FantasyTeam(nil), f.teams...), nil
}

func (f *fakeStore) AllSlots(context.Context) ([]domain.Slot, error) {
	var out []domain.Slot
	for _, s := range f.slots {
		s.Athlete = f.athletes[s.AthleteID]
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeStore) ResultsByAthletes(_ context.Context, ids []int64) ([]domain.MatchResult, error) {
	f.resultLoads++
	want := map[int64]bool{}
	for _, id := range ids {
		want[id] = true
	}
	var out []domain.MatchResult
	for _, r := range f.results {
		if want[r.AthleteID] {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeStore) MatchExists(_ context.Context, matchID int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.results {
		if r.MatchID == matchID {
			return true, nil
		}
	}
	return false, nil
}

// SaveMatch crea los atletas que falten, como hace el upsert real.
func (f *fakeStore) SaveMatch(_ context.Context, m domain.ScrapedMatch, eventID *int64) (domain.UploadReport, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rep := domain.UploadReport{MatchID: m.MatchID, Games: len(m.Games)}
	for _, g := range m.Games {
		for _, t := range g.Teams {
			for _, p := range t.Players {
				var a domain.Athlete
				found := false
				for _, x := range f.athletes {
					if strings.EqualFold(x.Name, p.Name) {
						a, found = x, true
						break
					}
				}
				if !found {
					a = domain.Athlete{ID: f.id(), Name: p.Name}
					f.athletes[a.ID] = a
				}
				r := domain.MatchResult{ID: f.id(), MatchID: m.MatchID, GameID: g.GameID, EventID: eventID,
					AthleteID: a.ID, Map: g.Map, Agent: p.Agent, Stats: p.Stats}
				f.results = append(f.results, r)
				rep.Results = append(rep.Results, r)
			}
		}
	}
	rep.Inserted = len(rep.Results)
	if rep.Inserted > 0 {
		f.epoch++
		rep.Epoch = f.epoch
	}
	f.fetches[m.MatchID] = "uploaded"
	return rep, nil
}

func (f *fakeStore) ImportRoster(_ context.Context, r domain.ScrapedRoster) (domain.RealTeam, []domain.Athlete, error) {
	t := domain.RealTeam{ID: f.id(), Name: r.Name, Abbrev: r.Abbrev}
	f.realTeams[t.ID] = t
	var out []domain.Athlete
	for _, p := range r.Players {
		id := f.id()
		if a, err := f.AthleteByName(context.Background(), p); err == nil {
			id, p = a.ID, a.Name
		}
		f.addAthlete(id, p, t.ID)
		out = append(out, f.athletes[id])
	}
	return t, out, nil
}

func (f *fakeStore) TrackEvent(_ context.Context, name string) (domain.Event, error) {
	for _, e := range f.events {
		if strings.EqualFold(e.Name, name) {
			return domain.Event{}, domain.Conflict("event is already tracked")
		}
	}
	e := domain.Event{ID: f.id(), Name: name}
	f.events = append(f.events, e)
	return e, nil
}

func (f *fakeStore) UntrackEvent(_ context.Context, name string) (bool, error) {
	for i, e := range f.events {
		if strings.EqualFold(e.Name, name) {
			f.events = append(f.events[:i], f.events[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) EventByName(_ context.Context, name string) (domain.Event, error) {
	for _, e := range f.events {
		if strings.EqualFold(e.Name, name) {
			return e, nil
		}
	}
	return domain.Event{}, domain.NotFound("event not found")
}

func (f *fakeStore) Events(context.Context) ([]domain.Event, error) {
	return append([]domain.Event(nil), f.events...), nil
}

func (f *fakeStore) StoredMatches(_ context.Context, ids []int64) (map[int64]bool, error) {
	out := map[int64]bool{}
	for _, id := range ids {
		if ok, _ := f.MatchExists(context.Background(), id); ok {
			out[id] = true
		}
	}
	return out, nil
}

func (f *fakeStore) Epoch(context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.epoch, nil
}

func (f *fakeStore) RecordFetch(_ context.Context, matchID int64, status, _ string) error {
	f.fetches[matchID] = status
	return nil
}

// fakeSource devuelve matches y rosters precargados.
type fakeSource struct {
	matches map[string]domain.ScrapedMatch
	rosters map[string]domain.ScrapedRoster
	err     error
	calls   int
}

func (s *fakeSource) ParseMatch(_ context.Context, id string) (domain.ScrapedMatch, error) {
	s.calls++
	if s.err != nil {
		return domain.ScrapedMatch{}, s.err
	}
	m, ok := s.matches[id]
	if !ok {
		return m, domain.NotFound("match %s not found", id)
	}
	return m, nil
}

func (s *fakeSource) ParseTeam(_ context.Context, url string) (domain.ScrapedRoster, error) {
	r, ok := s.rosters[url]
	if !ok {
		return r, domain.NotFound("team not found")
	}
	return r, nil
}

type fakeFeed struct {
	recent []domain.RecentMatch
	err    error
}

func (f *fakeFeed) RecentResults(context.Context) ([]domain.RecentMatch, error) {
	return f.recent, f.err
}

var errBoom = errors.New("boom")

// oneGame arma un match de un mapa con un jugador por equipo.
func oneGame(matchID, gameID int64, p1, p2 string, k1, k2 int) domain.ScrapedMatch {
	return domain.ScrapedMatch{MatchID: matchID, Games: []domain.ScrapedGame{{
		GameID: gameID,
		Map:    "Ascent",
		Teams: [2]domain.ScrapedTeam{
			{Name: "Alpha", Players: []domain.ScrapedPlayer{{Name: p1, Agent: "jett", Stats: domain.StatLine{Kills: k1}}}},
			{Name: "Beta", Players: []domain.ScrapedPlayer{{Name: p2, Agent: "sova", Stats: domain.StatLine{Kills: k2}}}},
		},
	}}}
}
