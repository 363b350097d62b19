package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jose-valero/fantasy-vct-bot/internal/app/roster"
	"github.com/jose-valero/fantasy-vct-bot/internal/domain"
)

// Store junta los repos; sus métodos se promueven desde cada repo embebido.
// Dentro de WithTx todos los repos comparten la misma *sql.Tx.
type Store struct {
	db *sql.DB
	tx *sql.Tx

	*RealTeamRepo
	*AthleteRepo
	*FantasyRepo
	*SlotRepo
	*ResultRepo
	*EventRepo
	*EpochRepo
	*FetchLogRepo
}

func NewStore(db *sql.DB) *Store {
	s := newStore(db)
	s.db = db
	return s
}

func newStore(q dbtx) *Store {
	return &Store{
		RealTeamRepo: NewRealTeamRepo(q),
		AthleteRepo:  NewAthleteRepo(q),
		FantasyRepo:  NewFantasyRepo(q),
		SlotRepo:     NewSlotRepo(q),
		ResultRepo:   NewResultRepo(q),
		EventRepo:    NewEventRepo(q),
		EpochRepo:    NewEpochRepo(q),
		FetchLogRepo: NewFetchLogRepo(q),
	}
}

// WithTx corre fn en una transacción; si fn falla se hace rollback completo.
// Llamado sobre un Store que ya está en una tx, reutiliza esa tx.
func (s *Store) WithTx(ctx context.Context, fn func(*Store) error) (err error) {
	if s.tx != nil {
		return fn(s)
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	txs := newStore(tx)
	txs.db = s.db
	txs.tx = tx

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = fn(txs); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return mapErr(err, "commit")
	}
	return nil
}

// ApplyMoves aplica todos los cambios de posición en una tx; el UNIQUE
// diferido deja que un swap pase por un estado intermedio repetido.
func (s *Store) ApplyMoves(ctx context.Context, teamID int64, moves []roster.Move) error {
	return s.WithTx(ctx, func(tx *Store) error {
		for _, m := range moves {
			if err := tx.SetPosition(ctx, teamID, m.AthleteID, m.To); err != nil {
				return err
			}
		}
		return nil
	})
}

// RegisterTeam crea el fantasy team y el vínculo con el dueño juntos.
func (s *Store) RegisterTeam(ctx context.Context, ownerID, name, abbrev string) (domain.FantasyTeam, error) {
	var t domain.FantasyTeam
	err := s.WithTx(ctx, func(tx *Store) error {
		var err error
		t, err = tx.CreateFantasyTeam(ctx, ownerID, name, abbrev)
		return err
	})
	return t, err
}

// SaveMatch crea equipos y atletas que falten, inserta todas las filas y sube
// score_epoch, todo en una tx.
func (s *Store) SaveMatch(ctx context.Context, m domain.ScrapedMatch, eventID *int64) (domain.UploadReport, error) {
	rep := domain.UploadReport{MatchID: m.MatchID, Games: len(m.Games)}
	err := s.WithTx(ctx, func(tx *Store) error {
		var rows []domain.MatchResult
		for _, g := range m.Games {
			for _, team := range g.Teams {
				var teamID *int64
				if team.Name != "" {
					rt, err := tx.UpsertRealTeam(ctx, domain.RealTeam{Name: team.Name, Abbrev: team.Abbrev})
					if err != nil {
						return err
					}
					teamID = &rt.ID
				}
				for _, p := range team.Players {
					a, err := tx.UpsertAthlete(ctx, p.Name, teamID)
					if err != nil {
						return err
					}
					rows = append(rows, domain.MatchResult{
						MatchID:   m.MatchID,
						GameID:    g.GameID,
						EventID:   eventID,
						AthleteID: a.ID,
						Map:       g.Map,
						Agent:     p.Agent,
						Stats:     p.Stats,
					})
				}
			}
		}

		n, err := tx.InsertResults(ctx, rows)
		if err != nil {
			return err
		}
		rep.Inserted, rep.Results = n, rows
		if n > 0 {
			if rep.Epoch, err = tx.BumpEpoch(ctx); err != nil {
				return err
			}
		}
		return tx.RecordFetch(ctx, m.MatchID, FetchUploaded, fmt.Sprintf("%d games, %d rows", len(m.Games), n))
	})
	if err != nil {
		return domain.UploadReport{}, err
	}
	return rep, nil
}

// ImportRoster crea (o actualiza) el equipo real y mueve a sus jugadores a él.
func (s *Store) ImportRoster(ctx context.Context, r domain.ScrapedRoster) (domain.RealTeam, []domain.Athlete, error) {
	var team domain.RealTeam
	var athletes []domain.Athlete
	err := s.WithTx(ctx, func(tx *Store) error {
		var err error
		team, err = tx.UpsertRealTeam(ctx, domain.RealTeam{Name: r.Name, Abbrev: r.Abbrev})
		if err != nil {
			return err
		}
		for _, name := range r.Players {
			a, err := tx.UpsertAthlete(ctx, name, &team.ID)
			if err != nil {
				return err
			}
			athletes = append(athletes, a)
		}
		return nil
	})
	return team, athletes, err
}
