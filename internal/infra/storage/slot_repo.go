package storage

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jose-valero/fantasy-vct-bot/internal/domain"
)

type SlotRepo struct{ db dbtx }

func NewSlotRepo(db dbtx) *SlotRepo { return &SlotRepo{db: db} }

const slotSelect = `
SELECT s.fantasy_team_id, s.athlete_id, s.position, ` + athleteCols + `
  FROM slots s
  JOIN athletes a ON a.id = s.athlete_id
  LEFT JOIN real_teams t ON t.id = a.real_team_id`

func scanSlot(row interface{ Scan(...any) error }) (domain.Slot, error) {
	var s domain.Slot
	var team sql.NullInt64
	err := row.Scan(&s.FantasyTeamID, &s.AthleteID, &s.Position,
		&s.Athlete.ID, &s.Athlete.Name, &team, &s.Athlete.RealTeamAbbrev)
	if team.Valid {
		id := team.Int64
		s.Athlete.RealTeamID = &id
	}
	return s, err
}

func collectSlots(rows *sql.Rows, err error) ([]domain.Slot, error) {
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []domain.Slot
	for rows.Next() {
		s, err := scanSlot(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// SlotOf busca al atleta en cualquier roster.
func (r *SlotRepo) SlotOf(ctx context.Context, athleteID int64) (domain.Slot, bool, error) {
	s, err := scanSlot(r.db.QueryRowContext(ctx, slotSelect+` WHERE s.athlete_id = $1`, athleteID))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Slot{}, false, nil
	}
	if err != nil {
		return domain.Slot{}, false, err
	}
	return s, true, nil
}

func (r *SlotRepo) Roster(ctx context.Context, teamID int64) ([]domain.Slot, error) {
	return collectSlots(r.db.QueryContext(ctx, slotSelect+`
 WHERE s.fantasy_team_id = $1
 ORDER BY s.position`, teamID))
}

// AllSlots devuelve todos los rosters, agrupables por FantasyTeamID.
func (r *SlotRepo) AllSlots(ctx context.Context) ([]domain.Slot, error) {
	return collectSlots(r.db.QueryContext(ctx, slotSelect+` ORDER BY s.fantasy_team_id, s.position`))
}

func (r *SlotRepo) InsertSlot(ctx context.Context, s domain.Slot) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO slots (athlete_id, fantasy_team_id, position) VALUES ($1, $2, $3)
`, s.AthleteID, s.FantasyTeamID, s.Position)
	return mapErr(err, "slot")
}

func (r *SlotRepo) DeleteSlot(ctx context.Context, teamID, athleteID int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
DELETE FROM slots WHERE fantasy_team_id = $1 AND athlete_id = $2
`, teamID, athleteID)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// SetPosition no valida nada; usar vía Store.ApplyMoves.
func (r *SlotRepo) SetPosition(ctx context.Context, teamID, athleteID int64, pos int) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE slots SET position = $3 WHERE fantasy_team_id = $1 AND athlete_id = $2
`, teamID, athleteID, pos)
	if err != nil {
		return mapErr(err, "slot")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFound("athlete is not on this roster")
	}
	return nil
}
