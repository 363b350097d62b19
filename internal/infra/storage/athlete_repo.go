package storage

import (
	"context"
	"database/sql"

	"github.com/jose-valero/fantasy-vct-bot/internal/domain"
)

type AthleteRepo struct{ db dbtx }

func NewAthleteRepo(db dbtx) *AthleteRepo { return &AthleteRepo{db: db} }

const athleteCols = `a.id, a.name, a.real_team_id, COALESCE(t.abbrev, '')`

const athleteFrom = `
  FROM athletes a
  LEFT JOIN real_teams t ON t.id = a.real_team_id`

func scanAthlete(row interface{ Scan(...any) error }) (domain.Athlete, error) {
	var a domain.Athlete
	var team sql.NullInt64
	if err := row.Scan(&a.ID, &a.Name, &team, &a.RealTeamAbbrev); err != nil {
		return domain.Athlete{}, err
	}
	if team.Valid {
		id := team.Int64
		a.RealTeamID = &id
	}
	return a, nil
}

func collectAthletes(rows *sql.Rows, err error) ([]domain.Athlete, error) {
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []domain.Athlete
	for rows.Next() {
		a, err := scanAthlete(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *AthleteRepo) GetAthlete(ctx context.Context, id int64) (domain.Athlete, error) {
	a, err := scanAthlete(r.db.QueryRowContext(ctx, `SELECT `+athleteCols+athleteFrom+` WHERE a.id = $1`, id))
	return a, mapErr(err, "athlete")
}

func (r *AthleteRepo) AthleteByName(ctx context.Context, name string) (domain.Athlete, error) {
	a, err := scanAthlete(r.db.QueryRowContext(ctx, `SELECT `+athleteCols+athleteFrom+` WHERE lower(a.name) = lower($1)`, name))
	return a, mapErr(err, "athlete "+name)
}

// UpsertAthlete crea el atleta o le actualiza el equipo real si viene uno.
func (r *AthleteRepo) UpsertAthlete(ctx context.Context, name string, realTeamID *int64) (domain.Athlete, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, `
INSERT INTO athletes (name, real_team_id)
VALUES ($1, $2)
ON CONFLICT (lower(name)) DO UPDATE SET
  real_team_id = COALESCE(EXCLUDED.real_team_id, athletes.real_team_id)
RETURNING id
`, name, realTeamID).Scan(&id)
	if err != nil {
		return domain.Athlete{}, mapErr(err, "athlete "+name)
	}
	return r.GetAthlete(ctx, id)
}

// FreeAgents: atletas que no están en ningún roster.
func (r *AthleteRepo) FreeAgents(ctx context.Context) ([]domain.Athlete, error) {
	return collectAthletes(r.db.QueryContext(ctx, `
SELECT `+athleteCols+athleteFrom+`
  LEFT JOIN slots s ON s.athlete_id = a.id
 WHERE s.athlete_id IS NULL
 ORDER BY lower(a.name)
`))
}

func (r *AthleteRepo) AthletesByRealTeam(ctx context.Context, teamID int64) ([]domain.Athlete, error) {
	return collectAthletes(r.db.QueryContext(ctx, `
SELECT `+athleteCols+athleteFrom+`
 WHERE a.real_team_id = $1
 ORDER BY lower(a.name)
`, teamID))
}
