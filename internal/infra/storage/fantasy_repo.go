package storage

import (
	"context"

	"github.com/jose-valero/fantasy-vct-bot/internal/domain"
)

// FantasyRepo maneja fantasy teams y sus dueños (usuarios de Discord).
type FantasyRepo struct{ db dbtx }

func NewFantasyRepo(db dbtx) *FantasyRepo { return &FantasyRepo{db: db} }

const fantasyCols = `
SELECT f.id, f.name, f.abbrev, COALESCE(o.discord_id, '')
  FROM fantasy_teams f
  LEFT JOIN owners o ON o.fantasy_team_id = f.id`

func scanFantasy(row interface{ Scan(...any) error }) (domain.FantasyTeam, error) {
	var t domain.FantasyTeam
	err := row.Scan(&t.ID, &t.Name, &t.Abbrev, &t.OwnerID)
	return t, err
}

// CreateFantasyTeam inserta el equipo y lo asigna al dueño; usar vía Store.RegisterTeam.
func (r *FantasyRepo) CreateFantasyTeam(ctx context.Context, ownerID, name, abbrev string) (domain.FantasyTeam, error) {
	t := domain.FantasyTeam{OwnerID: ownerID, Name: name, Abbrev: abbrev}
	err := r.db.QueryRowContext(ctx, `
INSERT INTO fantasy_teams (name, abbrev) VALUES ($1, $2) RETURNING id
`, name, abbrev).Scan(&t.ID)
	if err != nil {
		return domain.FantasyTeam{}, mapErr(err, "team")
	}

	res, err := r.db.ExecContext(ctx, `
INSERT INTO owners (discord_id, fantasy_team_id)
VALUES ($1, $2)
ON CONFLICT (discord_id) DO UPDATE SET
  fantasy_team_id = EXCLUDED.fantasy_team_id
WHERE owners.fantasy_team_id IS NULL
`, ownerID, t.ID)
	if err != nil {
		return domain.FantasyTeam{}, mapErr(err, "owner")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.FantasyTeam{}, domain.Conflict("you already have a team")
	}
	return t, nil
}

func (r *FantasyRepo) FantasyTeamByOwner(ctx context.Context, discordID string) (domain.FantasyTeam, error) {
	t, err := scanFantasy(r.db.QueryRowContext(ctx, fantasyCols+` WHERE o.discord_id = $1`, discordID))
	if err != nil {
		return t, mapErr(err, "your team")
	}
	return t, nil
}

// FantasyTeamByRef acepta nombre o abreviatura.
func (r *FantasyRepo) FantasyTeamByRef(ctx context.Context, ref string) (domain.FantasyTeam, error) {
	t, err := scanFantasy(r.db.QueryRowContext(ctx, fantasyCols+`
 WHERE lower(f.name) = lower($1) OR lower(f.abbrev) = lower($1)
 ORDER BY (lower(f.name) = lower($1)) DESC
 LIMIT 1`, ref))
	return t, mapErr(err, "team "+ref)
}

func (r *FantasyRepo) FantasyTeams(ctx context.Context) ([]domain.FantasyTeam, error) {
	rows, err := r.db.QueryContext(ctx, fantasyCols+` ORDER BY f.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []domain.FantasyTeam
	for rows.Next() {
		t, err := scanFantasy(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
