package storage

import (
	"context"

	"github.com/jose-valero/fantasy-vct-bot/internal/domain"
)

type RealTeamRepo struct{ db dbtx }

func NewRealTeamRepo(db dbtx) *RealTeamRepo { return &RealTeamRepo{db: db} }

// UpsertRealTeam crea el equipo o completa abbrev/region si venían vacíos.
func (r *RealTeamRepo) UpsertRealTeam(ctx context.Context, t domain.RealTeam) (domain.RealTeam, error) {
	var out domain.RealTeam
	err := r.db.QueryRowContext(ctx, `
INSERT INTO real_teams (name, abbrev, region)
VALUES ($1, $2, $3)
ON CONFLICT (name) DO UPDATE SET
  abbrev = CASE WHEN EXCLUDED.abbrev <> '' THEN EXCLUDED.abbrev ELSE real_teams.abbrev END,
  region = CASE WHEN EXCLUDED.region <> '' THEN EXCLUDED.region ELSE real_teams.region END
RETURNING id, name, abbrev, region
`, t.Name, t.Abbrev, t.Region).Scan(&out.ID, &out.Name, &out.Abbrev, &out.Region)
	return out, mapErr(err, "team")
}

// RealTeamByRef busca por nombre o abreviatura, sin distinguir mayúsculas.
func (r *RealTeamRepo) RealTeamByRef(ctx context.Context, ref string) (domain.RealTeam, error) {
	var out domain.RealTeam
	err := r.db.QueryRowContext(ctx, `
SELECT id, name, abbrev, region
  FROM real_teams
 WHERE lower(name) = lower($1) OR lower(abbrev) = lower($1)
 ORDER BY (lower(name) = lower($1)) DESC, id
 LIMIT 1
`, ref).Scan(&out.ID, &out.Name, &out.Abbrev, &out.Region)
	return out, mapErr(err, "team "+ref)
}
