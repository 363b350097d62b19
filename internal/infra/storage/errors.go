package storage

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jose-valero/fantasy-vct-bot/internal/domain"
)

const pgUniqueViolation = "23505"

// Mensajes por constraint para los conflictos que ve el usuario.
var uniqueMessages = map[string]string{
	"fantasy_teams_name_lower_uq":   "that team name is taken",
	"fantasy_teams_abbrev_lower_uq": "that abbreviation is taken",
	"owners_fantasy_team_id_key":    "that team already has an owner",
	"slots_pkey":                    "that athlete has already been drafted",
	"slots_team_position_uq":        "that roster position is already taken",
	"events_name_lower_uq":          "that event is already tracked",
	"real_teams_name_key":           "that team already exists",
	"athletes_name_lower_uq":        "that athlete already exists",
}

// mapErr traduce errores del driver a errores de dominio.
func mapErr(err error, what string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Wrap(domain.KindNotFound, what+" not found", err)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		msg, ok := uniqueMessages[pgErr.ConstraintName]
		if !ok {
			msg = what + " already exists"
		}
		return domain.Wrap(domain.KindConflict, msg, err)
	}
	return err
}
