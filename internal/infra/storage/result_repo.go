package storage

import (
	"context"
	"database/sql"

	pq "github.com/lib/pq"

	"github.com/jose-valero/fantasy-vct-bot/internal/domain"
)

type ResultRepo struct{ db dbtx }

func NewResultRepo(db dbtx) *ResultRepo { return &ResultRepo{db: db} }

const resultSelect = `
SELECT id, match_id, game_id, event_id, athlete_id, map, agent,
       acs, kills, deaths, assists, two_kills, three_kills, four_kills, five_kills,
       clutch_v2, clutch_v3, clutch_v4, clutch_v5
  FROM match_results`

func scanResult(row interface{ Scan(...any) error }) (domain.MatchResult, error) {
	var m domain.MatchResult
	var ev sql.NullInt64
	st := &m.Stats
	err := row.Scan(&m.ID, &m.MatchID, &m.GameID, &ev, &m.AthleteID, &m.Map, &m.Agent,
		&st.ACS, &st.Kills, &st.Deaths, &st.Assists, &st.TwoKills, &st.ThreeKills, &st.FourKills, &st.FiveKills,
		&st.ClutchV2, &st.ClutchV3, &st.ClutchV4, &st.ClutchV5)
	if ev.Valid {
		id := ev.Int64
		m.EventID = &id
	}
	return m, err
}

func collectResults(rows *sql.Rows, err error) ([]domain.MatchResult, error) {
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []domain.MatchResult
	for rows.Next() {
		m, err := scanResult(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// InsertResults inserta las filas y devuelve cuántas eran nuevas. Las
// repetidas (mismo atleta y game) se ignoran. Debe correr en WithTx.
func (r *ResultRepo) InsertResults(ctx context.Context, results []domain.MatchResult) (int, error) {
	inserted := 0
	for _, m := range results {
		st := m.Stats
		res, err := r.db.ExecContext(ctx, `
INSERT INTO match_results
  (match_id, game_id, event_id, athlete_id, map, agent,
   acs, kills, deaths, assists, two_kills, three_kills, four_kills, five_kills,
   clutch_v2, clutch_v3, clutch_v4, clutch_v5)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)
ON CONFLICT (athlete_id, game_id) DO NOTHING
`, m.MatchID, m.GameID, m.EventID, m.AthleteID, m.Map, m.Agent,
			st.ACS, st.Kills, st.Deaths, st.Assists, st.TwoKills, st.ThreeKills, st.FourKills, st.FiveKills,
			st.ClutchV2, st.ClutchV3, st.ClutchV4, st.ClutchV5)
		if err != nil {
			return inserted, mapErr(err, "result")
		}
		n, _ := res.RowsAffected()
		inserted += int(n)
	}
	return inserted, nil
}

func (r *ResultRepo) ResultsByAthletes(ctx context.Context, athleteIDs []int64) ([]domain.MatchResult, error) {
	if len(athleteIDs) == 0 {
		return nil, nil
	}
	return collectResults(r.db.QueryContext(ctx, resultSelect+`
 WHERE athlete_id = ANY($1)
 ORDER BY athlete_id, match_id, game_id`, pq.Array(athleteIDs)))
}

func (r *ResultRepo) MatchExists(ctx context.Context, matchID int64) (bool, error) {
	var ok bool
	err := r.db.QueryRowContext(ctx, `
SELECT EXISTS (SELECT 1 FROM match_results WHERE match_id = $1)
`, matchID).Scan(&ok)
	return ok, err
}

// StoredMatches filtra de ids los que ya tienen resultados.
func (r *ResultRepo) StoredMatches(ctx context.Context, matchIDs []int64) (map[int64]bool, error) {
	out := map[int64]bool{}
	if len(matchIDs) == 0 {
		return out, nil
	}
	rows, err := r.db.QueryContext(ctx, `
SELECT DISTINCT match_id FROM match_results WHERE match_id = ANY($1)
`, pq.Array(matchIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out[id] = true
	}
	return out, rows.Err()
}
