package storage

import (
	"context"

	"github.com/jose-valero/fantasy-vct-bot/internal/domain"
)

// EventRepo guarda los eventos (torneos) que el fetch automático sigue.
type EventRepo struct{ db dbtx }

func NewEventRepo(db dbtx) *EventRepo { return &EventRepo{db: db} }

func (r *EventRepo) TrackEvent(ctx context.Context, name string) (domain.Event, error) {
	e := domain.Event{Name: name}
	err := r.db.QueryRowContext(ctx, `INSERT INTO events (name) VALUES ($1) RETURNING id`, name).Scan(&e.ID)
	return e, mapErr(err, "event")
}

func (r *EventRepo) UntrackEvent(ctx context.Context, name string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE lower(name) = lower($1)`, name)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (r *EventRepo) EventByName(ctx context.Context, name string) (domain.Event, error) {
	var e domain.Event
	err := r.db.QueryRowContext(ctx, `SELECT id, name FROM events WHERE lower(name) = lower($1)`, name).Scan(&e.ID, &e.Name)
	return e, mapErr(err, "event "+name)
}

func (r *EventRepo) Events(ctx context.Context) ([]domain.Event, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM events ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []domain.Event
	for rows.Next() {
		var e domain.Event
		if err := rows.Scan(&e.ID, &e.Name); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
