package storage

import "context"

// EpochRepo: contador que sube cada vez que entran resultados nuevos. El bot
// lo consulta para invalidar su cache cuando escribe otro proceso.
type EpochRepo struct{ db dbtx }

func NewEpochRepo(db dbtx) *EpochRepo { return &EpochRepo{db: db} }

func (r *EpochRepo) BumpEpoch(ctx context.Context) (int64, error) {
	var e int64
	err := r.db.QueryRowContext(ctx, `
UPDATE score_epoch SET epoch = epoch + 1, updated_at = now() WHERE id = 1 RETURNING epoch
`).Scan(&e)
	return e, mapErr(err, "score epoch")
}

func (r *EpochRepo) Epoch(ctx context.Context) (int64, error) {
	var e int64
	err := r.db.QueryRowContext(ctx, `SELECT epoch FROM score_epoch WHERE id = 1`).Scan(&e)
	return e, mapErr(err, "score epoch")
}
