package storage

import (
	"context"
	"fmt"
	"time"
)

// Estados de fetch_log.
const (
	FetchUploaded  = "uploaded"
	FetchDuplicate = "duplicate"
	FetchFailed    = "failed"
)

type FetchLogRepo struct{ db dbtx }

func NewFetchLogRepo(db dbtx) *FetchLogRepo { return &FetchLogRepo{db: db} }

func (r *FetchLogRepo) RecordFetch(ctx context.Context, matchID int64, status, detail string) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO fetch_log (match_id, status, detail)
VALUES ($1, $2, $3)
ON CONFLICT (match_id) DO UPDATE SET
  status     = EXCLUDED.status,
  detail     = EXCLUDED.detail,
  fetched_at = now()
`, matchID, status, detail)
	return err
}

// PruneFetchLog borra fallos más viejos que age; los uploads quedan.
func (r *FetchLogRepo) PruneFetchLog(ctx context.Context, age time.Duration) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
DELETE FROM fetch_log
 WHERE status = $1
   AND fetched_at < now() - $2::interval
`, FetchFailed, durToInterval(age))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func durToInterval(d time.Duration) string {
	secs := int64(d.Seconds())
	if secs <= 0 {
		return "0 seconds"
	}
	return fmt.Sprintf("%d seconds", secs)
}
