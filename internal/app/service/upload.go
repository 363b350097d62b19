package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jose-valero/fantasy-vct-bot/internal/app/scoring"
	"github.com/jose-valero/fantasy-vct-bot/internal/domain"
	"github.com/jose-valero/fantasy-vct-bot/internal/infra/metrics"
)

// fetchFailed es el estado de fetch_log para scrapes que fallaron.
const fetchFailed = "failed"

// UploadMatch baja un match de vlr.gg y guarda todas sus filas en una tx.
// El scrape corre sin mu; dedupe, escritura e invalidación corren con mu.
func (l *League) UploadMatch(ctx context.Context, matchID, eventName string) (string, error) {
	id, err := domain.ParseMatchID(matchID)
	if err != nil {
		return "", err
	}
	lg := l.log.With().Int64("match", id).Str("upload", uuid.NewString()).Logger()

	if dup, err := l.isUploaded(ctx, id); err != nil {
		return "", err
	} else if dup {
		l.metrics.Upload(metrics.OutcomeDuplicate)
		return "", domain.Conflict("This match has already been uploaded.")
	}

	var eventID *int64
	if name := strings.TrimSpace(eventName); name != "" {
		e, err := l.store.EventByName(ctx, name)
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.NotFound("event %s is not tracked", name)
		} else if err != nil {
			return "", err
		}
		eventID = &e.ID
	}

	m, err := l.src.ParseMatch(ctx, matchID)
	if err != nil {
		l.metrics.Upload(metrics.OutcomeError)
		if domain.KindOf(err) == domain.KindInternal {
			if rerr := l.store.RecordFetch(ctx, id, fetchFailed, err.Error()); rerr != nil {
				lg.Warn().Err(rerr).Msg("fetch log not recorded")
			}
		}
		lg.Warn().Err(err).Msg("match parse failed")
		return "", err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	// Otro upload pudo ganar mientras se scrapeaba.
	if dup, err := l.store.MatchExists(ctx, id); err != nil {
		return "", err
	} else if dup {
		l.metrics.Upload(metrics.OutcomeDuplicate)
		return "", domain.Conflict("This match has already been uploaded.")
	}

	rep, err := l.store.SaveMatch(ctx, m, eventID)
	if err != nil {
		l.metrics.Upload(metrics.OutcomeError)
		return "", fmt.Errorf("save match %d: %w", id, err)
	}

	// Si el epoch saltó más de uno, otro proceso subió resultados que el cache no vio.
	if rep.Epoch > 0 && rep.Epoch != l.epoch+1 {
		clear(l.loaded)
		lg.Debug().Int64("from", l.epoch).Int64("to", rep.Epoch).Msg("score epoch skipped, reloading")
	}
	for _, r := range rep.Results {
		if l.loaded[r.AthleteID] {
			l.cache.Store(r.AthleteID, r.GameID, scoring.Score(r.Stats))
		}
	}
	l.cache.Invalidate()
	if rep.Epoch > 0 {
		l.epoch = rep.Epoch
	}
	l.reportCache()
	l.metrics.Upload(metrics.OutcomeOK)
	lg.Info().Int("games", rep.Games).Int("rows", rep.Inserted).Msg("match uploaded")

	return fmt.Sprintf("📥 Uploaded match %d: %d maps, %d stat lines.", id, rep.Games, rep.Inserted), nil
}

func (l *League) isUploaded(ctx context.Context, id int64) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.store.MatchExists(ctx, id)
}
