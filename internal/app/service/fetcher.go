package service

import (
	"context"
	"errors"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jose-valero/fantasy-vct-bot/internal/domain"
	"github.com/jose-valero/fantasy-vct-bot/internal/infra/metrics"
	"github.com/jose-valero/fantasy-vct-bot/pkg/logger"
)

// Fetcher sube automáticamente los resultados de los eventos trackeados.
type Fetcher struct {
	feed    ResultFeed
	store   FetchStore
	up      Uploader
	delay   time.Duration
	metrics *metrics.Metrics
	log     zerolog.Logger
}

func NewFetcher(feed ResultFeed, store FetchStore, up Uploader, delay time.Duration, m *metrics.Metrics) *Fetcher {
	return &Fetcher{
		feed:    feed,
		store:   store,
		up:      up,
		delay:   delay,
		metrics: m,
		log:     logger.Component("fetcher"),
	}
}

// FetchSummary cuenta lo que pasó en una pasada.
type FetchSummary struct {
	Seen       int
	Uploaded   int
	Duplicates int
	Failed     int
}

// RunOnce recorre los resultados recientes y sube los que falten. Cede el
// procesador después de cada match para no acaparar el lock de la liga.
func (f *Fetcher) RunOnce(ctx context.Context) (FetchSummary, error) {
	var sum FetchSummary

	recent, err := f.feed.RecentResults(ctx)
	if err != nil {
		f.metrics.FetchRun(metrics.OutcomeError)
		return sum, err
	}
	events, err := f.store.Events(ctx)
	if err != nil {
		f.metrics.FetchRun(metrics.OutcomeError)
		return sum, err
	}
	tracked := make(map[string]string, len(events))
	for _, e := range events {
		tracked[strings.ToLower(e.Name)] = e.Name
	}

	var todo []domain.RecentMatch
	var ids []int64
	for _, m := range recent {
		if _, ok := tracked[strings.ToLower(m.Event)]; ok {
			todo = append(todo, m)
			ids = append(ids, m.MatchID)
		}
	}
	sum.Seen = len(todo)
	if len(todo) == 0 {
		f.metrics.FetchRun(metrics.OutcomeOK)
		return sum, nil
	}
	stored, err := f.store.StoredMatches(ctx, ids)
	if err != nil {
		f.metrics.FetchRun(metrics.OutcomeError)
		return sum, err
	}

	for _, m := range todo {
		if stored[m.MatchID] {
			continue
		}
		_, err := f.up.UploadMatch(ctx, strconv.FormatInt(m.MatchID, 10), tracked[strings.ToLower(m.Event)])
		switch {
		case err == nil:
			sum.Uploaded++
		case errors.Is(err, domain.ErrConflict):
			sum.Duplicates++
		case ctx.Err() != nil:
			return sum, ctx.Err()
		default:
			sum.Failed++
			f.log.Warn().Err(err).Int64("match", m.MatchID).Str("event", m.Event).Msg("auto upload failed")
		}

		runtime.Gosched()
		if err := sleep(ctx, f.delay); err != nil {
			return sum, err
		}
	}

	f.metrics.FetchRun(metrics.OutcomeOK)
	f.log.Info().Int("seen", sum.Seen).Int("uploaded", sum.Uploaded).Int("failed", sum.Failed).Msg("fetch pass done")
	return sum, nil
}

// Run hace una pasada al arrancar y después una por tick, hasta que ctx termine.
func (f *Fetcher) Run(ctx context.Context, interval time.Duration) error {
	t := time.NewTicker(interval)
	defer t.Stop()
	for ctx.Err() == nil {
		if _, err := f.RunOnce(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			f.log.Error().Err(err).Msg("fetch pass failed")
		}
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
		}
	}
	return nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
