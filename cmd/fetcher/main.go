// Lambda programada (EventBridge) que sube los resultados nuevos de los eventos trackeados.
package main

import (
	"context"
	"fmt"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/rs/zerolog/log"

	"github.com/jose-valero/fantasy-vct-bot/internal/adapters/vlr"
	"github.com/jose-valero/fantasy-vct-bot/internal/app/service"
	"github.com/jose-valero/fantasy-vct-bot/internal/infra/config"
	"github.com/jose-valero/fantasy-vct-bot/internal/infra/storage"
	"github.com/jose-valero/fantasy-vct-bot/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}
	logger.Init(cfg.LogLevel, false)

	pool, db, err := storage.OpenPool(context.Background(), cfg.DatabaseURL, 2)
	if err != nil {
		log.Fatal().Err(err).Msg("db")
	}
	defer pool.Close()

	store := storage.NewStore(db)
	vc := vlr.New(vlr.WithBaseURL(cfg.VLRBaseURL), vlr.WithAPIURL(cfg.VLRAPIURL))
	league := service.NewLeague(store, vc)
	f := service.NewFetcher(vc, store, league, cfg.FetchMatchDelay, nil)

	lambda.Start(func(ctx context.Context) (string, error) {
		sum, err := f.RunOnce(ctx)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("seen=%d uploaded=%d duplicates=%d failed=%d",
			sum.Seen, sum.Uploaded, sum.Duplicates, sum.Failed), nil
	})
}
