// Lambda programada que limpia fetch_log.
package main

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/rs/zerolog/log"

	"github.com/jose-valero/fantasy-vct-bot/internal/infra/config"
	"github.com/jose-valero/fantasy-vct-bot/internal/infra/storage"
	"github.com/jose-valero/fantasy-vct-bot/pkg/logger"
)

// Retención de los fetches fallidos; los uploads no se borran.
const failedRetention = 7 * 24 * time.Hour

func handler(ctx context.Context) (string, error) {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Sprintf("config: %v", err), nil
	}
	logger.Init(cfg.LogLevel, false)

	pool, db, err := storage.OpenPool(ctx, cfg.DatabaseURL, 2)
	if err != nil {
		return fmt.Sprintf("db: %v", err), nil
	}
	defer pool.Close()

	cctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	n, err := storage.NewStore(db).PruneFetchLog(cctx, failedRetention)
	if err != nil {
		log.Error().Err(err).Msg("prune fetch log")
		return "", err
	}
	log.Info().Int64("deleted", n).Msg("fetch log pruned")
	return fmt.Sprintf("deleted=%d", n), nil
}

func main() { lambda.Start(handler) }
