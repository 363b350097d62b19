package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	discordrouter "github.com/jose-valero/fantasy-vct-bot/internal/adapters/discord"
	"github.com/jose-valero/fantasy-vct-bot/internal/adapters/httpapi"
	"github.com/jose-valero/fantasy-vct-bot/internal/adapters/vlr"
	"github.com/jose-valero/fantasy-vct-bot/internal/app/draft"
	"github.com/jose-valero/fantasy-vct-bot/internal/app/service"
	"github.com/jose-valero/fantasy-vct-bot/internal/infra/config"
	"github.com/jose-valero/fantasy-vct-bot/internal/infra/metrics"
	"github.com/jose-valero/fantasy-vct-bot/internal/infra/storage"
	"github.com/jose-valero/fantasy-vct-bot/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}
	logger.Init(cfg.LogLevel, cfg.LogPretty)
	if err := cfg.RequireBot(); err != nil {
		log.Fatal().Err(err).Msg("config")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	defer stop()

	// DB
	db, err := storage.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("db")
	}
	defer db.Close()
	if err := storage.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("migrate")
	}
	log.Info().Msg("✅ DB lista y migrada")

	store := storage.NewStore(db)
	m := metrics.New()
	vc := vlr.New(vlr.WithBaseURL(cfg.VLRBaseURL), vlr.WithAPIURL(cfg.VLRAPIURL))

	d := draft.New(draft.WithRounds(cfg.DraftRounds))
	if cfg.SkipDraft {
		d.Skip()
	}
	league := service.NewLeague(store, vc,
		service.WithDraft(d),
		service.WithSubSlots(cfg.SubSlots),
		service.WithMetrics(m),
	)
	// Para que el primer SyncEpoch no invalide un cache vacío.
	if _, err := league.SyncEpoch(ctx); err != nil {
		log.Warn().Err(err).Msg("initial epoch")
	}

	// Discord
	auth := strings.TrimSpace(cfg.DiscordToken)
	if !strings.HasPrefix(strings.ToLower(auth), "bot ") {
		auth = "Bot " + auth
	}
	s, err := discordgo.New(auth)
	if err != nil {
		log.Fatal().Err(err).Msg("discord")
	}
	s.Identify.Intents = discordgo.IntentsGuilds
	if err := s.Open(); err != nil {
		log.Fatal().Err(err).Msg("discord open")
	}
	defer s.Close()
	log.Info().Str("user", s.State.User.Username).Str("id", s.State.User.ID).Msg("✅ conectado")

	r := discordrouter.NewRouter(s, cfg.DiscordGuild, cfg.AdminRoleIDs, league, m)
	if err := r.Register(); err != nil {
		log.Fatal().Err(err).Msg("registrando comandos")
	}
	r.Handlers()
	log.Info().Str("guild", cfg.DiscordGuild).Msg("✅ comandos registrados")

	fetcher := service.NewFetcher(vc, store, league, cfg.FetchMatchDelay, m)
	web := httpapi.New(cfg.UploadSecret, league, m.Handler())

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return web.Serve(gctx, cfg.HTTPAddr) })
	g.Go(func() error { return fetcher.Run(gctx, cfg.FetchInterval) })
	g.Go(func() error {
		// Uploads de las lambdas bumpean el epoch; acá nos enteramos.
		t := time.NewTicker(cfg.EpochInterval)
		defer t.Stop()
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-t.C:
				if _, err := league.SyncEpoch(gctx); err != nil && gctx.Err() == nil {
					log.Warn().Err(err).Msg("epoch sync")
				}
			}
		}
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
	log.Info().Msg("bye")
}
