package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"

	"github.com/gametrade/backend/internal/api"
	"github.com/gametrade/backend/internal/browser"
	"github.com/gametrade/backend/internal/catalog"
	"github.com/gametrade/backend/internal/config"
	"github.com/gametrade/backend/internal/engine"
	"github.com/gametrade/backend/internal/source"
	"github.com/gametrade/backend/pkg/logger"
)

func main() {
	cfg := config.Load()
	logger.Init(logger.IsDev())
	log := logger.Log

	// GameStop first: it is the designated primary source for the
	// aggregate recommendation.
	specs := []engine.SourceSpec{
		{Name: "gamestop", Open: browserSource(cfg, source.NewGameStop)},
		{Name: "amazon", Open: browserSource(cfg, source.NewAmazon)},
	}

	eng := engine.New(specs, cfg.OverallTimeout)
	cat := catalog.New(cfg.RAWGAPIKey)

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})
	api.SetupRoutes(app, api.NewHandler(eng, cat))

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info().Msg("shutting down")
		if err := app.Shutdown(); err != nil {
			log.Error().Err(err).Msg("shutdown error")
		}
	}()

	addr := ":" + cfg.HTTPPort
	log.Info().
		Str("addr", addr).
		Int("sources", len(specs)).
		Msg("pricer started")

	if err := app.Listen(addr); err != nil {
		log.Fatal().Err(err).Msg("HTTP server error")
	}
}

// browserSource adapts a source constructor into an engine OpenFunc that
// launches a dedicated browser session per task and ties its cleanup to the
// task's lifetime.
func browserSource(cfg *config.Config, newSource func(*browser.Session) source.Source) engine.OpenFunc {
	return func(ctx context.Context) (source.Source, func(), error) {
		sess, err := browser.NewSession(ctx, browser.Options{
			PageTimeout:   cfg.SourceTimeout,
			PageLoadDelay: cfg.PageLoadDelay,
		})
		if err != nil {
			return nil, nil, err
		}
		return newSource(sess), sess.Close, nil
	}
}
