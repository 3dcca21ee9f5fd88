package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"wordrush/internal/app"
	"wordrush/internal/config"
	"wordrush/internal/dictionary"
	"wordrush/internal/events"
	"wordrush/internal/store"
	httpTransport "wordrush/internal/transport/http"
)

const GracefulShutdownTimeout = 30 * time.Second

func main() {
	// Load configuration
	cfg, err := config.Load(os.Getenv("WORDRUSH_CONFIG"))
	if err != nil {
		log.Fatal().Err(err).Msg("config-load-failed")
	}

	setupLogging(cfg.Logging)
	logger := log.Logger

	logger.Info().
		Str("env", cfg.Server.Env).
		Str("port", cfg.Server.Port).
		Str("store", cfg.Store.Backend).
		Msg("starting-wordrush-server")

	// Without a word list the server still runs, but every word is rejected.
	dict, err := dictionary.Load(cfg.Dictionary.Path)
	if err != nil {
		logger.Warn().Err(err).Str("path", cfg.Dictionary.Path).Msg("dictionary-unavailable-all-words-will-be-rejected")
		dict = dictionary.Empty()
	} else {
		logger.Info().Int("words", dict.Size()).Int("seeds", dict.SeedCount()).Msg("dictionary-loaded")
	}

	backend, err := store.Open(cfg.Store)
	if err != nil {
		logger.Fatal().Err(err).Msg("store-open-failed")
	}
	st := store.NewRetrying(backend, cfg.Store.RetryAttempts, cfg.Store.RetryDelay, logger)
	defer st.Close()

	publishers := events.Multi{events.NewLogPublisher(logger)}
	if cfg.NATS.URL != "" {
		nc, err := nats.Connect(cfg.NATS.URL, nats.Name("wordrush"))
		if err != nil {
			logger.Fatal().Err(err).Str("url", cfg.NATS.URL).Msg("nats-connect-failed")
		}
		defer nc.Drain()
		publishers = append(publishers, events.NewNATSPublisher(nc, cfg.NATS.Subject))
		logger.Info().Str("subject", cfg.NATS.Subject).Msg("publishing-events-to-nats")
	}

	service := app.NewGameService(st, dict, dictionary.NewGenerator(dict), publishers, logger, app.Options{
		Duration:     cfg.Game.Duration,
		Retention:    cfg.Game.Retention,
		CodeAttempts: cfg.Game.CodeAttempts,
	})

	server := httpTransport.NewServer(cfg, service, dict, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		service.RunSweeper(gctx, cfg.Game.SweepInterval)
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info().Msg("shutting-down-server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), GracefulShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error().Err(err).Msg("server-error")
	}
	logger.Info().Msg("server-stopped")
}

func setupLogging(cfg config.LoggingConfig) {
	zerolog.SetGlobalLevel(parseLogLevel(cfg.Level))
	if cfg.Format == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}

func parseLogLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
