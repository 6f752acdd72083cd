package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("could not load .env file")
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	cfg, err := loadConfig(getEnv("CONFIG_PATH", "config.yaml"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	var db *sql.DB
	if cfg.Storage.Backend == "postgres" {
		db, err = setupDatabase()
		if err != nil {
			log.Fatal().Err(err).Msg("failed to set up database")
		}
		defer db.Close()
	}

	services, err := setupServices(cfg, db)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to set up services")
	}
	defer services.Publisher.Close()

	if err := services.UserData.Refresh(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("failed to load user data")
	}

	server := setupServer(cfg, services)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if services.ConnMgr != nil {
		go services.ConnMgr.Start(ctx)
		go func() {
			if err := services.Consumer.Start(ctx); err != nil {
				log.Error().Err(err).Msg("event consumer failed")
			}
		}()
	}

	go func() {
		log.Info().
			Str("addr", server.Addr).
			Str("storage", cfg.Storage.Backend).
			Bool("nats", cfg.NATS.Enabled).
			Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	sig := <-sigChan
	log.Info().Str("signal", sig.String()).Msg("received shutdown signal")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}

	cancel()
	if services.Consumer != nil {
		if err := services.Consumer.Stop(); err != nil {
			log.Error().Err(err).Msg("event consumer stop failed")
		}
	}

	log.Info().Msg("shutdown complete")
}
