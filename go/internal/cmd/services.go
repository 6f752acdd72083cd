package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/kchandnani/fntz/go/clients/sleeper_client"
	"github.com/kchandnani/fntz/go/internal/events"
	"github.com/kchandnani/fntz/go/internal/gateway"
	"github.com/kchandnani/fntz/go/internal/importer"
	"github.com/kchandnani/fntz/go/internal/playerdir"
	"github.com/kchandnani/fntz/go/internal/storage"
	"github.com/kchandnani/fntz/go/internal/userdata"
)

// Services holds every wired component
type Services struct {
	UserData  *userdata.App
	Players   *playerdir.App
	API       *gateway.API
	Publisher events.Publisher
	ConnMgr   *gateway.ConnectionManager
	Consumer  *gateway.EventConsumer
}

func setupServices(cfg *Config, db *sql.DB) (*Services, error) {
	logger := log.Logger

	var sleeper *sleeper_client.SleeperClient
	if cfg.Sleeper.BaseURL != "" {
		sleeper = sleeper_client.NewSleeperClientWithBaseURL(cfg.Sleeper.BaseURL)
	} else {
		sleeper = sleeper_client.NewSleeperClient()
	}

	store, err := setupStore(cfg, db)
	if err != nil {
		return nil, err
	}

	clock := clockwork.NewRealClock()
	repo := storage.NewRepository(store, clock, logger)

	publisher, err := setupPublisher(cfg)
	if err != nil {
		return nil, err
	}

	imp := importer.NewApp(sleeper, logger)
	userData := userdata.NewApp(repo, imp, clock, publisher, logger)
	players := playerdir.NewApp(sleeper)

	services := &Services{
		UserData:  userData,
		Players:   players,
		API:       gateway.NewAPI(userData, players),
		Publisher: publisher,
	}

	if cfg.NATS.Enabled {
		cm := gateway.NewConnectionManager(gateway.DefaultConnectionConfig())
		consumerCfg := gateway.DefaultJetStreamConsumerConfig()
		consumerCfg.URL = cfg.NATS.URL
		consumer, err := gateway.NewEventConsumer(cm, consumerCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create event consumer: %w", err)
		}
		services.ConnMgr = cm
		services.Consumer = consumer
	}

	return services, nil
}

func setupStore(cfg *Config, db *sql.DB) (storage.Store, error) {
	switch cfg.Storage.Backend {
	case "postgres":
		if db == nil {
			return nil, fmt.Errorf("postgres storage backend requires a database connection")
		}
		store := storage.NewPGStore(db)
		if err := store.EnsureSchema(context.Background()); err != nil {
			return nil, err
		}
		return store, nil
	case "file":
		return storage.NewFileStore(cfg.Storage.FileDir), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

func setupPublisher(cfg *Config) (events.Publisher, error) {
	if !cfg.NATS.Enabled {
		return events.NopPublisher{}, nil
	}

	jsCfg := events.DefaultJetStreamConfig()
	jsCfg.URL = cfg.NATS.URL
	publisher, err := events.NewJetStreamPublisher(jsCfg, log.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create event publisher: %w", err)
	}
	return publisher, nil
}
