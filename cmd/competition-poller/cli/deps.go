package cli

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/runebound-clan/competition-poller/consumer"
	"github.com/runebound-clan/competition-poller/internal/clients/ingestclient"
	"github.com/runebound-clan/competition-poller/internal/clients/womclient"
	"github.com/runebound-clan/competition-poller/internal/config"
	"github.com/runebound-clan/competition-poller/internal/db"
	dbmodel "github.com/runebound-clan/competition-poller/internal/db/model"
	"github.com/runebound-clan/competition-poller/internal/queue"
	"github.com/runebound-clan/competition-poller/internal/services"
)

func loadConfig() (*config.Config, error) {
	cfgPath := GetConfigPath()
	cfg, err := config.New(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("error while loading config file %s: %w", cfgPath, err)
	}

	zerolog.SetGlobalLevel(cfg.ZerologLevel())
	return cfg, nil
}

// newService wires the poller dependencies, the returned cleanup releases connections
func newService(ctx context.Context, cfg *config.Config) (*services.Service, func(), error) {
	err := dbmodel.Setup(ctx, &cfg.Db)
	if err != nil {
		return nil, nil, fmt.Errorf("error while setting up db model: %w", err)
	}

	database, err := db.New(ctx, cfg.Db)
	if err != nil {
		return nil, nil, fmt.Errorf("error while creating db client: %w", err)
	}
	disconnect := func() {
		if err := database.Disconnect(context.WithoutCancel(ctx)); err != nil {
			log.Error().Err(err).Msg("error while disconnecting db client")
		}
	}
	if err := database.Ping(ctx); err != nil {
		disconnect()
		return nil, nil, fmt.Errorf("error while pinging db: %w", err)
	}
	dbClient := db.NewDbWithMetrics(database)

	var womClient womclient.WomInterface = womclient.NewClient(&cfg.Competition)
	womClient = womclient.NewWomClientWithMetrics(womClient)

	var ingestionClient ingestclient.IngestionInterface = ingestclient.NewClient(&cfg.Ingestion)
	ingestionClient = ingestclient.NewClientWithMetrics(ingestionClient)

	var publisher consumer.EventPublisher
	if cfg.Queue != nil {
		qm, err := queue.NewQueueManager(cfg.Queue)
		if err != nil {
			disconnect()
			return nil, nil, fmt.Errorf("failed to initialize event publisher: %w", err)
		}
		publisher = qm
	}

	cleanup := func() {
		if publisher != nil {
			publisher.Shutdown()
		}
		disconnect()
	}

	service := services.NewService(cfg, dbClient, womClient, ingestionClient, publisher)
	return service, cleanup, nil
}
