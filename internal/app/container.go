package app

import (
	"context"
	"time"

	"github.com/doeshing/dbpilot-go/internal/domain"
	"github.com/doeshing/dbpilot-go/internal/infrastructure/api"
	"github.com/doeshing/dbpilot-go/internal/infrastructure/config"
	"github.com/doeshing/dbpilot-go/internal/infrastructure/handshake"
	"github.com/doeshing/dbpilot-go/internal/infrastructure/kvstore"
	"github.com/doeshing/dbpilot-go/internal/pkg/logger"
	"github.com/doeshing/dbpilot-go/internal/ports"
	"github.com/doeshing/dbpilot-go/internal/services"
)

// Container wires up application services with infrastructure adapters.
type Container struct {
	Config       domain.Config
	ConfigLoader *config.FileLoader
	Logger       ports.Logger
	Store        ports.KeyValueStore
	Gateway      ports.DatabaseGateway
	Profiles     *services.ProfileStore
	Session      *services.SessionManager
	History      *services.HistoryLedger
	Pipeline     *services.Pipeline
}

// BuildContainer constructs the dependency graph and restores durable
// state, including the previous run's active session.
func BuildContainer(ctx context.Context, verbose bool) (*Container, error) {
	cfgLoader := config.NewFileLoader("")
	cfg, err := cfgLoader.Load(ctx)
	if err != nil {
		return nil, err
	}

	log := logger.NewStd(verbose)

	var store ports.KeyValueStore
	switch cfg.Storage.Backend {
	case "sqlite":
		store = kvstore.NewSQLiteStore(cfg.Storage.Dir)
	default:
		store = kvstore.NewFileStore(cfg.Storage.Dir)
	}

	gateway := api.NewClient(cfg.API.BaseURL, time.Duration(cfg.API.TimeoutSeconds)*time.Second)

	var tester ports.ConnectionTester
	switch cfg.Connection.Handshake {
	case "gateway":
		tester = handshake.NewGatewayTester(gateway)
	default:
		tester = handshake.NewSimulated(time.Duration(cfg.Connection.HandshakeDelayMS) * time.Millisecond)
	}

	profiles := services.NewProfileStore(store, log)
	if err := profiles.Restore(); err != nil {
		return nil, err
	}

	history := services.NewHistoryLedger(store, log)
	if err := history.Restore(); err != nil {
		return nil, err
	}

	session := services.NewSessionManager(profiles, tester, store, log)
	profiles.OnRemove(session.HandleProfileRemoved)

	pipeline := services.NewPipeline(gateway, history, session, log)

	session.RestoreOnStartup(ctx)

	return &Container{
		Config:       cfg,
		ConfigLoader: cfgLoader,
		Logger:       log,
		Store:        store,
		Gateway:      gateway,
		Profiles:     profiles,
		Session:      session,
		History:      history,
		Pipeline:     pipeline,
	}, nil
}
