package app

import (
	"fmt"

	"github.com/ternarybob/arbor"

	"github.com/tweakforge/tweakforge/internal/common"
	"github.com/tweakforge/tweakforge/internal/handlers"
	"github.com/tweakforge/tweakforge/internal/interfaces"
	"github.com/tweakforge/tweakforge/internal/services/compiler"
	"github.com/tweakforge/tweakforge/internal/services/sharecode"
	"github.com/tweakforge/tweakforge/internal/services/software"
	"github.com/tweakforge/tweakforge/internal/stableid"
	"github.com/tweakforge/tweakforge/internal/storage/badger"
)

// App holds all application components and dependencies
type App struct {
	Config         *common.Config
	Logger         arbor.ILogger
	StorageManager interfaces.StorageManager

	// Core engines
	CompilerService *compiler.Service
	ShareCodec      *sharecode.Codec
	SoftwareService interfaces.SoftwareService

	// HTTP handlers
	APIHandler      *handlers.APIHandler
	ScriptHandler   *handlers.ScriptHandler
	ShareHandler    *handlers.ShareHandler
	CatalogHandler  *handlers.CatalogHandler
	ProgressHandler *handlers.ProgressHandler
	StatusHandler   *handlers.StatusHandler
	WSHandler       *handlers.WebSocketHandler
}

// New wires up services and handlers. The stable-id registry audit
// runs here; a failed audit is a build error in the id tables and the
// process must not come up.
func New(cfg *common.Config, logger arbor.ILogger) (*App, error) {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	registry, err := stableid.Default()
	if err != nil {
		return nil, fmt.Errorf("stable-id registry audit failed: %w", err)
	}

	storageManager, err := badger.NewManager(logger, &cfg.Storage.Badger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	app.StorageManager = storageManager

	app.CompilerService = compiler.NewService(logger)
	app.ShareCodec = sharecode.NewCodec(registry, logger)
	app.SoftwareService = software.NewService(&cfg.Software, logger)

	if err := app.SoftwareService.StartScheduler(); err != nil {
		storageManager.Close()
		return nil, fmt.Errorf("failed to start catalog scheduler: %w", err)
	}

	app.APIHandler = handlers.NewAPIHandler()
	app.ScriptHandler = handlers.NewScriptHandler(app.CompilerService, app.SoftwareService, logger)
	app.ShareHandler = handlers.NewShareHandler(app.ShareCodec, cfg.Share.BaseURL, logger)
	app.CatalogHandler = handlers.NewCatalogHandler(app.SoftwareService, logger)
	app.ProgressHandler = handlers.NewProgressHandler(storageManager.ProgressStorage(), logger)
	app.StatusHandler = handlers.NewStatusHandler(app.SoftwareService, storageManager.ProgressStorage(), logger)
	app.WSHandler = handlers.NewWebSocketHandler(app.CompilerService, app.SoftwareService, logger)

	logger.Info().
		Int("retired_ids", len(registry.Ledger(stableid.DomainOptimization))).
		Msg("Application initialized")

	return app, nil
}

// Close releases application resources in reverse dependency order.
func (a *App) Close() error {
	if a.SoftwareService != nil {
		a.SoftwareService.Stop()
	}

	if a.StorageManager != nil {
		if err := a.StorageManager.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("Failed to close storage")
			return err
		}
	}

	a.Logger.Info().Msg("Application closed")
	return nil
}
