// Package wire provides dependency injection for the badgedesk application.
// It creates singleton services with lazy initialization.
package wire

import (
	"context"
	"database/sql"
	"io"
	"os"
	"sync"

	"go.uber.org/zap"

	cliadapter "github.com/helena-commits/badge-capture-stream/internal/adapters/cli"
	"github.com/helena-commits/badge-capture-stream/internal/adapters/devtools"
	"github.com/helena-commits/badge-capture-stream/internal/adapters/session"
	"github.com/helena-commits/badge-capture-stream/internal/adapters/sqlite"
	"github.com/helena-commits/badge-capture-stream/internal/adapters/storage"
	"github.com/helena-commits/badge-capture-stream/internal/adapters/terminal"
	"github.com/helena-commits/badge-capture-stream/internal/app"
	"github.com/helena-commits/badge-capture-stream/internal/config"
	"github.com/helena-commits/badge-capture-stream/internal/db"
	"github.com/helena-commits/badge-capture-stream/internal/ports/primary"
	"github.com/helena-commits/badge-capture-stream/internal/ports/secondary"
)

var (
	cfg    *config.Config
	logger *zap.Logger

	photoService       primary.PhotoService
	dispatchController *app.DispatchControllerImpl
	once               sync.Once
)

// Configure sets the configuration and logger used by all services.
// Must be called before any service accessor.
func Configure(c *config.Config, l *zap.Logger) {
	cfg = c
	logger = l
}

// Logger returns the process logger.
func Logger() *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

// PhotoService returns the singleton PhotoService instance.
func PhotoService() primary.PhotoService {
	once.Do(initServices)
	return photoService
}

// DispatchController returns the singleton DispatchController instance.
func DispatchController() primary.DispatchController {
	once.Do(initServices)
	return dispatchController
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	log := Logger()

	if cfg.DBPath != "" {
		db.SetPath(cfg.DBPath)
	}
	database, err := db.GetDB()
	if err != nil {
		log.Fatal("failed to initialize database", zap.Error(err))
	}

	// Secondary adapters
	photoRepo := sqlite.NewPhotoRepository(database)
	settingsRepo := sqlite.NewSettingsRepository(database)
	feed := sqlite.NewChangeFeed(photoRepo, cfg.Dispatch.PollInterval, log)
	sessionStore := session.NewMemoryStore()
	driver := devtools.NewDriver(cfg.DevTools.Addr, log)
	notifier := terminal.NewNotifier(os.Stdout, cfg.Sound)

	var signer secondary.SignedURLProvider
	if cfg.StorageEnabled() {
		signer = storage.NewSigner(cfg.Storage.URL, cfg.Storage.Bucket, cfg.Storage.APIKey, nil)
	}

	// Services (primary ports implementation)
	photoService = app.NewPhotoService(photoRepo)
	dispatchController, err = app.NewDispatchController(context.Background(), app.DispatchDeps{
		Photos:   photoRepo,
		Feed:     feed,
		Device:   settingsRepo,
		Session:  sessionStore,
		Resolver: app.NewTargetResolver(signer, cfg.BadgeBaseURL, cfg.Storage.SignedURLTTL, log),
		Tabs:     app.NewTabManager(driver, log),
		Notifier: notifier,
		Logger:   log,
	}, app.DispatchOptions{MinInterval: cfg.Dispatch.MinInterval})
	if err != nil {
		log.Fatal("failed to initialize dispatch controller", zap.Error(err))
	}
}

// Shutdown releases the badge tab, the feed subscription and the database.
func Shutdown(ctx context.Context) {
	if dispatchController != nil {
		dispatchController.Close(ctx)
	}
	if err := db.Close(); err != nil {
		Logger().Warn("close database failed", zap.Error(err))
	}
	_ = Logger().Sync()
}

// PhotoAdapter returns a new PhotoAdapter writing to stdout.
// Each call creates a new adapter (adapters are stateless translators).
func PhotoAdapter() *cliadapter.PhotoAdapter {
	return PhotoAdapterWithOutput(os.Stdout)
}

// PhotoAdapterWithOutput returns a new PhotoAdapter writing to the given output.
func PhotoAdapterWithOutput(out io.Writer) *cliadapter.PhotoAdapter {
	once.Do(initServices)
	return cliadapter.NewPhotoAdapter(photoService, out)
}

// DispatchAdapter returns a new DispatchAdapter writing to stdout.
func DispatchAdapter() *cliadapter.DispatchAdapter {
	return DispatchAdapterWithOutput(os.Stdout)
}

// DispatchAdapterWithOutput returns a new DispatchAdapter writing to the given output.
func DispatchAdapterWithOutput(out io.Writer) *cliadapter.DispatchAdapter {
	once.Do(initServices)
	return cliadapter.NewDispatchAdapter(dispatchController, out)
}

// Console returns an operator console writing to out.
func Console(out io.Writer) *cliadapter.Console {
	return cliadapter.NewConsole(PhotoAdapterWithOutput(out), DispatchAdapterWithOutput(out), out)
}

// Database returns the shared database connection.
func Database() (*sql.DB, error) {
	return db.GetDB()
}
