package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/simp-lee/logger"
	"gorm.io/gorm"

	"github.com/databroker-go/databroker/internal/broker"
	"github.com/databroker-go/databroker/internal/config"
	"github.com/databroker-go/databroker/internal/domain"
	"github.com/databroker-go/databroker/internal/middleware"
	"github.com/databroker-go/databroker/internal/module/contact"
	"github.com/databroker-go/databroker/internal/module/note"
	"github.com/databroker-go/databroker/internal/pkg"
)

// App bundles the wired application: HTTP engine, database, logger.
type App struct {
	engine *gin.Engine
	db     *gorm.DB
	logger *logger.Logger
	cfg    *config.Config
}

type httpServer interface {
	ListenAndServe() error
	Shutdown(ctx context.Context) error
}

// Swapped out in tests.
var newHTTPServer = func(addr string, handler http.Handler) httpServer {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}

var notifyContext = func(parent context.Context, signals ...os.Signal) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, signals...)
}

// New wires the application from cfg: logger, database, the broker registry
// with its record-specific overrides, one broker per record type, the REST
// modules, middleware, and routes. On any wiring error the partially opened
// resources are closed before returning.
func New(cfg *config.Config) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	log, err := config.SetupLogger(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	db, err := config.SetupDatabase(&cfg.Database, log.Logger)
	if err != nil {
		closeLogger(log)
		return nil, fmt.Errorf("setup database: %w", err)
	}

	fail := func(err error) (*App, error) {
		closeDB(db, nil)
		closeLogger(log)
		return nil, err
	}

	// Schema management is convenience-only: AutoMigrate in debug, real
	// migrations elsewhere.
	if cfg.Server.Mode == gin.DebugMode {
		if err := db.AutoMigrate(&domain.Contact{}, &domain.Note{}); err != nil {
			return fail(fmt.Errorf("auto migrate: %w", err))
		}
		log.Info("auto migration completed")
	}

	engine, err := buildEngine(cfg, db, log)
	if err != nil {
		return fail(err)
	}

	return &App{engine: engine, db: db, logger: log, cfg: cfg}, nil
}

// buildEngine assembles the gin engine: middleware chain, broker-backed
// record modules, and routes.
func buildEngine(cfg *config.Config, db *gorm.DB, log *logger.Logger) (*gin.Engine, error) {
	if err := validateGinMode(cfg.Server.Mode); err != nil {
		return nil, err
	}
	gin.SetMode(cfg.Server.Mode)

	engine := gin.New()
	engine.Use(
		middleware.Recovery(log.Logger),
		middleware.RequestIDWithConfig(middleware.RequestIDConfig{TrustUpstream: false}),
		middleware.Logger(log.Logger),
		middleware.CORSWithConfig(resolveCORSConfig(cfg.Server.Mode, cfg.Server.CORS.AllowOrigins)),
	)

	if err := RegisterRoutes(engine, &RouteDeps{
		Modules: recordModules(cfg, db, log.Logger),
		DB:      db,
		Mode:    cfg.Server.Mode,
	}); err != nil {
		return nil, fmt.Errorf("register routes: %w", err)
	}
	return engine, nil
}

// recordModules performs the dependency injection chain: session factory,
// then registry with record-specific overrides, then a broker per record
// type, then the REST module around each broker.
func recordModules(cfg *config.Config, db *gorm.DB, log *slog.Logger) []Module {
	factory := broker.NewSessionFactory(db)
	registry := broker.NewRegistry()
	note.RegisterOverrides(registry, factory, log)

	limits := pkg.ListDefaults{
		PageSize:    cfg.Broker.DefaultPageSize,
		MaxPageSize: cfg.Broker.MaxPageSize,
	}
	return []Module{
		contact.NewModule(contact.NewHandler(broker.New[domain.Contact](factory, registry, log), limits)),
		note.NewModule(note.NewHandler(broker.New[domain.Note](factory, registry, log), limits)),
	}
}

// resolveCORSConfig keeps a configured allowlist as-is. Without one, debug
// mode stays permissive while release mode denies cross-origin requests.
func resolveCORSConfig(mode string, allowOrigins []string) middleware.CORSConfig {
	cors := middleware.DefaultCORSConfig()
	if len(allowOrigins) > 0 {
		cors.AllowOrigins = allowOrigins
	} else if mode == gin.ReleaseMode {
		cors.AllowOrigins = []string{}
	}
	return cors
}

func validateGinMode(mode string) error {
	for _, known := range []string{gin.DebugMode, gin.ReleaseMode, gin.TestMode} {
		if mode == known {
			return nil
		}
	}
	return fmt.Errorf("invalid server.mode %q: must be one of %q, %q, %q",
		mode, gin.DebugMode, gin.ReleaseMode, gin.TestMode)
}

// Run serves HTTP until SIGINT/SIGTERM or a listener failure, then shuts
// down gracefully (5-second deadline) and closes the database and logger.
func (a *App) Run() error {
	switch {
	case a == nil:
		return errors.New("app is nil")
	case a.cfg == nil:
		return errors.New("app config is nil")
	case a.engine == nil:
		return errors.New("app engine is nil")
	}

	addr := fmt.Sprintf("%s:%d", a.cfg.Server.Host, a.cfg.Server.Port)
	srv := newHTTPServer(addr, a.engine)

	ctx, stop := notifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("server started", slog.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		// The listener never came up; nothing to drain, just release
		// the resources.
		a.teardown()
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("server shutdown error", slog.Any("error", err))
	}

	a.teardown()
	return nil
}

func (a *App) teardown() {
	closeDB(a.db, a.logger.Logger)
	a.logger.Info("server stopped")
	closeLogger(a.logger)
}

func closeDB(db *gorm.DB, log *slog.Logger) {
	if db == nil {
		return
	}
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		if log != nil {
			log.Error("database close error", slog.Any("error", err))
		}
	} else if log != nil {
		log.Info("database connection closed")
	}
}

func closeLogger(log *logger.Logger) {
	if log == nil {
		return
	}
	if err := log.Close(); err != nil {
		slog.Error("logger close error", slog.Any("error", err))
	}
}
