// Package app provides dependency injection container for assembling application components.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/gin-gonic/gin"

	authHTTP "github.com/allisson/docgate/internal/auth/http"
	authService "github.com/allisson/docgate/internal/auth/service"
	authUseCase "github.com/allisson/docgate/internal/auth/usecase"
	"github.com/allisson/docgate/internal/config"
	"github.com/allisson/docgate/internal/database"
	documentHTTP "github.com/allisson/docgate/internal/document/http"
	documentUseCase "github.com/allisson/docgate/internal/document/usecase"
	"github.com/allisson/docgate/internal/http"
	"github.com/allisson/docgate/internal/metrics"
	tokenHTTP "github.com/allisson/docgate/internal/token/http"
	tokenUseCase "github.com/allisson/docgate/internal/token/usecase"
	"github.com/allisson/docgate/internal/tracing"
	userHTTP "github.com/allisson/docgate/internal/user/http"
	userUseCase "github.com/allisson/docgate/internal/user/usecase"
)

// Container holds all application dependencies and provides methods to access them.
// It follows the lazy initialization pattern - components are created on first access.
type Container struct {
	// Configuration
	config *config.Config

	// Infrastructure
	logger          *slog.Logger
	db              *sql.DB
	kv              *database.KVStore
	txManager       database.TxManager
	metricsProvider *metrics.Provider
	businessMetrics metrics.BusinessMetrics
	tracingShutdown tracing.ShutdownFunc

	// Services
	passwordService authService.PasswordService
	tokenService    authService.TokenService

	// Repositories
	userRepository            userUseCase.UserRepository
	sessionRepository         authUseCase.SessionRepository
	generationTokenRepository tokenUseCase.GenerationTokenRepository
	documentRepository        documentUseCase.DocumentRepository
	accessLinkRepository      documentUseCase.AccessLinkRepository

	// Use Cases
	userUseCase            userUseCase.UserUseCase
	sessionUseCase         authUseCase.SessionUseCase
	generationTokenUseCase tokenUseCase.GenerationTokenUseCase
	consumptionUseCase     documentUseCase.ConsumptionUseCase
	accessLinkUseCase      documentUseCase.AccessLinkUseCase
	documentUseCase        documentUseCase.DocumentUseCase

	// HTTP Handlers
	sessionHandler         *authHTTP.SessionHandler
	userHandler            *userHTTP.UserHandler
	generationTokenHandler *tokenHTTP.GenerationTokenHandler
	documentHandler        *documentHTTP.DocumentHandler

	// Servers
	httpServer    *http.Server
	metricsServer *http.MetricsServer

	// Initialization flags and mutex for thread-safety
	mu                            sync.Mutex
	loggerInit                    sync.Once
	storeInit                     sync.Once
	txManagerInit                 sync.Once
	metricsProviderInit           sync.Once
	businessMetricsInit           sync.Once
	passwordServiceInit           sync.Once
	tokenServiceInit              sync.Once
	userRepositoryInit            sync.Once
	sessionRepositoryInit         sync.Once
	generationTokenRepositoryInit sync.Once
	documentRepositoryInit        sync.Once
	accessLinkRepositoryInit      sync.Once
	userUseCaseInit               sync.Once
	sessionUseCaseInit            sync.Once
	generationTokenUseCaseInit    sync.Once
	consumptionUseCaseInit        sync.Once
	accessLinkUseCaseInit         sync.Once
	documentUseCaseInit           sync.Once
	sessionHandlerInit            sync.Once
	userHandlerInit               sync.Once
	generationTokenHandlerInit    sync.Once
	documentHandlerInit           sync.Once
	httpServerInit                sync.Once
	metricsServerInit             sync.Once
	initErrors                    map[string]error
}

// NewContainer creates a new dependency injection container with the provided configuration.
func NewContainer(cfg *config.Config) *Container {
	return &Container{
		config:     cfg,
		initErrors: make(map[string]error),
	}
}

// Config returns the application configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger returns the configured logger instance.
// It creates a new logger on first access based on the log level in configuration.
func (c *Container) Logger() *slog.Logger {
	c.loggerInit.Do(func() {
		c.logger = c.initLogger()
	})
	return c.logger
}

// Store opens the configured backend on first access: a SQL pool for postgres and
// mysql, or the embedded Badger store. The returned Pinger backs readiness checks.
func (c *Container) Store() (database.Pinger, error) {
	var err error
	c.storeInit.Do(func() {
		err = c.initStore()
		if err != nil {
			c.initErrors["store"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["store"]; exists {
		return nil, storedErr
	}
	if c.kv != nil {
		return c.kv, nil
	}
	return c.db, nil
}

// DB returns the SQL connection pool. It fails on the badger driver.
func (c *Container) DB() (*sql.DB, error) {
	if _, err := c.Store(); err != nil {
		return nil, err
	}
	if c.db == nil {
		return nil, fmt.Errorf("driver %q has no SQL connection", c.config.DBDriver)
	}
	return c.db, nil
}

// TxManager returns the transaction manager of the configured backend.
func (c *Container) TxManager() (database.TxManager, error) {
	var err error
	c.txManagerInit.Do(func() {
		c.txManager, err = c.initTxManager()
		if err != nil {
			c.initErrors["txManager"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["txManager"]; exists {
		return nil, storedErr
	}
	return c.txManager, nil
}

// MetricsProvider returns the Prometheus-backed meter provider, or nil when metrics
// are disabled.
func (c *Container) MetricsProvider() (*metrics.Provider, error) {
	var err error
	c.metricsProviderInit.Do(func() {
		c.metricsProvider, err = c.initMetricsProvider()
		if err != nil {
			c.initErrors["metricsProvider"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["metricsProvider"]; exists {
		return nil, storedErr
	}
	return c.metricsProvider, nil
}

// BusinessMetrics returns the business metrics recorder. It is a no-op when metrics
// are disabled.
func (c *Container) BusinessMetrics() (metrics.BusinessMetrics, error) {
	var err error
	c.businessMetricsInit.Do(func() {
		c.businessMetrics, err = c.initBusinessMetrics()
		if err != nil {
			c.initErrors["businessMetrics"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["businessMetrics"]; exists {
		return nil, storedErr
	}
	return c.businessMetrics, nil
}

// InitTracing installs the global tracer provider. Shutdown flushes it.
func (c *Container) InitTracing(ctx context.Context) error {
	shutdown, err := tracing.Init(ctx, tracing.Config{
		Enabled:     c.config.TracingEnabled,
		ServiceName: c.config.TracingServiceName,
		Endpoint:    c.config.TracingEndpoint,
		Protocol:    c.config.TracingProtocol,
		SampleRatio: c.config.TracingSampleRatio,
	}, c.Logger())

	c.mu.Lock()
	c.tracingShutdown = shutdown
	c.mu.Unlock()

	if err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}
	return nil
}

// HTTPServer returns the HTTP server instance.
func (c *Container) HTTPServer() (*http.Server, error) {
	var err error
	c.httpServerInit.Do(func() {
		c.httpServer, err = c.initHTTPServer()
		if err != nil {
			c.initErrors["httpServer"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["httpServer"]; exists {
		return nil, storedErr
	}
	return c.httpServer, nil
}

// MetricsServer returns the Prometheus scrape server, or nil when metrics are disabled.
func (c *Container) MetricsServer() (*http.MetricsServer, error) {
	var err error
	c.metricsServerInit.Do(func() {
		c.metricsServer, err = c.initMetricsServer()
		if err != nil {
			c.initErrors["metricsServer"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["metricsServer"]; exists {
		return nil, storedErr
	}
	return c.metricsServer, nil
}

// Shutdown performs cleanup of all initialized resources.
// It should be called when the application is shutting down.
func (c *Container) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var shutdownErrors []error

	if c.httpServer != nil {
		if err := c.httpServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("http server shutdown: %w", err))
		}
	}

	if c.metricsServer != nil {
		if err := c.metricsServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics server shutdown: %w", err))
		}
	}

	if c.metricsProvider != nil {
		if err := c.metricsProvider.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics provider shutdown: %w", err))
		}
	}

	if c.tracingShutdown != nil {
		if err := c.tracingShutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("tracing shutdown: %w", err))
		}
	}

	if c.db != nil {
		if err := c.db.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("database close: %w", err))
		}
	}

	if c.kv != nil {
		if err := c.kv.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("kv store close: %w", err))
		}
	}

	return errors.Join(shutdownErrors...)
}

// initLogger creates and configures a structured logger based on the log level.
func (c *Container) initLogger() *slog.Logger {
	var logLevel slog.Level
	switch c.config.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})

	return slog.New(handler)
}

// initStore opens the SQL pool or the Badger store according to the driver.
func (c *Container) initStore() error {
	switch c.config.DBDriver {
	case database.DriverBadger:
		kv, err := database.OpenKV(database.KVConfig{
			Dir:        c.config.BadgerDir,
			InMemory:   c.config.BadgerInMemory,
			GCInterval: c.config.BadgerGCInterval,
			Timeout:    c.config.DBOperationTimeout,
		}, c.Logger())
		if err != nil {
			return fmt.Errorf("failed to open badger store: %w", err)
		}
		c.kv = kv
	case database.DriverPostgres, database.DriverMySQL:
		db, err := database.Connect(database.Config{
			Driver:             c.config.DBDriver,
			ConnectionString:   c.config.DBConnectionString,
			MaxOpenConnections: c.config.DBMaxOpenConnections,
			MaxIdleConnections: c.config.DBMaxIdleConnections,
			ConnMaxLifetime:    c.config.DBConnMaxLifetime,
		})
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		c.db = db
	default:
		return fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
	return nil
}

// storage returns whichever backend is open. Exactly one of db and kv is non-nil.
func (c *Container) storage() (*sql.DB, *database.KVStore, error) {
	if _, err := c.Store(); err != nil {
		return nil, nil, err
	}
	return c.db, c.kv, nil
}

// initTxManager creates the transaction manager for the open backend.
func (c *Container) initTxManager() (database.TxManager, error) {
	db, kv, err := c.storage()
	if err != nil {
		return nil, fmt.Errorf("failed to get store for tx manager: %w", err)
	}
	if kv != nil {
		return kv, nil
	}
	return database.NewTxManager(db, database.WithTimeout(c.config.DBOperationTimeout)), nil
}

func (c *Container) initMetricsProvider() (*metrics.Provider, error) {
	if !c.config.MetricsEnabled {
		return nil, nil
	}
	provider, err := metrics.NewProvider(c.config.MetricsNamespace)
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics provider: %w", err)
	}
	return provider, nil
}

func (c *Container) initBusinessMetrics() (metrics.BusinessMetrics, error) {
	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return metrics.NewNoOpBusinessMetrics(), nil
	}
	bm, err := metrics.NewBusinessMetrics(provider.MeterProvider(), c.config.MetricsNamespace)
	if err != nil {
		return nil, fmt.Errorf("failed to create business metrics: %w", err)
	}
	return bm, nil
}

// initHTTPServer creates the HTTP server with all its dependencies and mounts the routes.
func (c *Container) initHTTPServer() (*http.Server, error) {
	logger := c.Logger()

	pinger, err := c.Store()
	if err != nil {
		return nil, fmt.Errorf("failed to get store for http server: %w", err)
	}

	sessionHandler, err := c.SessionHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get session handler for http server: %w", err)
	}
	userHandler, err := c.UserHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get user handler for http server: %w", err)
	}
	generationTokenHandler, err := c.GenerationTokenHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get generation token handler for http server: %w", err)
	}
	documentHandler, err := c.DocumentHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get document handler for http server: %w", err)
	}
	sessionUseCase, err := c.SessionUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get session use case for http server: %w", err)
	}

	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for http server: %w", err)
	}
	var metricsMiddleware gin.HandlerFunc
	if provider != nil {
		metricsMiddleware = metrics.HTTPMetricsMiddleware(provider.MeterProvider(), c.config.MetricsNamespace)
	}

	server := http.NewServer(pinger, c.config.ServerHost, c.config.ServerPort, logger)
	server.SetupRouter(c.config, http.Handlers{
		Session:         sessionHandler,
		User:            userHandler,
		GenerationToken: generationTokenHandler,
		Document:        documentHandler,
		Authentication:  authHTTP.AuthenticationMiddleware(sessionUseCase, c.TokenService(), logger),
		RequireAdmin:    authHTTP.RequireAdmin(logger),
	}, metricsMiddleware)

	return server, nil
}

func (c *Container) initMetricsServer() (*http.MetricsServer, error) {
	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for metrics server: %w", err)
	}
	if provider == nil {
		return nil, nil
	}
	pinger, err := c.Store()
	if err != nil {
		return nil, fmt.Errorf("failed to get store for metrics server: %w", err)
	}
	return http.NewMetricsServer(c.config.ServerHost, c.config.MetricsPort, pinger, c.Logger(), provider), nil
}
