package bootstrap

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

	"github.com/redis/go-redis/v9"
	"github.com/target/mmk-accounts-ui/config"
	"github.com/target/mmk-accounts-ui/internal/adapters/accountapi"
	"github.com/target/mmk-accounts-ui/internal/adapters/devapi"
	"github.com/target/mmk-accounts-ui/internal/adapters/memstore"
	redisstore "github.com/target/mmk-accounts-ui/internal/adapters/redis"
	httpx "github.com/target/mmk-accounts-ui/internal/http"
	"github.com/target/mmk-accounts-ui/internal/observability/statsd"
	"github.com/target/mmk-accounts-ui/internal/ports"
	"github.com/target/mmk-accounts-ui/internal/service"
)

// ServiceContainer holds the wired application services.
type ServiceContainer struct {
	API      ports.AccountAPI
	Tokens   ports.TokenStore
	Sessions *service.SessionService
	// Health probes the token store for /healthz.
	Health  httpx.HealthCheck
	Metrics *statsd.Client
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config *config.AppConfig
	// RedisClient is required when the session backend is redis.
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// NewServices wires the accounts API client, token store and session service.
func NewServices(deps *ServiceDeps) (ServiceContainer, error) {
	if deps == nil || deps.Config == nil {
		return ServiceContainer{}, errors.New("service deps with config are required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	cfg := deps.Config

	api, err := NewAccountAPI(cfg, logger)
	if err != nil {
		return ServiceContainer{}, err
	}
	tokens, health, err := newTokenStore(cfg.Session, deps.RedisClient)
	if err != nil {
		return ServiceContainer{}, err
	}
	metrics := buildMetrics(logger, cfg.Observability)

	opts := service.SessionServiceOptions{
		API:        api,
		Tokens:     tokens,
		DefaultTTL: cfg.Session.TTL,
		Logger:     logger,
	}
	if metrics != nil {
		opts.Metrics = metrics
	}

	return ServiceContainer{
		API:      api,
		Tokens:   tokens,
		Sessions: service.NewSessionService(opts),
		Health:   health,
		Metrics:  metrics,
	}, nil
}

// NewAccountAPI returns the accounts API selected by API_MODE.
//
//nolint:ireturn // the implementation is picked by API_MODE.
func NewAccountAPI(cfg *config.AppConfig, logger *slog.Logger) (ports.AccountAPI, error) {
	switch cfg.API.Mode {
	case config.APIModeDev:
		api, err := devapi.New(devapi.Config{
			AdminEmail:    cfg.API.DevAdminEmail,
			AdminPassword: cfg.API.DevAdminPassword,
		})
		if err != nil {
			return nil, fmt.Errorf("create dev api: %w", err)
		}
		logger.Warn("using in-memory dev accounts API", "admin_email", cfg.API.DevAdminEmail)
		return api, nil
	case config.APIModeHTTP, "":
		client, err := accountapi.New(accountapi.Config{
			BaseURL:    cfg.API.BaseURL,
			Timeout:    cfg.API.Timeout,
			DetailPath: cfg.API.ErrorDetailPath,
			Logger:     logger,
		})
		if err != nil {
			return nil, fmt.Errorf("create accounts api client: %w", err)
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unsupported API mode %q", cfg.API.Mode)
	}
}

//nolint:ireturn // the implementation is picked by SESSION_BACKEND.
func newTokenStore(cfg config.SessionConfig, client redis.UniversalClient) (ports.TokenStore, httpx.HealthCheck, error) {
	switch cfg.Backend {
	case config.SessionBackendMemory:
		return memstore.NewTokenStore(memstore.DefaultConfig()), nil, nil
	case config.SessionBackendRedis, "":
		if client == nil {
			return nil, nil, errors.New("redis session backend requires a redis client")
		}
		health := func(ctx context.Context) error { return client.Ping(ctx).Err() }
		return redisstore.NewTokenStoreWithPrefix(client, cfg.KeyPrefix), health, nil
	default:
		return nil, nil, fmt.Errorf("unsupported session backend %q", cfg.Backend)
	}
}

// buildMetrics returns the StatsD client, or nil when metrics are disabled or
// the sink cannot be dialled.
func buildMetrics(logger *slog.Logger, cfg config.ObservabilityConfig) *statsd.Client {
	if !cfg.Metrics.IsEnabled() {
		return nil
	}
	client, err := statsd.NewClient(statsd.Config{
		Enabled: true,
		Address: cfg.Metrics.StatsdAddress,
		Prefix:  cfg.Metrics.Prefix,
		Logger:  logger,
	})
	if err != nil {
		logger.Error("failed to initialise statsd client", "error", err)
		return nil
	}
	return client
}

// ServiceOrchestrationConfig contains what RunServicesWithShutdown needs.
type ServiceOrchestrationConfig struct {
	Config   *config.AppConfig
	Services ServiceContainer
	Logger   *slog.Logger
}

// shutdownWaitTimeout bounds how long in-flight requests get to finish.
const shutdownWaitTimeout = 15 * time.Second

// RunServicesWithShutdown starts the HTTP server and blocks until SIGINT or
// SIGTERM arrives or the server fails, then shuts it down gracefully.
func RunServicesWithShutdown(cfg *ServiceOrchestrationConfig) error {
	if cfg == nil || cfg.Config == nil {
		return errors.New("service orchestration config with AppConfig is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	server, errCh, err := StartHTTPServer(&HTTPServerConfig{
		Config:   cfg.Config,
		Services: cfg.Services,
		Logger:   logger,
	})
	if err != nil {
		return err
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	return waitForShutdown(shutdownConfig{
		quit:   quit,
		errCh:  errCh,
		server: server,
		logger: logger,
		closeMetrics: func() error {
			return cfg.Services.Metrics.Close()
		},
	})
}

type shutdownConfig struct {
	quit         <-chan os.Signal
	errCh        <-chan error
	server       *http.Server
	logger       *slog.Logger
	closeMetrics func() error
}

func waitForShutdown(cfg shutdownConfig) error {
	var runErr error
	select {
	case sig := <-cfg.quit:
		cfg.logger.Info("shutting down", "signal", sig.String())
	case runErr = <-cfg.errCh:
		cfg.logger.Error("http server failed", "error", runErr)
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownWaitTimeout)
	defer cancel()
	if err := ShutdownHTTPServer(ctx, cfg.server, cfg.logger); err != nil {
		runErr = errors.Join(runErr, err)
	}
	if cfg.closeMetrics != nil {
		if err := cfg.closeMetrics(); err != nil {
			cfg.logger.Warn("close statsd client", "error", err)
		}
	}
	return runErr
}
