package app

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"swiftcourier-console/internal/config"
	"swiftcourier-console/internal/gateway/backend"
	"swiftcourier-console/internal/http/handlers"
	"swiftcourier-console/internal/http/middleware/ratelimit"
	"swiftcourier-console/internal/http/router"
	"swiftcourier-console/internal/logx"
	"swiftcourier-console/internal/metrics"
	"swiftcourier-console/internal/service/packages"
	"swiftcourier-console/internal/service/revenue"
	"swiftcourier-console/internal/session"
	"swiftcourier-console/internal/view"
)

// retriesCounter and teardownsCounter give the two prometheus counters
// distinct types so dig can tell them apart.
type retriesCounter struct{ prometheus.Counter }

type teardownsCounter struct{ prometheus.Counter }

// ContainerBuilder is a dig container builder.
type ContainerBuilder struct {
	registry  *prometheus.Registry
	logFatalf func(string, ...interface{})
}

// NewContainerBuilder returns a new dig container builder
func NewContainerBuilder() *ContainerBuilder {
	return &ContainerBuilder{
		logFatalf: log.Fatalf,
	}
}

// WithLogFatalf sets the log.Fatalf function
func (b *ContainerBuilder) WithLogFatalf(fn func(string, ...interface{})) *ContainerBuilder {
	if fn != nil {
		b.logFatalf = fn
	}
	return b
}

// WithRegistry uses a private prometheus registry instead of the global
// one. Tests building several containers need this.
func (b *ContainerBuilder) WithRegistry(reg *prometheus.Registry) *ContainerBuilder {
	b.registry = reg
	return b
}

func (b *ContainerBuilder) register(c prometheus.Collector) {
	if b.registry != nil {
		b.registry.MustRegister(c)
		return
	}
	prometheus.MustRegister(c)
}

// MustBuild builds and returns a new dig container
func (b *ContainerBuilder) MustBuild(ctx context.Context) *dig.Container {
	container, err := b.build(ctx)
	if err != nil {
		b.logFatalf("failed to build container: %v", err)
	}
	return container
}

func (b *ContainerBuilder) build(ctx context.Context) (*dig.Container, error) {
	container := dig.New()

	if err := registerCore(container, ctx); err != nil {
		return nil, fmt.Errorf("core: %w", err)
	}
	if err := b.registerGateway(container); err != nil {
		return nil, fmt.Errorf("gateway: %w", err)
	}
	if err := b.registerSession(container); err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}
	if err := registerService(container); err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	if err := b.registerHTTP(container); err != nil {
		return nil, fmt.Errorf("http: %w", err)
	}
	return container, nil
}

// MustBuildContainer builds and returns a new dig container
func MustBuildContainer(ctx context.Context) *dig.Container {
	return NewContainerBuilder().MustBuild(ctx)
}

func provideAll(container *dig.Container, providers ...any) error {
	for _, provider := range providers {
		if err := container.Provide(provider); err != nil {
			return fmt.Errorf("provide %T: %w", provider, err)
		}
	}
	return nil
}

func registerCore(container *dig.Container, ctx context.Context) error {
	return provideAll(container,
		func() context.Context { return ctx },
		NewLogger,
		config.Load,
	)
}

func (b *ContainerBuilder) registerGateway(container *dig.Container) error {
	return provideAll(container,
		func() retriesCounter {
			c := metrics.NewBackendRetriesTotal()
			b.register(c)
			return retriesCounter{c}
		},
		func(cfg *config.Config, logger logx.Logger, retries retriesCounter) *backend.Client {
			transport := backend.NewRetryTransport(nil, logger, retries, backend.RetryConfig{
				MaxAttempts: cfg.Backend.Retry.MaxAttempts,
				BaseDelay:   cfg.Backend.Retry.BaseDelay,
				MaxDelay:    cfg.Backend.Retry.MaxDelay,
			})
			httpc := &http.Client{
				Transport: transport,
				Timeout:   cfg.Backend.Timeout,
			}
			return backend.New(cfg.Backend.BaseURL, httpc, logger)
		},
	)
}

func (b *ContainerBuilder) registerSession(container *dig.Container) error {
	return provideAll(container,
		func(cfg *config.Config, logger logx.Logger) (*session.Store, error) {
			return session.NewStore(cfg.Session.File, cfg.Session.TTL, logger)
		},
		func(client *backend.Client, store *session.Store, logger logx.Logger) *session.Authority {
			c := metrics.NewForcedLogoutsTotal()
			b.register(c)
			return session.NewAuthority(client, store, logger, teardownsCounter{c})
		},
	)
}

func registerService(container *dig.Container) error {
	return provideAll(container,
		func(client *backend.Client, logger logx.Logger) *packages.Service {
			return packages.NewService(client, logger, 0)
		},
		func(client *backend.Client, logger logx.Logger) *revenue.Service {
			return revenue.NewService(client, logger)
		},
	)
}

func (b *ContainerBuilder) registerHTTP(container *dig.Container) error {
	serverProvider := func(cfg *config.Config, mux http.Handler) *http.Server {
		return &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		}
	}
	return provideAll(container,
		view.New,
		func(cfg *config.Config, logger logx.Logger) *ratelimit.Middleware {
			c := metrics.NewLoginRateLimitedTotal()
			b.register(c)
			limiter := ratelimit.NewTokenBucketPerWindow(
				ratelimit.RealClock{},
				cfg.Login.Limit,
				cfg.Login.Window,
				time.Hour,
				10000,
			)
			return ratelimit.New(logger, c, limiter)
		},
		func(
			logger logx.Logger,
			v *view.Renderer,
			auth *session.Authority,
			client *backend.Client,
			pkgs *packages.Service,
			rev *revenue.Service,
			cfg *config.Config,
		) *handlers.Handlers {
			return handlers.New(logger, v, auth, client, pkgs, rev, cfg.Session.Cookie)
		},
		func(
			h *handlers.Handlers,
			auth *session.Authority,
			cfg *config.Config,
			limit *ratelimit.Middleware,
			logger logx.Logger,
		) http.Handler {
			return router.New(h, auth, cfg, limit, logger)
		},
		serverProvider,
	)
}
