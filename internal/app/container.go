package app

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"delivery-dispatch/internal/config"
	"delivery-dispatch/internal/http/handlers"
	"delivery-dispatch/internal/http/pprofserver"
	"delivery-dispatch/internal/http/router"
	"delivery-dispatch/internal/logx"
	"delivery-dispatch/internal/metrics"
	"delivery-dispatch/internal/repository"
	"delivery-dispatch/internal/service/assignment"
	"delivery-dispatch/internal/service/order"
	"delivery-dispatch/internal/service/orders"
	"delivery-dispatch/internal/service/partner"
	"delivery-dispatch/internal/transport/kafka"
)

// passInterval is the period of the scheduled assignment pass.
type passInterval time.Duration

type dbConnectFunc func(context.Context, logx.Logger, string, int, time.Duration) (*pgxpool.Pool, error)

// ContainerBuilder is a dig container builder.
type ContainerBuilder struct {
	dbConnect dbConnectFunc
	logFatalf func(string, ...interface{})
}

// NewContainerBuilder returns a new dig container builder
func NewContainerBuilder() *ContainerBuilder {
	return &ContainerBuilder{
		dbConnect: connectDbWithRetry,
		logFatalf: log.Fatalf,
	}
}

// WithDBConnect sets the database connection function
func (b *ContainerBuilder) WithDBConnect(fn dbConnectFunc) *ContainerBuilder {
	if fn != nil {
		b.dbConnect = fn
	}
	return b
}

// WithLogFatalf sets the log.Fatalf function
func (b *ContainerBuilder) WithLogFatalf(fn func(string, ...interface{})) *ContainerBuilder {
	if fn != nil {
		b.logFatalf = fn
	}
	return b
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
	if err := registerDb(container, b.dbConnect); err != nil {
		return nil, fmt.Errorf("DB: %w", err)
	}
	if err := registerService(container); err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	if err := registerHTTP(container); err != nil {
		return nil, fmt.Errorf("http: %w", err)
	}
	if err := registerWorker(container); err != nil {
		return nil, fmt.Errorf("worker: %w", err)
	}
	return container, nil
}

// buildWorker assembles the container for the headless worker binary.
func (b *ContainerBuilder) buildWorker(ctx context.Context) (*dig.Container, error) {
	container := dig.New()

	if err := registerCore(container, ctx); err != nil {
		return nil, fmt.Errorf("core: %w", err)
	}
	if err := registerDb(container, b.dbConnect); err != nil {
		return nil, fmt.Errorf("DB: %w", err)
	}
	if err := registerService(container); err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	if err := registerWorker(container); err != nil {
		return nil, fmt.Errorf("worker: %w", err)
	}
	return container, nil
}

// MustBuildWorker builds the worker container
func (b *ContainerBuilder) MustBuildWorker(ctx context.Context) *dig.Container {
	container, err := b.buildWorker(ctx)
	if err != nil {
		b.logFatalf("failed to build worker container: %v", err)
	}
	return container
}

// MustBuildContainer builds and returns a new dig container
func MustBuildContainer(ctx context.Context) *dig.Container {
	return NewContainerBuilder().MustBuild(ctx)
}

// MustBuildWorkerContainer builds the container for the worker binary
func MustBuildWorkerContainer(ctx context.Context) *dig.Container {
	return NewContainerBuilder().MustBuildWorker(ctx)
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
		func(cfg *config.Config) passInterval {
			return passInterval(cfg.Engine.PassInterval)
		},
	)
}

func registerDb(container *dig.Container, dbConnect dbConnectFunc) error {
	providerDB := func(ctx context.Context, logger logx.Logger, cfg *config.Config) (*pgxpool.Pool, error) {
		return dbConnect(ctx, logger, cfg.DB.DSN(), 10, time.Second)
	}
	return provideAll(container, providerDB)
}

// registerOrSwap registers c, reusing an already registered collector with
// the same descriptor. Containers get rebuilt in tests, the default
// registerer does not.
func registerOrSwap[C prometheus.Collector](c C) C {
	if err := prometheus.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return are.ExistingCollector.(C)
		}
	}
	return c
}

func newPassMetrics() assignment.PassMetrics {
	return assignment.PassMetrics{
		Passes:    registerOrSwap(metrics.NewAssignmentPassesTotal()),
		Matched:   registerOrSwap(metrics.NewOrdersMatchedTotal()),
		Unmatched: registerOrSwap(metrics.NewOrdersUnmatchedTotal()),
		Duration:  registerOrSwap(metrics.NewPassDurationSeconds()),
	}
}

func registerService(container *dig.Container) error {
	return provideAll(container,
		repository.NewPartnerRepo,
		repository.NewOrderRepo,
		repository.NewAssignmentRepo,
		func(cfg *config.Config) time.Duration { return cfg.Engine.OperationTimeout },
		newPassMetrics,
		func(repo *repository.PartnerRepo, timeout time.Duration) *partner.Service {
			return partner.NewService(repo, timeout)
		},
		func(repo *repository.OrderRepo, timeout time.Duration) *order.Service {
			return order.NewService(repo, timeout)
		},
		func(
			repo *repository.AssignmentRepo,
			timeout time.Duration,
			logger logx.Logger,
			pm assignment.PassMetrics,
		) *assignment.Service {
			return assignment.NewService(repo, repo, timeout, logger, pm)
		},
		orders.NewProcessor,
	)
}

type pprofServerOut struct {
	dig.Out

	Server *http.Server `name:"pprof_server"`
}

func newPprofServer(cfg *config.Config) pprofServerOut {
	if cfg.Pprof.Addr == "" {
		return pprofServerOut{}
	}
	return pprofServerOut{
		Server: &http.Server{
			Addr: cfg.Pprof.Addr,
			Handler: pprofserver.Handler(pprofserver.Config{
				User: cfg.Pprof.User,
				Pass: cfg.Pprof.Pass,
			}),
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

func registerHTTP(container *dig.Container) error {
	if err := container.Provide(
		func() prometheus.Counter { return registerOrSwap(metrics.NewRateLimitExceededTotal()) },
		dig.Name("rate_limit_exceeded_total"),
	); err != nil {
		return fmt.Errorf("provide rate limit counter: %w", err)
	}

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
		handlers.New,
		handlers.NewPartnerUsecase,
		handlers.NewPartnerHandler,
		handlers.NewOrderUsecase,
		handlers.NewOrderHandler,
		handlers.NewAssignmentUsecase,
		handlers.NewAssignmentHandler,
		newRateLimitClock,
		newRateLimiter,
		newRateLimitMiddleware,
		router.New,
		serverProvider,
		newPprofServer,
	)
}

func registerWorker(container *dig.Container) error {
	consumerProvider := func(
		cfg *config.Config,
		logger logx.Logger,
		p *orders.Processor,
	) (*kafka.Consumer, error) {
		return kafka.NewConsumer(logger, cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.Topic, makeOrdersKafka(p))
	}
	return provideAll(container, consumerProvider)
}
