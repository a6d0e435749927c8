package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/dig"

	"delivery-dispatch/internal/domain"
	"delivery-dispatch/internal/logx"
	"delivery-dispatch/internal/service/assignment"
	"delivery-dispatch/internal/transport/kafka"
)

// Runner runs the HTTP server and background loops
type Runner struct {
	runFn func(*dig.Container) error
}

// NewRunner returns a new Runner
func NewRunner() *Runner {
	return &Runner{runFn: run}
}

// MustRun starts the service using the provided DI container
func (r *Runner) MustRun(container *dig.Container) {
	err := r.runFn(container)
	switch {
	case err == nil:
		return
	case errors.Is(err, context.Canceled):
		logVia(container, "shutdown requested, exiting")
	case errors.Is(err, context.DeadlineExceeded):
		logVia(container, "startup aborted: startup timeout exceeded")
	default:
		panic(err)
	}
}

// MustRun runs a default Runner against the provided DI container
func MustRun(container *dig.Container) {
	NewRunner().MustRun(container)
}

func logVia(container *dig.Container, msg string) {
	_ = container.Invoke(func(logger logx.Logger) {
		logger.Info(msg)
	})
}

type runIn struct {
	dig.In

	Ctx      context.Context
	Logger   logx.Logger
	Pool     *pgxpool.Pool
	Server   *http.Server
	Pprof    *http.Server `name:"pprof_server" optional:"true"`
	Interval passInterval
	Assign   *assignment.Service
	Consumer *kafka.Consumer
}

func run(container *dig.Container) error {
	return container.Invoke(func(in runIn) error {
		startServer(in.Server, in.Logger)
		startPprofServer(in.Pprof, in.Logger)
		startPassLoop(in.Ctx, in.Logger, in.Assign, time.Duration(in.Interval))
		startConsumer(in.Ctx, in.Logger, in.Consumer)
		waitForShutdown(in.Ctx, in.Logger)
		gracefulShutdown(in.Server, in.Logger, 15*time.Second)
		closeResources(in.Pool, in.Consumer, in.Server, in.Pprof, in.Logger)
		return in.Ctx.Err()
	})
}

func startServer(server *http.Server, logger logx.Logger) {
	go func() {
		logger.Info("dispatch listening", logx.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("listen error", logx.Err(err))
		}
	}()
}

func startPprofServer(server *http.Server, logger logx.Logger) {
	if server == nil {
		return
	}
	go func() {
		logger.Info("pprof listening", logx.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("pprof listen error", logx.Err(err))
		}
	}()
}

type passRunner interface {
	RunPass(ctx context.Context) ([]domain.Assignment, error)
}

// startPassLoop periodically matches the pending backlog against active
// partners. A non-positive interval disables the loop.
func startPassLoop(ctx context.Context, logger logx.Logger, runner passRunner, interval time.Duration) {
	if interval <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if _, err := runner.RunPass(ctx); err != nil {
					logger.Error("scheduled assignment pass failed", logx.Err(err))
				}
			}
		}
	}()
}

func startConsumer(ctx context.Context, logger logx.Logger, consumer *kafka.Consumer) {
	if consumer == nil {
		return
	}
	go func() {
		if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("kafka consumer stopped", logx.Err(err))
		}
	}()
}

func waitForShutdown(ctx context.Context, logger logx.Logger) {
	<-ctx.Done()
	logger.Info("shutting down dispatch...")
}

func gracefulShutdown(srv *http.Server, logger logx.Logger, timeout time.Duration) {
	shCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(shCtx); err != nil {
		logger.Error("graceful shutdown error", logx.Err(err))
	}
}

func closeResources(pool *pgxpool.Pool, consumer *kafka.Consumer, server, pprof *http.Server, logger logx.Logger) {
	if err := consumer.Close(); err != nil {
		logger.Error("kafka close error", logx.Err(err))
	}
	if pprof != nil {
		if err := pprof.Close(); err != nil {
			logger.Error("pprof server close error", logx.Err(err))
		}
	}
	if err := server.Close(); err != nil {
		logger.Error("server close error", logx.Err(err))
	}
	if pool != nil {
		pool.Close()
	}
}
