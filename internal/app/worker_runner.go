package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/dig"

	"delivery-dispatch/internal/logx"
	"delivery-dispatch/internal/service/assignment"
	"delivery-dispatch/internal/transport/kafka"
)

// WorkerRunner runs the headless worker: the Kafka order-events consumer
// plus the scheduled assignment pass loop.
type WorkerRunner struct {
	runFn func(*dig.Container) error
}

// NewWorkerRunner returns a new WorkerRunner
func NewWorkerRunner() *WorkerRunner {
	return &WorkerRunner{runFn: runWorker}
}

// MustRun starts the worker using the provided DI container
func (r *WorkerRunner) MustRun(container *dig.Container) {
	err := r.runFn(container)
	if err == nil || errors.Is(err, context.Canceled) {
		return
	}
	panic(err)
}

func runWorker(container *dig.Container) error {
	return container.Invoke(workerRun)
}

func workerRun(
	ctx context.Context,
	pool *pgxpool.Pool,
	logger logx.Logger,
	consumer *kafka.Consumer,
	assign *assignment.Service,
	interval passInterval,
) error {
	if consumer == nil && interval <= 0 {
		return fmt.Errorf("worker has nothing to run: no kafka consumer and no pass interval")
	}
	defer closeWorker(pool, logger, consumer)

	logger.Info("dispatch-worker started")
	startPassLoop(ctx, logger, assign, time.Duration(interval))

	if consumer == nil {
		<-ctx.Done()
		return ctx.Err()
	}
	return consumer.Run(ctx)
}

func closeWorker(pool *pgxpool.Pool, logger logx.Logger, kafkaConsumer *kafka.Consumer) {
	if kafkaConsumer != nil {
		if err := kafkaConsumer.Close(); err != nil {
			logger.Error("kafka close error", logx.Err(err))
		}
	}
	if pool != nil {
		pool.Close()
	}
}
