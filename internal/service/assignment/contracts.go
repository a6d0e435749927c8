package assignment

import (
	"context"

	"delivery-dispatch/internal/domain"
	"delivery-dispatch/internal/ports/assigntx"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx assigntx.Repository) error) error
}

type recordSource interface {
	ListAll(ctx context.Context) ([]domain.Assignment, error)
	List(ctx context.Context, f domain.AssignmentFilter) ([]domain.Assignment, error)
}

type counter interface {
	Inc()
	Add(float64)
}

type observer interface {
	Observe(float64)
}

// PassMetrics bundles the optional prometheus collectors the engine feeds.
// Nil fields are skipped.
type PassMetrics struct {
	Passes    counter  // completed passes
	Matched   counter  // success records written
	Unmatched counter  // failed records written
	Duration  observer // pass duration, seconds
}
