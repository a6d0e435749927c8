package assignment

import (
	"context"
	"time"

	"delivery-dispatch/internal/domain"
	"delivery-dispatch/internal/logx"
	"delivery-dispatch/internal/ports/assigntx"
)

// Service - the assignment engine: runs batch matching passes and computes
// aggregate metrics over the assignment history.
type Service struct {
	repo             txRunner
	records          recordSource
	operationTimeout time.Duration
	logger           logx.Logger
	passMetrics      PassMetrics
	now              func() time.Time
}

// NewService - creates the assignment engine.
func NewService(repo txRunner, records recordSource, timeout time.Duration, logger logx.Logger, pm PassMetrics) *Service {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Service{
		repo:             repo,
		records:          records,
		operationTimeout: timeout,
		logger:           logger,
		passMetrics:      pm,
		now:              func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

// RunPass considers every pending order exactly once, in creation order,
// inside a single transaction. Each order yields exactly one assignment
// record; matched partners have their load bumped both in the store and in
// the in-memory snapshot, so later orders in the same pass see it. The
// whole pass commits or nothing does.
func (s *Service) RunPass(ctx context.Context) ([]domain.Assignment, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	started := s.now()
	var outcomes []domain.Assignment

	err := s.repo.WithTx(ctx, func(tx assigntx.Repository) error {
		orders, err := tx.ListPendingOrders(ctx)
		if err != nil {
			return err
		}
		partners, err := tx.ListActivePartnersForUpdate(ctx)
		if err != nil {
			return err
		}

		// The pass owns this snapshot; the matcher reads it by reference.
		snapshot := make([]*domain.Partner, len(partners))
		for i := range partners {
			snapshot[i] = &partners[i]
		}

		outcomes = make([]domain.Assignment, 0, len(orders))
		for _, order := range orders {
			best := FindBestPartner(&order, snapshot)
			if best == nil {
				rec := domain.Assignment{
					OrderID:   order.ID,
					Timestamp: s.now(),
					Status:    domain.AssignmentFailed,
					Reason:    domain.ReasonNoPartner,
				}
				if err := tx.InsertAssignment(ctx, &rec); err != nil {
					return err
				}
				// The order stays pending so a later pass can retry it.
				outcomes = append(outcomes, rec)
				continue
			}

			partnerID := best.ID
			rec := domain.Assignment{
				OrderID:   order.ID,
				PartnerID: &partnerID,
				Timestamp: s.now(),
				Status:    domain.AssignmentSuccess,
				Reason:    domain.ReasonPartnerFound,
			}
			if err := tx.InsertAssignment(ctx, &rec); err != nil {
				return err
			}
			if err := tx.MarkOrderAssigned(ctx, order.ID, best.ID); err != nil {
				return err
			}
			if err := tx.IncrementPartnerLoad(ctx, best.ID, 1); err != nil {
				return err
			}
			best.CurrentLoad++
			outcomes = append(outcomes, rec)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	matched := 0
	for _, o := range outcomes {
		if o.Status == domain.AssignmentSuccess {
			matched++
		}
	}
	s.observePass(started, matched, len(outcomes)-matched)

	s.logger.Info("assignment pass completed",
		logx.String("event", "assignment_pass"),
		logx.Int("orders", len(outcomes)),
		logx.Int("matched", matched),
		logx.Int("unmatched", len(outcomes)-matched),
		logx.Duration("took", s.now().Sub(started)),
	)
	return outcomes, nil
}

func (s *Service) observePass(started time.Time, matched, unmatched int) {
	pm := s.passMetrics
	if pm.Passes != nil {
		pm.Passes.Inc()
	}
	if pm.Matched != nil {
		pm.Matched.Add(float64(matched))
	}
	if pm.Unmatched != nil {
		pm.Unmatched.Add(float64(unmatched))
	}
	if pm.Duration != nil {
		pm.Duration.Observe(s.now().Sub(started).Seconds())
	}
}

// Metrics aggregates the full assignment history.
func (s *Service) Metrics(ctx context.Context) (domain.AssignmentMetrics, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	records, err := s.records.ListAll(ctx)
	if err != nil {
		return domain.AssignmentMetrics{}, err
	}
	return ComputeMetrics(records), nil
}

// List returns assignment records matching the filter, newest first.
func (s *Service) List(ctx context.Context, f domain.AssignmentFilter) ([]domain.Assignment, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.records.List(ctx, f)
}
