package orders

import (
	"context"

	"delivery-dispatch/internal/domain"
	"delivery-dispatch/internal/ports/assigntx"
	"delivery-dispatch/internal/repository"
)

// Processor processes order lifecycle events
type Processor struct {
	repo    TxRunner
	factory *actionFactory
}

// NewProcessorWithDeps creates a Processor from interfaces (handy for tests).
func NewProcessorWithDeps(repo TxRunner) *Processor {
	return newProcessor(repo)
}

// NewProcessor creates a new orders.Processor
func NewProcessor(repo *repository.AssignmentRepo) *Processor {
	return newProcessor(repo)
}

func newProcessor(repo TxRunner) *Processor {
	p := &Processor{
		repo: repo,
	}
	p.factory = newActionFactory(p.onPicked, p.onDelivered, p.onCanceled)
	return p
}

// Handle processes a single orders.Event
func (p *Processor) Handle(ctx context.Context, e Event) error {
	if p.factory == nil {
		return nil
	}
	fn, ok := p.factory.get(e.Status)
	if !ok {
		return nil
	}
	return fn(ctx, e)
}

func (p *Processor) onPicked(ctx context.Context, e Event) error {
	return p.repo.WithTx(ctx, func(tx assigntx.Repository) error {
		o, err := tx.GetOrderByNumber(ctx, e.OrderNumber)
		if err != nil {
			return err
		}
		if o == nil || o.Status != domain.OrderAssigned {
			return nil
		}
		return tx.SetOrderStatus(ctx, o.ID, domain.OrderPicked)
	})
}

func (p *Processor) onDelivered(ctx context.Context, e Event) error {
	return p.repo.WithTx(ctx, func(tx assigntx.Repository) error {
		o, err := tx.GetOrderByNumber(ctx, e.OrderNumber)
		if err != nil {
			return err
		}
		if o == nil || o.AssignedTo == nil {
			return nil
		}
		if o.Status != domain.OrderAssigned && o.Status != domain.OrderPicked {
			return nil
		}
		if err := tx.SetOrderStatus(ctx, o.ID, domain.OrderDelivered); err != nil {
			return err
		}
		if err := tx.IncrementPartnerLoad(ctx, *o.AssignedTo, -1); err != nil {
			return err
		}
		return tx.AddPartnerCompleted(ctx, *o.AssignedTo)
	})
}

// onCanceled returns the order to the backlog. The partner keeps the
// cancellation on their record and the slot frees up for the next pass.
func (p *Processor) onCanceled(ctx context.Context, e Event) error {
	return p.repo.WithTx(ctx, func(tx assigntx.Repository) error {
		o, err := tx.GetOrderByNumber(ctx, e.OrderNumber)
		if err != nil {
			return err
		}
		if o == nil || o.AssignedTo == nil {
			return nil
		}
		if o.Status != domain.OrderAssigned && o.Status != domain.OrderPicked {
			return nil
		}
		partnerID := *o.AssignedTo
		if err := tx.ClearOrderAssignment(ctx, o.ID); err != nil {
			return err
		}
		if err := tx.IncrementPartnerLoad(ctx, partnerID, -1); err != nil {
			return err
		}
		return tx.AddPartnerCancelled(ctx, partnerID)
	})
}
