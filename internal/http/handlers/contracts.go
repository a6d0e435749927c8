package handlers

import (
	"context"

	"delivery-dispatch/internal/domain"
	"delivery-dispatch/internal/service/assignment"
	"delivery-dispatch/internal/service/order"
	"delivery-dispatch/internal/service/partner"
)

type partnerUsecase interface {
	Get(ctx context.Context, id int64) (*domain.Partner, error)
	List(ctx context.Context, limit, offset *int) ([]domain.Partner, error)
	Create(ctx context.Context, p *domain.Partner) (int64, error)
	UpdatePartial(ctx context.Context, u domain.PartialPartnerUpdate) (bool, error)
}

// NewPartnerUsecase wires a partner.Service into a partnerUsecase.
func NewPartnerUsecase(svc *partner.Service) partnerUsecase {
	return svc
}

type orderUsecase interface {
	Get(ctx context.Context, id int64) (*domain.Order, error)
	List(ctx context.Context, f domain.OrderFilter) ([]domain.Order, error)
	Create(ctx context.Context, o *domain.Order) (int64, error)
}

// NewOrderUsecase wires an order.Service into an orderUsecase.
func NewOrderUsecase(svc *order.Service) orderUsecase {
	return svc
}

type assignmentUsecase interface {
	RunPass(ctx context.Context) ([]domain.Assignment, error)
	List(ctx context.Context, f domain.AssignmentFilter) ([]domain.Assignment, error)
	Metrics(ctx context.Context) (domain.AssignmentMetrics, error)
}

// NewAssignmentUsecase wires an assignment.Service into an assignmentUsecase.
func NewAssignmentUsecase(svc *assignment.Service) assignmentUsecase {
	return svc
}
