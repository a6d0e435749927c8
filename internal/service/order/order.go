package order

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"delivery-dispatch/internal/apperr"
	"delivery-dispatch/internal/domain"
)

// Service coordinates order intake and orchestrates repository calls.
type Service struct {
	repo             orderRepository
	operationTimeout time.Duration
	newOrderNumber   func() string
}

// NewService creates and configures an order Service.
func NewService(r orderRepository, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Service{
		repo:             r,
		operationTimeout: timeout,
		newOrderNumber:   func() string { return "ORD-" + uuid.NewString() },
	}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

// validateCreate validates an order for intake.
func validateCreate(o *domain.Order) error {
	if o == nil {
		return apperr.ErrInvalid
	}
	if strings.TrimSpace(o.Customer.Name) == "" ||
		strings.TrimSpace(o.Customer.Phone) == "" ||
		strings.TrimSpace(o.Customer.Address) == "" {
		return apperr.ErrInvalid
	}
	if strings.TrimSpace(o.Area) == "" {
		return apperr.ErrInvalid
	}
	if len(o.Items) == 0 {
		return apperr.ErrInvalid
	}
	for _, it := range o.Items {
		if strings.TrimSpace(it.Name) == "" || it.Quantity < 1 || it.Price.IsNegative() {
			return apperr.ErrInvalid
		}
	}
	if o.TotalAmount.IsNegative() {
		return apperr.ErrInvalid
	}
	return nil
}

// Get retrieves an order by its ID.
func (s *Service) Get(ctx context.Context, id int64) (*domain.Order, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	o, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, apperr.ErrNotFound
	}
	return o, nil
}

// List returns orders matching the filter.
func (s *Service) List(ctx context.Context, f domain.OrderFilter) ([]domain.Order, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	if f.Status != nil && !f.Status.Valid() {
		return nil, apperr.ErrInvalid
	}
	return s.repo.List(ctx, f)
}

// Create persists a new pending order and returns its generated ID.
// A missing order number is generated; the status is always forced to
// pending, assignment happens only through the engine.
func (s *Service) Create(ctx context.Context, o *domain.Order) (int64, error) {
	if err := validateCreate(o); err != nil {
		return 0, err
	}
	if strings.TrimSpace(o.OrderNumber) == "" {
		o.OrderNumber = s.newOrderNumber()
	}
	o.Status = domain.OrderPending
	o.AssignedTo = nil

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.repo.Create(ctx, o)
}
