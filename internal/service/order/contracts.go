package order

import (
	"context"

	"delivery-dispatch/internal/domain"
)

// orderRepository defines storage operations required by the business layer.
type orderRepository interface {
	Get(ctx context.Context, id int64) (*domain.Order, error)
	List(ctx context.Context, f domain.OrderFilter) ([]domain.Order, error)
	Create(ctx context.Context, o *domain.Order) (int64, error)
}
