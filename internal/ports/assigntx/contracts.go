package assigntx

import (
	"context"

	"delivery-dispatch/internal/domain"
)

// Repository is the transaction-scoped view of the store used by the
// assignment engine and the order lifecycle processor. Every method runs
// inside the transaction opened by Runner.WithTx.
type Repository interface {
	// Pass operations.
	ListPendingOrders(ctx context.Context) ([]domain.Order, error)
	ListActivePartnersForUpdate(ctx context.Context) ([]domain.Partner, error)
	InsertAssignment(ctx context.Context, a *domain.Assignment) error
	MarkOrderAssigned(ctx context.Context, orderID, partnerID int64) error
	IncrementPartnerLoad(ctx context.Context, partnerID int64, delta int) error

	// Lifecycle operations.
	GetOrderByNumber(ctx context.Context, number string) (*domain.Order, error)
	SetOrderStatus(ctx context.Context, orderID int64, status domain.OrderStatus) error
	ClearOrderAssignment(ctx context.Context, orderID int64) error
	AddPartnerCompleted(ctx context.Context, partnerID int64) error
	AddPartnerCancelled(ctx context.Context, partnerID int64) error
}

// Runner is a transaction runner
type Runner interface {
	WithTx(ctx context.Context, fn func(tx Repository) error) error
}
