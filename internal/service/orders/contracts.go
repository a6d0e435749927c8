package orders

import (
	"context"

	"delivery-dispatch/internal/ports/assigntx"
)

// TxRunner opens a store transaction for a single event
type TxRunner interface {
	WithTx(ctx context.Context, fn func(tx assigntx.Repository) error) error
}
