package app

import (
	"context"

	"delivery-dispatch/internal/service/orders"
	"delivery-dispatch/internal/transport/kafka"
)

type ordersHandler interface {
	Handle(ctx context.Context, e orders.Event) error
}

func makeOrdersKafka(h ordersHandler) kafka.HandleFunc {
	return h.Handle
}
