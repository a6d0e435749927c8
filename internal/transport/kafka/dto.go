package kafka

import (
	"strings"
	"time"

	"delivery-dispatch/internal/service/orders"
)

// EventDTO is the wire shape of an order lifecycle event
type EventDTO struct {
	OrderNumber string    `json:"order_number"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToDomain converts EventDTO to orders.Event
func ToDomain(dto EventDTO) orders.Event {
	return orders.Event{
		OrderNumber: strings.TrimSpace(dto.OrderNumber),
		Status:      strings.TrimSpace(dto.Status),
		CreatedAt:   dto.CreatedAt,
	}
}
