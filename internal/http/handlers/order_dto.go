package handlers

import (
	"time"

	"github.com/shopspring/decimal"

	"delivery-dispatch/internal/domain"
)

type customerDTO struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type orderItemDTO struct {
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

type orderDTO struct {
	ID           int64              `json:"id"`
	OrderNumber  string             `json:"order_number"`
	Customer     customerDTO        `json:"customer"`
	Area         string             `json:"area"`
	Items        []orderItemDTO     `json:"items"`
	Status       domain.OrderStatus `json:"status"`
	ScheduledFor string             `json:"scheduled_for"`
	AssignedTo   *int64             `json:"assigned_to,omitempty"`
	TotalAmount  decimal.Decimal    `json:"total_amount"`
	CreatedAt    time.Time          `json:"created_at"`
}

type createOrderRequest struct {
	OrderNumber  string          `json:"order_number,omitempty"`
	Customer     customerDTO     `json:"customer"`
	Area         string          `json:"area"`
	Items        []orderItemDTO  `json:"items"`
	ScheduledFor string          `json:"scheduled_for"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
}
