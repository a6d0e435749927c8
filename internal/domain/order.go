package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus represents the lifecycle status of an order.
type OrderStatus string

// Customer holds the contact details attached to an order.
type Customer struct {
	Name    string
	Phone   string
	Address string
}

// OrderItem is a single line item of an order.
type OrderItem struct {
	Name     string
	Quantity int
	Price    decimal.Decimal
}

// Order represents a unit of delivery work.
type Order struct {
	ID           int64
	OrderNumber  string
	Customer     Customer
	Area         string
	Items        []OrderItem
	Status       OrderStatus
	ScheduledFor Clock
	AssignedTo   *int64
	TotalAmount  decimal.Decimal
	CreatedAt    time.Time
}

// OrderFilter narrows order listings. Nil fields match everything.
type OrderFilter struct {
	Status *OrderStatus
	Area   *string
}
