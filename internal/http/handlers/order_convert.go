package handlers

import (
	"errors"

	"delivery-dispatch/internal/domain"
)

func (req createOrderRequest) toModel() (*domain.Order, error) {
	scheduled, err := domain.ParseClock(req.ScheduledFor)
	if err != nil {
		return nil, errors.New("invalid scheduled_for")
	}
	items := make([]domain.OrderItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, domain.OrderItem{
			Name:     it.Name,
			Quantity: it.Quantity,
			Price:    it.Price,
		})
	}
	return &domain.Order{
		OrderNumber: req.OrderNumber,
		Customer: domain.Customer{
			Name:    req.Customer.Name,
			Phone:   req.Customer.Phone,
			Address: req.Customer.Address,
		},
		Area:         req.Area,
		Items:        items,
		ScheduledFor: scheduled,
		TotalAmount:  req.TotalAmount,
	}, nil
}

func orderToResponse(o domain.Order) orderDTO {
	items := make([]orderItemDTO, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, orderItemDTO{
			Name:     it.Name,
			Quantity: it.Quantity,
			Price:    it.Price,
		})
	}
	return orderDTO{
		ID:          o.ID,
		OrderNumber: o.OrderNumber,
		Customer: customerDTO{
			Name:    o.Customer.Name,
			Phone:   o.Customer.Phone,
			Address: o.Customer.Address,
		},
		Area:         o.Area,
		Items:        items,
		Status:       o.Status,
		ScheduledFor: o.ScheduledFor.String(),
		AssignedTo:   o.AssignedTo,
		TotalAmount:  o.TotalAmount,
		CreatedAt:    o.CreatedAt,
	}
}

func ordersToResponse(list []domain.Order) []orderDTO {
	out := make([]orderDTO, 0, len(list))
	for _, o := range list {
		out = append(out, orderToResponse(o))
	}
	return out
}
