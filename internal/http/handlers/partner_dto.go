package handlers

import "delivery-dispatch/internal/domain"

type partnerDTO struct {
	ID              int64                `json:"id"`
	Name            string               `json:"name"`
	Email           string               `json:"email"`
	Phone           string               `json:"phone"`
	Status          domain.PartnerStatus `json:"status"`
	CurrentLoad     int                  `json:"current_load"`
	Areas           []string             `json:"areas"`
	ShiftStart      string               `json:"shift_start"`
	ShiftEnd        string               `json:"shift_end"`
	Rating          float64              `json:"rating"`
	CompletedOrders int                  `json:"completed_orders"`
	CancelledOrders int                  `json:"cancelled_orders"`
}

type createPartnerRequest struct {
	Name       string               `json:"name"`
	Email      string               `json:"email"`
	Phone      string               `json:"phone"`
	Status     domain.PartnerStatus `json:"status"`
	Areas      []string             `json:"areas"`
	ShiftStart string               `json:"shift_start"`
	ShiftEnd   string               `json:"shift_end"`
	Rating     float64              `json:"rating"`
}

type updatePartnerRequest struct {
	ID         int64                 `json:"id"`
	Name       *string               `json:"name,omitempty"`
	Email      *string               `json:"email,omitempty"`
	Phone      *string               `json:"phone,omitempty"`
	Status     *domain.PartnerStatus `json:"status,omitempty"`
	Areas      *[]string             `json:"areas,omitempty"`
	ShiftStart *string               `json:"shift_start,omitempty"`
	ShiftEnd   *string               `json:"shift_end,omitempty"`
}
