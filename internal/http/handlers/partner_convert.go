package handlers

import (
	"errors"

	"delivery-dispatch/internal/domain"
)

func (req createPartnerRequest) toModel() (*domain.Partner, error) {
	start, err := domain.ParseClock(req.ShiftStart)
	if err != nil {
		return nil, errors.New("invalid shift_start")
	}
	end, err := domain.ParseClock(req.ShiftEnd)
	if err != nil {
		return nil, errors.New("invalid shift_end")
	}
	return &domain.Partner{
		Name:   req.Name,
		Email:  req.Email,
		Phone:  req.Phone,
		Status: req.Status,
		Areas:  req.Areas,
		Shift:  domain.Shift{Start: start, End: end},
		Metrics: domain.PartnerMetrics{
			Rating: req.Rating,
		},
	}, nil
}

func (req updatePartnerRequest) toModel() (domain.PartialPartnerUpdate, error) {
	u := domain.PartialPartnerUpdate{
		ID:     req.ID,
		Name:   req.Name,
		Email:  req.Email,
		Phone:  req.Phone,
		Status: req.Status,
		Areas:  req.Areas,
	}
	if req.ShiftStart == nil && req.ShiftEnd == nil {
		return u, nil
	}
	// Shift bounds only make sense as a pair.
	if req.ShiftStart == nil || req.ShiftEnd == nil {
		return u, errors.New("shift_start and shift_end must be set together")
	}
	start, err := domain.ParseClock(*req.ShiftStart)
	if err != nil {
		return u, errors.New("invalid shift_start")
	}
	end, err := domain.ParseClock(*req.ShiftEnd)
	if err != nil {
		return u, errors.New("invalid shift_end")
	}
	u.Shift = &domain.Shift{Start: start, End: end}
	return u, nil
}

func partnerToResponse(p domain.Partner) partnerDTO {
	return partnerDTO{
		ID:              p.ID,
		Name:            p.Name,
		Email:           p.Email,
		Phone:           p.Phone,
		Status:          p.Status,
		CurrentLoad:     p.CurrentLoad,
		Areas:           p.Areas,
		ShiftStart:      p.Shift.Start.String(),
		ShiftEnd:        p.Shift.End.String(),
		Rating:          p.Metrics.Rating,
		CompletedOrders: p.Metrics.CompletedOrders,
		CancelledOrders: p.Metrics.CancelledOrders,
	}
}

func partnersToResponse(list []domain.Partner) []partnerDTO {
	out := make([]partnerDTO, 0, len(list))
	for _, p := range list {
		out = append(out, partnerToResponse(p))
	}
	return out
}
