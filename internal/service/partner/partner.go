package partner

import (
	"context"
	"strings"
	"time"

	"delivery-dispatch/internal/apperr"
	"delivery-dispatch/internal/domain"
)

// Service coordinates partner business logic and orchestrates repository calls.
type Service struct {
	repo             partnerRepository
	operationTimeout time.Duration
}

// NewService creates and configures a partner Service.
func NewService(r partnerRepository, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Service{repo: r, operationTimeout: timeout}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

func validAreas(areas []string) bool {
	if len(areas) == 0 {
		return false
	}
	for _, a := range areas {
		if strings.TrimSpace(a) == "" {
			return false
		}
	}
	return true
}

// validateCreate validates a partner for creation.
func validateCreate(p *domain.Partner) error {
	if p == nil {
		return apperr.ErrInvalid
	}
	if strings.TrimSpace(p.Name) == "" {
		return apperr.ErrInvalid
	}
	if !domain.ValidateEmail(p.Email) {
		return apperr.ErrInvalid
	}
	if !domain.ValidatePhone(p.Phone) {
		return apperr.ErrInvalid
	}
	if p.Status == "" {
		p.Status = domain.PartnerInactive
	}
	if !p.Status.Valid() {
		return apperr.ErrInvalid
	}
	if !validAreas(p.Areas) {
		return apperr.ErrInvalid
	}
	if p.CurrentLoad < 0 || p.CurrentLoad > domain.Capacity {
		return apperr.ErrInvalid
	}
	if p.Metrics.Rating < 0 || p.Metrics.Rating > 5 {
		return apperr.ErrInvalid
	}
	if p.Metrics.CompletedOrders < 0 || p.Metrics.CancelledOrders < 0 {
		return apperr.ErrInvalid
	}
	return nil
}

func validateUpdate(u *domain.PartialPartnerUpdate) error {
	if u.ID <= 0 {
		return apperr.ErrInvalid
	}
	if u.Name == nil && u.Email == nil && u.Phone == nil && u.Status == nil &&
		u.Areas == nil && u.Shift == nil {
		return apperr.ErrInvalid
	}
	if u.Name != nil && strings.TrimSpace(*u.Name) == "" {
		return apperr.ErrInvalid
	}
	if u.Email != nil && !domain.ValidateEmail(*u.Email) {
		return apperr.ErrInvalid
	}
	if u.Phone != nil && !domain.ValidatePhone(*u.Phone) {
		return apperr.ErrInvalid
	}
	if u.Status != nil && !u.Status.Valid() {
		return apperr.ErrInvalid
	}
	if u.Areas != nil && !validAreas(*u.Areas) {
		return apperr.ErrInvalid
	}
	return nil
}

// Get retrieves a partner by its ID.
func (s *Service) Get(ctx context.Context, id int64) (*domain.Partner, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperr.ErrNotFound
	}
	return p, nil
}

// List returns partners with optional pagination
func (s *Service) List(ctx context.Context, limit, offset *int) ([]domain.Partner, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.repo.List(ctx, limit, offset)
}

// Create persists a new partner and returns its generated ID.
func (s *Service) Create(ctx context.Context, p *domain.Partner) (int64, error) {
	if err := validateCreate(p); err != nil {
		return 0, err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.repo.Create(ctx, p)
}

// UpdatePartial applies a partial update to a partner. It returns true if a row was updated.
func (s *Service) UpdatePartial(ctx context.Context, u domain.PartialPartnerUpdate) (bool, error) {
	if err := validateUpdate(&u); err != nil {
		return false, err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	ok, err := s.repo.UpdatePartial(ctx, u)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, apperr.ErrNotFound
	}
	return true, nil
}
