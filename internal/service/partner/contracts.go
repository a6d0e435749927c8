package partner

import (
	"context"

	"delivery-dispatch/internal/domain"
)

// partnerRepository defines storage operations required by the business layer.
type partnerRepository interface {
	Get(ctx context.Context, id int64) (*domain.Partner, error)
	List(ctx context.Context, limit, offset *int) ([]domain.Partner, error)
	Create(ctx context.Context, p *domain.Partner) (int64, error)
	UpdatePartial(ctx context.Context, u domain.PartialPartnerUpdate) (bool, error)
}
