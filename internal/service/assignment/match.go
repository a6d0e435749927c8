package assignment

import (
	"math"

	"delivery-dispatch/internal/domain"
)

// Eligible reports whether the partner may legally take the order: active,
// covers the order's area, has spare capacity, and the order's scheduled
// time falls inside the partner's shift. Pure predicate, no side effects.
func Eligible(o *domain.Order, p *domain.Partner) bool {
	return p.Status == domain.PartnerActive &&
		p.CoversArea(o.Area) &&
		p.CurrentLoad < domain.Capacity &&
		p.Shift.Covers(o.ScheduledFor)
}

// Score ranks an eligible partner for the order; higher is better.
// Rating dominates, spare capacity balances load, experience adds a capped
// bonus, cancellations penalize linearly.
func Score(_ *domain.Order, p *domain.Partner) float64 {
	score := p.Metrics.Rating * 10
	score += float64(domain.Capacity-p.CurrentLoad) * 5
	score += math.Min(float64(p.Metrics.CompletedOrders)/100, 10)
	score -= float64(p.Metrics.CancelledOrders)
	return score
}

// FindBestPartner returns the maximum-scoring eligible partner from the
// snapshot, or nil when none qualifies. Ties break to the partner
// encountered first, so a fixed snapshot always yields the same choice.
// The snapshot must reflect load increments committed earlier in the same
// pass; that is what prevents overbooking within one pass.
func FindBestPartner(o *domain.Order, snapshot []*domain.Partner) *domain.Partner {
	var (
		best      *domain.Partner
		bestScore float64
	)
	for _, p := range snapshot {
		if !Eligible(o, p) {
			continue
		}
		s := Score(o, p)
		if best == nil || s > bestScore {
			best, bestScore = p, s
		}
	}
	return best
}
