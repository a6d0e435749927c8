package domain

// PartnerStatus represents the status of a delivery partner.
type PartnerStatus string

// Capacity is the maximum number of concurrent orders a partner may carry.
const Capacity = 3

// PartnerMetrics is the performance aggregate kept per partner.
type PartnerMetrics struct {
	Rating          float64
	CompletedOrders int
	CancelledOrders int
}

// Partner represents a capacity-bounded delivery partner.
type Partner struct {
	ID          int64
	Name        string
	Email       string
	Phone       string
	Status      PartnerStatus
	CurrentLoad int
	Areas       []string
	Shift       Shift
	Metrics     PartnerMetrics
}

// CoversArea reports whether the partner serves the given area.
// Areas compare case-insensitively.
func (p *Partner) CoversArea(area string) bool {
	for _, a := range p.Areas {
		if EqualArea(a, area) {
			return true
		}
	}
	return false
}

// PartialPartnerUpdate carries optional fields to update a partner.
// A nil field means "do not change" that attribute.
type PartialPartnerUpdate struct {
	ID     int64
	Name   *string
	Email  *string
	Phone  *string
	Status *PartnerStatus
	Areas  *[]string
	Shift  *Shift
}
