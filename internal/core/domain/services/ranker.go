package services

import (
	"sort"

	"dispatch/internal/core/domain/model/partner"
)

// PartnerRanker is a domain service that orders candidate delivery partners
// best-first for assignment.
//
// Candidates are first filtered to partners with spare capacity and a rating
// at or above the requested minimum, then sorted by:
//  1. rating, descending
//  2. current active-order count, ascending
//  3. completion rate, descending
//
// The sort is stable over an id-ordered input, so equal-key partners always
// come out in the same order and assignment stays reproducible.
type PartnerRanker struct{}

// NewPartnerRanker creates a new PartnerRanker instance.
func NewPartnerRanker() PartnerRanker {
	return PartnerRanker{}
}

// Rank filters and orders the candidates best-first.
// An empty result is a valid outcome meaning no partner is currently eligible.
func (r PartnerRanker) Rank(candidates []*partner.DeliveryPartner, minRating float64) []*partner.DeliveryPartner {
	ranked := make([]*partner.DeliveryPartner, 0, len(candidates))
	for _, p := range candidates {
		if p.Validate() != nil {
			continue
		}
		if !p.HasCapacity() || p.Rating() < minRating {
			continue
		}
		ranked = append(ranked, p)
	}

	// Deterministic base order before the stable ranking sort.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].ID().String() < ranked[j].ID().String()
	})

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Rating() != ranked[j].Rating() {
			return ranked[i].Rating() > ranked[j].Rating()
		}
		if ranked[i].ActiveOrderCount() != ranked[j].ActiveOrderCount() {
			return ranked[i].ActiveOrderCount() < ranked[j].ActiveOrderCount()
		}
		return ranked[i].CompletionRate() > ranked[j].CompletionRate()
	})

	return ranked
}
