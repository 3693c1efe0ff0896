package services

import (
	"sort"

	"quickbite/internal/core/domain/model/courier"
	"quickbite/internal/core/domain/model/kernel"
	"quickbite/internal/core/domain/model/order"
)

const (
	// DefaultRadiusMeters is the search radius used when the caller does
	// not supply one. The radius is always an explicit parameter on the
	// dispatch path so retries can widen it.
	DefaultRadiusMeters = 5000.0

	// DefaultCandidateLimit caps how many couriers receive an offer in one
	// dispatch round.
	DefaultCandidateLimit = 15

	// EarningRate is the courier's share of the order total, shown in the
	// offer and credited on delivery.
	EarningRate = 0.15
)

// CandidateOffer is one planned offer: a courier within range, their
// distance to the pickup point, and what they would earn.
type CandidateOffer struct {
	CourierID        kernel.UUID
	CourierName      string
	DistanceKm       float64
	EstimatedEarning kernel.Money
}

// DispatchPlanner is the domain service behind a dispatch round. Given an
// order, the restaurant's pickup point, and the current courier population,
// it produces the ranked list of candidates to offer the order to.
//
// Couriers that are offline or unverified never appear in the plan. An
// empty plan is a normal outcome, not an error: the order simply stays in
// rider search until a later round finds someone.
type DispatchPlanner struct{}

// NewDispatchPlanner creates a DispatchPlanner.
func NewDispatchPlanner() DispatchPlanner {
	return DispatchPlanner{}
}

// PlanOffers ranks dispatchable couriers within radiusMeters of the pickup
// point by ascending straight-line distance, capped at limit. Non-positive
// radius and limit fall back to the defaults.
func (p DispatchPlanner) PlanOffers(
	o *order.Order,
	pickup kernel.GeoPoint,
	couriers []*courier.Courier,
	radiusMeters float64,
	limit int,
) ([]CandidateOffer, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if err := pickup.Validate(); err != nil {
		return nil, err
	}

	if radiusMeters <= 0 {
		radiusMeters = DefaultRadiusMeters
	}
	if limit <= 0 {
		limit = DefaultCandidateLimit
	}

	earning := o.TotalAmount().MultiplyRounded(EarningRate)

	offers := make([]CandidateOffer, 0, len(couriers))
	for _, c := range couriers {
		if err := c.Validate(); err != nil {
			return nil, err
		}
		if !c.IsDispatchable() {
			continue
		}

		meters, err := pickup.DistanceMeters(c.Location())
		if err != nil {
			return nil, err
		}
		if meters > radiusMeters {
			continue
		}

		offers = append(offers, CandidateOffer{
			CourierID:        c.ID(),
			CourierName:      c.Name(),
			DistanceKm:       meters / 1000,
			EstimatedEarning: earning,
		})
	}

	sort.SliceStable(offers, func(i, j int) bool {
		return offers[i].DistanceKm < offers[j].DistanceKm
	})

	if len(offers) > limit {
		offers = offers[:limit]
	}

	return offers, nil
}
