package services

import (
	"sync"

	"quickbite/internal/core/domain/model/kernel"
)

// OfferBoard tracks which couriers currently hold an open offer for each
// order. The dispatch engine records a round's candidates here and, once
// the order is assigned or cancelled, takes the set back to withdraw the
// offer from everyone who lost.
//
// The board is in-memory and best-effort by design: it mirrors the event
// bus's no-persistence model, so a restart forgets open offers and couriers
// reconcile by re-fetching order state.
type OfferBoard struct {
	mu     sync.Mutex
	offers map[string]map[string]kernel.UUID
}

// NewOfferBoard creates an empty OfferBoard.
func NewOfferBoard() *OfferBoard {
	return &OfferBoard{
		offers: make(map[string]map[string]kernel.UUID),
	}
}

// Record registers open offers for the order, merging with any outstanding
// round so a widened retry extends rather than replaces the candidate set.
func (b *OfferBoard) Record(orderID kernel.UUID, courierIDs []kernel.UUID) {
	b.mu.Lock()
	defer b.mu.Unlock()

	set, ok := b.offers[orderID.String()]
	if !ok {
		set = make(map[string]kernel.UUID, len(courierIDs))
		b.offers[orderID.String()] = set
	}
	for _, id := range courierIDs {
		set[id.String()] = id
	}
}

// Take removes and returns all couriers holding an open offer for the
// order. Returns nil when no offers are outstanding.
func (b *OfferBoard) Take(orderID kernel.UUID) []kernel.UUID {
	b.mu.Lock()
	defer b.mu.Unlock()

	set, ok := b.offers[orderID.String()]
	if !ok {
		return nil
	}
	delete(b.offers, orderID.String())

	out := make([]kernel.UUID, 0, len(set))
	for _, id := range set {
		out = append(out, id)
	}
	return out
}

// Outstanding returns how many couriers hold an open offer for the order.
func (b *OfferBoard) Outstanding(orderID kernel.UUID) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.offers[orderID.String()])
}
