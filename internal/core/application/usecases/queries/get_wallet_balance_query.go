// Package queries contains read-only operations in the CQRS architecture.
// Query handlers read directly from the database, bypassing the domain
// aggregates, and return flat response models shaped for the API.
package queries

import (
	"errors"

	"quickbite/internal/core/domain/model/kernel"
	"quickbite/internal/pkg/guard"
)

var ErrGetWalletBalanceQueryIsNotConstructed = errors.New(
	"GetWalletBalanceQuery must be created via NewGetWalletBalanceQuery constructor",
)

// GetWalletBalanceQuery retrieves the current balance of a user's wallet.
type GetWalletBalanceQuery struct {
	ownerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetWalletBalanceQuery creates a query for a wallet balance.
func NewGetWalletBalanceQuery(ownerID kernel.UUID) (GetWalletBalanceQuery, error) {
	if err := ownerID.Validate(); err != nil {
		return GetWalletBalanceQuery{}, err
	}

	return GetWalletBalanceQuery{
		ownerID: ownerID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetWalletBalanceQuery) Validate() error {
	return q.guard.Validate(ErrGetWalletBalanceQueryIsNotConstructed)
}

// OwnerID returns the wallet owner's identifier.
func (q GetWalletBalanceQuery) OwnerID() kernel.UUID {
	return q.ownerID
}

// GetWalletBalanceQueryResponse is the balance read model, in minor
// currency units.
type GetWalletBalanceQueryResponse struct {
	OwnerID kernel.UUID
	Balance int64
}
