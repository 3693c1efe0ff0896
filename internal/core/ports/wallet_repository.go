package ports

import (
	"context"

	"quickbite/internal/core/domain/model/kernel"
	"quickbite/internal/core/domain/model/wallet"
)

// WalletRepository defines the persistence contract for wallet aggregates.
//
// Per-owner serialization is the adapter's responsibility: within a unit of
// work, Get must lock the owner's wallet row (or equivalent) so that a
// concurrent debit/credit on the same wallet waits, while wallets of
// different owners proceed in parallel.
type WalletRepository interface {
	// Add persists a new wallet aggregate.
	Add(ctx context.Context, aggregate *wallet.Wallet) error

	// Update persists the wallet balance and any transactions appended
	// since it was loaded.
	Update(ctx context.Context, aggregate *wallet.Wallet) error

	// Get retrieves the wallet owned by ownerID, with its ledger.
	Get(ctx context.Context, ownerID kernel.UUID) (*wallet.Wallet, error)
}
