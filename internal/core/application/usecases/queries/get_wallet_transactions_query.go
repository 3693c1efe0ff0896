package queries

import (
	"errors"
	"time"

	"quickbite/internal/core/domain/model/kernel"
	"quickbite/internal/pkg/guard"
)

// DefaultTransactionLimit caps a transaction listing when the caller does
// not ask for a specific page size.
const DefaultTransactionLimit = 20

var ErrGetWalletTransactionsQueryIsNotConstructed = errors.New(
	"GetWalletTransactionsQuery must be created via NewGetWalletTransactionsQuery constructor",
)

// GetWalletTransactionsQuery retrieves the most recent ledger entries of a
// user's wallet, newest first.
type GetWalletTransactionsQuery struct {
	ownerID kernel.UUID
	limit   int

	guard guard.ConstructorGuard
}

// NewGetWalletTransactionsQuery creates a query for recent wallet
// transactions. A non-positive limit falls back to the default page size.
func NewGetWalletTransactionsQuery(ownerID kernel.UUID, limit int) (GetWalletTransactionsQuery, error) {
	if err := ownerID.Validate(); err != nil {
		return GetWalletTransactionsQuery{}, err
	}

	if limit <= 0 {
		limit = DefaultTransactionLimit
	}

	return GetWalletTransactionsQuery{
		ownerID: ownerID,
		limit:   limit,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetWalletTransactionsQuery) Validate() error {
	return q.guard.Validate(ErrGetWalletTransactionsQueryIsNotConstructed)
}

// OwnerID returns the wallet owner's identifier.
func (q GetWalletTransactionsQuery) OwnerID() kernel.UUID {
	return q.ownerID
}

// Limit returns the page size.
func (q GetWalletTransactionsQuery) Limit() int {
	return q.limit
}

// GetWalletTransactionsQueryResponse is one ledger entry read model.
type GetWalletTransactionsQueryResponse struct {
	Type      string
	Amount    int64
	Reason    string
	Timestamp time.Time
}
