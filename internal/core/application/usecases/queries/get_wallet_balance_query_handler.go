package queries

import (
	"context"
	"database/sql"
	"errors"

	"quickbite/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetWalletBalanceQueryHandler reads a wallet balance straight from the
// wallets table.
type GetWalletBalanceQueryHandler struct {
	db *gorm.DB
}

// NewGetWalletBalanceQueryHandler creates a handler for balance queries.
func NewGetWalletBalanceQueryHandler(db *gorm.DB) GetWalletBalanceQueryHandler {
	return GetWalletBalanceQueryHandler{db: db}
}

// Handle executes the balance query.
// Returns errs.ErrObjectNotFound when no wallet exists for the owner.
func (h GetWalletBalanceQueryHandler) Handle(
	ctx context.Context,
	query GetWalletBalanceQuery,
) (GetWalletBalanceQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetWalletBalanceQueryResponse{}, err
	}

	var balance int64
	row := h.db.WithContext(ctx).Raw(`
		SELECT balance
		FROM wallets
		WHERE owner_id = ?
	`, query.OwnerID().Bytes()).Row()

	if err := row.Scan(&balance); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GetWalletBalanceQueryResponse{},
				errs.NewObjectNotFoundError("wallet", query.OwnerID().String())
		}
		return GetWalletBalanceQueryResponse{}, err
	}

	return GetWalletBalanceQueryResponse{
		OwnerID: query.OwnerID(),
		Balance: balance,
	}, nil
}
