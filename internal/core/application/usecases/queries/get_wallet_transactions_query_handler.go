package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetWalletTransactionsQueryHandler lists recent wallet ledger entries.
type GetWalletTransactionsQueryHandler struct {
	db *gorm.DB
}

// NewGetWalletTransactionsQueryHandler creates a handler for transaction
// listings.
func NewGetWalletTransactionsQueryHandler(db *gorm.DB) GetWalletTransactionsQueryHandler {
	return GetWalletTransactionsQueryHandler{db: db}
}

// Handle executes the listing query, newest entries first.
// An owner without a wallet gets an empty list, not an error.
func (h GetWalletTransactionsQueryHandler) Handle(
	ctx context.Context,
	query GetWalletTransactionsQuery,
) ([]GetWalletTransactionsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	transactions := make([]GetWalletTransactionsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			tx_type,
			amount,
			reason,
			created_at
		FROM wallet_transactions
		WHERE owner_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, query.OwnerID().Bytes(), query.Limit()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var tx GetWalletTransactionsQueryResponse
		if err = rows.Scan(&tx.Type, &tx.Amount, &tx.Reason, &tx.Timestamp); err != nil {
			return nil, err
		}
		transactions = append(transactions, tx)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return transactions, nil
}
