// Package walletrepo persists wallet aggregates: one balance row per owner
// plus an append-only transaction log.
package walletrepo

import (
	"time"

	"quickbite/internal/core/domain/model/kernel"
	"quickbite/internal/core/domain/model/wallet"

	"github.com/google/uuid"
)

// WalletDTO is the balance row. The balance is denormalized from the
// transaction log; RestoreWallet re-checks the two agree on every load.
type WalletDTO struct {
	OwnerID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Balance int64
}

// TableName overrides GORM's default naming convention to use "wallets".
func (WalletDTO) TableName() string {
	return "wallets"
}

// WalletTransactionDTO is one ledger entry. Rows are append-only.
type WalletTransactionDTO struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	OwnerID   uuid.UUID `gorm:"type:uuid;index"`
	TxType    string    `gorm:"type:varchar(8)"`
	Amount    int64
	Reason    string
	CreatedAt time.Time
}

// TableName overrides GORM's default naming convention.
func (WalletTransactionDTO) TableName() string {
	return "wallet_transactions"
}

func fromDomain(aggregate *wallet.Wallet) (WalletDTO, []WalletTransactionDTO) {
	ownerID := aggregate.OwnerID().Bytes()

	transactions := make([]WalletTransactionDTO, 0, len(aggregate.Transactions()))
	for _, tx := range aggregate.Transactions() {
		transactions = append(transactions, WalletTransactionDTO{
			OwnerID:   ownerID,
			TxType:    tx.Type().String(),
			Amount:    tx.Amount().Amount(),
			Reason:    tx.Reason(),
			CreatedAt: tx.Timestamp(),
		})
	}

	return WalletDTO{
		OwnerID: ownerID,
		Balance: aggregate.Balance().Amount(),
	}, transactions
}

func toDomain(dto WalletDTO, txDTOs []WalletTransactionDTO) (*wallet.Wallet, error) {
	ownerID, err := kernel.UUIDFromBytes(dto.OwnerID[:])
	if err != nil {
		return nil, err
	}

	balance, err := kernel.NewMoney(dto.Balance)
	if err != nil {
		return nil, err
	}

	transactions := make([]wallet.Transaction, 0, len(txDTOs))
	for _, txDTO := range txDTOs {
		txType, txErr := wallet.TransactionTypeFromString(txDTO.TxType)
		if txErr != nil {
			return nil, txErr
		}
		amount, txErr := kernel.NewMoney(txDTO.Amount)
		if txErr != nil {
			return nil, txErr
		}
		tx, txErr := wallet.NewTransaction(txType, amount, txDTO.Reason, txDTO.CreatedAt)
		if txErr != nil {
			return nil, txErr
		}
		transactions = append(transactions, tx)
	}

	return wallet.RestoreWallet(ownerID, balance, transactions)
}
