package walletrepo

import (
	"context"
	"errors"

	"quickbite/internal/core/domain/model/kernel"
	"quickbite/internal/core/domain/model/wallet"
	"quickbite/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormWalletRepository implements ports.WalletRepository using GORM.
//
// Get takes a row lock on the owner's wallet (SELECT ... FOR UPDATE), so
// within a unit of work two operations touching the same wallet serialize
// at the database while different wallets proceed in parallel.
type GormWalletRepository struct {
	db *gorm.DB
}

// NewGormWalletRepository creates a new GORM wallet repository.
func NewGormWalletRepository(db *gorm.DB) *GormWalletRepository {
	return &GormWalletRepository{db: db}
}

// Add saves a new wallet and its opening transactions.
func (r *GormWalletRepository) Add(ctx context.Context, aggregate *wallet.Wallet) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, txDTOs := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}
	if len(txDTOs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&txDTOs).Error
}

// Update persists the balance and appends the ledger entries added since
// the wallet was loaded. Existing entries are never rewritten.
func (r *GormWalletRepository) Update(ctx context.Context, aggregate *wallet.Wallet) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, txDTOs := fromDomain(aggregate)

	result := r.db.WithContext(ctx).Model(&WalletDTO{}).
		Where("owner_id = ?", dto.OwnerID).
		Update("balance", dto.Balance)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("wallet", aggregate.OwnerID().String())
	}

	var persisted int64
	if err := r.db.WithContext(ctx).Model(&WalletTransactionDTO{}).
		Where("owner_id = ?", dto.OwnerID).Count(&persisted).Error; err != nil {
		return err
	}

	if int(persisted) >= len(txDTOs) {
		return nil
	}
	appended := txDTOs[persisted:]
	return r.db.WithContext(ctx).Create(&appended).Error
}

// Get retrieves a wallet with its full ledger, locking the balance row for
// the remainder of the transaction.
func (r *GormWalletRepository) Get(ctx context.Context, ownerID kernel.UUID) (*wallet.Wallet, error) {
	if err := ownerID.Validate(); err != nil {
		return nil, err
	}

	var dto WalletDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&dto, "owner_id = ?", ownerID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("wallet", ownerID.String())
		}
		return nil, err
	}

	var txDTOs []WalletTransactionDTO
	if err = r.db.WithContext(ctx).
		Order("id").
		Find(&txDTOs, "owner_id = ?", ownerID.Bytes()).Error; err != nil {
		return nil, err
	}

	return toDomain(dto, txDTOs)
}
