package wallet

import (
	"errors"
	"fmt"
	"time"

	"quickbite/internal/core/domain/model/kernel"
	"quickbite/internal/pkg/errs"
	"quickbite/internal/pkg/guard"
)

var (
	// ErrWalletIsNotConstructed is returned when a Wallet was not created
	// through NewWallet or RestoreWallet.
	ErrWalletIsNotConstructed = errors.New("Wallet must be created via NewWallet constructor")

	// ErrInsufficientFunds is returned when a debit would push the balance
	// below zero. The wallet state is left untouched.
	ErrInsufficientFunds = errors.New("insufficient wallet funds")

	// ErrLedgerOutOfBalance is returned by RestoreWallet when the persisted
	// balance does not equal the signed sum of the transaction log.
	ErrLedgerOutOfBalance = errors.New("wallet balance does not match transaction log")
)

// TransactionType distinguishes ledger entries.
type TransactionType int

const (
	// TransactionTypeUnknown is the invalid zero value.
	TransactionTypeUnknown TransactionType = iota
	// Credit increases the balance.
	Credit
	// Debit decreases the balance.
	Debit
)

// String returns "credit" or "debit".
func (t TransactionType) String() string {
	switch t {
	case Credit:
		return "credit"
	case Debit:
		return "debit"
	default:
		return "unknown"
	}
}

// Validate checks the type is Credit or Debit.
func (t TransactionType) Validate() error {
	if t != Credit && t != Debit {
		return errs.NewValueIsInvalidErrorWithCause("transactionType",
			fmt.Errorf("%d is not a valid transaction type", t))
	}
	return nil
}

// TransactionTypeFromString parses a wire name into a TransactionType.
func TransactionTypeFromString(raw string) (TransactionType, error) {
	switch raw {
	case "credit":
		return Credit, nil
	case "debit":
		return Debit, nil
	default:
		return TransactionTypeUnknown, errs.NewValueIsInvalidErrorWithCause("transactionType",
			fmt.Errorf("%q is not a valid transaction type", raw))
	}
}

// Transaction is one immutable entry in the append-only ledger.
type Transaction struct {
	txType    TransactionType
	amount    kernel.Money
	reason    string
	timestamp time.Time

	guard guard.ConstructorGuard
}

// NewTransaction creates a ledger entry. The amount must be positive and
// the reason non-empty.
func NewTransaction(txType TransactionType, amount kernel.Money, reason string, timestamp time.Time) (Transaction, error) {
	if err := txType.Validate(); err != nil {
		return Transaction{}, err
	}
	if !amount.IsPositive() {
		return Transaction{}, errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%d is not greater than 0", amount.Amount()))
	}
	if reason == "" {
		return Transaction{}, errs.NewValueIsRequiredError("reason")
	}

	return Transaction{
		txType:    txType,
		amount:    amount,
		reason:    reason,
		timestamp: timestamp,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Type returns whether the entry is a credit or debit.
func (t Transaction) Type() TransactionType {
	return t.txType
}

// Amount returns the unsigned transaction amount.
func (t Transaction) Amount() kernel.Money {
	return t.amount
}

// Reason returns the human-readable cause of the entry.
func (t Transaction) Reason() string {
	return t.reason
}

// Timestamp returns when the entry was recorded.
func (t Transaction) Timestamp() time.Time {
	return t.timestamp
}

// Wallet is the aggregate root for a user's balance and its append-only
// transaction ledger.
//
// Invariants:
//   - balance is never negative
//   - balance equals the signed sum of all transactions at all times
//   - mutation happens only through Debit and Credit; there is no balance
//     setter
type Wallet struct {
	ownerID      kernel.UUID
	balance      kernel.Money
	transactions []Transaction

	guard guard.ConstructorGuard
}

// NewWallet creates an empty wallet for the owner.
func NewWallet(ownerID kernel.UUID) (*Wallet, error) {
	if err := ownerID.Validate(); err != nil {
		return nil, err
	}
	return &Wallet{
		ownerID: ownerID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// RestoreWallet reconstructs a wallet from persistence and re-checks the
// ledger conservation invariant: the stored balance must equal the signed
// sum of the stored transactions.
func RestoreWallet(ownerID kernel.UUID, balance kernel.Money, transactions []Transaction) (*Wallet, error) {
	if err := ownerID.Validate(); err != nil {
		return nil, err
	}

	signedSum := int64(0)
	for _, tx := range transactions {
		if err := tx.guard.Validate(ErrWalletIsNotConstructed); err != nil {
			return nil, err
		}
		switch tx.txType {
		case Credit:
			signedSum += tx.amount.Amount()
		case Debit:
			signedSum -= tx.amount.Amount()
		}
	}
	if signedSum != balance.Amount() {
		return nil, ErrLedgerOutOfBalance
	}

	w := &Wallet{
		ownerID: ownerID,
		balance: balance,
		guard:   guard.NewConstructorGuard(),
	}
	w.transactions = make([]Transaction, len(transactions))
	copy(w.transactions, transactions)
	return w, nil
}

// Validate ensures the wallet was properly constructed.
func (w *Wallet) Validate() error {
	if w == nil {
		return ErrWalletIsNotConstructed
	}
	return w.guard.Validate(ErrWalletIsNotConstructed)
}

// OwnerID returns the identifier of the wallet's owner.
func (w *Wallet) OwnerID() kernel.UUID {
	return w.ownerID
}

// Balance returns the current balance.
func (w *Wallet) Balance() kernel.Money {
	return w.balance
}

// Transactions returns a copy of the ledger, oldest first.
func (w *Wallet) Transactions() []Transaction {
	out := make([]Transaction, len(w.transactions))
	copy(out, w.transactions)
	return out
}

// RecentTransactions returns up to n newest entries, newest first.
func (w *Wallet) RecentTransactions(n int) []Transaction {
	if n <= 0 || len(w.transactions) == 0 {
		return nil
	}
	if n > len(w.transactions) {
		n = len(w.transactions)
	}
	out := make([]Transaction, 0, n)
	for i := len(w.transactions) - 1; i >= len(w.transactions)-n; i-- {
		out = append(out, w.transactions[i])
	}
	return out
}

// Debit checks funds, appends a debit entry, and decrements the balance as
// one step. A debit exceeding the balance fails with ErrInsufficientFunds
// and leaves both the balance and the ledger unchanged.
func (w *Wallet) Debit(amount kernel.Money, reason string) error {
	tx, err := NewTransaction(Debit, amount, reason, time.Now().UTC())
	if err != nil {
		return err
	}

	newBalance, err := w.balance.Sub(amount)
	if err != nil {
		return ErrInsufficientFunds
	}

	w.balance = newBalance
	w.transactions = append(w.transactions, tx)
	return nil
}

// Credit appends a credit entry and increments the balance. Always succeeds
// for a positive amount.
func (w *Wallet) Credit(amount kernel.Money, reason string) error {
	tx, err := NewTransaction(Credit, amount, reason, time.Now().UTC())
	if err != nil {
		return err
	}

	w.balance = w.balance.Add(amount)
	w.transactions = append(w.transactions, tx)
	return nil
}
