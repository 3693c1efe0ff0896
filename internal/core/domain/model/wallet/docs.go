// Package wallet implements the per-user wallet ledger: an append-only log
// of signed transactions plus the cached balance derived from it.
//
// The conservation invariant — balance equals the signed sum of the ledger —
// holds at all times: Debit and Credit update both together, and
// RestoreWallet refuses persisted state where they disagree. A debit that
// would make the balance negative is rejected before anything is recorded.
package wallet
