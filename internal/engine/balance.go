// Package engine computes derived financial views (balances, budget and
// goal progress, notifications, reports) as pure functions over dataset
// snapshots. Nothing here performs I/O or holds state; status is always
// derived fresh on read.
package engine

import (
	"github.com/shopspring/decimal"

	"github.com/mrememisaac/personal-finance-tracker-sub001/internal/models"
)

// DefaultOverdraftLimit is how far below zero a checking account may go.
var DefaultOverdraftLimit = decimal.NewFromInt(-500)

// ComputeBalance returns the account's effective balance: the stored
// opening balance plus income magnitudes minus expense magnitudes of
// every transaction referencing the account. O(n) over the transaction
// set; this recomputed value is authoritative for display.
func ComputeBalance(account models.Account, transactions []models.Transaction) decimal.Decimal {
	balance := account.Balance
	for _, t := range transactions {
		if t.AccountID != account.ID {
			continue
		}
		balance = balance.Add(t.SignedAmount())
	}
	return balance
}

// CanAccommodate reports whether applying delta to the account's
// effective balance is allowed under the account type's overdraft
// policy. Savings and investment accounts reject any negative result;
// checking accounts may dip to the overdraft limit; credit accounts
// carry debt freely.
func CanAccommodate(account models.Account, transactions []models.Transaction, delta decimal.Decimal) bool {
	result := ComputeBalance(account, transactions).Add(delta)
	switch account.Type {
	case models.AccountSavings, models.AccountInvestment:
		return !result.IsNegative()
	case models.AccountChecking:
		return result.GreaterThanOrEqual(DefaultOverdraftLimit)
	case models.AccountCredit:
		return true
	}
	return !result.IsNegative()
}
