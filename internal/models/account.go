package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// AccountType enumerates the supported account kinds.
type AccountType string

const (
	AccountChecking   AccountType = "checking"
	AccountSavings    AccountType = "savings"
	AccountCredit     AccountType = "credit"
	AccountInvestment AccountType = "investment"
)

// Account represents a single money account owned by the user.
//
// Balance is an adjustable opening value, not a journal: the value shown
// to the user is always recomputed from Balance plus the account's
// transactions (see engine.ComputeBalance). Callers refresh Balance
// opportunistically after transaction mutations.
type Account struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Type      AccountType     `json:"type"`
	Balance   decimal.Decimal `json:"balance"`
	Currency  string          `json:"currency"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// AccountPatch carries a partial field set for an account update.
// Nil fields are left untouched.
type AccountPatch struct {
	Name     *string          `json:"name,omitempty"`
	Type     *AccountType     `json:"type,omitempty"`
	Balance  *decimal.Decimal `json:"balance,omitempty"`
	Currency *string          `json:"currency,omitempty"`
}

// ValidAccountType reports whether t is one of the known account kinds.
func ValidAccountType(t AccountType) bool {
	switch t {
	case AccountChecking, AccountSavings, AccountCredit, AccountInvestment:
		return true
	}
	return false
}

// FormattedBalance renders the stored balance with the account currency,
// e.g. "USD 1200.50".
func (a Account) FormattedBalance() string {
	return fmt.Sprintf("%s %s", a.Currency, a.Balance.StringFixed(2))
}

// Update merges the patch onto the account, validates the result and
// commits only when validation passes. On failure the account is left
// untouched and the violations are returned.
func (a *Account) Update(p AccountPatch) ValidationResult {
	merged := *a
	if p.Name != nil {
		merged.Name = *p.Name
	}
	if p.Type != nil {
		merged.Type = *p.Type
	}
	if p.Balance != nil {
		merged.Balance = *p.Balance
	}
	if p.Currency != nil {
		merged.Currency = *p.Currency
	}

	result := ValidateAccount(merged)
	if !result.IsValid {
		return result
	}

	merged.UpdatedAt = time.Now().UTC()
	*a = merged
	return result
}

// ValidateAccount checks an account candidate against the account rule
// set. Candidates may be partially populated; only present fields are
// checked beyond the required ones.
func ValidateAccount(a Account) ValidationResult {
	var errs []string

	if a.Name == "" {
		errs = append(errs, "account name is required")
	} else if len(a.Name) > 100 {
		errs = append(errs, "account name must be 100 characters or less")
	}

	if a.Type == "" {
		errs = append(errs, "account type is required")
	} else if !ValidAccountType(a.Type) {
		errs = append(errs, "account type must be one of checking, savings, credit, investment")
	}

	if a.Currency == "" {
		errs = append(errs, "currency is required")
	} else if len(a.Currency) != 3 {
		errs = append(errs, "currency must be a 3-letter ISO code")
	}

	// Soft rule: deposit-style accounts should not start in the red.
	// Derived balances may transiently violate this, so it is only
	// enforced here, never as a hard invariant.
	if (a.Type == AccountSavings || a.Type == AccountInvestment) && a.Balance.IsNegative() {
		errs = append(errs, "savings and investment accounts cannot have a negative balance")
	}

	return ValidationResult{IsValid: len(errs) == 0, Errors: errs}
}
