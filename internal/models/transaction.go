package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType tells whether a transaction adds to or draws from an
// account. Amount is always a non-negative magnitude; the sign is
// implied by the type.
type TransactionType string

const (
	TransactionIncome  TransactionType = "income"
	TransactionExpense TransactionType = "expense"
)

// Transaction represents one dated movement of money against an account.
type Transaction struct {
	ID          string          `json:"id"`
	Date        time.Time       `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	AccountID   string          `json:"accountId"`
	Type        TransactionType `json:"type"`
	Tags        []string        `json:"tags,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// TransactionPatch carries a partial field set for a transaction update.
type TransactionPatch struct {
	Date        *time.Time       `json:"date,omitempty"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Description *string          `json:"description,omitempty"`
	Category    *string          `json:"category,omitempty"`
	AccountID   *string          `json:"accountId,omitempty"`
	Type        *TransactionType `json:"type,omitempty"`
	Tags        *[]string        `json:"tags,omitempty"`
}

// SignedAmount returns the amount with the sign implied by the type:
// positive for income, negative for expense.
func (t Transaction) SignedAmount() decimal.Decimal {
	if t.Type == TransactionExpense {
		return t.Amount.Neg()
	}
	return t.Amount
}

// Update merges the patch, validates the merged candidate and commits
// only on success.
func (t *Transaction) Update(p TransactionPatch) ValidationResult {
	merged := *t
	if p.Date != nil {
		merged.Date = *p.Date
	}
	if p.Amount != nil {
		merged.Amount = *p.Amount
	}
	if p.Description != nil {
		merged.Description = *p.Description
	}
	if p.Category != nil {
		merged.Category = *p.Category
	}
	if p.AccountID != nil {
		merged.AccountID = *p.AccountID
	}
	if p.Type != nil {
		merged.Type = *p.Type
	}
	if p.Tags != nil {
		merged.Tags = *p.Tags
	}

	result := ValidateTransaction(merged)
	if !result.IsValid {
		return result
	}

	merged.UpdatedAt = time.Now().UTC()
	*t = merged
	return result
}

// ValidateTransaction checks a transaction candidate. Partially
// populated candidates are tolerated: optional fields (tags) are only
// checked when present.
func ValidateTransaction(t Transaction) ValidationResult {
	var errs []string

	if t.Amount.IsZero() || t.Amount.IsNegative() {
		errs = append(errs, "amount must be greater than zero")
	}

	if t.Date.IsZero() {
		errs = append(errs, "date is required")
	} else if t.Date.After(time.Now()) {
		errs = append(errs, "date cannot be in the future")
	}

	if t.Description == "" {
		errs = append(errs, "description is required")
	} else if len(t.Description) > 255 {
		errs = append(errs, "description must be 255 characters or less")
	}

	if t.Category == "" {
		errs = append(errs, "category is required")
	} else if len(t.Category) > 50 {
		errs = append(errs, "category must be 50 characters or less")
	}

	if t.AccountID == "" {
		errs = append(errs, "account is required")
	}

	if t.Type == "" {
		errs = append(errs, "type is required")
	} else if t.Type != TransactionIncome && t.Type != TransactionExpense {
		errs = append(errs, "type must be income or expense")
	}

	for _, tag := range t.Tags {
		if len(tag) > 30 {
			errs = append(errs, "tags must be 30 characters or less")
			break
		}
	}

	return ValidationResult{IsValid: len(errs) == 0, Errors: errs}
}
