package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BudgetPeriod represents the period type for a budget.
type BudgetPeriod string

const (
	BudgetWeekly  BudgetPeriod = "weekly"
	BudgetMonthly BudgetPeriod = "monthly"
)

// Budget caps spending for one category over a date window. Category is
// free text shared by convention with Transaction.Category; there is no
// hard foreign key.
type Budget struct {
	ID        string          `json:"id"`
	Category  string          `json:"category"`
	Limit     decimal.Decimal `json:"limit"`
	Period    BudgetPeriod    `json:"period"`
	StartDate time.Time       `json:"startDate"`
	EndDate   time.Time       `json:"endDate"`
	IsActive  bool            `json:"isActive"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// BudgetPatch carries a partial field set for a budget update.
type BudgetPatch struct {
	Category  *string          `json:"category,omitempty"`
	Limit     *decimal.Decimal `json:"limit,omitempty"`
	Period    *BudgetPeriod    `json:"period,omitempty"`
	StartDate *time.Time       `json:"startDate,omitempty"`
	EndDate   *time.Time       `json:"endDate,omitempty"`
	IsActive  *bool            `json:"isActive,omitempty"`
}

// Contains reports whether d falls inside the budget window, inclusive
// on both ends.
func (b Budget) Contains(d time.Time) bool {
	return !d.Before(b.StartDate) && !d.After(b.EndDate)
}

// Update merges the patch, validates the merged candidate and commits
// only on success.
func (b *Budget) Update(p BudgetPatch) ValidationResult {
	merged := *b
	if p.Category != nil {
		merged.Category = *p.Category
	}
	if p.Limit != nil {
		merged.Limit = *p.Limit
	}
	if p.Period != nil {
		merged.Period = *p.Period
	}
	if p.StartDate != nil {
		merged.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		merged.EndDate = *p.EndDate
	}
	if p.IsActive != nil {
		merged.IsActive = *p.IsActive
	}

	result := ValidateBudget(merged)
	if !result.IsValid {
		return result
	}

	merged.UpdatedAt = time.Now().UTC()
	*b = merged
	return result
}

// ValidateBudget checks a budget candidate.
func ValidateBudget(b Budget) ValidationResult {
	var errs []string

	if b.Category == "" {
		errs = append(errs, "category is required")
	} else if len(b.Category) > 50 {
		errs = append(errs, "category must be 50 characters or less")
	}

	if b.Limit.IsZero() || b.Limit.IsNegative() {
		errs = append(errs, "limit must be greater than zero")
	}

	if b.Period == "" {
		errs = append(errs, "period is required")
	} else if b.Period != BudgetWeekly && b.Period != BudgetMonthly {
		errs = append(errs, "period must be weekly or monthly")
	}

	if b.StartDate.IsZero() {
		errs = append(errs, "start date is required")
	}
	if b.EndDate.IsZero() {
		errs = append(errs, "end date is required")
	}
	if !b.StartDate.IsZero() && !b.EndDate.IsZero() && b.EndDate.Before(b.StartDate) {
		errs = append(errs, "end date must be on or after the start date")
	}

	return ValidationResult{IsValid: len(errs) == 0, Errors: errs}
}
