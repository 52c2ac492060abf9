package models

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// MaxGoalTarget is the upper bound on a goal's target amount.
var MaxGoalTarget = decimal.NewFromInt(10_000_000)

// GoalMilestones are the fixed checkpoints, as percentages of target.
var GoalMilestones = []int{25, 50, 75, 100}

// ErrNegativeContribution is returned when a contribution amount is not
// positive. Contributions never clamp to zero.
var ErrNegativeContribution = errors.New("contribution amount must be greater than zero")

// ErrNegativeAmount is returned when a goal's current amount would be
// set below zero.
var ErrNegativeAmount = errors.New("amount cannot be negative")

// Goal is a savings target funded through a linked account. The stored
// CurrentAmount is the last committed figure; when the goal is active
// and linked to an account, display values are re-derived from the
// account balance (see engine.DedicatedAmount). Completed goals freeze
// their CurrentAmount.
type Goal struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	TargetAmount  decimal.Decimal `json:"targetAmount"`
	CurrentAmount decimal.Decimal `json:"currentAmount"`
	TargetDate    time.Time       `json:"targetDate"`
	AccountID     string          `json:"accountId"`
	IsCompleted   bool            `json:"isCompleted"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// GoalPatch carries a partial field set for a goal update.
type GoalPatch struct {
	Name          *string          `json:"name,omitempty"`
	Description   *string          `json:"description,omitempty"`
	TargetAmount  *decimal.Decimal `json:"targetAmount,omitempty"`
	CurrentAmount *decimal.Decimal `json:"currentAmount,omitempty"`
	TargetDate    *time.Time       `json:"targetDate,omitempty"`
	AccountID     *string          `json:"accountId,omitempty"`
	IsCompleted   *bool            `json:"isCompleted,omitempty"`
}

// MilestoneAmount returns the amount for a checkpoint percentage.
func (g Goal) MilestoneAmount(pct int) decimal.Decimal {
	return g.TargetAmount.Mul(decimal.NewFromInt(int64(pct))).Div(decimal.NewFromInt(100))
}

// MilestoneAchieved reports whether the checkpoint at pct percent of
// target has been reached.
func (g Goal) MilestoneAchieved(pct int) bool {
	return g.CurrentAmount.GreaterThanOrEqual(g.MilestoneAmount(pct))
}

// AddContribution increases the current amount and flips IsCompleted
// when the target is reached. Non-positive amounts are rejected.
func (g *Goal) AddContribution(amount decimal.Decimal) error {
	if amount.IsZero() || amount.IsNegative() {
		return ErrNegativeContribution
	}
	g.CurrentAmount = g.CurrentAmount.Add(amount)
	if g.CurrentAmount.GreaterThanOrEqual(g.TargetAmount) {
		g.IsCompleted = true
	}
	g.UpdatedAt = time.Now().UTC()
	return nil
}

// SetCurrentAmount overwrites the current amount and re-evaluates
// completion in both directions.
func (g *Goal) SetCurrentAmount(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return ErrNegativeAmount
	}
	g.CurrentAmount = amount
	g.IsCompleted = amount.GreaterThanOrEqual(g.TargetAmount)
	g.UpdatedAt = time.Now().UTC()
	return nil
}

// Update merges the patch, validates the merged candidate and commits
// only on success.
func (g *Goal) Update(p GoalPatch) ValidationResult {
	merged := *g
	if p.Name != nil {
		merged.Name = *p.Name
	}
	if p.Description != nil {
		merged.Description = *p.Description
	}
	if p.TargetAmount != nil {
		merged.TargetAmount = *p.TargetAmount
	}
	if p.CurrentAmount != nil {
		merged.CurrentAmount = *p.CurrentAmount
	}
	if p.TargetDate != nil {
		merged.TargetDate = *p.TargetDate
	}
	if p.AccountID != nil {
		merged.AccountID = *p.AccountID
	}
	if p.IsCompleted != nil {
		merged.IsCompleted = *p.IsCompleted
	}

	result := ValidateGoal(merged)
	if !result.IsValid {
		return result
	}

	merged.UpdatedAt = time.Now().UTC()
	*g = merged
	return result
}

// ValidateGoal checks a goal candidate. The description is optional and
// only length-checked when present.
func ValidateGoal(g Goal) ValidationResult {
	var errs []string

	if g.Name == "" {
		errs = append(errs, "goal name is required")
	} else if len(g.Name) > 100 {
		errs = append(errs, "goal name must be 100 characters or less")
	}

	if g.Description != "" && len(g.Description) > 500 {
		errs = append(errs, "description must be 500 characters or less")
	}

	if g.TargetAmount.IsZero() || g.TargetAmount.IsNegative() {
		errs = append(errs, "target amount must be greater than zero")
	} else if g.TargetAmount.GreaterThan(MaxGoalTarget) {
		errs = append(errs, "target amount must be 10,000,000 or less")
	}

	if g.CurrentAmount.IsNegative() {
		errs = append(errs, "current amount cannot be negative")
	} else if g.TargetAmount.IsPositive() {
		// Soft guard: allow modest overshoot but flag runaway values.
		cap := g.TargetAmount.Mul(decimal.NewFromFloat(1.1))
		if g.CurrentAmount.GreaterThan(cap) {
			errs = append(errs, "current amount cannot exceed 110% of the target amount")
		}
	}

	if g.TargetDate.IsZero() {
		errs = append(errs, "target date is required")
	} else if !g.IsCompleted && !g.TargetDate.After(time.Now()) {
		errs = append(errs, "target date must be in the future")
	}

	if g.AccountID == "" {
		errs = append(errs, "linked account is required")
	}

	return ValidationResult{IsValid: len(errs) == 0, Errors: errs}
}
