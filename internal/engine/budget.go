package engine

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mrememisaac/personal-finance-tracker-sub001/internal/models"
)

// BudgetStatus classifies spending against a budget limit.
type BudgetStatus string

const (
	BudgetSafe    BudgetStatus = "safe"
	BudgetWarning BudgetStatus = "warning"
	BudgetDanger  BudgetStatus = "danger"
)

// BudgetProgress is the derived view of one budget.
type BudgetProgress struct {
	BudgetID   string          `json:"budgetId"`
	Category   string          `json:"category"`
	Spent      decimal.Decimal `json:"spent"`
	Limit      decimal.Decimal `json:"limit"`
	Percentage float64         `json:"percentage"`
	Status     BudgetStatus    `json:"status"`
}

// ComputeBudgetProgress sums expense magnitudes in the budget's
// category and window and classifies the result. The percentage is
// uncapped; anything over 100 reads as overspend. Works for inactive
// budgets too; only active ones feed the health score.
func ComputeBudgetProgress(budget models.Budget, transactions []models.Transaction) BudgetProgress {
	spent := decimal.Zero
	for _, t := range transactions {
		if t.Type != models.TransactionExpense {
			continue
		}
		if !strings.EqualFold(t.Category, budget.Category) {
			continue
		}
		if !budget.Contains(t.Date) {
			continue
		}
		spent = spent.Add(t.Amount)
	}

	var pct float64
	if budget.Limit.IsPositive() {
		pct, _ = spent.Div(budget.Limit).Mul(decimal.NewFromInt(100)).Float64()
	}

	return BudgetProgress{
		BudgetID:   budget.ID,
		Category:   budget.Category,
		Spent:      spent,
		Limit:      budget.Limit,
		Percentage: pct,
		Status:     classifyBudget(pct),
	}
}

// classifyBudget applies the fixed thresholds: safe up to and including
// 80%, warning up to and including 100%, danger beyond.
func classifyBudget(pct float64) BudgetStatus {
	switch {
	case pct > 100:
		return BudgetDanger
	case pct > 80:
		return BudgetWarning
	default:
		return BudgetSafe
	}
}
