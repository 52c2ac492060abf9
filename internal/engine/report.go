package engine

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mrememisaac/personal-finance-tracker-sub001/internal/models"
)

// CategoryBreakdown is one row of the expense-by-category table.
type CategoryBreakdown struct {
	Category   string          `json:"category"`
	Amount     decimal.Decimal `json:"amount"`
	Percentage float64         `json:"percentage"`
}

// MonthlyTrend is one calendar-month bucket.
type MonthlyTrend struct {
	Month    string          `json:"month"` // YYYY-MM
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Net      decimal.Decimal `json:"net"`
}

// Summary is the rolled-up view of a date range.
type Summary struct {
	StartDate     time.Time           `json:"startDate"`
	EndDate       time.Time           `json:"endDate"`
	TotalIncome   decimal.Decimal     `json:"totalIncome"`
	TotalExpenses decimal.Decimal     `json:"totalExpenses"`
	NetBalance    decimal.Decimal     `json:"netBalance"`
	Categories    []CategoryBreakdown `json:"categories"`
	Trends        []MonthlyTrend      `json:"trends"`
}

// Summarize rolls transactions inside [start, end] into income/expense
// totals, a category breakdown sorted by amount descending and
// chronological month buckets.
func Summarize(start, end time.Time, transactions []models.Transaction) Summary {
	s := Summary{
		StartDate:     start,
		EndDate:       end,
		TotalIncome:   decimal.Zero,
		TotalExpenses: decimal.Zero,
	}

	byCategory := make(map[string]decimal.Decimal)
	byMonth := make(map[string]*MonthlyTrend)

	for _, t := range transactions {
		if t.Date.Before(start) || t.Date.After(end) {
			continue
		}

		key := t.Date.Format("2006-01")
		bucket, ok := byMonth[key]
		if !ok {
			bucket = &MonthlyTrend{Month: key, Income: decimal.Zero, Expenses: decimal.Zero}
			byMonth[key] = bucket
		}

		switch t.Type {
		case models.TransactionIncome:
			s.TotalIncome = s.TotalIncome.Add(t.Amount)
			bucket.Income = bucket.Income.Add(t.Amount)
		case models.TransactionExpense:
			s.TotalExpenses = s.TotalExpenses.Add(t.Amount)
			bucket.Expenses = bucket.Expenses.Add(t.Amount)
			byCategory[t.Category] = mapGet(byCategory, t.Category).Add(t.Amount)
		}
	}

	s.NetBalance = s.TotalIncome.Sub(s.TotalExpenses)

	for cat, amount := range byCategory {
		var pct float64
		if s.TotalExpenses.IsPositive() {
			pct, _ = amount.Div(s.TotalExpenses).Mul(decimal.NewFromInt(100)).Float64()
		}
		s.Categories = append(s.Categories, CategoryBreakdown{Category: cat, Amount: amount, Percentage: pct})
	}
	sort.Slice(s.Categories, func(i, j int) bool {
		cmp := s.Categories[i].Amount.Cmp(s.Categories[j].Amount)
		if cmp != 0 {
			return cmp > 0
		}
		return s.Categories[i].Category < s.Categories[j].Category
	})

	for _, bucket := range byMonth {
		bucket.Net = bucket.Income.Sub(bucket.Expenses)
		s.Trends = append(s.Trends, *bucket)
	}
	sort.Slice(s.Trends, func(i, j int) bool { return s.Trends[i].Month < s.Trends[j].Month })

	return s
}

func mapGet(m map[string]decimal.Decimal, key string) decimal.Decimal {
	if v, ok := m[key]; ok {
		return v
	}
	return decimal.Zero
}

// HealthScore is the composite 0-100 financial health figure with its
// sub-scores.
type HealthScore struct {
	Score           float64 `json:"score"`
	IncomeExpense   float64 `json:"incomeExpense"`
	BudgetAdherence float64 `json:"budgetAdherence"`
	GoalProgress    float64 `json:"goalProgress"`
	Diversity       float64 `json:"diversity"`
}

// Health-score blend weights.
const (
	weightIncomeExpense   = 0.4
	weightBudgetAdherence = 0.3
	weightGoalProgress    = 0.2
	weightDiversity       = 0.1
)

// ComputeHealthScore blends four independently clamped sub-scores:
// income/expense ratio, adherence across active budgets, average goal
// progress and account-type diversity. Advisory only; no other engine
// consumes it.
func ComputeHealthScore(summary Summary, accounts []models.Account, budgets []models.Budget, transactions []models.Transaction, goalProgress []GoalProgress) HealthScore {
	h := HealthScore{}

	// Income vs expense: spending exactly what you earn scores 50,
	// spending half scores 100.
	if summary.TotalIncome.IsPositive() {
		ratio, _ := summary.TotalExpenses.Div(summary.TotalIncome).Float64()
		h.IncomeExpense = clamp(150 - 100*ratio)
	}

	// Budget adherence: average headroom across active budgets. No
	// active budgets reads as neutral.
	var adherence float64
	active := 0
	for _, b := range budgets {
		if !b.IsActive {
			continue
		}
		p := ComputeBudgetProgress(b, transactions)
		adherence += clamp(100 - p.Percentage)
		active++
	}
	if active > 0 {
		h.BudgetAdherence = adherence / float64(active)
	} else {
		h.BudgetAdherence = 50
	}

	// Goal progress: average capped progress across goals.
	if len(goalProgress) > 0 {
		var total float64
		for _, p := range goalProgress {
			total += clamp(p.Progress)
		}
		h.GoalProgress = total / float64(len(goalProgress))
	} else {
		h.GoalProgress = 50
	}

	// Diversity: 25 points per distinct account type held.
	types := make(map[models.AccountType]struct{})
	for _, a := range accounts {
		types[a.Type] = struct{}{}
	}
	h.Diversity = clamp(float64(len(types)) * 25)

	h.Score = clamp(h.IncomeExpense*weightIncomeExpense +
		h.BudgetAdherence*weightBudgetAdherence +
		h.GoalProgress*weightGoalProgress +
		h.Diversity*weightDiversity)
	return h
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
