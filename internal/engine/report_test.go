package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrememisaac/personal-finance-tracker-sub001/internal/models"
)

func reportTx(txType models.TransactionType, category, amount string, date time.Time) models.Transaction {
	return models.Transaction{
		ID: category + amount, Date: date, Amount: dec(amount),
		Category: category, AccountID: "acc-1", Type: txType,
	}
}

func TestSummarize(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
	jan := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC)

	txs := []models.Transaction{
		reportTx(models.TransactionIncome, "salary", "3000", jan),
		reportTx(models.TransactionIncome, "salary", "3000", feb),
		reportTx(models.TransactionExpense, "rent", "1200", jan),
		reportTx(models.TransactionExpense, "groceries", "400", jan),
		reportTx(models.TransactionExpense, "rent", "1200", feb),
		// Outside the range, must be ignored.
		reportTx(models.TransactionExpense, "rent", "9999", end.AddDate(0, 1, 0)),
	}

	s := Summarize(start, end, txs)

	t.Run("totals", func(t *testing.T) {
		assert.True(t, s.TotalIncome.Equal(dec("6000")), "income %s", s.TotalIncome)
		assert.True(t, s.TotalExpenses.Equal(dec("2800")), "expenses %s", s.TotalExpenses)
		assert.True(t, s.NetBalance.Equal(dec("3200")), "net %s", s.NetBalance)
	})

	t.Run("category breakdown sorted descending", func(t *testing.T) {
		require.Len(t, s.Categories, 2)
		assert.Equal(t, "rent", s.Categories[0].Category)
		assert.True(t, s.Categories[0].Amount.Equal(dec("2400")))
		assert.Equal(t, "groceries", s.Categories[1].Category)
		assert.InDelta(t, 2400.0/2800.0*100, s.Categories[0].Percentage, 0.001)
	})

	t.Run("monthly trends chronological", func(t *testing.T) {
		require.Len(t, s.Trends, 2)
		assert.Equal(t, "2026-01", s.Trends[0].Month)
		assert.Equal(t, "2026-02", s.Trends[1].Month)
		assert.True(t, s.Trends[0].Net.Equal(dec("1400")))
		assert.True(t, s.Trends[1].Net.Equal(dec("1800")))
	})

	t.Run("empty range", func(t *testing.T) {
		empty := Summarize(start, end, nil)
		assert.True(t, empty.TotalIncome.IsZero())
		assert.Empty(t, empty.Categories)
		assert.Empty(t, empty.Trends)
	})
}

func TestComputeHealthScore(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)
	mid := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	t.Run("balanced dataset lands in range", func(t *testing.T) {
		txs := []models.Transaction{
			reportTx(models.TransactionIncome, "salary", "4000", mid),
			reportTx(models.TransactionExpense, "rent", "2000", mid),
		}
		accounts := []models.Account{
			{ID: "a1", Type: models.AccountChecking},
			{ID: "a2", Type: models.AccountSavings},
		}
		budgets := []models.Budget{{
			ID: "b1", Category: "rent", Limit: dec("2500"), Period: models.BudgetMonthly,
			StartDate: start, EndDate: end, IsActive: true,
		}}

		summary := Summarize(start, end, txs)
		h := ComputeHealthScore(summary, accounts, budgets, txs, []GoalProgress{{Progress: 60}})

		assert.GreaterOrEqual(t, h.Score, 0.0)
		assert.LessOrEqual(t, h.Score, 100.0)
		// Spending half of income maxes out the first sub-score.
		assert.Equal(t, 100.0, h.IncomeExpense)
		assert.InDelta(t, 20.0, h.BudgetAdherence, 0.001) // 80% spent leaves 20 headroom
		assert.Equal(t, 60.0, h.GoalProgress)
		assert.Equal(t, 50.0, h.Diversity)
	})

	t.Run("sub-scores clamp before weighting", func(t *testing.T) {
		txs := []models.Transaction{
			reportTx(models.TransactionIncome, "salary", "100", mid),
			reportTx(models.TransactionExpense, "rent", "1000", mid),
		}
		summary := Summarize(start, end, txs)
		h := ComputeHealthScore(summary, nil, nil, txs, nil)

		assert.Equal(t, 0.0, h.IncomeExpense)
		assert.GreaterOrEqual(t, h.Score, 0.0)
	})

	t.Run("no budgets and no goals read neutral", func(t *testing.T) {
		summary := Summarize(start, end, nil)
		h := ComputeHealthScore(summary, nil, nil, nil, nil)

		assert.Equal(t, 50.0, h.BudgetAdherence)
		assert.Equal(t, 50.0, h.GoalProgress)
	})

	t.Run("inactive budgets are ignored", func(t *testing.T) {
		txs := []models.Transaction{reportTx(models.TransactionExpense, "rent", "5000", mid)}
		budgets := []models.Budget{{
			ID: "b1", Category: "rent", Limit: dec("100"), Period: models.BudgetMonthly,
			StartDate: start, EndDate: end, IsActive: false,
		}}

		summary := Summarize(start, end, txs)
		h := ComputeHealthScore(summary, nil, budgets, txs, nil)
		assert.Equal(t, 50.0, h.BudgetAdherence)
	})
}
