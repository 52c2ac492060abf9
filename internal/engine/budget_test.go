package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mrememisaac/personal-finance-tracker-sub001/internal/models"
)

func makeBudget(category, limit string) models.Budget {
	now := time.Now()
	return models.Budget{
		ID:        "budget-1",
		Category:  category,
		Limit:     dec(limit),
		Period:    models.BudgetMonthly,
		StartDate: now.AddDate(0, -1, 0),
		EndDate:   now.AddDate(0, 1, 0),
		IsActive:  true,
	}
}

func spendTx(category, amount string, date time.Time) models.Transaction {
	return models.Transaction{
		ID:        "tx-" + amount,
		Date:      date,
		Amount:    dec(amount),
		Category:  category,
		AccountID: "acc-1",
		Type:      models.TransactionExpense,
	}
}

func TestComputeBudgetProgress(t *testing.T) {
	budget := makeBudget("groceries", "100")
	inWindow := time.Now().AddDate(0, 0, -1)

	t.Run("sums matching expenses only", func(t *testing.T) {
		txs := []models.Transaction{
			spendTx("groceries", "30", inWindow),
			spendTx("groceries", "20", inWindow),
			spendTx("rent", "500", inWindow),
			{
				ID: "income", Date: inWindow, Amount: dec("1000"),
				Category: "groceries", AccountID: "acc-1", Type: models.TransactionIncome,
			},
		}

		p := ComputeBudgetProgress(budget, txs)
		assert.True(t, p.Spent.Equal(dec("50")), "got %s", p.Spent)
		assert.InDelta(t, 50.0, p.Percentage, 0.0001)
		assert.Equal(t, BudgetSafe, p.Status)
	})

	t.Run("category match is case-insensitive", func(t *testing.T) {
		p := ComputeBudgetProgress(budget, []models.Transaction{spendTx("Groceries", "10", inWindow)})
		assert.True(t, p.Spent.Equal(dec("10")))
	})

	t.Run("excludes transactions outside the window", func(t *testing.T) {
		txs := []models.Transaction{
			spendTx("groceries", "40", budget.StartDate.AddDate(0, 0, -1)),
			spendTx("groceries", "60", inWindow),
		}

		p := ComputeBudgetProgress(budget, txs)
		assert.True(t, p.Spent.Equal(dec("60")))
	})

	t.Run("window bounds are inclusive", func(t *testing.T) {
		txs := []models.Transaction{
			spendTx("groceries", "1", budget.StartDate),
			spendTx("groceries", "2", budget.EndDate),
		}

		p := ComputeBudgetProgress(budget, txs)
		assert.True(t, p.Spent.Equal(dec("3")))
	})

	t.Run("percentage is uncapped", func(t *testing.T) {
		p := ComputeBudgetProgress(budget, []models.Transaction{spendTx("groceries", "250", inWindow)})
		assert.InDelta(t, 250.0, p.Percentage, 0.0001)
	})
}

func TestBudgetStatusThresholds(t *testing.T) {
	budget := makeBudget("dining", "100")
	inWindow := time.Now().AddDate(0, 0, -1)

	cases := []struct {
		spent string
		want  BudgetStatus
	}{
		{"0", BudgetSafe},
		{"80", BudgetSafe},      // exactly 80% stays safe
		{"80.01", BudgetWarning},
		{"100", BudgetWarning},  // exactly 100% stays warning
		{"100.01", BudgetDanger},
	}

	for _, tc := range cases {
		t.Run("spent "+tc.spent, func(t *testing.T) {
			p := ComputeBudgetProgress(budget, []models.Transaction{spendTx("dining", tc.spent, inWindow)})
			assert.Equal(t, tc.want, p.Status)
		})
	}
}
