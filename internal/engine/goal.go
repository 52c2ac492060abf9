package engine

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mrememisaac/personal-finance-tracker-sub001/internal/models"
)

// GoalStatus classifies a goal's trajectory.
type GoalStatus string

const (
	GoalCompleted GoalStatus = "completed"
	GoalOverdue   GoalStatus = "overdue"
	GoalOnTrack   GoalStatus = "on-track"
	GoalBehind    GoalStatus = "behind"
)

// maxProjectionDays caps the completion forecast at a century out.
const maxProjectionDays = 36500

// Milestone is one fixed checkpoint of a goal.
type Milestone struct {
	Percent  int             `json:"percent"`
	Amount   decimal.Decimal `json:"amount"`
	Achieved bool            `json:"achieved"`
}

// GoalProgress is the derived view of one goal.
type GoalProgress struct {
	GoalID                    string          `json:"goalId"`
	Name                      string          `json:"name"`
	CurrentAmount             decimal.Decimal `json:"currentAmount"`
	TargetAmount              decimal.Decimal `json:"targetAmount"`
	Progress                  float64         `json:"progress"`
	RemainingAmount           decimal.Decimal `json:"remainingAmount"`
	IsCompleted               bool            `json:"isCompleted"`
	DaysRemaining             int             `json:"daysRemaining"`
	ProjectedCompletionDate   time.Time       `json:"projectedCompletionDate"`
	RequiredDailyContribution decimal.Decimal `json:"requiredDailyContribution"`
	Status                    GoalStatus      `json:"status"`
	Milestones                []Milestone     `json:"milestones"`
}

// DedicatedAmount derives how much of the linked account's effective
// balance counts toward the goal.
//
// Completed goals freeze their stored CurrentAmount. A single active
// goal on an account claims min(balance, target). When several active
// goals share the account the balance is split proportionally by
// target size, each share capped at its own target, so one balance is
// never double-counted and the split is order-independent. Note the
// flip side: changing a sibling's target can shrink this goal's
// derived amount with no transaction involved.
func DedicatedAmount(goal models.Goal, account *models.Account, siblings []models.Goal, transactions []models.Transaction) decimal.Decimal {
	if goal.IsCompleted || account == nil || goal.AccountID != account.ID {
		return goal.CurrentAmount
	}

	balance := ComputeBalance(*account, transactions)
	if balance.IsNegative() {
		balance = decimal.Zero
	}

	totalTargets := goal.TargetAmount
	for _, sib := range siblings {
		if sib.ID == goal.ID || sib.IsCompleted || sib.AccountID != account.ID {
			continue
		}
		totalTargets = totalTargets.Add(sib.TargetAmount)
	}

	if totalTargets.IsZero() {
		return decimal.Zero
	}

	share := balance.Mul(goal.TargetAmount).Div(totalTargets)
	return decimal.Min(share, goal.TargetAmount)
}

// ComputeGoalProgress derives the full progress view for one goal.
// account may be nil when the linked account is unavailable; the stored
// current amount is used as-is in that case. siblings is the full goal
// set used for proportional allocation (the goal itself may be
// included; it is handled either way).
func ComputeGoalProgress(goal models.Goal, account *models.Account, siblings []models.Goal, transactions []models.Transaction, now time.Time) GoalProgress {
	current := DedicatedAmount(goal, account, siblings, transactions)

	var progress float64
	if goal.TargetAmount.IsPositive() {
		progress, _ = current.Div(goal.TargetAmount).Mul(decimal.NewFromInt(100)).Float64()
		progress = math.Min(100, progress)
	}

	remaining := decimal.Max(decimal.Zero, goal.TargetAmount.Sub(current))
	daysRemaining := daysUntil(goal.TargetDate, now)

	// Forecast from the average pace since the goal was created. With
	// no measurable pace the deadline itself is the only answer.
	projected := goal.TargetDate
	daysSinceCreation := int(now.Sub(goal.CreatedAt).Hours() / 24)
	if daysSinceCreation < 1 {
		daysSinceCreation = 1
	}
	avgDaily := current.Div(decimal.NewFromInt(int64(daysSinceCreation)))
	if avgDaily.IsPositive() {
		daysToFinish, _ := remaining.Div(avgDaily).Float64()
		// A tiny pace against a large remainder can put the finish
		// date absurdly far out; cap the horizon so the date stays
		// representable.
		if daysToFinish > maxProjectionDays {
			daysToFinish = maxProjectionDays
		}
		projected = now.AddDate(0, 0, int(math.Ceil(daysToFinish)))
	}

	divisor := int64(daysRemaining)
	if divisor < 1 {
		divisor = 1
	}
	requiredDaily := remaining.Div(decimal.NewFromInt(divisor))

	status := classifyGoal(goal, daysRemaining, projected)

	milestones := make([]Milestone, 0, len(models.GoalMilestones))
	for _, pct := range models.GoalMilestones {
		amount := goal.MilestoneAmount(pct)
		milestones = append(milestones, Milestone{
			Percent:  pct,
			Amount:   amount,
			Achieved: current.GreaterThanOrEqual(amount),
		})
	}

	return GoalProgress{
		GoalID:                    goal.ID,
		Name:                      goal.Name,
		CurrentAmount:             current,
		TargetAmount:              goal.TargetAmount,
		Progress:                  progress,
		RemainingAmount:           remaining,
		IsCompleted:               goal.IsCompleted,
		DaysRemaining:             daysRemaining,
		ProjectedCompletionDate:   projected,
		RequiredDailyContribution: requiredDaily,
		Status:                    status,
		Milestones:                milestones,
	}
}

// classifyGoal applies the status precedence: completed, then overdue,
// then the projection comparison. A goal past its date must read
// overdue even when the projection would call it on-track.
func classifyGoal(goal models.Goal, daysRemaining int, projected time.Time) GoalStatus {
	switch {
	case goal.IsCompleted:
		return GoalCompleted
	case daysRemaining == 0:
		return GoalOverdue
	case !projected.After(goal.TargetDate):
		return GoalOnTrack
	default:
		return GoalBehind
	}
}

// daysUntil is the whole number of days from now to deadline, rounded
// up, floored at zero.
func daysUntil(deadline, now time.Time) int {
	if !deadline.After(now) {
		return 0
	}
	return int(math.Ceil(deadline.Sub(now).Hours() / 24))
}
