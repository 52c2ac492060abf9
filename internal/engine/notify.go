package engine

import (
	"fmt"
	"time"

	"github.com/mrememisaac/personal-finance-tracker-sub001/internal/models"
)

// GoalCompleter flips a goal's stored completion flag. The scanner
// couples detection with the flag flip so the UI refresh stays simple.
type GoalCompleter interface {
	MarkGoalCompleted(id string)
}

// behindWindowDays is how close to the deadline a behind-trajectory
// goal starts getting flagged.
const behindWindowDays = 30

// ScanGoals inspects every goal's derived progress and emits advisory
// notifications. progress must be the view computed for the same goal
// slice (index-aligned).
//
// Milestone notifications have no persisted acknowledgment: the highest
// achieved checkpoint below 100% is re-announced on every scan until
// the next one is crossed.
func ScanGoals(goals []models.Goal, progress []GoalProgress, completer GoalCompleter, now time.Time) []models.Notification {
	var out []models.Notification

	for i, g := range goals {
		p := progress[i]

		// Derived amount reached the target but the stored flag has not
		// caught up yet.
		if !g.IsCompleted && p.CurrentAmount.GreaterThanOrEqual(g.TargetAmount) && g.TargetAmount.IsPositive() {
			if completer != nil {
				completer.MarkGoalCompleted(g.ID)
			}
			out = append(out, models.Notification{
				GoalID:   g.ID,
				Name:     g.Name,
				Type:     models.NotificationCompletion,
				Message:  fmt.Sprintf("Congratulations! You reached your goal %q.", g.Name),
				Severity: models.SeveritySuccess,
			})
			continue
		}

		if g.IsCompleted {
			continue
		}

		if pct, ok := highestMilestone(p); ok {
			out = append(out, models.Notification{
				GoalID:   g.ID,
				Name:     g.Name,
				Type:     models.NotificationMilestone,
				Message:  fmt.Sprintf("You passed %d%% of your goal %q.", pct, g.Name),
				Severity: models.SeverityInfo,
			})
		}

		switch {
		case p.Status == GoalOverdue:
			out = append(out, models.Notification{
				GoalID:   g.ID,
				Name:     g.Name,
				Type:     models.NotificationOverdue,
				Message:  fmt.Sprintf("Goal %q is past its target date.", g.Name),
				Severity: models.SeverityDanger,
			})
		case p.Status == GoalBehind && p.DaysRemaining <= behindWindowDays:
			out = append(out, models.Notification{
				GoalID:   g.ID,
				Name:     g.Name,
				Type:     models.NotificationBehind,
				Message:  fmt.Sprintf("Goal %q is behind schedule with %d days remaining.", g.Name, p.DaysRemaining),
				Severity: models.SeverityWarning,
			})
		}
	}

	return out
}

// highestMilestone returns the highest achieved checkpoint strictly
// below 100%.
func highestMilestone(p GoalProgress) (int, bool) {
	best := 0
	for _, m := range p.Milestones {
		if m.Percent < 100 && m.Achieved && m.Percent > best {
			best = m.Percent
		}
	}
	return best, best > 0
}
