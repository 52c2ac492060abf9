package models

// NotificationType classifies an advisory message emitted by the goal
// scanner.
type NotificationType string

const (
	NotificationCompletion NotificationType = "completion"
	NotificationMilestone  NotificationType = "milestone"
	NotificationOverdue    NotificationType = "overdue"
	NotificationBehind     NotificationType = "behind-schedule"
)

// Severity drives presentation styling only. No control flow may branch
// on it.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityDanger  Severity = "danger"
)

// Notification is one advisory message about a goal.
type Notification struct {
	GoalID   string           `json:"goalId"`
	Name     string           `json:"name"`
	Type     NotificationType `json:"type"`
	Message  string           `json:"message"`
	Severity Severity         `json:"severity"`
}
