package models

import "time"

const (
	NotificationLimitHit         = "LIMIT_HIT"
	NotificationSavingsMilestone = "SAVINGS_MILESTONE"

	NotificationUnread = "UNREAD"
	NotificationRead   = "READ"
)

// Notification создаётся только модулем оценки целей, никогда напрямую из HTTP.
// GoalID, PeriodStart и Milestone дублируют meta и существуют ради уникальных
// индексов, закрывающих гонку «проверили — вставили».
type Notification struct {
	ID        int                    `json:"id" db:"id"`
	UserID    int                    `json:"userId" db:"user_id"`
	Type      string                 `json:"type" db:"type"`
	Message   string                 `json:"message" db:"message"`
	Status    string                 `json:"status" db:"status"`
	Meta      map[string]interface{} `json:"meta" db:"meta"`
	GoalID    int                    `json:"-" db:"goal_id"`
	PeriodStart *time.Time           `json:"-" db:"period_start"`
	Milestone   *float64             `json:"-" db:"milestone"`
	CreatedAt time.Time              `json:"createdAt" db:"created_at"`
}
