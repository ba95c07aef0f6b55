package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	GoalTypeLimit   = "LIMIT"
	GoalTypeSavings = "SAVINGS"

	PeriodWeek  = "WEEK"
	PeriodMonth = "MONTH"
)

// LimitGoal — параметры лимита трат: категория, период и максимальная сумма.
type LimitGoal struct {
	Category string          `json:"category" db:"category"`
	Period   string          `json:"period" db:"period"`
	MaxSpend decimal.Decimal `json:"maxSpend" db:"max_spend"`
}

// SavingsGoal — параметры накопительной цели.
type SavingsGoal struct {
	TargetAmount decimal.Decimal `json:"targetAmount" db:"target_amount"`
}

// Goal хранит общие поля цели и ровно один из вариантов: Limit или Savings.
// В базе варианты лежат плоскими nullable-колонками, но в коде это всегда
// размеченное объединение.
type Goal struct {
	ID              int             `json:"id" db:"id"`
	UserID          int             `json:"userId" db:"user_id"`
	Title           string          `json:"title" db:"title"`
	Type            string          `json:"type" db:"type"`
	CurrentProgress decimal.Decimal `json:"currentProgress" db:"current_progress"`
	StartDate       time.Time       `json:"startDate" db:"start_date"`
	CreatedAt       time.Time       `json:"createdAt" db:"created_at"`

	Limit   *LimitGoal   `json:"-"`
	Savings *SavingsGoal `json:"-"`
}

func (g *Goal) IsLimit() bool {
	return g.Type == GoalTypeLimit && g.Limit != nil
}

func (g *Goal) IsSavings() bool {
	return g.Type == GoalTypeSavings && g.Savings != nil
}
