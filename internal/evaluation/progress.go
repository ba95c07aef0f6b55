package evaluation

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/valeriaulyamaeva/wisely-backend/models"
)

var hundred = decimal.NewFromInt(100)

// LimitProgress — прогресс лимита трат за текущий период.
type LimitProgress struct {
	PeriodStart string          `json:"periodStart"`
	PeriodEnd   string          `json:"periodEnd"`
	Spend       decimal.Decimal `json:"spend"`
	Remaining   decimal.Decimal `json:"remaining"`
	Percent     decimal.Decimal `json:"percent"`
}

// SavingsProgress — прогресс накопительной цели за всё время.
type SavingsProgress struct {
	Current decimal.Decimal `json:"current"`
	Target  decimal.Decimal `json:"target"`
	Percent decimal.Decimal `json:"percent"`
}

// CalculateProgress считает прогресс цели по набору транзакций. nil означает
// «прогресс невычислим» (нет полей варианта или неизвестный период), это не ошибка.
func CalculateProgress(goal *models.Goal, transactions []models.Transaction) interface{} {
	return CalculateProgressAt(goal, transactions, time.Now())
}

// CalculateProgressAt — то же с явным "сейчас".
func CalculateProgressAt(goal *models.Goal, transactions []models.Transaction, now time.Time) interface{} {
	switch goal.Type {
	case models.GoalTypeLimit:
		if p := limitProgressAt(goal, transactions, now); p != nil {
			return p
		}
	case models.GoalTypeSavings:
		if p := savingsProgress(goal, transactions); p != nil {
			return p
		}
	}
	return nil
}

func limitProgressAt(goal *models.Goal, transactions []models.Transaction, now time.Time) *LimitProgress {
	if goal.Limit == nil || goal.Limit.Category == "" || !goal.Limit.MaxSpend.IsPositive() {
		return nil
	}

	start, end, ok := PeriodWindow(now, goal.Limit.Period)
	if !ok {
		return nil
	}

	spend := periodSpend(goal, transactions, start, end)
	remaining := goal.Limit.MaxSpend.Sub(spend)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}
	percent := spend.Div(goal.Limit.MaxSpend).Mul(hundred)
	if percent.GreaterThan(hundred) {
		percent = hundred
	}

	return &LimitProgress{
		PeriodStart: start.Format("2006-01-02"),
		PeriodEnd:   end.Format("2006-01-02"),
		Spend:       spend.Round(2),
		Remaining:   remaining.Round(2),
		Percent:     percent.Round(1),
	}
}

func savingsProgress(goal *models.Goal, transactions []models.Transaction) *SavingsProgress {
	if goal.Savings == nil || !goal.Savings.TargetAmount.IsPositive() {
		return nil
	}

	current := sumCredits(transactions)
	percent := current.Div(goal.Savings.TargetAmount).Mul(hundred)
	if percent.GreaterThan(hundred) {
		percent = hundred
	}

	return &SavingsProgress{
		Current: current.Round(2),
		Target:  goal.Savings.TargetAmount.Round(2),
		Percent: percent.Round(1),
	}
}

// periodSpend суммирует списания категории цели внутри окна, границы включительно.
func periodSpend(goal *models.Goal, transactions []models.Transaction, start, end time.Time) decimal.Decimal {
	spend := decimal.Zero
	for _, t := range transactions {
		if t.Type != models.TransactionDebit || t.Category != goal.Limit.Category {
			continue
		}
		if inWindow(t.Date, start, end) {
			spend = spend.Add(t.Amount)
		}
	}
	return spend
}

func sumCredits(transactions []models.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, t := range transactions {
		if t.Type == models.TransactionCredit {
			total = total.Add(t.Amount)
		}
	}
	return total
}
