package evaluation

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/valeriaulyamaeva/wisely-backend/internal/database"
	"github.com/valeriaulyamaeva/wisely-backend/models"
)

var milestones = []float64{0.25, 0.5, 0.75, 1.0}

// EvaluateUserGoals прогоняет оценку по всем целям пользователя и собирает
// созданные уведомления. Первая же ошибка обрывает обход: без ретраев и без
// частичного продолжения.
func EvaluateUserGoals(pool *pgxpool.Pool, userID int) ([]models.Notification, error) {
	goals, err := database.GetAllGoals(pool, userID)
	if err != nil {
		return nil, err
	}

	var notifications []models.Notification
	for i := range goals {
		goal := &goals[i]

		var notification *models.Notification
		switch goal.Type {
		case models.GoalTypeLimit:
			notification, err = EvaluateLimitGoal(pool, goal)
		case models.GoalTypeSavings:
			notification, err = EvaluateSavingsGoal(pool, goal)
		}
		if err != nil {
			return nil, err
		}
		if notification != nil {
			notifications = append(notifications, *notification)
		}
	}

	return notifications, nil
}

// EvaluateLimitGoal проверяет, выбран ли лимит за текущий период, и создаёт
// LIMIT_HIT не чаще раза на цель и период.
func EvaluateLimitGoal(pool *pgxpool.Pool, goal *models.Goal) (*models.Notification, error) {
	if goal.Limit == nil || goal.Limit.Category == "" || !goal.Limit.MaxSpend.IsPositive() {
		return nil, nil
	}

	start, end, ok := PeriodWindow(time.Now(), goal.Limit.Period)
	if !ok {
		return nil, nil
	}

	transactions, err := database.GetGoalTransactions(pool, goal)
	if err != nil {
		return nil, err
	}

	spend := periodSpend(goal, transactions, start, end)
	if spend.LessThan(goal.Limit.MaxSpend) {
		return nil, nil
	}

	exists, err := database.HasLimitHitNotification(pool, goal.ID, start)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, nil
	}

	notification := &models.Notification{
		UserID: goal.UserID,
		Type:   models.NotificationLimitHit,
		Message: fmt.Sprintf("%s exceeded: $%s spent this %s.",
			goal.Title, spend.StringFixed(2), strings.ToLower(goal.Limit.Period)),
		Meta: map[string]interface{}{
			"goalId":      goal.ID,
			"periodSpend": spend.InexactFloat64(),
			"maxSpend":    goal.Limit.MaxSpend.InexactFloat64(),
			"periodStart": start.Format(time.RFC3339),
			"periodEnd":   end.Format(time.RFC3339),
		},
		GoalID:      goal.ID,
		PeriodStart: &start,
	}

	created, err := database.CreateNotification(pool, notification)
	if err != nil {
		return nil, err
	}
	if !created {
		// Конкурирующая оценка успела первой, индекс поглотил дубль
		return nil, nil
	}
	return notification, nil
}

// EvaluateSavingsGoal пересчитывает и сохраняет накопленный прогресс на каждом
// вызове, затем ищет первое точное пересечение рубежа.
func EvaluateSavingsGoal(pool *pgxpool.Pool, goal *models.Goal) (*models.Notification, error) {
	if goal.Savings == nil || !goal.Savings.TargetAmount.IsPositive() {
		return nil, nil
	}

	transactions, err := database.GetGoalTransactions(pool, goal)
	if err != nil {
		return nil, err
	}

	current := sumCredits(transactions)
	if err := database.UpdateGoalProgress(pool, goal.ID, current); err != nil {
		return nil, err
	}
	goal.CurrentProgress = current

	milestone, ok := MilestoneHit(current, goal.Savings.TargetAmount)
	if !ok {
		return nil, nil
	}

	exists, err := database.HasMilestoneNotification(pool, goal.ID, milestone)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, nil
	}

	notification := &models.Notification{
		UserID: goal.UserID,
		Type:   models.NotificationSavingsMilestone,
		Message: fmt.Sprintf("%s: %d%% complete! $%s of $%s saved.",
			goal.Title, int(math.Round(milestone*100)),
			current.StringFixed(2), goal.Savings.TargetAmount.StringFixed(2)),
		Meta: map[string]interface{}{
			"goalId":          goal.ID,
			"milestone":       milestone,
			"currentProgress": current.InexactFloat64(),
			"targetAmount":    goal.Savings.TargetAmount.InexactFloat64(),
		},
		GoalID:    goal.ID,
		Milestone: &milestone,
	}

	created, err := database.CreateNotification(pool, notification)
	if err != nil {
		return nil, err
	}
	if !created {
		return nil, nil
	}
	return notification, nil
}

// MilestoneHit находит рубеж, в узкое окно которого попала доля current/target:
// доля ∈ [m, m+0.01). Скачок баланса сразу за окно рубеж пропускает.
func MilestoneHit(current, target decimal.Decimal) (float64, bool) {
	if !target.IsPositive() {
		return 0, false
	}
	fraction, _ := current.Div(target).Float64()
	for _, m := range milestones {
		if fraction >= m && fraction < m+0.01 {
			return m, true
		}
	}
	return 0, false
}
