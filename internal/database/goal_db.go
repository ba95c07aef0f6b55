package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/valeriaulyamaeva/wisely-backend/models"
)

var ErrGoalNotFound = errors.New("цель не найдена")

const goalColumns = `id, user_id, title, type, category, period, max_spend, target_amount, current_progress, start_date, created_at`

// scanGoal собирает размеченное объединение из плоских nullable-колонок.
func scanGoal(row pgx.Row) (*models.Goal, error) {
	var (
		goal         models.Goal
		category     *string
		period       *string
		maxSpend     decimal.NullDecimal
		targetAmount decimal.NullDecimal
	)

	err := row.Scan(
		&goal.ID,
		&goal.UserID,
		&goal.Title,
		&goal.Type,
		&category,
		&period,
		&maxSpend,
		&targetAmount,
		&goal.CurrentProgress,
		&goal.StartDate,
		&goal.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	switch goal.Type {
	case models.GoalTypeLimit:
		if category != nil && period != nil && maxSpend.Valid {
			goal.Limit = &models.LimitGoal{
				Category: *category,
				Period:   *period,
				MaxSpend: maxSpend.Decimal,
			}
		}
	case models.GoalTypeSavings:
		if targetAmount.Valid {
			goal.Savings = &models.SavingsGoal{TargetAmount: targetAmount.Decimal}
		}
	}

	return &goal, nil
}

// CreateGoal добавляет новую цель. Поля чужого варианта пишутся как NULL.
func CreateGoal(pool *pgxpool.Pool, goal *models.Goal) error {
	var (
		category     *string
		period       *string
		maxSpend     *decimal.Decimal
		targetAmount *decimal.Decimal
	)
	if goal.Limit != nil {
		category = &goal.Limit.Category
		period = &goal.Limit.Period
		maxSpend = &goal.Limit.MaxSpend
	}
	if goal.Savings != nil {
		targetAmount = &goal.Savings.TargetAmount
	}

	query := `
		INSERT INTO goals (user_id, title, type, category, period, max_spend, target_amount, current_progress)
		VALUES ($1, $2, $3, $4, $5, $6, $7, 0)
		RETURNING id, current_progress, start_date, created_at`
	err := pool.QueryRow(context.Background(), query,
		goal.UserID,
		goal.Title,
		goal.Type,
		category,
		period,
		maxSpend,
		targetAmount).Scan(&goal.ID, &goal.CurrentProgress, &goal.StartDate, &goal.CreatedAt)
	if err != nil {
		return fmt.Errorf("ошибка при добавлении цели: %v", err)
	}
	return nil
}

// GetGoalByID извлекает цель пользователя. Чужая цель неотличима от отсутствующей.
func GetGoalByID(pool *pgxpool.Pool, goalID, userID int) (*models.Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM goals WHERE id = $1 AND user_id = $2`

	goal, err := scanGoal(pool.QueryRow(context.Background(), query, goalID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrGoalNotFound
		}
		return nil, fmt.Errorf("ошибка при получении цели: %v", err)
	}
	return goal, nil
}

// GetAllGoals извлекает все цели пользователя, новые первыми.
func GetAllGoals(pool *pgxpool.Pool, userID int) ([]models.Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM goals WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := pool.Query(context.Background(), query, userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении целей: %v", err)
	}
	defer rows.Close()

	var goals []models.Goal
	for rows.Next() {
		goal, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, *goal)
	}

	return goals, rows.Err()
}

// GoalUpdate — частичное обновление: nil-поля остаются нетронутыми.
type GoalUpdate struct {
	Title        *string
	Category     *string
	Period       *string
	MaxSpend     *decimal.Decimal
	TargetAmount *decimal.Decimal
}

func UpdateGoal(pool *pgxpool.Pool, goalID, userID int, update GoalUpdate) error {
	query := `
		UPDATE goals
		SET title = COALESCE($1, title),
		    category = COALESCE($2, category),
		    period = COALESCE($3, period),
		    max_spend = COALESCE($4, max_spend),
		    target_amount = COALESCE($5, target_amount)
		WHERE id = $6 AND user_id = $7`
	result, err := pool.Exec(context.Background(), query,
		update.Title,
		update.Category,
		update.Period,
		update.MaxSpend,
		update.TargetAmount,
		goalID,
		userID)
	if err != nil {
		return fmt.Errorf("ошибка обновления цели: %v", err)
	}
	if result.RowsAffected() == 0 {
		return ErrGoalNotFound
	}
	return nil
}

// UpdateGoalMaxSpend меняет лимит цели, используется чат-ассистентом.
func UpdateGoalMaxSpend(pool *pgxpool.Pool, goalID, userID int, maxSpend decimal.Decimal) error {
	query := `UPDATE goals SET max_spend = $1 WHERE id = $2 AND user_id = $3 AND type = 'LIMIT'`
	result, err := pool.Exec(context.Background(), query, maxSpend, goalID, userID)
	if err != nil {
		return fmt.Errorf("ошибка обновления лимита цели: %v", err)
	}
	if result.RowsAffected() == 0 {
		return ErrGoalNotFound
	}
	return nil
}

// UpdateGoalProgress перезаписывает накопленный прогресс накопительной цели.
func UpdateGoalProgress(pool *pgxpool.Pool, goalID int, progress decimal.Decimal) error {
	query := `UPDATE goals SET current_progress = $1 WHERE id = $2`
	_, err := pool.Exec(context.Background(), query, progress, goalID)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении прогресса: %v", err)
	}
	return nil
}

func DeleteGoal(pool *pgxpool.Pool, goalID, userID int) error {
	query := `DELETE FROM goals WHERE id = $1 AND user_id = $2`
	result, err := pool.Exec(context.Background(), query, goalID, userID)
	if err != nil {
		return fmt.Errorf("ошибка удаления цели: %v", err)
	}
	if result.RowsAffected() == 0 {
		return ErrGoalNotFound
	}
	return nil
}

func CountGoals(pool *pgxpool.Pool, userID int) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM goals WHERE user_id = $1`
	err := pool.QueryRow(context.Background(), query, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("ошибка подсчёта целей: %v", err)
	}
	return count, nil
}
