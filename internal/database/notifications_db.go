package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valeriaulyamaeva/wisely-backend/models"
)

var ErrNotificationNotFound = errors.New("уведомление не найдено")

// CreateNotification вставляет уведомление. Частичные уникальные индексы
// поглощают повторную вставку за тот же период или рубеж: тогда возвращается
// false и гонка «проверили — вставили» никого не дублирует.
func CreateNotification(pool *pgxpool.Pool, notification *models.Notification) (bool, error) {
	query := `
		INSERT INTO notifications (user_id, type, message, status, meta, goal_id, period_start, milestone)
		VALUES ($1, $2, $3, 'UNREAD', $4, $5, $6, $7)
		ON CONFLICT DO NOTHING
		RETURNING id, created_at`
	err := pool.QueryRow(context.Background(), query,
		notification.UserID,
		notification.Type,
		notification.Message,
		notification.Meta,
		notification.GoalID,
		notification.PeriodStart,
		notification.Milestone).Scan(&notification.ID, &notification.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("ошибка при добавлении уведомления: %v", err)
	}
	notification.Status = models.NotificationUnread
	return true, nil
}

// GetNotificationsByUserID извлекает все уведомления пользователя, новые первыми.
func GetNotificationsByUserID(pool *pgxpool.Pool, userID int) ([]models.Notification, error) {
	query := `
		SELECT id, user_id, type, message, status, meta, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC`
	rows, err := pool.Query(context.Background(), query, userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения уведомлений: %v", err)
	}
	defer rows.Close()

	var notifications []models.Notification
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Type, &n.Message, &n.Status, &n.Meta, &n.CreatedAt); err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}

	return notifications, rows.Err()
}

func MarkNotificationAsRead(pool *pgxpool.Pool, notificationID, userID int) error {
	query := `UPDATE notifications SET status = 'READ' WHERE id = $1 AND user_id = $2`
	result, err := pool.Exec(context.Background(), query, notificationID, userID)
	if err != nil {
		return fmt.Errorf("ошибка пометки уведомления как прочитанного: %v", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

func CountUnreadNotifications(pool *pgxpool.Pool, userID int) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND status = 'UNREAD'`
	err := pool.QueryRow(context.Background(), query, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("ошибка подсчёта непрочитанных уведомлений: %v", err)
	}
	return count, nil
}

// HasLimitHitNotification проверяет, было ли уже LIMIT_HIT по цели в текущем
// периоде (создано не раньше его начала).
func HasLimitHitNotification(pool *pgxpool.Pool, goalID int, periodStart time.Time) (bool, error) {
	var exists bool
	query := `
		SELECT EXISTS (
			SELECT 1 FROM notifications
			WHERE type = 'LIMIT_HIT' AND goal_id = $1 AND created_at >= $2
		)`
	err := pool.QueryRow(context.Background(), query, goalID, periodStart).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("ошибка проверки уведомления о лимите: %v", err)
	}
	return exists, nil
}

// HasMilestoneNotification проверяет, отмечался ли уже этот рубеж по цели.
func HasMilestoneNotification(pool *pgxpool.Pool, goalID int, milestone float64) (bool, error) {
	var exists bool
	query := `
		SELECT EXISTS (
			SELECT 1 FROM notifications
			WHERE type = 'SAVINGS_MILESTONE' AND goal_id = $1 AND milestone = $2
		)`
	err := pool.QueryRow(context.Background(), query, goalID, milestone).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("ошибка проверки уведомления о рубеже: %v", err)
	}
	return exists, nil
}
