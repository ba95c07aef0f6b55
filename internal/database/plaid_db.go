package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valeriaulyamaeva/wisely-backend/models"
)

// CreatePlaidItem сохраняет привязку банка после обмена public_token.
func CreatePlaidItem(pool *pgxpool.Pool, item *models.PlaidItem) error {
	query := `
		INSERT INTO plaid_items (user_id, access_token, item_id, institution)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`
	err := pool.QueryRow(context.Background(), query,
		item.UserID,
		item.AccessToken,
		item.ItemID,
		item.Institution).Scan(&item.ID, &item.CreatedAt)
	if err != nil {
		return fmt.Errorf("ошибка при сохранении привязки банка: %v", err)
	}
	return nil
}

func GetPlaidItemsByUserID(pool *pgxpool.Pool, userID int) ([]models.PlaidItem, error) {
	query := `
		SELECT id, user_id, access_token, item_id, institution, created_at
		FROM plaid_items
		WHERE user_id = $1
		ORDER BY created_at`
	rows, err := pool.Query(context.Background(), query, userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения привязок банка: %v", err)
	}
	defer rows.Close()

	var items []models.PlaidItem
	for rows.Next() {
		var item models.PlaidItem
		if err := rows.Scan(&item.ID, &item.UserID, &item.AccessToken, &item.ItemID, &item.Institution, &item.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, rows.Err()
}
