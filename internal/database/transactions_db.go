package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/valeriaulyamaeva/wisely-backend/models"
)

var ErrTransactionNotFound = errors.New("транзакция не найдена")

const transactionColumns = `id, user_id, amount, type, transaction_date, description, merchant_name, category, COALESCE(plaid_transaction_id, ''), created_at`

func scanTransactions(rows pgx.Rows) ([]models.Transaction, error) {
	var transactions []models.Transaction
	for rows.Next() {
		var t models.Transaction
		err := rows.Scan(
			&t.ID,
			&t.UserID,
			&t.Amount,
			&t.Type,
			&t.Date,
			&t.Description,
			&t.MerchantName,
			&t.Category,
			&t.PlaidTransactionID,
			&t.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}
	return transactions, rows.Err()
}

// TransactionFilter — параметры листинга. Cursor — это id последней отданной
// строки, следующая страница отбирается строгим id < cursor.
type TransactionFilter struct {
	From     *time.Time
	To       *time.Time
	Category string
	Limit    int
	Cursor   int
}

func ListTransactions(pool *pgxpool.Pool, userID int, filter TransactionFilter) ([]models.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE user_id = $1`
	args := []interface{}{userID}

	if filter.From != nil {
		args = append(args, *filter.From)
		query += fmt.Sprintf(" AND transaction_date >= $%d", len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		query += fmt.Sprintf(" AND transaction_date <= $%d", len(args))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		query += fmt.Sprintf(" AND category = $%d", len(args))
	}
	if filter.Cursor > 0 {
		args = append(args, filter.Cursor)
		query += fmt.Sprintf(" AND id < $%d", len(args))
	}

	args = append(args, filter.Limit)
	query += fmt.Sprintf(" ORDER BY transaction_date DESC, id DESC LIMIT $%d", len(args))

	rows, err := pool.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения транзакций: %v", err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}

func GetTransactionByID(pool *pgxpool.Pool, transactionID, userID int) (*models.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1 AND user_id = $2`

	var t models.Transaction
	err := pool.QueryRow(context.Background(), query, transactionID, userID).Scan(
		&t.ID,
		&t.UserID,
		&t.Amount,
		&t.Type,
		&t.Date,
		&t.Description,
		&t.MerchantName,
		&t.Category,
		&t.PlaidTransactionID,
		&t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("ошибка при получении транзакции: %v", err)
	}

	return &t, nil
}

func GetRecentTransactions(pool *pgxpool.Pool, userID, limit int) ([]models.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions
		WHERE user_id = $1 ORDER BY transaction_date DESC, id DESC LIMIT $2`
	rows, err := pool.Query(context.Background(), query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения последних транзакций: %v", err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}

func GetAllTransactionsByUser(pool *pgxpool.Pool, userID int) ([]models.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions
		WHERE user_id = $1 ORDER BY transaction_date DESC`
	rows, err := pool.Query(context.Background(), query, userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения транзакций: %v", err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// GetGoalTransactions отдаёт транзакции, относящиеся к цели. Связь вычисляемая:
// у лимита — транзакции его категории, у накопления — все поступления.
func GetGoalTransactions(pool *pgxpool.Pool, goal *models.Goal) ([]models.Transaction, error) {
	var (
		query string
		args  []interface{}
	)

	switch {
	case goal.IsLimit():
		query = `SELECT ` + transactionColumns + ` FROM transactions
			WHERE user_id = $1 AND category = $2 ORDER BY transaction_date DESC`
		args = []interface{}{goal.UserID, goal.Limit.Category}
	case goal.IsSavings():
		query = `SELECT ` + transactionColumns + ` FROM transactions
			WHERE user_id = $1 AND type = 'CREDIT' ORDER BY transaction_date DESC`
		args = []interface{}{goal.UserID}
	default:
		return nil, nil
	}

	rows, err := pool.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения транзакций цели: %v", err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// InsertImportedTransaction вставляет импортированную транзакцию, пропуская
// уже известные plaid_transaction_id. Возвращает false, если запись была.
func InsertImportedTransaction(pool *pgxpool.Pool, t *models.Transaction) (bool, error) {
	query := `
		INSERT INTO transactions (user_id, amount, type, transaction_date, description, merchant_name, category, plaid_transaction_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (plaid_transaction_id) DO NOTHING
		RETURNING id, created_at`
	err := pool.QueryRow(context.Background(), query,
		t.UserID,
		t.Amount,
		t.Type,
		t.Date,
		t.Description,
		t.MerchantName,
		t.Category,
		t.PlaidTransactionID).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("ошибка при добавлении транзакции: %v", err)
	}
	return true, nil
}

// SumCategoryDebitsSince считает траты по категории начиная с даты.
func SumCategoryDebitsSince(pool *pgxpool.Pool, userID int, category string, since time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE user_id = $1 AND category = $2 AND type = 'DEBIT' AND transaction_date >= $3`
	err := pool.QueryRow(context.Background(), query, userID, category, since).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("ошибка подсчёта трат по категории: %v", err)
	}
	return total, nil
}
