package database_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/valeriaulyamaeva/wisely-backend/internal/database"
	"github.com/valeriaulyamaeva/wisely-backend/models"
)

func importTestTransaction(t *testing.T, pool *pgxpool.Pool, userID int, amount float64, category string, date time.Time) *models.Transaction {
	t.Helper()
	txn := &models.Transaction{
		UserID:             userID,
		Amount:             decimal.NewFromFloat(amount),
		Type:               models.TransactionDebit,
		Date:               date,
		Description:        "Test purchase",
		MerchantName:       "Test Merchant",
		Category:           category,
		PlaidTransactionID: fmt.Sprintf("test-%d-%d", userID, time.Now().UnixNano()),
	}
	inserted, err := database.InsertImportedTransaction(pool, txn)
	if err != nil {
		t.Fatalf("ошибка вставки транзакции: %v", err)
	}
	if !inserted {
		t.Fatal("новая транзакция должна вставляться")
	}
	return txn
}

func TestImportedTransactionDedup(t *testing.T) {
	pool := testPool(t)
	user := createTestUser(t, pool)

	txn := importTestTransaction(t, pool, user.ID, 12.50, "Coffee", time.Now())

	duplicate := *txn
	duplicate.ID = 0
	inserted, err := database.InsertImportedTransaction(pool, &duplicate)
	if err != nil {
		t.Fatalf("повторная вставка не должна падать: %v", err)
	}
	if inserted {
		t.Error("транзакция с тем же plaid_transaction_id не должна вставляться")
	}
}

func TestListTransactionsCursor(t *testing.T) {
	pool := testPool(t)
	user := createTestUser(t, pool)

	date := time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		importTestTransaction(t, pool, user.ID, float64(10+i), "Coffee", date)
	}

	first, err := database.ListTransactions(pool, user.ID, database.TransactionFilter{Limit: 3})
	if err != nil {
		t.Fatalf("ошибка листинга: %v", err)
	}
	if len(first) != 3 {
		t.Fatalf("первая страница: получили %d, хотели 3", len(first))
	}

	cursor := first[len(first)-1].ID
	second, err := database.ListTransactions(pool, user.ID, database.TransactionFilter{Limit: 3, Cursor: cursor})
	if err != nil {
		t.Fatalf("ошибка листинга с курсором: %v", err)
	}
	if len(second) != 2 {
		t.Fatalf("вторая страница: получили %d, хотели 2", len(second))
	}

	// Страницы не пересекаются
	seen := map[int]bool{}
	for _, txn := range first {
		seen[txn.ID] = true
	}
	for _, txn := range second {
		if seen[txn.ID] {
			t.Errorf("транзакция %d попала на обе страницы", txn.ID)
		}
		if txn.ID >= cursor {
			t.Errorf("курсорная выборка строгая: id %d >= cursor %d", txn.ID, cursor)
		}
	}
}

func TestListTransactionsCategoryFilter(t *testing.T) {
	pool := testPool(t)
	user := createTestUser(t, pool)

	date := time.Now()
	importTestTransaction(t, pool, user.ID, 10, "Coffee", date)
	importTestTransaction(t, pool, user.ID, 20, "Groceries", date)

	list, err := database.ListTransactions(pool, user.ID, database.TransactionFilter{Category: "Coffee", Limit: 50})
	if err != nil {
		t.Fatalf("ошибка листинга: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("фильтр по категории: получили %d транзакций, хотели 1", len(list))
	}
	if list[0].Category != "Coffee" {
		t.Errorf("категория: получили %q", list[0].Category)
	}
}

func TestSumCategoryDebitsSince(t *testing.T) {
	pool := testPool(t)
	user := createTestUser(t, pool)

	now := time.Now()
	importTestTransaction(t, pool, user.ID, 15.25, "Coffee", now)
	importTestTransaction(t, pool, user.ID, 4.75, "Coffee", now.AddDate(0, 0, -2))
	importTestTransaction(t, pool, user.ID, 100, "Coffee", now.AddDate(0, 0, -30))
	importTestTransaction(t, pool, user.ID, 50, "Groceries", now)

	total, err := database.SumCategoryDebitsSince(pool, user.ID, "Coffee", now.AddDate(0, 0, -7))
	if err != nil {
		t.Fatalf("ошибка подсчёта: %v", err)
	}
	if total.StringFixed(2) != "20.00" {
		t.Errorf("сумма трат: получили %s, хотели 20.00", total)
	}
}

func TestGoalTransactionsAssociation(t *testing.T) {
	pool := testPool(t)
	user := createTestUser(t, pool)

	importTestTransaction(t, pool, user.ID, 10, "Coffee", time.Now())
	importTestTransaction(t, pool, user.ID, 20, "Groceries", time.Now())

	goal := &models.Goal{
		UserID: user.ID,
		Title:  "Coffee budget",
		Type:   models.GoalTypeLimit,
		Limit: &models.LimitGoal{
			Category: "Coffee",
			Period:   models.PeriodWeek,
			MaxSpend: decimal.NewFromInt(50),
		},
	}
	if err := database.CreateGoal(pool, goal); err != nil {
		t.Fatalf("ошибка создания цели: %v", err)
	}

	list, err := database.GetGoalTransactions(pool, goal)
	if err != nil {
		t.Fatalf("ошибка получения транзакций цели: %v", err)
	}
	for _, txn := range list {
		if txn.Category != "Coffee" {
			t.Errorf("в выборку лимита попала чужая категория %q", txn.Category)
		}
	}
	if len(list) != 1 {
		t.Errorf("транзакций лимита: получили %d, хотели 1", len(list))
	}
}
