package database_test

import (
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/valeriaulyamaeva/wisely-backend/internal/database"
	"github.com/valeriaulyamaeva/wisely-backend/models"
)

// testPool поднимает пул для интеграционных тестов. Без .env и DATABASE_URL
// тесты пропускаются, а не падают.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	_ = godotenv.Load("../../.env")
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		t.Skip("DATABASE_URL не задан, пропускаем интеграционный тест")
	}
	pool, err := database.Connect(url)
	if err != nil {
		t.Fatalf("ошибка подключения к БД: %v", err)
	}
	if err := database.Migrate(pool); err != nil {
		t.Fatalf("ошибка миграции: %v", err)
	}
	t.Cleanup(pool.Close)
	return pool
}

func createTestUser(t *testing.T, pool *pgxpool.Pool) *models.User {
	t.Helper()
	user := &models.User{
		Email: fmt.Sprintf("test%d@example.com", time.Now().UnixNano()),
		Name:  "Test User",
	}
	if err := database.RegisterUser(pool, user, "password123"); err != nil {
		t.Fatalf("ошибка создания пользователя: %v", err)
	}
	return user
}

func TestCreateAndGetLimitGoal(t *testing.T) {
	pool := testPool(t)
	user := createTestUser(t, pool)

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
	t.Logf("ID цели после создания: %d", goal.ID)

	created, err := database.GetGoalByID(pool, goal.ID, user.ID)
	if err != nil {
		t.Fatalf("ошибка получения цели по ID: %v", err)
	}
	if !created.IsLimit() {
		t.Fatalf("цель LIMIT потеряла вариант: %+v", created)
	}
	if created.Limit.Category != "Coffee" || created.Limit.Period != models.PeriodWeek {
		t.Errorf("параметры лимита не совпадают: %+v", created.Limit)
	}
	if !created.Limit.MaxSpend.Equal(goal.Limit.MaxSpend) {
		t.Errorf("maxSpend: получили %s, хотели %s", created.Limit.MaxSpend, goal.Limit.MaxSpend)
	}
	if created.Savings != nil {
		t.Error("у цели LIMIT не должно быть варианта Savings")
	}
}

func TestGoalScopedToOwner(t *testing.T) {
	pool := testPool(t)
	owner := createTestUser(t, pool)
	stranger := createTestUser(t, pool)

	goal := &models.Goal{
		UserID:  owner.ID,
		Title:   "Vacation fund",
		Type:    models.GoalTypeSavings,
		Savings: &models.SavingsGoal{TargetAmount: decimal.NewFromInt(1000)},
	}
	if err := database.CreateGoal(pool, goal); err != nil {
		t.Fatalf("ошибка создания цели: %v", err)
	}

	if _, err := database.GetGoalByID(pool, goal.ID, stranger.ID); !errors.Is(err, database.ErrGoalNotFound) {
		t.Errorf("чужая цель должна выглядеть как отсутствующая, получили %v", err)
	}
}

func TestUpdateGoalMaxSpend(t *testing.T) {
	pool := testPool(t)
	user := createTestUser(t, pool)

	goal := &models.Goal{
		UserID: user.ID,
		Title:  "Groceries budget",
		Type:   models.GoalTypeLimit,
		Limit: &models.LimitGoal{
			Category: "Groceries",
			Period:   models.PeriodMonth,
			MaxSpend: decimal.NewFromInt(400),
		},
	}
	if err := database.CreateGoal(pool, goal); err != nil {
		t.Fatalf("ошибка создания цели: %v", err)
	}

	if err := database.UpdateGoalMaxSpend(pool, goal.ID, user.ID, decimal.NewFromInt(600)); err != nil {
		t.Fatalf("ошибка обновления лимита: %v", err)
	}

	updated, err := database.GetGoalByID(pool, goal.ID, user.ID)
	if err != nil {
		t.Fatalf("ошибка получения цели: %v", err)
	}
	if !updated.Limit.MaxSpend.Equal(decimal.NewFromInt(600)) {
		t.Errorf("maxSpend после обновления: получили %s, хотели 600", updated.Limit.MaxSpend)
	}
}

func TestDeleteGoal(t *testing.T) {
	pool := testPool(t)
	user := createTestUser(t, pool)

	goal := &models.Goal{
		UserID:  user.ID,
		Title:   "Short-lived",
		Type:    models.GoalTypeSavings,
		Savings: &models.SavingsGoal{TargetAmount: decimal.NewFromInt(100)},
	}
	if err := database.CreateGoal(pool, goal); err != nil {
		t.Fatalf("ошибка создания цели: %v", err)
	}

	if err := database.DeleteGoal(pool, goal.ID, user.ID); err != nil {
		t.Fatalf("ошибка удаления цели: %v", err)
	}
	if _, err := database.GetGoalByID(pool, goal.ID, user.ID); !errors.Is(err, database.ErrGoalNotFound) {
		t.Errorf("удалённая цель всё ещё находится: %v", err)
	}
}
