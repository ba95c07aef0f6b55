package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Схема создаётся идемпотентно при старте. Частичные уникальные индексы на
// notifications дают дедупликацию уведомлений на уровне хранилища: одно
// LIMIT_HIT на цель и период, одно SAVINGS_MILESTONE на цель и рубеж.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL DEFAULT '',
		password TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS goals (
		id SERIAL PRIMARY KEY,
		user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		title TEXT NOT NULL,
		type TEXT NOT NULL CHECK (type IN ('LIMIT', 'SAVINGS')),
		category TEXT,
		period TEXT CHECK (period IN ('WEEK', 'MONTH')),
		max_spend NUMERIC(12, 2),
		target_amount NUMERIC(12, 2),
		current_progress NUMERIC(12, 2) NOT NULL DEFAULT 0,
		start_date TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS transactions (
		id SERIAL PRIMARY KEY,
		user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		amount NUMERIC(12, 2) NOT NULL,
		type TEXT NOT NULL CHECK (type IN ('DEBIT', 'CREDIT')),
		transaction_date TIMESTAMPTZ NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		merchant_name TEXT NOT NULL DEFAULT '',
		category TEXT NOT NULL DEFAULT 'Other',
		plaid_transaction_id TEXT UNIQUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS notifications (
		id SERIAL PRIMARY KEY,
		user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		type TEXT NOT NULL CHECK (type IN ('LIMIT_HIT', 'SAVINGS_MILESTONE')),
		message TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'UNREAD' CHECK (status IN ('UNREAD', 'READ')),
		meta JSONB NOT NULL DEFAULT '{}',
		goal_id INTEGER,
		period_start TIMESTAMPTZ,
		milestone DOUBLE PRECISION,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS notifications_limit_hit_once
		ON notifications (goal_id, period_start)
		WHERE type = 'LIMIT_HIT'`,
	`CREATE UNIQUE INDEX IF NOT EXISTS notifications_milestone_once
		ON notifications (goal_id, milestone)
		WHERE type = 'SAVINGS_MILESTONE'`,
	`CREATE TABLE IF NOT EXISTS plaid_items (
		id SERIAL PRIMARY KEY,
		user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		access_token TEXT NOT NULL,
		item_id TEXT NOT NULL,
		institution TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS transactions_user_date
		ON transactions (user_id, transaction_date DESC)`,
}

func Migrate(pool *pgxpool.Pool) error {
	for _, stmt := range migrations {
		if _, err := pool.Exec(context.Background(), stmt); err != nil {
			return fmt.Errorf("ошибка применения миграции: %v", err)
		}
	}
	return nil
}
