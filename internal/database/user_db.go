package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valeriaulyamaeva/wisely-backend/models"
	"golang.org/x/crypto/bcrypt"
)

var ErrUserNotFound = errors.New("пользователь не найден")

// RegisterUser хеширует пароль и создаёт пользователя.
func RegisterUser(pool *pgxpool.Pool, user *models.User, password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return fmt.Errorf("ошибка хеширования пароля: %v", err)
	}

	query := `
		INSERT INTO users (email, password, name)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`
	err = pool.QueryRow(context.Background(), query, user.Email, hashedPassword, user.Name).
		Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		return fmt.Errorf("ошибка при добавлении пользователя: %w", err)
	}
	return nil
}

// AuthenticateUser сверяет пароль с bcrypt-хешем из базы.
func AuthenticateUser(pool *pgxpool.Pool, email, password string) (*models.User, error) {
	var user models.User
	query := `SELECT id, email, password, name, created_at FROM users WHERE email = $1`
	err := pool.QueryRow(context.Background(), query, email).
		Scan(&user.ID, &user.Email, &user.Password, &user.Name, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("ошибка получения пользователя: %v", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, fmt.Errorf("неверный пароль")
	}

	user.Password = ""
	return &user, nil
}

func GetUserByID(pool *pgxpool.Pool, id int) (*models.User, error) {
	query := `SELECT id, email, name, created_at FROM users WHERE id = $1`

	var user models.User
	err := pool.QueryRow(context.Background(), query, id).
		Scan(&user.ID, &user.Email, &user.Name, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("ошибка получения пользователя по id: %v", err)
	}

	return &user, nil
}

func UserExistsByEmail(pool *pgxpool.Pool, email string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`
	err := pool.QueryRow(context.Background(), query, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("ошибка проверки email: %v", err)
	}
	return exists, nil
}

// GetAllUserIDs нужен фоновой оценке целей: она обходит всех пользователей.
func GetAllUserIDs(pool *pgxpool.Pool) ([]int, error) {
	rows, err := pool.Query(context.Background(), `SELECT id FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка пользователей: %v", err)
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
