package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valeriaulyamaeva/wisely-backend/internal/auth"
	"github.com/valeriaulyamaeva/wisely-backend/internal/database"
	"github.com/valeriaulyamaeva/wisely-backend/models"
)

type signupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignupHandler регистрирует пользователя и сразу выдаёт токен.
func SignupHandler(pool *pgxpool.Pool, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req signupRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
			return
		}
		if req.Email == "" || req.Password == "" {
			respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Email and password are required")
			return
		}

		exists, err := database.UserExistsByEmail(pool, req.Email)
		if err != nil {
			handleError(c, err)
			return
		}
		if exists {
			respondError(c, http.StatusConflict, "USER_EXISTS", "User with this email already exists")
			return
		}

		user := models.User{Email: req.Email, Name: req.Name}
		if err := database.RegisterUser(pool, &user, req.Password); err != nil {
			handleError(c, err)
			return
		}

		token, err := auth.GenerateToken(jwtSecret, user.ID, user.Email)
		if err != nil {
			handleError(c, err)
			return
		}

		log.Printf("Пользователь зарегистрирован: ID = %d", user.ID)
		c.JSON(http.StatusCreated, gin.H{"user": user, "token": token})
	}
}

// LoginHandler проверяет пароль и выдаёт токен. Несуществующий email и
// неверный пароль дают одинаковый ответ.
func LoginHandler(pool *pgxpool.Pool, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
			return
		}

		user, err := database.AuthenticateUser(pool, req.Email, req.Password)
		if err != nil {
			respondError(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password")
			return
		}

		token, err := auth.GenerateToken(jwtSecret, user.ID, user.Email)
		if err != nil {
			handleError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"user": user, "token": token})
	}
}

// LogoutHandler ничего не хранит на сервере: клиент просто забывает токен.
func LogoutHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	}
}

// MeHandler отдаёт пользователя из контекста, авторизацию делает middleware.
func MeHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, currentUser(c))
	}
}
