package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valeriaulyamaeva/wisely-backend/internal/auth"
	"github.com/valeriaulyamaeva/wisely-backend/internal/database"
	"github.com/valeriaulyamaeva/wisely-backend/models"
)

const contextUserKey = "currentUser"

// AuthMiddleware проверяет bearer-токен и кладёт пользователя в контекст запроса.
func AuthMiddleware(pool *pgxpool.Pool, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token := strings.TrimPrefix(header, "Bearer ")
		if token == "" || token == header {
			respondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "No token provided")
			return
		}

		claims, err := auth.ParseToken(jwtSecret, token)
		if err != nil {
			respondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid token")
			return
		}

		user, err := database.GetUserByID(pool, claims.UserID)
		if err != nil {
			respondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "User not found")
			return
		}

		c.Set(contextUserKey, user)
		c.Next()
	}
}

func currentUser(c *gin.Context) *models.User {
	value, _ := c.Get(contextUserKey)
	user, _ := value.(*models.User)
	return user
}

// CORSMiddleware пускает фронтенд с настроенного origin.
func CORSMiddleware(clientURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin == clientURL {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, PATCH, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusOK)
			return
		}

		c.Next()
	}
}
