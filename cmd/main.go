package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"
	"github.com/valeriaulyamaeva/wisely-backend/internal/ai"
	"github.com/valeriaulyamaeva/wisely-backend/internal/config"
	"github.com/valeriaulyamaeva/wisely-backend/internal/database"
	"github.com/valeriaulyamaeva/wisely-backend/internal/evaluation"
	"github.com/valeriaulyamaeva/wisely-backend/internal/handlers"
	"github.com/valeriaulyamaeva/wisely-backend/internal/plaid"
)

// ScheduleGoalEvaluation раз в час прогоняет оценку целей по всем
// пользователям. Ошибка одного пользователя не мешает остальным.
func ScheduleGoalEvaluation(pool *pgxpool.Pool) {
	c := cron.New()
	_, err := c.AddFunc("@hourly", func() {
		userIDs, err := database.GetAllUserIDs(pool)
		if err != nil {
			log.Printf("Ошибка получения пользователей для оценки целей: %v", err)
			return
		}
		for _, userID := range userIDs {
			notifications, err := evaluation.EvaluateUserGoals(pool, userID)
			if err != nil {
				log.Printf("Ошибка оценки целей пользователя %d: %v", userID, err)
				continue
			}
			if len(notifications) > 0 {
				log.Printf("Создано %d уведомлений для пользователя %d", len(notifications), userID)
			}
		}
	})
	if err != nil {
		log.Fatalf("Ошибка настройки CRON-задачи оценки целей: %v", err)
	}
	c.Start()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL обязателен")
	}
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET обязателен")
	}

	// Денежные значения в JSON — числа, не строки
	decimal.MarshalJSONWithoutQuotes = true

	pool, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Ошибка подключения к БД: %v", err)
	}
	defer pool.Close()

	if err := database.Migrate(pool); err != nil {
		log.Fatalf("Ошибка миграции схемы: %v", err)
	}

	plaidClient := plaid.New(cfg)
	aiClient := ai.New(cfg.OllamaURL, cfg.OllamaModel)

	ScheduleGoalEvaluation(pool)

	r := gin.Default()
	r.Use(handlers.CORSMiddleware(cfg.ClientURL))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK", "timestamp": time.Now().Format(time.RFC3339)})
	})

	api := r.Group("/api")
	api.POST("/auth/signup", handlers.SignupHandler(pool, cfg.JWTSecret))
	api.POST("/auth/login", handlers.LoginHandler(pool, cfg.JWTSecret))
	api.POST("/auth/logout", handlers.LogoutHandler())

	authorized := api.Group("")
	authorized.Use(handlers.AuthMiddleware(pool, cfg.JWTSecret))

	authorized.GET("/auth/me", handlers.MeHandler())

	authorized.GET("/dashboard", handlers.GetDashboardHandler(pool))

	authorized.GET("/goals", handlers.GetGoalsHandler(pool))
	authorized.POST("/goals", handlers.CreateGoalHandler(pool))
	authorized.GET("/goals/:id", handlers.GetGoalHandler(pool))
	authorized.PATCH("/goals/:id", handlers.UpdateGoalHandler(pool))
	authorized.DELETE("/goals/:id", handlers.DeleteGoalHandler(pool))

	authorized.GET("/transactions", handlers.GetTransactionsHandler(pool))
	authorized.GET("/transactions/:id", handlers.GetTransactionHandler(pool))

	authorized.GET("/notifications", handlers.GetNotificationsHandler(pool))
	authorized.PATCH("/notifications/:id/read", handlers.MarkNotificationReadHandler(pool))

	authorized.POST("/plaid/link-token", handlers.CreateLinkTokenHandler(plaidClient))
	authorized.POST("/plaid/exchange", handlers.ExchangeTokenHandler(pool, plaidClient))
	authorized.POST("/plaid/sync", handlers.SyncTransactionsHandler(pool, plaidClient))
	authorized.POST("/plaid/webhook", handlers.PlaidWebhookHandler())

	authorized.POST("/chat", handlers.ChatHandler(pool, aiClient))

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Ошибка при запуске сервера: %v", err)
	}
}
