package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valeriaulyamaeva/wisely-backend/internal/database"
	"github.com/valeriaulyamaeva/wisely-backend/internal/evaluation"
	"github.com/valeriaulyamaeva/wisely-backend/models"
)

const recentTransactionsCount = 5

// GetDashboardHandler собирает сводку: цели с прогрессом, последние
// транзакции и счётчик непрочитанных уведомлений.
func GetDashboardHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)

		transactions, err := database.GetAllTransactionsByUser(pool, user.ID)
		if err != nil {
			handleError(c, err)
			return
		}

		goals, err := database.GetAllGoals(pool, user.ID)
		if err != nil {
			handleError(c, err)
			return
		}

		goalsPayload := make([]gin.H, 0, len(goals))
		for i := range goals {
			progress := evaluation.CalculateProgress(&goals[i], transactions)
			goalsPayload = append(goalsPayload, gin.H{
				"id":       goals[i].ID,
				"title":    goals[i].Title,
				"type":     goals[i].Type,
				"progress": progress,
			})
		}

		recent, err := database.GetRecentTransactions(pool, user.ID, recentTransactionsCount)
		if err != nil {
			handleError(c, err)
			return
		}
		if recent == nil {
			recent = []models.Transaction{}
		}

		unread, err := database.CountUnreadNotifications(pool, user.ID)
		if err != nil {
			handleError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"goals":              goalsPayload,
			"recentTransactions": recent,
			"notifications":      gin.H{"unread": unread},
		})
	}
}
