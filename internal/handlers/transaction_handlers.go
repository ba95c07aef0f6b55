package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valeriaulyamaeva/wisely-backend/internal/database"
	"github.com/valeriaulyamaeva/wisely-backend/models"
)

const defaultTransactionLimit = 50

func parseDateParam(value string) (*time.Time, bool) {
	if value == "" {
		return nil, true
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return &t, true
		}
	}
	return nil, false
}

// GetTransactionsHandler — листинг с курсорной пагинацией. Транзакции скрыты,
// пока у пользователя нет ни одной цели.
func GetTransactionsHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)

		goalCount, err := database.CountGoals(pool, user.ID)
		if err != nil {
			handleError(c, err)
			return
		}
		if goalCount == 0 {
			respondError(c, http.StatusForbidden, "NO_GOALS", "Transactions are only visible after creating at least one goal")
			return
		}

		from, ok := parseDateParam(c.Query("from"))
		if !ok {
			respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid from date")
			return
		}
		to, ok := parseDateParam(c.Query("to"))
		if !ok {
			respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid to date")
			return
		}

		limit := defaultTransactionLimit
		if raw := c.Query("limit"); raw != "" {
			limit, err = strconv.Atoi(raw)
			if err != nil || limit <= 0 {
				respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid limit")
				return
			}
		}

		cursor := 0
		if raw := c.Query("cursor"); raw != "" {
			cursor, err = strconv.Atoi(raw)
			if err != nil || cursor <= 0 {
				respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid cursor")
				return
			}
		}

		items, err := database.ListTransactions(pool, user.ID, database.TransactionFilter{
			From:     from,
			To:       to,
			Category: c.Query("category"),
			Limit:    limit,
			Cursor:   cursor,
		})
		if err != nil {
			handleError(c, err)
			return
		}
		if items == nil {
			items = []models.Transaction{}
		}

		// Курсор отдаём только на полной странице: короткая страница — последняя
		var nextCursor interface{}
		if len(items) == limit {
			nextCursor = items[len(items)-1].ID
		}

		c.JSON(http.StatusOK, gin.H{"items": items, "nextCursor": nextCursor})
	}
}

func GetTransactionHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid transaction id")
			return
		}

		transaction, err := database.GetTransactionByID(pool, id, user.ID)
		if err != nil {
			handleError(c, err)
			return
		}

		c.JSON(http.StatusOK, transaction)
	}
}
