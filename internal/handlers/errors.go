package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/valeriaulyamaeva/wisely-backend/internal/database"
)

// Единый конверт ошибок API: {error:{code,message,details?}}.
type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

func respondError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, gin.H{"error": errorBody{Code: code, Message: message}})
}

func respondErrorDetails(c *gin.Context, status int, code, message, details string) {
	c.AbortWithStatusJSON(status, gin.H{"error": errorBody{Code: code, Message: message, Details: details}})
}

// handleError — центральный транслятор: известные категории в фиксированные
// коды, остальное — 500 без деталей наружу.
func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, database.ErrGoalNotFound):
		respondError(c, http.StatusNotFound, "NOT_FOUND", "Goal not found")
	case errors.Is(err, database.ErrTransactionNotFound):
		respondError(c, http.StatusNotFound, "NOT_FOUND", "Transaction not found")
	case errors.Is(err, database.ErrNotificationNotFound):
		respondError(c, http.StatusNotFound, "NOT_FOUND", "Notification not found")
	case errors.Is(err, database.ErrUserNotFound):
		respondError(c, http.StatusNotFound, "NOT_FOUND", "User not found")
	case isUniqueViolation(err):
		respondError(c, http.StatusConflict, "DUPLICATE_ENTRY", "A record with this information already exists")
	default:
		log.Printf("внутренняя ошибка: %v", err)
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
