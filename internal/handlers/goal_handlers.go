package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/valeriaulyamaeva/wisely-backend/internal/database"
	"github.com/valeriaulyamaeva/wisely-backend/internal/evaluation"
	"github.com/valeriaulyamaeva/wisely-backend/models"
)

type createGoalRequest struct {
	Title        string           `json:"title"`
	Type         string           `json:"type"`
	Category     string           `json:"category"`
	Period       string           `json:"period"`
	MaxSpend     *decimal.Decimal `json:"maxSpend"`
	TargetAmount *decimal.Decimal `json:"targetAmount"`
}

type updateGoalRequest struct {
	Title        *string          `json:"title"`
	Category     *string          `json:"category"`
	Period       *string          `json:"period"`
	MaxSpend     *decimal.Decimal `json:"maxSpend"`
	TargetAmount *decimal.Decimal `json:"targetAmount"`
}

// goalPayload раскладывает объединение в плоский JSON ответа: поля чужого
// варианта отдаются как null.
func goalPayload(goal *models.Goal, progress interface{}) gin.H {
	payload := gin.H{
		"id":              goal.ID,
		"title":           goal.Title,
		"type":            goal.Type,
		"category":        nil,
		"period":          nil,
		"maxSpend":        nil,
		"targetAmount":    nil,
		"currentProgress": goal.CurrentProgress,
		"startDate":       goal.StartDate,
		"createdAt":       goal.CreatedAt,
		"progress":        progress,
	}
	if goal.Limit != nil {
		payload["category"] = goal.Limit.Category
		payload["period"] = goal.Limit.Period
		payload["maxSpend"] = goal.Limit.MaxSpend
	}
	if goal.Savings != nil {
		payload["targetAmount"] = goal.Savings.TargetAmount
	}
	return payload
}

// GetGoalsHandler отдаёт все цели пользователя с рассчитанным прогрессом.
func GetGoalsHandler(pool *pgxpool.Pool) gin.HandlerFunc {
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

		payload := make([]gin.H, 0, len(goals))
		for i := range goals {
			progress := evaluation.CalculateProgress(&goals[i], transactions)
			payload = append(payload, goalPayload(&goals[i], progress))
		}

		c.JSON(http.StatusOK, payload)
	}
}

// CreateGoalHandler создаёт цель с проверкой обязательных полей варианта.
func CreateGoalHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)

		var req createGoalRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
			return
		}

		goal := models.Goal{UserID: user.ID, Title: req.Title, Type: req.Type}

		switch req.Type {
		case models.GoalTypeLimit:
			if req.Category == "" || req.Period == "" || req.MaxSpend == nil || !req.MaxSpend.IsPositive() {
				respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "LIMIT goals require category, period, and maxSpend")
				return
			}
			if req.Period != models.PeriodWeek && req.Period != models.PeriodMonth {
				respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "period must be WEEK or MONTH")
				return
			}
			goal.Limit = &models.LimitGoal{
				Category: req.Category,
				Period:   req.Period,
				MaxSpend: *req.MaxSpend,
			}
		case models.GoalTypeSavings:
			if req.TargetAmount == nil || !req.TargetAmount.IsPositive() {
				respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "SAVINGS goals require targetAmount")
				return
			}
			goal.Savings = &models.SavingsGoal{TargetAmount: *req.TargetAmount}
		default:
			respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "type must be LIMIT or SAVINGS")
			return
		}

		if err := database.CreateGoal(pool, &goal); err != nil {
			handleError(c, err)
			return
		}

		transactions, err := database.GetAllTransactionsByUser(pool, user.ID)
		if err != nil {
			handleError(c, err)
			return
		}
		progress := evaluation.CalculateProgress(&goal, transactions)

		c.JSON(http.StatusCreated, goalPayload(&goal, progress))
	}
}

// GetGoalHandler отдаёт цель вместе со связанными транзакциями.
func GetGoalHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid goal id")
			return
		}

		goal, err := database.GetGoalByID(pool, id, user.ID)
		if err != nil {
			handleError(c, err)
			return
		}

		goalTransactions, err := database.GetGoalTransactions(pool, goal)
		if err != nil {
			handleError(c, err)
			return
		}
		if goalTransactions == nil {
			goalTransactions = []models.Transaction{}
		}

		allTransactions, err := database.GetAllTransactionsByUser(pool, user.ID)
		if err != nil {
			handleError(c, err)
			return
		}
		progress := evaluation.CalculateProgress(goal, allTransactions)

		payload := goalPayload(goal, progress)
		payload["transactions"] = goalTransactions
		c.JSON(http.StatusOK, payload)
	}
}

// UpdateGoalHandler — частичная замена полей: что не прислали, не трогаем.
func UpdateGoalHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid goal id")
			return
		}

		var req updateGoalRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
			return
		}
		if req.Period != nil && *req.Period != models.PeriodWeek && *req.Period != models.PeriodMonth {
			respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "period must be WEEK or MONTH")
			return
		}
		if req.MaxSpend != nil && !req.MaxSpend.IsPositive() {
			respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "maxSpend must be positive")
			return
		}
		if req.TargetAmount != nil && !req.TargetAmount.IsPositive() {
			respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "targetAmount must be positive")
			return
		}

		update := database.GoalUpdate{
			Title:        req.Title,
			Category:     req.Category,
			Period:       req.Period,
			MaxSpend:     req.MaxSpend,
			TargetAmount: req.TargetAmount,
		}
		if err := database.UpdateGoal(pool, id, user.ID, update); err != nil {
			handleError(c, err)
			return
		}

		goal, err := database.GetGoalByID(pool, id, user.ID)
		if err != nil {
			handleError(c, err)
			return
		}

		transactions, err := database.GetAllTransactionsByUser(pool, user.ID)
		if err != nil {
			handleError(c, err)
			return
		}
		progress := evaluation.CalculateProgress(goal, transactions)

		c.JSON(http.StatusOK, goalPayload(goal, progress))
	}
}

func DeleteGoalHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid goal id")
			return
		}

		if err := database.DeleteGoal(pool, id, user.ID); err != nil {
			handleError(c, err)
			return
		}

		c.Status(http.StatusNoContent)
	}
}
