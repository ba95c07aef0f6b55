package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sashabaranov/go-openai"
	"github.com/shopspring/decimal"
	"github.com/valeriaulyamaeva/wisely-backend/internal/ai"
	"github.com/valeriaulyamaeva/wisely-backend/internal/database"
	"github.com/valeriaulyamaeva/wisely-backend/models"
)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Message             string        `json:"message"`
	ConversationHistory []chatMessage `json:"conversation_history"`
}

// limitStatus — оценка лимита за скользящее окно для подсказок ассистента.
// Окно здесь грубее календарного: последние 7/30 дней, не ISO-период.
type limitStatus struct {
	goal    models.Goal
	spent   decimal.Decimal
	percent float64
}

var approvalPhrases = []string{"yes", "sure", "ok", "go ahead", "apply", "update"}

var comboPhrases = []string{
	"and apply", "then update", "and update", "apply now", "update them", "apply changes",
}

// detectApproval — примитивное распознавание согласия по ключевым словам.
// Контракта точности у эвристики нет, это best-effort подсказка.
func detectApproval(message string) bool {
	lower := strings.ToLower(message)
	for _, phrase := range comboPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	for _, phrase := range approvalPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

// Превышенные лимиты предлагаем поднять в полтора раза, недоиспользованные —
// срезать на треть, с округлением до целого доллара.
func increasedLimit(maxSpend decimal.Decimal) decimal.Decimal {
	return maxSpend.Mul(decimal.NewFromFloat(1.5)).Round(0)
}

func reducedLimit(maxSpend decimal.Decimal) decimal.Decimal {
	return maxSpend.Mul(decimal.NewFromFloat(0.7)).Round(0)
}

func chatWindowStart(now time.Time, period string) time.Time {
	switch period {
	case models.PeriodWeek:
		return now.AddDate(0, 0, -7)
	case models.PeriodMonth:
		return now.AddDate(0, -1, 0)
	}
	return now.AddDate(-1, 0, 0)
}

// ChatHandler пересылает сообщение локальной модели вместе с финансовым
// контекстом пользователя и по ключевым словам применяет предложенные
// корректировки лимитов.
func ChatHandler(pool *pgxpool.Pool, aiClient *ai.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)

		var req chatRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Message == "" {
			respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Message is required")
			return
		}

		transactions, err := database.GetRecentTransactions(pool, user.ID, 20)
		if err != nil {
			handleError(c, err)
			return
		}
		goals, err := database.GetAllGoals(pool, user.ID)
		if err != nil {
			handleError(c, err)
			return
		}

		var problematic, underused []limitStatus
		now := time.Now()
		for _, goal := range goals {
			if !goal.IsLimit() || !goal.Limit.MaxSpend.IsPositive() {
				continue
			}
			spent, err := database.SumCategoryDebitsSince(pool, user.ID, goal.Limit.Category,
				chatWindowStart(now, goal.Limit.Period))
			if err != nil {
				handleError(c, err)
				return
			}
			percent, _ := spent.Div(goal.Limit.MaxSpend).Mul(decimal.NewFromInt(100)).Float64()
			status := limitStatus{goal: goal, spent: spent, percent: percent}
			if percent > 100 {
				problematic = append(problematic, status)
			} else if percent < 50 && spent.IsPositive() {
				underused = append(underused, status)
			}
		}

		systemPrompt := buildSystemPrompt(transactions, goals, problematic, underused)

		messages := []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
		}
		for _, m := range req.ConversationHistory {
			messages = append(messages, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
		}
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleUser,
			Content: req.Message,
		})

		aiResponse, err := aiClient.Chat(messages)
		if err != nil {
			log.Printf("ошибка обращения к модели: %v", err)
			// Модель недоступна — отвечаем заглушкой, а не ошибкой
			c.JSON(http.StatusOK, gin.H{
				"response": fmt.Sprintf("I understand you're asking: %q. This is a placeholder response. "+
					"Please ensure Ollama is running and the model is downloaded.", req.Message),
				"timestamp": time.Now().Format(time.RFC3339),
			})
			return
		}

		updatedGoals := []gin.H{}
		var updateMessage strings.Builder
		// Недоиспользованные лимиты трогаем только вместе с превышенными
		if detectApproval(req.Message) && len(problematic) > 0 {
			adjustments := make([]limitStatus, 0, len(problematic)+len(underused))
			adjustments = append(adjustments, problematic...)
			adjustments = append(adjustments, underused...)

			for _, status := range adjustments {
				goal := status.goal
				newLimit := increasedLimit(goal.Limit.MaxSpend)
				verb := "Increased"
				if status.percent <= 100 {
					newLimit = reducedLimit(goal.Limit.MaxSpend)
					verb = "Reduced"
				}

				if err := database.UpdateGoalMaxSpend(pool, goal.ID, user.ID, newLimit); err != nil {
					handleError(c, err)
					return
				}
				updatedGoals = append(updatedGoals, gin.H{"id": goal.ID, "maxSpend": newLimit})
				fmt.Fprintf(&updateMessage, "%s %q limit from $%s to $%s. ",
					verb, goal.Title, goal.Limit.MaxSpend.String(), newLimit.String())
			}
		}

		response := aiResponse
		if updateMessage.Len() > 0 {
			response = strings.TrimSpace(updateMessage.String())
		}

		c.JSON(http.StatusOK, gin.H{
			"response":     response,
			"updatedGoals": updatedGoals,
			"timestamp":    time.Now().Format(time.RFC3339),
		})
	}
}

func buildSystemPrompt(transactions []models.Transaction, goals []models.Goal, problematic, underused []limitStatus) string {
	var txParts []string
	for i, t := range transactions {
		if i == 5 {
			break
		}
		category := t.Category
		if category == "" {
			category = "Other"
		}
		txParts = append(txParts, fmt.Sprintf("$%s %s", t.Amount.String(), category))
	}
	transactionsSummary := strings.Join(txParts, ", ")
	if transactionsSummary == "" {
		transactionsSummary = "None"
	}

	var goalParts []string
	for _, g := range goals {
		switch {
		case g.IsLimit():
			goalParts = append(goalParts, fmt.Sprintf("%s: $%s/%s",
				g.Title, g.Limit.MaxSpend.String(), g.Limit.Period))
		case g.IsSavings():
			goalParts = append(goalParts, fmt.Sprintf("%s: Target $%s",
				g.Title, g.Savings.TargetAmount.String()))
		}
	}
	goalsSummary := strings.Join(goalParts, " | ")
	if goalsSummary == "" {
		goalsSummary = "None"
	}

	var suggestions []string
	for _, status := range problematic {
		suggestions = append(suggestions, fmt.Sprintf("%s: $%s -> $%s (%.0f%% used)",
			status.goal.Title, status.goal.Limit.MaxSpend.String(),
			increasedLimit(status.goal.Limit.MaxSpend).String(), status.percent))
	}
	if len(problematic) > 0 {
		for _, status := range underused {
			suggestions = append(suggestions, fmt.Sprintf("%s: $%s -> $%s (%.0f%% used)",
				status.goal.Title, status.goal.Limit.MaxSpend.String(),
				reducedLimit(status.goal.Limit.MaxSpend).String(), status.percent))
		}
	}
	suggestionsText := ""
	if len(suggestions) > 0 {
		suggestionsText = "\n\nGOAL ADJUSTMENT SUGGESTIONS:\n" + strings.Join(suggestions, "\n")
	}

	return fmt.Sprintf(`You are a concise financial assistant. Keep responses SHORT (1-2 sentences max).

USER DATA:
Transactions: %s
Goals: %s%s

RULES:
- Be brief and direct
- If LIMIT goal exceeded (>100%%): suggest increase
- If underutilized (<50%%): suggest decrease
- After suggesting changes, ask: "Should I apply these updates?"
- User will say "yes", "apply", or "update" to confirm`,
		transactionsSummary, goalsSummary, suggestionsText)
}
