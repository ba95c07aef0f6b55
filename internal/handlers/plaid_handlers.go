package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valeriaulyamaeva/wisely-backend/internal/database"
	"github.com/valeriaulyamaeva/wisely-backend/internal/plaid"
	"github.com/valeriaulyamaeva/wisely-backend/models"
)

// Окно выгрузки транзакций при синхронизации, в днях.
const syncWindowDays = 30

// CreateLinkTokenHandler выдаёт короткоживущий link token для Plaid Link.
func CreateLinkTokenHandler(client *plaid.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			ClientUserID string `json:"client_user_id"`
		}
		if err := c.ShouldBindJSON(&req); err != nil || req.ClientUserID == "" {
			respondError(c, http.StatusBadRequest, "MISSING_USER_ID", "client_user_id is required")
			return
		}

		linkToken, err := client.CreateLinkToken(req.ClientUserID)
		if err != nil {
			log.Printf("ошибка создания link token: %v", err)
			respondErrorDetails(c, http.StatusBadRequest, "PLAID_ERROR",
				"Failed to create Plaid link. Please check your Plaid credentials in .env", err.Error())
			return
		}

		c.JSON(http.StatusOK, gin.H{"link_token": linkToken})
	}
}

// ExchangeTokenHandler меняет public_token на access token и сохраняет привязку.
// Первичную выгрузку транзакций не делаем: пользователь запускает sync сам.
func ExchangeTokenHandler(pool *pgxpool.Pool, client *plaid.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)

		var req struct {
			PublicToken string `json:"public_token"`
		}
		if err := c.ShouldBindJSON(&req); err != nil || req.PublicToken == "" {
			respondError(c, http.StatusBadRequest, "MISSING_PUBLIC_TOKEN", "public_token is required")
			return
		}

		accessToken, itemID, err := client.ExchangePublicToken(req.PublicToken)
		if err != nil {
			log.Printf("ошибка обмена public token: %v", err)
			respondErrorDetails(c, http.StatusBadRequest, "PLAID_ERROR",
				"Failed to exchange public token", err.Error())
			return
		}

		institution := client.GetInstitution()

		item := models.PlaidItem{
			UserID:      user.ID,
			AccessToken: accessToken,
			ItemID:      itemID,
			Institution: institution,
		}
		if err := database.CreatePlaidItem(pool, &item); err != nil {
			handleError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"itemId":               itemID,
			"institution":          institution,
			"transactionsImported": 0,
			"message":              "Bank connected successfully! Use 'Sync Transactions' button to fetch transactions.",
		})
	}
}

// SyncTransactionsHandler выгружает транзакции за последние 30 дней по каждой
// привязке и сохраняет новые.
func SyncTransactionsHandler(pool *pgxpool.Pool, client *plaid.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)

		items, err := database.GetPlaidItemsByUserID(pool, user.ID)
		if err != nil {
			handleError(c, err)
			return
		}
		if len(items) == 0 {
			respondError(c, http.StatusNotFound, "NO_PLAID_ITEMS", "No Plaid items found for user")
			return
		}

		endDate := time.Now()
		startDate := endDate.AddDate(0, 0, -syncWindowDays)

		totalImported := 0
		for _, item := range items {
			transactions, err := client.FetchTransactions(
				item.AccessToken,
				startDate.Format("2006-01-02"),
				endDate.Format("2006-01-02"))
			if err != nil {
				log.Printf("ошибка выгрузки транзакций для item %s: %v", item.ItemID, err)
				respondErrorDetails(c, http.StatusBadRequest, "PLAID_ERROR",
					"Failed to fetch transactions", err.Error())
				return
			}

			processed := plaid.ProcessTransactions(pool, user.ID, transactions)
			totalImported += len(processed)
		}

		c.JSON(http.StatusOK, gin.H{"imported": totalImported})
	}
}

// PlaidWebhookHandler подтверждает вебхук; обработка ограничена логом.
func PlaidWebhookHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			WebhookType string `json:"webhook_type"`
			WebhookCode string `json:"webhook_code"`
			ItemID      string `json:"item_id"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid webhook body")
			return
		}

		log.Printf("Plaid webhook: type=%s code=%s item=%s", req.WebhookType, req.WebhookCode, req.ItemID)
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}
