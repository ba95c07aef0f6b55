package plaid

import (
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/plaid/plaid-go/v27/plaid"
	"github.com/shopspring/decimal"
	"github.com/valeriaulyamaeva/wisely-backend/internal/database"
	"github.com/valeriaulyamaeva/wisely-backend/models"
)

// ProcessTransactions последовательно сохраняет выгруженные транзакции.
// Уже известные plaid_transaction_id пропускаются, ошибка одной записи не
// останавливает остальные. Компенсаций при частичном сбое нет.
func ProcessTransactions(pool *pgxpool.Pool, userID int, transactions []plaid.Transaction) []models.Transaction {
	var processed []models.Transaction

	for _, pt := range transactions {
		date, err := time.Parse("2006-01-02", pt.GetDate())
		if err != nil {
			log.Printf("пропускаем транзакцию %s: некорректная дата %q", pt.GetTransactionId(), pt.GetDate())
			continue
		}

		amount := decimal.NewFromFloat(pt.GetAmount())
		// У Plaid положительная сумма — поступление в нашей модели
		txType := models.TransactionDebit
		if amount.IsPositive() {
			txType = models.TransactionCredit
		}

		merchant := pt.GetMerchantName()
		if merchant == "" {
			merchant = pt.GetName()
		}

		transaction := models.Transaction{
			UserID:             userID,
			Amount:             amount.Abs(),
			Type:               txType,
			Date:               date,
			Description:        pt.GetName(),
			MerchantName:       merchant,
			Category:           NormalizeCategory(pt.GetCategory()),
			PlaidTransactionID: pt.GetTransactionId(),
		}

		inserted, err := database.InsertImportedTransaction(pool, &transaction)
		if err != nil {
			log.Printf("ошибка сохранения транзакции %s: %v", pt.GetTransactionId(), err)
			continue
		}
		if inserted {
			processed = append(processed, transaction)
		}
	}

	return processed
}
