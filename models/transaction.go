package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	TransactionDebit  = "DEBIT"
	TransactionCredit = "CREDIT"
)

type Transaction struct {
	ID                 int             `json:"id" db:"id"`
	UserID             int             `json:"userId" db:"user_id"`
	Amount             decimal.Decimal `json:"amount" db:"amount"`
	Type               string          `json:"type" db:"type"`
	Date               time.Time       `json:"date" db:"transaction_date"`
	Description        string          `json:"description" db:"description"`
	MerchantName       string          `json:"merchantName" db:"merchant_name"`
	Category           string          `json:"category" db:"category"`
	PlaidTransactionID string          `json:"plaidTransactionId,omitempty" db:"plaid_transaction_id"`
	CreatedAt          time.Time       `json:"createdAt" db:"created_at"`
}
