package models

import "time"

// PlaidItem — привязанный банк: один item на успешный linking flow.
// AccessToken наружу не отдаём никогда.
type PlaidItem struct {
	ID          int       `json:"id" db:"id"`
	UserID      int       `json:"userId" db:"user_id"`
	AccessToken string    `json:"-" db:"access_token"`
	ItemID      string    `json:"itemId" db:"item_id"`
	Institution string    `json:"institution" db:"institution"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}
