package models

import "time"

// Expense amounts are stored in the smallest currency unit.
type Expense struct {
	ID          int       `json:"id"`
	UserID      int       `json:"userId"`
	Date        time.Time `json:"date"`
	Category    string    `json:"category"`
	Amount      int64     `json:"amount"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	ModifiedAt  time.Time `json:"modifiedAt"`
}
