package models

import "time"

// Budget holds one spending limit per (user, month). Month is "YYYY-MM".
type Budget struct {
	ID          int       `json:"id"`
	UserID      int       `json:"userId"`
	Month       string    `json:"month"`
	TotalBudget int64     `json:"totalBudget"`
	CreatedAt   time.Time `json:"createdAt"`
	ModifiedAt  time.Time `json:"modifiedAt"`
}
