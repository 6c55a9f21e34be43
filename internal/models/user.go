package models

import (
	"time"
)

// User represents a participant identified by their wallet address.
// Balance is the value the ledger holds on the user's behalf, in base
// units; stakes debit it and payouts credit it.
type User struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	WalletAddress string    `gorm:"uniqueIndex;not null" json:"wallet_address"`
	Balance       int64     `gorm:"not null;default:0" json:"balance"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TableName specifies the table name for User model
func (User) TableName() string {
	return "users"
}
