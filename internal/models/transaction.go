package models

import (
	"time"

	"github.com/google/uuid"
)

type TransactionType string

const (
	TransactionTypeStake  TransactionType = "STAKE"
	TransactionTypePayout TransactionType = "PAYOUT"
	TransactionTypeCredit TransactionType = "CREDIT"
)

// LedgerTransaction is the receipt written for every value movement: a
// stake taken into custody, a payout released to a winner, or an initial
// balance credit. Receipts are append-only.
type LedgerTransaction struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uint            `gorm:"not null;index" json:"user_id"`
	EventID   *int64          `gorm:"index" json:"event_id,omitempty"`
	Type      TransactionType `gorm:"size:50;not null;index" json:"type"`
	Amount    int64           `gorm:"not null" json:"amount"`
	CreatedAt time.Time       `gorm:"default:CURRENT_TIMESTAMP;index" json:"created_at"`
}

func (LedgerTransaction) TableName() string {
	return "ledger_transactions"
}
