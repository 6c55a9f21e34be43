package models

import "time"

// Bet is one participant's single stake on one candidate of one event.
// The unique index on (event_id, user_id) backstops the
// one-bet-per-participant rule even if a precondition check is bypassed.
type Bet struct {
	ID        uint       `gorm:"primaryKey" json:"-"`
	EventID   int64      `gorm:"not null;uniqueIndex:idx_bet_event_user" json:"event_id"`
	UserID    uint       `gorm:"not null;uniqueIndex:idx_bet_event_user" json:"user_id"`
	Candidate int        `gorm:"not null" json:"candidate"`
	Amount    int64      `gorm:"not null" json:"amount"`
	Claimed   bool       `gorm:"not null;default:false" json:"claimed"`
	CreatedAt time.Time  `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	ClaimedAt *time.Time `json:"claimed_at,omitempty"`
}

func (Bet) TableName() string {
	return "bets"
}

// PlaceBetRequest stakes an amount on a candidate. Candidate is a pointer
// because index 0 is valid and must survive binding. Amount is validated
// in the service so that zero gets the domain rejection.
type PlaceBetRequest struct {
	Candidate *int  `json:"candidate" binding:"required"`
	Amount    int64 `json:"amount"`
}

// UserBetResponse distinguishes "no bet" from a real bet: Bet is null when
// the user never staked on the event.
type UserBetResponse struct {
	EventID int64 `json:"event_id"`
	UserID  uint  `json:"user_id"`
	Bet     *Bet  `json:"bet"`
}

// ClaimResponse reports the payout credited by a successful claim.
type ClaimResponse struct {
	EventID int64 `json:"event_id"`
	Payout  int64 `json:"payout"`
}
