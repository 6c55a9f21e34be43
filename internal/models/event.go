package models

import "time"

// Event represents one wagering contest. EventID is the 0-based ledger
// index assigned at creation; it always equals the event count at the time
// the event was created. Candidates are indexed 0..NumCandidates-1.
type Event struct {
	ID            uint      `gorm:"primaryKey" json:"-"`
	EventID       int64     `gorm:"uniqueIndex;not null" json:"event_id"`
	CreatorID     uint      `gorm:"not null;index" json:"creator_id"`
	Name          string    `gorm:"size:255;not null" json:"name"`
	NumCandidates int       `gorm:"not null" json:"num_candidates"`
	IsOpen        bool      `gorm:"not null;default:true" json:"is_open"`
	Resolved      bool      `gorm:"not null;default:false" json:"resolved"`
	Winner        *int      `json:"winner,omitempty"` // set once, when resolved
	CreatedAt     time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	ClosedAt      *time.Time `json:"closed_at,omitempty"`
	ResolvedAt    *time.Time `json:"resolved_at,omitempty"`
	UpdatedAt     time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Event) TableName() string {
	return "events"
}

// CandidatePool holds the running stake total for one candidate of one
// event. A zeroed row per candidate is created together with the event, so
// total queries never have to special-case missing rows.
type CandidatePool struct {
	ID        uint  `gorm:"primaryKey" json:"-"`
	EventID   int64 `gorm:"not null;uniqueIndex:idx_pool_event_candidate" json:"event_id"`
	Candidate int   `gorm:"not null;uniqueIndex:idx_pool_event_candidate" json:"candidate"`
	Total     int64 `gorm:"not null;default:0" json:"total"`
}

func (CandidatePool) TableName() string {
	return "candidate_pools"
}

// CreateEventRequest represents a request to open a new betting event.
// NumCandidates is validated in the service so that zero gets the domain
// rejection rather than a generic binding error.
type CreateEventRequest struct {
	Name          string `json:"name" binding:"required"`
	NumCandidates int    `json:"num_candidates"`
}

// ResolveEventRequest declares the winning candidate. Winner is a pointer
// because candidate 0 is a valid value and must survive binding.
type ResolveEventRequest struct {
	Winner *int `json:"winner" binding:"required"`
}

// CandidateOdds is the display-oriented view of one candidate's pool:
// its share of the event total and the parimutuel payout multiplier.
type CandidateOdds struct {
	Candidate          int    `json:"candidate"`
	Pool               int64  `json:"pool"`
	ImpliedProbability string `json:"implied_probability"`
	PayoutMultiplier   string `json:"payout_multiplier"`
}
