package models

import "errors"

// Domain errors returned by the ledger services. The messages are surfaced
// verbatim to API clients, so they double as the rejection reasons the
// frontend shows to users.
var (
	ErrEventNotFound         = errors.New("event does not exist")
	ErrInvalidCandidateCount = errors.New("must have at least one candidate")
	ErrInvalidCandidate      = errors.New("invalid candidate")
	ErrBettingClosed         = errors.New("betting is closed")
	ErrBettingAlreadyClosed  = errors.New("betting already closed")
	ErrAlreadyBet            = errors.New("already bet")
	ErrInvalidAmount         = errors.New("bet amount must be positive")
	ErrInsufficientBalance   = errors.New("insufficient balance")
	ErrNotCreator            = errors.New("not event creator")
	ErrAlreadyResolved       = errors.New("already resolved")
	ErrNotResolved           = errors.New("not resolved")
	ErrNoBet                 = errors.New("no bet placed")
	ErrNotAWinner            = errors.New("not a winner")
	ErrAlreadyClaimed        = errors.New("winnings already claimed")
)
