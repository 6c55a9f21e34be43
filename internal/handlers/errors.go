package handlers

import (
	"errors"
	"net/http"

	"betting-ledger/internal/models"
)

// errorStatus maps a domain error to its HTTP status. The error text itself
// is always passed through verbatim; callers surface it to the end user.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, models.ErrEventNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrNotCreator):
		return http.StatusForbidden
	case errors.Is(err, models.ErrInvalidCandidateCount),
		errors.Is(err, models.ErrInvalidCandidate),
		errors.Is(err, models.ErrInvalidAmount):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrBettingClosed),
		errors.Is(err, models.ErrBettingAlreadyClosed),
		errors.Is(err, models.ErrAlreadyBet),
		errors.Is(err, models.ErrInsufficientBalance),
		errors.Is(err, models.ErrAlreadyResolved),
		errors.Is(err, models.ErrNotResolved),
		errors.Is(err, models.ErrNoBet),
		errors.Is(err, models.ErrNotAWinner),
		errors.Is(err, models.ErrAlreadyClaimed):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
