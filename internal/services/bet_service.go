package services

import (
	"context"
	"fmt"
	"log"

	"betting-ledger/internal/models"
	"betting-ledger/internal/repository"

	"github.com/google/uuid"
)

// BetService owns per-participant stakes and per-candidate pool totals.
type BetService struct {
	repo *repository.Repository
}

func NewBetService(repo *repository.Repository) *BetService {
	return &BetService{repo: repo}
}

// PlaceBet stakes amount on a candidate of an open event. At most one bet
// per user per event. Debiting the stake, recording the bet and updating
// the candidate pool happen in one transaction: there is no state where
// funds are held without a bet record, or a bet exists without funds.
func (s *BetService) PlaceBet(
	ctx context.Context,
	eventID int64,
	bettorID uint,
	candidate int,
	amount int64,
) (*models.Bet, error) {
	var bet *models.Bet

	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		event, err := tx.GetEventByEventID(ctx, eventID)
		if err != nil {
			return models.ErrEventNotFound
		}

		if !event.IsOpen {
			return models.ErrBettingClosed
		}

		if candidate < 0 || candidate >= event.NumCandidates {
			return models.ErrInvalidCandidate
		}

		existing, err := tx.GetUserBet(ctx, eventID, bettorID)
		if err != nil {
			return fmt.Errorf("failed to look up existing bet: %w", err)
		}
		if existing != nil {
			return models.ErrAlreadyBet
		}

		if amount <= 0 {
			return models.ErrInvalidAmount
		}

		debited, err := tx.DebitBalance(ctx, bettorID, amount)
		if err != nil {
			return fmt.Errorf("failed to debit stake: %w", err)
		}
		if !debited {
			return models.ErrInsufficientBalance
		}

		bet = &models.Bet{
			EventID:   eventID,
			UserID:    bettorID,
			Candidate: candidate,
			Amount:    amount,
		}

		if err := tx.CreateBet(ctx, bet); err != nil {
			return fmt.Errorf("failed to record bet: %w", err)
		}

		if err := tx.AddToCandidatePool(ctx, eventID, candidate, amount); err != nil {
			return fmt.Errorf("failed to update candidate pool: %w", err)
		}

		receipt := &models.LedgerTransaction{
			ID:      uuid.New(),
			UserID:  bettorID,
			EventID: &eventID,
			Type:    models.TransactionTypeStake,
			Amount:  amount,
		}

		if err := tx.CreateLedgerTransaction(ctx, receipt); err != nil {
			return fmt.Errorf("failed to record stake receipt: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("User %d bet %d on candidate %d of event %d", bettorID, amount, candidate, eventID)

	return bet, nil
}

// GetUserBet returns the user's bet on an event, or nil if they never bet.
// Absence is not an error: callers must be able to tell a non-bettor apart
// from a bettor with any real stake.
func (s *BetService) GetUserBet(ctx context.Context, eventID int64, userID uint) (*models.Bet, error) {
	if _, err := s.repo.GetEventByEventID(ctx, eventID); err != nil {
		return nil, models.ErrEventNotFound
	}
	return s.repo.GetUserBet(ctx, eventID, userID)
}

// GetUserBets retrieves all of a user's bets across events
func (s *BetService) GetUserBets(ctx context.Context, userID uint, limit, offset int) ([]*models.Bet, int64, error) {
	return s.repo.GetUserBets(ctx, userID, limit, offset)
}

// GetTotalBetsOnCandidate returns the running stake total for one candidate
func (s *BetService) GetTotalBetsOnCandidate(ctx context.Context, eventID int64, candidate int) (int64, error) {
	event, err := s.repo.GetEventByEventID(ctx, eventID)
	if err != nil {
		return 0, models.ErrEventNotFound
	}

	if candidate < 0 || candidate >= event.NumCandidates {
		return 0, models.ErrInvalidCandidate
	}

	pool, err := s.repo.GetCandidatePool(ctx, eventID, candidate)
	if err != nil {
		return 0, fmt.Errorf("failed to get candidate pool: %w", err)
	}

	return pool.Total, nil
}

// GetEventTotalBets returns one total per candidate in index order. An
// event with no bets yields all zeros, not an error.
func (s *BetService) GetEventTotalBets(ctx context.Context, eventID int64) ([]int64, error) {
	event, err := s.repo.GetEventByEventID(ctx, eventID)
	if err != nil {
		return nil, models.ErrEventNotFound
	}

	pools, err := s.repo.GetCandidatePools(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to get candidate pools: %w", err)
	}

	totals := make([]int64, event.NumCandidates)
	for _, pool := range pools {
		if pool.Candidate >= 0 && pool.Candidate < event.NumCandidates {
			totals[pool.Candidate] = pool.Total
		}
	}

	return totals, nil
}
