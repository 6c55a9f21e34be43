package services

import (
	"context"
	"fmt"
	"log"
	"math/big"

	"betting-ledger/internal/models"
	"betting-ledger/internal/repository"

	"github.com/google/uuid"
)

// PayoutService releases a winner's share of the pool exactly once.
type PayoutService struct {
	repo *repository.Repository
}

func NewPayoutService(repo *repository.Repository) *PayoutService {
	return &PayoutService{repo: repo}
}

// ClaimWinnings pays out the caller's winning bet and returns the credited
// amount. The claimed flag is flipped with a guarded update before any
// value moves, so a re-entering call sees the bet as already claimed and
// the payout happens at most once. The whole claim is one transaction.
func (s *PayoutService) ClaimWinnings(ctx context.Context, eventID int64, callerID uint) (int64, error) {
	var payout int64

	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		event, err := tx.GetEventByEventID(ctx, eventID)
		if err != nil {
			return models.ErrEventNotFound
		}

		if !event.Resolved || event.Winner == nil {
			return models.ErrNotResolved
		}

		bet, err := tx.GetUserBet(ctx, eventID, callerID)
		if err != nil {
			return fmt.Errorf("failed to look up bet: %w", err)
		}
		if bet == nil {
			return models.ErrNoBet
		}

		if bet.Candidate != *event.Winner {
			return models.ErrNotAWinner
		}

		if bet.Claimed {
			return models.ErrAlreadyClaimed
		}

		pools, err := tx.GetCandidatePools(ctx, eventID)
		if err != nil {
			return fmt.Errorf("failed to get candidate pools: %w", err)
		}

		var totalPool, winningPool int64
		for _, pool := range pools {
			totalPool += pool.Total
			if pool.Candidate == *event.Winner {
				winningPool = pool.Total
			}
		}

		payout = computePayout(bet.Amount, totalPool, winningPool)

		// State change strictly before the value transfer.
		claimed, err := tx.MarkBetClaimed(ctx, bet.ID)
		if err != nil {
			return fmt.Errorf("failed to mark bet claimed: %w", err)
		}
		if !claimed {
			return models.ErrAlreadyClaimed
		}

		if err := tx.CreditBalance(ctx, callerID, payout); err != nil {
			return fmt.Errorf("failed to credit payout: %w", err)
		}

		receipt := &models.LedgerTransaction{
			ID:      uuid.New(),
			UserID:  callerID,
			EventID: &eventID,
			Type:    models.TransactionTypePayout,
			Amount:  payout,
		}

		if err := tx.CreateLedgerTransaction(ctx, receipt); err != nil {
			return fmt.Errorf("failed to record payout receipt: %w", err)
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	log.Printf("User %d claimed %d on event %d", callerID, payout, eventID)

	return payout, nil
}

// computePayout scales the winning stake by totalPool/winningPool: each
// winner takes a share of the entire event pool proportional to their
// fraction of the winning candidate's pool. The multiply runs before the
// divide, through big.Int so large stakes cannot overflow the
// intermediate. Division floors; truncation dust stays in the pool.
func computePayout(amount, totalPool, winningPool int64) int64 {
	if winningPool == 0 {
		return 0
	}

	product := new(big.Int).Mul(big.NewInt(amount), big.NewInt(totalPool))
	share := product.Div(product, big.NewInt(winningPool))

	return share.Int64()
}
