package services

import (
	"context"
	"fmt"

	"betting-ledger/internal/models"
	"betting-ledger/internal/repository"

	"github.com/shopspring/decimal"
)

// OddsService derives display odds from the pool totals. It never mutates
// the ledger; payouts are computed from the raw integer pools, not from
// these figures.
type OddsService struct {
	repo *repository.Repository
}

func NewOddsService(repo *repository.Repository) *OddsService {
	return &OddsService{repo: repo}
}

// GetEventOdds returns, per candidate, the pool's share of the event total
// (implied probability) and the parimutuel multiplier total/candidatePool
// a winning stake would currently earn. Empty pools yield zero odds.
func (s *OddsService) GetEventOdds(ctx context.Context, eventID int64) ([]models.CandidateOdds, error) {
	event, err := s.repo.GetEventByEventID(ctx, eventID)
	if err != nil {
		return nil, models.ErrEventNotFound
	}

	pools, err := s.repo.GetCandidatePools(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to get candidate pools: %w", err)
	}

	totals := make([]int64, event.NumCandidates)
	var grandTotal int64
	for _, pool := range pools {
		if pool.Candidate >= 0 && pool.Candidate < event.NumCandidates {
			totals[pool.Candidate] = pool.Total
			grandTotal += pool.Total
		}
	}

	total := decimal.NewFromInt(grandTotal)
	odds := make([]models.CandidateOdds, event.NumCandidates)

	for i, poolTotal := range totals {
		odds[i] = models.CandidateOdds{
			Candidate:          i,
			Pool:               poolTotal,
			ImpliedProbability: decimal.Zero.StringFixed(4),
			PayoutMultiplier:   decimal.Zero.StringFixed(4),
		}

		if grandTotal == 0 || poolTotal == 0 {
			continue
		}

		pool := decimal.NewFromInt(poolTotal)
		odds[i].ImpliedProbability = pool.Div(total).Round(4).StringFixed(4)
		odds[i].PayoutMultiplier = total.Div(pool).Round(4).StringFixed(4)
	}

	return odds, nil
}
