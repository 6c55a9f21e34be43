package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"betting-ledger/internal/models"
	"betting-ledger/internal/repository"
)

// ResolutionService transitions events to their terminal outcome. Only the
// event's creator may resolve, and only once.
type ResolutionService struct {
	repo *repository.Repository
}

func NewResolutionService(repo *repository.Repository) *ResolutionService {
	return &ResolutionService{repo: repo}
}

// ResolveEvent fixes the winning candidate. Resolution is gated on creator
// authority and not-yet-resolved only. The betting-closed flag is a separate
// concern: a creator may resolve while betting is still open.
func (s *ResolutionService) ResolveEvent(
	ctx context.Context,
	eventID int64,
	callerID uint,
	winner int,
) error {
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		event, err := tx.GetEventByEventID(ctx, eventID)
		if err != nil {
			return models.ErrEventNotFound
		}

		if event.CreatorID != callerID {
			return models.ErrNotCreator
		}

		if event.Resolved {
			return models.ErrAlreadyResolved
		}

		if winner < 0 || winner >= event.NumCandidates {
			return models.ErrInvalidCandidate
		}

		event.Resolved = true
		event.Winner = &winner
		now := time.Now()
		event.ResolvedAt = &now

		if err := tx.UpdateEvent(ctx, event); err != nil {
			return fmt.Errorf("failed to resolve event: %w", err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	log.Printf("Event %d resolved by user %d: winner is candidate %d", eventID, callerID, winner)

	return nil
}
