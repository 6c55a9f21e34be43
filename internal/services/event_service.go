package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"betting-ledger/internal/models"
	"betting-ledger/internal/repository"
)

// EventService owns the event catalog and its lifecycle flags.
type EventService struct {
	repo *repository.Repository
}

func NewEventService(repo *repository.Repository) *EventService {
	return &EventService{repo: repo}
}

// CreateEvent opens a new betting event with numCandidates candidates and
// returns it. The assigned event id equals the event count before the
// creation, so ids are 0-based and dense.
func (s *EventService) CreateEvent(
	ctx context.Context,
	creatorID uint,
	name string,
	numCandidates int,
) (*models.Event, error) {
	if numCandidates <= 0 {
		return nil, models.ErrInvalidCandidateCount
	}

	var event *models.Event

	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		count, err := tx.CountEvents(ctx)
		if err != nil {
			return fmt.Errorf("failed to count events: %w", err)
		}

		event = &models.Event{
			EventID:       count,
			CreatorID:     creatorID,
			Name:          name,
			NumCandidates: numCandidates,
			IsOpen:        true,
			Resolved:      false,
		}

		if err := tx.CreateEvent(ctx, event); err != nil {
			return fmt.Errorf("failed to create event: %w", err)
		}

		pools := make([]models.CandidatePool, numCandidates)
		for i := range pools {
			pools[i] = models.CandidatePool{EventID: event.EventID, Candidate: i}
		}

		if err := tx.CreateCandidatePools(ctx, pools); err != nil {
			return fmt.Errorf("failed to create candidate pools: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("Event %d created by user %d: %q with %d candidates",
		event.EventID, creatorID, name, numCandidates)

	return event, nil
}

// GetEvent retrieves an event by its ledger index
func (s *EventService) GetEvent(ctx context.Context, eventID int64) (*models.Event, error) {
	event, err := s.repo.GetEventByEventID(ctx, eventID)
	if err != nil {
		return nil, models.ErrEventNotFound
	}
	return event, nil
}

// ListEvents pages through the catalog newest-first
func (s *EventService) ListEvents(ctx context.Context, limit, offset int) ([]*models.Event, int64, error) {
	return s.repo.ListEvents(ctx, limit, offset)
}

// EventCount returns the number of events ever created
func (s *EventService) EventCount(ctx context.Context) (int64, error) {
	return s.repo.CountEvents(ctx)
}

// CloseBetting flips an event's open flag exactly once. Only the creator
// may close; existing bets are untouched.
func (s *EventService) CloseBetting(ctx context.Context, eventID int64, callerID uint) error {
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		event, err := tx.GetEventByEventID(ctx, eventID)
		if err != nil {
			return models.ErrEventNotFound
		}

		if event.CreatorID != callerID {
			return models.ErrNotCreator
		}

		if !event.IsOpen {
			return models.ErrBettingAlreadyClosed
		}

		event.IsOpen = false
		now := time.Now()
		event.ClosedAt = &now

		if err := tx.UpdateEvent(ctx, event); err != nil {
			return fmt.Errorf("failed to close betting: %w", err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	log.Printf("Betting closed on event %d by user %d", eventID, callerID)

	return nil
}
