package repository

import (
	"context"

	"betting-ledger/internal/models"

	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Transaction runs fn inside a single database transaction. The Repository
// handed to fn is bound to that transaction, so every mutation either
// commits together or rolls back together.
func (r *Repository) Transaction(ctx context.Context, fn func(*Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Repository{db: tx})
	})
}

// CreateEvent creates a new event
func (r *Repository) CreateEvent(ctx context.Context, event *models.Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

// GetEventByEventID retrieves an event by its ledger index
func (r *Repository) GetEventByEventID(ctx context.Context, eventID int64) (*models.Event, error) {
	var event models.Event
	err := r.db.WithContext(ctx).Where("event_id = ?", eventID).First(&event).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// UpdateEvent updates an event
func (r *Repository) UpdateEvent(ctx context.Context, event *models.Event) error {
	return r.db.WithContext(ctx).Save(event).Error
}

// CountEvents returns the number of events ever created, which is also the
// next event_id to assign.
func (r *Repository) CountEvents(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Event{}).Count(&count).Error
	return count, err
}

// ListEvents pages through the catalog newest-first
func (r *Repository) ListEvents(ctx context.Context, limit, offset int) ([]*models.Event, int64, error) {
	var events []*models.Event
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Event{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Order("event_id DESC").
		Limit(limit).
		Offset(offset).
		Find(&events).Error
	if err != nil {
		return nil, 0, err
	}

	return events, total, nil
}

// CreateCandidatePools creates the zeroed pool rows for a new event
func (r *Repository) CreateCandidatePools(ctx context.Context, pools []models.CandidatePool) error {
	return r.db.WithContext(ctx).Create(&pools).Error
}

// GetCandidatePool retrieves one candidate's pool row
func (r *Repository) GetCandidatePool(ctx context.Context, eventID int64, candidate int) (*models.CandidatePool, error) {
	var pool models.CandidatePool
	err := r.db.WithContext(ctx).
		Where("event_id = ? AND candidate = ?", eventID, candidate).
		First(&pool).Error
	if err != nil {
		return nil, err
	}
	return &pool, nil
}

// GetCandidatePools retrieves all pool rows for an event in candidate order
func (r *Repository) GetCandidatePools(ctx context.Context, eventID int64) ([]models.CandidatePool, error) {
	var pools []models.CandidatePool
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("candidate ASC").
		Find(&pools).Error
	if err != nil {
		return nil, err
	}
	return pools, nil
}

// AddToCandidatePool adds amount to a candidate's running total
func (r *Repository) AddToCandidatePool(ctx context.Context, eventID int64, candidate int, amount int64) error {
	return r.db.WithContext(ctx).
		Model(&models.CandidatePool{}).
		Where("event_id = ? AND candidate = ?", eventID, candidate).
		Update("total", gorm.Expr("total + ?", amount)).Error
}

// CreateBet creates a new bet
func (r *Repository) CreateBet(ctx context.Context, bet *models.Bet) error {
	return r.db.WithContext(ctx).Create(bet).Error
}

// GetUserBet retrieves a user's bet on an event, or nil if they never bet.
// The nil return is deliberate: callers must be able to tell "no bet" apart
// from any real bet.
func (r *Repository) GetUserBet(ctx context.Context, eventID int64, userID uint) (*models.Bet, error) {
	var bet models.Bet
	err := r.db.WithContext(ctx).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		First(&bet).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &bet, nil
}

// GetUserBets retrieves all bets by a user, newest first
func (r *Repository) GetUserBets(ctx context.Context, userID uint, limit, offset int) ([]*models.Bet, int64, error) {
	var bets []*models.Bet
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Bet{}).
		Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&bets).Error
	if err != nil {
		return nil, 0, err
	}

	return bets, total, nil
}

// MarkBetClaimed flips claimed false->true. The WHERE clause on claimed
// plus the rows-affected check make the flip at-most-once even if two
// claims race or a payout re-enters the claim path.
func (r *Repository) MarkBetClaimed(ctx context.Context, betID uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Bet{}).
		Where("id = ? AND claimed = ?", betID, false).
		Updates(map[string]interface{}{
			"claimed":    true,
			"claimed_at": gorm.Expr("CURRENT_TIMESTAMP"),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// CreateUser creates a new user account
func (r *Repository) CreateUser(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// GetUserByID retrieves a user by ID
func (r *Repository) GetUserByID(ctx context.Context, userID uint) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("id = ?", userID).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// DebitBalance subtracts amount from a user's balance. The balance guard in
// the WHERE clause rejects overdraws; the caller checks the returned flag.
func (r *Repository) DebitBalance(ctx context.Context, userID uint, amount int64) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ? AND balance >= ?", userID, amount).
		Update("balance", gorm.Expr("balance - ?", amount))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// CreditBalance adds amount to a user's balance
func (r *Repository) CreditBalance(ctx context.Context, userID uint, amount int64) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		Update("balance", gorm.Expr("balance + ?", amount)).Error
}

// CreateLedgerTransaction records a value-movement receipt
func (r *Repository) CreateLedgerTransaction(ctx context.Context, tx *models.LedgerTransaction) error {
	return r.db.WithContext(ctx).Create(tx).Error
}

// GetUserTransactions retrieves a user's receipts, newest first
func (r *Repository) GetUserTransactions(ctx context.Context, userID uint, limit, offset int) ([]*models.LedgerTransaction, int64, error) {
	var txs []*models.LedgerTransaction
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.LedgerTransaction{}).
		Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&txs).Error
	if err != nil {
		return nil, 0, err
	}

	return txs, total, nil
}
