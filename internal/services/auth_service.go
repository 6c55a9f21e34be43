package services

import (
	"context"
	"fmt"
	"log"

	"gorm.io/gorm"

	"betting-ledger/internal/models"
	"betting-ledger/internal/repository"

	"github.com/google/uuid"
)

// AuthService handles authentication business logic
type AuthService struct {
	db             *gorm.DB
	repo           *repository.Repository
	initialBalance int64
}

// NewAuthService creates a new AuthService. New accounts are credited
// initialBalance base units so they can stake immediately.
func NewAuthService(db *gorm.DB, initialBalance int64) *AuthService {
	return &AuthService{
		db:             db,
		repo:           repository.NewRepository(db),
		initialBalance: initialBalance,
	}
}

// ProcessWalletLogin finds or creates a user by wallet address
func (s *AuthService) ProcessWalletLogin(ctx context.Context, walletAddress string) (*models.User, error) {
	var user models.User

	result := s.db.WithContext(ctx).Where("wallet_address = ?", walletAddress).First(&user)

	if result.Error == gorm.ErrRecordNotFound {
		// New user: create account with the initial balance
		err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
			user = models.User{
				WalletAddress: walletAddress,
				Balance:       s.initialBalance,
			}

			if err := tx.CreateUser(ctx, &user); err != nil {
				return fmt.Errorf("failed to create user: %w", err)
			}

			if s.initialBalance > 0 {
				receipt := &models.LedgerTransaction{
					ID:     uuid.New(),
					UserID: user.ID,
					Type:   models.TransactionTypeCredit,
					Amount: s.initialBalance,
				}
				if err := tx.CreateLedgerTransaction(ctx, receipt); err != nil {
					return fmt.Errorf("failed to record initial credit: %w", err)
				}
			}

			return nil
		})
		if err != nil {
			return nil, err
		}

		log.Printf("New user created: wallet=%s (ID: %d)", walletAddress, user.ID)
	} else if result.Error != nil {
		return nil, fmt.Errorf("database error: %w", result.Error)
	} else {
		log.Printf("User logged in: wallet=%s (ID: %d)", walletAddress, user.ID)
	}

	return &user, nil
}

// GetUserByID retrieves a user by their ID
func (s *AuthService) GetUserByID(ctx context.Context, userID uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("id = ?", userID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
