package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"betting-ledger/internal/models"
	"betting-ledger/internal/repository"
)

// UserService handles user-related business logic
type UserService struct {
	db   *gorm.DB
	repo *repository.Repository
}

// NewUserService creates a new UserService
func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db, repo: repository.NewRepository(db)}
}

// GetUserByID retrieves a user by ID
func (s *UserService) GetUserByID(ctx context.Context, userID uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("user not found")
		}
		return nil, err
	}
	return &user, nil
}

// GetUserTransactions retrieves a user's value-movement receipts
func (s *UserService) GetUserTransactions(
	ctx context.Context,
	userID uint,
	limit, offset int,
) ([]*models.LedgerTransaction, int64, error) {
	return s.repo.GetUserTransactions(ctx, userID, limit, offset)
}
