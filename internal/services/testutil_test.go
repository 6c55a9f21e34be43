package services

import (
	"context"
	"fmt"
	"testing"

	"betting-ledger/internal/models"
	"betting-ledger/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestRepo opens a fresh in-memory database for one test. The DSN is
// keyed by the test name so parallel tests never share state.
func setupTestRepo(t *testing.T) *repository.Repository {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Event{},
		&models.CandidatePool{},
		&models.Bet{},
		&models.LedgerTransaction{},
	)
	if err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	return repository.NewRepository(db)
}

// createTestUser inserts a user with the given balance and returns its ID
func createTestUser(t *testing.T, repo *repository.Repository, wallet string, balance int64) uint {
	t.Helper()

	user := &models.User{WalletAddress: wallet, Balance: balance}
	if err := repo.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("failed to create user %s: %v", wallet, err)
	}
	return user.ID
}

// userBalance reads a user's current balance
func userBalance(t *testing.T, repo *repository.Repository, userID uint) int64 {
	t.Helper()

	user, err := repo.GetUserByID(context.Background(), userID)
	if err != nil {
		t.Fatalf("failed to get user %d: %v", userID, err)
	}
	return user.Balance
}
