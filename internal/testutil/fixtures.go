package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"ledger/internal/models"

	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestClient creates a client with a unique name and email.
func CreateTestClient(t *testing.T, db *gorm.DB) *models.Client {
	t.Helper()

	n := nextID()
	client := &models.Client{
		Name:  fmt.Sprintf("Client %d", n),
		Email: fmt.Sprintf("client%d@test.com", n),
	}
	if err := db.Create(client).Error; err != nil {
		t.Fatalf("failed to create test client: %v", err)
	}
	return client
}

// CreateTestAccount creates an account for the client with the given balance.
func CreateTestAccount(t *testing.T, db *gorm.DB, clientID uint, balance int64) *models.Account {
	t.Helper()

	account := &models.Account{
		Name:     fmt.Sprintf("Test Account %d", nextID()),
		Balance:  balance,
		ClientID: &clientID,
	}
	if err := db.Create(account).Error; err != nil {
		t.Fatalf("failed to create test account: %v", err)
	}
	return account
}

// CreateTestCategory creates a category with a unique name.
func CreateTestCategory(t *testing.T, db *gorm.DB) *models.Category {
	t.Helper()

	category := &models.Category{Name: fmt.Sprintf("Test Category %d", nextID())}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestMovement inserts a movement row directly, without touching the
// account balance.
func CreateTestMovement(t *testing.T, db *gorm.DB, accountID uint, movementType models.MovementType, amount int64) *models.Movement {
	t.Helper()

	movement := &models.Movement{
		Type:      movementType,
		Amount:    amount,
		Date:      models.DateOf(time.Now()),
		AccountID: &accountID,
	}
	if err := db.Create(movement).Error; err != nil {
		t.Fatalf("failed to create test movement: %v", err)
	}
	return movement
}

// CreateTestAssociation links a client to a category.
func CreateTestAssociation(t *testing.T, db *gorm.DB, clientID, categoryID uint) *models.ClientCategory {
	t.Helper()

	link := &models.ClientCategory{ClientID: clientID, CategoryID: categoryID}
	if err := db.Create(link).Error; err != nil {
		t.Fatalf("failed to create test association: %v", err)
	}
	return link
}

// ReloadAccount reads the account's current row.
func ReloadAccount(t *testing.T, db *gorm.DB, accountID uint) *models.Account {
	t.Helper()

	var account models.Account
	if err := db.First(&account, accountID).Error; err != nil {
		t.Fatalf("failed to reload account %d: %v", accountID, err)
	}
	return &account
}
