package services

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"ledger/internal/models"
)

// ClientServicer defines the contract for client-related business logic.
type ClientServicer interface {
	CreateClient(name, email string) (*models.Client, error)
	GetClientByID(clientID uint) (*models.Client, error)
	UpdateClient(clientID uint, name, email string) (*models.Client, error)
	DeleteClient(clientID uint) error
}

// AccountServicer defines the contract for account-related business logic.
type AccountServicer interface {
	CreateAccount(clientID uint, name string, balance int64) (*models.Account, error)
	GetAccountByID(accountID uint) (*models.Account, error)
	UpdateAccount(accountID uint, name string, balance int64) (*models.Account, error)
	DeleteAccount(accountID uint) error
	UpdateAccountBalance(tx *gorm.DB, account *models.Account, balance int64) error
}

// CategoryServicer defines the contract for category-related business logic.
type CategoryServicer interface {
	CreateCategory(name string) (*models.Category, error)
	GetAllCategories() ([]models.Category, error)
	GetCategoryByID(categoryID uint) (*models.Category, error)
	UpdateCategory(categoryID uint, name string) (*models.Category, error)
	DeleteCategory(categoryID uint) error
}

// AssociationServicer defines the contract for client/category links.
type AssociationServicer interface {
	AddCategoryToClient(clientID, categoryID uint) (*models.ClientCategory, error)
	GetClientCategories(clientID uint) ([]models.Category, error)
	GetCategoryClients(categoryID uint) ([]models.Client, error)
	RemoveCategoryFromClient(clientID, categoryID uint) error
}

// MovementServicer defines the contract for movements and their balance effect.
type MovementServicer interface {
	CreateMovement(accountID uint, movementType models.MovementType, amount int64, date models.Date) (*models.Movement, error)
	GetMovementByID(movementID uint) (*models.Movement, error)
	GetAccountMovements(accountID uint) ([]models.Movement, error)
	DeleteMovement(movementID uint) error
}

// BalanceValuation is an account balance expressed in the reference currency.
type BalanceValuation struct {
	AccountID  uint            `json:"account_id"`
	Balance    int64           `json:"balance"`
	Currency   string          `json:"currency"`
	Rate       decimal.Decimal `json:"rate"`
	BalanceUSD decimal.Decimal `json:"balance_usd"`
}

// ValuationServicer converts account balances with an external rate.
type ValuationServicer interface {
	GetBalanceUSD(ctx context.Context, accountID uint) (*BalanceValuation, error)
}

// MaintenanceServicer defines store-wide maintenance operations.
type MaintenanceServicer interface {
	ResetAll() error
}

// RateSource returns how many local currency units buy one US dollar.
type RateSource interface {
	Rate(ctx context.Context) (decimal.Decimal, error)
}
