package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "ledger/internal/errors"
	"ledger/internal/models"
)

// accountService handles account-related business logic.
type accountService struct {
	db *gorm.DB
}

// NewAccountService creates a new AccountServicer.
func NewAccountService(db *gorm.DB) AccountServicer {
	return &accountService{db: db}
}

// CreateAccount creates a new account owned by an existing client
func (s *accountService) CreateAccount(clientID uint, name string, balance int64) (*models.Account, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "account name is required")
	}
	if balance < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "balance must not be negative")
	}

	client, err := findClient(s.db, clientID)
	if err != nil {
		return nil, err
	}

	account := &models.Account{
		Name:     name,
		Balance:  balance,
		ClientID: &client.ID,
	}
	if err := s.db.Create(account).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return account, nil
}

// GetAccountByID retrieves an account by ID
func (s *accountService) GetAccountByID(accountID uint) (*models.Account, error) {
	return findAccount(s.db, accountID)
}

// UpdateAccount replaces the account's name and balance. The owning client
// cannot be changed. Negative balances are accepted.
func (s *accountService) UpdateAccount(accountID uint, name string, balance int64) (*models.Account, error) {
	account, err := findAccount(s.db, accountID)
	if err != nil {
		return nil, err
	}

	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "account name is required")
	}

	updates := map[string]interface{}{
		"name":    name,
		"balance": balance,
	}
	if err := s.db.Model(account).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return account, nil
}

// DeleteAccount deletes an account. Its movements are kept with account_id
// cleared.
func (s *accountService) DeleteAccount(accountID uint) error {
	account, err := findAccount(s.db, accountID)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Movement{}).
			Where("account_id = ?", account.ID).
			Update("account_id", nil).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		if err := tx.Delete(account).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}

// UpdateAccountBalance persists a new balance for the account within tx.
func (s *accountService) UpdateAccountBalance(tx *gorm.DB, account *models.Account, balance int64) error {
	account.Balance = balance
	if err := tx.Model(account).Update("balance", account.Balance).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// findAccount loads an account by ID using the given connection or transaction.
func findAccount(db *gorm.DB, accountID uint) (*models.Account, error) {
	var account models.Account
	if err := db.Where("id = ?", accountID).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &account, nil
}
