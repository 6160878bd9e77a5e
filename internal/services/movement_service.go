package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "ledger/internal/errors"
	"ledger/internal/logger"
	"ledger/internal/models"
)

// movementService records movements and keeps account balances in step.
type movementService struct {
	db             *gorm.DB
	accountService AccountServicer
}

// NewMovementService creates a new MovementServicer.
func NewMovementService(db *gorm.DB, accountService AccountServicer) MovementServicer {
	return &movementService{
		db:             db,
		accountService: accountService,
	}
}

// CreateMovement records a movement against an account and applies it to
// the account balance. Both writes commit together or not at all.
func (s *movementService) CreateMovement(
	accountID uint,
	movementType models.MovementType,
	amount int64,
	date models.Date,
) (*models.Movement, error) {
	if !movementType.Valid() {
		return nil, apperrors.ErrInvalidMovementType
	}
	if amount < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must not be negative")
	}
	if date.IsZero() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "date is required")
	}

	var movement *models.Movement
	err := s.db.Transaction(func(tx *gorm.DB) error {
		account, err := findAccount(tx, accountID)
		if err != nil {
			return err
		}

		balance, err := ApplyMovement(account.Balance, movementType, amount)
		if err != nil {
			return err
		}

		movement = &models.Movement{
			Type:      movementType,
			Amount:    amount,
			Date:      date,
			AccountID: &account.ID,
		}
		if err := tx.Create(movement).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		return s.accountService.UpdateAccountBalance(tx, account, balance)
	})
	if err != nil {
		return nil, err
	}
	return movement, nil
}

// GetMovementByID retrieves a movement by ID
func (s *movementService) GetMovementByID(movementID uint) (*models.Movement, error) {
	return findMovement(s.db, movementID)
}

// GetAccountMovements lists an account's movements ordered by date, then ID.
func (s *movementService) GetAccountMovements(accountID uint) ([]models.Movement, error) {
	if _, err := findAccount(s.db, accountID); err != nil {
		return nil, err
	}

	movements := []models.Movement{}
	if err := s.db.Where("account_id = ?", accountID).
		Order("date ASC").
		Order("id ASC").
		Find(&movements).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return movements, nil
}

// DeleteMovement removes a movement and reverses its effect on the account
// balance. A movement whose account was deleted is removed without any
// balance change.
func (s *movementService) DeleteMovement(movementID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		movement, err := findMovement(tx, movementID)
		if err != nil {
			return err
		}

		if movement.AccountID != nil {
			account, err := findAccount(tx, *movement.AccountID)
			switch {
			case errors.Is(err, apperrors.ErrAccountNotFound):
				logger.Get().Warnw("Deleting movement of missing account",
					"movement_id", movement.ID, "account_id", *movement.AccountID)
			case err != nil:
				return err
			default:
				balance, err := ReverseMovement(account.Balance, movement.Type, movement.Amount)
				if err != nil {
					return err
				}
				if err := s.accountService.UpdateAccountBalance(tx, account, balance); err != nil {
					return err
				}
			}
		} else {
			logger.Get().Warnw("Deleting orphaned movement", "movement_id", movement.ID)
		}

		if err := tx.Delete(movement).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}

func findMovement(db *gorm.DB, movementID uint) (*models.Movement, error) {
	var movement models.Movement
	if err := db.Where("id = ?", movementID).First(&movement).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrMovementNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &movement, nil
}
