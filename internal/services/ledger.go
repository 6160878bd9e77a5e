package services

import (
	"math"

	apperrors "ledger/internal/errors"
	"ledger/internal/models"
)

var errBalanceOverflow = apperrors.WithMessage(apperrors.ErrInvalidInput, "amount overflows balance")

// ApplyMovement returns the balance after recording a new movement.
// Income is accepted unless it overflows the balance; an expense larger than
// the balance fails with ErrInsufficientBalance.
func ApplyMovement(balance int64, movementType models.MovementType, amount int64) (int64, error) {
	switch movementType {
	case models.MovementTypeIncome:
		return addChecked(balance, amount)
	case models.MovementTypeExpense:
		if balance < amount {
			return balance, apperrors.ErrInsufficientBalance
		}
		return balance - amount, nil
	default:
		return balance, apperrors.ErrInvalidMovementType
	}
}

// ReverseMovement returns the balance after removing a recorded movement.
// There is no balance guard here: reversing an income whose funds were
// already spent leaves the account negative.
func ReverseMovement(balance int64, movementType models.MovementType, amount int64) (int64, error) {
	switch movementType {
	case models.MovementTypeIncome:
		if amount > 0 && balance < math.MinInt64+amount {
			return balance, errBalanceOverflow
		}
		return balance - amount, nil
	case models.MovementTypeExpense:
		return addChecked(balance, amount)
	default:
		return balance, apperrors.ErrInvalidMovementType
	}
}

// addChecked adds a non-negative amount to balance without wrapping.
func addChecked(balance, amount int64) (int64, error) {
	if amount > 0 && balance > math.MaxInt64-amount {
		return balance, errBalanceOverflow
	}
	return balance + amount, nil
}
