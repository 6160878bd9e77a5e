package services

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "ledger/internal/errors"
)

// ValuationCurrency is the reference currency balances are converted to.
const ValuationCurrency = "USD"

// valuationService converts account balances with a RateSource.
type valuationService struct {
	db    *gorm.DB
	rates RateSource
}

// NewValuationService creates a new ValuationServicer.
func NewValuationService(db *gorm.DB, rates RateSource) ValuationServicer {
	return &valuationService{db: db, rates: rates}
}

// GetBalanceUSD divides the account balance by the current reference rate,
// rounded to two decimal places.
func (s *valuationService) GetBalanceUSD(ctx context.Context, accountID uint) (*BalanceValuation, error) {
	account, err := findAccount(s.db.WithContext(ctx), accountID)
	if err != nil {
		return nil, err
	}

	rate, err := s.rates.Rate(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrRateUnavailable) {
			return nil, err
		}
		return nil, apperrors.Wrap(apperrors.ErrRateUnavailable, err)
	}
	if !rate.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrRateUnavailable, "currency rate must be positive")
	}

	return &BalanceValuation{
		AccountID:  account.ID,
		Balance:    account.Balance,
		Currency:   ValuationCurrency,
		Rate:       rate,
		BalanceUSD: decimal.NewFromInt(account.Balance).Div(rate).Round(2),
	}, nil
}
