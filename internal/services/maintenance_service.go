package services

import (
	"gorm.io/gorm"

	"ledger/internal/database"
	apperrors "ledger/internal/errors"
)

// maintenanceService runs store-wide maintenance tasks.
type maintenanceService struct {
	db *gorm.DB
}

// NewMaintenanceService creates a new MaintenanceServicer.
func NewMaintenanceService(db *gorm.DB) MaintenanceServicer {
	return &maintenanceService{db: db}
}

// ResetAll deletes every row of every table, children first, in a single
// transaction.
func (s *maintenanceService) ResetAll() error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		wipe := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
		for i := len(database.Models) - 1; i >= 0; i-- {
			if err := wipe.Delete(database.Models[i]).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}
		return nil
	})
}
