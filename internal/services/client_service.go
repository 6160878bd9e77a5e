package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "ledger/internal/errors"
	"ledger/internal/models"
)

// clientService handles client-related business logic.
type clientService struct {
	db *gorm.DB
}

// NewClientService creates a new ClientServicer.
func NewClientService(db *gorm.DB) ClientServicer {
	return &clientService{db: db}
}

// CreateClient creates a new client
func (s *clientService) CreateClient(name, email string) (*models.Client, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "client name is required")
	}

	client := &models.Client{Name: name, Email: email}
	if err := s.db.Create(client).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return client, nil
}

// GetClientByID retrieves a client by ID
func (s *clientService) GetClientByID(clientID uint) (*models.Client, error) {
	return findClient(s.db, clientID)
}

// UpdateClient replaces the client's name and email.
func (s *clientService) UpdateClient(clientID uint, name, email string) (*models.Client, error) {
	client, err := findClient(s.db, clientID)
	if err != nil {
		return nil, err
	}

	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "client name is required")
	}

	updates := map[string]interface{}{
		"name":  name,
		"email": email,
	}
	if err := s.db.Model(client).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return client, nil
}

// DeleteClient deletes a client. Its accounts are kept with client_id
// cleared, and its category links are removed.
func (s *clientService) DeleteClient(clientID uint) error {
	client, err := findClient(s.db, clientID)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Account{}).
			Where("client_id = ?", client.ID).
			Update("client_id", nil).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		if err := tx.Where("client_id = ?", client.ID).Delete(&models.ClientCategory{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		if err := tx.Delete(client).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}

// findClient loads a client by ID using the given connection or transaction.
func findClient(db *gorm.DB, clientID uint) (*models.Client, error) {
	var client models.Client
	if err := db.Where("id = ?", clientID).First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrClientNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &client, nil
}
