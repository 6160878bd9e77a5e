package services

import (
	"gorm.io/gorm"

	apperrors "ledger/internal/errors"
	"ledger/internal/models"
)

// associationService manages the many-to-many links between clients and
// categories.
type associationService struct {
	db *gorm.DB
}

// NewAssociationService creates a new AssociationServicer.
func NewAssociationService(db *gorm.DB) AssociationServicer {
	return &associationService{db: db}
}

// AddCategoryToClient links a category to a client. Linking the same pair
// twice stores a second row.
func (s *associationService) AddCategoryToClient(clientID, categoryID uint) (*models.ClientCategory, error) {
	if _, err := findClient(s.db, clientID); err != nil {
		return nil, err
	}
	if _, err := findCategory(s.db, categoryID); err != nil {
		return nil, err
	}

	link := &models.ClientCategory{ClientID: clientID, CategoryID: categoryID}
	if err := s.db.Create(link).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return link, nil
}

// GetClientCategories lists the distinct categories linked to a client.
func (s *associationService) GetClientCategories(clientID uint) ([]models.Category, error) {
	if _, err := findClient(s.db, clientID); err != nil {
		return nil, err
	}

	linked := s.db.Model(&models.ClientCategory{}).
		Select("category_id").
		Where("client_id = ?", clientID)

	categories := []models.Category{}
	if err := s.db.Where("id IN (?)", linked).Order("id").Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return categories, nil
}

// GetCategoryClients lists the distinct clients linked to a category.
func (s *associationService) GetCategoryClients(categoryID uint) ([]models.Client, error) {
	if _, err := findCategory(s.db, categoryID); err != nil {
		return nil, err
	}

	linked := s.db.Model(&models.ClientCategory{}).
		Select("client_id").
		Where("category_id = ?", categoryID)

	clients := []models.Client{}
	if err := s.db.Where("id IN (?)", linked).Order("id").Find(&clients).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return clients, nil
}

// RemoveCategoryFromClient deletes every link between the client and the
// category.
func (s *associationService) RemoveCategoryFromClient(clientID, categoryID uint) error {
	if _, err := findClient(s.db, clientID); err != nil {
		return err
	}
	if _, err := findCategory(s.db, categoryID); err != nil {
		return err
	}

	result := s.db.Where("client_id = ? AND category_id = ?", clientID, categoryID).
		Delete(&models.ClientCategory{})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrAssociationNotFound
	}
	return nil
}
