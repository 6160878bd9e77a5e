package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "ledger/internal/errors"
	"ledger/internal/services"
)

// AssociationHandler handles links between clients and categories.
type AssociationHandler struct {
	associationService services.AssociationServicer
}

// NewAssociationHandler creates a new AssociationHandler.
func NewAssociationHandler(associationService services.AssociationServicer) *AssociationHandler {
	return &AssociationHandler{associationService: associationService}
}

// AddCategoryRequest represents the request payload for linking a category
// to the client in the path. ClientID may be omitted; when present it must
// match the path.
type AddCategoryRequest struct {
	CategoryID *int64 `json:"category_id" binding:"required"`
	ClientID   *int64 `json:"client_id"`
}

// AddCategoryToClient handles linking a category to a client
// @Summary     Link a category to a client
// @Description Linking the same pair twice stores a second link
// @Tags        associations
// @Accept      json
// @Produce     json
// @Param       id      path int                true "Client ID"
// @Param       request body AddCategoryRequest true "Category to link"
// @Success     201 {object} models.ClientCategory "Link created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Client or category not found"
// @Router      /clients/{id}/categories [post]
func (h *AssociationHandler) AddCategoryToClient(c *gin.Context) {
	clientID, err := parsePathID(c, "id", apperrors.ErrClientNotFound)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req AddCategoryRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}
	if req.ClientID != nil && *req.ClientID != int64(clientID) {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "client_id does not match the path"))
		return
	}

	categoryID, err := bodyID(*req.CategoryID, apperrors.ErrCategoryNotFound)
	if err != nil {
		respondWithError(c, err)
		return
	}

	link, err := h.associationService.AddCategoryToClient(clientID, categoryID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, link)
}

// GetClientCategories handles listing the categories linked to a client
// @Summary     List a client's categories
// @Tags        associations
// @Produce     json
// @Param       id path int true "Client ID"
// @Success     200 {array}  models.Category "Categories"
// @Failure     400 {object} ErrorResponse "Invalid client ID"
// @Failure     404 {object} ErrorResponse "Client not found"
// @Router      /clients/{id}/categories [get]
func (h *AssociationHandler) GetClientCategories(c *gin.Context) {
	clientID, err := parsePathID(c, "id", apperrors.ErrClientNotFound)
	if err != nil {
		respondWithError(c, err)
		return
	}

	categories, err := h.associationService.GetClientCategories(clientID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, categories)
}

// GetCategoryClients handles listing the clients linked to a category
// @Summary     List a category's clients
// @Tags        associations
// @Produce     json
// @Param       id path int true "Category ID"
// @Success     200 {array}  models.Client "Clients"
// @Failure     400 {object} ErrorResponse "Invalid category ID"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Router      /categories/{id}/clients [get]
func (h *AssociationHandler) GetCategoryClients(c *gin.Context) {
	categoryID, err := parsePathID(c, "id", apperrors.ErrCategoryNotFound)
	if err != nil {
		respondWithError(c, err)
		return
	}

	clients, err := h.associationService.GetCategoryClients(categoryID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, clients)
}

// RemoveCategoryFromClient handles unlinking a category from a client
// @Summary     Unlink a category from a client
// @Tags        associations
// @Param       id         path int true "Client ID"
// @Param       categoryId path int true "Category ID"
// @Success     204 "Link removed"
// @Failure     400 {object} ErrorResponse "Invalid ID"
// @Failure     404 {object} ErrorResponse "Client, category or link not found"
// @Router      /clients/{id}/categories/{categoryId} [delete]
func (h *AssociationHandler) RemoveCategoryFromClient(c *gin.Context) {
	clientID, err := parsePathID(c, "id", apperrors.ErrClientNotFound)
	if err != nil {
		respondWithError(c, err)
		return
	}
	categoryID, err := parsePathID(c, "categoryId", apperrors.ErrCategoryNotFound)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.associationService.RemoveCategoryFromClient(clientID, categoryID); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
