package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "ledger/internal/errors"
	"ledger/internal/models"
	"ledger/internal/services"
)

// MovementHandler handles movement-related requests.
type MovementHandler struct {
	movementService services.MovementServicer
}

// NewMovementHandler creates a new MovementHandler.
func NewMovementHandler(movementService services.MovementServicer) *MovementHandler {
	return &MovementHandler{movementService: movementService}
}

// CreateMovementRequest represents the request payload for recording a movement
type CreateMovementRequest struct {
	Type      models.MovementType `json:"type" binding:"required,movement_type" enums:"income,expense"`
	Amount    int64               `json:"amount" binding:"gte=0"`
	Date      *models.Date        `json:"date" binding:"required" swaggertype:"string" example:"2024-03-15"`
	AccountID *int64              `json:"account_id" binding:"required"`
}

// CreateMovement handles recording a movement and applying it to the account balance
// @Summary     Create a movement
// @Description Income raises the balance; an expense larger than the balance is rejected
// @Tags        movements
// @Accept      json
// @Produce     json
// @Param       request body CreateMovementRequest true "Movement details"
// @Success     201 {object} models.Movement "Movement created"
// @Failure     400 {object} ErrorResponse "Invalid input or insufficient balance"
// @Failure     404 {object} ErrorResponse "Account not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /movements [post]
func (h *MovementHandler) CreateMovement(c *gin.Context) {
	var req CreateMovementRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	accountID, err := bodyID(*req.AccountID, apperrors.ErrAccountNotFound)
	if err != nil {
		respondWithError(c, err)
		return
	}

	movement, err := h.movementService.CreateMovement(accountID, req.Type, req.Amount, *req.Date)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, movement)
}

// GetMovement handles the retrieval of a movement
// @Summary     Get movement by ID
// @Tags        movements
// @Produce     json
// @Param       id path int true "Movement ID"
// @Success     200 {object} models.Movement "Movement details"
// @Failure     400 {object} ErrorResponse "Invalid movement ID"
// @Failure     404 {object} ErrorResponse "Movement not found"
// @Router      /movements/{id} [get]
func (h *MovementHandler) GetMovement(c *gin.Context) {
	movementID, err := parsePathID(c, "id", apperrors.ErrMovementNotFound)
	if err != nil {
		respondWithError(c, err)
		return
	}

	movement, err := h.movementService.GetMovementByID(movementID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, movement)
}

// DeleteMovement handles removing a movement and reversing its balance effect
// @Summary     Delete a movement
// @Tags        movements
// @Param       id path int true "Movement ID"
// @Success     204 "Movement deleted"
// @Failure     400 {object} ErrorResponse "Invalid movement ID"
// @Failure     404 {object} ErrorResponse "Movement not found"
// @Router      /movements/{id} [delete]
func (h *MovementHandler) DeleteMovement(c *gin.Context) {
	movementID, err := parsePathID(c, "id", apperrors.ErrMovementNotFound)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.movementService.DeleteMovement(movementID); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
