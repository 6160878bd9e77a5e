package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "ledger/internal/errors"
	"ledger/internal/services"
)

// AccountHandler handles account-related requests.
type AccountHandler struct {
	accountService   services.AccountServicer
	movementService  services.MovementServicer
	valuationService services.ValuationServicer
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(
	accountService services.AccountServicer,
	movementService services.MovementServicer,
	valuationService services.ValuationServicer,
) *AccountHandler {
	return &AccountHandler{
		accountService:   accountService,
		movementService:  movementService,
		valuationService: valuationService,
	}
}

// CreateAccountRequest represents the request payload for creating an account
type CreateAccountRequest struct {
	Name     string `json:"name" binding:"required,max=255"`
	Balance  int64  `json:"balance" binding:"gte=0"`
	ClientID *int64 `json:"client_id" binding:"required"`
}

// UpdateAccountRequest represents the request payload for replacing an
// account's name and balance.
type UpdateAccountRequest struct {
	Name    string `json:"name" binding:"required,max=255"`
	Balance int64  `json:"balance"`
}

// CreateAccount handles the creation of a new account for an existing client
// @Summary     Create an account
// @Tags        accounts
// @Accept      json
// @Produce     json
// @Param       request body CreateAccountRequest true "Account details"
// @Success     201 {object} models.Account "Account created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Client not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /accounts [post]
func (h *AccountHandler) CreateAccount(c *gin.Context) {
	var req CreateAccountRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	clientID, err := bodyID(*req.ClientID, apperrors.ErrClientNotFound)
	if err != nil {
		respondWithError(c, err)
		return
	}

	account, err := h.accountService.CreateAccount(clientID, req.Name, req.Balance)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, account)
}

// GetAccount handles the retrieval of an account
// @Summary     Get account by ID
// @Tags        accounts
// @Produce     json
// @Param       id path int true "Account ID"
// @Success     200 {object} models.Account "Account details"
// @Failure     400 {object} ErrorResponse "Invalid account ID"
// @Failure     404 {object} ErrorResponse "Account not found"
// @Router      /accounts/{id} [get]
func (h *AccountHandler) GetAccount(c *gin.Context) {
	accountID, err := parsePathID(c, "id", apperrors.ErrAccountNotFound)
	if err != nil {
		respondWithError(c, err)
		return
	}

	account, err := h.accountService.GetAccountByID(accountID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, account)
}

// UpdateAccount handles replacing an account's name and balance
// @Summary     Update an account
// @Tags        accounts
// @Accept      json
// @Produce     json
// @Param       id      path int                  true "Account ID"
// @Param       request body UpdateAccountRequest true "Account details"
// @Success     200 {object} models.Account "Account updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Account not found"
// @Router      /accounts/{id} [put]
func (h *AccountHandler) UpdateAccount(c *gin.Context) {
	accountID, err := parsePathID(c, "id", apperrors.ErrAccountNotFound)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateAccountRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	account, err := h.accountService.UpdateAccount(accountID, req.Name, req.Balance)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, account)
}

// DeleteAccount handles the deletion of an account. Its movements are kept.
// @Summary     Delete an account
// @Tags        accounts
// @Param       id path int true "Account ID"
// @Success     204 "Account deleted"
// @Failure     400 {object} ErrorResponse "Invalid account ID"
// @Failure     404 {object} ErrorResponse "Account not found"
// @Router      /accounts/{id} [delete]
func (h *AccountHandler) DeleteAccount(c *gin.Context) {
	accountID, err := parsePathID(c, "id", apperrors.ErrAccountNotFound)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.accountService.DeleteAccount(accountID); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetAccountMovements handles listing the movements of an account
// @Summary     List account movements
// @Description Movements are ordered by date, then by ID
// @Tags        accounts
// @Produce     json
// @Param       id path int true "Account ID"
// @Success     200 {array}  models.Movement "Movements"
// @Failure     400 {object} ErrorResponse "Invalid account ID"
// @Failure     404 {object} ErrorResponse "Account not found"
// @Router      /accounts/{id}/movements [get]
func (h *AccountHandler) GetAccountMovements(c *gin.Context) {
	accountID, err := parsePathID(c, "id", apperrors.ErrAccountNotFound)
	if err != nil {
		respondWithError(c, err)
		return
	}

	movements, err := h.movementService.GetAccountMovements(accountID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, movements)
}

// GetBalanceUSD handles valuing an account balance in US dollars
// @Summary     Get account balance in USD
// @Description Divides the balance by the current Dolar Bolsa sell rate
// @Tags        accounts
// @Produce     json
// @Param       id path int true "Account ID"
// @Success     200 {object} services.BalanceValuation "Valuation"
// @Failure     400 {object} ErrorResponse "Invalid account ID"
// @Failure     404 {object} ErrorResponse "Account not found"
// @Failure     503 {object} ErrorResponse "Currency rate unavailable"
// @Router      /accounts/{id}/balance/usd [get]
func (h *AccountHandler) GetBalanceUSD(c *gin.Context) {
	accountID, err := parsePathID(c, "id", apperrors.ErrAccountNotFound)
	if err != nil {
		respondWithError(c, err)
		return
	}

	valuation, err := h.valuationService.GetBalanceUSD(c.Request.Context(), accountID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, valuation)
}
