package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "ledger/internal/errors"
	"ledger/internal/services"
)

// ClientHandler handles client-related requests.
type ClientHandler struct {
	clientService services.ClientServicer
}

// NewClientHandler creates a new ClientHandler.
func NewClientHandler(clientService services.ClientServicer) *ClientHandler {
	return &ClientHandler{clientService: clientService}
}

// ClientRequest represents the request payload for creating or replacing a client.
type ClientRequest struct {
	Name  string `json:"name" binding:"required,max=255"`
	Email string `json:"email" binding:"required,max=255"`
}

// CreateClient handles the creation of a new client
// @Summary     Create a client
// @Description Create a new client
// @Tags        clients
// @Accept      json
// @Produce     json
// @Param       request body ClientRequest true "Client details"
// @Success     201 {object} models.Client "Client created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /clients [post]
func (h *ClientHandler) CreateClient(c *gin.Context) {
	var req ClientRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	client, err := h.clientService.CreateClient(req.Name, req.Email)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, client)
}

// GetClient handles the retrieval of a client
// @Summary     Get client by ID
// @Tags        clients
// @Produce     json
// @Param       id path int true "Client ID"
// @Success     200 {object} models.Client "Client details"
// @Failure     400 {object} ErrorResponse "Invalid client ID"
// @Failure     404 {object} ErrorResponse "Client not found"
// @Router      /clients/{id} [get]
func (h *ClientHandler) GetClient(c *gin.Context) {
	clientID, err := parsePathID(c, "id", apperrors.ErrClientNotFound)
	if err != nil {
		respondWithError(c, err)
		return
	}

	client, err := h.clientService.GetClientByID(clientID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, client)
}

// UpdateClient handles replacing a client's name and email
// @Summary     Update a client
// @Tags        clients
// @Accept      json
// @Produce     json
// @Param       id      path int           true "Client ID"
// @Param       request body ClientRequest true "Client details"
// @Success     200 {object} models.Client "Client updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Client not found"
// @Router      /clients/{id} [put]
func (h *ClientHandler) UpdateClient(c *gin.Context) {
	clientID, err := parsePathID(c, "id", apperrors.ErrClientNotFound)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ClientRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	client, err := h.clientService.UpdateClient(clientID, req.Name, req.Email)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, client)
}

// DeleteClient handles the deletion of a client. The client's accounts are kept.
// @Summary     Delete a client
// @Tags        clients
// @Produce     json
// @Param       id path int true "Client ID"
// @Success     200 {object} MessageResponse "Client deleted"
// @Failure     400 {object} ErrorResponse "Invalid client ID"
// @Failure     404 {object} ErrorResponse "Client not found"
// @Router      /clients/{id} [delete]
func (h *ClientHandler) DeleteClient(c *gin.Context) {
	clientID, err := parsePathID(c, "id", apperrors.ErrClientNotFound)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.clientService.DeleteClient(clientID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Client deleted successfully"})
}
