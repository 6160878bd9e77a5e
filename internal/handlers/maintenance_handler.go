package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ledger/internal/services"
)

// MaintenanceHandler exposes store maintenance endpoints.
type MaintenanceHandler struct {
	maintenanceService services.MaintenanceServicer
}

// NewMaintenanceHandler creates a new MaintenanceHandler.
func NewMaintenanceHandler(maintenanceService services.MaintenanceServicer) *MaintenanceHandler {
	return &MaintenanceHandler{maintenanceService: maintenanceService}
}

// ResetAll handles wiping every table
// @Summary     Delete all data
// @Description Removes every movement, link, account, category and client
// @Tags        maintenance
// @Produce     json
// @Security    ApiKeyAuth
// @Success     200 "All data deleted"
// @Failure     401 {object} ErrorResponse "Invalid or missing API key"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /all [delete]
func (h *MaintenanceHandler) ResetAll(c *gin.Context) {
	if err := h.maintenanceService.ResetAll(); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, nil)
}

// HealthResponse represents the health check payload.
type HealthResponse struct {
	Status string `json:"status"`
}

// Health reports that the server is up
// @Summary     Health check
// @Tags        health
// @Produce     json
// @Success     200 {object} HealthResponse "Service is healthy"
// @Router      /api/health [get]
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}
