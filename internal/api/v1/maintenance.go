package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/roomledger/roomledger/internal/api/dto"
	"github.com/roomledger/roomledger/internal/domain/maintenance"
	ierr "github.com/roomledger/roomledger/internal/errors"
	"github.com/roomledger/roomledger/internal/logger"
	"github.com/roomledger/roomledger/internal/service"
)

type MaintenanceHandler struct {
	service service.MaintenanceService
	log     *logger.Logger
}

func NewMaintenanceHandler(service service.MaintenanceService, log *logger.Logger) *MaintenanceHandler {
	return &MaintenanceHandler{service: service, log: log}
}

// @Summary Report a maintenance issue
// @Tags Maintenance
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.CreateMaintenanceRequest true "Issue details"
// @Success 201 {object} dto.MaintenanceResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /maintenance [post]
func (h *MaintenanceHandler) CreateRequest(c *gin.Context) {
	var req dto.CreateMaintenanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Error("Failed to bind JSON", "error", err)
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CreateRequest(c.Request.Context(), req)
	if err != nil {
		h.log.Error("Failed to create maintenance request", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary Get a maintenance request by ID
// @Tags Maintenance
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Request ID"
// @Success 200 {object} dto.MaintenanceResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /maintenance/{id} [get]
func (h *MaintenanceHandler) GetRequest(c *gin.Context) {
	resp, err := h.service.GetRequest(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary List maintenance requests
// @Tags Maintenance
// @Produce json
// @Security ApiKeyAuth
// @Param filter query maintenance.Filter false "Filter"
// @Success 200 {object} dto.ListMaintenanceResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /maintenance [get]
func (h *MaintenanceHandler) ListRequests(c *gin.Context) {
	var filter maintenance.Filter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.log.Error("Failed to bind query parameters", "error", err)
		c.Error(ierr.WithError(err).
			WithHint("Invalid filter parameters").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.ListRequests(c.Request.Context(), &filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Update a maintenance request's status
// @Description Move a request along the open, in_progress, resolved flow
// @Tags Maintenance
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Request ID"
// @Param status body dto.UpdateMaintenanceStatusRequest true "Next status"
// @Success 200 {object} dto.MaintenanceResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /maintenance/{id}/status [put]
func (h *MaintenanceHandler) UpdateStatus(c *gin.Context) {
	var req dto.UpdateMaintenanceStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Error("Failed to bind JSON", "error", err)
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.UpdateStatus(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.log.Error("Failed to update maintenance status", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
