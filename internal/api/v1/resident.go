package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/roomledger/roomledger/internal/api/dto"
	"github.com/roomledger/roomledger/internal/domain/resident"
	ierr "github.com/roomledger/roomledger/internal/errors"
	"github.com/roomledger/roomledger/internal/logger"
	"github.com/roomledger/roomledger/internal/service"
)

type ResidentHandler struct {
	service service.ResidentService
	log     *logger.Logger
}

func NewResidentHandler(service service.ResidentService, log *logger.Logger) *ResidentHandler {
	return &ResidentHandler{service: service, log: log}
}

// @Summary Check a resident in
// @Description Register a resident into a vacant room
// @Tags Residents
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param resident body dto.CheckInResidentRequest true "Resident details"
// @Success 201 {object} dto.ResidentResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /residents [post]
func (h *ResidentHandler) CheckIn(c *gin.Context) {
	var req dto.CheckInResidentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Error("Failed to bind JSON", "error", err)
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CheckIn(c.Request.Context(), req)
	if err != nil {
		h.log.Error("Failed to check resident in", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary Check a resident out
// @Description Close a resident's stay, freeing the room
// @Tags Residents
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Resident ID"
// @Param checkout body dto.CheckOutResidentRequest true "Check-out date"
// @Success 200 {object} dto.ResidentResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /residents/{id}/checkout [post]
func (h *ResidentHandler) CheckOut(c *gin.Context) {
	var req dto.CheckOutResidentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Error("Failed to bind JSON", "error", err)
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CheckOut(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.log.Error("Failed to check resident out", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Get a resident by ID
// @Tags Residents
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Resident ID"
// @Success 200 {object} dto.ResidentResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /residents/{id} [get]
func (h *ResidentHandler) GetResident(c *gin.Context) {
	resp, err := h.service.GetResident(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary List residents
// @Tags Residents
// @Produce json
// @Security ApiKeyAuth
// @Param filter query resident.Filter false "Filter"
// @Success 200 {object} dto.ListResidentsResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /residents [get]
func (h *ResidentHandler) ListResidents(c *gin.Context) {
	var filter resident.Filter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.log.Error("Failed to bind query parameters", "error", err)
		c.Error(ierr.WithError(err).
			WithHint("Invalid filter parameters").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.ListResidents(c.Request.Context(), &filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
