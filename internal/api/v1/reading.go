package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/roomledger/roomledger/internal/api/dto"
	"github.com/roomledger/roomledger/internal/domain/reading"
	ierr "github.com/roomledger/roomledger/internal/errors"
	"github.com/roomledger/roomledger/internal/logger"
	"github.com/roomledger/roomledger/internal/service"
)

type ReadingHandler struct {
	service service.ReadingService
	log     *logger.Logger
}

func NewReadingHandler(service service.ReadingService, log *logger.Logger) *ReadingHandler {
	return &ReadingHandler{service: service, log: log}
}

// @Summary Record a meter reading
// @Description Record a room's cumulative water and electric counters
// @Tags Readings
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param reading body dto.CreateMeterReadingRequest true "Meter reading"
// @Success 201 {object} dto.MeterReadingResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /readings [post]
func (h *ReadingHandler) CreateReading(c *gin.Context) {
	var req dto.CreateMeterReadingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Error("Failed to bind JSON", "error", err)
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CreateReading(c.Request.Context(), req)
	if err != nil {
		h.log.Error("Failed to create reading", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary Get a meter reading by ID
// @Tags Readings
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Reading ID"
// @Success 200 {object} dto.MeterReadingResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /readings/{id} [get]
func (h *ReadingHandler) GetReading(c *gin.Context) {
	resp, err := h.service.GetReading(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary List meter readings
// @Description List readings with optional filtering, newest first
// @Tags Readings
// @Produce json
// @Security ApiKeyAuth
// @Param filter query reading.Filter false "Filter"
// @Success 200 {object} dto.ListMeterReadingsResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /readings [get]
func (h *ReadingHandler) ListReadings(c *gin.Context) {
	var filter reading.Filter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.log.Error("Failed to bind query parameters", "error", err)
		c.Error(ierr.WithError(err).
			WithHint("Invalid filter parameters").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.ListReadings(c.Request.Context(), &filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Get the latest reading for a room
// @Tags Readings
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Room ID"
// @Success 200 {object} dto.MeterReadingResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /rooms/{id}/readings/latest [get]
func (h *ReadingHandler) GetLatestReading(c *gin.Context) {
	resp, err := h.service.GetLatestReading(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
