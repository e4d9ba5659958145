package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/roomledger/roomledger/internal/api/dto"
	"github.com/roomledger/roomledger/internal/domain/billing"
	ierr "github.com/roomledger/roomledger/internal/errors"
	"github.com/roomledger/roomledger/internal/logger"
	"github.com/roomledger/roomledger/internal/service"
)

type BillingHandler struct {
	service service.BillingService
	log     *logger.Logger
}

func NewBillingHandler(service service.BillingService, log *logger.Logger) *BillingHandler {
	return &BillingHandler{service: service, log: log}
}

// @Summary Calculate a bill
// @Description Run the billing calculation for a room without persisting the result
// @Tags Billing
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param calculation body dto.CalculateBillRequest true "Calculation input"
// @Success 200 {object} dto.CalculateBillResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /bills/calculate [post]
func (h *BillingHandler) CalculateBill(c *gin.Context) {
	var req dto.CalculateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Error("Failed to bind JSON", "error", err)
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CalculateBill(c.Request.Context(), req)
	if err != nil {
		h.log.Error("Failed to calculate bill", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Create a bill
// @Description Calculate and persist a bill for a room
// @Tags Billing
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param bill body dto.CreateBillRequest true "Bill input"
// @Success 201 {object} dto.BillResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /bills [post]
func (h *BillingHandler) CreateBill(c *gin.Context) {
	var req dto.CreateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Error("Failed to bind JSON", "error", err)
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CreateBill(c.Request.Context(), req)
	if err != nil {
		h.log.Error("Failed to create bill", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary Get a bill by ID
// @Description Get a persisted bill by ID
// @Tags Billing
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Bill ID"
// @Success 200 {object} dto.BillResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /bills/{id} [get]
func (h *BillingHandler) GetBill(c *gin.Context) {
	resp, err := h.service.GetBill(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary List bills
// @Description List bills with optional filtering, newest first
// @Tags Billing
// @Produce json
// @Security ApiKeyAuth
// @Param filter query billing.Filter false "Filter"
// @Success 200 {object} dto.ListBillsResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /bills [get]
func (h *BillingHandler) ListBills(c *gin.Context) {
	var filter billing.Filter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.log.Error("Failed to bind query parameters", "error", err)
		c.Error(ierr.WithError(err).
			WithHint("Invalid filter parameters").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.ListBills(c.Request.Context(), &filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
