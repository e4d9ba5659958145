package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/roomledger/roomledger/internal/api/dto"
	"github.com/roomledger/roomledger/internal/domain/room"
	ierr "github.com/roomledger/roomledger/internal/errors"
	"github.com/roomledger/roomledger/internal/logger"
	"github.com/roomledger/roomledger/internal/service"
)

type RoomHandler struct {
	service service.RoomService
	log     *logger.Logger
}

func NewRoomHandler(service service.RoomService, log *logger.Logger) *RoomHandler {
	return &RoomHandler{service: service, log: log}
}

// @Summary Create a room
// @Description Add a room with its pricing configuration
// @Tags Rooms
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param room body dto.CreateRoomRequest true "Room configuration"
// @Success 201 {object} dto.RoomResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 409 {object} ierr.ErrorResponse
// @Router /rooms [post]
func (h *RoomHandler) CreateRoom(c *gin.Context) {
	var req dto.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Error("Failed to bind JSON", "error", err)
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CreateRoom(c.Request.Context(), req)
	if err != nil {
		h.log.Error("Failed to create room", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary Get a room by ID
// @Tags Rooms
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Room ID"
// @Success 200 {object} dto.RoomResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /rooms/{id} [get]
func (h *RoomHandler) GetRoom(c *gin.Context) {
	resp, err := h.service.GetRoom(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary List rooms
// @Tags Rooms
// @Produce json
// @Security ApiKeyAuth
// @Param filter query room.Filter false "Filter"
// @Success 200 {object} dto.ListRoomsResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /rooms [get]
func (h *RoomHandler) ListRooms(c *gin.Context) {
	var filter room.Filter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.log.Error("Failed to bind query parameters", "error", err)
		c.Error(ierr.WithError(err).
			WithHint("Invalid filter parameters").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.ListRooms(c.Request.Context(), &filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Update a room
// @Description Update a room's classification or rates
// @Tags Rooms
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Room ID"
// @Param room body dto.UpdateRoomRequest true "Fields to update"
// @Success 200 {object} dto.RoomResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /rooms/{id} [put]
func (h *RoomHandler) UpdateRoom(c *gin.Context) {
	var req dto.UpdateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Error("Failed to bind JSON", "error", err)
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.UpdateRoom(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.log.Error("Failed to update room", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Delete a room
// @Description Remove a vacant room from the catalog
// @Tags Rooms
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Room ID"
// @Success 204
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /rooms/{id} [delete]
func (h *RoomHandler) DeleteRoom(c *gin.Context) {
	if err := h.service.DeleteRoom(c.Request.Context(), c.Param("id")); err != nil {
		h.log.Error("Failed to delete room", "error", err)
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}
