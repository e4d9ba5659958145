package dto

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/roomledger/roomledger/internal/domain/room"
	"github.com/roomledger/roomledger/internal/types"
	"github.com/roomledger/roomledger/internal/validator"
)

type CreateRoomRequest struct {
	RoomNumber   string          `json:"room_number" validate:"required"`
	RoomType     string          `json:"room_type"`
	RateMonthly  decimal.Decimal `json:"rate_monthly"`
	RateDaily    decimal.Decimal `json:"rate_daily"`
	WaterRate    decimal.Decimal `json:"water_rate"`
	ElectricRate decimal.Decimal `json:"electric_rate"`

	WaterMeterMax    *decimal.Decimal `json:"water_meter_max,omitempty"`
	ElectricMeterMax *decimal.Decimal `json:"electric_meter_max,omitempty"`
}

func (r *CreateRoomRequest) Validate() error {
	return validator.ValidateRequest(r)
}

func (r *CreateRoomRequest) ToRoom(ctx context.Context) *room.Room {
	rm := room.New(ctx, r.RoomNumber, r.RoomType)
	rm.RateMonthly = r.RateMonthly
	rm.RateDaily = r.RateDaily
	rm.WaterRate = r.WaterRate
	rm.ElectricRate = r.ElectricRate
	rm.WaterMeterMax = r.WaterMeterMax
	rm.ElectricMeterMax = r.ElectricMeterMax
	return rm
}

type UpdateRoomRequest struct {
	RoomType     *string          `json:"room_type,omitempty"`
	RateMonthly  *decimal.Decimal `json:"rate_monthly,omitempty"`
	RateDaily    *decimal.Decimal `json:"rate_daily,omitempty"`
	WaterRate    *decimal.Decimal `json:"water_rate,omitempty"`
	ElectricRate *decimal.Decimal `json:"electric_rate,omitempty"`

	WaterMeterMax    *decimal.Decimal `json:"water_meter_max,omitempty"`
	ElectricMeterMax *decimal.Decimal `json:"electric_meter_max,omitempty"`
}

func (r *UpdateRoomRequest) Validate() error {
	return validator.ValidateRequest(r)
}

type RoomResponse struct {
	*room.Room
}

// ListRoomsResponse represents the response for listing rooms
type ListRoomsResponse = types.ListResponse[*RoomResponse]
