package dto

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/roomledger/roomledger/internal/domain/reading"
	"github.com/roomledger/roomledger/internal/types"
	"github.com/roomledger/roomledger/internal/validator"
)

type CreateMeterReadingRequest struct {
	RoomID        string          `json:"room_id" validate:"required"`
	ReadingDate   time.Time       `json:"reading_date" validate:"required"`
	WaterUnits    decimal.Decimal `json:"water_units"`
	ElectricUnits decimal.Decimal `json:"electric_units"`
}

func (r *CreateMeterReadingRequest) Validate() error {
	return validator.ValidateRequest(r)
}

func (r *CreateMeterReadingRequest) ToMeterReading(ctx context.Context) *reading.MeterReading {
	return reading.New(ctx, r.RoomID, r.ReadingDate, r.WaterUnits, r.ElectricUnits)
}

type MeterReadingResponse struct {
	*reading.MeterReading
}

// ListMeterReadingsResponse represents the response for listing meter readings
type ListMeterReadingsResponse = types.ListResponse[*MeterReadingResponse]
