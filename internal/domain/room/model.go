// Package room provides the domain model for rentable units and their
// pricing. Rates are decimal amounts in the property's currency and are
// treated as immutable for the duration of a single bill calculation.
package room

import (
	"context"

	"github.com/shopspring/decimal"

	ierr "github.com/roomledger/roomledger/internal/errors"
	"github.com/roomledger/roomledger/internal/types"
)

// Room represents a rentable unit with its pricing configuration.
type Room struct {
	ID string `json:"id"`

	// RoomNumber is the human-facing unit number, unique within a tenant.
	RoomNumber string `json:"room_number"`

	// RoomType is a free-form classification, e.g. "single", "double".
	RoomType string `json:"room_type"`

	// RateMonthly is the flat rent for a monthly rental period.
	RateMonthly decimal.Decimal `json:"rate_monthly"`

	// RateDaily is the rent per day for daily rentals.
	RateDaily decimal.Decimal `json:"rate_daily"`

	// WaterRate is the charge per unit of water consumed.
	WaterRate decimal.Decimal `json:"water_rate"`

	// ElectricRate is the charge per unit of electricity consumed.
	ElectricRate decimal.Decimal `json:"electric_rate"`

	// WaterMeterMax is the installed water meter's maximum count before it
	// wraps to zero, when known. Used to compute exact rollover deltas.
	WaterMeterMax *decimal.Decimal `json:"water_meter_max,omitempty"`

	// ElectricMeterMax is the electric meter's maximum count before wrap.
	ElectricMeterMax *decimal.Decimal `json:"electric_meter_max,omitempty"`

	types.BaseModel
}

// New creates a room with base model fields populated from context.
func New(ctx context.Context, roomNumber, roomType string) *Room {
	return &Room{
		ID:         types.GenerateUUIDWithPrefix(types.UUID_PREFIX_ROOM),
		RoomNumber: roomNumber,
		RoomType:   roomType,
		BaseModel:  types.GetDefaultBaseModel(ctx),
	}
}

// Validate checks the room's pricing configuration. A negative rate is a
// caller error and fails fast before any calculation uses the room.
func (r *Room) Validate() error {
	if r.RoomNumber == "" {
		return ierr.NewError("room_number is required").
			WithHint("Room number is required").
			Mark(ierr.ErrValidation)
	}
	rates := map[string]decimal.Decimal{
		"rate_monthly":  r.RateMonthly,
		"rate_daily":    r.RateDaily,
		"water_rate":    r.WaterRate,
		"electric_rate": r.ElectricRate,
	}
	for name, rate := range rates {
		if rate.IsNegative() {
			return ierr.NewErrorf("%s must not be negative", name).
				WithHint("Room rates must be zero or positive").
				WithReportableDetails(map[string]any{
					"field": name,
					"value": rate.String(),
				}).
				Mark(ierr.ErrValidation)
		}
	}
	if r.WaterMeterMax != nil && !r.WaterMeterMax.IsPositive() {
		return ierr.NewError("water_meter_max must be positive").
			WithHint("Meter maximum must be a positive count").
			Mark(ierr.ErrValidation)
	}
	if r.ElectricMeterMax != nil && !r.ElectricMeterMax.IsPositive() {
		return ierr.NewError("electric_meter_max must be positive").
			WithHint("Meter maximum must be a positive count").
			Mark(ierr.ErrValidation)
	}
	return nil
}
