// Package reading provides the domain model for utility meter snapshots.
// Two readings bound a billing period: consumption is the counter delta
// between the previous and current snapshot.
package reading

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	ierr "github.com/roomledger/roomledger/internal/errors"
	"github.com/roomledger/roomledger/internal/types"
)

// MeterReading is a snapshot of a room's cumulative water and electric
// meter counters on a given date. Counters are monotonically non-decreasing
// under normal operation; a decrease indicates a meter reset or rollover.
type MeterReading struct {
	ID     string `json:"id"`
	RoomID string `json:"room_id"`

	// ReadingDate is the calendar date the meters were read, in UTC.
	ReadingDate time.Time `json:"reading_date"`

	// WaterUnits is the cumulative water meter counter.
	WaterUnits decimal.Decimal `json:"water_units"`

	// ElectricUnits is the cumulative electric meter counter.
	ElectricUnits decimal.Decimal `json:"electric_units"`

	types.BaseModel
}

// New creates a meter reading with base model fields populated from context.
func New(ctx context.Context, roomID string, readingDate time.Time, waterUnits, electricUnits decimal.Decimal) *MeterReading {
	return &MeterReading{
		ID:            types.GenerateUUIDWithPrefix(types.UUID_PREFIX_METER_READING),
		RoomID:        roomID,
		ReadingDate:   readingDate.UTC(),
		WaterUnits:    waterUnits,
		ElectricUnits: electricUnits,
		BaseModel:     types.GetDefaultBaseModel(ctx),
	}
}

// Validate checks the reading's fields.
func (m *MeterReading) Validate() error {
	if m.RoomID == "" {
		return ierr.NewError("room_id is required").
			WithHint("Room ID is required").
			Mark(ierr.ErrValidation)
	}
	if m.ReadingDate.IsZero() {
		return ierr.NewError("reading_date is required").
			WithHint("Reading date is required").
			Mark(ierr.ErrValidation)
	}
	if m.WaterUnits.IsNegative() || m.ElectricUnits.IsNegative() {
		return ierr.NewError("meter counters must not be negative").
			WithHint("Meter counters must be zero or positive").
			WithReportableDetails(map[string]any{
				"water_units":    m.WaterUnits.String(),
				"electric_units": m.ElectricUnits.String(),
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}
