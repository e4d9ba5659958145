// Package billing provides the bill calculation engine. The calculator is a
// pure function over its parameters: it never consults a clock, storage or
// any shared state, so it is safe to call concurrently and its output is
// fully determined by its input.
package billing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/roomledger/roomledger/internal/domain/reading"
	"github.com/roomledger/roomledger/internal/domain/room"
	ierr "github.com/roomledger/roomledger/internal/errors"
	"github.com/roomledger/roomledger/internal/types"
)

// Utility identifies a metered utility on a bill line item.
type Utility string

const (
	UtilityWater    Utility = "water"
	UtilityElectric Utility = "electric"
)

// AdditionalCharge is an arbitrary extra line item on a bill. Amounts may be
// negative to express credits or discounts; the engine sums them as supplied
// without clamping and preserves their order in the itemized output.
type AdditionalCharge struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

// LateFeePolicy configures how overdue rent is penalised. The fee is always
// an input to the calculation, never a constant inside it, so the policy can
// vary by property or contract.
type LateFeePolicy struct {
	Enabled bool `json:"enabled"`

	// Mode selects a flat amount or a percentage of the base rent.
	Mode types.LateFeeMode `json:"mode,omitempty"`

	// Amount is the flat fee, or the percentage when Mode is percent
	// (e.g. 5 means 5% of base rent).
	Amount decimal.Decimal `json:"amount"`

	// GraceDays shifts the due date forward before the fee applies.
	GraceDays int `json:"grace_days"`
}

func (p LateFeePolicy) Validate() error {
	if !p.Enabled {
		return nil
	}
	if err := p.Mode.Validate(); err != nil {
		return err
	}
	if p.Amount.IsNegative() {
		return ierr.NewError("late fee amount must not be negative").
			WithHint("Late fee amount must be zero or positive").
			Mark(ierr.ErrValidation)
	}
	if p.GraceDays < 0 {
		return ierr.NewError("late fee grace days must not be negative").
			WithHint("Grace days must be zero or positive").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// CalculateParams is the aggregate input to the engine. It is constructed
// fresh per calculation and never mutated by the engine.
type CalculateParams struct {
	Room     *room.Room
	Previous *reading.MeterReading
	Current  *reading.MeterReading

	RentalType types.RentalType

	// PayDate is the date the resident pays. It is used only for late fee
	// determination, never for pro-rating the period length.
	PayDate time.Time

	// RentDueDay is the day of month rent is due (1-31), for monthly
	// rentals with a late policy. The due date clamps to the last day of
	// the billing month when the month is shorter.
	RentDueDay *int

	AdditionalCharges []AdditionalCharge

	LateFee LateFeePolicy
}

// Validate fails fast on caller errors before any arithmetic runs.
func (p *CalculateParams) Validate() error {
	if p.Room == nil {
		return ierr.NewError("room is required").
			WithHint("Room is required").
			Mark(ierr.ErrValidation)
	}
	if err := p.Room.Validate(); err != nil {
		return err
	}
	if p.Previous == nil || p.Current == nil {
		return ierr.NewError("previous and current readings are required").
			WithHint("Both meter readings are required").
			Mark(ierr.ErrValidation)
	}
	if err := p.Previous.Validate(); err != nil {
		return err
	}
	if err := p.Current.Validate(); err != nil {
		return err
	}
	if p.Previous.RoomID != p.Current.RoomID {
		return ierr.NewError("readings reference different rooms").
			WithHint("Both readings must belong to the same room").
			WithReportableDetails(map[string]any{
				"previous_room_id": p.Previous.RoomID,
				"current_room_id":  p.Current.RoomID,
			}).
			Mark(ierr.ErrValidation)
	}
	if p.Previous.RoomID != p.Room.ID {
		return ierr.NewError("readings do not belong to the room").
			WithHint("Readings must belong to the room being billed").
			Mark(ierr.ErrValidation)
	}
	if p.Current.ReadingDate.Before(p.Previous.ReadingDate) {
		return ierr.NewError("current reading date precedes previous reading date").
			WithHint("The current reading must not be dated before the previous one").
			WithReportableDetails(map[string]any{
				"previous_date": p.Previous.ReadingDate,
				"current_date":  p.Current.ReadingDate,
			}).
			Mark(ierr.ErrValidation)
	}
	if err := p.RentalType.Validate(); err != nil {
		return err
	}
	if p.RentDueDay != nil {
		if *p.RentDueDay < 1 || *p.RentDueDay > 31 {
			return ierr.NewErrorf("rent due day %d is out of range", *p.RentDueDay).
				WithHint("Rent due day must be between 1 and 31").
				Mark(ierr.ErrValidation)
		}
		if p.PayDate.IsZero() {
			return ierr.NewError("pay date is required when a rent due day is set").
				WithHint("Pay date is required to determine lateness").
				Mark(ierr.ErrValidation)
		}
	}
	if err := p.LateFee.Validate(); err != nil {
		return err
	}
	return nil
}

// UtilityLine is one metered utility's itemization on a bill.
type UtilityLine struct {
	Utility Utility `json:"utility"`

	PreviousReading decimal.Decimal `json:"previous_reading"`
	CurrentReading  decimal.Decimal `json:"current_reading"`

	// Consumption is the delta charged for. On a rollover it is an
	// estimate rather than a raw counter difference.
	Consumption decimal.Decimal `json:"consumption"`

	Rate   decimal.Decimal `json:"rate"`
	Amount decimal.Decimal `json:"amount"`

	// Estimated marks a rollover substitution: the raw delta was negative
	// and the consumption shown is the engine's estimate.
	Estimated bool `json:"estimated"`
}

// BillSummary is the fully itemized result of a calculation. All monetary
// fields are rounded to the currency's minor unit exactly once, and the
// total is the exact sum of the rounded components.
type BillSummary struct {
	RentalType types.RentalType `json:"rental_type"`

	PeriodStart  time.Time `json:"period_start"`
	PeriodEnd    time.Time `json:"period_end"`
	DaysInPeriod int       `json:"days_in_period"`

	BaseRent decimal.Decimal `json:"base_rent"`

	Water    UtilityLine `json:"water"`
	Electric UtilityLine `json:"electric"`

	// DueDate is set when a late policy was evaluated, grace included.
	DueDate *time.Time      `json:"due_date,omitempty"`
	LateFee decimal.Decimal `json:"late_fee"`

	// AdditionalCharges preserves the caller-supplied order.
	AdditionalCharges []AdditionalCharge `json:"additional_charges"`
	AdditionalTotal   decimal.Decimal    `json:"additional_total"`

	Total decimal.Decimal `json:"total"`
}
