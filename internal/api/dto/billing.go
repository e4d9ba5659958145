package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/roomledger/roomledger/internal/domain/billing"
	ierr "github.com/roomledger/roomledger/internal/errors"
	"github.com/roomledger/roomledger/internal/types"
	"github.com/roomledger/roomledger/internal/validator"
)

// MeterReadingValues is an inline meter snapshot for calculations over
// readings that are not persisted, e.g. previews during data entry.
type MeterReadingValues struct {
	ReadingDate   time.Time       `json:"reading_date" validate:"required"`
	WaterUnits    decimal.Decimal `json:"water_units"`
	ElectricUnits decimal.Decimal `json:"electric_units"`
}

// LateFeePolicyRequest overrides the configured late fee policy for a single
// calculation.
type LateFeePolicyRequest struct {
	Enabled   bool              `json:"enabled"`
	Mode      types.LateFeeMode `json:"mode,omitempty"`
	Amount    decimal.Decimal   `json:"amount"`
	GraceDays int               `json:"grace_days"`
}

func (r *LateFeePolicyRequest) ToPolicy() billing.LateFeePolicy {
	return billing.LateFeePolicy{
		Enabled:   r.Enabled,
		Mode:      r.Mode,
		Amount:    r.Amount,
		GraceDays: r.GraceDays,
	}
}

// CalculateBillRequest computes a bill for a room. Readings are referenced by
// ID or supplied inline; when both are omitted the two most recent persisted
// readings for the room are used.
type CalculateBillRequest struct {
	RoomID string `json:"room_id" validate:"required"`

	PreviousReadingID string `json:"previous_reading_id,omitempty"`
	CurrentReadingID  string `json:"current_reading_id,omitempty"`

	Previous *MeterReadingValues `json:"previous,omitempty"`
	Current  *MeterReadingValues `json:"current,omitempty"`

	// RentalType defaults to the active resident's agreement when omitted.
	RentalType types.RentalType `json:"rental_type,omitempty"`

	PayDate time.Time `json:"pay_date,omitempty"`

	// RentDueDay defaults to the active resident's due day when omitted.
	RentDueDay *int `json:"rent_due_day,omitempty"`

	AdditionalCharges []billing.AdditionalCharge `json:"additional_charges,omitempty"`

	// LateFee overrides the configured policy when set.
	LateFee *LateFeePolicyRequest `json:"late_fee,omitempty"`
}

func (r *CalculateBillRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if (r.Previous == nil) != (r.Current == nil) {
		return ierr.NewError("previous and current readings must be supplied together").
			WithHint("Provide both inline readings or neither").
			Mark(ierr.ErrValidation)
	}
	if (r.PreviousReadingID == "") != (r.CurrentReadingID == "") {
		return ierr.NewError("previous and current reading IDs must be supplied together").
			WithHint("Provide both reading IDs or neither").
			Mark(ierr.ErrValidation)
	}
	if r.Previous != nil && r.PreviousReadingID != "" {
		return ierr.NewError("inline readings and reading IDs are mutually exclusive").
			WithHint("Provide reading IDs or inline readings, not both").
			Mark(ierr.ErrValidation)
	}
	return nil
}

type CalculateBillResponse struct {
	Summary *billing.BillSummary `json:"summary"`
}

// CreateBillRequest calculates and persists a bill in one step.
type CreateBillRequest struct {
	CalculateBillRequest
}

type BillResponse struct {
	*billing.Bill
}

// ListBillsResponse represents the response for listing bills
type ListBillsResponse = types.ListResponse[*BillResponse]
