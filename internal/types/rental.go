package types

import (
	ierr "github.com/roomledger/roomledger/internal/errors"
	"github.com/samber/lo"
)

// RentalType discriminates how base rent is charged for a room.
type RentalType string

const (
	// RentalTypeMonthly charges the room's flat monthly rate per billing period.
	RentalTypeMonthly RentalType = "monthly"
	// RentalTypeDaily charges the room's daily rate per day in the billing
	// period, with a minimum of one day.
	RentalTypeDaily RentalType = "daily"
)

func (r RentalType) Validate() error {
	allowed := []RentalType{RentalTypeMonthly, RentalTypeDaily}
	if !lo.Contains(allowed, r) {
		return ierr.NewErrorf("invalid rental type: %s", r).
			WithHint("Rental type must be monthly or daily").
			WithReportableDetails(map[string]any{
				"allowed": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// LateFeeMode selects how a late fee is computed once rent is overdue.
type LateFeeMode string

const (
	// LateFeeModeFlat charges a fixed amount.
	LateFeeModeFlat LateFeeMode = "flat"
	// LateFeeModePercent charges a percentage of the base rent.
	LateFeeModePercent LateFeeMode = "percent"
)

func (m LateFeeMode) Validate() error {
	allowed := []LateFeeMode{LateFeeModeFlat, LateFeeModePercent}
	if !lo.Contains(allowed, m) {
		return ierr.NewErrorf("invalid late fee mode: %s", m).
			WithHint("Late fee mode must be flat or percent").
			WithReportableDetails(map[string]any{
				"allowed": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}
