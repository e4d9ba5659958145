package billing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/roomledger/roomledger/internal/types"
)

var (
	hundred = decimal.NewFromInt(100)
)

// Calculate computes a fully itemized bill from the given parameters.
//
// All intermediate arithmetic runs at full decimal precision; each output
// field is rounded to the currency's minor unit exactly once, with
// round-half-to-even, and the grand total is the exact sum of the rounded
// components. The function is deterministic and free of side effects.
func Calculate(params CalculateParams) (*BillSummary, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	periodStart := dateOnly(params.Previous.ReadingDate)
	periodEnd := dateOnly(params.Current.ReadingDate)
	wholeDays := int(periodEnd.Sub(periodStart).Hours() / 24)

	// Base rent. Monthly rentals pay the flat period rate regardless of the
	// number of days between readings; daily rentals bill a minimum of one
	// day even for a zero-length period.
	var baseRent decimal.Decimal
	days := wholeDays
	switch params.RentalType {
	case types.RentalTypeMonthly:
		baseRent = params.Room.RateMonthly
	case types.RentalTypeDaily:
		if days < 1 {
			days = 1
		}
		baseRent = params.Room.RateDaily.Mul(decimal.NewFromInt(int64(days)))
	}

	water := utilityLine(
		UtilityWater,
		params.Previous.WaterUnits,
		params.Current.WaterUnits,
		params.Room.WaterRate,
		params.Room.WaterMeterMax,
	)
	electric := utilityLine(
		UtilityElectric,
		params.Previous.ElectricUnits,
		params.Current.ElectricUnits,
		params.Room.ElectricRate,
		params.Room.ElectricMeterMax,
	)

	lateFee := decimal.Zero
	var dueDate *time.Time
	if params.RentalType == types.RentalTypeMonthly && params.RentDueDay != nil {
		due := dueDateForMonth(periodEnd, *params.RentDueDay, params.LateFee.GraceDays)
		dueDate = &due
		if params.LateFee.Enabled && dateOnly(params.PayDate).After(due) {
			switch params.LateFee.Mode {
			case types.LateFeeModeFlat:
				lateFee = params.LateFee.Amount
			case types.LateFeeModePercent:
				lateFee = baseRent.Mul(params.LateFee.Amount).Div(hundred)
			}
		}
	}

	additionalTotal := decimal.Zero
	for _, charge := range params.AdditionalCharges {
		additionalTotal = additionalTotal.Add(charge.Amount)
	}

	summary := &BillSummary{
		RentalType:        params.RentalType,
		PeriodStart:       periodStart,
		PeriodEnd:         periodEnd,
		DaysInPeriod:      days,
		BaseRent:          types.RoundToCurrency(baseRent),
		Water:             water,
		Electric:          electric,
		DueDate:           dueDate,
		LateFee:           types.RoundToCurrency(lateFee),
		AdditionalCharges: append([]AdditionalCharge(nil), params.AdditionalCharges...),
		AdditionalTotal:   types.RoundToCurrency(additionalTotal),
	}

	summary.Total = summary.BaseRent.
		Add(summary.Water.Amount).
		Add(summary.Electric.Amount).
		Add(summary.LateFee).
		Add(summary.AdditionalTotal)

	return summary, nil
}

// utilityLine computes one utility's consumption and charge. A negative raw
// delta means the meter wrapped or was reset: with a known meter maximum the
// exact wrapped delta is (max - previous) + current, otherwise the current
// counter alone is taken as the consumption since the reset. Either way the
// line is marked estimated and the charge never goes negative.
func utilityLine(utility Utility, previous, current, rate decimal.Decimal, meterMax *decimal.Decimal) UtilityLine {
	delta := current.Sub(previous)
	estimated := false
	if delta.IsNegative() {
		estimated = true
		if meterMax != nil {
			delta = meterMax.Sub(previous).Add(current)
		} else {
			delta = current
		}
	}
	if delta.IsNegative() {
		delta = decimal.Zero
	}

	return UtilityLine{
		Utility:         utility,
		PreviousReading: previous,
		CurrentReading:  current,
		Consumption:     delta,
		Rate:            rate,
		Amount:          types.RoundToCurrency(delta.Mul(rate)),
		Estimated:       estimated,
	}
}

// dueDateForMonth resolves the due date inside the billing month (the month
// containing the current reading date). Day 31 in a 30-day month clamps to
// the last day. Grace days shift the result forward.
func dueDateForMonth(billingDate time.Time, dueDay, graceDays int) time.Time {
	year, month, _ := billingDate.Date()
	lastDay := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
	if dueDay > lastDay {
		dueDay = lastDay
	}
	due := time.Date(year, month, dueDay, 0, 0, 0, 0, time.UTC)
	return due.AddDate(0, 0, graceDays)
}

func dateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
