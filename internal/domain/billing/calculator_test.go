package billing

import (
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roomledger/roomledger/internal/domain/reading"
	"github.com/roomledger/roomledger/internal/domain/room"
	ierr "github.com/roomledger/roomledger/internal/errors"
	"github.com/roomledger/roomledger/internal/types"
)

func testRoom() *room.Room {
	return &room.Room{
		ID:           "room_test",
		RoomNumber:   "101",
		RoomType:     "single",
		RateMonthly:  decimal.NewFromInt(3000),
		RateDaily:    decimal.NewFromInt(250),
		WaterRate:    decimal.NewFromInt(20),
		ElectricRate: decimal.NewFromInt(8),
	}
}

func testReading(date time.Time, water, electric float64) *reading.MeterReading {
	return &reading.MeterReading{
		ID:            types.GenerateUUIDWithPrefix(types.UUID_PREFIX_METER_READING),
		RoomID:        "room_test",
		ReadingDate:   date,
		WaterUnits:    decimal.NewFromFloat(water),
		ElectricUnits: decimal.NewFromFloat(electric),
	}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCalculate_MonthlyWithUtilities(t *testing.T) {
	params := CalculateParams{
		Room:       testRoom(),
		Previous:   testReading(day(2024, time.March, 1), 100, 500),
		Current:    testReading(day(2024, time.March, 30), 115, 540),
		RentalType: types.RentalTypeMonthly,
		PayDate:    day(2024, time.April, 1),
	}

	summary, err := Calculate(params)
	require.NoError(t, err)

	assert.True(t, summary.BaseRent.Equal(decimal.NewFromInt(3000)))
	assert.True(t, summary.Water.Amount.Equal(decimal.NewFromInt(300)), "water charge: %s", summary.Water.Amount)
	assert.True(t, summary.Electric.Amount.Equal(decimal.NewFromInt(320)), "electric charge: %s", summary.Electric.Amount)
	assert.True(t, summary.LateFee.IsZero())
	assert.True(t, summary.Total.Equal(decimal.NewFromInt(3620)), "total: %s", summary.Total)
	assert.False(t, summary.Water.Estimated)
	assert.False(t, summary.Electric.Estimated)
	assert.Equal(t, 29, summary.DaysInPeriod)
	assert.Nil(t, summary.DueDate)
}

func TestCalculate_Deterministic(t *testing.T) {
	params := CalculateParams{
		Room:       testRoom(),
		Previous:   testReading(day(2024, time.March, 1), 100.5, 500.25),
		Current:    testReading(day(2024, time.March, 31), 117.75, 541),
		RentalType: types.RentalTypeMonthly,
		PayDate:    day(2024, time.April, 2),
		RentDueDay: lo.ToPtr(5),
		AdditionalCharges: []AdditionalCharge{
			{Name: "Cleaning", Amount: decimal.NewFromInt(150)},
		},
		LateFee: LateFeePolicy{
			Enabled: true,
			Mode:    types.LateFeeModePercent,
			Amount:  decimal.NewFromInt(5),
		},
	}

	first, err := Calculate(params)
	require.NoError(t, err)
	second, err := Calculate(params)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestCalculate_AdditivityAfterRounding(t *testing.T) {
	r := testRoom()
	r.WaterRate = decimal.RequireFromString("20.335")
	r.ElectricRate = decimal.RequireFromString("8.125")

	params := CalculateParams{
		Room:       r,
		Previous:   testReading(day(2024, time.March, 1), 100, 500),
		Current:    testReading(day(2024, time.March, 31), 113, 547),
		RentalType: types.RentalTypeMonthly,
		PayDate:    day(2024, time.April, 1),
		AdditionalCharges: []AdditionalCharge{
			{Name: "Internet", Amount: decimal.RequireFromString("99.99")},
			{Name: "Discount", Amount: decimal.RequireFromString("-10.005")},
		},
	}

	summary, err := Calculate(params)
	require.NoError(t, err)

	want := summary.BaseRent.
		Add(summary.Water.Amount).
		Add(summary.Electric.Amount).
		Add(summary.LateFee).
		Add(summary.AdditionalTotal)
	assert.True(t, summary.Total.Equal(want), "total %s != component sum %s", summary.Total, want)

	// Every output field carries at most two decimal places.
	for _, amount := range []decimal.Decimal{
		summary.BaseRent, summary.Water.Amount, summary.Electric.Amount,
		summary.LateFee, summary.AdditionalTotal, summary.Total,
	} {
		assert.True(t, amount.Equal(amount.Round(2)), "amount %s not rounded", amount)
	}
}

func TestCalculate_MonthlyFlatRegardlessOfDays(t *testing.T) {
	for _, days := range []int{0, 1, 15, 28, 31, 60} {
		params := CalculateParams{
			Room:       testRoom(),
			Previous:   testReading(day(2024, time.January, 1), 0, 0),
			Current:    testReading(day(2024, time.January, 1).AddDate(0, 0, days), 0, 0),
			RentalType: types.RentalTypeMonthly,
			PayDate:    day(2024, time.March, 1),
		}
		summary, err := Calculate(params)
		require.NoError(t, err)
		assert.True(t, summary.BaseRent.Equal(decimal.NewFromInt(3000)), "days=%d", days)
	}
}

func TestCalculate_DailyMinimumOneDay(t *testing.T) {
	params := CalculateParams{
		Room:       testRoom(),
		Previous:   testReading(day(2024, time.March, 10), 50, 200),
		Current:    testReading(day(2024, time.March, 10), 50, 200),
		RentalType: types.RentalTypeDaily,
		PayDate:    day(2024, time.March, 10),
	}

	summary, err := Calculate(params)
	require.NoError(t, err)

	assert.True(t, summary.BaseRent.Equal(decimal.NewFromInt(250)), "base rent: %s", summary.BaseRent)
	assert.Equal(t, 1, summary.DaysInPeriod)
	assert.True(t, summary.Water.Amount.IsZero())
	assert.True(t, summary.Electric.Amount.IsZero())
}

func TestCalculate_DailyMultipliesDays(t *testing.T) {
	params := CalculateParams{
		Room:       testRoom(),
		Previous:   testReading(day(2024, time.March, 1), 0, 0),
		Current:    testReading(day(2024, time.March, 8), 0, 0),
		RentalType: types.RentalTypeDaily,
		PayDate:    day(2024, time.March, 8),
	}

	summary, err := Calculate(params)
	require.NoError(t, err)

	assert.Equal(t, 7, summary.DaysInPeriod)
	assert.True(t, summary.BaseRent.Equal(decimal.NewFromInt(1750)), "base rent: %s", summary.BaseRent)
}

func TestCalculate_MeterRolloverWithoutMax(t *testing.T) {
	params := CalculateParams{
		Room:       testRoom(),
		Previous:   testReading(day(2024, time.March, 1), 100, 9980),
		Current:    testReading(day(2024, time.March, 31), 110, 50),
		RentalType: types.RentalTypeMonthly,
		PayDate:    day(2024, time.April, 1),
	}

	summary, err := Calculate(params)
	require.NoError(t, err)

	// Without a known meter max, the current counter alone is the estimate.
	assert.True(t, summary.Electric.Estimated)
	assert.True(t, summary.Electric.Consumption.Equal(decimal.NewFromInt(50)), "consumption: %s", summary.Electric.Consumption)
	assert.True(t, summary.Electric.Amount.Equal(decimal.NewFromInt(400)), "charge: %s", summary.Electric.Amount)
	assert.False(t, summary.Water.Estimated)
	assert.False(t, summary.Electric.Amount.IsNegative())
}

func TestCalculate_MeterRolloverWithMax(t *testing.T) {
	r := testRoom()
	r.ElectricMeterMax = lo.ToPtr(decimal.NewFromInt(10000))

	params := CalculateParams{
		Room:       r,
		Previous:   testReading(day(2024, time.March, 1), 100, 9980),
		Current:    testReading(day(2024, time.March, 31), 110, 50),
		RentalType: types.RentalTypeMonthly,
		PayDate:    day(2024, time.April, 1),
	}

	summary, err := Calculate(params)
	require.NoError(t, err)

	// (10000 - 9980) + 50 = 70 units.
	assert.True(t, summary.Electric.Estimated)
	assert.True(t, summary.Electric.Consumption.Equal(decimal.NewFromInt(70)), "consumption: %s", summary.Electric.Consumption)
	assert.True(t, summary.Electric.Amount.Equal(decimal.NewFromInt(560)), "charge: %s", summary.Electric.Amount)
}

func TestCalculate_LateFeeBoundary(t *testing.T) {
	policy := LateFeePolicy{
		Enabled: true,
		Mode:    types.LateFeeModeFlat,
		Amount:  decimal.NewFromInt(100),
	}

	base := CalculateParams{
		Room:       testRoom(),
		Previous:   testReading(day(2024, time.March, 1), 0, 0),
		Current:    testReading(day(2024, time.March, 31), 0, 0),
		RentalType: types.RentalTypeMonthly,
		RentDueDay: lo.ToPtr(5),
		LateFee:    policy,
	}

	tests := []struct {
		name    string
		payDate time.Time
		late    bool
	}{
		{name: "before due date", payDate: day(2024, time.March, 3), late: false},
		{name: "on due date", payDate: day(2024, time.March, 5), late: false},
		{name: "one day past due", payDate: day(2024, time.March, 6), late: true},
		{name: "well past due", payDate: day(2024, time.April, 10), late: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := base
			params.PayDate = tt.payDate
			summary, err := Calculate(params)
			require.NoError(t, err)
			require.NotNil(t, summary.DueDate)
			assert.Equal(t, day(2024, time.March, 5), *summary.DueDate)
			if tt.late {
				assert.True(t, summary.LateFee.Equal(decimal.NewFromInt(100)), "late fee: %s", summary.LateFee)
			} else {
				assert.True(t, summary.LateFee.IsZero(), "late fee: %s", summary.LateFee)
			}
		})
	}
}

func TestCalculate_LateFeePercentOfBaseRent(t *testing.T) {
	params := CalculateParams{
		Room:       testRoom(),
		Previous:   testReading(day(2024, time.March, 1), 0, 0),
		Current:    testReading(day(2024, time.March, 31), 0, 0),
		RentalType: types.RentalTypeMonthly,
		PayDate:    day(2024, time.April, 10),
		RentDueDay: lo.ToPtr(5),
		LateFee: LateFeePolicy{
			Enabled: true,
			Mode:    types.LateFeeModePercent,
			Amount:  decimal.NewFromInt(5),
		},
	}

	summary, err := Calculate(params)
	require.NoError(t, err)

	// 5% of 3000.
	assert.True(t, summary.LateFee.Equal(decimal.NewFromInt(150)), "late fee: %s", summary.LateFee)
}

func TestCalculate_LateFeeGraceDays(t *testing.T) {
	params := CalculateParams{
		Room:       testRoom(),
		Previous:   testReading(day(2024, time.March, 1), 0, 0),
		Current:    testReading(day(2024, time.March, 31), 0, 0),
		RentalType: types.RentalTypeMonthly,
		PayDate:    day(2024, time.March, 8),
		RentDueDay: lo.ToPtr(5),
		LateFee: LateFeePolicy{
			Enabled:   true,
			Mode:      types.LateFeeModeFlat,
			Amount:    decimal.NewFromInt(100),
			GraceDays: 3,
		},
	}

	// Due 5th + 3 grace days = 8th; paying on the 8th is still on time.
	summary, err := Calculate(params)
	require.NoError(t, err)
	require.NotNil(t, summary.DueDate)
	assert.Equal(t, day(2024, time.March, 8), *summary.DueDate)
	assert.True(t, summary.LateFee.IsZero())

	params.PayDate = day(2024, time.March, 9)
	summary, err = Calculate(params)
	require.NoError(t, err)
	assert.True(t, summary.LateFee.Equal(decimal.NewFromInt(100)))
}

func TestCalculate_DueDayClampedToMonthEnd(t *testing.T) {
	params := CalculateParams{
		Room:       testRoom(),
		Previous:   testReading(day(2024, time.April, 1), 0, 0),
		Current:    testReading(day(2024, time.April, 28), 0, 0),
		RentalType: types.RentalTypeMonthly,
		PayDate:    day(2024, time.April, 30),
		RentDueDay: lo.ToPtr(31),
		LateFee: LateFeePolicy{
			Enabled: true,
			Mode:    types.LateFeeModeFlat,
			Amount:  decimal.NewFromInt(100),
		},
	}

	// April has 30 days, so day 31 clamps to the 30th.
	summary, err := Calculate(params)
	require.NoError(t, err)
	require.NotNil(t, summary.DueDate)
	assert.Equal(t, day(2024, time.April, 30), *summary.DueDate)
	assert.True(t, summary.LateFee.IsZero())
}

func TestCalculate_NoLateFeeForDailyRentals(t *testing.T) {
	params := CalculateParams{
		Room:       testRoom(),
		Previous:   testReading(day(2024, time.March, 1), 0, 0),
		Current:    testReading(day(2024, time.March, 10), 0, 0),
		RentalType: types.RentalTypeDaily,
		PayDate:    day(2024, time.June, 1),
		LateFee: LateFeePolicy{
			Enabled: true,
			Mode:    types.LateFeeModeFlat,
			Amount:  decimal.NewFromInt(100),
		},
	}

	summary, err := Calculate(params)
	require.NoError(t, err)
	assert.True(t, summary.LateFee.IsZero())
	assert.Nil(t, summary.DueDate)
}

func TestCalculate_AdditionalChargesOrderAndNet(t *testing.T) {
	params := CalculateParams{
		Room:       testRoom(),
		Previous:   testReading(day(2024, time.March, 1), 0, 0),
		Current:    testReading(day(2024, time.March, 31), 0, 0),
		RentalType: types.RentalTypeMonthly,
		PayDate:    day(2024, time.April, 1),
		AdditionalCharges: []AdditionalCharge{
			{Name: "Cleaning", Amount: decimal.NewFromInt(150)},
			{Name: "Discount", Amount: decimal.NewFromInt(-50)},
		},
	}

	summary, err := Calculate(params)
	require.NoError(t, err)

	require.Len(t, summary.AdditionalCharges, 2)
	assert.Equal(t, "Cleaning", summary.AdditionalCharges[0].Name)
	assert.Equal(t, "Discount", summary.AdditionalCharges[1].Name)
	assert.True(t, summary.AdditionalTotal.Equal(decimal.NewFromInt(100)), "additional total: %s", summary.AdditionalTotal)
	assert.True(t, summary.Total.Equal(decimal.NewFromInt(3100)), "total: %s", summary.Total)
}

func TestCalculate_RoundingStability(t *testing.T) {
	charges := make([]AdditionalCharge, 0, 1000)
	reference := decimal.Zero
	tiny := decimal.RequireFromString("0.005")
	for i := 0; i < 1000; i++ {
		charges = append(charges, AdditionalCharge{Name: "micro", Amount: tiny})
		reference = reference.Add(tiny)
	}

	params := CalculateParams{
		Room:              testRoom(),
		Previous:          testReading(day(2024, time.March, 1), 0, 0),
		Current:           testReading(day(2024, time.March, 31), 0, 0),
		RentalType:        types.RentalTypeMonthly,
		PayDate:           day(2024, time.April, 1),
		AdditionalCharges: charges,
	}

	summary, err := Calculate(params)
	require.NoError(t, err)

	// Summed at full precision then rounded once: drift from the reference
	// sum is at most one minor unit.
	drift := summary.AdditionalTotal.Sub(reference).Abs()
	assert.True(t, drift.LessThanOrEqual(decimal.RequireFromString("0.01")), "drift: %s", drift)
}

func TestCalculate_BankersRounding(t *testing.T) {
	r := testRoom()
	r.WaterRate = decimal.RequireFromString("0.125")
	r.ElectricRate = decimal.RequireFromString("0.135")

	params := CalculateParams{
		Room:       r,
		Previous:   testReading(day(2024, time.March, 1), 0, 0),
		Current:    testReading(day(2024, time.March, 31), 1, 1),
		RentalType: types.RentalTypeMonthly,
		PayDate:    day(2024, time.April, 1),
	}

	summary, err := Calculate(params)
	require.NoError(t, err)

	// Half-to-even: 0.125 -> 0.12, 0.135 -> 0.14.
	assert.True(t, summary.Water.Amount.Equal(decimal.RequireFromString("0.12")), "water: %s", summary.Water.Amount)
	assert.True(t, summary.Electric.Amount.Equal(decimal.RequireFromString("0.14")), "electric: %s", summary.Electric.Amount)
}

func TestCalculate_InvalidInput(t *testing.T) {
	valid := func() CalculateParams {
		return CalculateParams{
			Room:       testRoom(),
			Previous:   testReading(day(2024, time.March, 1), 0, 0),
			Current:    testReading(day(2024, time.March, 31), 0, 0),
			RentalType: types.RentalTypeMonthly,
			PayDate:    day(2024, time.April, 1),
		}
	}

	tests := []struct {
		name   string
		mutate func(p *CalculateParams)
	}{
		{
			name:   "missing room",
			mutate: func(p *CalculateParams) { p.Room = nil },
		},
		{
			name: "negative monthly rate",
			mutate: func(p *CalculateParams) {
				p.Room.RateMonthly = decimal.NewFromInt(-1)
			},
		},
		{
			name: "negative water rate",
			mutate: func(p *CalculateParams) {
				p.Room.WaterRate = decimal.RequireFromString("-0.01")
			},
		},
		{
			name:   "missing previous reading",
			mutate: func(p *CalculateParams) { p.Previous = nil },
		},
		{
			name: "current dated before previous",
			mutate: func(p *CalculateParams) {
				p.Current.ReadingDate = day(2024, time.February, 1)
			},
		},
		{
			name: "readings for different rooms",
			mutate: func(p *CalculateParams) {
				p.Current.RoomID = "room_other"
			},
		},
		{
			name:   "unrecognized rental type",
			mutate: func(p *CalculateParams) { p.RentalType = "hourly" },
		},
		{
			name:   "due day below range",
			mutate: func(p *CalculateParams) { p.RentDueDay = lo.ToPtr(0) },
		},
		{
			name:   "due day above range",
			mutate: func(p *CalculateParams) { p.RentDueDay = lo.ToPtr(32) },
		},
		{
			name: "due day without pay date",
			mutate: func(p *CalculateParams) {
				p.RentDueDay = lo.ToPtr(5)
				p.PayDate = time.Time{}
			},
		},
		{
			name: "negative late fee amount",
			mutate: func(p *CalculateParams) {
				p.LateFee = LateFeePolicy{
					Enabled: true,
					Mode:    types.LateFeeModeFlat,
					Amount:  decimal.NewFromInt(-10),
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := valid()
			tt.mutate(&params)
			summary, err := Calculate(params)
			assert.Nil(t, summary)
			assert.True(t, ierr.IsValidation(err), "expected validation error, got %v", err)
		})
	}
}

func TestCalculate_ZeroLengthPeriodStillComputesConsumption(t *testing.T) {
	params := CalculateParams{
		Room:       testRoom(),
		Previous:   testReading(day(2024, time.March, 10), 100, 500),
		Current:    testReading(day(2024, time.March, 10), 103, 510),
		RentalType: types.RentalTypeMonthly,
		PayDate:    day(2024, time.March, 10),
	}

	summary, err := Calculate(params)
	require.NoError(t, err)

	assert.True(t, summary.Water.Consumption.Equal(decimal.NewFromInt(3)))
	assert.True(t, summary.Electric.Consumption.Equal(decimal.NewFromInt(10)))
	assert.Equal(t, summary.PeriodStart, summary.PeriodEnd)
}
