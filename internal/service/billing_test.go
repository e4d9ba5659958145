package service

import (
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/roomledger/roomledger/internal/api/dto"
	"github.com/roomledger/roomledger/internal/domain/billing"
	"github.com/roomledger/roomledger/internal/domain/reading"
	"github.com/roomledger/roomledger/internal/domain/resident"
	"github.com/roomledger/roomledger/internal/domain/room"
	ierr "github.com/roomledger/roomledger/internal/errors"
	"github.com/roomledger/roomledger/internal/testutil"
	"github.com/roomledger/roomledger/internal/types"
)

type BillingServiceSuite struct {
	testutil.BaseServiceTestSuite
	service BillingService
	params  ServiceParams

	testRoom     *room.Room
	testResident *resident.Resident
}

func TestBillingService(t *testing.T) {
	suite.Run(t, new(BillingServiceSuite))
}

func (s *BillingServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.params = ServiceParams{
		Logger:          s.GetLogger(),
		Config:          s.GetConfig(),
		RoomRepo:        s.GetStores().RoomRepo,
		ReadingRepo:     s.GetStores().ReadingRepo,
		BillRepo:        s.GetStores().BillRepo,
		ResidentRepo:    s.GetStores().ResidentRepo,
		MaintenanceRepo: s.GetStores().MaintenanceRepo,
		ProductRepo:     s.GetStores().ProductRepo,
		SaleRepo:        s.GetStores().SaleRepo,
		UserRepo:        s.GetStores().UserRepo,
	}
	s.service = NewBillingService(s.params)
	s.setupTestData()
}

func (s *BillingServiceSuite) setupTestData() {
	ctx := s.GetContext()

	s.testRoom = room.New(ctx, "101", "single")
	s.testRoom.RateMonthly = decimal.NewFromInt(3000)
	s.testRoom.RateDaily = decimal.NewFromInt(150)
	s.testRoom.WaterRate = decimal.NewFromInt(15)
	s.testRoom.ElectricRate = decimal.NewFromInt(8)
	s.NoError(s.GetStores().RoomRepo.Create(ctx, s.testRoom))

	s.testResident = resident.New(ctx, s.testRoom.ID, "Test Resident", types.RentalTypeMonthly, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	s.testResident.RentDueDay = lo.ToPtr(5)
	s.NoError(s.GetStores().ResidentRepo.Create(ctx, s.testResident))
}

func (s *BillingServiceSuite) createReading(date time.Time, water, electric int64) *reading.MeterReading {
	rd := reading.New(s.GetContext(), s.testRoom.ID, date, decimal.NewFromInt(water), decimal.NewFromInt(electric))
	s.NoError(s.GetStores().ReadingRepo.Create(s.GetContext(), rd))
	return rd
}

func (s *BillingServiceSuite) TestCalculateBillWithStoredReadings() {
	s.createReading(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), 100, 200)
	s.createReading(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), 120, 250)

	resp, err := s.service.CalculateBill(s.GetContext(), dto.CalculateBillRequest{
		RoomID:  s.testRoom.ID,
		PayDate: time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC),
	})
	s.NoError(err)
	s.NotNil(resp)

	summary := resp.Summary
	s.Equal(types.RentalTypeMonthly, summary.RentalType)
	s.True(summary.BaseRent.Equal(decimal.NewFromInt(3000)), "base rent %s", summary.BaseRent)
	s.True(summary.Water.Amount.Equal(decimal.NewFromInt(300)), "water %s", summary.Water.Amount)
	s.True(summary.Electric.Amount.Equal(decimal.NewFromInt(400)), "electric %s", summary.Electric.Amount)
	s.True(summary.Total.Equal(decimal.NewFromInt(3700)), "total %s", summary.Total)
	s.True(summary.LateFee.IsZero())
}

func (s *BillingServiceSuite) TestCalculateBillDefaultsFromResident() {
	// The resident's due day plus an enabled config policy make a late
	// payment attract the configured flat fee.
	s.params.Config.Billing.LateFeeEnabled = true
	s.params.Config.Billing.LateFeeAmount = decimal.NewFromInt(100)

	s.createReading(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), 100, 200)
	s.createReading(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), 120, 250)

	resp, err := s.service.CalculateBill(s.GetContext(), dto.CalculateBillRequest{
		RoomID:  s.testRoom.ID,
		PayDate: time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
	})
	s.NoError(err)
	s.True(resp.Summary.LateFee.Equal(decimal.NewFromInt(100)), "late fee %s", resp.Summary.LateFee)
	s.NotNil(resp.Summary.DueDate)
	s.Equal(time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), *resp.Summary.DueDate)
}

func (s *BillingServiceSuite) TestCalculateBillPolicyOverride() {
	s.params.Config.Billing.LateFeeEnabled = true
	s.params.Config.Billing.LateFeeAmount = decimal.NewFromInt(100)

	s.createReading(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), 100, 200)
	s.createReading(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), 120, 250)

	resp, err := s.service.CalculateBill(s.GetContext(), dto.CalculateBillRequest{
		RoomID:  s.testRoom.ID,
		PayDate: time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		LateFee: &dto.LateFeePolicyRequest{
			Enabled: false,
		},
	})
	s.NoError(err)
	s.True(resp.Summary.LateFee.IsZero(), "late fee %s", resp.Summary.LateFee)
}

func (s *BillingServiceSuite) TestCalculateBillInlineReadings() {
	resp, err := s.service.CalculateBill(s.GetContext(), dto.CalculateBillRequest{
		RoomID:     s.testRoom.ID,
		RentalType: types.RentalTypeDaily,
		Previous: &dto.MeterReadingValues{
			ReadingDate:   time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			WaterUnits:    decimal.NewFromInt(100),
			ElectricUnits: decimal.NewFromInt(200),
		},
		Current: &dto.MeterReadingValues{
			ReadingDate:   time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
			WaterUnits:    decimal.NewFromInt(105),
			ElectricUnits: decimal.NewFromInt(210),
		},
	})
	s.NoError(err)
	s.Equal(3, resp.Summary.DaysInPeriod)
	s.True(resp.Summary.BaseRent.Equal(decimal.NewFromInt(450)), "base rent %s", resp.Summary.BaseRent)
}

func (s *BillingServiceSuite) TestCalculateBillRequiresTwoReadings() {
	s.createReading(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), 100, 200)

	_, err := s.service.CalculateBill(s.GetContext(), dto.CalculateBillRequest{
		RoomID: s.testRoom.ID,
	})
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *BillingServiceSuite) TestCalculateBillRoomNotFound() {
	_, err := s.service.CalculateBill(s.GetContext(), dto.CalculateBillRequest{
		RoomID: "room_missing",
	})
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *BillingServiceSuite) TestCalculateBillVacantRoomNeedsRentalType() {
	vacant := room.New(s.GetContext(), "102", "single")
	vacant.RateMonthly = decimal.NewFromInt(2500)
	s.NoError(s.GetStores().RoomRepo.Create(s.GetContext(), vacant))

	req := dto.CalculateBillRequest{
		RoomID: vacant.ID,
		Previous: &dto.MeterReadingValues{
			ReadingDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		},
		Current: &dto.MeterReadingValues{
			ReadingDate: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	_, err := s.service.CalculateBill(s.GetContext(), req)
	s.Error(err)
	s.True(ierr.IsValidation(err))

	req.RentalType = types.RentalTypeMonthly
	resp, err := s.service.CalculateBill(s.GetContext(), req)
	s.NoError(err)
	s.True(resp.Summary.BaseRent.Equal(decimal.NewFromInt(2500)))
}

func (s *BillingServiceSuite) TestCreateBillPersistsSummary() {
	s.createReading(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), 100, 200)
	s.createReading(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), 120, 250)

	payDate := time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC)
	resp, err := s.service.CreateBill(s.GetContext(), dto.CreateBillRequest{
		CalculateBillRequest: dto.CalculateBillRequest{
			RoomID:  s.testRoom.ID,
			PayDate: payDate,
			AdditionalCharges: []billing.AdditionalCharge{
				{Name: "laundry", Amount: decimal.NewFromInt(150)},
			},
		},
	})
	s.NoError(err)
	s.Equal(s.testResident.ID, resp.Bill.ResidentID)
	s.True(resp.Bill.Summary.Total.Equal(decimal.NewFromInt(3850)), "total %s", resp.Bill.Summary.Total)

	stored, err := s.service.GetBill(s.GetContext(), resp.Bill.ID)
	s.NoError(err)
	s.True(stored.Bill.Summary.Total.Equal(resp.Bill.Summary.Total))
	s.Equal(payDate, stored.Bill.PayDate)

	list, err := s.service.ListBills(s.GetContext(), &billing.Filter{RoomID: s.testRoom.ID})
	s.NoError(err)
	s.Len(list.Items, 1)
}

func (s *BillingServiceSuite) TestCalculateBillInvalidRequestShapes() {
	testCases := []struct {
		name string
		req  dto.CalculateBillRequest
	}{
		{
			name: "missing room id",
			req:  dto.CalculateBillRequest{},
		},
		{
			name: "only previous inline reading",
			req: dto.CalculateBillRequest{
				RoomID:   s.testRoom.ID,
				Previous: &dto.MeterReadingValues{ReadingDate: time.Now()},
			},
		},
		{
			name: "only one reading id",
			req: dto.CalculateBillRequest{
				RoomID:            s.testRoom.ID,
				PreviousReadingID: "read_1",
			},
		},
		{
			name: "inline readings and ids together",
			req: dto.CalculateBillRequest{
				RoomID:            s.testRoom.ID,
				PreviousReadingID: "read_1",
				CurrentReadingID:  "read_2",
				Previous:          &dto.MeterReadingValues{ReadingDate: time.Now()},
				Current:           &dto.MeterReadingValues{ReadingDate: time.Now()},
			},
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := s.service.CalculateBill(s.GetContext(), tc.req)
			s.Error(err)
			s.True(ierr.IsValidation(err))
		})
	}
}
