package service

import (
	"context"

	"github.com/roomledger/roomledger/internal/api/dto"
	"github.com/roomledger/roomledger/internal/domain/billing"
	"github.com/roomledger/roomledger/internal/domain/reading"
	ierr "github.com/roomledger/roomledger/internal/errors"
	"github.com/roomledger/roomledger/internal/types"
)

// BillingService runs the calculation engine over stored or inline readings
// and persists the results as bills.
type BillingService interface {
	CalculateBill(ctx context.Context, req dto.CalculateBillRequest) (*dto.CalculateBillResponse, error)
	CreateBill(ctx context.Context, req dto.CreateBillRequest) (*dto.BillResponse, error)
	GetBill(ctx context.Context, id string) (*dto.BillResponse, error)
	ListBills(ctx context.Context, filter *billing.Filter) (*dto.ListBillsResponse, error)
}

type billingService struct {
	ServiceParams
}

func NewBillingService(params ServiceParams) BillingService {
	return &billingService{
		ServiceParams: params,
	}
}

func (s *billingService) CalculateBill(ctx context.Context, req dto.CalculateBillRequest) (*dto.CalculateBillResponse, error) {
	summary, _, err := s.calculate(ctx, req)
	if err != nil {
		return nil, err
	}

	return &dto.CalculateBillResponse{Summary: summary}, nil
}

func (s *billingService) CreateBill(ctx context.Context, req dto.CreateBillRequest) (*dto.BillResponse, error) {
	summary, residentID, err := s.calculate(ctx, req.CalculateBillRequest)
	if err != nil {
		return nil, err
	}

	bill := billing.NewBill(ctx, req.RoomID, residentID, req.PayDate, summary)
	if err := bill.Validate(); err != nil {
		return nil, err
	}

	if err := s.BillRepo.Create(ctx, bill); err != nil {
		return nil, err
	}

	s.Logger.Infow("bill created",
		"bill_id", bill.ID,
		"room_id", bill.RoomID,
		"total", summary.Total,
	)

	return &dto.BillResponse{Bill: bill}, nil
}

func (s *billingService) GetBill(ctx context.Context, id string) (*dto.BillResponse, error) {
	if id == "" {
		return nil, ierr.NewError("bill id is required").
			WithHint("Please provide a valid bill ID").
			Mark(ierr.ErrValidation)
	}

	bill, err := s.BillRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	return &dto.BillResponse{Bill: bill}, nil
}

func (s *billingService) ListBills(ctx context.Context, filter *billing.Filter) (*dto.ListBillsResponse, error) {
	if filter == nil {
		filter = &billing.Filter{}
	}

	bills, err := s.BillRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.BillResponse, len(bills))
	for i, bill := range bills {
		items[i] = &dto.BillResponse{Bill: bill}
	}

	return &dto.ListBillsResponse{
		Items:      items,
		Pagination: listPagination(len(items), filter.Limit, filter.Offset),
	}, nil
}

// calculate assembles engine parameters from the request, filling gaps from
// the active resident's agreement and the configured late fee policy, then
// runs the pure calculation. It returns the resident attributed to the bill,
// empty when the room has none.
func (s *billingService) calculate(ctx context.Context, req dto.CalculateBillRequest) (*billing.BillSummary, string, error) {
	if err := req.Validate(); err != nil {
		return nil, "", err
	}

	rm, err := s.RoomRepo.Get(ctx, req.RoomID)
	if err != nil {
		return nil, "", err
	}

	previous, current, err := s.resolveReadings(ctx, req)
	if err != nil {
		return nil, "", err
	}

	rentalType := req.RentalType
	rentDueDay := req.RentDueDay
	residentID := ""

	res, err := s.ResidentRepo.GetActiveByRoom(ctx, req.RoomID)
	if err != nil && !ierr.IsNotFound(err) {
		return nil, "", err
	}
	if res != nil {
		residentID = res.ID
		if rentalType == "" {
			rentalType = res.RentalType
		}
		// Due days only matter for monthly agreements
		if rentDueDay == nil && rentalType == types.RentalTypeMonthly {
			rentDueDay = res.RentDueDay
		}
	}
	if rentalType == "" {
		return nil, "", ierr.NewError("rental type is required").
			WithHint("Provide a rental type or check a resident into the room").
			Mark(ierr.ErrValidation)
	}

	policy := s.lateFeePolicy(req)

	params := billing.CalculateParams{
		Room:              rm,
		Previous:          previous,
		Current:           current,
		RentalType:        rentalType,
		PayDate:           req.PayDate,
		RentDueDay:        rentDueDay,
		AdditionalCharges: req.AdditionalCharges,
		LateFee:           policy,
	}

	summary, err := billing.Calculate(params)
	if err != nil {
		return nil, "", err
	}

	return summary, residentID, nil
}

// resolveReadings returns the billing period's bounding readings, preferring
// explicit IDs, then inline values, then the room's two most recent
// snapshots.
func (s *billingService) resolveReadings(ctx context.Context, req dto.CalculateBillRequest) (*reading.MeterReading, *reading.MeterReading, error) {
	if req.PreviousReadingID != "" {
		previous, err := s.ReadingRepo.Get(ctx, req.PreviousReadingID)
		if err != nil {
			return nil, nil, err
		}
		current, err := s.ReadingRepo.Get(ctx, req.CurrentReadingID)
		if err != nil {
			return nil, nil, err
		}
		return previous, current, nil
	}

	if req.Previous != nil {
		previous := reading.New(ctx, req.RoomID, req.Previous.ReadingDate, req.Previous.WaterUnits, req.Previous.ElectricUnits)
		current := reading.New(ctx, req.RoomID, req.Current.ReadingDate, req.Current.WaterUnits, req.Current.ElectricUnits)
		return previous, current, nil
	}

	readings, err := s.ReadingRepo.List(ctx, &reading.Filter{RoomID: req.RoomID, Limit: 2})
	if err != nil {
		return nil, nil, err
	}
	if len(readings) < 2 {
		return nil, nil, ierr.NewError("room does not have two readings to bill against").
			WithHint("Record at least two meter readings or supply them inline").
			WithReportableDetails(map[string]any{
				"room_id": req.RoomID,
			}).
			Mark(ierr.ErrInvalidOperation)
	}

	// List is ordered newest first
	return readings[1], readings[0], nil
}

func (s *billingService) lateFeePolicy(req dto.CalculateBillRequest) billing.LateFeePolicy {
	if req.LateFee != nil {
		return req.LateFee.ToPolicy()
	}
	cfg := s.Config.Billing
	return billing.LateFeePolicy{
		Enabled:   cfg.LateFeeEnabled,
		Mode:      cfg.LateFeeMode,
		Amount:    cfg.LateFeeAmount,
		GraceDays: cfg.LateFeeGraceDays,
	}
}
