package service

import (
	"context"

	"github.com/roomledger/roomledger/internal/api/dto"
	"github.com/roomledger/roomledger/internal/domain/reading"
	ierr "github.com/roomledger/roomledger/internal/errors"
)

// ReadingService records and queries meter snapshots.
type ReadingService interface {
	CreateReading(ctx context.Context, req dto.CreateMeterReadingRequest) (*dto.MeterReadingResponse, error)
	GetReading(ctx context.Context, id string) (*dto.MeterReadingResponse, error)
	GetLatestReading(ctx context.Context, roomID string) (*dto.MeterReadingResponse, error)
	ListReadings(ctx context.Context, filter *reading.Filter) (*dto.ListMeterReadingsResponse, error)
}

type readingService struct {
	ServiceParams
}

func NewReadingService(params ServiceParams) ReadingService {
	return &readingService{
		ServiceParams: params,
	}
}

func (s *readingService) CreateReading(ctx context.Context, req dto.CreateMeterReadingRequest) (*dto.MeterReadingResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.RoomRepo.Get(ctx, req.RoomID); err != nil {
		return nil, err
	}

	rd := req.ToMeterReading(ctx)
	if err := rd.Validate(); err != nil {
		return nil, err
	}

	// A counter lower than the last snapshot is legal, it signals a meter
	// reset or rollover that the billing engine resolves later. Log it so
	// suspicious entries are visible at ingestion time.
	latest, err := s.ReadingRepo.GetLatestByRoom(ctx, req.RoomID)
	if err != nil && !ierr.IsNotFound(err) {
		return nil, err
	}
	if latest != nil {
		if rd.ReadingDate.Before(latest.ReadingDate) {
			return nil, ierr.NewError("reading date precedes the latest reading").
				WithHint("Readings must be recorded in chronological order").
				WithReportableDetails(map[string]any{
					"latest_reading_date": latest.ReadingDate,
					"reading_date":        rd.ReadingDate,
				}).
				Mark(ierr.ErrInvalidOperation)
		}
		if rd.WaterUnits.LessThan(latest.WaterUnits) || rd.ElectricUnits.LessThan(latest.ElectricUnits) {
			s.Logger.Warnw("meter counter decreased, possible reset or rollover",
				"room_id", req.RoomID,
				"previous_water", latest.WaterUnits,
				"current_water", rd.WaterUnits,
				"previous_electric", latest.ElectricUnits,
				"current_electric", rd.ElectricUnits,
			)
		}
	}

	if err := s.ReadingRepo.Create(ctx, rd); err != nil {
		return nil, err
	}

	return &dto.MeterReadingResponse{MeterReading: rd}, nil
}

func (s *readingService) GetReading(ctx context.Context, id string) (*dto.MeterReadingResponse, error) {
	if id == "" {
		return nil, ierr.NewError("reading id is required").
			WithHint("Please provide a valid reading ID").
			Mark(ierr.ErrValidation)
	}

	rd, err := s.ReadingRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	return &dto.MeterReadingResponse{MeterReading: rd}, nil
}

func (s *readingService) GetLatestReading(ctx context.Context, roomID string) (*dto.MeterReadingResponse, error) {
	if roomID == "" {
		return nil, ierr.NewError("room id is required").
			WithHint("Please provide a valid room ID").
			Mark(ierr.ErrValidation)
	}

	rd, err := s.ReadingRepo.GetLatestByRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}

	return &dto.MeterReadingResponse{MeterReading: rd}, nil
}

func (s *readingService) ListReadings(ctx context.Context, filter *reading.Filter) (*dto.ListMeterReadingsResponse, error) {
	if filter == nil {
		filter = &reading.Filter{}
	}

	readings, err := s.ReadingRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.MeterReadingResponse, len(readings))
	for i, rd := range readings {
		items[i] = &dto.MeterReadingResponse{MeterReading: rd}
	}

	return &dto.ListMeterReadingsResponse{
		Items:      items,
		Pagination: listPagination(len(items), filter.Limit, filter.Offset),
	}, nil
}
