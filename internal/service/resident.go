package service

import (
	"context"

	"github.com/roomledger/roomledger/internal/api/dto"
	"github.com/roomledger/roomledger/internal/domain/resident"
	ierr "github.com/roomledger/roomledger/internal/errors"
)

// ResidentService manages occupancy: check-ins, check-outs and lookups.
type ResidentService interface {
	CheckIn(ctx context.Context, req dto.CheckInResidentRequest) (*dto.ResidentResponse, error)
	CheckOut(ctx context.Context, id string, req dto.CheckOutResidentRequest) (*dto.ResidentResponse, error)
	GetResident(ctx context.Context, id string) (*dto.ResidentResponse, error)
	ListResidents(ctx context.Context, filter *resident.Filter) (*dto.ListResidentsResponse, error)
}

type residentService struct {
	ServiceParams
}

func NewResidentService(params ServiceParams) ResidentService {
	return &residentService{
		ServiceParams: params,
	}
}

func (s *residentService) CheckIn(ctx context.Context, req dto.CheckInResidentRequest) (*dto.ResidentResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.RoomRepo.Get(ctx, req.RoomID); err != nil {
		return nil, err
	}

	// One active resident per room
	if _, err := s.ResidentRepo.GetActiveByRoom(ctx, req.RoomID); err == nil {
		return nil, ierr.NewError("room is already occupied").
			WithHint("Check the current resident out first").
			WithReportableDetails(map[string]any{
				"room_id": req.RoomID,
			}).
			Mark(ierr.ErrInvalidOperation)
	} else if !ierr.IsNotFound(err) {
		return nil, err
	}

	res := req.ToResident(ctx)
	if err := res.Validate(); err != nil {
		return nil, err
	}

	if err := s.ResidentRepo.Create(ctx, res); err != nil {
		return nil, err
	}

	s.Logger.Infow("resident checked in",
		"resident_id", res.ID,
		"room_id", res.RoomID,
	)

	return &dto.ResidentResponse{Resident: res}, nil
}

func (s *residentService) CheckOut(ctx context.Context, id string, req dto.CheckOutResidentRequest) (*dto.ResidentResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	res, err := s.ResidentRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if !res.IsActive() {
		return nil, ierr.NewError("resident is already checked out").
			WithHint("The resident has already checked out").
			Mark(ierr.ErrInvalidOperation)
	}

	checkOut := req.CheckOutDate.UTC()
	if checkOut.Before(res.CheckInDate) {
		return nil, ierr.NewError("check_out_date precedes check_in_date").
			WithHint("Check-out must not be before check-in").
			Mark(ierr.ErrValidation)
	}

	res.CheckOutDate = &checkOut
	if err := s.ResidentRepo.Update(ctx, res); err != nil {
		return nil, err
	}

	s.Logger.Infow("resident checked out",
		"resident_id", res.ID,
		"room_id", res.RoomID,
	)

	return &dto.ResidentResponse{Resident: res}, nil
}

func (s *residentService) GetResident(ctx context.Context, id string) (*dto.ResidentResponse, error) {
	if id == "" {
		return nil, ierr.NewError("resident id is required").
			WithHint("Please provide a valid resident ID").
			Mark(ierr.ErrValidation)
	}

	res, err := s.ResidentRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	return &dto.ResidentResponse{Resident: res}, nil
}

func (s *residentService) ListResidents(ctx context.Context, filter *resident.Filter) (*dto.ListResidentsResponse, error) {
	if filter == nil {
		filter = &resident.Filter{}
	}

	residents, err := s.ResidentRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.ResidentResponse, len(residents))
	for i, res := range residents {
		items[i] = &dto.ResidentResponse{Resident: res}
	}

	return &dto.ListResidentsResponse{
		Items:      items,
		Pagination: listPagination(len(items), filter.Limit, filter.Offset),
	}, nil
}
