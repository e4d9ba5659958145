package service

import (
	"context"
	"time"

	"github.com/roomledger/roomledger/internal/api/dto"
	"github.com/roomledger/roomledger/internal/domain/maintenance"
	ierr "github.com/roomledger/roomledger/internal/errors"
)

// MaintenanceService tracks reported issues through their status flow.
type MaintenanceService interface {
	CreateRequest(ctx context.Context, req dto.CreateMaintenanceRequest) (*dto.MaintenanceResponse, error)
	GetRequest(ctx context.Context, id string) (*dto.MaintenanceResponse, error)
	ListRequests(ctx context.Context, filter *maintenance.Filter) (*dto.ListMaintenanceResponse, error)
	UpdateStatus(ctx context.Context, id string, req dto.UpdateMaintenanceStatusRequest) (*dto.MaintenanceResponse, error)
}

type maintenanceService struct {
	ServiceParams
}

func NewMaintenanceService(params ServiceParams) MaintenanceService {
	return &maintenanceService{
		ServiceParams: params,
	}
}

func (s *maintenanceService) CreateRequest(ctx context.Context, req dto.CreateMaintenanceRequest) (*dto.MaintenanceResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.RoomRepo.Get(ctx, req.RoomID); err != nil {
		return nil, err
	}

	request := req.ToRequest(ctx)
	if err := request.Validate(); err != nil {
		return nil, err
	}

	if err := s.MaintenanceRepo.Create(ctx, request); err != nil {
		return nil, err
	}

	return &dto.MaintenanceResponse{Request: request}, nil
}

func (s *maintenanceService) GetRequest(ctx context.Context, id string) (*dto.MaintenanceResponse, error) {
	if id == "" {
		return nil, ierr.NewError("request id is required").
			WithHint("Please provide a valid request ID").
			Mark(ierr.ErrValidation)
	}

	request, err := s.MaintenanceRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	return &dto.MaintenanceResponse{Request: request}, nil
}

func (s *maintenanceService) ListRequests(ctx context.Context, filter *maintenance.Filter) (*dto.ListMaintenanceResponse, error) {
	if filter == nil {
		filter = &maintenance.Filter{}
	}

	requests, err := s.MaintenanceRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.MaintenanceResponse, len(requests))
	for i, request := range requests {
		items[i] = &dto.MaintenanceResponse{Request: request}
	}

	return &dto.ListMaintenanceResponse{
		Items:      items,
		Pagination: listPagination(len(items), filter.Limit, filter.Offset),
	}, nil
}

func (s *maintenanceService) UpdateStatus(ctx context.Context, id string, req dto.UpdateMaintenanceStatusRequest) (*dto.MaintenanceResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	request, err := s.MaintenanceRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := request.Transition(req.Status, time.Now()); err != nil {
		return nil, err
	}

	if err := s.MaintenanceRepo.Update(ctx, request); err != nil {
		return nil, err
	}

	return &dto.MaintenanceResponse{Request: request}, nil
}
