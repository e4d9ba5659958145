package service

import (
	"context"

	"github.com/roomledger/roomledger/internal/api/dto"
	"github.com/roomledger/roomledger/internal/cache"
	"github.com/roomledger/roomledger/internal/domain/room"
	ierr "github.com/roomledger/roomledger/internal/errors"
)

const roomCacheKeyPrefix = "room:"

// RoomService manages the room catalog.
type RoomService interface {
	CreateRoom(ctx context.Context, req dto.CreateRoomRequest) (*dto.RoomResponse, error)
	GetRoom(ctx context.Context, id string) (*dto.RoomResponse, error)
	ListRooms(ctx context.Context, filter *room.Filter) (*dto.ListRoomsResponse, error)
	UpdateRoom(ctx context.Context, id string, req dto.UpdateRoomRequest) (*dto.RoomResponse, error)
	DeleteRoom(ctx context.Context, id string) error
}

type roomService struct {
	ServiceParams
}

func NewRoomService(params ServiceParams) RoomService {
	return &roomService{
		ServiceParams: params,
	}
}

func (s *roomService) CreateRoom(ctx context.Context, req dto.CreateRoomRequest) (*dto.RoomResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	rm := req.ToRoom(ctx)
	if err := rm.Validate(); err != nil {
		return nil, err
	}

	// Room numbers are unique within a tenant
	if existing, err := s.RoomRepo.GetByNumber(ctx, rm.RoomNumber); err == nil && existing != nil {
		return nil, ierr.NewErrorf("room %s already exists", rm.RoomNumber).
			WithHint("A room with this number already exists").
			WithReportableDetails(map[string]any{
				"room_number": rm.RoomNumber,
			}).
			Mark(ierr.ErrAlreadyExists)
	} else if err != nil && !ierr.IsNotFound(err) {
		return nil, err
	}

	if err := s.RoomRepo.Create(ctx, rm); err != nil {
		return nil, err
	}

	return &dto.RoomResponse{Room: rm}, nil
}

func (s *roomService) GetRoom(ctx context.Context, id string) (*dto.RoomResponse, error) {
	if id == "" {
		return nil, ierr.NewError("room id is required").
			WithHint("Please provide a valid room ID").
			Mark(ierr.ErrValidation)
	}

	rm, err := s.getRoomCached(ctx, id)
	if err != nil {
		return nil, err
	}

	return &dto.RoomResponse{Room: rm}, nil
}

func (s *roomService) ListRooms(ctx context.Context, filter *room.Filter) (*dto.ListRoomsResponse, error) {
	if filter == nil {
		filter = &room.Filter{}
	}

	rooms, err := s.RoomRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.RoomResponse, len(rooms))
	for i, rm := range rooms {
		items[i] = &dto.RoomResponse{Room: rm}
	}

	return &dto.ListRoomsResponse{
		Items:      items,
		Pagination: listPagination(len(items), filter.Limit, filter.Offset),
	}, nil
}

func (s *roomService) UpdateRoom(ctx context.Context, id string, req dto.UpdateRoomRequest) (*dto.RoomResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	rm, err := s.RoomRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.RoomType != nil {
		rm.RoomType = *req.RoomType
	}
	if req.RateMonthly != nil {
		rm.RateMonthly = *req.RateMonthly
	}
	if req.RateDaily != nil {
		rm.RateDaily = *req.RateDaily
	}
	if req.WaterRate != nil {
		rm.WaterRate = *req.WaterRate
	}
	if req.ElectricRate != nil {
		rm.ElectricRate = *req.ElectricRate
	}
	if req.WaterMeterMax != nil {
		rm.WaterMeterMax = req.WaterMeterMax
	}
	if req.ElectricMeterMax != nil {
		rm.ElectricMeterMax = req.ElectricMeterMax
	}

	if err := rm.Validate(); err != nil {
		return nil, err
	}

	if err := s.RoomRepo.Update(ctx, rm); err != nil {
		return nil, err
	}

	s.invalidateRoomCache(ctx, id)

	return &dto.RoomResponse{Room: rm}, nil
}

func (s *roomService) DeleteRoom(ctx context.Context, id string) error {
	if id == "" {
		return ierr.NewError("room id is required").
			WithHint("Please provide a valid room ID").
			Mark(ierr.ErrValidation)
	}

	// A room with an active resident cannot be removed
	if _, err := s.ResidentRepo.GetActiveByRoom(ctx, id); err == nil {
		return ierr.NewError("room is occupied").
			WithHint("Check the resident out before deleting the room").
			Mark(ierr.ErrInvalidOperation)
	} else if !ierr.IsNotFound(err) {
		return err
	}

	if err := s.RoomRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidateRoomCache(ctx, id)

	return nil
}

func (s *roomService) getRoomCached(ctx context.Context, id string) (*room.Room, error) {
	if s.Cache != nil {
		if value, found := s.Cache.Get(ctx, roomCacheKeyPrefix+id); found {
			if rm, ok := cache.UnmarshalCacheValue[room.Room](value); ok {
				return rm, nil
			}
		}
	}

	rm, err := s.RoomRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.Cache != nil {
		s.Cache.Set(ctx, roomCacheKeyPrefix+id, rm, 0)
	}

	return rm, nil
}

func (s *roomService) invalidateRoomCache(ctx context.Context, id string) {
	if s.Cache != nil {
		s.Cache.Delete(ctx, roomCacheKeyPrefix+id)
	}
}
