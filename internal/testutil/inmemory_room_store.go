package testutil

import (
	"context"
	"sort"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/roomledger/roomledger/internal/domain/room"
	ierr "github.com/roomledger/roomledger/internal/errors"
	"github.com/roomledger/roomledger/internal/types"
)

// InMemoryRoomStore implements room.Repository
type InMemoryRoomStore struct {
	*InMemoryStore[*room.Room]
}

// NewInMemoryRoomStore creates a new in-memory room store
func NewInMemoryRoomStore() *InMemoryRoomStore {
	return &InMemoryRoomStore{InMemoryStore: NewInMemoryStore[*room.Room]()}
}

func copyRoom(r *room.Room) *room.Room {
	if r == nil {
		return nil
	}
	copied := *r
	copied.WaterMeterMax = copyDecimalPtr(r.WaterMeterMax)
	copied.ElectricMeterMax = copyDecimalPtr(r.ElectricMeterMax)
	return &copied
}

func copyDecimalPtr(d *decimal.Decimal) *decimal.Decimal {
	if d == nil {
		return nil
	}
	return lo.ToPtr(*d)
}

func (s *InMemoryRoomStore) Create(ctx context.Context, r *room.Room) error {
	if r == nil {
		return ierr.NewError("room cannot be nil").
			WithHint("Room cannot be nil").
			Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Create(ctx, r.ID, copyRoom(r))
}

func (s *InMemoryRoomStore) Get(ctx context.Context, id string) (*room.Room, error) {
	r, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.Status == types.StatusDeleted {
		return nil, ierr.NewErrorf("room %s not found", id).
			WithHint("Room not found").
			Mark(ierr.ErrNotFound)
	}
	return copyRoom(r), nil
}

func (s *InMemoryRoomStore) GetByNumber(ctx context.Context, roomNumber string) (*room.Room, error) {
	rooms := s.InMemoryStore.List(ctx, func(r *room.Room) bool {
		return r.RoomNumber == roomNumber && r.Status != types.StatusDeleted
	})
	if len(rooms) == 0 {
		return nil, ierr.NewErrorf("room %s not found", roomNumber).
			WithHint("Room not found").
			Mark(ierr.ErrNotFound)
	}
	return copyRoom(rooms[0]), nil
}

func (s *InMemoryRoomStore) List(ctx context.Context, filter *room.Filter) ([]*room.Room, error) {
	rooms := s.InMemoryStore.List(ctx, func(r *room.Room) bool {
		if r.Status == types.StatusDeleted {
			return false
		}
		if filter == nil {
			return true
		}
		if len(filter.RoomIDs) > 0 && !lo.Contains(filter.RoomIDs, r.ID) {
			return false
		}
		if filter.RoomType != "" && r.RoomType != filter.RoomType {
			return false
		}
		if filter.Status != "" && r.Status != filter.Status {
			return false
		}
		return true
	})
	sort.Slice(rooms, func(i, j int) bool {
		return rooms[i].RoomNumber < rooms[j].RoomNumber
	})
	if filter != nil {
		rooms = paginate(rooms, filter.Limit, filter.Offset)
	}
	return lo.Map(rooms, func(r *room.Room, _ int) *room.Room { return copyRoom(r) }), nil
}

func (s *InMemoryRoomStore) Update(ctx context.Context, r *room.Room) error {
	return s.InMemoryStore.Update(ctx, r.ID, copyRoom(r))
}

func (s *InMemoryRoomStore) Delete(ctx context.Context, id string) error {
	r, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return err
	}
	deleted := copyRoom(r)
	deleted.Status = types.StatusDeleted
	return s.InMemoryStore.Update(ctx, id, deleted)
}
