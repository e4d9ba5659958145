package testutil

import (
	"context"
	"sort"

	"github.com/samber/lo"

	"github.com/roomledger/roomledger/internal/domain/resident"
	ierr "github.com/roomledger/roomledger/internal/errors"
)

// InMemoryResidentStore implements resident.Repository
type InMemoryResidentStore struct {
	*InMemoryStore[*resident.Resident]
}

// NewInMemoryResidentStore creates a new in-memory resident store
func NewInMemoryResidentStore() *InMemoryResidentStore {
	return &InMemoryResidentStore{InMemoryStore: NewInMemoryStore[*resident.Resident]()}
}

func copyResident(r *resident.Resident) *resident.Resident {
	if r == nil {
		return nil
	}
	copied := *r
	if r.RentDueDay != nil {
		copied.RentDueDay = lo.ToPtr(*r.RentDueDay)
	}
	if r.CheckOutDate != nil {
		copied.CheckOutDate = lo.ToPtr(*r.CheckOutDate)
	}
	return &copied
}

func (s *InMemoryResidentStore) Create(ctx context.Context, r *resident.Resident) error {
	if r == nil {
		return ierr.NewError("resident cannot be nil").
			WithHint("Resident cannot be nil").
			Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Create(ctx, r.ID, copyResident(r))
}

func (s *InMemoryResidentStore) Get(ctx context.Context, id string) (*resident.Resident, error) {
	r, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return copyResident(r), nil
}

func (s *InMemoryResidentStore) GetActiveByRoom(ctx context.Context, roomID string) (*resident.Resident, error) {
	residents := s.InMemoryStore.List(ctx, func(r *resident.Resident) bool {
		return r.RoomID == roomID && r.IsActive()
	})
	if len(residents) == 0 {
		return nil, ierr.NewErrorf("no active resident in room %s", roomID).
			WithHint("The room is vacant").
			Mark(ierr.ErrNotFound)
	}
	return copyResident(residents[0]), nil
}

func (s *InMemoryResidentStore) List(ctx context.Context, filter *resident.Filter) ([]*resident.Resident, error) {
	residents := s.InMemoryStore.List(ctx, func(r *resident.Resident) bool {
		if filter == nil {
			return true
		}
		if filter.RoomID != "" && r.RoomID != filter.RoomID {
			return false
		}
		if filter.ActiveOnly && !r.IsActive() {
			return false
		}
		return true
	})
	sort.Slice(residents, func(i, j int) bool {
		return residents[i].CheckInDate.After(residents[j].CheckInDate)
	})
	if filter != nil {
		residents = paginate(residents, filter.Limit, filter.Offset)
	}
	return lo.Map(residents, func(r *resident.Resident, _ int) *resident.Resident {
		return copyResident(r)
	}), nil
}

func (s *InMemoryResidentStore) Update(ctx context.Context, r *resident.Resident) error {
	return s.InMemoryStore.Update(ctx, r.ID, copyResident(r))
}
