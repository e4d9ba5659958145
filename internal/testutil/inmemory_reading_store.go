package testutil

import (
	"context"
	"sort"

	"github.com/samber/lo"

	"github.com/roomledger/roomledger/internal/domain/reading"
	ierr "github.com/roomledger/roomledger/internal/errors"
)

// InMemoryReadingStore implements reading.Repository
type InMemoryReadingStore struct {
	*InMemoryStore[*reading.MeterReading]
}

// NewInMemoryReadingStore creates a new in-memory meter reading store
func NewInMemoryReadingStore() *InMemoryReadingStore {
	return &InMemoryReadingStore{InMemoryStore: NewInMemoryStore[*reading.MeterReading]()}
}

func copyReading(m *reading.MeterReading) *reading.MeterReading {
	if m == nil {
		return nil
	}
	copied := *m
	return &copied
}

func (s *InMemoryReadingStore) Create(ctx context.Context, m *reading.MeterReading) error {
	if m == nil {
		return ierr.NewError("meter reading cannot be nil").
			WithHint("Meter reading cannot be nil").
			Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Create(ctx, m.ID, copyReading(m))
}

func (s *InMemoryReadingStore) Get(ctx context.Context, id string) (*reading.MeterReading, error) {
	m, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return copyReading(m), nil
}

func (s *InMemoryReadingStore) GetLatestByRoom(ctx context.Context, roomID string) (*reading.MeterReading, error) {
	readings := s.InMemoryStore.List(ctx, func(m *reading.MeterReading) bool {
		return m.RoomID == roomID
	})
	if len(readings) == 0 {
		return nil, ierr.NewErrorf("no readings for room %s", roomID).
			WithHint("The room has no meter readings yet").
			Mark(ierr.ErrNotFound)
	}
	latest := readings[0]
	for _, m := range readings[1:] {
		if m.ReadingDate.After(latest.ReadingDate) {
			latest = m
		}
	}
	return copyReading(latest), nil
}

func (s *InMemoryReadingStore) List(ctx context.Context, filter *reading.Filter) ([]*reading.MeterReading, error) {
	readings := s.InMemoryStore.List(ctx, func(m *reading.MeterReading) bool {
		if filter == nil {
			return true
		}
		if filter.RoomID != "" && m.RoomID != filter.RoomID {
			return false
		}
		if filter.StartDate != nil && m.ReadingDate.Before(*filter.StartDate) {
			return false
		}
		if filter.EndDate != nil && m.ReadingDate.After(*filter.EndDate) {
			return false
		}
		return true
	})
	sort.Slice(readings, func(i, j int) bool {
		return readings[i].ReadingDate.After(readings[j].ReadingDate)
	})
	if filter != nil {
		readings = paginate(readings, filter.Limit, filter.Offset)
	}
	return lo.Map(readings, func(m *reading.MeterReading, _ int) *reading.MeterReading {
		return copyReading(m)
	}), nil
}
