package testutil

import (
	"context"

	"github.com/samber/lo"

	"github.com/roomledger/roomledger/internal/domain/maintenance"
	ierr "github.com/roomledger/roomledger/internal/errors"
)

// InMemoryMaintenanceStore implements maintenance.Repository
type InMemoryMaintenanceStore struct {
	*InMemoryStore[*maintenance.Request]
}

// NewInMemoryMaintenanceStore creates a new in-memory maintenance store
func NewInMemoryMaintenanceStore() *InMemoryMaintenanceStore {
	return &InMemoryMaintenanceStore{InMemoryStore: NewInMemoryStore[*maintenance.Request]()}
}

func copyMaintenance(m *maintenance.Request) *maintenance.Request {
	if m == nil {
		return nil
	}
	copied := *m
	if m.ResolvedAt != nil {
		copied.ResolvedAt = lo.ToPtr(*m.ResolvedAt)
	}
	return &copied
}

func (s *InMemoryMaintenanceStore) Create(ctx context.Context, m *maintenance.Request) error {
	if m == nil {
		return ierr.NewError("maintenance request cannot be nil").
			WithHint("Maintenance request cannot be nil").
			Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Create(ctx, m.ID, copyMaintenance(m))
}

func (s *InMemoryMaintenanceStore) Get(ctx context.Context, id string) (*maintenance.Request, error) {
	m, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return copyMaintenance(m), nil
}

func (s *InMemoryMaintenanceStore) List(ctx context.Context, filter *maintenance.Filter) ([]*maintenance.Request, error) {
	requests := s.InMemoryStore.List(ctx, func(m *maintenance.Request) bool {
		if filter == nil {
			return true
		}
		if filter.RoomID != "" && m.RoomID != filter.RoomID {
			return false
		}
		if filter.RequestStatus != "" && m.RequestStatus != filter.RequestStatus {
			return false
		}
		return true
	})
	if filter != nil {
		requests = paginate(requests, filter.Limit, filter.Offset)
	}
	return lo.Map(requests, func(m *maintenance.Request, _ int) *maintenance.Request {
		return copyMaintenance(m)
	}), nil
}

func (s *InMemoryMaintenanceStore) Update(ctx context.Context, m *maintenance.Request) error {
	return s.InMemoryStore.Update(ctx, m.ID, copyMaintenance(m))
}
