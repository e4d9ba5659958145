package gorm

import (
	"context"

	"github.com/cockroachdb/errors"
	"gorm.io/gorm"

	"github.com/roomledger/roomledger/internal/domain/maintenance"
	ierr "github.com/roomledger/roomledger/internal/errors"
)

type maintenanceRepository struct {
	client *Client
}

// NewMaintenanceRepository returns the Postgres-backed maintenance repository.
func NewMaintenanceRepository(client *Client) maintenance.Repository {
	return &maintenanceRepository{client: client}
}

func (r *maintenanceRepository) Create(ctx context.Context, m *maintenance.Request) error {
	if err := r.client.handle(ctx).Create(maintenanceFromDomain(m)).Error; err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create maintenance request").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *maintenanceRepository) Get(ctx context.Context, id string) (*maintenance.Request, error) {
	var row maintenanceRow
	err := r.client.scoped(ctx).First(&row, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ierr.NewErrorf("maintenance request %s not found", id).
				WithHint("Maintenance request not found").
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get maintenance request").
			Mark(ierr.ErrDatabase)
	}
	return row.toDomain(), nil
}

func (r *maintenanceRepository) List(ctx context.Context, filter *maintenance.Filter) ([]*maintenance.Request, error) {
	query := r.client.scoped(ctx)
	if filter != nil {
		if filter.RoomID != "" {
			query = query.Where("room_id = ?", filter.RoomID)
		}
		if filter.RequestStatus != "" {
			query = query.Where("request_status = ?", filter.RequestStatus)
		}
		if filter.Limit > 0 {
			query = query.Limit(filter.Limit).Offset(filter.Offset)
		}
	}

	var rows []maintenanceRow
	if err := query.Order("created_at desc").Find(&rows).Error; err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list maintenance requests").
			Mark(ierr.ErrDatabase)
	}

	requests := make([]*maintenance.Request, len(rows))
	for i, row := range rows {
		requests[i] = row.toDomain()
	}
	return requests, nil
}

func (r *maintenanceRepository) Update(ctx context.Context, m *maintenance.Request) error {
	result := r.client.scoped(ctx).
		Where("id = ?", m.ID).
		Save(maintenanceFromDomain(m))
	if result.Error != nil {
		return ierr.WithError(result.Error).
			WithHint("Failed to update maintenance request").
			Mark(ierr.ErrDatabase)
	}
	return nil
}
