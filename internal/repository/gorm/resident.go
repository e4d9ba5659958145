package gorm

import (
	"context"

	"github.com/cockroachdb/errors"
	"gorm.io/gorm"

	"github.com/roomledger/roomledger/internal/domain/resident"
	ierr "github.com/roomledger/roomledger/internal/errors"
)

type residentRepository struct {
	client *Client
}

// NewResidentRepository returns the Postgres-backed resident repository.
func NewResidentRepository(client *Client) resident.Repository {
	return &residentRepository{client: client}
}

func (r *residentRepository) Create(ctx context.Context, m *resident.Resident) error {
	if err := r.client.handle(ctx).Create(residentFromDomain(m)).Error; err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create resident").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *residentRepository) Get(ctx context.Context, id string) (*resident.Resident, error) {
	var row residentRow
	err := r.client.scoped(ctx).First(&row, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ierr.NewErrorf("resident %s not found", id).
				WithHint("Resident not found").
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get resident").
			Mark(ierr.ErrDatabase)
	}
	return row.toDomain(), nil
}

func (r *residentRepository) GetActiveByRoom(ctx context.Context, roomID string) (*resident.Resident, error) {
	var row residentRow
	err := r.client.scoped(ctx).
		Where("room_id = ?", roomID).
		Where("check_out_date IS NULL").
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ierr.NewErrorf("no active resident in room %s", roomID).
				WithHint("The room is vacant").
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get active resident").
			Mark(ierr.ErrDatabase)
	}
	return row.toDomain(), nil
}

func (r *residentRepository) List(ctx context.Context, filter *resident.Filter) ([]*resident.Resident, error) {
	query := r.client.scoped(ctx)
	if filter != nil {
		if filter.RoomID != "" {
			query = query.Where("room_id = ?", filter.RoomID)
		}
		if filter.ActiveOnly {
			query = query.Where("check_out_date IS NULL")
		}
		if filter.Limit > 0 {
			query = query.Limit(filter.Limit).Offset(filter.Offset)
		}
	}

	var rows []residentRow
	if err := query.Order("check_in_date desc").Find(&rows).Error; err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list residents").
			Mark(ierr.ErrDatabase)
	}

	residents := make([]*resident.Resident, len(rows))
	for i, row := range rows {
		residents[i] = row.toDomain()
	}
	return residents, nil
}

func (r *residentRepository) Update(ctx context.Context, m *resident.Resident) error {
	result := r.client.scoped(ctx).
		Where("id = ?", m.ID).
		Save(residentFromDomain(m))
	if result.Error != nil {
		return ierr.WithError(result.Error).
			WithHint("Failed to update resident").
			Mark(ierr.ErrDatabase)
	}
	return nil
}
