package gorm

import (
	"context"

	"github.com/cockroachdb/errors"
	"gorm.io/gorm"

	"github.com/roomledger/roomledger/internal/domain/room"
	ierr "github.com/roomledger/roomledger/internal/errors"
	"github.com/roomledger/roomledger/internal/types"
)

type roomRepository struct {
	client *Client
}

// NewRoomRepository returns the Postgres-backed room repository.
func NewRoomRepository(client *Client) room.Repository {
	return &roomRepository{client: client}
}

func (r *roomRepository) Create(ctx context.Context, m *room.Room) error {
	if err := r.client.handle(ctx).Create(roomFromDomain(m)).Error; err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create room").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *roomRepository) Get(ctx context.Context, id string) (*room.Room, error) {
	var row roomRow
	err := r.client.scoped(ctx).First(&row, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ierr.NewErrorf("room %s not found", id).
				WithHint("Room not found").
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get room").
			Mark(ierr.ErrDatabase)
	}
	return row.toDomain(), nil
}

func (r *roomRepository) GetByNumber(ctx context.Context, roomNumber string) (*room.Room, error) {
	var row roomRow
	err := r.client.scoped(ctx).First(&row, "room_number = ?", roomNumber).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ierr.NewErrorf("room %s not found", roomNumber).
				WithHint("Room not found").
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get room").
			Mark(ierr.ErrDatabase)
	}
	return row.toDomain(), nil
}

func (r *roomRepository) List(ctx context.Context, filter *room.Filter) ([]*room.Room, error) {
	query := r.client.scoped(ctx)
	if filter != nil {
		if len(filter.RoomIDs) > 0 {
			query = query.Where("id IN ?", filter.RoomIDs)
		}
		if filter.RoomType != "" {
			query = query.Where("room_type = ?", filter.RoomType)
		}
		if filter.Status != "" {
			query = query.Where("status = ?", filter.Status)
		}
		if filter.Limit > 0 {
			query = query.Limit(filter.Limit).Offset(filter.Offset)
		}
	}

	var rows []roomRow
	if err := query.Order("room_number asc").Find(&rows).Error; err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list rooms").
			Mark(ierr.ErrDatabase)
	}

	rooms := make([]*room.Room, len(rows))
	for i, row := range rows {
		rooms[i] = row.toDomain()
	}
	return rooms, nil
}

func (r *roomRepository) Update(ctx context.Context, m *room.Room) error {
	result := r.client.scoped(ctx).
		Where("id = ?", m.ID).
		Save(roomFromDomain(m))
	if result.Error != nil {
		return ierr.WithError(result.Error).
			WithHint("Failed to update room").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *roomRepository) Delete(ctx context.Context, id string) error {
	result := r.client.scoped(ctx).
		Model(&roomRow{}).
		Where("id = ?", id).
		Update("status", types.StatusDeleted)
	if result.Error != nil {
		return ierr.WithError(result.Error).
			WithHint("Failed to delete room").
			Mark(ierr.ErrDatabase)
	}
	if result.RowsAffected == 0 {
		return ierr.NewErrorf("room %s not found", id).
			WithHint("Room not found").
			Mark(ierr.ErrNotFound)
	}
	return nil
}
