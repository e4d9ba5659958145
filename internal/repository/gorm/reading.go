package gorm

import (
	"context"

	"github.com/cockroachdb/errors"
	"gorm.io/gorm"

	"github.com/roomledger/roomledger/internal/domain/reading"
	ierr "github.com/roomledger/roomledger/internal/errors"
)

type readingRepository struct {
	client *Client
}

// NewReadingRepository returns the Postgres-backed meter reading repository.
func NewReadingRepository(client *Client) reading.Repository {
	return &readingRepository{client: client}
}

func (r *readingRepository) Create(ctx context.Context, m *reading.MeterReading) error {
	if err := r.client.handle(ctx).Create(readingFromDomain(m)).Error; err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create meter reading").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *readingRepository) Get(ctx context.Context, id string) (*reading.MeterReading, error) {
	var row readingRow
	err := r.client.scoped(ctx).First(&row, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ierr.NewErrorf("meter reading %s not found", id).
				WithHint("Meter reading not found").
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get meter reading").
			Mark(ierr.ErrDatabase)
	}
	return row.toDomain(), nil
}

func (r *readingRepository) GetLatestByRoom(ctx context.Context, roomID string) (*reading.MeterReading, error) {
	var row readingRow
	err := r.client.scoped(ctx).
		Where("room_id = ?", roomID).
		Order("reading_date desc").
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ierr.NewErrorf("no readings for room %s", roomID).
				WithHint("The room has no meter readings yet").
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get latest meter reading").
			Mark(ierr.ErrDatabase)
	}
	return row.toDomain(), nil
}

func (r *readingRepository) List(ctx context.Context, filter *reading.Filter) ([]*reading.MeterReading, error) {
	query := r.client.scoped(ctx)
	if filter != nil {
		if filter.RoomID != "" {
			query = query.Where("room_id = ?", filter.RoomID)
		}
		if filter.StartDate != nil {
			query = query.Where("reading_date >= ?", *filter.StartDate)
		}
		if filter.EndDate != nil {
			query = query.Where("reading_date <= ?", *filter.EndDate)
		}
		if filter.Limit > 0 {
			query = query.Limit(filter.Limit).Offset(filter.Offset)
		}
	}

	var rows []readingRow
	if err := query.Order("reading_date desc").Find(&rows).Error; err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list meter readings").
			Mark(ierr.ErrDatabase)
	}

	readings := make([]*reading.MeterReading, len(rows))
	for i, row := range rows {
		readings[i] = row.toDomain()
	}
	return readings, nil
}
