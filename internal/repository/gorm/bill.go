package gorm

import (
	"context"

	"github.com/cockroachdb/errors"
	"gorm.io/gorm"

	"github.com/roomledger/roomledger/internal/domain/billing"
	ierr "github.com/roomledger/roomledger/internal/errors"
)

type billRepository struct {
	client *Client
}

// NewBillRepository returns the Postgres-backed bill repository.
func NewBillRepository(client *Client) billing.Repository {
	return &billRepository{client: client}
}

func (r *billRepository) Create(ctx context.Context, m *billing.Bill) error {
	if err := r.client.handle(ctx).Create(billFromDomain(m)).Error; err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create bill").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *billRepository) Get(ctx context.Context, id string) (*billing.Bill, error) {
	var row billRow
	err := r.client.scoped(ctx).First(&row, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ierr.NewErrorf("bill %s not found", id).
				WithHint("Bill not found").
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get bill").
			Mark(ierr.ErrDatabase)
	}
	return row.toDomain(), nil
}

func (r *billRepository) List(ctx context.Context, filter *billing.Filter) ([]*billing.Bill, error) {
	query := r.client.scoped(ctx)
	if filter != nil {
		if filter.RoomID != "" {
			query = query.Where("room_id = ?", filter.RoomID)
		}
		if filter.ResidentID != "" {
			query = query.Where("resident_id = ?", filter.ResidentID)
		}
		if filter.StartDate != nil {
			query = query.Where("period_end >= ?", *filter.StartDate)
		}
		if filter.EndDate != nil {
			query = query.Where("period_end <= ?", *filter.EndDate)
		}
		if filter.Limit > 0 {
			query = query.Limit(filter.Limit).Offset(filter.Offset)
		}
	}

	var rows []billRow
	if err := query.Order("period_end desc").Find(&rows).Error; err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list bills").
			Mark(ierr.ErrDatabase)
	}

	bills := make([]*billing.Bill, len(rows))
	for i, row := range rows {
		bills[i] = row.toDomain()
	}
	return bills, nil
}
