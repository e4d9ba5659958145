package testutil

import (
	"context"
	"sort"

	"github.com/samber/lo"

	"github.com/roomledger/roomledger/internal/domain/billing"
	ierr "github.com/roomledger/roomledger/internal/errors"
)

// InMemoryBillStore implements billing.Repository
type InMemoryBillStore struct {
	*InMemoryStore[*billing.Bill]
}

// NewInMemoryBillStore creates a new in-memory bill store
func NewInMemoryBillStore() *InMemoryBillStore {
	return &InMemoryBillStore{InMemoryStore: NewInMemoryStore[*billing.Bill]()}
}

func copyBill(b *billing.Bill) *billing.Bill {
	if b == nil {
		return nil
	}
	copied := *b
	if b.Summary != nil {
		summary := *b.Summary
		summary.AdditionalCharges = append([]billing.AdditionalCharge(nil), b.Summary.AdditionalCharges...)
		if b.Summary.DueDate != nil {
			summary.DueDate = lo.ToPtr(*b.Summary.DueDate)
		}
		copied.Summary = &summary
	}
	return &copied
}

func (s *InMemoryBillStore) Create(ctx context.Context, b *billing.Bill) error {
	if b == nil {
		return ierr.NewError("bill cannot be nil").
			WithHint("Bill cannot be nil").
			Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Create(ctx, b.ID, copyBill(b))
}

func (s *InMemoryBillStore) Get(ctx context.Context, id string) (*billing.Bill, error) {
	b, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return copyBill(b), nil
}

func (s *InMemoryBillStore) List(ctx context.Context, filter *billing.Filter) ([]*billing.Bill, error) {
	bills := s.InMemoryStore.List(ctx, func(b *billing.Bill) bool {
		if filter == nil {
			return true
		}
		if filter.RoomID != "" && b.RoomID != filter.RoomID {
			return false
		}
		if filter.ResidentID != "" && b.ResidentID != filter.ResidentID {
			return false
		}
		if b.Summary != nil {
			if filter.StartDate != nil && b.Summary.PeriodEnd.Before(*filter.StartDate) {
				return false
			}
			if filter.EndDate != nil && b.Summary.PeriodEnd.After(*filter.EndDate) {
				return false
			}
		}
		return true
	})
	sort.Slice(bills, func(i, j int) bool {
		if bills[i].Summary == nil || bills[j].Summary == nil {
			return false
		}
		return bills[i].Summary.PeriodEnd.After(bills[j].Summary.PeriodEnd)
	})
	if filter != nil {
		bills = paginate(bills, filter.Limit, filter.Offset)
	}
	return lo.Map(bills, func(b *billing.Bill, _ int) *billing.Bill { return copyBill(b) }), nil
}
