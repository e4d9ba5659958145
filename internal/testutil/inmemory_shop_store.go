package testutil

import (
	"context"
	"sort"
	"strings"

	"github.com/samber/lo"

	"github.com/roomledger/roomledger/internal/domain/shop"
	ierr "github.com/roomledger/roomledger/internal/errors"
	"github.com/roomledger/roomledger/internal/types"
)

// InMemoryProductStore implements shop.ProductRepository
type InMemoryProductStore struct {
	*InMemoryStore[*shop.Product]
}

// NewInMemoryProductStore creates a new in-memory product store
func NewInMemoryProductStore() *InMemoryProductStore {
	return &InMemoryProductStore{InMemoryStore: NewInMemoryStore[*shop.Product]()}
}

func copyProduct(p *shop.Product) *shop.Product {
	if p == nil {
		return nil
	}
	copied := *p
	return &copied
}

func (s *InMemoryProductStore) Create(ctx context.Context, p *shop.Product) error {
	if p == nil {
		return ierr.NewError("product cannot be nil").
			WithHint("Product cannot be nil").
			Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Create(ctx, p.ID, copyProduct(p))
}

func (s *InMemoryProductStore) Get(ctx context.Context, id string) (*shop.Product, error) {
	p, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Status == types.StatusDeleted {
		return nil, ierr.NewErrorf("product %s not found", id).
			WithHint("Product not found").
			Mark(ierr.ErrNotFound)
	}
	return copyProduct(p), nil
}

func (s *InMemoryProductStore) List(ctx context.Context, filter *shop.ProductFilter) ([]*shop.Product, error) {
	products := s.InMemoryStore.List(ctx, func(p *shop.Product) bool {
		if p.Status == types.StatusDeleted {
			return false
		}
		if filter != nil && filter.Name != "" &&
			!strings.Contains(strings.ToLower(p.Name), strings.ToLower(filter.Name)) {
			return false
		}
		return true
	})
	sort.Slice(products, func(i, j int) bool {
		return products[i].Name < products[j].Name
	})
	if filter != nil {
		products = paginate(products, filter.Limit, filter.Offset)
	}
	return lo.Map(products, func(p *shop.Product, _ int) *shop.Product { return copyProduct(p) }), nil
}

func (s *InMemoryProductStore) Update(ctx context.Context, p *shop.Product) error {
	return s.InMemoryStore.Update(ctx, p.ID, copyProduct(p))
}

func (s *InMemoryProductStore) Delete(ctx context.Context, id string) error {
	p, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return err
	}
	deleted := copyProduct(p)
	deleted.Status = types.StatusDeleted
	return s.InMemoryStore.Update(ctx, id, deleted)
}

// InMemorySaleStore implements shop.SaleRepository
type InMemorySaleStore struct {
	*InMemoryStore[*shop.Sale]
}

// NewInMemorySaleStore creates a new in-memory sale store
func NewInMemorySaleStore() *InMemorySaleStore {
	return &InMemorySaleStore{InMemoryStore: NewInMemoryStore[*shop.Sale]()}
}

func copySale(s *shop.Sale) *shop.Sale {
	if s == nil {
		return nil
	}
	copied := *s
	copied.Items = append([]shop.SaleItem(nil), s.Items...)
	return &copied
}

func (s *InMemorySaleStore) Create(ctx context.Context, sale *shop.Sale) error {
	if sale == nil {
		return ierr.NewError("sale cannot be nil").
			WithHint("Sale cannot be nil").
			Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Create(ctx, sale.ID, copySale(sale))
}

func (s *InMemorySaleStore) Get(ctx context.Context, id string) (*shop.Sale, error) {
	sale, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return copySale(sale), nil
}

func (s *InMemorySaleStore) List(ctx context.Context, filter *shop.SaleFilter) ([]*shop.Sale, error) {
	sales := s.InMemoryStore.List(ctx, func(sale *shop.Sale) bool {
		if filter == nil {
			return true
		}
		if filter.ResidentID != "" && sale.ResidentID != filter.ResidentID {
			return false
		}
		if filter.StartDate != nil && sale.SoldAt.Before(*filter.StartDate) {
			return false
		}
		if filter.EndDate != nil && sale.SoldAt.After(*filter.EndDate) {
			return false
		}
		return true
	})
	sort.Slice(sales, func(i, j int) bool {
		return sales[i].SoldAt.After(sales[j].SoldAt)
	})
	if filter != nil {
		sales = paginate(sales, filter.Limit, filter.Offset)
	}
	return lo.Map(sales, func(sale *shop.Sale, _ int) *shop.Sale { return copySale(sale) }), nil
}
