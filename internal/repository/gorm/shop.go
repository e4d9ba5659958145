package gorm

import (
	"context"

	"github.com/cockroachdb/errors"
	"gorm.io/gorm"

	"github.com/roomledger/roomledger/internal/domain/shop"
	ierr "github.com/roomledger/roomledger/internal/errors"
	"github.com/roomledger/roomledger/internal/types"
)

type productRepository struct {
	client *Client
}

// NewProductRepository returns the Postgres-backed product repository.
func NewProductRepository(client *Client) shop.ProductRepository {
	return &productRepository{client: client}
}

func (r *productRepository) Create(ctx context.Context, m *shop.Product) error {
	if err := r.client.handle(ctx).Create(productFromDomain(m)).Error; err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create product").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *productRepository) Get(ctx context.Context, id string) (*shop.Product, error) {
	var row productRow
	err := r.client.scoped(ctx).First(&row, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ierr.NewErrorf("product %s not found", id).
				WithHint("Product not found").
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get product").
			Mark(ierr.ErrDatabase)
	}
	return row.toDomain(), nil
}

func (r *productRepository) List(ctx context.Context, filter *shop.ProductFilter) ([]*shop.Product, error) {
	query := r.client.scoped(ctx)
	if filter != nil {
		if filter.Name != "" {
			query = query.Where("name ILIKE ?", "%"+filter.Name+"%")
		}
		if filter.Limit > 0 {
			query = query.Limit(filter.Limit).Offset(filter.Offset)
		}
	}

	var rows []productRow
	if err := query.Order("name asc").Find(&rows).Error; err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list products").
			Mark(ierr.ErrDatabase)
	}

	products := make([]*shop.Product, len(rows))
	for i, row := range rows {
		products[i] = row.toDomain()
	}
	return products, nil
}

func (r *productRepository) Update(ctx context.Context, m *shop.Product) error {
	result := r.client.scoped(ctx).
		Where("id = ?", m.ID).
		Save(productFromDomain(m))
	if result.Error != nil {
		return ierr.WithError(result.Error).
			WithHint("Failed to update product").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *productRepository) Delete(ctx context.Context, id string) error {
	result := r.client.scoped(ctx).
		Model(&productRow{}).
		Where("id = ?", id).
		Update("status", types.StatusDeleted)
	if result.Error != nil {
		return ierr.WithError(result.Error).
			WithHint("Failed to delete product").
			Mark(ierr.ErrDatabase)
	}
	if result.RowsAffected == 0 {
		return ierr.NewErrorf("product %s not found", id).
			WithHint("Product not found").
			Mark(ierr.ErrNotFound)
	}
	return nil
}

type saleRepository struct {
	client *Client
}

// NewSaleRepository returns the Postgres-backed sale repository.
func NewSaleRepository(client *Client) shop.SaleRepository {
	return &saleRepository{client: client}
}

func (r *saleRepository) Create(ctx context.Context, m *shop.Sale) error {
	if err := r.client.handle(ctx).Create(saleFromDomain(m)).Error; err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create sale").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *saleRepository) Get(ctx context.Context, id string) (*shop.Sale, error) {
	var row saleRow
	err := r.client.scoped(ctx).First(&row, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ierr.NewErrorf("sale %s not found", id).
				WithHint("Sale not found").
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get sale").
			Mark(ierr.ErrDatabase)
	}
	return row.toDomain(), nil
}

func (r *saleRepository) List(ctx context.Context, filter *shop.SaleFilter) ([]*shop.Sale, error) {
	query := r.client.scoped(ctx)
	if filter != nil {
		if filter.ResidentID != "" {
			query = query.Where("resident_id = ?", filter.ResidentID)
		}
		if filter.StartDate != nil {
			query = query.Where("sold_at >= ?", *filter.StartDate)
		}
		if filter.EndDate != nil {
			query = query.Where("sold_at <= ?", *filter.EndDate)
		}
		if filter.Limit > 0 {
			query = query.Limit(filter.Limit).Offset(filter.Offset)
		}
	}

	var rows []saleRow
	if err := query.Order("sold_at desc").Find(&rows).Error; err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list sales").
			Mark(ierr.ErrDatabase)
	}

	sales := make([]*shop.Sale, len(rows))
	for i, row := range rows {
		sales[i] = row.toDomain()
	}
	return sales, nil
}
