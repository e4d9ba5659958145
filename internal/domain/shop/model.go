// Package shop provides the domain models for the property's small shop:
// a product catalog and recorded point-of-sale transactions.
package shop

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	ierr "github.com/roomledger/roomledger/internal/errors"
	"github.com/roomledger/roomledger/internal/types"
)

// Product is a shop catalog item with a unit price and stock count.
type Product struct {
	ID string `json:"id"`

	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Stock     int             `json:"stock"`

	types.BaseModel
}

// NewProduct creates a product with base model fields populated from context.
func NewProduct(ctx context.Context, name string, unitPrice decimal.Decimal, stock int) *Product {
	return &Product{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_PRODUCT),
		Name:      name,
		UnitPrice: unitPrice,
		Stock:     stock,
		BaseModel: types.GetDefaultBaseModel(ctx),
	}
}

func (p *Product) Validate() error {
	if p.Name == "" {
		return ierr.NewError("name is required").
			WithHint("Product name is required").
			Mark(ierr.ErrValidation)
	}
	if p.UnitPrice.IsNegative() {
		return ierr.NewError("unit_price must not be negative").
			WithHint("Unit price must be zero or positive").
			Mark(ierr.ErrValidation)
	}
	if p.Stock < 0 {
		return ierr.NewError("stock must not be negative").
			WithHint("Stock must be zero or positive").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// SaleItem is one product line on a sale, priced at sale time so later
// catalog changes do not rewrite history.
type SaleItem struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
	Amount      decimal.Decimal `json:"amount"`
}

// Sale is a recorded point-of-sale transaction, optionally attributed to a
// resident for later billing as an additional charge.
type Sale struct {
	ID         string `json:"id"`
	ResidentID string `json:"resident_id,omitempty"`

	Items []SaleItem      `json:"items"`
	Total decimal.Decimal `json:"total"`

	SoldAt time.Time `json:"sold_at"`

	types.BaseModel
}

// NewSale creates a sale from priced items. The total is the rounded sum of
// the line amounts.
func NewSale(ctx context.Context, residentID string, items []SaleItem, soldAt time.Time) *Sale {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Amount)
	}
	return &Sale{
		ID:         types.GenerateUUIDWithPrefix(types.UUID_PREFIX_SALE),
		ResidentID: residentID,
		Items:      items,
		Total:      types.RoundToCurrency(total),
		SoldAt:     soldAt.UTC(),
		BaseModel:  types.GetDefaultBaseModel(ctx),
	}
}

func (s *Sale) Validate() error {
	if len(s.Items) == 0 {
		return ierr.NewError("sale must have at least one item").
			WithHint("At least one item is required").
			Mark(ierr.ErrValidation)
	}
	for _, item := range s.Items {
		if item.ProductID == "" {
			return ierr.NewError("product_id is required on every sale item").
				WithHint("Product ID is required").
				Mark(ierr.ErrValidation)
		}
		if item.Quantity <= 0 {
			return ierr.NewErrorf("quantity must be positive for product %s", item.ProductID).
				WithHint("Item quantity must be positive").
				Mark(ierr.ErrValidation)
		}
	}
	return nil
}

// ProductRepository defines the interface for product persistence operations
type ProductRepository interface {
	Create(ctx context.Context, product *Product) error
	Get(ctx context.Context, id string) (*Product, error)
	List(ctx context.Context, filter *ProductFilter) ([]*Product, error)
	Update(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id string) error
}

// SaleRepository defines the interface for sale persistence operations
type SaleRepository interface {
	Create(ctx context.Context, sale *Sale) error
	Get(ctx context.Context, id string) (*Sale, error)
	List(ctx context.Context, filter *SaleFilter) ([]*Sale, error)
}

// ProductFilter defines query parameters for listing products.
type ProductFilter struct {
	Name   string `form:"name"`
	Limit  int    `form:"limit"`
	Offset int    `form:"offset"`
}

// SaleFilter defines query parameters for listing sales, newest first.
type SaleFilter struct {
	ResidentID string     `form:"resident_id"`
	StartDate  *time.Time `form:"start_date" time_format:"2006-01-02"`
	EndDate    *time.Time `form:"end_date" time_format:"2006-01-02"`
	Limit      int        `form:"limit"`
	Offset     int        `form:"offset"`
}
