package dto

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/roomledger/roomledger/internal/domain/shop"
	"github.com/roomledger/roomledger/internal/types"
	"github.com/roomledger/roomledger/internal/validator"
)

type CreateProductRequest struct {
	Name      string          `json:"name" validate:"required"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Stock     int             `json:"stock" validate:"min=0"`
}

func (r *CreateProductRequest) Validate() error {
	return validator.ValidateRequest(r)
}

func (r *CreateProductRequest) ToProduct(ctx context.Context) *shop.Product {
	return shop.NewProduct(ctx, r.Name, r.UnitPrice, r.Stock)
}

type UpdateProductRequest struct {
	Name      *string          `json:"name,omitempty"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
	Stock     *int             `json:"stock,omitempty" validate:"omitempty,min=0"`
}

func (r *UpdateProductRequest) Validate() error {
	return validator.ValidateRequest(r)
}

type ProductResponse struct {
	*shop.Product
}

// ListProductsResponse represents the response for listing products
type ListProductsResponse = types.ListResponse[*ProductResponse]

type SaleItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

type RecordSaleRequest struct {
	ResidentID string            `json:"resident_id,omitempty"`
	Items      []SaleItemRequest `json:"items" validate:"required,min=1,dive"`
	SoldAt     time.Time         `json:"sold_at,omitempty"`
}

func (r *RecordSaleRequest) Validate() error {
	return validator.ValidateRequest(r)
}

type SaleResponse struct {
	*shop.Sale
}

// ListSalesResponse represents the response for listing sales
type ListSalesResponse = types.ListResponse[*SaleResponse]
