package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/roomledger/roomledger/internal/api/dto"
	"github.com/roomledger/roomledger/internal/domain/shop"
	ierr "github.com/roomledger/roomledger/internal/errors"
	"github.com/roomledger/roomledger/internal/types"
)

// ShopService manages the product catalog and records point-of-sale
// transactions against it.
type ShopService interface {
	CreateProduct(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error)
	GetProduct(ctx context.Context, id string) (*dto.ProductResponse, error)
	ListProducts(ctx context.Context, filter *shop.ProductFilter) (*dto.ListProductsResponse, error)
	UpdateProduct(ctx context.Context, id string, req dto.UpdateProductRequest) (*dto.ProductResponse, error)
	DeleteProduct(ctx context.Context, id string) error

	RecordSale(ctx context.Context, req dto.RecordSaleRequest) (*dto.SaleResponse, error)
	GetSale(ctx context.Context, id string) (*dto.SaleResponse, error)
	ListSales(ctx context.Context, filter *shop.SaleFilter) (*dto.ListSalesResponse, error)
}

type shopService struct {
	ServiceParams
}

func NewShopService(params ServiceParams) ShopService {
	return &shopService{
		ServiceParams: params,
	}
}

func (s *shopService) CreateProduct(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	product := req.ToProduct(ctx)
	if err := product.Validate(); err != nil {
		return nil, err
	}

	if err := s.ProductRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	return &dto.ProductResponse{Product: product}, nil
}

func (s *shopService) GetProduct(ctx context.Context, id string) (*dto.ProductResponse, error) {
	if id == "" {
		return nil, ierr.NewError("product id is required").
			WithHint("Please provide a valid product ID").
			Mark(ierr.ErrValidation)
	}

	product, err := s.ProductRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	return &dto.ProductResponse{Product: product}, nil
}

func (s *shopService) ListProducts(ctx context.Context, filter *shop.ProductFilter) (*dto.ListProductsResponse, error) {
	if filter == nil {
		filter = &shop.ProductFilter{}
	}

	products, err := s.ProductRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.ProductResponse, len(products))
	for i, product := range products {
		items[i] = &dto.ProductResponse{Product: product}
	}

	return &dto.ListProductsResponse{
		Items:      items,
		Pagination: listPagination(len(items), filter.Limit, filter.Offset),
	}, nil
}

func (s *shopService) UpdateProduct(ctx context.Context, id string, req dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	product, err := s.ProductRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.UnitPrice != nil {
		product.UnitPrice = *req.UnitPrice
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}

	if err := product.Validate(); err != nil {
		return nil, err
	}

	if err := s.ProductRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	return &dto.ProductResponse{Product: product}, nil
}

func (s *shopService) DeleteProduct(ctx context.Context, id string) error {
	if id == "" {
		return ierr.NewError("product id is required").
			WithHint("Please provide a valid product ID").
			Mark(ierr.ErrValidation)
	}

	return s.ProductRepo.Delete(ctx, id)
}

func (s *shopService) RecordSale(ctx context.Context, req dto.RecordSaleRequest) (*dto.SaleResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if req.ResidentID != "" {
		if _, err := s.ResidentRepo.Get(ctx, req.ResidentID); err != nil {
			return nil, err
		}
	}

	// Price every line from the current catalog. Quantities are aggregated
	// per product so duplicate lines for the same product are checked and
	// decremented against the stock exactly once.
	products := make(map[string]*shop.Product, len(req.Items))
	productOrder := make([]string, 0, len(req.Items))
	quantities := make(map[string]int, len(req.Items))
	items := make([]shop.SaleItem, 0, len(req.Items))
	for _, line := range req.Items {
		product, ok := products[line.ProductID]
		if !ok {
			var err error
			product, err = s.ProductRepo.Get(ctx, line.ProductID)
			if err != nil {
				return nil, err
			}
			products[line.ProductID] = product
			productOrder = append(productOrder, line.ProductID)
		}
		quantities[line.ProductID] += line.Quantity
		items = append(items, shop.SaleItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			UnitPrice:   product.UnitPrice,
			Quantity:    line.Quantity,
			Amount:      types.RoundToCurrency(product.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))),
		})
	}

	for _, id := range productOrder {
		product := products[id]
		if product.Stock < quantities[id] {
			return nil, ierr.NewErrorf("insufficient stock for product %s", product.Name).
				WithHint("Not enough stock to complete the sale").
				WithReportableDetails(map[string]any{
					"product_id": product.ID,
					"stock":      product.Stock,
					"requested":  quantities[id],
				}).
				Mark(ierr.ErrInvalidOperation)
		}
	}

	soldAt := req.SoldAt
	if soldAt.IsZero() {
		soldAt = time.Now().UTC()
	}

	sale := shop.NewSale(ctx, req.ResidentID, items, soldAt)
	if err := sale.Validate(); err != nil {
		return nil, err
	}

	err := s.DB.WithTx(ctx, func(ctx context.Context) error {
		if err := s.SaleRepo.Create(ctx, sale); err != nil {
			return err
		}
		for _, id := range productOrder {
			product := products[id]
			product.Stock -= quantities[id]
			if err := s.ProductRepo.Update(ctx, product); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("sale recorded",
		"sale_id", sale.ID,
		"resident_id", sale.ResidentID,
		"total", sale.Total,
	)

	return &dto.SaleResponse{Sale: sale}, nil
}

func (s *shopService) GetSale(ctx context.Context, id string) (*dto.SaleResponse, error) {
	if id == "" {
		return nil, ierr.NewError("sale id is required").
			WithHint("Please provide a valid sale ID").
			Mark(ierr.ErrValidation)
	}

	sale, err := s.SaleRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	return &dto.SaleResponse{Sale: sale}, nil
}

func (s *shopService) ListSales(ctx context.Context, filter *shop.SaleFilter) (*dto.ListSalesResponse, error) {
	if filter == nil {
		filter = &shop.SaleFilter{}
	}

	sales, err := s.SaleRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.SaleResponse, len(sales))
	for i, sale := range sales {
		items[i] = &dto.SaleResponse{Sale: sale}
	}

	return &dto.ListSalesResponse{
		Items:      items,
		Pagination: listPagination(len(items), filter.Limit, filter.Offset),
	}, nil
}
