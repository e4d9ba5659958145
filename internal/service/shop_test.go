package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/roomledger/roomledger/internal/api/dto"
	"github.com/roomledger/roomledger/internal/domain/shop"
	ierr "github.com/roomledger/roomledger/internal/errors"
	"github.com/roomledger/roomledger/internal/testutil"
)

type ShopServiceSuite struct {
	testutil.BaseServiceTestSuite
	service ShopService
	params  ServiceParams
}

func TestShopService(t *testing.T) {
	suite.Run(t, new(ShopServiceSuite))
}

func (s *ShopServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.params = ServiceParams{
		Logger:       s.GetLogger(),
		Config:       s.GetConfig(),
		DB:           s.GetStores().DB,
		ResidentRepo: s.GetStores().ResidentRepo,
		ProductRepo:  s.GetStores().ProductRepo,
		SaleRepo:     s.GetStores().SaleRepo,
	}
	s.service = NewShopService(s.params)
}

func (s *ShopServiceSuite) createProduct(name string, price int64, stock int) *shop.Product {
	resp, err := s.service.CreateProduct(s.GetContext(), dto.CreateProductRequest{
		Name:      name,
		UnitPrice: decimal.NewFromInt(price),
		Stock:     stock,
	})
	s.NoError(err)
	return resp.Product
}

func (s *ShopServiceSuite) TestRecordSale() {
	water := s.createProduct("drinking water", 10, 20)
	noodles := s.createProduct("instant noodles", 15, 5)

	resp, err := s.service.RecordSale(s.GetContext(), dto.RecordSaleRequest{
		Items: []dto.SaleItemRequest{
			{ProductID: water.ID, Quantity: 3},
			{ProductID: noodles.ID, Quantity: 2},
		},
		SoldAt: time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC),
	})
	s.NoError(err)
	s.True(resp.Sale.Total.Equal(decimal.NewFromInt(60)), "total %s", resp.Sale.Total)
	s.Len(resp.Sale.Items, 2)
	s.Equal("drinking water", resp.Sale.Items[0].ProductName)

	// Stock is decremented after the sale
	updated, err := s.service.GetProduct(s.GetContext(), water.ID)
	s.NoError(err)
	s.Equal(17, updated.Product.Stock)

	updated, err = s.service.GetProduct(s.GetContext(), noodles.ID)
	s.NoError(err)
	s.Equal(3, updated.Product.Stock)
}

func (s *ShopServiceSuite) TestRecordSaleInsufficientStock() {
	water := s.createProduct("drinking water", 10, 2)

	_, err := s.service.RecordSale(s.GetContext(), dto.RecordSaleRequest{
		Items: []dto.SaleItemRequest{
			{ProductID: water.ID, Quantity: 3},
		},
	})
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))

	// Stock untouched on failure
	updated, err := s.service.GetProduct(s.GetContext(), water.ID)
	s.NoError(err)
	s.Equal(2, updated.Product.Stock)
}

func (s *ShopServiceSuite) TestRecordSaleDuplicateLines() {
	water := s.createProduct("drinking water", 10, 5)

	// Lines for the same product count against the stock together
	_, err := s.service.RecordSale(s.GetContext(), dto.RecordSaleRequest{
		Items: []dto.SaleItemRequest{
			{ProductID: water.ID, Quantity: 4},
			{ProductID: water.ID, Quantity: 4},
		},
	})
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))

	updated, err := s.service.GetProduct(s.GetContext(), water.ID)
	s.NoError(err)
	s.Equal(5, updated.Product.Stock)

	// Within stock, every line decrements exactly once
	resp, err := s.service.RecordSale(s.GetContext(), dto.RecordSaleRequest{
		Items: []dto.SaleItemRequest{
			{ProductID: water.ID, Quantity: 2},
			{ProductID: water.ID, Quantity: 1},
		},
	})
	s.NoError(err)
	s.Len(resp.Sale.Items, 2)
	s.True(resp.Sale.Total.Equal(decimal.NewFromInt(30)), "total %s", resp.Sale.Total)

	updated, err = s.service.GetProduct(s.GetContext(), water.ID)
	s.NoError(err)
	s.Equal(2, updated.Product.Stock)
}

func (s *ShopServiceSuite) TestListProductsPagination() {
	s.createProduct("candles", 5, 10)
	s.createProduct("detergent", 30, 10)
	s.createProduct("noodles", 15, 10)

	page, err := s.service.ListProducts(s.GetContext(), &shop.ProductFilter{Limit: 2})
	s.NoError(err)
	s.Len(page.Items, 2)
	s.Equal("candles", page.Items[0].Product.Name)
	s.Equal("detergent", page.Items[1].Product.Name)

	page, err = s.service.ListProducts(s.GetContext(), &shop.ProductFilter{Limit: 2, Offset: 2})
	s.NoError(err)
	s.Len(page.Items, 1)
	s.Equal("noodles", page.Items[0].Product.Name)
}

func (s *ShopServiceSuite) TestRecordSaleUnknownResident() {
	water := s.createProduct("drinking water", 10, 2)

	_, err := s.service.RecordSale(s.GetContext(), dto.RecordSaleRequest{
		ResidentID: "res_missing",
		Items: []dto.SaleItemRequest{
			{ProductID: water.ID, Quantity: 1},
		},
	})
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *ShopServiceSuite) TestListSalesByResident() {
	water := s.createProduct("drinking water", 10, 20)

	_, err := s.service.RecordSale(s.GetContext(), dto.RecordSaleRequest{
		Items: []dto.SaleItemRequest{{ProductID: water.ID, Quantity: 1}},
	})
	s.NoError(err)

	list, err := s.service.ListSales(s.GetContext(), &shop.SaleFilter{})
	s.NoError(err)
	s.Len(list.Items, 1)
}

func (s *ShopServiceSuite) TestDeleteProductHidesIt() {
	water := s.createProduct("drinking water", 10, 20)

	s.NoError(s.service.DeleteProduct(s.GetContext(), water.ID))

	_, err := s.service.GetProduct(s.GetContext(), water.ID)
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}
