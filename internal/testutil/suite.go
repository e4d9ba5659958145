package testutil

import (
	"context"

	"github.com/stretchr/testify/suite"

	"github.com/roomledger/roomledger/internal/config"
	"github.com/roomledger/roomledger/internal/domain/billing"
	"github.com/roomledger/roomledger/internal/domain/maintenance"
	"github.com/roomledger/roomledger/internal/domain/reading"
	"github.com/roomledger/roomledger/internal/domain/resident"
	"github.com/roomledger/roomledger/internal/domain/room"
	"github.com/roomledger/roomledger/internal/domain/shop"
	"github.com/roomledger/roomledger/internal/domain/user"
	"github.com/roomledger/roomledger/internal/logger"
	"github.com/roomledger/roomledger/internal/repository"
	"github.com/roomledger/roomledger/internal/types"
)

// Stores is a collection of in-memory stores for testing
type Stores struct {
	DB repository.TxManager

	RoomRepo        room.Repository
	ReadingRepo     reading.Repository
	BillRepo        billing.Repository
	ResidentRepo    resident.Repository
	MaintenanceRepo maintenance.Repository
	ProductRepo     shop.ProductRepository
	SaleRepo        shop.SaleRepository
	UserRepo        user.Repository
}

// BaseServiceTestSuite provides common functionality for all service test suites
type BaseServiceTestSuite struct {
	suite.Suite
	ctx    context.Context
	stores Stores
	log    *logger.Logger
	cfg    *config.Configuration
}

// SetupTest is called before each test
func (s *BaseServiceTestSuite) SetupTest() {
	s.setupContext()
	s.setupStores()
	s.setupConfig()

	var err error
	s.log, err = logger.NewLogger(s.cfg)
	if err != nil {
		s.T().Fatalf("failed to create logger: %v", err)
	}
}

// TearDownTest is called after each test
func (s *BaseServiceTestSuite) TearDownTest() {
}

func (s *BaseServiceTestSuite) setupContext() {
	s.ctx = context.Background()
	s.ctx = context.WithValue(s.ctx, types.CtxTenantID, types.DefaultTenantID)
	s.ctx = context.WithValue(s.ctx, types.CtxUserID, types.DefaultUserID)
	s.ctx = context.WithValue(s.ctx, types.CtxRequestID, types.GenerateUUID())
}

func (s *BaseServiceTestSuite) setupStores() {
	s.stores = Stores{
		DB:              InMemoryTxManager{},
		RoomRepo:        NewInMemoryRoomStore(),
		ReadingRepo:     NewInMemoryReadingStore(),
		BillRepo:        NewInMemoryBillStore(),
		ResidentRepo:    NewInMemoryResidentStore(),
		MaintenanceRepo: NewInMemoryMaintenanceStore(),
		ProductRepo:     NewInMemoryProductStore(),
		SaleRepo:        NewInMemorySaleStore(),
		UserRepo:        NewInMemoryUserStore(),
	}
}

func (s *BaseServiceTestSuite) setupConfig() {
	s.cfg = config.GetDefaultConfig()
}

// GetContext returns the test context with tenant and user set
func (s *BaseServiceTestSuite) GetContext() context.Context {
	return s.ctx
}

// GetStores returns the in-memory stores
func (s *BaseServiceTestSuite) GetStores() Stores {
	return s.stores
}

// GetLogger returns the test logger
func (s *BaseServiceTestSuite) GetLogger() *logger.Logger {
	return s.log
}

// GetConfig returns the test configuration
func (s *BaseServiceTestSuite) GetConfig() *config.Configuration {
	return s.cfg
}

// ClearStores resets all stores to a fresh state
func (s *BaseServiceTestSuite) ClearStores() {
	s.setupStores()
}
