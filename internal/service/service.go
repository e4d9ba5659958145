// Package service implements the application's use cases on top of the
// domain packages. Services hold no state beyond their dependencies and are
// safe for concurrent use.
package service

import (
	"github.com/roomledger/roomledger/internal/auth"
	"github.com/roomledger/roomledger/internal/cache"
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

// ServiceParams bundles the dependencies shared by all services so wiring
// stays in one place.
type ServiceParams struct {
	Logger *logger.Logger
	Config *config.Configuration
	DB     repository.TxManager

	Cache        cache.Cache
	AuthProvider auth.Provider

	RoomRepo        room.Repository
	ReadingRepo     reading.Repository
	BillRepo        billing.Repository
	ResidentRepo    resident.Repository
	MaintenanceRepo maintenance.Repository
	ProductRepo     shop.ProductRepository
	SaleRepo        shop.SaleRepository
	UserRepo        user.Repository
}

// listPagination echoes the applied limit and offset. Total is the number of
// items in the returned page, not a table-wide row count.
func listPagination(total, limit, offset int) types.PaginationResponse {
	return types.PaginationResponse{
		Total:  total,
		Limit:  limit,
		Offset: offset,
	}
}
