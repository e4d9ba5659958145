// Package repository wires the storage-backed repository implementations
// into a single bundle consumed by the service layer.
package repository

import (
	"context"

	"github.com/roomledger/roomledger/internal/domain/billing"
	"github.com/roomledger/roomledger/internal/domain/maintenance"
	"github.com/roomledger/roomledger/internal/domain/reading"
	"github.com/roomledger/roomledger/internal/domain/resident"
	"github.com/roomledger/roomledger/internal/domain/room"
	"github.com/roomledger/roomledger/internal/domain/shop"
	"github.com/roomledger/roomledger/internal/domain/user"
	gormrepo "github.com/roomledger/roomledger/internal/repository/gorm"
)

// TxManager runs fn inside a storage transaction. Repository calls made with
// the context passed to fn commit or roll back together.
type TxManager interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Repositories bundles every repository implementation.
type Repositories struct {
	Room        room.Repository
	Reading     reading.Repository
	Bill        billing.Repository
	Resident    resident.Repository
	Maintenance maintenance.Repository
	Product     shop.ProductRepository
	Sale        shop.SaleRepository
	User        user.Repository
}

// NewRepositories builds the Postgres-backed repository bundle.
func NewRepositories(client *gormrepo.Client) *Repositories {
	return &Repositories{
		Room:        gormrepo.NewRoomRepository(client),
		Reading:     gormrepo.NewReadingRepository(client),
		Bill:        gormrepo.NewBillRepository(client),
		Resident:    gormrepo.NewResidentRepository(client),
		Maintenance: gormrepo.NewMaintenanceRepository(client),
		Product:     gormrepo.NewProductRepository(client),
		Sale:        gormrepo.NewSaleRepository(client),
		User:        gormrepo.NewUserRepository(client),
	}
}
